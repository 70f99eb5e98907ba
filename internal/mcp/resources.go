package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/playtally/internal/campaign/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CampaignListEntry represents a readable campaign metadata entry.
type CampaignListEntry struct {
	ID        string `json:"id"`
	GameID    string `json:"game_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CampaignListPayload represents the MCP resource payload for campaign listings.
type CampaignListPayload struct {
	Campaigns []CampaignListEntry `json:"campaigns"`
}

// CampaignListResource defines the MCP resource for the campaign listing.
func CampaignListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "campaigns_list",
		Title:       "Campaign List",
		Description: "Readable listing of all tracked campaigns",
		MIMEType:    "application/json",
		URI:         "campaigns://list",
	}
}

// CampaignListResourceHandler returns a readable campaign listing resource.
func CampaignListResourceHandler(svc *service.Service) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if svc == nil {
			return nil, fmt.Errorf("campaign list service is not configured")
		}

		uri := CampaignListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		campaigns, err := svc.ListCampaigns(ctx)
		if err != nil {
			return nil, fmt.Errorf("campaign list failed: %w", err)
		}

		payload := CampaignListPayload{}
		for _, campaign := range campaigns {
			payload.Campaigns = append(payload.Campaigns, CampaignListEntry{
				ID:        campaign.ID,
				GameID:    campaign.GameID,
				Name:      campaign.Name,
				CreatedAt: formatTimestamp(campaign.CreatedAt),
				UpdatedAt: formatTimestamp(campaign.UpdatedAt),
			})
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal campaign list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
