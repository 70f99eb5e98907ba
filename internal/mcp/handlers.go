package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/campaign/event"
	"github.com/louisbranch/playtally/internal/campaign/service"
	"github.com/louisbranch/playtally/internal/campaign/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GameCreateHandler executes a game create request.
func GameCreateHandler(svc *service.Service) mcp.ToolHandlerFor[GameCreateInput, GameCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameCreateInput) (*mcp.CallToolResult, GameCreateResult, error) {
		game, err := svc.CreateGame(ctx, domain.CreateGameInput{Name: input.Name})
		if err != nil {
			return nil, GameCreateResult{}, fmt.Errorf("game create failed: %w", err)
		}
		return nil, GameCreateResult{
			ID:        game.ID,
			Name:      game.Name,
			CreatedAt: formatTimestamp(game.CreatedAt),
		}, nil
	}
}

// PlayerCreateHandler executes a player create request.
func PlayerCreateHandler(svc *service.Service) mcp.ToolHandlerFor[PlayerCreateInput, PlayerCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlayerCreateInput) (*mcp.CallToolResult, PlayerCreateResult, error) {
		player, err := svc.CreatePlayer(ctx, domain.CreatePlayerInput{Name: input.Name})
		if err != nil {
			return nil, PlayerCreateResult{}, fmt.Errorf("player create failed: %w", err)
		}
		return nil, PlayerCreateResult{
			ID:        player.ID,
			Name:      player.Name,
			CreatedAt: formatTimestamp(player.CreatedAt),
		}, nil
	}
}

// CampaignCreateHandler executes a campaign create request.
func CampaignCreateHandler(svc *service.Service) mcp.ToolHandlerFor[CampaignCreateInput, CampaignCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CampaignCreateInput) (*mcp.CallToolResult, CampaignCreateResult, error) {
		campaign, err := svc.CreateCampaign(ctx, domain.CreateCampaignInput{
			GameID: input.GameID,
			Name:   input.Name,
		})
		if err != nil {
			return nil, CampaignCreateResult{}, fmt.Errorf("campaign create failed: %w", err)
		}
		return nil, CampaignCreateResult{
			ID:        campaign.ID,
			GameID:    campaign.GameID,
			Name:      campaign.Name,
			CreatedAt: formatTimestamp(campaign.CreatedAt),
		}, nil
	}
}

// CustomFieldCreateHandler executes a custom field create request.
func CustomFieldCreateHandler(svc *service.Service) mcp.ToolHandlerFor[CustomFieldCreateInput, CustomFieldCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CustomFieldCreateInput) (*mcp.CallToolResult, CustomFieldCreateResult, error) {
		field, err := svc.CreateCustomField(ctx, domain.CreateCustomFieldInput{
			GameID: input.GameID,
			Name:   input.Name,
		})
		if err != nil {
			return nil, CustomFieldCreateResult{}, fmt.Errorf("custom field create failed: %w", err)
		}
		return nil, CustomFieldCreateResult{
			ID:     field.ID,
			GameID: field.GameID,
			Name:   field.Name,
		}, nil
	}
}

// CustomFieldValueCreateHandler executes a custom field value create request.
func CustomFieldValueCreateHandler(svc *service.Service) mcp.ToolHandlerFor[CustomFieldValueCreateInput, CustomFieldValueCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CustomFieldValueCreateInput) (*mcp.CallToolResult, CustomFieldValueCreateResult, error) {
		value, err := svc.CreateCustomFieldValue(ctx, domain.CreateCustomFieldValueInput{
			CustomFieldID: input.CustomFieldID,
			Value:         input.Value,
		})
		if err != nil {
			return nil, CustomFieldValueCreateResult{}, fmt.Errorf("custom field value create failed: %w", err)
		}
		return nil, CustomFieldValueCreateResult{
			ID:            value.ID,
			CustomFieldID: value.CustomFieldID,
			Value:         value.Value,
		}, nil
	}
}

// KeyCreateHandler executes a campaign key create request.
func KeyCreateHandler(svc *service.Service) mcp.ToolHandlerFor[KeyCreateInput, KeyCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input KeyCreateInput) (*mcp.CallToolResult, KeyCreateResult, error) {
		key, err := svc.CreateKey(ctx, domain.CreateKeyInput{
			CampaignID:            input.CampaignID,
			Name:                  input.Name,
			Type:                  input.Type,
			Scope:                 input.Scope,
			ScopedToCustomFieldID: input.ScopedToCustomFieldID,
		})
		if err != nil {
			return nil, KeyCreateResult{}, fmt.Errorf("campaign key create failed: %w", err)
		}
		return nil, KeyCreateResult{
			ID:                    key.ID,
			CampaignID:            key.CampaignID,
			Name:                  key.Name,
			Type:                  string(key.Type),
			Scope:                 string(key.Scope),
			ScopedToCustomFieldID: key.ScopedToCustomFieldID,
		}, nil
	}
}

// EntryLogHandler executes an entry log request.
func EntryLogHandler(svc *service.Service) mcp.ToolHandlerFor[EntryLogInput, EntryLogResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EntryLogInput) (*mcp.CallToolResult, EntryLogResult, error) {
		var playedAt time.Time
		if strings.TrimSpace(input.PlayedAt) != "" {
			parsed, err := time.Parse(time.RFC3339, input.PlayedAt)
			if err != nil {
				return nil, EntryLogResult{}, fmt.Errorf("parse played_at: %w", err)
			}
			playedAt = parsed
		}

		results := make([]domain.CreatePlayerResultInput, 0, len(input.Results))
		for _, result := range input.Results {
			results = append(results, domain.CreatePlayerResultInput{
				PlayerID:            result.PlayerID,
				Won:                 result.Won,
				Score:               result.Score,
				CustomFieldValueIDs: result.CustomFieldValueIDs,
			})
		}

		entry, err := svc.LogEntry(ctx, domain.CreateEntryInput{
			CampaignID: input.CampaignID,
			PlayedAt:   playedAt,
			Notes:      input.Notes,
			Results:    results,
		})
		if err != nil {
			return nil, EntryLogResult{}, fmt.Errorf("entry log failed: %w", err)
		}

		stored := make([]EntryResultSummary, 0, len(entry.Results))
		for _, result := range entry.Results {
			stored = append(stored, EntryResultSummary{
				ID:       result.ID,
				PlayerID: result.PlayerID,
				Position: result.Position,
				Won:      result.Won,
				Score:    result.Score,
			})
		}
		return nil, EntryLogResult{
			ID:         entry.ID,
			CampaignID: entry.CampaignID,
			PlayedAt:   formatTimestamp(entry.PlayedAt),
			Notes:      entry.Notes,
			Results:    stored,
		}, nil
	}
}

// EventAppendHandler executes an event append request. The payload is built
// from the input fields that match the key's declared type.
func EventAppendHandler(svc *service.Service) mcp.ToolHandlerFor[EventAppendInput, EventAppendResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventAppendInput) (*mcp.CallToolResult, EventAppendResult, error) {
		key, err := svc.GetKey(ctx, input.KeyID)
		if err != nil {
			return nil, EventAppendResult{}, fmt.Errorf("resolve campaign key: %w", err)
		}

		payload, err := buildPayload(key.Type, input)
		if err != nil {
			return nil, EventAppendResult{}, err
		}

		ev, err := svc.AppendEvent(ctx, service.AppendEventInput{
			CampaignID:         input.CampaignID,
			EntryID:            input.EntryID,
			PlayerResultID:     input.PlayerResultID,
			KeyID:              input.KeyID,
			CustomFieldValueID: input.CustomFieldValueID,
			Payload:            payload,
		})
		if err != nil {
			return nil, EventAppendResult{}, fmt.Errorf("event append failed: %w", err)
		}
		return nil, EventAppendResult{
			ID:         ev.ID,
			CampaignID: ev.CampaignID,
			Seq:        ev.Seq,
			EntryID:    ev.EntryID,
			KeyID:      ev.KeyID,
		}, nil
	}
}

// CampaignStateHandler executes a campaign state replay request.
func CampaignStateHandler(svc *service.Service) mcp.ToolHandlerFor[CampaignStateInput, CampaignStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CampaignStateInput) (*mcp.CallToolResult, CampaignStateResult, error) {
		campaignState, err := svc.GetCampaignState(ctx, input.CampaignID)
		if err != nil {
			return nil, CampaignStateResult{}, fmt.Errorf("campaign state failed: %w", err)
		}

		entries := make([]EntryState, 0, len(campaignState.Entries))
		for _, entry := range campaignState.Entries {
			entries = append(entries, EntryState{
				EntryID:  entry.ID,
				PlayedAt: formatTimestamp(entry.PlayedAt),
				Sections: stateSections(campaignState.States[entry.ID]),
			})
		}
		return nil, CampaignStateResult{
			CampaignID: campaignState.Campaign.ID,
			Name:       campaignState.Campaign.Name,
			Entries:    entries,
		}, nil
	}
}

// CampaignStatsHandler executes a campaign statistics request.
func CampaignStatsHandler(svc *service.Service) mcp.ToolHandlerFor[CampaignStatsInput, CampaignStatsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CampaignStatsInput) (*mcp.CallToolResult, CampaignStatsResult, error) {
		stats, err := svc.GetCampaignStats(ctx, input.CampaignID)
		if err != nil {
			return nil, CampaignStatsResult{}, fmt.Errorf("campaign stats failed: %w", err)
		}

		players := make([]PlayerStatsEntry, 0, len(stats.Players))
		for _, player := range stats.Players {
			players = append(players, PlayerStatsEntry{
				PlayerID:   player.PlayerID,
				PlayerName: player.PlayerName,
				Plays:      player.Plays,
				Wins:       player.Wins,
				TotalScore: player.TotalScore,
				BestScore:  player.BestScore,
			})
		}
		result := CampaignStatsResult{
			CampaignID: stats.Campaign.ID,
			Name:       stats.Campaign.Name,
			EntryCount: stats.EntryCount,
			Players:    players,
		}
		if !stats.LastPlayedAt.IsZero() {
			result.LastPlayedAt = formatTimestamp(stats.LastPlayedAt)
		}
		return nil, result, nil
	}
}

// buildPayload assembles an event payload from the tool input fields that
// apply to the key's type. Verbs and shapes outside the key's type are a
// caller error here; replay-time tolerance does not apply to appends.
func buildPayload(keyType domain.KeyType, input EventAppendInput) (event.Payload, error) {
	verb := event.Verb(strings.TrimSpace(input.Verb))
	switch keyType {
	case domain.KeyTypeString:
		if verb != event.VerbReplace {
			return nil, fmt.Errorf("verb %q does not apply to string keys", input.Verb)
		}
		return event.StringReplace{Value: input.Value}, nil
	case domain.KeyTypeNumber:
		if input.Amount == nil {
			return nil, fmt.Errorf("amount is required for number keys")
		}
		switch verb {
		case event.VerbReplace:
			return event.NumberReplace{Amount: *input.Amount}, nil
		case event.VerbIncrease:
			return event.NumberIncrease{Amount: *input.Amount}, nil
		case event.VerbDecrease:
			return event.NumberDecrease{Amount: *input.Amount}, nil
		default:
			return nil, fmt.Errorf("verb %q does not apply to number keys", input.Verb)
		}
	case domain.KeyTypeList:
		if len(input.Values) == 0 {
			return nil, fmt.Errorf("values are required for list keys")
		}
		switch verb {
		case event.VerbAdd:
			return event.ListAdd{Values: input.Values}, nil
		case event.VerbRemove:
			return event.ListRemove{Values: input.Values}, nil
		default:
			return nil, fmt.Errorf("verb %q does not apply to list keys", input.Verb)
		}
	case domain.KeyTypeCountedList:
		if len(input.Items) == 0 {
			return nil, fmt.Errorf("items are required for counted_list keys")
		}
		items := make([]event.CountedItem, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, event.CountedItem{Item: item.Item, Quantity: item.Quantity})
		}
		switch verb {
		case event.VerbAdd:
			return event.CountedListAdd{Items: items}, nil
		case event.VerbRemove:
			return event.CountedListRemove{Items: items}, nil
		default:
			return nil, fmt.Errorf("verb %q does not apply to counted_list keys", input.Verb)
		}
	default:
		return nil, fmt.Errorf("key type %q is not supported", keyType)
	}
}

// stateSections converts replayed sections into the tool result shape.
func stateSections(sections []state.Section) []StateSection {
	converted := make([]StateSection, 0, len(sections))
	for _, section := range sections {
		scoped := make([]ScopedStateSection, 0, len(section.Scoped))
		for _, sub := range section.Scoped {
			scoped = append(scoped, ScopedStateSection{
				Label:   sub.Label,
				Entries: sub.Entries,
			})
		}
		if len(scoped) == 0 {
			scoped = nil
		}
		converted = append(converted, StateSection{
			Label:    section.Label,
			PlayerID: section.PlayerID,
			Entries:  section.Entries,
			Scoped:   scoped,
		})
	}
	return converted
}

// formatTimestamp renders a timestamp as RFC3339 or empty when unset.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
