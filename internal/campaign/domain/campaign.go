package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/playtally/internal/errors"
	"github.com/louisbranch/playtally/internal/platform/id"
)

var (
	// ErrCampaignNameEmpty indicates a missing campaign name.
	ErrCampaignNameEmpty = apperrors.New(apperrors.CodeCampaignNameEmpty, "campaign name is required")
	// ErrCampaignEmptyGameID indicates a campaign without a game reference.
	ErrCampaignEmptyGameID = apperrors.New(apperrors.CodeCampaignEmptyGameID, "campaign game id is required")
)

// Campaign groups a sequence of entries for long-running state tracking.
type Campaign struct {
	ID        string
	GameID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCampaignInput describes the metadata needed to create a campaign.
type CreateCampaignInput struct {
	GameID string
	Name   string
}

// CreateCampaign creates a new campaign with a generated ID and timestamps.
func CreateCampaign(input CreateCampaignInput, now func() time.Time, idGenerator func() (string, error)) (Campaign, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateCampaignInput(input)
	if err != nil {
		return Campaign{}, err
	}

	campaignID, err := idGenerator()
	if err != nil {
		return Campaign{}, fmt.Errorf("generate campaign id: %w", err)
	}

	createdAt := now().UTC()
	return Campaign{
		ID:        campaignID,
		GameID:    normalized.GameID,
		Name:      normalized.Name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreateCampaignInput trims and validates campaign input metadata.
func NormalizeCreateCampaignInput(input CreateCampaignInput) (CreateCampaignInput, error) {
	input.GameID = strings.TrimSpace(input.GameID)
	input.Name = strings.TrimSpace(input.Name)
	if input.GameID == "" {
		return CreateCampaignInput{}, ErrCampaignEmptyGameID
	}
	if input.Name == "" {
		return CreateCampaignInput{}, ErrCampaignNameEmpty
	}
	return input, nil
}
