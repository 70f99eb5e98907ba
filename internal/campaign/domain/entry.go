package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/playtally/internal/errors"
	"github.com/louisbranch/playtally/internal/platform/id"
)

var (
	// ErrEntryEmptyCampaignID indicates an entry without a campaign reference.
	ErrEntryEmptyCampaignID = apperrors.New(apperrors.CodeEntryEmptyCampaignID, "entry campaign id is required")
	// ErrEntryNoResults indicates an entry without player results.
	ErrEntryNoResults = apperrors.New(apperrors.CodeEntryNoResults, "entry requires at least one player result")
	// ErrEntryEmptyPlayerID indicates a player result without a player reference.
	ErrEntryEmptyPlayerID = apperrors.New(apperrors.CodeEntryEmptyPlayerID, "player result player id is required")
)

// Entry represents one recorded play session of a game.
type Entry struct {
	ID         string
	CampaignID string
	PlayedAt   time.Time
	Notes      string
	// Results holds one record per participating player, in table order.
	Results   []PlayerResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerResult is the record of one player's participation in one entry.
type PlayerResult struct {
	ID       string
	EntryID  string
	PlayerID string
	Position int
	Won      bool
	Score    int
	// CustomFieldValueIDs lists the custom field values recorded on this
	// result (e.g. which character the player ran).
	CustomFieldValueIDs []string
}

// CreatePlayerResultInput describes one player's participation for entry creation.
type CreatePlayerResultInput struct {
	PlayerID            string
	Won                 bool
	Score               int
	CustomFieldValueIDs []string
}

// CreateEntryInput describes the metadata needed to log a play session.
type CreateEntryInput struct {
	CampaignID string
	PlayedAt   time.Time
	Notes      string
	Results    []CreatePlayerResultInput
}

// CreateEntry creates a new entry with generated IDs for the entry and each
// player result. Result order is preserved; a player may appear at most once.
func CreateEntry(input CreateEntryInput, now func() time.Time, idGenerator func() (string, error)) (Entry, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	campaignID := strings.TrimSpace(input.CampaignID)
	if campaignID == "" {
		return Entry{}, ErrEntryEmptyCampaignID
	}
	if len(input.Results) == 0 {
		return Entry{}, ErrEntryNoResults
	}

	entryID, err := idGenerator()
	if err != nil {
		return Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	createdAt := now().UTC()
	playedAt := input.PlayedAt
	if playedAt.IsZero() {
		playedAt = createdAt
	}

	entry := Entry{
		ID:         entryID,
		CampaignID: campaignID,
		PlayedAt:   playedAt.UTC(),
		Notes:      strings.TrimSpace(input.Notes),
		Results:    make([]PlayerResult, 0, len(input.Results)),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	seen := make(map[string]bool, len(input.Results))
	for position, result := range input.Results {
		playerID := strings.TrimSpace(result.PlayerID)
		if playerID == "" {
			return Entry{}, ErrEntryEmptyPlayerID
		}
		if seen[playerID] {
			return Entry{}, apperrors.Newf(apperrors.CodeEntryDuplicatePlayer, "player %s listed twice", playerID).
				WithMetadata(map[string]string{"PlayerID": playerID})
		}
		seen[playerID] = true

		resultID, err := idGenerator()
		if err != nil {
			return Entry{}, fmt.Errorf("generate player result id: %w", err)
		}
		entry.Results = append(entry.Results, PlayerResult{
			ID:                  resultID,
			EntryID:             entryID,
			PlayerID:            playerID,
			Position:            position,
			Won:                 result.Won,
			Score:               result.Score,
			CustomFieldValueIDs: append([]string(nil), result.CustomFieldValueIDs...),
		})
	}

	return entry, nil
}
