// Package storage defines persistence contracts for tracker state.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/campaign/event"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// GameStore persists game records.
type GameStore interface {
	CreateGame(ctx context.Context, game domain.Game) error
	GetGame(ctx context.Context, gameID string) (domain.Game, error)
	ListGames(ctx context.Context) ([]domain.Game, error)
}

// PlayerStore persists player records.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, player domain.Player) error
	GetPlayer(ctx context.Context, playerID string) (domain.Player, error)
	ListPlayers(ctx context.Context) ([]domain.Player, error)
}

// CampaignStore persists campaign records.
type CampaignStore interface {
	CreateCampaign(ctx context.Context, campaign domain.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	ListCampaignsByGame(ctx context.Context, gameID string) ([]domain.Campaign, error)
}

// CustomFieldStore persists custom field declarations and their values.
type CustomFieldStore interface {
	CreateCustomField(ctx context.Context, field domain.CustomField) error
	GetCustomField(ctx context.Context, fieldID string) (domain.CustomField, error)
	ListCustomFieldsByGame(ctx context.Context, gameID string) ([]domain.CustomField, error)
	CreateCustomFieldValue(ctx context.Context, value domain.CustomFieldValue) error
	GetCustomFieldValue(ctx context.Context, valueID string) (domain.CustomFieldValue, error)
	ListCustomFieldValues(ctx context.Context, fieldID string) ([]domain.CustomFieldValue, error)
}

// KeyStore persists campaign key declarations.
type KeyStore interface {
	CreateKey(ctx context.Context, key domain.Key) error
	GetKey(ctx context.Context, keyID string) (domain.Key, error)
	ListKeysByCampaign(ctx context.Context, campaignID string) ([]domain.Key, error)
}

// EntryStore persists entries together with their player results.
type EntryStore interface {
	CreateEntry(ctx context.Context, entry domain.Entry) error
	GetEntry(ctx context.Context, entryID string) (domain.Entry, error)
	// ListEntriesByCampaign returns entries in chronological order
	// (played_at, then created_at, then id as a tiebreak).
	ListEntriesByCampaign(ctx context.Context, campaignID string) ([]domain.Entry, error)
	GetPlayerResult(ctx context.Context, resultID string) (domain.PlayerResult, error)
}

// EventStore persists the campaign event journal.
type EventStore interface {
	// AppendEvent assigns the next sequence number within the campaign and
	// persists the event. The stored event, with Seq populated, is returned.
	AppendEvent(ctx context.Context, ev event.Event) (event.Event, error)
	// ListEventsByCampaign returns events in append order.
	ListEventsByCampaign(ctx context.Context, campaignID string) ([]event.Event, error)
}

// Store aggregates every persistence contract the tracker needs.
type Store interface {
	GameStore
	PlayerStore
	CampaignStore
	CustomFieldStore
	KeyStore
	EntryStore
	EventStore
	Close() error
}
