// Package service orchestrates tracker operations over storage: record
// creation, event journaling, and campaign state reads.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	apperrors "github.com/louisbranch/playtally/internal/errors"
	"github.com/louisbranch/playtally/internal/platform/id"
	"github.com/louisbranch/playtally/internal/storage"
)

// Service exposes tracker operations backed by a storage implementation.
type Service struct {
	store       storage.Store
	now         func() time.Time
	idGenerator func() (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the service ID generator.
func WithIDGenerator(idGenerator func() (string, error)) Option {
	return func(s *Service) { s.idGenerator = idGenerator }
}

// NewService creates a tracker service backed by the given store.
func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		now:         time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGame registers a new game.
func (s *Service) CreateGame(ctx context.Context, input domain.CreateGameInput) (domain.Game, error) {
	game, err := domain.CreateGame(input, s.now, s.idGenerator)
	if err != nil {
		return domain.Game{}, err
	}
	if err := s.store.CreateGame(ctx, game); err != nil {
		return domain.Game{}, storeError("create game", err)
	}
	return game, nil
}

// GetGame returns one game by ID.
func (s *Service) GetGame(ctx context.Context, gameID string) (domain.Game, error) {
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return domain.Game{}, storeError("get game", err)
	}
	return game, nil
}

// ListGames returns every registered game.
func (s *Service) ListGames(ctx context.Context) ([]domain.Game, error) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, storeError("list games", err)
	}
	return games, nil
}

// CreatePlayer registers a new player.
func (s *Service) CreatePlayer(ctx context.Context, input domain.CreatePlayerInput) (domain.Player, error) {
	player, err := domain.CreatePlayer(input, s.now, s.idGenerator)
	if err != nil {
		return domain.Player{}, err
	}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		return domain.Player{}, storeError("create player", err)
	}
	return player, nil
}

// ListPlayers returns every registered player.
func (s *Service) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, storeError("list players", err)
	}
	return players, nil
}

// CreateCampaign starts a new campaign under an existing game.
func (s *Service) CreateCampaign(ctx context.Context, input domain.CreateCampaignInput) (domain.Campaign, error) {
	campaign, err := domain.CreateCampaign(input, s.now, s.idGenerator)
	if err != nil {
		return domain.Campaign{}, err
	}
	if _, err := s.store.GetGame(ctx, campaign.GameID); err != nil {
		return domain.Campaign{}, storeError("resolve game", err)
	}
	if err := s.store.CreateCampaign(ctx, campaign); err != nil {
		return domain.Campaign{}, storeError("create campaign", err)
	}
	return campaign, nil
}

// GetCampaign returns one campaign by ID.
func (s *Service) GetCampaign(ctx context.Context, campaignID string) (domain.Campaign, error) {
	campaign, err := s.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return domain.Campaign{}, storeError("get campaign", err)
	}
	return campaign, nil
}

// ListCampaigns returns every campaign.
func (s *Service) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.store.ListCampaigns(ctx)
	if err != nil {
		return nil, storeError("list campaigns", err)
	}
	return campaigns, nil
}

// ListCampaignsByGame returns the campaigns of one game.
func (s *Service) ListCampaignsByGame(ctx context.Context, gameID string) ([]domain.Campaign, error) {
	campaigns, err := s.store.ListCampaignsByGame(ctx, gameID)
	if err != nil {
		return nil, storeError("list campaigns", err)
	}
	return campaigns, nil
}

// CreateCustomField declares a custom field on an existing game.
func (s *Service) CreateCustomField(ctx context.Context, input domain.CreateCustomFieldInput) (domain.CustomField, error) {
	field, err := domain.CreateCustomField(input, s.now, s.idGenerator)
	if err != nil {
		return domain.CustomField{}, err
	}
	if _, err := s.store.GetGame(ctx, field.GameID); err != nil {
		return domain.CustomField{}, storeError("resolve game", err)
	}
	if err := s.store.CreateCustomField(ctx, field); err != nil {
		return domain.CustomField{}, storeError("create custom field", err)
	}
	return field, nil
}

// CreateCustomFieldValue records a new value for an existing custom field.
func (s *Service) CreateCustomFieldValue(ctx context.Context, input domain.CreateCustomFieldValueInput) (domain.CustomFieldValue, error) {
	value, err := domain.CreateCustomFieldValue(input, s.now, s.idGenerator)
	if err != nil {
		return domain.CustomFieldValue{}, err
	}
	if _, err := s.store.GetCustomField(ctx, value.CustomFieldID); err != nil {
		return domain.CustomFieldValue{}, storeError("resolve custom field", err)
	}
	if err := s.store.CreateCustomFieldValue(ctx, value); err != nil {
		return domain.CustomFieldValue{}, storeError("create custom field value", err)
	}
	return value, nil
}

// ListCustomFieldsByGame returns the custom fields declared on one game.
func (s *Service) ListCustomFieldsByGame(ctx context.Context, gameID string) ([]domain.CustomField, error) {
	fields, err := s.store.ListCustomFieldsByGame(ctx, gameID)
	if err != nil {
		return nil, storeError("list custom fields", err)
	}
	return fields, nil
}

// ListCustomFieldValues returns the recorded values of one custom field.
func (s *Service) ListCustomFieldValues(ctx context.Context, fieldID string) ([]domain.CustomFieldValue, error) {
	values, err := s.store.ListCustomFieldValues(ctx, fieldID)
	if err != nil {
		return nil, storeError("list custom field values", err)
	}
	return values, nil
}

// CreateKey declares a campaign key on an existing campaign. When the key is
// scoped to a custom field, the field must exist on the campaign's game.
func (s *Service) CreateKey(ctx context.Context, input domain.CreateKeyInput) (domain.Key, error) {
	key, err := domain.CreateKey(input, s.now, s.idGenerator)
	if err != nil {
		return domain.Key{}, err
	}
	campaign, err := s.store.GetCampaign(ctx, key.CampaignID)
	if err != nil {
		return domain.Key{}, storeError("resolve campaign", err)
	}
	if key.ScopedToCustomFieldID != "" {
		field, err := s.store.GetCustomField(ctx, key.ScopedToCustomFieldID)
		if err != nil {
			return domain.Key{}, storeError("resolve custom field", err)
		}
		if field.GameID != campaign.GameID {
			return domain.Key{}, apperrors.New(apperrors.CodeEventValueMismatch,
				"custom field does not belong to the campaign's game")
		}
	}
	if err := s.store.CreateKey(ctx, key); err != nil {
		return domain.Key{}, storeError("create campaign key", err)
	}
	return key, nil
}

// GetKey returns one campaign key by ID.
func (s *Service) GetKey(ctx context.Context, keyID string) (domain.Key, error) {
	key, err := s.store.GetKey(ctx, keyID)
	if err != nil {
		return domain.Key{}, storeError("get campaign key", err)
	}
	return key, nil
}

// ListKeysByCampaign returns the keys declared on one campaign.
func (s *Service) ListKeysByCampaign(ctx context.Context, campaignID string) ([]domain.Key, error) {
	keys, err := s.store.ListKeysByCampaign(ctx, campaignID)
	if err != nil {
		return nil, storeError("list campaign keys", err)
	}
	return keys, nil
}

// LogEntry records one play session under an existing campaign. Every
// referenced player and custom field value must already exist.
func (s *Service) LogEntry(ctx context.Context, input domain.CreateEntryInput) (domain.Entry, error) {
	entry, err := domain.CreateEntry(input, s.now, s.idGenerator)
	if err != nil {
		return domain.Entry{}, err
	}
	if _, err := s.store.GetCampaign(ctx, entry.CampaignID); err != nil {
		return domain.Entry{}, storeError("resolve campaign", err)
	}
	for _, result := range entry.Results {
		if _, err := s.store.GetPlayer(ctx, result.PlayerID); err != nil {
			return domain.Entry{}, storeError("resolve player", err)
		}
		for _, valueID := range result.CustomFieldValueIDs {
			if _, err := s.store.GetCustomFieldValue(ctx, valueID); err != nil {
				return domain.Entry{}, storeError("resolve custom field value", err)
			}
		}
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return domain.Entry{}, storeError("create entry", err)
	}
	return entry, nil
}

// GetEntry returns one entry by ID.
func (s *Service) GetEntry(ctx context.Context, entryID string) (domain.Entry, error) {
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return domain.Entry{}, storeError("get entry", err)
	}
	return entry, nil
}

// ListEntriesByCampaign returns the entries of one campaign in chronological order.
func (s *Service) ListEntriesByCampaign(ctx context.Context, campaignID string) ([]domain.Entry, error) {
	entries, err := s.store.ListEntriesByCampaign(ctx, campaignID)
	if err != nil {
		return nil, storeError("list entries", err)
	}
	return entries, nil
}

// storeError translates storage sentinels into coded errors; other failures
// pass through wrapped.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.New(apperrors.CodeNotFound, op+": record not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		return apperrors.New(apperrors.CodeAlreadyExists, op+": record already exists")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
