package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/campaign/event"
	apperrors "github.com/louisbranch/playtally/internal/errors"
)

// AppendEventInput describes one campaign event to journal.
type AppendEventInput struct {
	CampaignID string
	EntryID    string
	// PlayerResultID targets one player's result; required iff the key is
	// player-result scoped.
	PlayerResultID string
	KeyID          string
	// CustomFieldValueID partitions the key's state; required iff the key
	// declares a custom field scope.
	CustomFieldValueID string
	Payload            event.Payload
}

// AppendEvent validates one event against the records it references and
// appends it to the campaign journal. The journal itself tolerates drift at
// replay time; appends are strict so inconsistencies surface at write time.
func (s *Service) AppendEvent(ctx context.Context, input AppendEventInput) (event.Event, error) {
	campaignID := strings.TrimSpace(input.CampaignID)
	if campaignID == "" {
		return event.Event{}, apperrors.New(apperrors.CodeEventEmptyCampaignID, "event campaign id is required")
	}
	entryID := strings.TrimSpace(input.EntryID)
	if entryID == "" {
		return event.Event{}, apperrors.New(apperrors.CodeEventEmptyEntryID, "event entry id is required")
	}
	keyID := strings.TrimSpace(input.KeyID)
	if keyID == "" {
		return event.Event{}, apperrors.New(apperrors.CodeEventEmptyKeyID, "event key id is required")
	}
	if input.Payload == nil {
		return event.Event{}, apperrors.New(apperrors.CodeEventEmptyPayload, "event payload is required")
	}

	if _, err := s.store.GetCampaign(ctx, campaignID); err != nil {
		return event.Event{}, storeError("resolve campaign", err)
	}
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return event.Event{}, storeError("resolve entry", err)
	}
	if entry.CampaignID != campaignID {
		return event.Event{}, apperrors.New(apperrors.CodeNotFound, "entry does not belong to the campaign")
	}

	key, err := s.store.GetKey(ctx, keyID)
	if err != nil {
		return event.Event{}, storeError("resolve campaign key", err)
	}
	if key.CampaignID != campaignID {
		return event.Event{}, apperrors.New(apperrors.CodeEventKeyMismatch, "key does not belong to the campaign")
	}
	if !event.AppliesTo(key.Type, input.Payload) {
		return event.Event{}, apperrors.Newf(apperrors.CodeEventPayloadMismatch,
			"payload verb %q does not apply to key type %q", input.Payload.PayloadVerb(), key.Type).
			WithMetadata(map[string]string{"Type": string(key.Type)})
	}

	resultID := strings.TrimSpace(input.PlayerResultID)
	var result domain.PlayerResult
	switch key.Scope {
	case domain.KeyScopePlayerResult:
		if resultID == "" {
			return event.Event{}, apperrors.New(apperrors.CodeEventMissingPlayerResult,
				"player-scoped key requires a player result")
		}
		result, err = s.store.GetPlayerResult(ctx, resultID)
		if err != nil {
			return event.Event{}, storeError("resolve player result", err)
		}
		if result.EntryID != entryID {
			return event.Event{}, apperrors.New(apperrors.CodeEventResultMismatch,
				"player result does not belong to the entry")
		}
	default:
		if resultID != "" {
			return event.Event{}, apperrors.New(apperrors.CodeEventUnexpectedPlayerResult,
				"entry-scoped key does not accept a player result")
		}
	}

	valueID := strings.TrimSpace(input.CustomFieldValueID)
	if key.ScopedToCustomFieldID != "" {
		if valueID == "" {
			return event.Event{}, apperrors.New(apperrors.CodeEventMissingCustomFieldValue,
				"field-scoped key requires a custom field value")
		}
		value, err := s.store.GetCustomFieldValue(ctx, valueID)
		if err != nil {
			return event.Event{}, storeError("resolve custom field value", err)
		}
		if value.CustomFieldID != key.ScopedToCustomFieldID {
			return event.Event{}, apperrors.New(apperrors.CodeEventValueMismatch,
				"custom field value does not belong to the key's field")
		}
		if result.ID != "" && !containsValue(result.CustomFieldValueIDs, valueID) {
			return event.Event{}, apperrors.New(apperrors.CodeEventValueMismatch,
				"custom field value is not recorded on the player result")
		}
	} else if valueID != "" {
		return event.Event{}, apperrors.New(apperrors.CodeEventUnexpectedCustomFieldValue,
			"key does not declare a custom field scope")
	}

	payloadJSON, err := event.EncodePayload(input.Payload)
	if err != nil {
		return event.Event{}, fmt.Errorf("encode payload: %w", err)
	}
	eventID, err := s.idGenerator()
	if err != nil {
		return event.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	stored, err := s.store.AppendEvent(ctx, event.Event{
		ID:                 eventID,
		CampaignID:         campaignID,
		Timestamp:          s.now().UTC(),
		EntryID:            entryID,
		PlayerResultID:     resultID,
		KeyID:              keyID,
		CustomFieldValueID: valueID,
		PayloadJSON:        payloadJSON,
	})
	if err != nil {
		return event.Event{}, storeError("append event", err)
	}
	return stored, nil
}

// ListEventsByCampaign returns the campaign journal in append order.
func (s *Service) ListEventsByCampaign(ctx context.Context, campaignID string) ([]event.Event, error) {
	events, err := s.store.ListEventsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, storeError("list events", err)
	}
	return events, nil
}

func containsValue(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
