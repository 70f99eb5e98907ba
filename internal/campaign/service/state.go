package service

import (
	"context"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/campaign/event"
	"github.com/louisbranch/playtally/internal/campaign/state"
)

// CampaignState describes the replayed state of one campaign: its entries in
// chronological order and, per entry, the section snapshot as of that entry.
type CampaignState struct {
	Campaign domain.Campaign
	// Entries holds the campaign's entries in replay order.
	Entries []domain.Entry
	// States maps entry ID to that entry's ordered section snapshot. Every
	// entry in Entries has a mapping, possibly to an empty section list.
	States map[string][]state.Section
}

// GetCampaignState replays the campaign journal and returns per-entry
// snapshots. Events whose payloads no longer decode are replayed as no-ops;
// label resolution uses the custom field values as stored now.
func (s *Service) GetCampaignState(ctx context.Context, campaignID string) (CampaignState, error) {
	campaign, err := s.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return CampaignState{}, storeError("resolve campaign", err)
	}
	entries, err := s.store.ListEntriesByCampaign(ctx, campaign.ID)
	if err != nil {
		return CampaignState{}, storeError("list entries", err)
	}
	events, err := s.store.ListEventsByCampaign(ctx, campaign.ID)
	if err != nil {
		return CampaignState{}, storeError("list events", err)
	}
	keys, err := s.store.ListKeysByCampaign(ctx, campaign.ID)
	if err != nil {
		return CampaignState{}, storeError("list campaign keys", err)
	}

	entryRefs, err := s.buildEntryRefs(ctx, entries)
	if err != nil {
		return CampaignState{}, err
	}
	eventRefs, err := s.buildEventRefs(ctx, keys, events)
	if err != nil {
		return CampaignState{}, err
	}

	return CampaignState{
		Campaign: campaign,
		Entries:  entries,
		States:   state.ComputeEntryStates(entryRefs, eventRefs),
	}, nil
}

// buildEntryRefs projects stored entries for replay, resolving player names.
func (s *Service) buildEntryRefs(ctx context.Context, entries []domain.Entry) ([]state.EntryRef, error) {
	names := make(map[string]string)
	refs := make([]state.EntryRef, 0, len(entries))
	for _, entry := range entries {
		ref := state.EntryRef{ID: entry.ID, Results: make([]state.PlayerResultRef, 0, len(entry.Results))}
		for _, result := range entry.Results {
			name, ok := names[result.PlayerID]
			if !ok {
				player, err := s.store.GetPlayer(ctx, result.PlayerID)
				if err != nil {
					return nil, storeError("resolve player", err)
				}
				name = player.Name
				names[result.PlayerID] = name
			}
			ref.Results = append(ref.Results, state.PlayerResultRef{
				ID:         result.ID,
				PlayerID:   result.PlayerID,
				PlayerName: name,
			})
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// buildEventRefs projects stored events for replay. Events referencing keys
// that no longer exist, or payloads that no longer decode, carry a nil
// payload and replay as no-ops.
func (s *Service) buildEventRefs(ctx context.Context, keys []domain.Key, events []event.Event) ([]state.Event, error) {
	keysByID := make(map[string]domain.Key, len(keys))
	for _, key := range keys {
		keysByID[key.ID] = key
	}
	labels := make(map[string]string)

	refs := make([]state.Event, 0, len(events))
	for _, ev := range events {
		ref := state.Event{
			EntryID:            ev.EntryID,
			PlayerResultID:     ev.PlayerResultID,
			CustomFieldValueID: ev.CustomFieldValueID,
		}
		key, ok := keysByID[ev.KeyID]
		if ok {
			ref.Key = state.KeyRef{
				ID:                    key.ID,
				Name:                  key.Name,
				Type:                  key.Type,
				Scope:                 key.Scope,
				ScopedToCustomFieldID: key.ScopedToCustomFieldID,
			}
			if payload, decoded := event.DecodePayload(key.Type, ev.PayloadJSON); decoded {
				ref.Payload = payload
			}
		}
		if ev.CustomFieldValueID != "" {
			label, cached := labels[ev.CustomFieldValueID]
			if !cached {
				value, err := s.store.GetCustomFieldValue(ctx, ev.CustomFieldValueID)
				if err == nil {
					label = value.Value
				}
				labels[ev.CustomFieldValueID] = label
			}
			ref.CustomFieldValueLabel = label
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
