// Package event defines the append-only campaign event journal: one typed
// mutation instruction per record against a campaign key, scoped to an entry
// and optionally to a player result and custom field value.
package event

import "time"

// Event represents an immutable instruction in the campaign event journal.
type Event struct {
	// ID is the event identifier.
	ID string
	// CampaignID is the campaign this event belongs to.
	CampaignID string
	// Seq is the event sequence number within the campaign (starts at 1).
	// Assigned by storage on append; replay applies events in Seq order.
	Seq uint64
	// Timestamp is when the event was recorded.
	Timestamp time.Time
	// EntryID is the play session this event is attached to.
	EntryID string
	// PlayerResultID is set iff the referenced key's scope is player_result.
	PlayerResultID string
	// KeyID references the campaign key this event mutates.
	KeyID string
	// CustomFieldValueID is set iff the key is scoped to a custom field.
	CustomFieldValueID string
	// PayloadJSON holds the verb-tagged mutation payload as JSON.
	PayloadJSON []byte
}
