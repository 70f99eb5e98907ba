package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/playtally/internal/campaign/event"
	"github.com/louisbranch/playtally/internal/storage"
)

// AppendEvent assigns the next sequence number within the campaign and
// persists the event in one transaction.
func (s *Store) AppendEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if err := s.ready(); err != nil {
		return event.Event{}, err
	}
	eventID := strings.TrimSpace(ev.ID)
	if eventID == "" {
		return event.Event{}, fmt.Errorf("event id is required")
	}
	campaignID := strings.TrimSpace(ev.CampaignID)
	if campaignID == "" {
		return event.Event{}, fmt.Errorf("campaign id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin append event: %w", err)
	}

	var seq uint64
	row := tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM campaign_events WHERE campaign_id = ?`,
		campaignID,
	)
	if err := row.Scan(&seq); err != nil {
		_ = tx.Rollback()
		return event.Event{}, fmt.Errorf("next event seq: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO campaign_events (
		   id, campaign_id, seq, timestamp, entry_id, player_result_id, key_id,
		   custom_field_value_id, payload
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		eventID,
		campaignID,
		seq,
		toMillis(ev.Timestamp),
		ev.EntryID,
		ev.PlayerResultID,
		ev.KeyID,
		ev.CustomFieldValueID,
		string(ev.PayloadJSON),
	)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return event.Event{}, storage.ErrAlreadyExists
		}
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit append event: %w", err)
	}

	ev.ID = eventID
	ev.CampaignID = campaignID
	ev.Seq = seq
	ev.Timestamp = ev.Timestamp.UTC()
	return ev, nil
}

// ListEventsByCampaign returns the events of one campaign in append order.
func (s *Store) ListEventsByCampaign(ctx context.Context, campaignID string) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, fmt.Errorf("campaign id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, campaign_id, seq, timestamp, entry_id, player_result_id, key_id,
		        custom_field_value_id, payload
		   FROM campaign_events WHERE campaign_id = ? ORDER BY seq ASC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var ev event.Event
		var timestamp int64
		var payload string
		if err := rows.Scan(
			&ev.ID,
			&ev.CampaignID,
			&ev.Seq,
			&timestamp,
			&ev.EntryID,
			&ev.PlayerResultID,
			&ev.KeyID,
			&ev.CustomFieldValueID,
			&payload,
		); err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		ev.Timestamp = fromMillis(timestamp)
		ev.PayloadJSON = []byte(payload)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
