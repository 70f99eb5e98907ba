package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/storage"
)

// CreateEntry inserts one entry with its player results in one transaction.
func (s *Store) CreateEntry(ctx context.Context, entry domain.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	entryID := strings.TrimSpace(entry.ID)
	if entryID == "" {
		return fmt.Errorf("entry id is required")
	}
	if len(entry.Results) == 0 {
		return fmt.Errorf("entry requires at least one player result")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create entry: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO entries (id, campaign_id, played_at, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entryID,
		entry.CampaignID,
		toMillis(entry.PlayedAt),
		entry.Notes,
		toMillis(entry.CreatedAt),
		toMillis(entry.UpdatedAt),
	)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create entry: %w", err)
	}

	for _, result := range entry.Results {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO player_results (id, entry_id, player_id, position, won, score)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			result.ID,
			entryID,
			result.PlayerID,
			result.Position,
			boolToInt(result.Won),
			result.Score,
		)
		if err != nil {
			_ = tx.Rollback()
			if isUniqueViolation(err) {
				return storage.ErrAlreadyExists
			}
			return fmt.Errorf("create player result: %w", err)
		}
		for position, valueID := range result.CustomFieldValueIDs {
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO player_result_custom_field_values (player_result_id, custom_field_value_id, position)
				 VALUES (?, ?, ?)`,
				result.ID,
				valueID,
				position,
			)
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("create player result field value: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create entry: %w", err)
	}
	return nil
}

// GetEntry returns one entry with its player results in table order.
func (s *Store) GetEntry(ctx context.Context, entryID string) (domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return domain.Entry{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Entry{}, err
	}
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return domain.Entry{}, fmt.Errorf("entry id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, played_at, notes, created_at, updated_at FROM entries WHERE id = ?`,
		entryID,
	)
	entry, err := scanEntry(row.Scan)
	if err != nil {
		return domain.Entry{}, err
	}

	results, err := s.listResults(ctx, `WHERE pr.entry_id = ?`, entryID)
	if err != nil {
		return domain.Entry{}, err
	}
	entry.Results = results
	return entry, nil
}

// ListEntriesByCampaign returns the entries of one campaign in chronological
// order, each with its player results in table order.
func (s *Store) ListEntriesByCampaign(ctx context.Context, campaignID string) ([]domain.Entry, error) {
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
		`SELECT id, campaign_id, played_at, notes, created_at, updated_at
		   FROM entries WHERE campaign_id = ?
		  ORDER BY played_at ASC, created_at ASC, id ASC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	index := make(map[string]int)
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}
		index[entry.ID] = len(entries)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	results, err := s.listResults(
		ctx,
		`JOIN entries e ON e.id = pr.entry_id WHERE e.campaign_id = ?`,
		campaignID,
	)
	if err != nil {
		return nil, err
	}
	for _, result := range results {
		at, ok := index[result.EntryID]
		if !ok {
			continue
		}
		entries[at].Results = append(entries[at].Results, result)
	}
	return entries, nil
}

// GetPlayerResult returns one player result by ID.
func (s *Store) GetPlayerResult(ctx context.Context, resultID string) (domain.PlayerResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlayerResult{}, err
	}
	if err := s.ready(); err != nil {
		return domain.PlayerResult{}, err
	}
	resultID = strings.TrimSpace(resultID)
	if resultID == "" {
		return domain.PlayerResult{}, fmt.Errorf("player result id is required")
	}

	results, err := s.listResults(ctx, `WHERE pr.id = ?`, resultID)
	if err != nil {
		return domain.PlayerResult{}, err
	}
	if len(results) == 0 {
		return domain.PlayerResult{}, storage.ErrNotFound
	}
	return results[0], nil
}

// listResults loads player results matching the given clause, with their
// custom field value IDs attached in recorded order.
func (s *Store) listResults(ctx context.Context, clause string, args ...any) ([]domain.PlayerResult, error) {
	query := `SELECT pr.id, pr.entry_id, pr.player_id, pr.position, pr.won, pr.score
	            FROM player_results pr ` + clause + `
	           ORDER BY pr.entry_id ASC, pr.position ASC`
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}
	defer rows.Close()

	var results []domain.PlayerResult
	index := make(map[string]int)
	for rows.Next() {
		var result domain.PlayerResult
		var won int
		if err := rows.Scan(
			&result.ID,
			&result.EntryID,
			&result.PlayerID,
			&result.Position,
			&won,
			&result.Score,
		); err != nil {
			return nil, fmt.Errorf("list player results: %w", err)
		}
		result.Won = won != 0
		index[result.ID] = len(results)
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	valueQuery := `SELECT prv.player_result_id, prv.custom_field_value_id
	                 FROM player_result_custom_field_values prv
	                 JOIN player_results pr ON pr.id = prv.player_result_id ` + clause + `
	                ORDER BY prv.player_result_id ASC, prv.position ASC`
	valueRows, err := s.sqlDB.QueryContext(ctx, valueQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list player result field values: %w", err)
	}
	defer valueRows.Close()

	for valueRows.Next() {
		var resultID string
		var valueID string
		if err := valueRows.Scan(&resultID, &valueID); err != nil {
			return nil, fmt.Errorf("list player result field values: %w", err)
		}
		at, ok := index[resultID]
		if !ok {
			continue
		}
		results[at].CustomFieldValueIDs = append(results[at].CustomFieldValueIDs, valueID)
	}
	if err := valueRows.Err(); err != nil {
		return nil, fmt.Errorf("list player result field values: %w", err)
	}
	return results, nil
}

func scanEntry(scan func(...any) error) (domain.Entry, error) {
	var entry domain.Entry
	var playedAt int64
	var createdAt int64
	var updatedAt int64
	if err := scan(&entry.ID, &entry.CampaignID, &playedAt, &entry.Notes, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Entry{}, storage.ErrNotFound
		}
		return domain.Entry{}, err
	}
	entry.PlayedAt = fromMillis(playedAt)
	entry.CreatedAt = fromMillis(createdAt)
	entry.UpdatedAt = fromMillis(updatedAt)
	return entry, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
