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

// CreateKey inserts one campaign key declaration.
func (s *Store) CreateKey(ctx context.Context, key domain.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	keyID := strings.TrimSpace(key.ID)
	if keyID == "" {
		return fmt.Errorf("campaign key id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO campaign_keys (
		   id, campaign_id, name, type, scope, scoped_to_custom_field_id, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		keyID,
		key.CampaignID,
		key.Name,
		string(key.Type),
		string(key.Scope),
		key.ScopedToCustomFieldID,
		toMillis(key.CreatedAt),
		toMillis(key.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create campaign key: %w", err)
	}
	return nil
}

// GetKey returns one campaign key by ID.
func (s *Store) GetKey(ctx context.Context, keyID string) (domain.Key, error) {
	if err := ctx.Err(); err != nil {
		return domain.Key{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Key{}, err
	}
	keyID = strings.TrimSpace(keyID)
	if keyID == "" {
		return domain.Key{}, fmt.Errorf("campaign key id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, name, type, scope, scoped_to_custom_field_id, created_at, updated_at
		   FROM campaign_keys WHERE id = ?`,
		keyID,
	)
	return scanKey(row.Scan)
}

// ListKeysByCampaign returns the keys of one campaign in declaration order.
func (s *Store) ListKeysByCampaign(ctx context.Context, campaignID string) ([]domain.Key, error) {
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
		`SELECT id, campaign_id, name, type, scope, scoped_to_custom_field_id, created_at, updated_at
		   FROM campaign_keys WHERE campaign_id = ? ORDER BY created_at ASC, id ASC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list campaign keys: %w", err)
	}
	defer rows.Close()

	var keys []domain.Key
	for rows.Next() {
		key, err := scanKey(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list campaign keys: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaign keys: %w", err)
	}
	return keys, nil
}

func scanKey(scan func(...any) error) (domain.Key, error) {
	var key domain.Key
	var keyType string
	var keyScope string
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&key.ID,
		&key.CampaignID,
		&key.Name,
		&keyType,
		&keyScope,
		&key.ScopedToCustomFieldID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Key{}, storage.ErrNotFound
		}
		return domain.Key{}, err
	}
	key.Type = domain.KeyType(keyType)
	key.Scope = domain.KeyScope(keyScope)
	key.CreatedAt = fromMillis(createdAt)
	key.UpdatedAt = fromMillis(updatedAt)
	return key, nil
}
