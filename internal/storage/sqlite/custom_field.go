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

// CreateCustomField inserts one custom field declaration.
func (s *Store) CreateCustomField(ctx context.Context, field domain.CustomField) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	fieldID := strings.TrimSpace(field.ID)
	if fieldID == "" {
		return fmt.Errorf("custom field id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO custom_fields (id, game_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		fieldID,
		field.GameID,
		field.Name,
		toMillis(field.CreatedAt),
		toMillis(field.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create custom field: %w", err)
	}
	return nil
}

// GetCustomField returns one custom field by ID.
func (s *Store) GetCustomField(ctx context.Context, fieldID string) (domain.CustomField, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomField{}, err
	}
	if err := s.ready(); err != nil {
		return domain.CustomField{}, err
	}
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return domain.CustomField{}, fmt.Errorf("custom field id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, game_id, name, created_at, updated_at FROM custom_fields WHERE id = ?`,
		fieldID,
	)
	return scanCustomField(row.Scan)
}

// ListCustomFieldsByGame returns the custom fields of one game ordered by name.
func (s *Store) ListCustomFieldsByGame(ctx context.Context, gameID string) ([]domain.CustomField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, game_id, name, created_at, updated_at
		   FROM custom_fields WHERE game_id = ? ORDER BY name ASC, id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	defer rows.Close()

	var fields []domain.CustomField
	for rows.Next() {
		field, err := scanCustomField(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list custom fields: %w", err)
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	return fields, nil
}

// CreateCustomFieldValue inserts one custom field value.
func (s *Store) CreateCustomFieldValue(ctx context.Context, value domain.CustomFieldValue) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	valueID := strings.TrimSpace(value.ID)
	if valueID == "" {
		return fmt.Errorf("custom field value id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO custom_field_values (id, custom_field_id, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		valueID,
		value.CustomFieldID,
		value.Value,
		toMillis(value.CreatedAt),
		toMillis(value.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create custom field value: %w", err)
	}
	return nil
}

// GetCustomFieldValue returns one custom field value by ID.
func (s *Store) GetCustomFieldValue(ctx context.Context, valueID string) (domain.CustomFieldValue, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomFieldValue{}, err
	}
	if err := s.ready(); err != nil {
		return domain.CustomFieldValue{}, err
	}
	valueID = strings.TrimSpace(valueID)
	if valueID == "" {
		return domain.CustomFieldValue{}, fmt.Errorf("custom field value id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, custom_field_id, value, created_at, updated_at
		   FROM custom_field_values WHERE id = ?`,
		valueID,
	)
	return scanCustomFieldValue(row.Scan)
}

// ListCustomFieldValues returns the values of one custom field ordered by value.
func (s *Store) ListCustomFieldValues(ctx context.Context, fieldID string) ([]domain.CustomFieldValue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return nil, fmt.Errorf("custom field id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, custom_field_id, value, created_at, updated_at
		   FROM custom_field_values WHERE custom_field_id = ? ORDER BY value ASC, id ASC`,
		fieldID,
	)
	if err != nil {
		return nil, fmt.Errorf("list custom field values: %w", err)
	}
	defer rows.Close()

	var values []domain.CustomFieldValue
	for rows.Next() {
		value, err := scanCustomFieldValue(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list custom field values: %w", err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list custom field values: %w", err)
	}
	return values, nil
}

func scanCustomField(scan func(...any) error) (domain.CustomField, error) {
	var field domain.CustomField
	var createdAt int64
	var updatedAt int64
	if err := scan(&field.ID, &field.GameID, &field.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CustomField{}, storage.ErrNotFound
		}
		return domain.CustomField{}, err
	}
	field.CreatedAt = fromMillis(createdAt)
	field.UpdatedAt = fromMillis(updatedAt)
	return field, nil
}

func scanCustomFieldValue(scan func(...any) error) (domain.CustomFieldValue, error) {
	var value domain.CustomFieldValue
	var createdAt int64
	var updatedAt int64
	if err := scan(&value.ID, &value.CustomFieldID, &value.Value, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CustomFieldValue{}, storage.ErrNotFound
		}
		return domain.CustomFieldValue{}, err
	}
	value.CreatedAt = fromMillis(createdAt)
	value.UpdatedAt = fromMillis(updatedAt)
	return value, nil
}
