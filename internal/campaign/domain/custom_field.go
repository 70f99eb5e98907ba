package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/playtally/internal/errors"
	"github.com/louisbranch/playtally/internal/platform/id"
)

var (
	// ErrCustomFieldNameEmpty indicates a missing custom field name.
	ErrCustomFieldNameEmpty = apperrors.New(apperrors.CodeCustomFieldNameEmpty, "custom field name is required")
	// ErrCustomFieldValueEmpty indicates a missing custom field value label.
	ErrCustomFieldValueEmpty = apperrors.New(apperrors.CodeCustomFieldValueEmpty, "custom field value is required")
)

// CustomField is a game-level attribute recorded on player results
// (e.g. "Character" for a campaign game).
type CustomField struct {
	ID        string
	GameID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomFieldValue is one recorded value of a custom field (e.g. a
// character name). Campaign events scoped to a custom field reference these
// by ID and group state under the value's label.
type CustomFieldValue struct {
	ID            string
	CustomFieldID string
	Value         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateCustomFieldInput describes the metadata needed to create a custom field.
type CreateCustomFieldInput struct {
	GameID string
	Name   string
}

// CreateCustomField creates a new custom field with a generated ID and timestamps.
func CreateCustomField(input CreateCustomFieldInput, now func() time.Time, idGenerator func() (string, error)) (CustomField, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return CustomField{}, ErrCustomFieldNameEmpty
	}

	fieldID, err := idGenerator()
	if err != nil {
		return CustomField{}, fmt.Errorf("generate custom field id: %w", err)
	}

	createdAt := now().UTC()
	return CustomField{
		ID:        fieldID,
		GameID:    strings.TrimSpace(input.GameID),
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// CreateCustomFieldValueInput describes the metadata needed to record a field value.
type CreateCustomFieldValueInput struct {
	CustomFieldID string
	Value         string
}

// CreateCustomFieldValue creates a new custom field value with a generated ID.
func CreateCustomFieldValue(input CreateCustomFieldValueInput, now func() time.Time, idGenerator func() (string, error)) (CustomFieldValue, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	value := strings.TrimSpace(input.Value)
	if value == "" {
		return CustomFieldValue{}, ErrCustomFieldValueEmpty
	}

	valueID, err := idGenerator()
	if err != nil {
		return CustomFieldValue{}, fmt.Errorf("generate custom field value id: %w", err)
	}

	createdAt := now().UTC()
	return CustomFieldValue{
		ID:            valueID,
		CustomFieldID: strings.TrimSpace(input.CustomFieldID),
		Value:         value,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}, nil
}
