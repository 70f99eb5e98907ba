package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/playtally/internal/errors"
	"github.com/louisbranch/playtally/internal/platform/id"
)

// KeyType identifies the value kind tracked by a campaign key.
// The type is fixed at creation and never changes afterwards.
type KeyType string

const (
	// KeyTypeString tracks a single replaceable string.
	KeyTypeString KeyType = "string"
	// KeyTypeNumber tracks a numeric value supporting replace/increase/decrease.
	KeyTypeNumber KeyType = "number"
	// KeyTypeList tracks an insertion-ordered set of strings.
	KeyTypeList KeyType = "list"
	// KeyTypeCountedList tracks item names with positive counts.
	KeyTypeCountedList KeyType = "counted_list"
)

// KeyScope identifies where a campaign key accumulates state.
type KeyScope string

const (
	// KeyScopeEntry accumulates one value per campaign, shown in the Global section.
	KeyScopeEntry KeyScope = "entry"
	// KeyScopePlayerResult accumulates one value per player.
	KeyScopePlayerResult KeyScope = "player_result"
)

var (
	// ErrKeyNameEmpty indicates a missing campaign key name.
	ErrKeyNameEmpty = apperrors.New(apperrors.CodeKeyNameEmpty, "campaign key name is required")
	// ErrKeyEmptyCampaignID indicates a campaign key without a campaign reference.
	ErrKeyEmptyCampaignID = apperrors.New(apperrors.CodeKeyEmptyCampaignID, "campaign key campaign id is required")
)

// ParseKeyType validates a raw key type string.
// Unrecognized values are a construction-time failure, never a silent default.
func ParseKeyType(value string) (KeyType, error) {
	switch KeyType(strings.TrimSpace(value)) {
	case KeyTypeString:
		return KeyTypeString, nil
	case KeyTypeNumber:
		return KeyTypeNumber, nil
	case KeyTypeList:
		return KeyTypeList, nil
	case KeyTypeCountedList:
		return KeyTypeCountedList, nil
	default:
		return "", apperrors.Newf(apperrors.CodeKeyInvalidType, "unknown campaign key type %q", value).
			WithMetadata(map[string]string{"Type": value})
	}
}

// ParseKeyScope validates a raw key scope string.
func ParseKeyScope(value string) (KeyScope, error) {
	switch KeyScope(strings.TrimSpace(value)) {
	case KeyScopeEntry:
		return KeyScopeEntry, nil
	case KeyScopePlayerResult:
		return KeyScopePlayerResult, nil
	default:
		return "", apperrors.Newf(apperrors.CodeKeyInvalidScope, "unknown campaign key scope %q", value).
			WithMetadata(map[string]string{"Scope": value})
	}
}

// Key declares a named, typed, scoped attribute tracked across a campaign.
type Key struct {
	ID         string
	CampaignID string
	Name       string
	Type       KeyType
	Scope      KeyScope
	// ScopedToCustomFieldID partitions this key's state by the value of the
	// referenced custom field on the relevant player result. Empty when the
	// key is not further scoped.
	ScopedToCustomFieldID string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CreateKeyInput describes the metadata needed to declare a campaign key.
// Type and Scope are raw strings validated during creation.
type CreateKeyInput struct {
	CampaignID            string
	Name                  string
	Type                  string
	Scope                 string
	ScopedToCustomFieldID string
}

// CreateKey creates a new campaign key with a generated ID and timestamps.
// It fails fast on unrecognized type or scope strings.
func CreateKey(input CreateKeyInput, now func() time.Time, idGenerator func() (string, error)) (Key, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	campaignID := strings.TrimSpace(input.CampaignID)
	if campaignID == "" {
		return Key{}, ErrKeyEmptyCampaignID
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Key{}, ErrKeyNameEmpty
	}
	keyType, err := ParseKeyType(input.Type)
	if err != nil {
		return Key{}, err
	}
	keyScope, err := ParseKeyScope(input.Scope)
	if err != nil {
		return Key{}, err
	}

	keyID, err := idGenerator()
	if err != nil {
		return Key{}, fmt.Errorf("generate campaign key id: %w", err)
	}

	createdAt := now().UTC()
	return Key{
		ID:                    keyID,
		CampaignID:            campaignID,
		Name:                  name,
		Type:                  keyType,
		Scope:                 keyScope,
		ScopedToCustomFieldID: strings.TrimSpace(input.ScopedToCustomFieldID),
		CreatedAt:             createdAt,
		UpdatedAt:             createdAt,
	}, nil
}
