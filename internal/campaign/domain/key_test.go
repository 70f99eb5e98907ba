package domain

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/playtally/internal/errors"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func sequentialIDs(t *testing.T) func() (string, error) {
	t.Helper()
	n := 0
	return func() (string, error) {
		n++
		return "id-" + string(rune('a'+n-1)), nil
	}
}

func TestParseKeyTypeAcceptsKnownTypes(t *testing.T) {
	cases := map[string]KeyType{
		"string":       KeyTypeString,
		"number":       KeyTypeNumber,
		"list":         KeyTypeList,
		"counted_list": KeyTypeCountedList,
	}
	for raw, want := range cases {
		got, err := ParseKeyType(raw)
		if err != nil {
			t.Fatalf("ParseKeyType(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseKeyType(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseKeyTypeRejectsUnknownType(t *testing.T) {
	_, err := ParseKeyType("tally")
	if err == nil {
		t.Fatal("expected error for unknown key type")
	}
	if !apperrors.IsCode(err, apperrors.CodeKeyInvalidType) {
		t.Fatalf("error code = %v, want %v", apperrors.GetCode(err), apperrors.CodeKeyInvalidType)
	}
}

func TestParseKeyScopeRejectsUnknownScope(t *testing.T) {
	_, err := ParseKeyScope("table")
	if err == nil {
		t.Fatal("expected error for unknown key scope")
	}
	if !apperrors.IsCode(err, apperrors.CodeKeyInvalidScope) {
		t.Fatalf("error code = %v, want %v", apperrors.GetCode(err), apperrors.CodeKeyInvalidScope)
	}
}

func TestCreateKey(t *testing.T) {
	key, err := CreateKey(CreateKeyInput{
		CampaignID: "camp-1",
		Name:       "  Gold ",
		Type:       "number",
		Scope:      "entry",
	}, fixedNow, sequentialIDs(t))
	if err != nil {
		t.Fatalf("CreateKey returned error: %v", err)
	}
	if key.ID == "" {
		t.Fatal("expected generated key id")
	}
	if key.Name != "Gold" {
		t.Fatalf("name = %q, want %q", key.Name, "Gold")
	}
	if key.Type != KeyTypeNumber {
		t.Fatalf("type = %v, want %v", key.Type, KeyTypeNumber)
	}
	if key.Scope != KeyScopeEntry {
		t.Fatalf("scope = %v, want %v", key.Scope, KeyScopeEntry)
	}
	if !key.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("created at = %v, want %v", key.CreatedAt, fixedNow())
	}
}

func TestCreateKeyRequiresCampaign(t *testing.T) {
	_, err := CreateKey(CreateKeyInput{Name: "Gold", Type: "number", Scope: "entry"}, fixedNow, sequentialIDs(t))
	if !apperrors.IsCode(err, apperrors.CodeKeyEmptyCampaignID) {
		t.Fatalf("error code = %v, want %v", apperrors.GetCode(err), apperrors.CodeKeyEmptyCampaignID)
	}
}

func TestCreateKeyRequiresName(t *testing.T) {
	_, err := CreateKey(CreateKeyInput{CampaignID: "camp-1", Type: "number", Scope: "entry"}, fixedNow, sequentialIDs(t))
	if !apperrors.IsCode(err, apperrors.CodeKeyNameEmpty) {
		t.Fatalf("error code = %v, want %v", apperrors.GetCode(err), apperrors.CodeKeyNameEmpty)
	}
}

func TestCreateKeyRejectsBadType(t *testing.T) {
	_, err := CreateKey(CreateKeyInput{CampaignID: "camp-1", Name: "Gold", Type: "golds", Scope: "entry"}, fixedNow, sequentialIDs(t))
	if !apperrors.IsCode(err, apperrors.CodeKeyInvalidType) {
		t.Fatalf("error code = %v, want %v", apperrors.GetCode(err), apperrors.CodeKeyInvalidType)
	}
}
