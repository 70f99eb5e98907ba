package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/campaign/event"
	"github.com/louisbranch/playtally/internal/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetGameRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	game := domain.Game{ID: "game-1", Name: "Gloomhaven", CreatedAt: now, UpdatedAt: now}
	if err := store.CreateGame(context.Background(), game); err != nil {
		t.Fatalf("create game: %v", err)
	}

	got, err := store.GetGame(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.Name != "Gloomhaven" {
		t.Fatalf("name = %q, want Gloomhaven", got.Name)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, now)
	}
}

func TestCreateGameReturnsAlreadyExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	game := domain.Game{ID: "game-dup", Name: "Root", CreatedAt: now, UpdatedAt: now}
	if err := store.CreateGame(context.Background(), game); err != nil {
		t.Fatalf("create game: %v", err)
	}
	err := store.CreateGame(context.Background(), game)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetGameReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetGame(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing game error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListCampaignsByGameFiltersAndOrders(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedGame(t, store, "game-1")
	seedGame(t, store, "game-2")
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	campaigns := []domain.Campaign{
		{ID: "camp-b", GameID: "game-1", Name: "Winter Arc", CreatedAt: now, UpdatedAt: now},
		{ID: "camp-a", GameID: "game-1", Name: "Autumn Arc", CreatedAt: now, UpdatedAt: now},
		{ID: "camp-c", GameID: "game-2", Name: "Other Game", CreatedAt: now, UpdatedAt: now},
	}
	for _, campaign := range campaigns {
		if err := store.CreateCampaign(context.Background(), campaign); err != nil {
			t.Fatalf("create campaign %s: %v", campaign.ID, err)
		}
	}

	got, err := store.ListCampaignsByGame(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("list campaigns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("campaign count = %d, want 2", len(got))
	}
	if got[0].ID != "camp-a" || got[1].ID != "camp-b" {
		t.Fatalf("campaign order = [%s, %s], want [camp-a, camp-b]", got[0].ID, got[1].ID)
	}
}

func TestCustomFieldValueUniquePerField(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedGame(t, store, "game-1")
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	field := domain.CustomField{ID: "field-1", GameID: "game-1", Name: "Character", CreatedAt: now, UpdatedAt: now}
	if err := store.CreateCustomField(context.Background(), field); err != nil {
		t.Fatalf("create custom field: %v", err)
	}
	value := domain.CustomFieldValue{ID: "cfv-1", CustomFieldID: "field-1", Value: "Brute", CreatedAt: now, UpdatedAt: now}
	if err := store.CreateCustomFieldValue(context.Background(), value); err != nil {
		t.Fatalf("create custom field value: %v", err)
	}
	dup := domain.CustomFieldValue{ID: "cfv-2", CustomFieldID: "field-1", Value: "Brute", CreatedAt: now, UpdatedAt: now}
	err := store.CreateCustomFieldValue(context.Background(), dup)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate value error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestCreateKeyRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedCampaign(t, store, "game-1", "camp-1")
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	key := domain.Key{
		ID:                    "key-1",
		CampaignID:            "camp-1",
		Name:                  "Gold",
		Type:                  domain.KeyTypeNumber,
		Scope:                 domain.KeyScopeEntry,
		ScopedToCustomFieldID: "",
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := store.CreateKey(context.Background(), key); err != nil {
		t.Fatalf("create key: %v", err)
	}

	got, err := store.GetKey(context.Background(), "key-1")
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if got.Type != domain.KeyTypeNumber {
		t.Fatalf("type = %q, want number", got.Type)
	}
	if got.Scope != domain.KeyScopeEntry {
		t.Fatalf("scope = %q, want entry", got.Scope)
	}
}

func TestEntryRoundTripWithResults(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedCampaign(t, store, "game-1", "camp-1")
	seedPlayer(t, store, "player-1")
	seedPlayer(t, store, "player-2")
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	entry := domain.Entry{
		ID:         "entry-1",
		CampaignID: "camp-1",
		PlayedAt:   now,
		Notes:      "first session",
		Results: []domain.PlayerResult{
			{ID: "res-1", EntryID: "entry-1", PlayerID: "player-1", Position: 0, Won: true, Score: 42},
			{ID: "res-2", EntryID: "entry-1", PlayerID: "player-2", Position: 1, Score: 17},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	got, err := store.GetEntry(context.Background(), "entry-1")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if got.Notes != "first session" {
		t.Fatalf("notes = %q, want first session", got.Notes)
	}
	if len(got.Results) != 2 {
		t.Fatalf("result count = %d, want 2", len(got.Results))
	}
	if got.Results[0].ID != "res-1" || got.Results[1].ID != "res-2" {
		t.Fatalf("result order = [%s, %s], want [res-1, res-2]", got.Results[0].ID, got.Results[1].ID)
	}
	if !got.Results[0].Won {
		t.Fatal("first result should record a win")
	}
	if got.Results[1].Score != 17 {
		t.Fatalf("second score = %d, want 17", got.Results[1].Score)
	}
}

func TestListEntriesByCampaignChronological(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedCampaign(t, store, "game-1", "camp-1")
	seedPlayer(t, store, "player-1")
	base := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	playedAts := map[string]time.Time{
		"entry-late":  base.Add(time.Hour),
		"entry-early": base,
	}
	for _, id := range []string{"entry-late", "entry-early"} {
		playedAt := playedAts[id]
		entry := domain.Entry{
			ID:         id,
			CampaignID: "camp-1",
			PlayedAt:   playedAt,
			Results: []domain.PlayerResult{
				{ID: id + "-res", EntryID: id, PlayerID: "player-1", Position: 0},
			},
			CreatedAt: base,
			UpdatedAt: base,
		}
		if err := store.CreateEntry(context.Background(), entry); err != nil {
			t.Fatalf("create entry %s: %v", id, err)
		}
	}

	got, err := store.ListEntriesByCampaign(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entry count = %d, want 2", len(got))
	}
	if got[0].ID != "entry-early" || got[1].ID != "entry-late" {
		t.Fatalf("entry order = [%s, %s], want [entry-early, entry-late]", got[0].ID, got[1].ID)
	}
	if len(got[0].Results) != 1 {
		t.Fatalf("entry-early result count = %d, want 1", len(got[0].Results))
	}
}

func TestPlayerResultCustomFieldValuesRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedCampaign(t, store, "game-1", "camp-1")
	seedPlayer(t, store, "player-1")
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	field := domain.CustomField{ID: "field-1", GameID: "game-1", Name: "Character", CreatedAt: now, UpdatedAt: now}
	if err := store.CreateCustomField(context.Background(), field); err != nil {
		t.Fatalf("create custom field: %v", err)
	}
	for _, valueID := range []string{"cfv-brute", "cfv-spell"} {
		value := domain.CustomFieldValue{ID: valueID, CustomFieldID: "field-1", Value: valueID, CreatedAt: now, UpdatedAt: now}
		if err := store.CreateCustomFieldValue(context.Background(), value); err != nil {
			t.Fatalf("create custom field value %s: %v", valueID, err)
		}
	}
	entry := domain.Entry{
		ID:         "entry-1",
		CampaignID: "camp-1",
		PlayedAt:   now,
		Results: []domain.PlayerResult{
			{
				ID:                  "res-1",
				EntryID:             "entry-1",
				PlayerID:            "player-1",
				Position:            0,
				CustomFieldValueIDs: []string{"cfv-brute", "cfv-spell"},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	result, err := store.GetPlayerResult(context.Background(), "res-1")
	if err != nil {
		t.Fatalf("get player result: %v", err)
	}
	if len(result.CustomFieldValueIDs) != 2 {
		t.Fatalf("value count = %d, want 2", len(result.CustomFieldValueIDs))
	}
	if result.CustomFieldValueIDs[0] != "cfv-brute" {
		t.Fatalf("first value = %q, want cfv-brute", result.CustomFieldValueIDs[0])
	}
}

func TestAppendEventAssignsSequentialSeq(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedCampaign(t, store, "game-1", "camp-1")
	seedPlayer(t, store, "player-1")
	seedEntry(t, store, "camp-1", "entry-1")
	seedKey(t, store, "camp-1", "key-1")
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)

	for i, id := range []string{"event-1", "event-2", "event-3"} {
		ev := event.Event{
			ID:          id,
			CampaignID:  "camp-1",
			Timestamp:   now,
			EntryID:     "entry-1",
			KeyID:       "key-1",
			PayloadJSON: []byte(`{"verb":"increase","amount":10}`),
		}
		stored, err := store.AppendEvent(context.Background(), ev)
		if err != nil {
			t.Fatalf("append event %s: %v", id, err)
		}
		if stored.Seq != uint64(i+1) {
			t.Fatalf("seq = %d, want %d", stored.Seq, i+1)
		}
	}

	events, err := store.ListEventsByCampaign(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("event count = %d, want 3", len(events))
	}
	if events[0].ID != "event-1" || events[2].ID != "event-3" {
		t.Fatalf("event order = [%s, ..., %s], want [event-1, ..., event-3]", events[0].ID, events[2].ID)
	}
	if string(events[0].PayloadJSON) != `{"verb":"increase","amount":10}` {
		t.Fatalf("payload = %s", events[0].PayloadJSON)
	}
}

func seedGame(t *testing.T, store *Store, gameID string) {
	t.Helper()
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	game := domain.Game{ID: gameID, Name: gameID, CreatedAt: now, UpdatedAt: now}
	if err := store.CreateGame(context.Background(), game); err != nil {
		t.Fatalf("seed game %s: %v", gameID, err)
	}
}

func seedPlayer(t *testing.T, store *Store, playerID string) {
	t.Helper()
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	player := domain.Player{ID: playerID, Name: playerID, CreatedAt: now, UpdatedAt: now}
	if err := store.CreatePlayer(context.Background(), player); err != nil {
		t.Fatalf("seed player %s: %v", playerID, err)
	}
}

func seedCampaign(t *testing.T, store *Store, gameID, campaignID string) {
	t.Helper()
	seedGame(t, store, gameID)
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	campaign := domain.Campaign{ID: campaignID, GameID: gameID, Name: campaignID, CreatedAt: now, UpdatedAt: now}
	if err := store.CreateCampaign(context.Background(), campaign); err != nil {
		t.Fatalf("seed campaign %s: %v", campaignID, err)
	}
}

func seedEntry(t *testing.T, store *Store, campaignID, entryID string) {
	t.Helper()
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	entry := domain.Entry{
		ID:         entryID,
		CampaignID: campaignID,
		PlayedAt:   now,
		Results: []domain.PlayerResult{
			{ID: entryID + "-res", EntryID: entryID, PlayerID: "player-1", Position: 0},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("seed entry %s: %v", entryID, err)
	}
}

func seedKey(t *testing.T, store *Store, campaignID, keyID string) {
	t.Helper()
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	key := domain.Key{
		ID:         keyID,
		CampaignID: campaignID,
		Name:       keyID,
		Type:       domain.KeyTypeNumber,
		Scope:      domain.KeyScopeEntry,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := store.CreateKey(context.Background(), key); err != nil {
		t.Fatalf("seed key %s: %v", keyID, err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
