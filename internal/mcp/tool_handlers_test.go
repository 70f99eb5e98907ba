package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/playtally/internal/campaign/service"
	"github.com/louisbranch/playtally/internal/storage/sqlite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestService(t *testing.T) *service.Service {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})

	counter := 0
	return service.NewService(store,
		service.WithClock(func() time.Time {
			return time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
		}),
		service.WithIDGenerator(func() (string, error) {
			counter++
			return fmt.Sprintf("id-%03d", counter), nil
		}),
	)
}

func TestGameCreateHandler(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	handler := GameCreateHandler(svc)
	_, result, err := handler(context.Background(), nil, GameCreateInput{Name: "Gloomhaven"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected a game id")
	}
	if result.Name != "Gloomhaven" {
		t.Errorf("name = %q, want %q", result.Name, "Gloomhaven")
	}
	if result.CreatedAt != "2026-03-14T15:09:26Z" {
		t.Errorf("created_at = %q, want RFC3339 timestamp", result.CreatedAt)
	}
}

func TestGameCreateHandlerRejectsEmptyName(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	handler := GameCreateHandler(svc)
	_, _, err := handler(context.Background(), nil, GameCreateInput{Name: "  "})
	if err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestCampaignCreateHandlerRequiresGame(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	handler := CampaignCreateHandler(svc)
	_, _, err := handler(context.Background(), nil, CampaignCreateInput{GameID: "missing", Name: "Orphan"})
	if err == nil {
		t.Fatal("expected error for missing game")
	}
}

type testFixture struct {
	gameID     string
	campaignID string
	playerIDs  []string
	entryID    string
	resultIDs  []string
}

func seedCampaign(t *testing.T, svc *service.Service, playerNames ...string) testFixture {
	t.Helper()
	ctx := context.Background()

	_, game, err := GameCreateHandler(svc)(ctx, nil, GameCreateInput{Name: "Gloomhaven"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	_, campaign, err := CampaignCreateHandler(svc)(ctx, nil, CampaignCreateInput{GameID: game.ID, Name: "Winter Arc"})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	fx := testFixture{gameID: game.ID, campaignID: campaign.ID}
	var results []EntryResultInput
	for _, name := range playerNames {
		_, player, err := PlayerCreateHandler(svc)(ctx, nil, PlayerCreateInput{Name: name})
		if err != nil {
			t.Fatalf("create player %s: %v", name, err)
		}
		fx.playerIDs = append(fx.playerIDs, player.ID)
		results = append(results, EntryResultInput{PlayerID: player.ID})
	}

	_, entry, err := EntryLogHandler(svc)(ctx, nil, EntryLogInput{CampaignID: campaign.ID, Results: results})
	if err != nil {
		t.Fatalf("log entry: %v", err)
	}
	fx.entryID = entry.ID
	for _, result := range entry.Results {
		fx.resultIDs = append(fx.resultIDs, result.ID)
	}
	return fx
}

func createKey(t *testing.T, svc *service.Service, campaignID, name, keyType, scope string) KeyCreateResult {
	t.Helper()
	_, key, err := KeyCreateHandler(svc)(context.Background(), nil, KeyCreateInput{
		CampaignID: campaignID,
		Name:       name,
		Type:       keyType,
		Scope:      scope,
	})
	if err != nil {
		t.Fatalf("create key %s: %v", name, err)
	}
	return key
}

func TestEntryLogHandlerParsesPlayedAt(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	fx := seedCampaign(t, svc, "Ada")

	_, entry, err := EntryLogHandler(svc)(context.Background(), nil, EntryLogInput{
		CampaignID: fx.campaignID,
		PlayedAt:   "2026-03-20T19:30:00Z",
		Results:    []EntryResultInput{{PlayerID: fx.playerIDs[0], Won: true, Score: 42}},
	})
	if err != nil {
		t.Fatalf("log entry: %v", err)
	}
	if entry.PlayedAt != "2026-03-20T19:30:00Z" {
		t.Errorf("played_at = %q, want %q", entry.PlayedAt, "2026-03-20T19:30:00Z")
	}
	if len(entry.Results) != 1 || !entry.Results[0].Won || entry.Results[0].Score != 42 {
		t.Fatalf("results = %+v, want one winning result with score 42", entry.Results)
	}
}

func TestEntryLogHandlerRejectsBadTimestamp(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	fx := seedCampaign(t, svc, "Ada")

	_, _, err := EntryLogHandler(svc)(context.Background(), nil, EntryLogInput{
		CampaignID: fx.campaignID,
		PlayedAt:   "last tuesday",
		Results:    []EntryResultInput{{PlayerID: fx.playerIDs[0]}},
	})
	if err == nil || !strings.Contains(err.Error(), "played_at") {
		t.Fatalf("error = %v, want played_at parse failure", err)
	}
}

func TestEventAppendHandlerBuildsNumberPayload(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	fx := seedCampaign(t, svc, "Ada")
	key := createKey(t, svc, fx.campaignID, "Gold", "number", "entry")

	amount := 100.0
	_, result, err := EventAppendHandler(svc)(context.Background(), nil, EventAppendInput{
		CampaignID: fx.campaignID,
		EntryID:    fx.entryID,
		KeyID:      key.ID,
		Verb:       "increase",
		Amount:     &amount,
	})
	if err != nil {
		t.Fatalf("append event: %v", err)
	}
	if result.Seq != 1 {
		t.Errorf("seq = %d, want 1", result.Seq)
	}
}

func TestEventAppendHandlerRejectsMissingAmount(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	fx := seedCampaign(t, svc, "Ada")
	key := createKey(t, svc, fx.campaignID, "Gold", "number", "entry")

	_, _, err := EventAppendHandler(svc)(context.Background(), nil, EventAppendInput{
		CampaignID: fx.campaignID,
		EntryID:    fx.entryID,
		KeyID:      key.ID,
		Verb:       "increase",
	})
	if err == nil || !strings.Contains(err.Error(), "amount") {
		t.Fatalf("error = %v, want missing amount failure", err)
	}
}

func TestEventAppendHandlerRejectsWrongVerb(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	fx := seedCampaign(t, svc, "Ada")
	key := createKey(t, svc, fx.campaignID, "Title", "string", "entry")

	_, _, err := EventAppendHandler(svc)(context.Background(), nil, EventAppendInput{
		CampaignID: fx.campaignID,
		EntryID:    fx.entryID,
		KeyID:      key.ID,
		Verb:       "increase",
		Value:      "Captain",
	})
	if err == nil || !strings.Contains(err.Error(), "string keys") {
		t.Fatalf("error = %v, want verb mismatch failure", err)
	}
}

func TestCampaignStateHandlerReplaysEvents(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	fx := seedCampaign(t, svc, "Ada", "Grace")
	gold := createKey(t, svc, fx.campaignID, "Gold", "number", "entry")
	stash := createKey(t, svc, fx.campaignID, "Stash", "counted_list", "player_result")

	ctx := context.Background()
	amount := 70.0
	if _, _, err := EventAppendHandler(svc)(ctx, nil, EventAppendInput{
		CampaignID: fx.campaignID,
		EntryID:    fx.entryID,
		KeyID:      gold.ID,
		Verb:       "replace",
		Amount:     &amount,
	}); err != nil {
		t.Fatalf("append gold event: %v", err)
	}
	if _, _, err := EventAppendHandler(svc)(ctx, nil, EventAppendInput{
		CampaignID:     fx.campaignID,
		EntryID:        fx.entryID,
		KeyID:          stash.ID,
		PlayerResultID: fx.resultIDs[1],
		Verb:           "add",
		Items:          []CountedItemInput{{Item: "Potion", Quantity: 2}},
	}); err != nil {
		t.Fatalf("append stash event: %v", err)
	}

	_, result, err := CampaignStateHandler(svc)(ctx, nil, CampaignStateInput{CampaignID: fx.campaignID})
	if err != nil {
		t.Fatalf("campaign state: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(result.Entries))
	}
	sections := result.Entries[0].Sections
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want Global plus one player", len(sections))
	}
	if sections[0].Label != "Global" {
		t.Errorf("first section label = %q, want Global", sections[0].Label)
	}
	if got := sections[0].Entries["Gold"]; got != 70.0 {
		t.Errorf("Gold = %v, want 70", got)
	}
	if sections[1].Label != "Grace" {
		t.Errorf("player section label = %q, want Grace", sections[1].Label)
	}
}

func TestCampaignStatsHandlerAggregates(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	fx := seedCampaign(t, svc, "Ada")

	if _, _, err := EntryLogHandler(svc)(context.Background(), nil, EntryLogInput{
		CampaignID: fx.campaignID,
		PlayedAt:   "2026-03-21T20:00:00Z",
		Results:    []EntryResultInput{{PlayerID: fx.playerIDs[0], Won: true, Score: 55}},
	}); err != nil {
		t.Fatalf("log second entry: %v", err)
	}

	_, stats, err := CampaignStatsHandler(svc)(context.Background(), nil, CampaignStatsInput{CampaignID: fx.campaignID})
	if err != nil {
		t.Fatalf("campaign stats: %v", err)
	}
	if stats.EntryCount != 2 {
		t.Errorf("entry count = %d, want 2", stats.EntryCount)
	}
	if len(stats.Players) != 1 {
		t.Fatalf("players = %d, want 1", len(stats.Players))
	}
	player := stats.Players[0]
	if player.PlayerName != "Ada" || player.Plays != 2 || player.Wins != 1 || player.BestScore != 55 {
		t.Errorf("player stats = %+v, want Ada with 2 plays, 1 win, best 55", player)
	}
	if stats.LastPlayedAt != "2026-03-21T20:00:00Z" {
		t.Errorf("last_played_at = %q, want latest entry timestamp", stats.LastPlayedAt)
	}
}

func TestCampaignListResourceHandler(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	seedCampaign(t, svc, "Ada")

	handler := CampaignListResourceHandler(svc)
	result, err := handler(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: CampaignListResource().URI},
	})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(result.Contents))
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("mime type = %q, want application/json", result.Contents[0].MIMEType)
	}

	var payload CampaignListPayload
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Campaigns) != 1 {
		t.Fatalf("campaigns = %d, want 1", len(payload.Campaigns))
	}
	if payload.Campaigns[0].Name != "Winter Arc" {
		t.Errorf("campaign name = %q, want Winter Arc", payload.Campaigns[0].Name)
	}
}

func TestNewServerRequiresService(t *testing.T) {
	t.Parallel()
	if _, err := NewServer(nil); err == nil {
		t.Fatal("expected error for nil service")
	}
}

func TestNewServerRegistersEverything(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	server, err := NewServer(svc)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if server == nil || server.mcpServer == nil {
		t.Fatal("expected a configured server")
	}
}
