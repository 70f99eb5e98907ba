package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/campaign/event"
	"github.com/louisbranch/playtally/internal/campaign/service"
	"github.com/louisbranch/playtally/internal/campaign/state"
	apperrors "github.com/louisbranch/playtally/internal/errors"
)

type handler struct {
	svc *service.Service
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type gameJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toGameJSON(game domain.Game) gameJSON {
	return gameJSON{ID: game.ID, Name: game.Name, CreatedAt: game.CreatedAt, UpdatedAt: game.UpdatedAt}
}

func (h *handler) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	game, err := h.svc.CreateGame(r.Context(), domain.CreateGameInput{Name: req.Name})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGameJSON(game))
}

func (h *handler) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.ListGames(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]gameJSON, 0, len(games))
	for _, game := range games {
		out = append(out, toGameJSON(game))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.svc.GetGame(r.Context(), r.PathValue("gameID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameJSON(game))
}

type playerJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *handler) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	player, err := h.svc.CreatePlayer(r.Context(), domain.CreatePlayerInput{Name: req.Name})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, playerJSON(player))
}

func (h *handler) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.ListPlayers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]playerJSON, 0, len(players))
	for _, player := range players {
		out = append(out, playerJSON(player))
	}
	writeJSON(w, http.StatusOK, out)
}

type campaignJSON struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCampaignJSON(campaign domain.Campaign) campaignJSON {
	return campaignJSON{
		ID:        campaign.ID,
		GameID:    campaign.GameID,
		Name:      campaign.Name,
		CreatedAt: campaign.CreatedAt,
		UpdatedAt: campaign.UpdatedAt,
	}
}

func (h *handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID string `json:"gameId"`
		Name   string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	campaign, err := h.svc.CreateCampaign(r.Context(), domain.CreateCampaignInput{GameID: req.GameID, Name: req.Name})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCampaignJSON(campaign))
}

func (h *handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var (
		campaigns []domain.Campaign
		err       error
	)
	if gameID := strings.TrimSpace(r.URL.Query().Get("gameId")); gameID != "" {
		campaigns, err = h.svc.ListCampaignsByGame(r.Context(), gameID)
	} else {
		campaigns, err = h.svc.ListCampaigns(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]campaignJSON, 0, len(campaigns))
	for _, campaign := range campaigns {
		out = append(out, toCampaignJSON(campaign))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.svc.GetCampaign(r.Context(), r.PathValue("campaignID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCampaignJSON(campaign))
}

type customFieldJSON struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *handler) handleCreateCustomField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	field, err := h.svc.CreateCustomField(r.Context(), domain.CreateCustomFieldInput{
		GameID: r.PathValue("gameID"),
		Name:   req.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customFieldJSON(field))
}

func (h *handler) handleListCustomFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.svc.ListCustomFieldsByGame(r.Context(), r.PathValue("gameID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]customFieldJSON, 0, len(fields))
	for _, field := range fields {
		out = append(out, customFieldJSON(field))
	}
	writeJSON(w, http.StatusOK, out)
}

type customFieldValueJSON struct {
	ID            string    `json:"id"`
	CustomFieldID string    `json:"customFieldId"`
	Value         string    `json:"value"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (h *handler) handleCreateCustomFieldValue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	value, err := h.svc.CreateCustomFieldValue(r.Context(), domain.CreateCustomFieldValueInput{
		CustomFieldID: r.PathValue("fieldID"),
		Value:         req.Value,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customFieldValueJSON(value))
}

func (h *handler) handleListCustomFieldValues(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.ListCustomFieldValues(r.Context(), r.PathValue("fieldID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]customFieldValueJSON, 0, len(values))
	for _, value := range values {
		out = append(out, customFieldValueJSON(value))
	}
	writeJSON(w, http.StatusOK, out)
}

type keyJSON struct {
	ID                    string    `json:"id"`
	CampaignID            string    `json:"campaignId"`
	Name                  string    `json:"name"`
	Type                  string    `json:"type"`
	Scope                 string    `json:"scope"`
	ScopedToCustomFieldID string    `json:"scopedToCustomFieldId,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func toKeyJSON(key domain.Key) keyJSON {
	return keyJSON{
		ID:                    key.ID,
		CampaignID:            key.CampaignID,
		Name:                  key.Name,
		Type:                  string(key.Type),
		Scope:                 string(key.Scope),
		ScopedToCustomFieldID: key.ScopedToCustomFieldID,
		CreatedAt:             key.CreatedAt,
		UpdatedAt:             key.UpdatedAt,
	}
}

func (h *handler) handleCreateKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                  string `json:"name"`
		Type                  string `json:"type"`
		Scope                 string `json:"scope"`
		ScopedToCustomFieldID string `json:"scopedToCustomFieldId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	key, err := h.svc.CreateKey(r.Context(), domain.CreateKeyInput{
		CampaignID:            r.PathValue("campaignID"),
		Name:                  req.Name,
		Type:                  req.Type,
		Scope:                 req.Scope,
		ScopedToCustomFieldID: req.ScopedToCustomFieldID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toKeyJSON(key))
}

func (h *handler) handleListKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.svc.ListKeysByCampaign(r.Context(), r.PathValue("campaignID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]keyJSON, 0, len(keys))
	for _, key := range keys {
		out = append(out, toKeyJSON(key))
	}
	writeJSON(w, http.StatusOK, out)
}

type playerResultJSON struct {
	ID                  string   `json:"id"`
	PlayerID            string   `json:"playerId"`
	Position            int      `json:"position"`
	Won                 bool     `json:"won"`
	Score               int      `json:"score"`
	CustomFieldValueIDs []string `json:"customFieldValueIds,omitempty"`
}

type entryJSON struct {
	ID         string             `json:"id"`
	CampaignID string             `json:"campaignId"`
	PlayedAt   time.Time          `json:"playedAt"`
	Notes      string             `json:"notes,omitempty"`
	Results    []playerResultJSON `json:"results"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func toEntryJSON(entry domain.Entry) entryJSON {
	out := entryJSON{
		ID:         entry.ID,
		CampaignID: entry.CampaignID,
		PlayedAt:   entry.PlayedAt,
		Notes:      entry.Notes,
		Results:    make([]playerResultJSON, 0, len(entry.Results)),
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}
	for _, result := range entry.Results {
		out.Results = append(out.Results, playerResultJSON{
			ID:                  result.ID,
			PlayerID:            result.PlayerID,
			Position:            result.Position,
			Won:                 result.Won,
			Score:               result.Score,
			CustomFieldValueIDs: result.CustomFieldValueIDs,
		})
	}
	return out
}

func (h *handler) handleLogEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayedAt time.Time `json:"playedAt"`
		Notes    string    `json:"notes"`
		Results  []struct {
			PlayerID            string   `json:"playerId"`
			Won                 bool     `json:"won"`
			Score               int      `json:"score"`
			CustomFieldValueIDs []string `json:"customFieldValueIds"`
		} `json:"results"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	input := domain.CreateEntryInput{
		CampaignID: r.PathValue("campaignID"),
		PlayedAt:   req.PlayedAt,
		Notes:      req.Notes,
	}
	for _, result := range req.Results {
		input.Results = append(input.Results, domain.CreatePlayerResultInput{
			PlayerID:            result.PlayerID,
			Won:                 result.Won,
			Score:               result.Score,
			CustomFieldValueIDs: result.CustomFieldValueIDs,
		})
	}
	entry, err := h.svc.LogEntry(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryJSON(entry))
}

func (h *handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListEntriesByCampaign(r.Context(), r.PathValue("campaignID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]entryJSON, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryJSON(entry))
	}
	writeJSON(w, http.StatusOK, out)
}

type eventJSON struct {
	ID                 string          `json:"id"`
	CampaignID         string          `json:"campaignId"`
	Seq                uint64          `json:"seq"`
	Timestamp          time.Time       `json:"timestamp"`
	EntryID            string          `json:"entryId"`
	PlayerResultID     string          `json:"playerResultId,omitempty"`
	KeyID              string          `json:"keyId"`
	CustomFieldValueID string          `json:"customFieldValueId,omitempty"`
	Payload            json.RawMessage `json:"payload"`
}

func toEventJSON(ev event.Event) eventJSON {
	return eventJSON{
		ID:                 ev.ID,
		CampaignID:         ev.CampaignID,
		Seq:                ev.Seq,
		Timestamp:          ev.Timestamp,
		EntryID:            ev.EntryID,
		PlayerResultID:     ev.PlayerResultID,
		KeyID:              ev.KeyID,
		CustomFieldValueID: ev.CustomFieldValueID,
		Payload:            json.RawMessage(ev.PayloadJSON),
	}
}

func (h *handler) handleAppendEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntryID            string          `json:"entryId"`
		PlayerResultID     string          `json:"playerResultId"`
		KeyID              string          `json:"keyId"`
		CustomFieldValueID string          `json:"customFieldValueId"`
		Payload            json.RawMessage `json:"payload"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	keyID := strings.TrimSpace(req.KeyID)
	if keyID == "" {
		writeError(w, r, apperrors.New(apperrors.CodeEventEmptyKeyID, "event key id is required"))
		return
	}
	key, err := h.svc.GetKey(r.Context(), keyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload, ok := event.DecodePayload(key.Type, req.Payload)
	if !ok {
		writeError(w, r, apperrors.Newf(apperrors.CodeEventPayloadMismatch,
			"payload does not apply to key type %q", key.Type).
			WithMetadata(map[string]string{"Type": string(key.Type)}))
		return
	}

	stored, err := h.svc.AppendEvent(r.Context(), service.AppendEventInput{
		CampaignID:         r.PathValue("campaignID"),
		EntryID:            req.EntryID,
		PlayerResultID:     req.PlayerResultID,
		KeyID:              keyID,
		CustomFieldValueID: req.CustomFieldValueID,
		Payload:            payload,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventJSON(stored))
}

type entryStateJSON struct {
	EntryID  string          `json:"entryId"`
	PlayedAt time.Time       `json:"playedAt"`
	Sections []state.Section `json:"sections"`
}

type campaignStateJSON struct {
	Campaign campaignJSON     `json:"campaign"`
	Entries  []entryStateJSON `json:"entries"`
}

func (h *handler) handleCampaignState(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetCampaignState(r.Context(), r.PathValue("campaignID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := campaignStateJSON{
		Campaign: toCampaignJSON(result.Campaign),
		Entries:  make([]entryStateJSON, 0, len(result.Entries)),
	}
	for _, entry := range result.Entries {
		out.Entries = append(out.Entries, entryStateJSON{
			EntryID:  entry.ID,
			PlayedAt: entry.PlayedAt,
			Sections: result.States[entry.ID],
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type playerStatsJSON struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Plays      int    `json:"plays"`
	Wins       int    `json:"wins"`
	TotalScore int    `json:"totalScore"`
	BestScore  int    `json:"bestScore"`
}

type campaignStatsJSON struct {
	Campaign     campaignJSON      `json:"campaign"`
	EntryCount   int               `json:"entryCount"`
	LastPlayedAt *time.Time        `json:"lastPlayedAt,omitempty"`
	Players      []playerStatsJSON `json:"players"`
}

func (h *handler) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetCampaignStats(r.Context(), r.PathValue("campaignID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := campaignStatsJSON{
		Campaign:   toCampaignJSON(stats.Campaign),
		EntryCount: stats.EntryCount,
		Players:    make([]playerStatsJSON, 0, len(stats.Players)),
	}
	if !stats.LastPlayedAt.IsZero() {
		lastPlayed := stats.LastPlayedAt
		out.LastPlayedAt = &lastPlayed
	}
	for _, player := range stats.Players {
		out.Players = append(out.Players, playerStatsJSON(player))
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeBody parses the request body into target, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
