package web

import (
	"net/http"

	"github.com/louisbranch/playtally/internal/campaign/service"
)

// NewMux builds the tracker API route table.
func NewMux(svc *service.Service) *http.ServeMux {
	h := &handler{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc(http.MethodGet+" /healthz", h.handleHealth)

	mux.HandleFunc(http.MethodPost+" /api/games", h.handleCreateGame)
	mux.HandleFunc(http.MethodGet+" /api/games", h.handleListGames)
	mux.HandleFunc(http.MethodGet+" /api/games/{gameID}", h.handleGetGame)
	mux.HandleFunc(http.MethodGet+" /api/games/{gameID}/custom-fields", h.handleListCustomFields)
	mux.HandleFunc(http.MethodPost+" /api/games/{gameID}/custom-fields", h.handleCreateCustomField)

	mux.HandleFunc(http.MethodPost+" /api/players", h.handleCreatePlayer)
	mux.HandleFunc(http.MethodGet+" /api/players", h.handleListPlayers)

	mux.HandleFunc(http.MethodPost+" /api/custom-fields/{fieldID}/values", h.handleCreateCustomFieldValue)
	mux.HandleFunc(http.MethodGet+" /api/custom-fields/{fieldID}/values", h.handleListCustomFieldValues)

	mux.HandleFunc(http.MethodPost+" /api/campaigns", h.handleCreateCampaign)
	mux.HandleFunc(http.MethodGet+" /api/campaigns", h.handleListCampaigns)
	mux.HandleFunc(http.MethodGet+" /api/campaigns/{campaignID}", h.handleGetCampaign)
	mux.HandleFunc(http.MethodPost+" /api/campaigns/{campaignID}/keys", h.handleCreateKey)
	mux.HandleFunc(http.MethodGet+" /api/campaigns/{campaignID}/keys", h.handleListKeys)
	mux.HandleFunc(http.MethodPost+" /api/campaigns/{campaignID}/entries", h.handleLogEntry)
	mux.HandleFunc(http.MethodGet+" /api/campaigns/{campaignID}/entries", h.handleListEntries)
	mux.HandleFunc(http.MethodPost+" /api/campaigns/{campaignID}/events", h.handleAppendEvent)
	mux.HandleFunc(http.MethodGet+" /api/campaigns/{campaignID}/state", h.handleCampaignState)
	mux.HandleFunc(http.MethodGet+" /api/campaigns/{campaignID}/stats", h.handleCampaignStats)

	return mux
}
