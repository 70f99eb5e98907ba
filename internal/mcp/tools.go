package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GameCreateInput represents the MCP tool input for game creation.
type GameCreateInput struct {
	Name string `json:"name" jsonschema:"game name"`
}

// GameCreateResult represents the MCP tool output for game creation.
type GameCreateResult struct {
	ID        string `json:"id" jsonschema:"game identifier"`
	Name      string `json:"name" jsonschema:"game name"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp when the game was created"`
}

// GameCreateTool defines the MCP tool schema for game creation.
func GameCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_create",
		Description: "Registers a board game title that campaigns can be tracked against.",
	}
}

// PlayerCreateInput represents the MCP tool input for player creation.
type PlayerCreateInput struct {
	Name string `json:"name" jsonschema:"player display name"`
}

// PlayerCreateResult represents the MCP tool output for player creation.
type PlayerCreateResult struct {
	ID        string `json:"id" jsonschema:"player identifier"`
	Name      string `json:"name" jsonschema:"player display name"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp when the player was created"`
}

// PlayerCreateTool defines the MCP tool schema for player creation.
func PlayerCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "player_create",
		Description: "Registers a player that can appear in logged play entries.",
	}
}

// CampaignCreateInput represents the MCP tool input for campaign creation.
type CampaignCreateInput struct {
	GameID string `json:"game_id" jsonschema:"game identifier the campaign belongs to"`
	Name   string `json:"name" jsonschema:"campaign name"`
}

// CampaignCreateResult represents the MCP tool output for campaign creation.
type CampaignCreateResult struct {
	ID        string `json:"id" jsonschema:"campaign identifier"`
	GameID    string `json:"game_id" jsonschema:"game identifier"`
	Name      string `json:"name" jsonschema:"campaign name"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp when the campaign was created"`
}

// CampaignCreateTool defines the MCP tool schema for campaign creation.
func CampaignCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "campaign_create",
		Description: "Creates a campaign under an existing game. Entries, keys and events all hang off a campaign.",
	}
}

// CustomFieldCreateInput represents the MCP tool input for custom field creation.
type CustomFieldCreateInput struct {
	GameID string `json:"game_id" jsonschema:"game identifier the field belongs to"`
	Name   string `json:"name" jsonschema:"custom field name (e.g. Character)"`
}

// CustomFieldCreateResult represents the MCP tool output for custom field creation.
type CustomFieldCreateResult struct {
	ID     string `json:"id" jsonschema:"custom field identifier"`
	GameID string `json:"game_id" jsonschema:"game identifier"`
	Name   string `json:"name" jsonschema:"custom field name"`
}

// CustomFieldCreateTool defines the MCP tool schema for custom field creation.
func CustomFieldCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "custom_field_create",
		Description: "Declares a per-game custom field (such as Character or Faction) whose values annotate player results.",
	}
}

// CustomFieldValueCreateInput represents the MCP tool input for custom field value creation.
type CustomFieldValueCreateInput struct {
	CustomFieldID string `json:"custom_field_id" jsonschema:"custom field identifier"`
	Value         string `json:"value" jsonschema:"field value label (e.g. Brute)"`
}

// CustomFieldValueCreateResult represents the MCP tool output for custom field value creation.
type CustomFieldValueCreateResult struct {
	ID            string `json:"id" jsonschema:"custom field value identifier"`
	CustomFieldID string `json:"custom_field_id" jsonschema:"custom field identifier"`
	Value         string `json:"value" jsonschema:"field value label"`
}

// CustomFieldValueCreateTool defines the MCP tool schema for custom field value creation.
func CustomFieldValueCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "custom_field_value_create",
		Description: "Adds a selectable value to a custom field.",
	}
}

// KeyCreateInput represents the MCP tool input for campaign key creation.
type KeyCreateInput struct {
	CampaignID            string `json:"campaign_id" jsonschema:"campaign identifier"`
	Name                  string `json:"name" jsonschema:"key name shown as the state label"`
	Type                  string `json:"type" jsonschema:"value type (string, number, list, counted_list)"`
	Scope                 string `json:"scope" jsonschema:"accumulation scope (entry, player_result)"`
	ScopedToCustomFieldID string `json:"scoped_to_custom_field_id,omitempty" jsonschema:"optional custom field identifier partitioning the key's state"`
}

// KeyCreateResult represents the MCP tool output for campaign key creation.
type KeyCreateResult struct {
	ID                    string `json:"id" jsonschema:"key identifier"`
	CampaignID            string `json:"campaign_id" jsonschema:"campaign identifier"`
	Name                  string `json:"name" jsonschema:"key name"`
	Type                  string `json:"type" jsonschema:"value type"`
	Scope                 string `json:"scope" jsonschema:"accumulation scope"`
	ScopedToCustomFieldID string `json:"scoped_to_custom_field_id,omitempty" jsonschema:"custom field identifier when scoped"`
}

// KeyCreateTool defines the MCP tool schema for campaign key creation.
func KeyCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "campaign_key_create",
		Description: "Declares a typed, scoped campaign key. Events appended against the key accumulate into the campaign state.",
	}
}

// EntryResultInput represents one player's result when logging an entry.
type EntryResultInput struct {
	PlayerID            string   `json:"player_id" jsonschema:"player identifier"`
	Won                 bool     `json:"won,omitempty" jsonschema:"whether the player won"`
	Score               int      `json:"score,omitempty" jsonschema:"final score"`
	CustomFieldValueIDs []string `json:"custom_field_value_ids,omitempty" jsonschema:"custom field values recorded on this result"`
}

// EntryLogInput represents the MCP tool input for logging a play entry.
type EntryLogInput struct {
	CampaignID string             `json:"campaign_id" jsonschema:"campaign identifier"`
	PlayedAt   string             `json:"played_at,omitempty" jsonschema:"RFC3339 timestamp of the play session (defaults to now)"`
	Notes      string             `json:"notes,omitempty" jsonschema:"free-form session notes"`
	Results    []EntryResultInput `json:"results" jsonschema:"per-player results in table order"`
}

// EntryResultSummary represents one stored player result.
type EntryResultSummary struct {
	ID       string `json:"id" jsonschema:"player result identifier (target for player-scoped events)"`
	PlayerID string `json:"player_id" jsonschema:"player identifier"`
	Position int    `json:"position" jsonschema:"table order position"`
	Won      bool   `json:"won" jsonschema:"whether the player won"`
	Score    int    `json:"score" jsonschema:"final score"`
}

// EntryLogResult represents the MCP tool output for logging a play entry.
type EntryLogResult struct {
	ID         string               `json:"id" jsonschema:"entry identifier"`
	CampaignID string               `json:"campaign_id" jsonschema:"campaign identifier"`
	PlayedAt   string               `json:"played_at" jsonschema:"RFC3339 timestamp of the play session"`
	Notes      string               `json:"notes,omitempty" jsonschema:"session notes"`
	Results    []EntryResultSummary `json:"results" jsonschema:"stored player results"`
}

// EntryLogTool defines the MCP tool schema for logging a play entry.
func EntryLogTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "entry_log",
		Description: "Logs one play session for a campaign with one result per participating player.",
	}
}

// CountedItemInput represents one item with a quantity for counted list events.
type CountedItemInput struct {
	Item     string `json:"item" jsonschema:"item name"`
	Quantity int64  `json:"quantity" jsonschema:"positive quantity"`
}

// EventAppendInput represents the MCP tool input for appending a campaign event.
type EventAppendInput struct {
	CampaignID         string             `json:"campaign_id" jsonschema:"campaign identifier"`
	EntryID            string             `json:"entry_id" jsonschema:"entry identifier the event occurred during"`
	KeyID              string             `json:"key_id" jsonschema:"campaign key identifier"`
	PlayerResultID     string             `json:"player_result_id,omitempty" jsonschema:"player result identifier, required for player_result scoped keys"`
	CustomFieldValueID string             `json:"custom_field_value_id,omitempty" jsonschema:"custom field value identifier, required for custom-field scoped keys"`
	Verb               string             `json:"verb" jsonschema:"mutation verb (replace, increase, decrease, add, remove)"`
	Value              string             `json:"value,omitempty" jsonschema:"string payload for string keys"`
	Amount             *float64           `json:"amount,omitempty" jsonschema:"numeric payload for number keys"`
	Values             []string           `json:"values,omitempty" jsonschema:"string payloads for list keys"`
	Items              []CountedItemInput `json:"items,omitempty" jsonschema:"item payloads for counted_list keys"`
}

// EventAppendResult represents the MCP tool output for appending a campaign event.
type EventAppendResult struct {
	ID         string `json:"id" jsonschema:"event identifier"`
	CampaignID string `json:"campaign_id" jsonschema:"campaign identifier"`
	Seq        uint64 `json:"seq" jsonschema:"campaign-scoped sequence number"`
	EntryID    string `json:"entry_id" jsonschema:"entry identifier"`
	KeyID      string `json:"key_id" jsonschema:"campaign key identifier"`
}

// EventAppendTool defines the MCP tool schema for appending a campaign event.
func EventAppendTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "event_append",
		Description: "Appends one state mutation event to the campaign journal. The payload shape must match the key's type.",
	}
}

// CampaignStateInput represents the MCP tool input for reading campaign state.
type CampaignStateInput struct {
	CampaignID string `json:"campaign_id" jsonschema:"campaign identifier"`
}

// ScopedStateSection represents one custom-field scoped sub-section of replayed state.
type ScopedStateSection struct {
	Label   string         `json:"label" jsonschema:"custom field value label"`
	Entries map[string]any `json:"entries" jsonschema:"tracked values keyed by key name"`
}

// StateSection represents one section of replayed state.
type StateSection struct {
	Label    string               `json:"label" jsonschema:"section label (Global or player name)"`
	PlayerID string               `json:"player_id,omitempty" jsonschema:"player identifier for player sections"`
	Entries  map[string]any       `json:"entries" jsonschema:"tracked values keyed by key name"`
	Scoped   []ScopedStateSection `json:"scoped,omitempty" jsonschema:"custom-field scoped sub-sections"`
}

// EntryState represents one entry's snapshot within the campaign state.
type EntryState struct {
	EntryID  string         `json:"entry_id" jsonschema:"entry identifier"`
	PlayedAt string         `json:"played_at" jsonschema:"RFC3339 timestamp of the play session"`
	Sections []StateSection `json:"sections" jsonschema:"ordered state sections as of this entry"`
}

// CampaignStateResult represents the MCP tool output for reading campaign state.
type CampaignStateResult struct {
	CampaignID string       `json:"campaign_id" jsonschema:"campaign identifier"`
	Name       string       `json:"name" jsonschema:"campaign name"`
	Entries    []EntryState `json:"entries" jsonschema:"per-entry snapshots in chronological order"`
}

// CampaignStateTool defines the MCP tool schema for reading campaign state.
func CampaignStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "campaign_state",
		Description: "Replays the campaign journal and returns the per-entry state snapshots.",
	}
}

// CampaignStatsInput represents the MCP tool input for reading campaign statistics.
type CampaignStatsInput struct {
	CampaignID string `json:"campaign_id" jsonschema:"campaign identifier"`
}

// PlayerStatsEntry represents one player's aggregated statistics.
type PlayerStatsEntry struct {
	PlayerID   string `json:"player_id" jsonschema:"player identifier"`
	PlayerName string `json:"player_name" jsonschema:"player display name"`
	Plays      int    `json:"plays" jsonschema:"number of entries played"`
	Wins       int    `json:"wins" jsonschema:"number of entries won"`
	TotalScore int    `json:"total_score" jsonschema:"sum of scores across entries"`
	BestScore  int    `json:"best_score" jsonschema:"highest single-entry score"`
}

// CampaignStatsResult represents the MCP tool output for reading campaign statistics.
type CampaignStatsResult struct {
	CampaignID   string             `json:"campaign_id" jsonschema:"campaign identifier"`
	Name         string             `json:"name" jsonschema:"campaign name"`
	EntryCount   int                `json:"entry_count" jsonschema:"number of logged entries"`
	LastPlayedAt string             `json:"last_played_at,omitempty" jsonschema:"RFC3339 timestamp of the most recent entry"`
	Players      []PlayerStatsEntry `json:"players" jsonschema:"per-player statistics ordered by wins, total score, name"`
}

// CampaignStatsTool defines the MCP tool schema for reading campaign statistics.
func CampaignStatsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "campaign_stats",
		Description: "Aggregates play statistics (plays, wins, scores) per player across a campaign.",
	}
}
