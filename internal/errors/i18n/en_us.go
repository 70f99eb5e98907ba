package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeGameNameEmpty                   = "GAME_NAME_EMPTY"
	CodePlayerNameEmpty                 = "PLAYER_NAME_EMPTY"
	CodeCampaignNameEmpty               = "CAMPAIGN_NAME_EMPTY"
	CodeCampaignEmptyGameID             = "CAMPAIGN_EMPTY_GAME_ID"
	CodeKeyNameEmpty                    = "KEY_NAME_EMPTY"
	CodeKeyInvalidType                  = "KEY_INVALID_TYPE"
	CodeKeyInvalidScope                 = "KEY_INVALID_SCOPE"
	CodeKeyEmptyCampaignID              = "KEY_EMPTY_CAMPAIGN_ID"
	CodeCustomFieldNameEmpty            = "CUSTOM_FIELD_NAME_EMPTY"
	CodeCustomFieldValueEmpty           = "CUSTOM_FIELD_VALUE_EMPTY"
	CodeEntryEmptyCampaignID            = "ENTRY_EMPTY_CAMPAIGN_ID"
	CodeEntryNoResults                  = "ENTRY_NO_RESULTS"
	CodeEntryDuplicatePlayer            = "ENTRY_DUPLICATE_PLAYER"
	CodeEntryEmptyPlayerID              = "ENTRY_EMPTY_PLAYER_ID"
	CodeEventEmptyCampaignID            = "EVENT_EMPTY_CAMPAIGN_ID"
	CodeEventEmptyEntryID               = "EVENT_EMPTY_ENTRY_ID"
	CodeEventEmptyKeyID                 = "EVENT_EMPTY_KEY_ID"
	CodeEventMissingPlayerResult        = "EVENT_MISSING_PLAYER_RESULT"
	CodeEventUnexpectedPlayerResult     = "EVENT_UNEXPECTED_PLAYER_RESULT"
	CodeEventMissingCustomFieldValue    = "EVENT_MISSING_CUSTOM_FIELD_VALUE"
	CodeEventUnexpectedCustomFieldValue = "EVENT_UNEXPECTED_CUSTOM_FIELD_VALUE"
	CodeEventKeyMismatch                = "EVENT_KEY_MISMATCH"
	CodeEventResultMismatch             = "EVENT_RESULT_MISMATCH"
	CodeEventValueMismatch              = "EVENT_VALUE_MISMATCH"
	CodeEventEmptyPayload               = "EVENT_EMPTY_PAYLOAD"
	CodeEventPayloadMismatch            = "EVENT_PAYLOAD_MISMATCH"
	CodeNotFound                        = "NOT_FOUND"
	CodeAlreadyExists                   = "ALREADY_EXISTS"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Game errors
		CodeGameNameEmpty: "Game name cannot be empty",

		// Player errors
		CodePlayerNameEmpty: "Player name cannot be empty",

		// Campaign errors
		CodeCampaignNameEmpty:   "Campaign name cannot be empty",
		CodeCampaignEmptyGameID: "Campaign requires a game",

		// Campaign key errors
		CodeKeyNameEmpty:       "Campaign key name cannot be empty",
		CodeKeyInvalidType:     "Unknown campaign key type {{.Type}}",
		CodeKeyInvalidScope:    "Unknown campaign key scope {{.Scope}}",
		CodeKeyEmptyCampaignID: "Campaign key requires a campaign",

		// Custom field errors
		CodeCustomFieldNameEmpty:  "Custom field name cannot be empty",
		CodeCustomFieldValueEmpty: "Custom field value cannot be empty",

		// Entry errors
		CodeEntryEmptyCampaignID: "Entry requires a campaign",
		CodeEntryNoResults:       "Entry requires at least one player result",
		CodeEntryDuplicatePlayer: "Player {{.PlayerID}} appears more than once on this entry",
		CodeEntryEmptyPlayerID:   "Player result requires a player",

		// Campaign event errors
		CodeEventEmptyCampaignID:            "Event requires a campaign",
		CodeEventEmptyEntryID:               "Event requires an entry",
		CodeEventEmptyKeyID:                 "Event requires a campaign key",
		CodeEventMissingPlayerResult:        "Key {{.Key}} is player scoped and requires a player result",
		CodeEventUnexpectedPlayerResult:     "Key {{.Key}} is entry scoped and does not accept a player result",
		CodeEventMissingCustomFieldValue:    "Key {{.Key}} is scoped to a custom field and requires a field value",
		CodeEventUnexpectedCustomFieldValue: "Key {{.Key}} does not accept a custom field value",
		CodeEventKeyMismatch:                "Campaign key does not belong to this campaign",
		CodeEventResultMismatch:             "Player result does not belong to this entry",
		CodeEventValueMismatch:              "Custom field value does not belong to the scoped field",
		CodeEventEmptyPayload:               "Event payload cannot be empty",
		CodeEventPayloadMismatch:            "Event payload does not apply to a {{.Type}} key",

		// Storage errors
		CodeNotFound:      "The requested record was not found",
		CodeAlreadyExists: "The record already exists",
	},
}
