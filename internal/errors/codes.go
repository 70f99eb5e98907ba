// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game errors
	CodeGameNameEmpty Code = "GAME_NAME_EMPTY"

	// Player errors
	CodePlayerNameEmpty Code = "PLAYER_NAME_EMPTY"

	// Campaign errors
	CodeCampaignNameEmpty   Code = "CAMPAIGN_NAME_EMPTY"
	CodeCampaignEmptyGameID Code = "CAMPAIGN_EMPTY_GAME_ID"

	// Campaign key errors
	CodeKeyNameEmpty      Code = "KEY_NAME_EMPTY"
	CodeKeyInvalidType    Code = "KEY_INVALID_TYPE"
	CodeKeyInvalidScope   Code = "KEY_INVALID_SCOPE"
	CodeKeyEmptyCampaignID Code = "KEY_EMPTY_CAMPAIGN_ID"

	// Custom field errors
	CodeCustomFieldNameEmpty  Code = "CUSTOM_FIELD_NAME_EMPTY"
	CodeCustomFieldValueEmpty Code = "CUSTOM_FIELD_VALUE_EMPTY"

	// Entry errors
	CodeEntryEmptyCampaignID  Code = "ENTRY_EMPTY_CAMPAIGN_ID"
	CodeEntryNoResults        Code = "ENTRY_NO_RESULTS"
	CodeEntryDuplicatePlayer  Code = "ENTRY_DUPLICATE_PLAYER"
	CodeEntryEmptyPlayerID    Code = "ENTRY_EMPTY_PLAYER_ID"

	// Campaign event errors
	CodeEventEmptyCampaignID          Code = "EVENT_EMPTY_CAMPAIGN_ID"
	CodeEventEmptyEntryID             Code = "EVENT_EMPTY_ENTRY_ID"
	CodeEventEmptyKeyID               Code = "EVENT_EMPTY_KEY_ID"
	CodeEventMissingPlayerResult      Code = "EVENT_MISSING_PLAYER_RESULT"
	CodeEventUnexpectedPlayerResult   Code = "EVENT_UNEXPECTED_PLAYER_RESULT"
	CodeEventMissingCustomFieldValue  Code = "EVENT_MISSING_CUSTOM_FIELD_VALUE"
	CodeEventUnexpectedCustomFieldValue Code = "EVENT_UNEXPECTED_CUSTOM_FIELD_VALUE"
	CodeEventKeyMismatch              Code = "EVENT_KEY_MISMATCH"
	CodeEventResultMismatch           Code = "EVENT_RESULT_MISMATCH"
	CodeEventValueMismatch            Code = "EVENT_VALUE_MISMATCH"
	CodeEventEmptyPayload             Code = "EVENT_EMPTY_PAYLOAD"
	CodeEventPayloadMismatch          Code = "EVENT_PAYLOAD_MISMATCH"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeGameNameEmpty,
		CodePlayerNameEmpty,
		CodeCampaignNameEmpty,
		CodeCampaignEmptyGameID,
		CodeKeyNameEmpty,
		CodeKeyInvalidType,
		CodeKeyInvalidScope,
		CodeKeyEmptyCampaignID,
		CodeCustomFieldNameEmpty,
		CodeCustomFieldValueEmpty,
		CodeEntryEmptyCampaignID,
		CodeEntryNoResults,
		CodeEntryDuplicatePlayer,
		CodeEntryEmptyPlayerID,
		CodeEventEmptyCampaignID,
		CodeEventEmptyEntryID,
		CodeEventEmptyKeyID,
		CodeEventMissingPlayerResult,
		CodeEventUnexpectedPlayerResult,
		CodeEventMissingCustomFieldValue,
		CodeEventUnexpectedCustomFieldValue,
		CodeEventEmptyPayload,
		CodeEventPayloadMismatch:
		return codes.InvalidArgument

	// FailedPrecondition - references that do not line up with stored state
	case CodeEventKeyMismatch,
		CodeEventResultMismatch,
		CodeEventValueMismatch:
		return codes.FailedPrecondition

	case CodeNotFound:
		return codes.NotFound

	case CodeAlreadyExists:
		return codes.AlreadyExists

	default:
		return codes.Internal
	}
}
