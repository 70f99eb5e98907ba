package errors

import (
	"fmt"

	"google.golang.org/grpc/status"
)

// Error is a domain error with a machine-readable code and optional metadata
// used to format localized user-facing messages.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
}

// New creates a domain error with the given code and developer message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted developer message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithMetadata returns a copy of the error carrying message metadata.
func (e *Error) WithMetadata(metadata map[string]string) *Error {
	if e == nil {
		return nil
	}
	cloned := *e
	cloned.Metadata = metadata
	return &cloned
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ToGRPCStatus converts the error to a gRPC status with a user-facing message.
func (e *Error) ToGRPCStatus(locale, userMsg string) error {
	if e == nil {
		return nil
	}
	if userMsg == "" {
		userMsg = e.Message
	}
	return status.Error(e.Code.GRPCCode(), userMsg)
}
