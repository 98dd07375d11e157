package model

import "fmt"

// ErrorPayload is the structured error body returned by the backend.
// A missing or malformed body is represented by the zero value.
type ErrorPayload struct {
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Data    *ErrorPayloadData `json:"data,omitempty"`
}

// ErrorPayloadData carries extra context for specific error codes.
type ErrorPayloadData struct {
	Email string `json:"email,omitempty"`
}

// StatusError is returned for any backend response outside the 2xx range.
// Transport failures are never wrapped in a StatusError.
type StatusError struct {
	StatusCode int
	Payload    ErrorPayload
}

func (e *StatusError) Error() string {
	if e.Payload.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Payload.Message)
	}
	if e.Payload.Error != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Payload.Error)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// AccountConflictError signals that a google login collided with an existing
// local account. It is a branch of the google flow, not a failure: the caller
// is expected to ask the user whether to merge the accounts.
type AccountConflictError struct {
	// Email of the conflicting local account, when the backend supplied it.
	Email string
}

func (e *AccountConflictError) Error() string {
	if e.Email == "" {
		return "account conflict"
	}
	return fmt.Sprintf("account conflict with local account %s", e.Email)
}
