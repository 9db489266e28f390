package types

import "fmt"

// OAuthError is the engine's only error shape for protocol-level failures.
// Every handler recovers to one of these rather than returning a bare error.
type OAuthError struct {
	Code        ErrorCode
	Description string
	URI         string
	StatusCode  int
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return string(e.Code)
}

// NewError builds an OAuthError with the given HTTP status.
func NewError(status int, code ErrorCode, description string) *OAuthError {
	return &OAuthError{Code: code, Description: description, StatusCode: status}
}
