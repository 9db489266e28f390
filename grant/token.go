// Package grant implements the per-grant-type and per-response-type state
// machines: the security-critical core that validates a request's
// grant-specific parameters, drives the storage adapter, and produces
// response content. Nothing here depends on a transport framework.
package grant

import (
	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/types"
)

// toTokenContent renders an issued Token as the JSON body of a token
// response (or, with RefreshToken left zero by the caller, as implicit
// grant fragment content).
func toTokenContent(t *types.Token, state string) *responses.TokenContent {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &responses.TokenContent{
		AccessToken:           t.AccessToken,
		RefreshToken:          t.RefreshToken,
		TokenType:             tokenType,
		ExpiresIn:             int64(t.ExpiresIn.Seconds()),
		RefreshTokenExpiresIn: int64(t.RefreshTokenExpiresIn.Seconds()),
		Scope:                 t.Scope,
		State:                 state,
	}
}
