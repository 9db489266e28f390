package responses

import "github.com/mcpjungle/oauth2core/types"

// ErrorContent is the JSON body of every error response.
type ErrorContent struct {
	Error            types.ErrorCode `json:"error"`
	ErrorDescription string          `json:"error_description,omitempty"`
	ErrorURI         string          `json:"error_uri,omitempty"`

	// State is echoed back on authorization-endpoint errors; empty
	// otherwise.
	State string `json:"state,omitempty"`
}

func (ErrorContent) isContent() {}

// AuthorizationCodeContent is the query/fragment content of a successful
// authorization-code-grant front-leg redirect.
type AuthorizationCodeContent struct {
	Code  string `json:"code"`
	Scope string `json:"scope,omitempty"`
	State string `json:"state,omitempty"`
}

func (AuthorizationCodeContent) isContent() {}

// TokenContent is the JSON body of a successful token response, and also
// the fragment content of a successful implicit-grant redirect (which
// omits RefreshToken and RefreshTokenExpiresIn).
type TokenContent struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	TokenType             string `json:"token_type"`
	ExpiresIn             int64  `json:"expires_in"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in,omitempty"`
	Scope                 string `json:"scope,omitempty"`
	State                 string `json:"state,omitempty"`
}

func (TokenContent) isContent() {}

// IntrospectionContent is the RFC 7662 introspection response body. It
// travels only as a direct JSON body (never a redirect); it is the
// fourth member of the sealed Content set.
type IntrospectionContent struct {
	Active    bool   `json:"active"`
	Scope     string `json:"scope,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	Username  string `json:"username,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Iat       int64  `json:"iat,omitempty"`
	TokenType string `json:"token_type,omitempty"`
}

func (IntrospectionContent) isContent() {}
