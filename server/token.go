package server

import (
	"context"
	"time"

	"github.com/mcpjungle/oauth2core/grant"
	"github.com/mcpjungle/oauth2core/requests"
	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/types"
)

// CreateTokenResponse implements the token endpoint (spec.md §4.3
// TokenEndpoint.create_token_response) for grant types
// authorization_code, password, client_credentials, refresh_token.
// POST only.
func (e *Engine) CreateTokenResponse(ctx context.Context, req *requests.Request) *responses.Response {
	if err := e.checkTransport(req); err != nil {
		return errorResponse(err)
	}
	if err := checkMethod(req, requests.MethodPOST); err != nil {
		return errorResponse(err)
	}

	grantTypeParam := req.PostParam("grant_type")
	if grantTypeParam == "" {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Request is missing grant type."))
	}
	grantType := types.GrantType(grantTypeParam)
	if !grantType.Valid() {
		return errorResponse(types.NewError(400, types.ErrorUnsupportedGrantType, ""))
	}

	client, cerr := e.authenticateClient(ctx, req)
	if cerr != nil {
		return errorResponse(cerr)
	}

	if !client.HasGrantType(grantType) {
		return errorResponse(types.NewError(400, types.ErrorUnauthorizedClient, ""))
	}

	scope := req.PostParam("scope")
	if err := e.checkScope(client, scope); err != nil {
		return errorResponse(err)
	}

	now := e.cfg.now()

	switch grantType {
	case types.GrantTypeAuthorizationCode:
		return e.exchangeAuthorizationCode(ctx, req, client, now)
	case types.GrantTypePassword:
		return e.exchangePassword(ctx, req, client, scope)
	case types.GrantTypeClientCredentials:
		return e.exchangeClientCredentials(ctx, client, scope)
	case types.GrantTypeRefreshToken:
		return e.exchangeRefreshToken(ctx, req, client, now)
	}

	// Unreachable: grantType.Valid() above admits only the four cases above.
	return errorResponse(types.NewError(400, types.ErrorUnsupportedGrantType, ""))
}

func (e *Engine) exchangeAuthorizationCode(ctx context.Context, req *requests.Request, client *types.Client, now time.Time) *responses.Response {
	code := req.PostParam("code")
	if code == "" {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Missing code parameter."))
	}
	redirectURI := req.PostParam("redirect_uri")
	if redirectURI == "" {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Mismatching redirect URI."))
	}

	content, err := grant.ExchangeAuthorizationCode(ctx, e.store, grant.ExchangeAuthorizationCodeParams{
		Client:       client,
		Code:         code,
		RedirectURI:  redirectURI,
		CodeVerifier: req.PostParam("code_verifier"),
		Now:          now,
	})
	if err != nil {
		return errorResponse(err)
	}
	return responses.NewResponse(200, *content)
}

func (e *Engine) exchangePassword(ctx context.Context, req *requests.Request, client *types.Client, scope string) *responses.Response {
	username := req.PostParam("username")
	password := req.PostParam("password")
	if username == "" || password == "" {
		return errorResponse(types.NewError(400, types.ErrorInvalidGrant, "Invalid credentials given."))
	}

	content, err := grant.ExchangePassword(ctx, e.store, grant.PasswordParams{
		Client:   client,
		Username: username,
		Password: password,
		Scope:    scope,
	})
	if err != nil {
		return errorResponse(err)
	}
	return responses.NewResponse(200, *content)
}

func (e *Engine) exchangeClientCredentials(ctx context.Context, client *types.Client, scope string) *responses.Response {
	content, err := grant.ExchangeClientCredentials(ctx, e.store, grant.ClientCredentialsParams{
		Client: client,
		Scope:  scope,
	})
	if err != nil {
		return errorResponse(err)
	}
	return responses.NewResponse(200, *content)
}

func (e *Engine) exchangeRefreshToken(ctx context.Context, req *requests.Request, client *types.Client, now time.Time) *responses.Response {
	refreshToken := req.PostParam("refresh_token")
	if refreshToken == "" {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Missing refresh token parameter."))
	}

	content, err := grant.ExchangeRefreshToken(ctx, e.store, grant.RefreshTokenParams{
		Client:       client,
		RefreshToken: refreshToken,
		Now:          now,
	})
	if err != nil {
		return errorResponse(err)
	}
	return responses.NewResponse(200, *content)
}
