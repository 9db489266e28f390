package server

import (
	"context"

	"github.com/mcpjungle/oauth2core/grant"
	"github.com/mcpjungle/oauth2core/requests"
	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
	"github.com/mcpjungle/oauth2core/util"
)

// CreateAuthorizationCodeResponse implements the authorization endpoint
// (spec.md §4.3 AuthorizationEndpoint.create_authorization_code_response):
// response_type=code (Authorization Code + PKCE) and response_type=token
// (Implicit). GET only.
func (e *Engine) CreateAuthorizationCodeResponse(ctx context.Context, req *requests.Request) *responses.Response {
	state := req.QueryParam("state")

	if err := e.checkTransport(req); err != nil {
		return errorResponse(err)
	}
	if err := checkMethod(req, requests.MethodGET); err != nil {
		return errorResponse(err)
	}

	clientID := req.QueryParam("client_id")
	if clientID == "" {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Missing client_id parameter."))
	}

	client, err := e.store.GetClient(ctx, clientID, nil)
	if err == storage.ErrNotFound || client == nil {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Invalid client_id parameter value."))
	}
	if err != nil {
		e.cfg.logger().Errorf("oauth2core: failed to look up client %q: %v", clientID, err)
		return errorResponse(types.NewError(500, types.ErrorServerError, "failed to look up client"))
	}

	redirectURI := req.QueryParam("redirect_uri")
	if redirectURI == "" {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Mismatching redirect URI."))
	}
	if !client.HasRedirectURI(redirectURI) {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Invalid redirect URI."))
	}

	responseTypeParam := req.QueryParam("response_type")
	if responseTypeParam == "" {
		return redirectErrorResponse(redirectURI, state, types.NewError(400, types.ErrorInvalidRequest, "Missing response_type parameter."))
	}
	responseType := types.ResponseType(responseTypeParam)
	if !responseType.Valid() {
		return redirectErrorResponse(redirectURI, state, types.NewError(400, types.ErrorUnsupportedResponseType, ""))
	}
	if !client.HasResponseType(responseType) {
		return redirectErrorResponse(redirectURI, state, types.NewError(400, types.ErrorUnsupportedResponseType, ""))
	}

	if req.User == nil {
		return errorResponse(types.NewError(401, types.ErrorInvalidClient, ""))
	}

	scope := req.QueryParam("scope")
	if err := e.checkScope(client, scope); err != nil {
		return redirectErrorResponse(redirectURI, state, err)
	}

	now := e.cfg.now()
	var resp *responses.Response

	switch responseType {
	case types.ResponseTypeCode:
		content, cerr := grant.CreateAuthorizationCode(ctx, e.store, grant.AuthorizeCodeParams{
			Client:              client,
			User:                *req.User,
			RedirectURI:         redirectURI,
			Scope:               scope,
			CodeChallenge:       req.QueryParam("code_challenge"),
			CodeChallengeMethod: req.QueryParam("code_challenge_method"),
			State:               state,
			Now:                 now,
			CodeExpiresIn:       e.cfg.AuthorizationCodeExpiresIn,
		})
		if cerr != nil {
			return redirectErrorResponse(redirectURI, state, cerr)
		}
		resp = responses.NewResponse(302, *content)
		resp.Redirect = redirectURI
		return resp

	case types.ResponseTypeToken:
		content, cerr := grant.CreateImplicitToken(ctx, e.store, grant.ImplicitParams{
			Client:         client,
			User:           *req.User,
			RedirectURI:    redirectURI,
			Scope:          scope,
			State:          state,
			TokenExpiresIn: e.cfg.TokenExpiresIn,
		})
		if cerr != nil {
			return redirectErrorResponse(redirectURI, state, cerr)
		}
		resp = responses.NewResponse(302, *content)
		resp.Redirect = redirectURI
		return resp
	}

	// Unreachable: responseType.Valid() above admits only the two cases above.
	return errorResponse(types.NewError(400, types.ErrorUnsupportedResponseType, ""))
}

// checkScope implements spec.md §4.3 step 6 for a space-separated scope string.
func (e *Engine) checkScope(client *types.Client, scope string) *types.OAuthError {
	if scope == "" {
		return nil
	}
	for _, s := range util.ScopeToList(scope) {
		if !client.HasScope(s) {
			return types.NewError(400, types.ErrorInvalidScope, "")
		}
	}
	return nil
}
