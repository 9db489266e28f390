package server

import (
	"context"

	"github.com/mcpjungle/oauth2core/requests"
	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
)

// CreateTokenIntrospectionResponse implements the introspection
// endpoint (spec.md §4.6, RFC 7662). POST only. Per the Open Question
// this spec resolves in DESIGN.md, an unauthenticated caller, a
// cross-client lookup, or an unknown/expired/revoked token are all
// indistinguishable: {active: false} with HTTP 200.
func (e *Engine) CreateTokenIntrospectionResponse(ctx context.Context, req *requests.Request) *responses.Response {
	if err := e.checkTransport(req); err != nil {
		return errorResponse(err)
	}
	if err := checkMethod(req, requests.MethodPOST); err != nil {
		return errorResponse(err)
	}

	client, cerr := e.authenticateClient(ctx, req)
	if cerr != nil {
		return responses.NewResponse(200, responses.IntrospectionContent{Active: false})
	}

	token := req.PostParam("token")
	if token == "" {
		return errorResponse(types.NewError(400, types.ErrorInvalidRequest, "Missing token parameter."))
	}

	tok, err := e.store.GetTokenForIntrospection(ctx, token, client.ClientID)
	if err != nil && err != storage.ErrNotFound {
		e.cfg.logger().Errorf("oauth2core: introspection lookup failed: %v", err)
		return errorResponse(types.NewError(500, types.ErrorServerError, "failed to look up token"))
	}

	now := e.cfg.now()
	if tok == nil || err == storage.ErrNotFound || tok.Revoked || tok.AccessTokenExpired(now) {
		return responses.NewResponse(200, responses.IntrospectionContent{Active: false})
	}

	username := ""
	if tok.User != nil {
		username = tok.User.ID
	}

	return responses.NewResponse(200, responses.IntrospectionContent{
		Active:    true,
		Scope:     tok.Scope,
		ClientID:  tok.ClientID,
		Username:  username,
		Exp:       tok.IssuedAt.Add(tok.ExpiresIn).Unix(),
		Iat:       tok.IssuedAt.Unix(),
		TokenType: "Bearer",
	})
}
