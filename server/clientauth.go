package server

import (
	"context"

	"github.com/mcpjungle/oauth2core/requests"
	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
	"github.com/mcpjungle/oauth2core/util"
)

// authenticateClient implements spec.md §4.3 step 4: decode HTTP Basic
// credentials (or, when there are none, POST-body credentials), look up
// the client, and verify the secret. The client's
// TokenEndpointAuthMethod is not consulted: either credential source is
// accepted for every client. Public clients (IsConfidential == false)
// are identified by client_id alone.
//
// Lookup happens in two stages so the error distinguishes an unknown
// client_id from a wrong secret, matching this library's expected
// error_description strings: an id-only lookup first, then (for a
// confidential client) a second lookup with the secret attached, which
// storage.Adapter.GetClient's contract requires the adapter to verify.
func (e *Engine) authenticateClient(ctx context.Context, req *requests.Request) (*types.Client, *types.OAuthError) {
	clientID, clientSecret, ok := extractCredentials(req)
	if !ok || clientID == "" {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "Invalid credentials given.")
	}

	client, err := e.store.GetClient(ctx, clientID, nil)
	if err == storage.ErrNotFound || client == nil {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "Invalid client_id parameter value.")
	}
	if err != nil {
		e.cfg.logger().Errorf("oauth2core: failed to look up client %q: %v", clientID, err)
		return nil, types.NewError(500, types.ErrorServerError, "failed to look up client")
	}

	if !client.IsConfidential {
		return client, nil
	}

	if clientSecret == "" {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "Invalid credentials given.")
	}

	verified, err := e.store.GetClient(ctx, clientID, &clientSecret)
	if err == storage.ErrNotFound || verified == nil {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "Invalid client_secret parameter value.")
	}
	if err != nil {
		e.cfg.logger().Errorf("oauth2core: failed to verify client %q: %v", clientID, err)
		return nil, types.NewError(500, types.ErrorServerError, "failed to look up client")
	}

	return verified, nil
}

// extractCredentials reads client_id/client_secret from the HTTP Basic
// Authorization header if present, falling back to POST-body
// client_id/client_secret (client_secret_post). ok is false only when
// neither source yields a client_id.
func extractCredentials(req *requests.Request) (id, secret string, ok bool) {
	if header := req.Header("Authorization"); header != "" {
		if decodedID, decodedSecret, err := util.DecodeAuthHeader(header); err == nil {
			return decodedID, decodedSecret, true
		}
	}
	id = req.PostParam("client_id")
	secret = req.PostParam("client_secret")
	if id == "" {
		return "", "", false
	}
	return id, secret, true
}
