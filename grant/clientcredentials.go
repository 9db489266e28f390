package grant

import (
	"context"

	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
)

// ClientCredentialsParams carries the token-endpoint parameters for
// grant_type=client_credentials.
type ClientCredentialsParams struct {
	Client *types.Client
	Scope  string
}

// ExchangeClientCredentials implements the client-credentials grant
// (spec.md §4.5): no user, no refresh token rotation concerns — just a
// token bound to the client itself.
func ExchangeClientCredentials(ctx context.Context, store storage.Adapter, p ClientCredentialsParams) (*responses.TokenContent, *types.OAuthError) {
	token, err := store.CreateToken(ctx, p.Client, p.Scope, nil, false)
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to issue token")
	}
	return toTokenContent(token, ""), nil
}
