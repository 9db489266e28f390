package grant

import (
	"context"

	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
)

// PasswordParams carries the token-endpoint parameters for
// grant_type=password.
type PasswordParams struct {
	Client   *types.Client
	Username string
	Password string
	Scope    string
}

// ExchangePassword implements the resource-owner password-credentials
// grant (spec.md §4.5). Password verification is entirely the storage
// adapter's responsibility; the engine never sees or compares a password.
func ExchangePassword(ctx context.Context, store storage.Adapter, p PasswordParams) (*responses.TokenContent, *types.OAuthError) {
	user, err := store.GetUser(ctx, p.Username, p.Password)
	if err == storage.ErrNotFound || user == nil {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "Invalid credentials given.")
	}
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to verify user credentials")
	}

	token, err := store.CreateToken(ctx, p.Client, p.Scope, user, true)
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to issue token")
	}
	return toTokenContent(token, ""), nil
}
