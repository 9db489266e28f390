package grant

import (
	"context"
	"time"

	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
)

// RefreshTokenParams carries the token-endpoint parameters for
// grant_type=refresh_token.
type RefreshTokenParams struct {
	Client       *types.Client
	RefreshToken string
	Now          time.Time
}

// ExchangeRefreshToken implements the RefreshToken grant (spec.md
// §4.5): looks up the token owning the refresh value, checks expiry and
// client ownership, revokes it, and issues a fresh rotated pair.
func ExchangeRefreshToken(ctx context.Context, store storage.Adapter, p RefreshTokenParams) (*responses.TokenContent, *types.OAuthError) {
	tok, err := store.GetRefreshToken(ctx, p.RefreshToken, p.Client.ClientID)
	if err == storage.ErrNotFound || tok == nil {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "")
	}
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to look up refresh token")
	}

	if tok.ClientID != p.Client.ClientID {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "")
	}

	if tok.RefreshTokenExpired(p.Now) {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "")
	}

	if err := store.RevokeToken(ctx, p.RefreshToken, p.Client.ClientID); err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to revoke old refresh token")
	}

	newToken, err := store.CreateToken(ctx, p.Client, tok.Scope, tok.User, true)
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to issue rotated token")
	}
	return toTokenContent(newToken, ""), nil
}
