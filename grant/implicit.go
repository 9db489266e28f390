package grant

import (
	"context"
	"time"

	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
)

// ImplicitParams carries the authorization-endpoint front-leg parameters
// for response_type=token.
type ImplicitParams struct {
	Client         *types.Client
	User           types.User
	RedirectURI    string
	Scope          string
	State          string
	TokenExpiresIn time.Duration
}

// CreateImplicitToken implements the Implicit grant (spec.md §4.4
// ResponseTypeToken handler): no PKCE, no refresh token, and the result
// is carried in the redirect fragment rather than the query string —
// the transport adapter chooses fragment vs query from the content type
// when it builds the redirect URL. issueRefreshToken=false
// is passed through to the adapter so no refresh token is ever
// persisted for this grant, not merely omitted from the response.
func CreateImplicitToken(ctx context.Context, store storage.Adapter, p ImplicitParams) (*responses.TokenContent, *types.OAuthError) {
	user := p.User
	token, err := store.CreateToken(ctx, p.Client, p.Scope, &user, false)
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to issue token")
	}
	return toTokenContent(token, p.State), nil
}
