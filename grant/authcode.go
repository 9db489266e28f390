package grant

import (
	"context"
	"time"

	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
	"github.com/mcpjungle/oauth2core/util"
)

// AuthorizeCodeParams carries the authorization-endpoint front-leg
// parameters for response_type=code, already pre-checked for presence
// by the endpoint.
type AuthorizeCodeParams struct {
	Client              *types.Client
	User                types.User
	RedirectURI         string
	Scope               string
	CodeChallenge       string
	CodeChallengeMethod string
	State               string
	Now                 time.Time
	CodeExpiresIn       time.Duration
}

// CreateAuthorizationCode implements the Authorization Code + PKCE front
// leg (spec.md §4.4 ResponseTypeCode handler). Client-capability,
// scope, and redirect-uri checks are the endpoint's job; this handler
// owns the PKCE-specific requirements and code issuance.
func CreateAuthorizationCode(ctx context.Context, store storage.Adapter, p AuthorizeCodeParams) (*responses.AuthorizationCodeContent, *types.OAuthError) {
	if p.CodeChallenge == "" {
		return nil, types.NewError(400, types.ErrorInvalidRequest, "Code challenge required.")
	}
	method := types.CodeChallengeMethod(p.CodeChallengeMethod)
	if !method.Valid() {
		return nil, types.NewError(400, types.ErrorInvalidRequest, "Transform algorithm not supported.")
	}

	code, err := util.GenerateToken(0)
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to generate authorization code")
	}

	ac := &types.AuthorizationCode{
		Code:                code,
		ClientID:            p.Client.ClientID,
		RedirectURI:         p.RedirectURI,
		Scope:               p.Scope,
		User:                p.User,
		AuthTime:            p.Now,
		ExpiresIn:           p.CodeExpiresIn,
		CodeChallenge:       p.CodeChallenge,
		CodeChallengeMethod: method,
	}
	if err := store.CreateAuthorizationCode(ctx, ac); err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to persist authorization code")
	}

	return &responses.AuthorizationCodeContent{
		Code:  code,
		Scope: p.Scope,
		State: p.State,
	}, nil
}

// ExchangeAuthorizationCodeParams carries the token-endpoint parameters
// for grant_type=authorization_code, already pre-checked for presence
// and client authentication by the endpoint.
type ExchangeAuthorizationCodeParams struct {
	Client       *types.Client
	Code         string
	RedirectURI  string
	CodeVerifier string
	Now          time.Time
}

// ExchangeAuthorizationCode implements the AuthorizationCode grant's
// token leg (spec.md §4.5). It deletes the code before issuing the
// token so a concurrent replay of the same code cannot also succeed;
// atomicity of that pair is the storage adapter's responsibility.
func ExchangeAuthorizationCode(ctx context.Context, store storage.Adapter, p ExchangeAuthorizationCodeParams) (*responses.TokenContent, *types.OAuthError) {
	ac, err := store.GetAuthorizationCode(ctx, p.Code, p.Client.ClientID)
	if err == storage.ErrNotFound || ac == nil {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "")
	}
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to look up authorization code")
	}

	if ac.ClientID != p.Client.ClientID || ac.RedirectURI != p.RedirectURI {
		return nil, types.NewError(400, types.ErrorInvalidRequest, "Invalid redirect URI.")
	}

	if ac.CodeChallenge != "" {
		if p.CodeVerifier == "" {
			return nil, types.NewError(400, types.ErrorInvalidRequest, "Code verifier required.")
		}
		if !util.VerifyPKCE(p.CodeVerifier, ac.CodeChallenge, ac.CodeChallengeMethod) {
			return nil, types.NewError(400, types.ErrorMismatchingState, "CSRF Warning! State not equal in request and response.")
		}
	}

	if ac.Expired(p.Now) {
		return nil, types.NewError(400, types.ErrorInvalidGrant, "")
	}

	if err := store.DeleteAuthorizationCode(ctx, ac.Code, p.Client.ClientID); err != nil {
		if err == storage.ErrNotFound {
			// Lost the race to a concurrent redemption of the same code.
			return nil, types.NewError(400, types.ErrorInvalidGrant, "")
		}
		return nil, types.NewError(500, types.ErrorServerError, "failed to invalidate authorization code")
	}

	user := ac.User
	token, err := store.CreateToken(ctx, p.Client, ac.Scope, &user, true)
	if err != nil {
		return nil, types.NewError(500, types.ErrorServerError, "failed to issue token")
	}

	return toTokenContent(token, ""), nil
}
