package gormstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/storage/gormstore"
	"github.com/mcpjungle/oauth2core/types"
)

func newTestStore(t *testing.T) *gormstore.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := gormstore.New(db, nil)
	require.NoError(t, err)
	return store
}

func TestRegisterAndGetClientConfidential(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	registered, err := store.RegisterClient(ctx, gormstore.RegisterClientParams{
		ClientName:     "test client",
		RedirectURIs:   []string{"https://app.example/cb"},
		GrantTypes:     []types.GrantType{types.GrantTypeAuthorizationCode},
		ResponseTypes:  []types.ResponseType{types.ResponseTypeCode},
		Scopes:         []string{"read"},
		IsConfidential: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.ClientID)
	require.NotEmpty(t, registered.ClientSecret)

	client, err := store.GetClient(ctx, registered.ClientID, &registered.ClientSecret)
	require.NoError(t, err)
	require.True(t, client.IsConfidential)
	require.Equal(t, []string{"https://app.example/cb"}, client.RedirectURIs)
	require.Contains(t, client.GrantTypes, types.GrantTypeAuthorizationCode)

	_, err = store.GetClient(ctx, registered.ClientID, strPtr("wrong-secret"))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetClientPublicClientHasNoSecret(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	registered, err := store.RegisterClient(ctx, gormstore.RegisterClientParams{
		ClientName:     "public client",
		RedirectURIs:   []string{"https://app.example/cb"},
		GrantTypes:     []types.GrantType{types.GrantTypeAuthorizationCode},
		ResponseTypes:  []types.ResponseType{types.ResponseTypeCode},
		IsConfidential: false,
	})
	require.NoError(t, err)
	require.Empty(t, registered.ClientSecret)

	client, err := store.GetClient(ctx, registered.ClientID, nil)
	require.NoError(t, err)
	require.False(t, client.IsConfidential)
	require.Equal(t, types.AuthMethodNone, client.TokenEndpointAuthMethod)
}

func TestGetClientUnknown(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetClient(context.Background(), "does-not-exist", nil)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRegisterAndGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RegisterUser(ctx, "alice", "hunter2"))

	user, err := store.GetUser(ctx, "alice", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	_, err = store.GetUser(ctx, "alice", "wrong-password")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetUser(ctx, "bob", "anything")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAuthorizationCodeLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RegisterUser(ctx, "alice", "hunter2"))
	user, err := store.GetUser(ctx, "alice", "hunter2")
	require.NoError(t, err)

	code := &types.AuthorizationCode{
		Code:                "a-test-code",
		ClientID:            "client-1",
		RedirectURI:         "https://app.example/cb",
		Scope:               "read",
		User:                *user,
		AuthTime:            time.Now(),
		ExpiresIn:           10 * time.Minute,
		CodeChallenge:       "challenge",
		CodeChallengeMethod: types.CodeChallengeMethodS256,
	}
	require.NoError(t, store.CreateAuthorizationCode(ctx, code))

	fetched, err := store.GetAuthorizationCode(ctx, code.Code, code.ClientID)
	require.NoError(t, err)
	require.Equal(t, code.Scope, fetched.Scope)
	require.Equal(t, user.ID, fetched.User.ID)

	require.NoError(t, store.DeleteAuthorizationCode(ctx, code.Code, code.ClientID))

	_, err = store.GetAuthorizationCode(ctx, code.Code, code.ClientID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteAuthorizationCodeSecondDeleteIsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RegisterUser(ctx, "alice", "hunter2"))
	user, err := store.GetUser(ctx, "alice", "hunter2")
	require.NoError(t, err)

	code := &types.AuthorizationCode{
		Code:        "race-code",
		ClientID:    "client-1",
		RedirectURI: "https://app.example/cb",
		User:        *user,
		AuthTime:    time.Now(),
		ExpiresIn:   10 * time.Minute,
	}
	require.NoError(t, store.CreateAuthorizationCode(ctx, code))
	require.NoError(t, store.DeleteAuthorizationCode(ctx, code.Code, code.ClientID))

	// A second redemption of the same code, as would happen if a racing
	// request lost the WHERE used = false update, must come back as
	// not-found rather than silently succeeding again.
	err = store.DeleteAuthorizationCode(ctx, code.Code, code.ClientID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateTokenAndIntrospection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	registered, err := store.RegisterClient(ctx, gormstore.RegisterClientParams{
		ClientName:     "test client",
		GrantTypes:     []types.GrantType{types.GrantTypeClientCredentials},
		IsConfidential: true,
	})
	require.NoError(t, err)
	client, err := store.GetClient(ctx, registered.ClientID, &registered.ClientSecret)
	require.NoError(t, err)

	require.NoError(t, store.RegisterUser(ctx, "alice", "hunter2"))
	user, err := store.GetUser(ctx, "alice", "hunter2")
	require.NoError(t, err)

	tok, err := store.CreateToken(ctx, client, "read", user, true)
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)
	require.NotEmpty(t, tok.RefreshToken)

	introspected, err := store.GetTokenForIntrospection(ctx, tok.AccessToken, client.ClientID)
	require.NoError(t, err)
	require.False(t, introspected.Revoked)
	require.Equal(t, "read", introspected.Scope)

	fetched, err := store.GetRefreshToken(ctx, tok.RefreshToken, client.ClientID)
	require.NoError(t, err)
	require.Equal(t, user.ID, fetched.User.ID)

	require.NoError(t, store.RevokeToken(ctx, tok.RefreshToken, client.ClientID))

	_, err = store.GetRefreshToken(ctx, tok.RefreshToken, client.ClientID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	introspectedAfterRevoke, err := store.GetTokenForIntrospection(ctx, tok.AccessToken, client.ClientID)
	require.NoError(t, err)
	require.False(t, introspectedAfterRevoke.Revoked, "revocation only marks the refresh-token row; the access token keeps introspecting until it expires")
}

func TestCreateTokenClientCredentialsIssuesNoRefreshToken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	registered, err := store.RegisterClient(ctx, gormstore.RegisterClientParams{
		ClientName:     "service client",
		GrantTypes:     []types.GrantType{types.GrantTypeClientCredentials},
		IsConfidential: true,
	})
	require.NoError(t, err)
	client, err := store.GetClient(ctx, registered.ClientID, &registered.ClientSecret)
	require.NoError(t, err)

	tok, err := store.CreateToken(ctx, client, "read", nil, false)
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)
	require.Empty(t, tok.RefreshToken)
}

func TestCreateTokenIssueRefreshTokenFalsePersistsNoRefreshRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	registered, err := store.RegisterClient(ctx, gormstore.RegisterClientParams{
		ClientName:     "implicit client",
		ResponseTypes:  []types.ResponseType{types.ResponseTypeToken},
		IsConfidential: false,
	})
	require.NoError(t, err)
	client, err := store.GetClient(ctx, registered.ClientID, nil)
	require.NoError(t, err)

	require.NoError(t, store.RegisterUser(ctx, "alice", "hunter2"))
	user, err := store.GetUser(ctx, "alice", "hunter2")
	require.NoError(t, err)

	// issueRefreshToken=false, with a real resource owner present, must
	// leave the refresh token table untouched: a user-bound token (as an
	// implicit grant issues) is not by itself enough to suppress the row,
	// only the explicit flag is.
	var before int64
	require.NoError(t, store.DB().Model(&gormstore.RefreshToken{}).Count(&before).Error)

	tok, err := store.CreateToken(ctx, client, "read", user, false)
	require.NoError(t, err)
	require.Empty(t, tok.RefreshToken)

	var after int64
	require.NoError(t, store.DB().Model(&gormstore.RefreshToken{}).Count(&after).Error)
	require.Equal(t, before, after, "no refresh token row should be persisted when issueRefreshToken is false")
}

func TestGetTokenForIntrospectionCrossClientIsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner, err := store.RegisterClient(ctx, gormstore.RegisterClientParams{
		ClientName:     "owner",
		GrantTypes:     []types.GrantType{types.GrantTypeClientCredentials},
		IsConfidential: true,
	})
	require.NoError(t, err)
	ownerClient, err := store.GetClient(ctx, owner.ClientID, &owner.ClientSecret)
	require.NoError(t, err)

	tok, err := store.CreateToken(ctx, ownerClient, "read", nil, false)
	require.NoError(t, err)

	_, err = store.GetTokenForIntrospection(ctx, tok.AccessToken, "some-other-client")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func strPtr(s string) *string { return &s }
