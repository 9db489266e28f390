// Package storage defines the capability interface the engine uses for
// every persistence and credential-verification operation (spec.md §6.3).
// The engine holds this as a polymorphic handle; it never persists
// through any other channel.
package storage

import (
	"context"
	"errors"

	"github.com/mcpjungle/oauth2core/types"
)

// ErrNotFound is returned by lookup methods when the requested entity
// does not exist. The engine treats it as the "None" case from spec.md's
// storage contract, never as a server_error.
var ErrNotFound = errors.New("storage: not found")

// Adapter is the narrow set of operations the engine calls. Every
// method may suspend (perform I/O) and is cancellable via ctx.
// Implementations are the host's responsibility; storage/gormstore is
// a reference implementation.
type Adapter interface {
	// GetClient looks up a client by id. If secret is non-nil, the
	// adapter must verify it and return ErrNotFound on mismatch, which
	// the engine reports as invalid_grant; any other error is reported
	// as server_error.
	GetClient(ctx context.Context, clientID string, secret *string) (*types.Client, error)

	// GetUser verifies a resource-owner username/password pair for the
	// password grant.
	GetUser(ctx context.Context, username, password string) (*types.User, error)

	// CreateAuthorizationCode persists a freshly generated authorization code.
	CreateAuthorizationCode(ctx context.Context, code *types.AuthorizationCode) error

	// GetAuthorizationCode looks up a code by value, scoped to clientID.
	GetAuthorizationCode(ctx context.Context, code, clientID string) (*types.AuthorizationCode, error)

	// DeleteAuthorizationCode removes a code. It must be atomic and
	// idempotent: concurrent deletes of the same code must not both
	// succeed in letting the token be issued twice.
	DeleteAuthorizationCode(ctx context.Context, code, clientID string) error

	// CreateToken persists a freshly issued access token and, when
	// issueRefreshToken is true and user is non-nil, a paired refresh
	// token. The implicit grant passes issueRefreshToken=false so no
	// redeemable refresh token is ever created for a session the
	// protocol forbids refreshing, not merely one scrubbed from the
	// response.
	CreateToken(ctx context.Context, client *types.Client, scope string, user *types.User, issueRefreshToken bool) (*types.Token, error)

	// GetRefreshToken looks up a token by its refresh token value, scoped to clientID.
	GetRefreshToken(ctx context.Context, refreshToken, clientID string) (*types.Token, error)

	// RevokeToken revokes the token owning refreshToken.
	RevokeToken(ctx context.Context, refreshToken, clientID string) error

	// GetTokenForIntrospection looks up a token by access-token value,
	// scoped to clientID, for RFC 7662 introspection. It returns
	// ErrNotFound for an unknown token, a token owned by another client,
	// or any token the adapter otherwise wants to keep opaque.
	GetTokenForIntrospection(ctx context.Context, token, clientID string) (*types.Token, error)
}
