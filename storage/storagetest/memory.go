// Package storagetest provides an in-memory storage.Adapter for tests,
// mirroring the teacher's pkg/testhelpers convention of a reusable test
// fixture package rather than duplicating fakes per test file.
package storagetest

import (
	"context"
	"sync"
	"time"

	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
	"github.com/mcpjungle/oauth2core/util"
)

// DefaultAccessTokenTTL and DefaultRefreshTokenTTL are the lifetimes
// MemoryAdapter stamps on issued tokens when no override is set.
const (
	DefaultAccessTokenTTL  = time.Hour
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// MemoryAdapter is a storage.Adapter backed by in-process maps. It is
// safe for concurrent use. Not for production use: secrets are stored
// in the clear for test simplicity; only gormstore hashes them.
type MemoryAdapter struct {
	mu sync.Mutex

	clients map[string]*types.Client
	users   map[string]userRecord

	codes     map[string]*types.AuthorizationCode
	tokens    map[string]*types.Token // keyed by access token
	byRefresh map[string]*types.Token

	// Now, when set, overrides time.Now for token issuance timestamps.
	Now func() time.Time
}

type userRecord struct {
	user     types.User
	password string
}

// NewMemoryAdapter returns an empty MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		clients:   make(map[string]*types.Client),
		users:     make(map[string]userRecord),
		codes:     make(map[string]*types.AuthorizationCode),
		tokens:    make(map[string]*types.Token),
		byRefresh: make(map[string]*types.Token),
	}
}

// AddClient registers a client for lookup by GetClient.
func (m *MemoryAdapter) AddClient(c *types.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c.ClientID] = c
}

// AddUser registers a username/password pair for the password grant.
func (m *MemoryAdapter) AddUser(username, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[username] = userRecord{user: types.User{ID: username}, password: password}
}

// RefreshTokenCount reports how many refresh tokens are currently
// stored, for tests asserting a grant never persists one.
func (m *MemoryAdapter) RefreshTokenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byRefresh)
}

func (m *MemoryAdapter) GetClient(_ context.Context, clientID string, secret *string) (*types.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[clientID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if secret != nil && c.IsConfidential {
		if !util.ConstantTimeCompare(c.ClientSecret, *secret) {
			return nil, storage.ErrNotFound
		}
	}
	return c, nil
}

func (m *MemoryAdapter) GetUser(_ context.Context, username, password string) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok || u.password != password {
		return nil, storage.ErrNotFound
	}
	return &u.user, nil
}

func (m *MemoryAdapter) CreateAuthorizationCode(_ context.Context, code *types.AuthorizationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *code
	m.codes[code.Code] = &cp
	return nil
}

func (m *MemoryAdapter) GetAuthorizationCode(_ context.Context, code, clientID string) (*types.AuthorizationCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ac, ok := m.codes[code]
	if !ok || ac.ClientID != clientID {
		return nil, storage.ErrNotFound
	}
	cp := *ac
	return &cp, nil
}

func (m *MemoryAdapter) DeleteAuthorizationCode(_ context.Context, code, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ac, ok := m.codes[code]
	if !ok || ac.ClientID != clientID {
		return storage.ErrNotFound
	}
	delete(m.codes, code)
	return nil
}

func (m *MemoryAdapter) CreateToken(_ context.Context, client *types.Client, scope string, user *types.User, issueRefreshToken bool) (*types.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	access, _ := util.GenerateToken(16)
	t := &types.Token{
		AccessToken: access,
		TokenType:   "Bearer",
		ClientID:    client.ClientID,
		User:        user,
		Scope:       scope,
		IssuedAt:    m.now(),
		ExpiresIn:   DefaultAccessTokenTTL,
	}
	if user != nil && issueRefreshToken {
		refresh, _ := util.GenerateToken(16)
		t.RefreshToken = refresh
		t.RefreshTokenExpiresIn = DefaultRefreshTokenTTL
		m.byRefresh[refresh] = t
	}
	m.tokens[access] = t
	return t, nil
}

func (m *MemoryAdapter) GetRefreshToken(_ context.Context, refreshToken, clientID string) (*types.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byRefresh[refreshToken]
	if !ok || t.ClientID != clientID || t.Revoked {
		return nil, storage.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryAdapter) RevokeToken(_ context.Context, refreshToken, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byRefresh[refreshToken]
	if !ok || t.ClientID != clientID {
		return storage.ErrNotFound
	}
	t.Revoked = true
	return nil
}

func (m *MemoryAdapter) GetTokenForIntrospection(_ context.Context, token, clientID string) (*types.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok || t.ClientID != clientID {
		return nil, storage.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryAdapter) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

var _ storage.Adapter = (*MemoryAdapter)(nil)
