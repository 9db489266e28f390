package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
	"github.com/mcpjungle/oauth2core/util"
	"gorm.io/gorm"
)

// Store is the reference storage.Adapter implementation. Logger is
// optional; when nil, Store logs nothing (matching server.Config's
// noop-logger default).
type Store struct {
	db     *gorm.DB
	audit  *auditLog
	logger Logger
	ttls   tokenTTLs
}

// Logger is the minimal structured-logging surface gormstore uses.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

// New builds a Store over db, running AutoMigrate for the tables it owns.
func New(db *gorm.DB, logger Logger) (*Store, error) {
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("gormstore: migrate: %w", err)
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Store{db: db, audit: &auditLog{db: db, logger: logger}, logger: logger}, nil
}

var _ storage.Adapter = (*Store)(nil)

// DB exposes the underlying *gorm.DB for callers that need to run
// migrations, admin queries, or inspect rows this Adapter doesn't
// otherwise surface.
func (s *Store) DB() *gorm.DB { return s.db }

func unmarshalStrings(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	_ = json.Unmarshal(raw, &out)
	return out
}

func toClient(c *Client) *types.Client {
	grantTypesRaw := unmarshalStrings(c.GrantTypes)
	grantTypes := make([]types.GrantType, 0, len(grantTypesRaw))
	for _, g := range grantTypesRaw {
		grantTypes = append(grantTypes, types.GrantType(g))
	}

	responseTypesRaw := unmarshalStrings(c.ResponseTypes)
	responseTypes := make([]types.ResponseType, 0, len(responseTypesRaw))
	for _, r := range responseTypesRaw {
		responseTypes = append(responseTypes, types.ResponseType(r))
	}

	return &types.Client{
		ClientID:                c.ClientID,
		ClientSecret:            c.ClientSecret,
		IsConfidential:          c.IsConfidential,
		TokenEndpointAuthMethod: types.TokenEndpointAuthMethod(c.TokenEndpointAuthMethod),
		RedirectURIs:            unmarshalStrings(c.RedirectURIs),
		GrantTypes:              grantTypes,
		ResponseTypes:           responseTypes,
		Scopes:                  unmarshalStrings(c.Scopes),
	}
}

// GetClient looks up a client by id, verifying secret when provided.
func (s *Store) GetClient(ctx context.Context, clientID string, secret *string) (*types.Client, error) {
	var row Client
	if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("gormstore: get client: %w", err)
	}

	if secret != nil && row.IsConfidential {
		if !util.VerifySecret(row.ClientSecret, *secret) {
			return nil, storage.ErrNotFound
		}
	}

	return toClient(&row), nil
}

// GetUser verifies a username/password pair for the password grant.
func (s *Store) GetUser(ctx context.Context, username, password string) (*types.User, error) {
	var row User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("gormstore: get user: %w", err)
	}
	if !util.VerifySecret(row.PasswordHash, password) {
		return nil, storage.ErrNotFound
	}
	return &types.User{ID: fmt.Sprintf("%d", row.ID)}, nil
}
