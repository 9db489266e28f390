package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
	"github.com/mcpjungle/oauth2core/util"
	"gorm.io/gorm"
)

// tokenTTLs carries the engine's configured lifetimes so CreateToken
// can stamp rows without the adapter reaching back into server.Config.
type tokenTTLs struct {
	AccessTokenExpiresIn  time.Duration
	RefreshTokenExpiresIn time.Duration
}

// WithTokenTTLs returns a Store that issues tokens with the given
// lifetimes instead of the package defaults (1h access, 30d refresh),
// matching the teacher's IssueAccessToken/IssueRefreshToken windows.
func (s *Store) WithTokenTTLs(accessTTL, refreshTTL time.Duration) *Store {
	clone := *s
	clone.ttls = tokenTTLs{AccessTokenExpiresIn: accessTTL, RefreshTokenExpiresIn: refreshTTL}
	return &clone
}

func (s *Store) accessTokenTTL() time.Duration {
	if s.ttls.AccessTokenExpiresIn > 0 {
		return s.ttls.AccessTokenExpiresIn
	}
	return time.Hour
}

func (s *Store) refreshTokenTTL() time.Duration {
	if s.ttls.RefreshTokenExpiresIn > 0 {
		return s.ttls.RefreshTokenExpiresIn
	}
	return 30 * 24 * time.Hour
}

// CreateToken issues a fresh access token bound to client and,
// optionally, user. client_credentials calls pass user == nil; the
// implicit grant passes issueRefreshToken == false so no refresh token
// row is ever created for it.
func (s *Store) CreateToken(ctx context.Context, client *types.Client, scope string, user *types.User, issueRefreshToken bool) (*types.Token, error) {
	accessValue, err := util.GenerateToken(32)
	if err != nil {
		return nil, fmt.Errorf("gormstore: generate access token: %w", err)
	}

	now := time.Now()
	var userID *uint
	if user != nil {
		id, err := strconv.ParseUint(user.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("gormstore: token user id %q is not numeric: %w", user.ID, err)
		}
		u := uint(id)
		userID = &u
	}

	var refreshRow *RefreshToken
	var refreshValue string
	// client_credentials issues no refresh token (no resource owner to
	// re-authenticate on behalf of); the implicit grant suppresses it
	// via issueRefreshToken even though a user is present.
	if user != nil && issueRefreshToken {
		refreshValue, err = util.GenerateToken(32)
		if err != nil {
			return nil, fmt.Errorf("gormstore: generate refresh token: %w", err)
		}
		refreshRow = &RefreshToken{
			RefreshToken: refreshValue,
			ClientID:     client.ClientID,
			UserID:       userID,
			Scope:        scope,
			IssuedAt:     now,
			ExpiresIn:    s.refreshTokenTTL(),
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if refreshRow != nil {
			if err := tx.Create(refreshRow).Error; err != nil {
				return fmt.Errorf("create refresh token: %w", err)
			}
		}
		accessRow := &AccessToken{
			AccessToken: accessValue,
			ClientID:    client.ClientID,
			UserID:      userID,
			Scope:       scope,
			IssuedAt:    now,
			ExpiresIn:   s.accessTokenTTL(),
		}
		if refreshRow != nil {
			accessRow.RefreshTokenID = &refreshRow.ID
		}
		if err := tx.Create(accessRow).Error; err != nil {
			return fmt.Errorf("create access token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gormstore: issue token: %w", err)
	}

	s.audit.logTokenIssued(ctx, client.ClientID, accessValue)

	token := &types.Token{
		AccessToken: accessValue,
		TokenType:   "Bearer",
		ClientID:    client.ClientID,
		User:        user,
		Scope:       scope,
		IssuedAt:    now,
		ExpiresIn:   s.accessTokenTTL(),
	}
	if refreshRow != nil {
		token.RefreshToken = refreshValue
		token.RefreshTokenExpiresIn = s.refreshTokenTTL()
	}
	return token, nil
}

// GetRefreshToken looks up a token by its refresh value, scoped to clientID.
func (s *Store) GetRefreshToken(ctx context.Context, refreshToken, clientID string) (*types.Token, error) {
	var row RefreshToken
	err := s.db.WithContext(ctx).
		Where("refresh_token = ? AND client_id = ? AND revoked = ?", refreshToken, clientID, false).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("gormstore: get refresh token: %w", err)
	}

	var user *types.User
	if row.UserID != nil {
		user = &types.User{ID: strconv.FormatUint(uint64(*row.UserID), 10)}
	}

	return &types.Token{
		RefreshToken:          row.RefreshToken,
		TokenType:             "Bearer",
		ClientID:              row.ClientID,
		User:                  user,
		Scope:                 row.Scope,
		IssuedAt:              row.IssuedAt,
		RefreshTokenExpiresIn: row.ExpiresIn,
		Revoked:               row.Revoked,
	}, nil
}

// RevokeToken revokes the refresh token (and, via rotation count, marks
// it spent) owning refreshToken.
func (s *Store) RevokeToken(ctx context.Context, refreshToken, clientID string) error {
	result := s.db.WithContext(ctx).Model(&RefreshToken{}).
		Where("refresh_token = ? AND client_id = ?", refreshToken, clientID).
		Updates(map[string]interface{}{
			"revoked":        true,
			"rotation_count": gorm.Expr("rotation_count + ?", 1),
		})
	if result.Error != nil {
		return fmt.Errorf("gormstore: revoke refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	s.audit.logTokenRevoked(ctx, clientID, refreshToken)
	return nil
}

// GetTokenForIntrospection looks up a token by access-token value,
// scoped to clientID, for RFC 7662 introspection.
func (s *Store) GetTokenForIntrospection(ctx context.Context, token, clientID string) (*types.Token, error) {
	var row AccessToken
	err := s.db.WithContext(ctx).
		Where("access_token = ? AND client_id = ?", token, clientID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("gormstore: get token for introspection: %w", err)
	}

	var user *types.User
	if row.UserID != nil {
		user = &types.User{ID: strconv.FormatUint(uint64(*row.UserID), 10)}
	}

	return &types.Token{
		AccessToken: row.AccessToken,
		TokenType:   "Bearer",
		ClientID:    row.ClientID,
		User:        user,
		Scope:       row.Scope,
		IssuedAt:    row.IssuedAt,
		ExpiresIn:   row.ExpiresIn,
		Revoked:     row.Revoked,
	}, nil
}
