package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mcpjungle/oauth2core/storage"
	"github.com/mcpjungle/oauth2core/types"
	"gorm.io/gorm"
)

// CreateAuthorizationCode persists a freshly generated code.
func (s *Store) CreateAuthorizationCode(ctx context.Context, code *types.AuthorizationCode) error {
	userID, err := strconv.ParseUint(code.User.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("gormstore: authorization code user id %q is not numeric: %w", code.User.ID, err)
	}

	row := &AuthorizationCode{
		Code:                code.Code,
		ClientID:            code.ClientID,
		UserID:              uint(userID),
		RedirectURI:         code.RedirectURI,
		Scope:               code.Scope,
		AuthTime:            code.AuthTime,
		ExpiresIn:           code.ExpiresIn,
		CodeChallenge:       code.CodeChallenge,
		CodeChallengeMethod: string(code.CodeChallengeMethod),
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("gormstore: create authorization code: %w", err)
	}
	s.audit.logCodeIssued(ctx, row.ClientID, row.Code)
	return nil
}

// GetAuthorizationCode looks up a code, scoped to clientID, skipping
// rows already marked used so a redeemed code reads back as not found.
func (s *Store) GetAuthorizationCode(ctx context.Context, code, clientID string) (*types.AuthorizationCode, error) {
	var row AuthorizationCode
	err := s.db.WithContext(ctx).
		Where("code = ? AND client_id = ? AND used = ?", code, clientID, false).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("gormstore: get authorization code: %w", err)
	}

	return &types.AuthorizationCode{
		Code:                row.Code,
		ClientID:            row.ClientID,
		RedirectURI:         row.RedirectURI,
		Scope:               row.Scope,
		User:                types.User{ID: strconv.FormatUint(uint64(row.UserID), 10)},
		AuthTime:            row.AuthTime,
		ExpiresIn:           row.ExpiresIn,
		CodeChallenge:       row.CodeChallenge,
		CodeChallengeMethod: types.CodeChallengeMethod(row.CodeChallengeMethod),
	}, nil
}

// DeleteAuthorizationCode marks the code used inside a single
// single-row-affected transaction, so that two concurrent redemptions
// of the same code race on the same WHERE used = false clause and only
// one of them reports rows affected — the loser gets storage.ErrNotFound,
// which the engine reports as invalid_grant without issuing a token.
func (s *Store) DeleteAuthorizationCode(ctx context.Context, code, clientID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&AuthorizationCode{}).
			Where("code = ? AND client_id = ? AND used = ?", code, clientID, false).
			Update("used", true)
		if result.Error != nil {
			return fmt.Errorf("gormstore: delete authorization code: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		s.audit.logCodeRedeemed(ctx, clientID, code)
		return nil
	})
}

