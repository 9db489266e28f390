package gormstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcpjungle/oauth2core/types"
	"github.com/mcpjungle/oauth2core/util"
)

// RegisterClientParams mirrors the teacher's RegisterClient argument
// list (internal/service/oauth/oauth.go), generalized to this module's
// grant/response-type enums and extended with ResponseTypes, which the
// teacher's client model did not track separately from grant types.
type RegisterClientParams struct {
	ClientName     string
	RedirectURIs   []string
	GrantTypes     []types.GrantType
	ResponseTypes  []types.ResponseType
	Scopes         []string
	IsConfidential bool
}

// RegisteredClient is returned once, at registration time, with the
// plaintext secret — every subsequent lookup only ever sees the hash.
type RegisteredClient struct {
	ClientID     string
	ClientSecret string
}

// RegisterClient creates a new OAuth client row, hashing its secret
// (confidential clients only) with bcrypt before it touches the
// database.
func (s *Store) RegisterClient(ctx context.Context, p RegisterClientParams) (*RegisteredClient, error) {
	clientID, err := util.GenerateClientID()
	if err != nil {
		return nil, fmt.Errorf("gormstore: generate client id: %w", err)
	}

	var plainSecret, hashedSecret string
	if p.IsConfidential {
		plainSecret, err = util.GenerateClientSecret()
		if err != nil {
			return nil, fmt.Errorf("gormstore: generate client secret: %w", err)
		}
		hashedSecret, err = util.HashSecret(plainSecret)
		if err != nil {
			return nil, fmt.Errorf("gormstore: hash client secret: %w", err)
		}
	}

	grantTypes := make([]string, 0, len(p.GrantTypes))
	for _, g := range p.GrantTypes {
		grantTypes = append(grantTypes, string(g))
	}
	responseTypes := make([]string, 0, len(p.ResponseTypes))
	for _, r := range p.ResponseTypes {
		responseTypes = append(responseTypes, string(r))
	}

	redirectJSON, _ := json.Marshal(p.RedirectURIs)
	grantTypesJSON, _ := json.Marshal(grantTypes)
	responseTypesJSON, _ := json.Marshal(responseTypes)
	scopesJSON, _ := json.Marshal(p.Scopes)

	authMethod := types.AuthMethodClientSecretBasic
	if !p.IsConfidential {
		authMethod = types.AuthMethodNone
	}

	row := &Client{
		ClientID:                clientID,
		ClientSecret:            hashedSecret,
		ClientName:              p.ClientName,
		RedirectURIs:            redirectJSON,
		GrantTypes:              grantTypesJSON,
		ResponseTypes:           responseTypesJSON,
		Scopes:                  scopesJSON,
		IsConfidential:          p.IsConfidential,
		TokenEndpointAuthMethod: string(authMethod),
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("gormstore: create client: %w", err)
	}

	return &RegisteredClient{ClientID: clientID, ClientSecret: plainSecret}, nil
}

// RegisterUser creates a resource-owner row for the password grant.
func (s *Store) RegisterUser(ctx context.Context, username, password string) error {
	hashed, err := util.HashSecret(password)
	if err != nil {
		return fmt.Errorf("gormstore: hash user password: %w", err)
	}
	row := &User{Username: username, PasswordHash: hashed}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("gormstore: create user: %w", err)
	}
	return nil
}
