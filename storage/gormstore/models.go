// Package gormstore is the reference storage.Adapter implementation,
// backed by GORM. It is grounded on the teacher's
// internal/service/oauth and internal/model/oauth_* packages: the same
// table shapes, JSON-column scope/redirect-uri sets, and bcrypt secret
// hashing, adapted to this module's storage.Adapter contract and
// entity types.
package gormstore

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client is the persisted row backing types.Client.
type Client struct {
	ID        uint   `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ClientID     string `gorm:"uniqueIndex;not null"`
	ClientSecret string

	ClientName string

	RedirectURIs  datatypes.JSON `gorm:"type:json"`
	GrantTypes    datatypes.JSON `gorm:"type:json;not null"`
	ResponseTypes datatypes.JSON `gorm:"type:json"`
	Scopes        datatypes.JSON `gorm:"type:json"`

	IsConfidential          bool   `gorm:"not null;default:true"`
	TokenEndpointAuthMethod string `gorm:"not null;default:client_secret_basic"`
}

func (Client) TableName() string { return "oauth_clients" }

// User is the persisted row backing types.User for the password grant.
type User struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

func (User) TableName() string { return "oauth_users" }

// AuthorizationCode is the persisted row backing types.AuthorizationCode.
type AuthorizationCode struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Code     string `gorm:"uniqueIndex;not null"`
	ClientID string `gorm:"not null;index"`
	UserID   uint   `gorm:"not null;index"`

	RedirectURI string `gorm:"not null"`
	Scope       string

	AuthTime  time.Time     `gorm:"not null;index"`
	ExpiresIn time.Duration `gorm:"not null"`

	CodeChallenge       string
	CodeChallengeMethod string

	Used bool `gorm:"not null;default:false;index"`
}

func (AuthorizationCode) TableName() string { return "oauth_authorization_codes" }

// AccessToken is the persisted row backing the access side of types.Token.
type AccessToken struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	AccessToken string `gorm:"uniqueIndex;not null"`
	ClientID    string `gorm:"not null;index"`
	UserID      *uint  `gorm:"index"`
	Scope       string

	IssuedAt  time.Time     `gorm:"not null;index"`
	ExpiresIn time.Duration `gorm:"not null"`

	RefreshTokenID *uint `gorm:"index"`
	Revoked        bool  `gorm:"not null;default:false;index"`
}

func (AccessToken) TableName() string { return "oauth_access_tokens" }

// RefreshToken is the persisted row backing the refresh side of types.Token.
type RefreshToken struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	RefreshToken string `gorm:"uniqueIndex;not null"`
	ClientID     string `gorm:"not null;index"`
	UserID       *uint  `gorm:"index"`
	Scope        string

	IssuedAt  time.Time     `gorm:"not null;index"`
	ExpiresIn time.Duration `gorm:"not null"`

	Revoked       bool `gorm:"not null;default:false;index"`
	RotationCount int  `gorm:"not null;default:0"`
}

func (RefreshToken) TableName() string { return "oauth_refresh_tokens" }

// Migrate runs the auto-migration for every table this package owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Client{}, &User{}, &AuthorizationCode{}, &AccessToken{}, &RefreshToken{}, &AuditEvent{})
}
