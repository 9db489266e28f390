package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// AuditEvent is a single lifecycle record: a code or token being
// issued, redeemed, or revoked. Grounded on the teacher's AuditService
// (internal/service/audit/audit.go), narrowed to the authorization-code
// and token lifecycle this module owns — the MCPJungle-specific entity
// kinds (tool groups, MCP clients) have no counterpart here.
type AuditEvent struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Action   string `gorm:"not null;index"` // code_issued | code_redeemed | token_issued | token_revoked
	ClientID string `gorm:"not null;index"`

	// Subject is a redacted reference to the code/token the event is
	// about: the last 8 characters only, never the full secret value.
	Subject string `gorm:"not null"`
}

func (AuditEvent) TableName() string { return "oauth_audit_log" }

type auditLog struct {
	db     *gorm.DB
	logger Logger
}

// redact keeps only a short suffix of a secret value, enough to
// correlate log lines with a request without making the audit table
// itself a credential store.
func redact(secret string) string {
	const tail = 8
	if len(secret) <= tail {
		return "…" + secret
	}
	return "…" + secret[len(secret)-tail:]
}

// record writes an audit row asynchronously and never lets a failure
// or panic in the audit path affect the caller, matching the teacher's
// async non-blocking LogCreate/LogUpdate pattern.
func (a *auditLog) record(action, clientID, subject string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Errorf("gormstore: audit log panic recovered: %v", r)
			}
		}()
		event := &AuditEvent{Action: action, ClientID: clientID, Subject: redact(subject)}
		if err := a.db.Create(event).Error; err != nil {
			a.logger.Errorf("gormstore: failed to write audit event %q: %v", action, err)
		}
	}()
}

func (a *auditLog) logCodeIssued(_ context.Context, clientID, code string) {
	a.record("code_issued", clientID, code)
}

func (a *auditLog) logCodeRedeemed(_ context.Context, clientID, code string) {
	a.record("code_redeemed", clientID, code)
}

func (a *auditLog) logTokenIssued(_ context.Context, clientID, token string) {
	a.record("token_issued", clientID, token)
}

func (a *auditLog) logTokenRevoked(_ context.Context, clientID, token string) {
	a.record("token_revoked", clientID, token)
}

