package ports

import (
	"context"
	"time"
)

// Audit event kinds emitted by the auth service.
const (
	AuditRegistered     = "identity_registered"
	AuditLoginSucceeded = "login_succeeded"
	AuditLoginFailed    = "login_failed"
)

// AuditEvent records a single authentication-related occurrence.
type AuditEvent struct {
	Kind      string    `json:"kind"`
	Username  string    `json:"username"`
	SubjectID string    `json:"subject_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	At        time.Time `json:"at"`
}

// AuditRecorder accepts events without blocking the calling request. The
// trail is best-effort: a full recorder drops rather than stalls a login.
type AuditRecorder interface {
	Record(event AuditEvent)
}

// AuditTrail is the persistent sink behind the recorder.
type AuditTrail interface {
	Append(ctx context.Context, event AuditEvent) error
	Recent(ctx context.Context, limit int) ([]AuditEvent, error)
}
