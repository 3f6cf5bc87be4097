package usecase

import "context"

// Auth audit event kinds.
const (
	AuthEventSignup       = "signup"
	AuthEventSignin       = "signin"
	AuthEventSigninFailed = "signin_failed"
)

// AuthEvent describes an authentication outcome worth keeping in the local
// audit trail. It carries no secrets.
type AuthEvent struct {
	Kind   string
	Email  string
	UserID string
}

// AuthAuditor abstracts the audit trail so use cases stay storage-agnostic.
// Recording is best-effort and must never fail a request.
type AuthAuditor interface {
	Record(ctx context.Context, event AuthEvent)
}
