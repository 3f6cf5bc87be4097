package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/tasklane/backend/internal/infrastructure/audit"
	"github.com/tasklane/backend/pkg/httpcontext"
	"github.com/tasklane/backend/usecase"
)

// AuditRecorder adapts the BoltDB audit store to the use-case port. Recording
// is best-effort: a failed write is logged and the request proceeds.
type AuditRecorder struct {
	store  *audit.Store
	logger *zap.Logger
}

func NewAuditRecorder(store *audit.Store, logger *zap.Logger) *AuditRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditRecorder{store: store, logger: logger}
}

func (r *AuditRecorder) Record(ctx context.Context, event usecase.AuthEvent) {
	if r == nil || r.store == nil {
		return
	}

	entry := audit.Event{
		Kind:   event.Kind,
		Email:  event.Email,
		UserID: event.UserID,
	}
	if addr, ok := ctx.Value(httpcontext.KeyRemoteAddr).(string); ok {
		entry.RemoteAddr = addr
	}

	if err := r.store.Append(entry); err != nil {
		r.logger.Warn("audit write failed",
			zap.String("kind", event.Kind),
			zap.Error(err))
	}
}

var _ usecase.AuthAuditor = (*AuditRecorder)(nil)
