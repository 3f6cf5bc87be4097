package repository

import (
	"context"

	"github.com/tasklane/backend/domain"
)

// TaskFilter scopes a task listing. Completed is tri-state: nil means no
// completion filter.
type TaskFilter struct {
	OwnerID   string
	Completed *bool
	Limit     int
	Offset    int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns tasks newest-first by created_at.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Update replaces title, description and completed, refreshing updated_at.
	Update(ctx context.Context, task *domain.Task) error
	// ToggleCompletion atomically flips the completed flag and returns the
	// resulting row. Concurrent toggles on the same task serialize at the
	// storage layer.
	ToggleCompletion(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
