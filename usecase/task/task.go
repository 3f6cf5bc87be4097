package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/tasklane/backend/domain"
	"github.com/tasklane/backend/repository"
)

// UseCase implements the task operations. Every operation receives the
// caller's verified claims and acts only on tasks owned by that caller.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// Create validates the fields and persists a new task owned by the caller.
func (uc *UseCase) Create(ctx context.Context, claims *domain.Claims, title, description string) (*domain.Task, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	return uc.tasks.Create(ctx, &domain.Task{
		OwnerID:     claims.Subject,
		Title:       title,
		Description: description,
		Completed:   false,
	})
}

// List returns the caller's tasks, newest-first. completed is tri-state.
func (uc *UseCase) List(ctx context.Context, claims *domain.Claims, completed *bool, limit, offset int) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{
		OwnerID:   claims.Subject,
		Completed: completed,
		Limit:     limit,
		Offset:    offset,
	})
}

// Get loads a task and re-checks ownership.
func (uc *UseCase) Get(ctx context.Context, claims *domain.Claims, taskID string) (*domain.Task, error) {
	return uc.load(ctx, claims, taskID)
}

// Update replaces the mutable fields in full, re-validating the input.
func (uc *UseCase) Update(ctx context.Context, claims *domain.Claims, taskID, title, description string, completed bool) (*domain.Task, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	task, err := uc.load(ctx, claims, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	task.Completed = completed

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleCompletion flips the completed flag via the storage layer's atomic
// toggle after the ownership re-check.
func (uc *UseCase) ToggleCompletion(ctx context.Context, claims *domain.Claims, taskID string) (*domain.Task, error) {
	if _, err := uc.load(ctx, claims, taskID); err != nil {
		return nil, err
	}
	return uc.tasks.ToggleCompletion(ctx, taskID)
}

// Delete removes the task. A repeated delete of the same id reports not found.
func (uc *UseCase) Delete(ctx context.Context, claims *domain.Claims, taskID string) error {
	if _, err := uc.load(ctx, claims, taskID); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, taskID)
}

// load fetches a task and verifies it belongs to the caller. A task owned by
// someone else reports not found rather than forbidden, so its existence is
// never confirmed to a non-owner.
func (uc *UseCase) load(ctx context.Context, claims *domain.Claims, taskID string) (*domain.Task, error) {
	if claims == nil || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(claims.Subject) {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
