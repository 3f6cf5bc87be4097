package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasklane/backend/api/transport"
	"github.com/tasklane/backend/domain"
	"github.com/tasklane/backend/pkg/httpcontext"
	taskUC "github.com/tasklane/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/{user_id}/tasks [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	claims, ok := h.authorizeOwner(ctx)
	if !ok {
		return
	}

	completed, err := parseCompletedFilter(string(ctx.QueryArgs().Peek("completed")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 100)
	offset := parseInt(string(ctx.QueryArgs().Peek("offset")), 0)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, claims, completed, limit, offset)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Create task
// @Tags tasks
// @Router /api/{user_id}/tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	claims, ok := h.authorizeOwner(ctx)
	if !ok {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalidBody(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Create(stdCtx, claims, req.Title, req.Description)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, task)
}

// @Summary Get task by id
// @Tags tasks
// @Router /api/{user_id}/tasks/{id} [get]
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	claims, ok := h.authorizeOwner(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Get(stdCtx, claims, h.taskID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Replace task fields
// @Tags tasks
// @Router /api/{user_id}/tasks/{id} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	claims, ok := h.authorizeOwner(ctx)
	if !ok {
		return
	}

	var req transport.TaskUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalidBody(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Update(stdCtx, claims, h.taskID(ctx), req.Title, req.Description, req.Completed)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Toggle task completion
// @Tags tasks
// @Router /api/{user_id}/tasks/{id}/complete [patch]
func (h *TaskHandler) ToggleComplete(ctx *fasthttp.RequestCtx) {
	claims, ok := h.authorizeOwner(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.ToggleCompletion(stdCtx, claims, h.taskID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/{user_id}/tasks/{id} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	claims, ok := h.authorizeOwner(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, claims, h.taskID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusNoContent, nil)
}

// authorizeOwner enforces the path-level ownership rule: the {user_id} path
// segment must match the verified subject. The check runs before any task
// lookup so a mismatch reveals nothing about what exists under another user.
func (h *TaskHandler) authorizeOwner(ctx *fasthttp.RequestCtx) (*domain.Claims, bool) {
	claims, ok := h.claims(ctx)
	if !ok {
		return nil, false
	}
	pathUserID, _ := ctx.UserValue("user_id").(string)
	if !claims.Owns(pathUserID) {
		h.respondError(ctx, domain.ErrForbidden)
		return nil, false
	}
	return claims, true
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func parseCompletedFilter(value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, domain.Invalid("completed must be true or false")
	}
	return &parsed, nil
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
