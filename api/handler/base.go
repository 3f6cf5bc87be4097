package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasklane/backend/api/transport"
	"github.com/tasklane/backend/domain"
	"github.com/tasklane/backend/internal/middleware"
	"github.com/tasklane/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// claims returns the identity attached by the auth middleware. Protected
// routes always run behind it, so a miss means a wiring bug; the request is
// still rejected with 401 rather than proceeding unauthenticated.
func (h baseHandler) claims(ctx *fasthttp.RequestCtx) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromRequest(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrInvalidToken)
	}
	return claims, ok
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if payload == nil {
		return
	}
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, detail := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewErrorBody(detail))
}

func (h baseHandler) respondInvalidBody(ctx *fasthttp.RequestCtx) {
	h.respondError(ctx, domain.ErrInvalidPayload)
}

// mapError translates the domain taxonomy to HTTP. Internal errors never leak
// detail to the client.
func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, errorMessage(err)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, errorMessage(err)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, errorMessage(err)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, errorMessage(err)
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, errorMessage(err)
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func errorMessage(err error) string {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return dErr.Message
	}
	return err.Error()
}
