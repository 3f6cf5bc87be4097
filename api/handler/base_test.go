package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tasklane/backend/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"invalid", domain.Invalid("title is required"), http.StatusBadRequest, "title is required"},
		{"unauthorized", domain.ErrInvalidCredentials, http.StatusUnauthorized, "incorrect email or password"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "you can only access your own resources"},
		{"not found", domain.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{"conflict", domain.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{"internal never leaks", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
		{"wrapped internal never leaks", domain.WrapError(domain.ErrCodeInternal, "hashing failed", errors.New("boom")), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantDetail, detail)
		})
	}
}

func TestMapError_WrappedDomainError(t *testing.T) {
	t.Parallel()

	wrapped := domain.WrapError(domain.ErrCodeUnauthorized, "could not validate credentials", errors.New("token is expired"))
	status, detail := mapError(wrapped)
	assert.Equal(t, http.StatusUnauthorized, status)
	// The caller sees the classification message, not the cause.
	assert.Equal(t, "could not validate credentials", detail)
}
