package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/tasklane/backend/api/transport"
	"github.com/tasklane/backend/internal/auth"
	"github.com/tasklane/backend/internal/middleware"
)

// protectedCtx builds a request that already passed the auth middleware,
// exactly as the router would deliver it.
func protectedCtx(t *testing.T, tokenUserID, pathUserID string) *fasthttp.RequestCtx {
	t.Helper()

	tokens := auth.NewTokenIssuer("secret", "tasklane", time.Hour)
	tok, err := tokens.Issue(tokenUserID, tokenUserID+"@x.com")
	require.NoError(t, err)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/api/" + pathUserID + "/tasks")
	ctx.Request.Header.Set("Authorization", "Bearer "+tok)
	ctx.SetUserValue("user_id", pathUserID)

	authenticated := middleware.BearerAuth(tokens, nil)(func(*fasthttp.RequestCtx) {})
	authenticated(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	return ctx
}

func TestAuthorizeOwner_Match(t *testing.T) {
	t.Parallel()

	h := NewTaskHandler(nil, nil, nil)
	ctx := protectedCtx(t, "u1", "u1")

	claims, ok := h.authorizeOwner(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", claims.Subject)
}

func TestAuthorizeOwner_MismatchIsForbidden(t *testing.T) {
	t.Parallel()

	h := NewTaskHandler(nil, nil, nil)
	ctx := protectedCtx(t, "u2", "u1")

	_, ok := h.authorizeOwner(ctx)
	assert.False(t, ok)
	assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())

	var body transport.ErrorBody
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.Equal(t, "you can only access your own resources", body.Detail)
}

func TestAuthorizeOwner_MissingClaims(t *testing.T) {
	t.Parallel()

	h := NewTaskHandler(nil, nil, nil)
	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("user_id", "u1")

	_, ok := h.authorizeOwner(ctx)
	assert.False(t, ok)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestParseCompletedFilter(t *testing.T) {
	t.Parallel()

	got, err := parseCompletedFilter("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseCompletedFilter("true")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, *got)

	got, err = parseCompletedFilter("false")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, *got)

	_, err = parseCompletedFilter("maybe")
	require.Error(t, err)
}
