package middleware

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/tasklane/backend/api/transport"
	"github.com/tasklane/backend/internal/auth"
)

func newRequestCtx(authorization string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/api/u1/tasks")
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}
	return ctx
}

func TestBearerAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenIssuer("secret", "tasklane", time.Hour)
	tok, err := tokens.Issue("u1", "u1@x.com")
	require.NoError(t, err)

	var nextCalled bool
	handler := BearerAuth(tokens, nil)(func(ctx *fasthttp.RequestCtx) {
		nextCalled = true
		claims, ok := ClaimsFromRequest(ctx)
		require.True(t, ok)
		assert.Equal(t, "u1", claims.Subject)
		assert.Equal(t, "u1@x.com", claims.Email)
	})

	ctx := newRequestCtx("Bearer " + tok)
	handler(ctx)

	assert.True(t, nextCalled)
}

func TestBearerAuth_Rejections(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenIssuer("secret", "tasklane", time.Hour)
	other := auth.NewTokenIssuer("other-secret", "tasklane", time.Hour)
	foreign, err := other.Issue("u1", "u1@x.com")
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"no bearer prefix", "Token abc"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			handler := BearerAuth(tokens, nil)(func(ctx *fasthttp.RequestCtx) {
				nextCalled = true
			})

			ctx := newRequestCtx(tt.authorization)
			handler(ctx)

			assert.False(t, nextCalled)
			assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())

			var body transport.ErrorBody
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestBearerAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenIssuer("secret", "tasklane", time.Hour)

	// A token that expired a minute ago, signed with the right secret.
	now := time.Now()
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	var nextCalled bool
	handler := BearerAuth(tokens, nil)(func(ctx *fasthttp.RequestCtx) {
		nextCalled = true
	})

	ctx := newRequestCtx("Bearer " + expired)
	handler(ctx)

	assert.False(t, nextCalled)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestClaimsFromRequest_Absent(t *testing.T) {
	t.Parallel()

	ctx := newRequestCtx("")
	_, ok := ClaimsFromRequest(ctx)
	assert.False(t, ok)
}
