package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasklane/backend/api/transport"
	"github.com/tasklane/backend/domain"
	"github.com/tasklane/backend/internal/auth"
)

const claimsKey = "auth_claims"

// BearerAuth is the single choke point in front of every protected route.
// It extracts the bearer token, verifies it, and attaches the decoded claims
// to the request so handlers can thread them explicitly. Any failure stops
// the request with 401 before a handler runs.
func BearerAuth(tokens *auth.TokenIssuer, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractBearer(ctx)
			if tokenString == "" {
				reject(ctx, "not authenticated")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn("token rejected", zap.Error(err))
				reject(ctx, domain.ErrInvalidToken.Message)
				return
			}

			ctx.SetUserValue(claimsKey, claims)
			next(ctx)
		}
	}
}

// ClaimsFromRequest returns the claims attached by BearerAuth.
func ClaimsFromRequest(ctx *fasthttp.RequestCtx) (*domain.Claims, bool) {
	claims, ok := ctx.UserValue(claimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}

func extractBearer(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func reject(ctx *fasthttp.RequestCtx, detail string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.Header.Set("WWW-Authenticate", "Bearer")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewErrorBody(detail))
	ctx.SetBody(body)
}
