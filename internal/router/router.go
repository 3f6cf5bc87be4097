package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/tasklane/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New wires the REST surface. Every /api route sits behind the bearer-token
// middleware; /auth/me does too, while signup and signin stay open.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/auth/signup", handlers.Auth.Signup)
	r.POST("/auth/signin", handlers.Auth.Signin)
	r.GET("/auth/me", authMiddleware(handlers.Auth.Me))

	// Protected task routes
	r.GET("/api/{user_id}/tasks", authMiddleware(handlers.Task.List))
	r.POST("/api/{user_id}/tasks", authMiddleware(handlers.Task.Create))
	r.GET("/api/{user_id}/tasks/{id}", authMiddleware(handlers.Task.Get))
	r.PUT("/api/{user_id}/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.PATCH("/api/{user_id}/tasks/{id}/complete", authMiddleware(handlers.Task.ToggleComplete))
	r.DELETE("/api/{user_id}/tasks/{id}", authMiddleware(handlers.Task.Delete))

	return r
}
