// Package http provides HTTP routing and middleware configuration
// for the StaffKeeper service.
package http

import (
	"net/http"

	"github.com/avolkov/StaffKeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// StaffKeeper API. It applies JSON content-type enforcement on write
// endpoints, request logging, and bearer-token authentication, and
// mounts the identity and employee endpoints under /api.
//
// Routes:
//
//	POST /api/register            → authHandler.Register
//	POST /api/login               → authHandler.Login
//	POST /api/logout              → authHandler.Logout   (protected)
//	GET  /api/session             → authHandler.Session  (protected)
//	GET  /api/employees           → employeeHandler.List (protected)
//	POST /api/employees           → employeeHandler.Create
//	GET  /api/employees/{id}      → employeeHandler.Get
//	PATCH /api/employees/{id}     → employeeHandler.Update
//	DELETE /api/employees/{id}    → employeeHandler.Delete
func NewRouter(
	authHandler *AuthHandler,
	employeeHandler *EmployeeHandler,
	auth middleware.Authenticator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(auth))

			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.Get)
				r.Patch("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Delete)
			})
		})
	})

	return r
}
