package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/cloudnative-amadeus/extrahours/internal/approval"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	"github.com/cloudnative-amadeus/extrahours/internal/department"
	"github.com/cloudnative-amadeus/extrahours/internal/extrahour"
	"github.com/cloudnative-amadeus/extrahours/internal/hourtype"
	"github.com/cloudnative-amadeus/extrahours/internal/summary"
	"github.com/cloudnative-amadeus/extrahours/internal/transport/middleware"
	"github.com/cloudnative-amadeus/extrahours/internal/transport/swagger"
	"github.com/cloudnative-amadeus/extrahours/internal/user"
)

// Handlers bundles everything RegisterAllRoutes mounts.
type Handlers struct {
	Auth       *auth.Handler
	Guard      *auth.Guard
	User       *user.Handler
	ExtraHour  *extrahour.Handler
	Approval   *approval.Handler
	Summary    *summary.Handler
	HourType   *hourtype.Handler
	Department *department.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Public reference data
		r.Get("/extra-hour-types", h.HourType.ListTypes)
		r.Get("/departments", h.Department.ListDepartments)
		r.Get("/departments/{id}", h.Department.GetDepartment)

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			// Current user
			pr.Get("/users/me", h.User.Me)

			// Extra hour request routes
			pr.Route("/extra-hours", func(er chi.Router) {
				er.Post("/", h.ExtraHour.CreateExtraHour)
				er.Get("/", h.ExtraHour.ListExtraHours)
				er.Get("/{id}", h.ExtraHour.GetExtraHour)
				er.Put("/{id}", h.ExtraHour.UpdateExtraHour)
				er.Delete("/{id}", h.ExtraHour.DeleteExtraHour)

				// decisions are admin territory
				er.Group(func(ar chi.Router) {
					ar.Use(h.Guard.Require(auth.ActionApprove))
					ar.Patch("/{id}/approve", h.ExtraHour.ApproveExtraHour)
				})
				er.Group(func(ar chi.Router) {
					ar.Use(h.Guard.Require(auth.ActionReject))
					ar.Patch("/{id}/reject", h.ExtraHour.RejectExtraHour)
				})

				er.Group(func(ar chi.Router) {
					ar.Use(h.Guard.RequireAdmin())
					ar.Get("/{id}/approvals", h.Approval.ListForExtraHour)
				})
			})

			// Decision log and summary, admin only
			pr.Group(func(ar chi.Router) {
				ar.Use(h.Guard.RequireAdmin())

				ar.Get("/approvals", h.Approval.ListApprovals)
				ar.Get("/approvals/{id}", h.Approval.GetApproval)
				ar.Get("/summary", h.Summary.GetSummary)

				ar.Get("/users", h.User.ListUsers)
				ar.Get("/users/{id}", h.User.GetUser)
				ar.Put("/users/{id}", h.User.UpdateUser)

				ar.Post("/extra-hour-types", h.HourType.CreateType)
				ar.Get("/extra-hour-types/{id}", h.HourType.GetType)
				ar.Put("/extra-hour-types/{id}", h.HourType.UpdateType)
				ar.Delete("/extra-hour-types/{id}", h.HourType.DeleteType)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(h.Guard.Require(auth.ActionCreateUser))
				ar.Post("/users", h.User.RegisterUser)
			})
			pr.Group(func(ar chi.Router) {
				ar.Use(h.Guard.Require(auth.ActionDeleteUser))
				ar.Delete("/users/{id}", h.User.DeleteUser)
			})
		})
	})
}
