// Package api provides the HTTP handlers and router for the club REST API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"clubhouse/internal/middleware"
	"clubhouse/internal/service/events"
	"clubhouse/internal/service/governance"
	"clubhouse/internal/service/membership"
)

// Handler holds the services behind the REST endpoints.
type Handler struct {
	users  *membership.UserService
	events *events.EventService
	audit  *governance.AuditService
	logger *slog.Logger
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(users *membership.UserService, events *events.EventService, audit *governance.AuditService, logger *slog.Logger) *Handler {
	return &Handler{users: users, events: events, audit: audit, logger: logger}
}

// RouterConfig holds the cross-cutting options applied to the router.
type RouterConfig struct {
	Auth               *middleware.Authenticator
	RateLimit          *middleware.RateLimiter
	CORSAllowedOrigins []string
}

// NewRouter builds the chi router: request IDs, panic recovery, CORS and rate
// limiting on everything, optional authentication on the /api/v1 subtree.
// Authorization itself happens in the services.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimit != nil {
		r.Use(cfg.RateLimit.Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(cfg.Auth.Handler)
		}

		r.Get("/home", h.Home)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", h.GetEvent)
				r.Put("/", h.UpdateEvent)
				r.Delete("/", h.DeleteEvent)
				r.Get("/attendees", h.ListAttendees)
				r.Put("/attendees/{userID}", h.AddAttendee)
				r.Delete("/attendees/{userID}", h.RemoveAttendee)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Put("/", h.UpdateUser)
				r.Delete("/", h.DeleteUser)
				r.Get("/events", h.ListAttendedEvents)
				r.Put("/role", h.SetUserRole)
			})
		})

		r.Get("/audit", h.ListAudit)
	})

	return r
}

// Home is the public landing endpoint.
func (h *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Welcome to the Clubhouse API!"))
}

// idParam parses a positive int64 path parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) writeInvalidID(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    "VALIDATION_FAILED",
		Message: name + " must be a positive integer",
	})
}
