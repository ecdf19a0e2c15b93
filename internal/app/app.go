// Package app wires repositories, services, middleware, and the HTTP router
// into a runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"clubhouse/internal/api"
	"clubhouse/internal/config"
	"clubhouse/internal/db/repository"
	"clubhouse/internal/middleware"
	"clubhouse/internal/service/events"
	"clubhouse/internal/service/governance"
	"clubhouse/internal/service/membership"
	"clubhouse/internal/service/security"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler needs.
type Services struct {
	Users  *membership.UserService
	Events *events.EventService
	Audit  *governance.AuditService
}

// App holds the fully-wired application. Retention and RateLimit carry
// background goroutines; the caller owns their lifecycle.
type App struct {
	Services  Services
	Router    http.Handler
	Retention *governance.Retention
	RateLimit *middleware.RateLimiter
}

// New wires repositories, services, authentication, and the router from the
// provided deps. Retention is constructed but not started; the caller owns
// its lifecycle.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Repositories split their traffic: mutations on the serialized write
	// pool, lookups and listings on the concurrent read pool.
	userRepo := repository.NewUserRepo(deps.WriteDB, deps.ReadDB)
	eventRepo := repository.NewEventRepo(deps.WriteDB, deps.ReadDB)
	attendanceRepo := repository.NewAttendanceRepo(deps.WriteDB, deps.ReadDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB, deps.ReadDB)

	userSvc := membership.NewUserService(userRepo, attendanceRepo, auditRepo)
	eventSvc := events.NewEventService(eventRepo, attendanceRepo, auditRepo)
	auditSvc := governance.NewAuditService(auditRepo)
	retention := governance.NewRetention(auditRepo, cfg.AuditRetention, deps.Logger.With("component", "audit-retention"))

	verifier, err := buildVerifier(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("token verifier: %w", err)
	}
	provisioner := security.NewProvisioner(userRepo)
	authenticator := middleware.NewAuthenticator(verifier, provisioner, cfg.Auth.BootstrapAdmin, deps.Logger.With("component", "auth"))

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		})
	}

	handler := api.NewHandler(userSvc, eventSvc, auditSvc, deps.Logger.With("component", "api"))
	router := api.NewRouter(handler, api.RouterConfig{
		Auth:               authenticator,
		RateLimit:          limiter,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return &App{
		Services:  Services{Users: userSvc, Events: eventSvc, Audit: auditSvc},
		Router:    router,
		Retention: retention,
		RateLimit: limiter,
	}, nil
}

// buildVerifier selects the token verifier from config: OIDC discovery when
// an issuer URL is set, a remote JWKS when only the JWKS URL is set, HS256
// with a shared secret otherwise.
func buildVerifier(ctx context.Context, cfg *config.Config) (middleware.TokenVerifier, error) {
	switch {
	case cfg.Auth.IssuerURL != "":
		return middleware.NewOIDCVerifier(ctx, cfg.Auth.IssuerURL, cfg.Auth.Audience, cfg.Auth.AllowedIssuers)
	case cfg.Auth.JWKSURL != "":
		return middleware.NewJWKSVerifier(ctx, cfg.Auth.JWKSURL, cfg.Auth.IssuerURL, cfg.Auth.Audience, cfg.Auth.AllowedIssuers)
	default:
		return middleware.NewHS256Verifier(cfg.Auth.JWTSecret)
	}
}
