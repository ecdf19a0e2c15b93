package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"clubhouse/internal/domain"
	"clubhouse/internal/service/security"
)

// Authenticator validates bearer tokens and attaches the resolved principal
// to the request context. Requests without credentials pass through
// anonymously; requests with bad credentials are rejected with 401.
type Authenticator struct {
	verifier       TokenVerifier
	provisioner    *security.Provisioner
	bootstrapAdmin string
	logger         *slog.Logger
}

// NewAuthenticator creates an Authenticator. bootstrapAdmin is the email of
// the subject that is promoted to ADMIN on first login; empty disables
// bootstrap promotion.
func NewAuthenticator(verifier TokenVerifier, provisioner *security.Provisioner, bootstrapAdmin string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		verifier:       verifier,
		provisioner:    provisioner,
		bootstrapAdmin: bootstrapAdmin,
		logger:         logger,
	}
}

// Handler returns the middleware. A valid token resolves (provisioning on
// first login) to a domain.Principal stored in the context; the absence of an
// Authorization header leaves the request anonymous so that handlers can
// still serve public operations.
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !strings.HasPrefix(auth, "Bearer ") {
			a.unauthorized(w, r, "Authorization header must use the Bearer scheme")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		if tokenString == "" {
			a.unauthorized(w, r, "bearer token is empty")
			return
		}

		ident, err := a.verifier.Verify(r.Context(), tokenString)
		if err != nil {
			a.logger.Debug("token rejected", "error", err, "request_id", RequestIDFromContext(r.Context()))
			a.unauthorized(w, r, "invalid or expired token")
			return
		}

		user, err := a.provisioner.ResolveOrProvision(r.Context(), a.provisionRequest(ident))
		if err != nil {
			a.logger.Error("principal resolution failed", "error", err, "issuer", ident.Issuer, "request_id", RequestIDFromContext(r.Context()))
			a.unauthorized(w, r, "unable to resolve account for token")
			return
		}

		principal := domain.Principal{UserID: user.ID, Role: user.Role}
		ctx := domain.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) provisionRequest(ident *TokenIdentity) security.ProvisionRequest {
	req := security.ProvisionRequest{
		Issuer:      ident.Issuer,
		ExternalID:  ident.Subject,
		Email:       ident.Email,
		DisplayName: ident.Name,
	}
	if a.bootstrapAdmin != "" && strings.EqualFold(req.Email, a.bootstrapAdmin) {
		req.IsBootstrap = true
	}
	return req
}

func (a *Authenticator) unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHENTICATED",
		"message": message,
	})
}
