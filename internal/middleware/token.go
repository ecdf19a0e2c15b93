// Package middleware provides HTTP middleware for authentication, request
// IDs, and rate limiting.
package middleware

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIdentity is what the club cares about from a verified login token:
// who the member is at the identity provider and how to greet them. Tokens
// without an email cannot be provisioned, so callers treat an empty Email
// as a rejection.
type TokenIdentity struct {
	Subject string
	Issuer  string
	Email   string
	Name    string
}

// TokenVerifier checks a raw bearer token and extracts the member identity.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*TokenIdentity, error)
}

// OIDCVerifier verifies tokens against an identity provider's signing keys.
type OIDCVerifier struct {
	verifier       *oidc.IDTokenVerifier
	trustedIssuers map[string]bool
}

// NewOIDCVerifier discovers the provider's configuration from its issuer URL.
func NewOIDCVerifier(ctx context.Context, issuerURL, audience string, trusted []string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc provider discovery: %w", err)
	}
	v := provider.Verifier(&oidc.Config{ClientID: audience})
	return &OIDCVerifier{verifier: v, trustedIssuers: issuerSet(trusted, issuerURL)}, nil
}

// NewJWKSVerifier builds a verifier straight from a JWKS endpoint, for
// providers without a discovery document.
func NewJWKSVerifier(ctx context.Context, jwksURL, issuerURL, audience string, trusted []string) (*OIDCVerifier, error) {
	keySet := oidc.NewRemoteKeySet(ctx, jwksURL)
	v := oidc.NewVerifier(issuerURL, keySet, &oidc.Config{ClientID: audience})
	return &OIDCVerifier{verifier: v, trustedIssuers: issuerSet(trusted, issuerURL)}, nil
}

func issuerSet(trusted []string, fallback string) map[string]bool {
	set := make(map[string]bool, len(trusted))
	for _, iss := range trusted {
		set[iss] = true
	}
	if len(set) == 0 && fallback != "" {
		set[fallback] = true
	}
	return set
}

// Verify checks the signature, expiry, and audience, then pulls the profile
// claims the provisioner needs.
func (v *OIDCVerifier) Verify(ctx context.Context, raw string) (*TokenIdentity, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if len(v.trustedIssuers) > 0 && !v.trustedIssuers[idToken.Issuer] {
		return nil, fmt.Errorf("issuer %q is not trusted", idToken.Issuer)
	}

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&profile); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	return &TokenIdentity{
		Subject: idToken.Subject,
		Issuer:  idToken.Issuer,
		Email:   profile.Email,
		Name:    profile.Name,
	}, nil
}

// HS256Verifier accepts tokens signed with a shared secret. It exists for
// local development and the CLI's mint-token command; production deployments
// configure an OIDC issuer instead.
type HS256Verifier struct {
	secret []byte
}

// NewHS256Verifier returns a verifier for shared-secret tokens.
func NewHS256Verifier(secret string) (*HS256Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	return &HS256Verifier{secret: []byte(secret)}, nil
}

type hs256Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Verify checks the signature and expiry of a shared-secret token.
func (v *HS256Verifier) Verify(_ context.Context, raw string) (*TokenIdentity, error) {
	var claims hs256Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	return &TokenIdentity{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
