package security

import (
	"context"
	"fmt"
	"strings"

	"clubhouse/internal/domain"
)

// ProvisionRequest holds the identity-provider claims used to resolve or
// just-in-time create a user at login.
type ProvisionRequest struct {
	Issuer      string
	ExternalID  string
	Email       string
	DisplayName string
	IsBootstrap bool // true when the subject matches the configured bootstrap admin
}

// Validate checks that the request is well-formed.
func (r *ProvisionRequest) Validate() error {
	if r.ExternalID == "" {
		return domain.ErrValidation("external_id is required")
	}
	if r.Issuer == "" {
		return domain.ErrValidation("issuer is required")
	}
	if r.Email == "" {
		// Email is the stable account key; tokens without an email claim
		// cannot be provisioned.
		return domain.ErrValidation("email claim is required")
	}
	return nil
}

// Provisioner resolves validated token claims to a stored user, creating the
// user on first login. New users are MEMBER unless the subject is the
// configured bootstrap admin.
type Provisioner struct {
	users domain.UserRepository
}

// NewProvisioner creates a Provisioner backed by the user repository.
func NewProvisioner(users domain.UserRepository) *Provisioner {
	return &Provisioner{users: users}
}

// ResolveOrProvision returns the user for the given external identity,
// creating it when no matching user exists. An existing user is matched
// first by (issuer, sub), then by email so that pre-registered accounts are
// linked to their identity on first login.
func (p *Provisioner) ResolveOrProvision(ctx context.Context, req ProvisionRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := p.users.GetByExternalID(ctx, req.Issuer, req.ExternalID)
	if err == nil {
		return u, nil
	}
	if _, ok := err.(*domain.NotFoundError); !ok {
		return nil, fmt.Errorf("resolve principal: %w", err)
	}

	u, err = p.users.GetByEmail(ctx, req.Email)
	if err == nil {
		u.ExternalID = &req.ExternalID
		u.ExternalIssuer = &req.Issuer
		return p.users.Update(ctx, u)
	}
	if _, ok := err.(*domain.NotFoundError); !ok {
		return nil, fmt.Errorf("resolve principal by email: %w", err)
	}

	role := domain.RoleMember
	if req.IsBootstrap {
		role = domain.RoleAdmin
	}

	newUser := &domain.User{
		Email:          req.Email,
		Username:       usernameFromClaims(req),
		DisplayName:    req.DisplayName,
		Role:           role,
		ExternalID:     &req.ExternalID,
		ExternalIssuer: &req.Issuer,
	}
	return p.users.Create(ctx, newUser)
}

// usernameFromClaims derives a username when the IdP supplies none: the
// local part of the email, falling back to the subject identifier.
func usernameFromClaims(req ProvisionRequest) string {
	if at := strings.IndexByte(req.Email, '@'); at > 0 {
		return strings.ToLower(req.Email[:at])
	}
	return strings.ToLower(strings.TrimSpace(req.ExternalID))
}
