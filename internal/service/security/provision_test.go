package security

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/domain"
	"clubhouse/internal/testutil"
)

var errTest = fmt.Errorf("test error")

func validProvision() ProvisionRequest {
	return ProvisionRequest{
		Issuer:      "https://idp.example.com",
		ExternalID:  "sub-123",
		Email:       "alice@example.com",
		DisplayName: "Alice",
	}
}

func TestProvisionRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validProvision()
		assert.NoError(t, req.Validate())
	})

	t.Run("missing_external_id", func(t *testing.T) {
		req := validProvision()
		req.ExternalID = ""
		assert.Error(t, req.Validate())
	})

	t.Run("missing_issuer", func(t *testing.T) {
		req := validProvision()
		req.Issuer = ""
		assert.Error(t, req.Validate())
	})

	t.Run("missing_email", func(t *testing.T) {
		req := validProvision()
		req.Email = ""
		assert.Error(t, req.Validate())
	})
}

func TestResolveOrProvision_ExistingExternalIdentity(t *testing.T) {
	existing := &domain.User{ID: 42, Email: "alice@example.com", Role: domain.RoleMember}
	repo := &testutil.MockUserRepo{
		GetByExternalIDFn: func(_ context.Context, issuer, externalID string) (*domain.User, error) {
			assert.Equal(t, "https://idp.example.com", issuer)
			assert.Equal(t, "sub-123", externalID)
			return existing, nil
		},
	}

	u, err := NewProvisioner(repo).ResolveOrProvision(context.Background(), validProvision())
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
}

func TestResolveOrProvision_LinksByEmail(t *testing.T) {
	preRegistered := &domain.User{ID: 7, Email: "alice@example.com", Role: domain.RoleAdmin}
	repo := &testutil.MockUserRepo{
		GetByExternalIDFn: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrNotFound("user not found")
		},
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			assert.Equal(t, "alice@example.com", email)
			return preRegistered, nil
		},
		UpdateFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			require.NotNil(t, u.ExternalID)
			require.NotNil(t, u.ExternalIssuer)
			assert.Equal(t, "sub-123", *u.ExternalID)
			assert.Equal(t, "https://idp.example.com", *u.ExternalIssuer)
			return u, nil
		},
	}

	u, err := NewProvisioner(repo).ResolveOrProvision(context.Background(), validProvision())
	require.NoError(t, err)
	// Linking preserves the stored role.
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestResolveOrProvision_CreatesMember(t *testing.T) {
	repo := &testutil.MockUserRepo{
		GetByExternalIDFn: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrNotFound("user not found")
		},
		GetByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrNotFound("user not found")
		},
		CreateFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			u.ID = 99
			return u, nil
		},
	}

	u, err := NewProvisioner(repo).ResolveOrProvision(context.Background(), validProvision())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, u.Role)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "Alice", u.DisplayName)
}

func TestResolveOrProvision_BootstrapAdmin(t *testing.T) {
	repo := &testutil.MockUserRepo{
		GetByExternalIDFn: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrNotFound("user not found")
		},
		GetByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrNotFound("user not found")
		},
		CreateFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			u.ID = 1
			return u, nil
		},
	}

	req := validProvision()
	req.IsBootstrap = true
	u, err := NewProvisioner(repo).ResolveOrProvision(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestResolveOrProvision_StoreErrorSurfaces(t *testing.T) {
	repo := &testutil.MockUserRepo{
		GetByExternalIDFn: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, errTest
		},
	}

	_, err := NewProvisioner(repo).ResolveOrProvision(context.Background(), validProvision())
	assert.ErrorIs(t, err, errTest)
}

func TestUsernameFromClaims(t *testing.T) {
	req := validProvision()
	assert.Equal(t, "alice", usernameFromClaims(req))

	req.Email = "no-at-sign"
	req.ExternalID = " Sub-123 "
	assert.Equal(t, "sub-123", usernameFromClaims(req))
}
