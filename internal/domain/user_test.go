package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() CreateUserRequest {
	return CreateUserRequest{
		Email:    "alice@example.com",
		Username: "alice",
	}
}

func TestCreateUserRequestValidate(t *testing.T) {
	t.Run("valid_minimal", func(t *testing.T) {
		req := validCreate()
		assert.NoError(t, req.Validate())
	})

	t.Run("missing_email", func(t *testing.T) {
		req := validCreate()
		req.Email = ""
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Email is required.", validation.Fields["email"])
	})

	t.Run("malformed_email", func(t *testing.T) {
		req := validCreate()
		req.Email = "not-an-email"
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Fields, "email")
	})

	t.Run("email_too_long", func(t *testing.T) {
		req := validCreate()
		req.Email = strings.Repeat("a", 95) + "@example.com"
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Email must be less than 100 characters.", validation.Fields["email"])
	})

	t.Run("missing_username", func(t *testing.T) {
		req := validCreate()
		req.Username = ""
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Username is required.", validation.Fields["username"])
	})

	t.Run("multiple_failures_collected", func(t *testing.T) {
		req := CreateUserRequest{}
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Len(t, validation.Fields, 2)
	})

	t.Run("bad_picture_url", func(t *testing.T) {
		req := validCreate()
		req.ProfilePictureURL = "not a url"
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Fields, "profilePictureUrl")
	})

	t.Run("bad_phone", func(t *testing.T) {
		req := validCreate()
		req.PhoneNumber = "letters"
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Fields, "phoneNumber")
	})

	t.Run("good_optional_fields", func(t *testing.T) {
		req := validCreate()
		req.ProfilePictureURL = "https://cdn.example.com/a.png"
		req.PhoneNumber = "+1 (512) 555-0134"
		assert.NoError(t, req.Validate())
	})
}

func TestUpdateUserRequestValidate(t *testing.T) {
	str := func(s string) *string { return &s }

	t.Run("empty_update_is_valid", func(t *testing.T) {
		req := UpdateUserRequest{}
		assert.NoError(t, req.Validate())
	})

	t.Run("blank_email_rejected", func(t *testing.T) {
		req := UpdateUserRequest{Email: str("")}
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Email must not be blank.", validation.Fields["email"])
	})

	t.Run("blank_username_rejected", func(t *testing.T) {
		req := UpdateUserRequest{Username: str("")}
		assert.Error(t, req.Validate())
	})
}

func TestUpdateUserRequestApply(t *testing.T) {
	str := func(s string) *string { return &s }

	u := User{
		ID:       7,
		Email:    "old@example.com",
		Username: "old",
		Role:     RoleMember,
		Address:  &Address{City: "Austin"},
	}

	req := UpdateUserRequest{
		Username:    str("fresh"),
		DisplayName: str("Fresh Name"),
	}
	req.Apply(&u)

	// Present fields are written, absent fields are untouched.
	assert.Equal(t, "fresh", u.Username)
	assert.Equal(t, "Fresh Name", u.DisplayName)
	assert.Equal(t, "old@example.com", u.Email)
	assert.Equal(t, RoleMember, u.Role)
	assert.Equal(t, "Austin", u.Address.City)

	req = UpdateUserRequest{Address: &Address{City: "Dallas", Country: "US"}}
	req.Apply(&u)
	assert.Equal(t, "Dallas", u.Address.City)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("SUPERUSER").Valid())
	assert.False(t, Role("").Valid())
}
