package domain

import (
	"net/url"
	"regexp"
	"time"
)

// Address is a value object owned by exactly one user. It is created and
// deleted with its owner.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// User represents a club member account.
type User struct {
	ID                int64
	Email             string
	Username          string
	FirstName         string
	LastName          string
	DisplayName       string
	ProfilePictureURL string
	PhoneNumber       string
	Role              Role
	Address           *Address
	ExternalID        *string // IdP subject identifier (JWT `sub` claim)
	ExternalIssuer    *string // Issuer URL that owns this external ID
	CreatedAt         time.Time
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,18}$`)
)

// CreateUserRequest holds parameters for self-registration. Any role supplied
// by the caller is ignored; new users are always created as MEMBER.
type CreateUserRequest struct {
	Email             string
	Username          string
	FirstName         string
	LastName          string
	DisplayName       string
	ProfilePictureURL string
	PhoneNumber       string
	Address           *Address
}

// Validate checks that the request is well-formed, collecting per-field messages.
func (r *CreateUserRequest) Validate() error {
	fields := map[string]string{}
	if r.Email == "" {
		fields["email"] = "Email is required."
	} else if len(r.Email) > 100 {
		fields["email"] = "Email must be less than 100 characters."
	} else if !emailPattern.MatchString(r.Email) {
		fields["email"] = "Email must be a valid email address."
	}
	if r.Username == "" {
		fields["username"] = "Username is required."
	} else if len(r.Username) > 50 {
		fields["username"] = "Username must be less than 50 characters."
	}
	validateOptionalUserFields(fields, r.FirstName, r.LastName, r.DisplayName, r.ProfilePictureURL, r.PhoneNumber)
	if len(fields) > 0 {
		return ErrFieldValidation(fields)
	}
	return nil
}

// UpdateUserRequest holds a partial update. Nil fields leave the stored value
// untouched. Role and attendance are never mutable through this path.
type UpdateUserRequest struct {
	Email             *string
	Username          *string
	FirstName         *string
	LastName          *string
	DisplayName       *string
	ProfilePictureURL *string
	PhoneNumber       *string
	Address           *Address
}

// Validate checks the fields that are present.
func (r *UpdateUserRequest) Validate() error {
	fields := map[string]string{}
	if r.Email != nil {
		switch {
		case *r.Email == "":
			fields["email"] = "Email must not be blank."
		case len(*r.Email) > 100:
			fields["email"] = "Email must be less than 100 characters."
		case !emailPattern.MatchString(*r.Email):
			fields["email"] = "Email must be a valid email address."
		}
	}
	if r.Username != nil {
		switch {
		case *r.Username == "":
			fields["username"] = "Username must not be blank."
		case len(*r.Username) > 50:
			fields["username"] = "Username must be less than 50 characters."
		}
	}
	validateOptionalUserFields(fields,
		strOrEmpty(r.FirstName), strOrEmpty(r.LastName), strOrEmpty(r.DisplayName),
		strOrEmpty(r.ProfilePictureURL), strOrEmpty(r.PhoneNumber))
	if len(fields) > 0 {
		return ErrFieldValidation(fields)
	}
	return nil
}

// Apply merges the non-nil fields of the request into u.
func (r *UpdateUserRequest) Apply(u *User) {
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Username != nil {
		u.Username = *r.Username
	}
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.DisplayName != nil {
		u.DisplayName = *r.DisplayName
	}
	if r.ProfilePictureURL != nil {
		u.ProfilePictureURL = *r.ProfilePictureURL
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = *r.PhoneNumber
	}
	if r.Address != nil {
		u.Address = r.Address
	}
}

func validateOptionalUserFields(fields map[string]string, firstName, lastName, displayName, pictureURL, phone string) {
	if len(firstName) > 50 {
		fields["firstName"] = "First name must be less than 50 characters."
	}
	if len(lastName) > 50 {
		fields["lastName"] = "Last name must be less than 50 characters."
	}
	if len(displayName) > 100 {
		fields["displayName"] = "Display name must be less than 100 characters."
	}
	if pictureURL != "" && !validHTTPURL(pictureURL) {
		fields["profilePictureUrl"] = "Profile picture URL must be a well-formed URL."
	}
	if phone != "" {
		if len(phone) > 20 {
			fields["phoneNumber"] = "Phone number must be less than 20 characters."
		} else if !phonePattern.MatchString(phone) {
			fields["phoneNumber"] = "Phone number must be a valid phone number."
		}
	}
}

func validHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
