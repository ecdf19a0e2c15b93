// Package membership provides user account management operations.
package membership

import (
	"context"

	"clubhouse/internal/domain"
	"clubhouse/internal/service/security"
)

// UserService orchestrates user store calls and enforces access decisions.
type UserService struct {
	users      domain.UserRepository
	attendance domain.AttendanceRepository
	audit      domain.AuditRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, attendance domain.AttendanceRepository, audit domain.AuditRepository) *UserService {
	return &UserService{users: users, attendance: attendance, audit: audit}
}

// List returns all users. Admin only.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	if err := security.Check(security.Caller(ctx), security.OpUserList, 0); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// GetByID returns a user by id. Admin or the user themself. The access
// decision is evaluated against the requested id before any store access, so
// a non-owner never learns whether the id exists.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := security.Check(security.Caller(ctx), security.OpUserAccess, id); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Create registers a new user. Open to anonymous callers; the stored role is
// always MEMBER regardless of anything in the payload.
func (s *UserService) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if err := security.Check(security.Caller(ctx), security.OpUserCreate, 0); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:             req.Email,
		Username:          req.Username,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DisplayName:       req.DisplayName,
		ProfilePictureURL: req.ProfilePictureURL,
		PhoneNumber:       req.PhoneNumber,
		Role:              domain.RoleMember,
		Address:           req.Address,
	}
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, domain.AuditCreateUser, created.ID)
	return created, nil
}

// Update applies a partial update: nil fields leave stored values untouched,
// and role and attendance are never mutated through this path. Admin or self.
func (s *UserService) Update(ctx context.Context, id int64, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := security.Check(security.Caller(ctx), security.OpUserAccess, id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(existing)

	updated, err := s.users.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, domain.AuditUpdateUser, id)
	return updated, nil
}

// Delete removes a user and, through the store, their address and attendance
// rows. Admin or self.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := security.Check(security.Caller(ctx), security.OpUserAccess, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, domain.AuditDeleteUser, id)
	return nil
}

// SetRole changes a user's role. This is the only path that grants ADMIN.
func (s *UserService) SetRole(ctx context.Context, id int64, role domain.Role) error {
	if err := security.Check(security.Caller(ctx), security.OpRoleChange, 0); err != nil {
		return err
	}
	if !role.Valid() {
		return domain.ErrValidation("role must be ADMIN or MEMBER")
	}
	if err := s.users.SetRole(ctx, id, role); err != nil {
		return err
	}
	s.logAudit(ctx, domain.AuditSetRole, id)
	return nil
}

// ListAttendedEvents returns the events a user has attended. Admin or self.
func (s *UserService) ListAttendedEvents(ctx context.Context, id int64) ([]domain.Event, error) {
	if err := security.Check(security.Caller(ctx), security.OpUserAccess, id); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.attendance.ListEventsForUser(ctx, id)
}

func (s *UserService) logAudit(ctx context.Context, action string, entityID int64) {
	var actorID int64
	if p, ok := domain.PrincipalFromContext(ctx); ok {
		actorID = p.UserID
	}
	_ = s.audit.Insert(ctx, &domain.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Entity:   "user",
		EntityID: entityID,
	})
}
