// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase.
package testutil

import (
	"context"
	"time"

	"clubhouse/internal/domain"
)

// === User Repository Mock ===

// MockUserRepo implements domain.UserRepository for testing.
type MockUserRepo struct {
	CreateFn          func(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByIDFn         func(ctx context.Context, id int64) (*domain.User, error)
	GetByExternalIDFn func(ctx context.Context, issuer, externalID string) (*domain.User, error)
	GetByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	ListFn            func(ctx context.Context) ([]domain.User, error)
	UpdateFn          func(ctx context.Context, u *domain.User) (*domain.User, error)
	DeleteFn          func(ctx context.Context, id int64) error
	SetRoleFn         func(ctx context.Context, id int64, role domain.Role) error
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	panic("unexpected call to MockUserRepo.Create")
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockUserRepo.GetByID")
}

func (m *MockUserRepo) GetByExternalID(ctx context.Context, issuer, externalID string) (*domain.User, error) {
	if m.GetByExternalIDFn != nil {
		return m.GetByExternalIDFn(ctx, issuer, externalID)
	}
	panic("unexpected call to MockUserRepo.GetByExternalID")
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	panic("unexpected call to MockUserRepo.GetByEmail")
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	panic("unexpected call to MockUserRepo.List")
}

func (m *MockUserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	panic("unexpected call to MockUserRepo.Update")
}

func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	panic("unexpected call to MockUserRepo.Delete")
}

func (m *MockUserRepo) SetRole(ctx context.Context, id int64, role domain.Role) error {
	if m.SetRoleFn != nil {
		return m.SetRoleFn(ctx, id, role)
	}
	panic("unexpected call to MockUserRepo.SetRole")
}

// === Event Repository Mock ===

// MockEventRepo implements domain.EventRepository for testing.
type MockEventRepo struct {
	CreateFn  func(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Event, error)
	ListFn    func(ctx context.Context) ([]domain.Event, error)
	UpdateFn  func(ctx context.Context, e *domain.Event) (*domain.Event, error)
	DeleteFn  func(ctx context.Context, id int64) error
}

func (m *MockEventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	panic("unexpected call to MockEventRepo.Create")
}

func (m *MockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockEventRepo.GetByID")
}

func (m *MockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	panic("unexpected call to MockEventRepo.List")
}

func (m *MockEventRepo) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, e)
	}
	panic("unexpected call to MockEventRepo.Update")
}

func (m *MockEventRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	panic("unexpected call to MockEventRepo.Delete")
}

// === Attendance Repository Mock ===

// MockAttendanceRepo implements domain.AttendanceRepository for testing.
type MockAttendanceRepo struct {
	AddFn               func(ctx context.Context, userID, eventID int64) error
	RemoveFn            func(ctx context.Context, userID, eventID int64) error
	ListAttendeesFn     func(ctx context.Context, eventID int64) ([]domain.User, error)
	ListEventsForUserFn func(ctx context.Context, userID int64) ([]domain.Event, error)
}

func (m *MockAttendanceRepo) Add(ctx context.Context, userID, eventID int64) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, userID, eventID)
	}
	panic("unexpected call to MockAttendanceRepo.Add")
}

func (m *MockAttendanceRepo) Remove(ctx context.Context, userID, eventID int64) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, userID, eventID)
	}
	panic("unexpected call to MockAttendanceRepo.Remove")
}

func (m *MockAttendanceRepo) ListAttendees(ctx context.Context, eventID int64) ([]domain.User, error) {
	if m.ListAttendeesFn != nil {
		return m.ListAttendeesFn(ctx, eventID)
	}
	panic("unexpected call to MockAttendanceRepo.ListAttendees")
}

func (m *MockAttendanceRepo) ListEventsForUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	if m.ListEventsForUserFn != nil {
		return m.ListEventsForUserFn(ctx, userID)
	}
	panic("unexpected call to MockAttendanceRepo.ListEventsForUser")
}

// === Audit Repository Mock ===

// MockAuditRepo implements domain.AuditRepository for testing. Inserted
// entries are collected for assertions.
type MockAuditRepo struct {
	InsertFn          func(ctx context.Context, e *domain.AuditEntry) error
	ListFn            func(ctx context.Context, limit int) ([]domain.AuditEntry, error)
	DeleteOlderThanFn func(ctx context.Context, cutoff time.Time) (int64, error)
	Entries           []*domain.AuditEntry
}

func (m *MockAuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	if m.InsertFn != nil {
		if err := m.InsertFn(ctx, e); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, e)
	return nil
}

func (m *MockAuditRepo) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit)
	}
	panic("unexpected call to MockAuditRepo.List")
}

func (m *MockAuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanFn != nil {
		return m.DeleteOlderThanFn(ctx, cutoff)
	}
	panic("unexpected call to MockAuditRepo.DeleteOlderThan")
}

// LastEntry returns the last collected audit entry, or nil if none.
func (m *MockAuditRepo) LastEntry() *domain.AuditEntry {
	if len(m.Entries) == 0 {
		return nil
	}
	return m.Entries[len(m.Entries)-1]
}

// HasAction returns true if any collected entry has the given action.
func (m *MockAuditRepo) HasAction(action string) bool {
	for _, e := range m.Entries {
		if e.Action == action {
			return true
		}
	}
	return false
}
