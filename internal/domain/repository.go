package domain

import (
	"context"
	"time"
)

// UserRepository provides CRUD operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByExternalID(ctx context.Context, issuer, externalID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id int64) error
	SetRole(ctx context.Context, id int64, role Role) error
}

// EventRepository provides CRUD operations for events.
type EventRepository interface {
	Create(ctx context.Context, e *Event) (*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, e *Event) (*Event, error)
	Delete(ctx context.Context, id int64) error
}

// AttendanceRepository owns the (user_id, event_id) join table and derives
// lookups in both directions.
type AttendanceRepository interface {
	Add(ctx context.Context, userID, eventID int64) error
	Remove(ctx context.Context, userID, eventID int64) error
	ListAttendees(ctx context.Context, eventID int64) ([]User, error)
	ListEventsForUser(ctx context.Context, userID int64) ([]Event, error)
}

// AuditRepository records and queries audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, limit int) ([]AuditEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
