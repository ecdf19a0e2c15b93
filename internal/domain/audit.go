package domain

import "time"

// AuditEntry records a mutating operation performed through the API.
type AuditEntry struct {
	ID        int64
	ActorID   int64 // user id of the caller, 0 for anonymous self-registration
	Action    string
	Entity    string // "user" or "event"
	EntityID  int64
	CreatedAt time.Time
}

// Audit action names.
const (
	AuditCreateUser     = "CREATE_USER"
	AuditUpdateUser     = "UPDATE_USER"
	AuditDeleteUser     = "DELETE_USER"
	AuditSetRole        = "SET_ROLE"
	AuditCreateEvent    = "CREATE_EVENT"
	AuditUpdateEvent    = "UPDATE_EVENT"
	AuditDeleteEvent    = "DELETE_EVENT"
	AuditAddAttendee    = "ADD_ATTENDEE"
	AuditRemoveAttendee = "REMOVE_ATTENDEE"
)
