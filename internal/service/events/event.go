// Package events provides club event management operations.
package events

import (
	"context"

	"clubhouse/internal/domain"
	"clubhouse/internal/service/security"
)

// EventService orchestrates event store calls and enforces access decisions.
type EventService struct {
	events     domain.EventRepository
	attendance domain.AttendanceRepository
	audit      domain.AuditRepository
}

// NewEventService creates a new EventService.
func NewEventService(events domain.EventRepository, attendance domain.AttendanceRepository, audit domain.AuditRepository) *EventService {
	return &EventService{events: events, attendance: attendance, audit: audit}
}

// List returns all events. Public.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	if err := security.Check(security.Caller(ctx), security.OpEventRead, 0); err != nil {
		return nil, err
	}
	return s.events.List(ctx)
}

// GetByID returns an event by id. Public.
func (s *EventService) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if err := security.Check(security.Caller(ctx), security.OpEventRead, 0); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

// Create persists a new event. Admin only.
func (s *EventService) Create(ctx context.Context, req domain.EventRequest) (*domain.Event, error) {
	if err := security.Check(security.Caller(ctx), security.OpEventWrite, 0); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var e domain.Event
	req.Apply(&e)
	created, err := s.events.Create(ctx, &e)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, domain.AuditCreateEvent, created.ID)
	return created, nil
}

// Update replaces an event's fields from the full DTO. Admin only; NotFound
// when the event does not exist.
func (s *EventService) Update(ctx context.Context, id int64, req domain.EventRequest) (*domain.Event, error) {
	if err := security.Check(security.Caller(ctx), security.OpEventWrite, 0); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(existing)

	updated, err := s.events.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, domain.AuditUpdateEvent, id)
	return updated, nil
}

// Delete removes an event by id. Admin only; NotFound when absent.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := security.Check(security.Caller(ctx), security.OpEventWrite, 0); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, domain.AuditDeleteEvent, id)
	return nil
}

// ListAttendees returns the users attending an event. Public, like event reads.
func (s *EventService) ListAttendees(ctx context.Context, eventID int64) ([]domain.User, error) {
	if err := security.Check(security.Caller(ctx), security.OpEventRead, 0); err != nil {
		return nil, err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.attendance.ListAttendees(ctx, eventID)
}

// AddAttendee marks a user as attending an event. Admin, or the user themself.
func (s *EventService) AddAttendee(ctx context.Context, eventID, userID int64) error {
	if err := security.Check(security.Caller(ctx), security.OpUserAccess, userID); err != nil {
		return err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	if err := s.attendance.Add(ctx, userID, eventID); err != nil {
		return err
	}
	s.logAudit(ctx, domain.AuditAddAttendee, eventID)
	return nil
}

// RemoveAttendee removes a user's attendance. Admin, or the user themself.
func (s *EventService) RemoveAttendee(ctx context.Context, eventID, userID int64) error {
	if err := security.Check(security.Caller(ctx), security.OpUserAccess, userID); err != nil {
		return err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	if err := s.attendance.Remove(ctx, userID, eventID); err != nil {
		return err
	}
	s.logAudit(ctx, domain.AuditRemoveAttendee, eventID)
	return nil
}

func (s *EventService) logAudit(ctx context.Context, action string, entityID int64) {
	var actorID int64
	if p, ok := domain.PrincipalFromContext(ctx); ok {
		actorID = p.UserID
	}
	_ = s.audit.Insert(ctx, &domain.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Entity:   "event",
		EntityID: entityID,
	})
}
