package api

import (
	"time"

	"clubhouse/internal/domain"
)

// === Responses ===

// UserResponse is the wire representation of a user.
type UserResponse struct {
	ID                int64           `json:"id"`
	Email             string          `json:"email"`
	Username          string          `json:"username"`
	FirstName         string          `json:"firstName,omitempty"`
	LastName          string          `json:"lastName,omitempty"`
	DisplayName       string          `json:"displayName,omitempty"`
	ProfilePictureURL string          `json:"profilePictureUrl,omitempty"`
	PhoneNumber       string          `json:"phoneNumber,omitempty"`
	Role              string          `json:"role"`
	Address           *domain.Address `json:"address,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// EventResponse is the wire representation of an event.
type EventResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuditEntryResponse is the wire representation of an audit log entry.
type AuditEntryResponse struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actorId"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entityId"`
	CreatedAt time.Time `json:"createdAt"`
}

func userToAPI(u domain.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		Username:          u.Username,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		DisplayName:       u.DisplayName,
		ProfilePictureURL: u.ProfilePictureURL,
		PhoneNumber:       u.PhoneNumber,
		Role:              string(u.Role),
		Address:           u.Address,
		CreatedAt:         u.CreatedAt,
	}
}

func usersToAPI(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = userToAPI(u)
	}
	return out
}

func eventToAPI(e domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		CreatedAt:   e.CreatedAt,
	}
}

func eventsToAPI(events []domain.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i, e := range events {
		out[i] = eventToAPI(e)
	}
	return out
}

func auditEntryToAPI(e domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        e.ID,
		ActorID:   e.ActorID,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		CreatedAt: e.CreatedAt,
	}
}

// === Requests ===

// CreateUserRequest is the JSON body for POST /users.
type CreateUserRequest struct {
	Email             string          `json:"email"`
	Username          string          `json:"username"`
	FirstName         string          `json:"firstName"`
	LastName          string          `json:"lastName"`
	DisplayName       string          `json:"displayName"`
	ProfilePictureURL string          `json:"profilePictureUrl"`
	PhoneNumber       string          `json:"phoneNumber"`
	Address           *domain.Address `json:"address"`
}

func (r CreateUserRequest) toDomain() domain.CreateUserRequest {
	return domain.CreateUserRequest{
		Email:             r.Email,
		Username:          r.Username,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		DisplayName:       r.DisplayName,
		ProfilePictureURL: r.ProfilePictureURL,
		PhoneNumber:       r.PhoneNumber,
		Address:           r.Address,
	}
}

// UpdateUserRequest is the JSON body for PUT /users/{id}. Absent fields are
// left unchanged.
type UpdateUserRequest struct {
	Email             *string         `json:"email"`
	Username          *string         `json:"username"`
	FirstName         *string         `json:"firstName"`
	LastName          *string         `json:"lastName"`
	DisplayName       *string         `json:"displayName"`
	ProfilePictureURL *string         `json:"profilePictureUrl"`
	PhoneNumber       *string         `json:"phoneNumber"`
	Address           *domain.Address `json:"address"`
}

func (r UpdateUserRequest) toDomain() domain.UpdateUserRequest {
	return domain.UpdateUserRequest{
		Email:             r.Email,
		Username:          r.Username,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		DisplayName:       r.DisplayName,
		ProfilePictureURL: r.ProfilePictureURL,
		PhoneNumber:       r.PhoneNumber,
		Address:           r.Address,
	}
}

// EventRequest is the JSON body for POST /events and PUT /events/{id}.
type EventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

func (r EventRequest) toDomain() domain.EventRequest {
	return domain.EventRequest{
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
	}
}

// SetRoleRequest is the JSON body for PUT /users/{id}/role.
type SetRoleRequest struct {
	Role string `json:"role"`
}
