package domain

import "time"

// Event represents a club event. Attendance lives in a join table owned by
// the attendance repository; Event itself carries no back-references.
type Event struct {
	ID          int64
	Name        string
	Description string
	Date        string // "2006-01-02"
	Time        string // "15:04"
	Location    string
	CreatedAt   time.Time
}

// EventRequest holds parameters for creating or replacing an event. Updates
// use the full DTO: every field is validated and written.
type EventRequest struct {
	Name        string
	Description string
	Date        string
	Time        string
	Location    string
}

// Validate checks that the request is well-formed, collecting per-field messages.
func (r *EventRequest) Validate() error {
	fields := map[string]string{}
	if r.Name == "" {
		fields["name"] = "Name is required."
	} else if len(r.Name) > 255 {
		fields["name"] = "Name must be less than 255 characters."
	}
	if len(r.Description) > 1000 {
		fields["description"] = "Description must be less than 1000 characters."
	}
	if r.Date == "" {
		fields["date"] = "Date is required."
	} else if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		fields["date"] = "Date must be in YYYY-MM-DD format."
	}
	if r.Time == "" {
		fields["time"] = "Time is required."
	} else if _, err := time.Parse("15:04", r.Time); err != nil {
		fields["time"] = "Time must be in HH:MM format."
	}
	if r.Location == "" {
		fields["location"] = "Location is required."
	}
	if len(fields) > 0 {
		return ErrFieldValidation(fields)
	}
	return nil
}

// Apply writes every field of the request into e.
func (r *EventRequest) Apply(e *Event) {
	e.Name = r.Name
	e.Description = r.Description
	e.Date = r.Date
	e.Time = r.Time
	e.Location = r.Location
}
