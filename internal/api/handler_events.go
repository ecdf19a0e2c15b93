package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ListEvents handles GET /api/v1/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.events.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventsToAPI(list))
}

// GetEvent handles GET /api/v1/events/{eventID}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "eventID")
	if !ok {
		h.writeInvalidID(w, "eventID")
		return
	}
	event, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventToAPI(*event))
}

// CreateEvent handles POST /api/v1/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadJSON(w)
		return
	}
	event, err := h.events.Create(r.Context(), req.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/v1/events/%d", event.ID))
	writeJSON(w, http.StatusCreated, eventToAPI(*event))
}

// UpdateEvent handles PUT /api/v1/events/{eventID}. The body is a full
// replacement; every field is validated and written.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "eventID")
	if !ok {
		h.writeInvalidID(w, "eventID")
		return
	}
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadJSON(w)
		return
	}
	event, err := h.events.Update(r.Context(), id, req.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventToAPI(*event))
}

// DeleteEvent handles DELETE /api/v1/events/{eventID}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "eventID")
	if !ok {
		h.writeInvalidID(w, "eventID")
		return
	}
	if err := h.events.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAttendees handles GET /api/v1/events/{eventID}/attendees.
func (h *Handler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "eventID")
	if !ok {
		h.writeInvalidID(w, "eventID")
		return
	}
	attendees, err := h.events.ListAttendees(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usersToAPI(attendees))
}

// AddAttendee handles PUT /api/v1/events/{eventID}/attendees/{userID}.
// Idempotent: registering an existing attendee succeeds without change.
func (h *Handler) AddAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := idParam(r, "eventID")
	if !ok {
		h.writeInvalidID(w, "eventID")
		return
	}
	userID, ok := idParam(r, "userID")
	if !ok {
		h.writeInvalidID(w, "userID")
		return
	}
	if err := h.events.AddAttendee(r.Context(), eventID, userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveAttendee handles DELETE /api/v1/events/{eventID}/attendees/{userID}.
func (h *Handler) RemoveAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := idParam(r, "eventID")
	if !ok {
		h.writeInvalidID(w, "eventID")
		return
	}
	userID, ok := idParam(r, "userID")
	if !ok {
		h.writeInvalidID(w, "userID")
		return
	}
	if err := h.events.RemoveAttendee(r.Context(), eventID, userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeBadJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    "VALIDATION_FAILED",
		Message: "request body must be valid JSON",
	})
}
