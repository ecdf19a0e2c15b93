package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEventRequest() EventRequest {
	return EventRequest{
		Name:     "Monthly Tasting",
		Date:     "2026-09-12",
		Time:     "19:00",
		Location: "Clubhouse",
	}
}

func TestEventRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validEventRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("missing_name", func(t *testing.T) {
		req := validEventRequest()
		req.Name = ""
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Name is required.", validation.Fields["name"])
	})

	t.Run("name_too_long", func(t *testing.T) {
		req := validEventRequest()
		req.Name = strings.Repeat("x", 256)
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Name must be less than 255 characters.", validation.Fields["name"])
	})

	t.Run("description_too_long", func(t *testing.T) {
		req := validEventRequest()
		req.Description = strings.Repeat("x", 1001)
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Description must be less than 1000 characters.", validation.Fields["description"])
	})

	t.Run("bad_date_format", func(t *testing.T) {
		req := validEventRequest()
		req.Date = "12/09/2026"
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Fields, "date")
	})

	t.Run("bad_time_format", func(t *testing.T) {
		req := validEventRequest()
		req.Time = "7pm"
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Fields, "time")
	})

	t.Run("missing_location", func(t *testing.T) {
		req := validEventRequest()
		req.Location = ""
		err := req.Validate()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Location is required.", validation.Fields["location"])
	})
}

func TestEventRequestApply(t *testing.T) {
	e := Event{ID: 3, Name: "Old", Description: "old description"}
	req := validEventRequest()
	req.Apply(&e)

	// Full replacement: every field is written, including empties.
	assert.Equal(t, int64(3), e.ID)
	assert.Equal(t, "Monthly Tasting", e.Name)
	assert.Equal(t, "", e.Description)
	assert.Equal(t, "2026-09-12", e.Date)
	assert.Equal(t, "19:00", e.Time)
	assert.Equal(t, "Clubhouse", e.Location)
}
