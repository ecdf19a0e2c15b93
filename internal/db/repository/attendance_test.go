package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "clubhouse/internal/db"
	"clubhouse/internal/domain"
)

func attendanceFixture(t *testing.T) (*AttendanceRepo, *domain.User, *domain.Event) {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestStore(t)
	ctx := context.Background()

	user, err := NewUserRepo(writeDB, readDB).Create(ctx, newUser("member@example.com", "member"))
	require.NoError(t, err)
	event, err := NewEventRepo(writeDB, readDB).Create(ctx, newEvent("Tasting", "2026-09-12", "19:00"))
	require.NoError(t, err)

	return NewAttendanceRepo(writeDB, readDB), user, event
}

func TestAttendanceRepo_AddAndList(t *testing.T) {
	repo, user, event := attendanceFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, user.ID, event.ID))

	attendees, err := repo.ListAttendees(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, user.ID, attendees[0].ID)

	events, err := repo.ListEventsForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
}

func TestAttendanceRepo_AddIsIdempotent(t *testing.T) {
	repo, user, event := attendanceFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, user.ID, event.ID))
	require.NoError(t, repo.Add(ctx, user.ID, event.ID))

	attendees, err := repo.ListAttendees(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, attendees, 1)
}

func TestAttendanceRepo_AddUnknownReferences(t *testing.T) {
	repo, user, event := attendanceFixture(t)
	ctx := context.Background()

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, repo.Add(ctx, 9999, event.ID), &notFound)
	assert.ErrorAs(t, repo.Add(ctx, user.ID, 9999), &notFound)
}

func TestAttendanceRepo_Remove(t *testing.T) {
	repo, user, event := attendanceFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, user.ID, event.ID))
	require.NoError(t, repo.Remove(ctx, user.ID, event.ID))

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, repo.Remove(ctx, user.ID, event.ID), &notFound)
}

func TestAttendanceRepo_UserDeleteCascades(t *testing.T) {
	writeDB, readDB := internaldb.OpenTestStore(t)
	ctx := context.Background()

	users := NewUserRepo(writeDB, readDB)
	user, err := users.Create(ctx, newUser("gone@example.com", "gone"))
	require.NoError(t, err)
	event, err := NewEventRepo(writeDB, readDB).Create(ctx, newEvent("Tasting", "2026-09-12", "19:00"))
	require.NoError(t, err)

	repo := NewAttendanceRepo(writeDB, readDB)
	require.NoError(t, repo.Add(ctx, user.ID, event.ID))
	require.NoError(t, users.Delete(ctx, user.ID))

	attendees, err := repo.ListAttendees(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, attendees)
}
