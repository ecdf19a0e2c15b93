package repository

import (
	"context"
	"database/sql"
	"strings"

	"clubhouse/internal/domain"
)

// AttendanceRepo implements domain.AttendanceRepository. The join table is
// the single source of truth; both lookup directions are derived from it.
type AttendanceRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewAttendanceRepo(write, read *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{write: write, read: read}
}

func (r *AttendanceRepo) Add(ctx context.Context, userID, eventID int64) error {
	_, err := r.write.ExecContext(ctx,
		`INSERT INTO user_attended_events (user_id, event_id) VALUES (?, ?)
		 ON CONFLICT (user_id, event_id) DO NOTHING`,
		userID, eventID)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return domain.ErrNotFound("user or event not found")
	}
	return mapDBError(err)
}

func (r *AttendanceRepo) Remove(ctx context.Context, userID, eventID int64) error {
	res, err := r.write.ExecContext(ctx,
		`DELETE FROM user_attended_events WHERE user_id = ? AND event_id = ?`,
		userID, eventID)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("attendance not found")
	}
	return nil
}

func (r *AttendanceRepo) ListAttendees(ctx context.Context, eventID int64) ([]domain.User, error) {
	rows, err := r.read.QueryContext(ctx,
		userSelect+`
		 JOIN user_attended_events ae ON ae.user_id = u.id
		 WHERE ae.event_id = ? ORDER BY u.id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *AttendanceRepo) ListEventsForUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	rows, err := r.read.QueryContext(ctx,
		`SELECT e.id, e.name, e.description, e.date, e.time, e.location, e.created_at
		 FROM events e
		 JOIN user_attended_events ae ON ae.event_id = e.id
		 WHERE ae.user_id = ? ORDER BY e.date, e.time, e.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
