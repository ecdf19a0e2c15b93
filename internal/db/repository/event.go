package repository

import (
	"context"
	"database/sql"

	"clubhouse/internal/domain"
)

const eventSelect = `SELECT id, name, description, date, time, location, created_at FROM events`

// EventRepo implements domain.EventRepository on SQLite. Mutations go
// through the serialized writer pool; lookups and listings use the reader
// pool.
type EventRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewEventRepo(write, read *sql.DB) *EventRepo {
	return &EventRepo{write: write, read: read}
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	res, err := r.write.ExecContext(ctx,
		`INSERT INTO events (name, description, date, time, location) VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.Description, e.Date, e.Time, e.Location)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *EventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	row := r.read.QueryRowContext(ctx, eventSelect+` WHERE id = ?`, id)
	return scanEvent(row)
}

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.read.QueryContext(ctx, eventSelect+` ORDER BY date, time, id`)
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

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	res, err := r.write.ExecContext(ctx,
		`UPDATE events SET name = ?, description = ?, date = ?, time = ?, location = ? WHERE id = ?`,
		e.Name, e.Description, e.Date, e.Time, e.Location, e.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("event not found with id %d", e.ID)
	}
	return r.GetByID(ctx, e.ID)
}

func (r *EventRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("event not found with id %d", id)
	}
	return nil
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.Time, &e.Location, &e.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &e, nil
}
