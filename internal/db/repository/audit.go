package repository

import (
	"context"
	"database/sql"
	"time"

	"clubhouse/internal/domain"
)

// AuditRepo implements domain.AuditRepository on SQLite.
type AuditRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewAuditRepo(write, read *sql.DB) *AuditRepo {
	return &AuditRepo{write: write, read: read}
}

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	_, err := r.write.ExecContext(ctx,
		`INSERT INTO audit_log (actor_id, action, entity, entity_id) VALUES (?, ?, ?, ?)`,
		e.ActorID, e.Action, e.Entity, e.EntityID)
	return mapDBError(err)
}

func (r *AuditRepo) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.read.QueryContext(ctx,
		`SELECT id, actor_id, action, entity, entity_id, created_at
		 FROM audit_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *AuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.write.ExecContext(ctx, `DELETE FROM audit_log WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, mapDBError(err)
	}
	return res.RowsAffected()
}
