package repository

import (
	"context"
	"database/sql"
	"fmt"

	"clubhouse/internal/domain"
)

const userColumns = `u.id, u.email, u.username, u.first_name, u.last_name, u.display_name,
	u.profile_picture_url, u.phone_number, u.role, u.external_id, u.external_issuer, u.created_at,
	a.street, a.city, a.state, a.zip, a.country`

const userSelect = `SELECT ` + userColumns + `
	FROM users u LEFT JOIN addresses a ON a.user_id = u.id`

// UserRepo implements domain.UserRepository on SQLite. Mutations go through
// the serialized writer pool; lookups and listings use the reader pool.
type UserRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewUserRepo(write, read *sql.DB) *UserRepo {
	return &UserRepo{write: write, read: read}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	tx, err := r.write.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (email, username, first_name, last_name, display_name,
			profile_picture_url, phone_number, role, external_id, external_issuer)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.FirstName, u.LastName, u.DisplayName,
		u.ProfilePictureURL, u.PhoneNumber, string(u.Role), u.ExternalID, u.ExternalIssuer)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if u.Address != nil {
		if err := upsertAddress(ctx, tx, id, u.Address); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.read.QueryRowContext(ctx, userSelect+` WHERE u.id = ?`, id)
	return scanUser(row)
}

func (r *UserRepo) GetByExternalID(ctx context.Context, issuer, externalID string) (*domain.User, error) {
	row := r.read.QueryRowContext(ctx,
		userSelect+` WHERE u.external_issuer = ? AND u.external_id = ?`, issuer, externalID)
	return scanUser(row)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.read.QueryRowContext(ctx, userSelect+` WHERE u.email = ?`, email)
	return scanUser(row)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.read.QueryContext(ctx, userSelect+` ORDER BY u.id`)
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

func (r *UserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	tx, err := r.write.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET email = ?, username = ?, first_name = ?, last_name = ?,
			display_name = ?, profile_picture_url = ?, phone_number = ?,
			external_id = ?, external_issuer = ?
		 WHERE id = ?`,
		u.Email, u.Username, u.FirstName, u.LastName, u.DisplayName,
		u.ProfilePictureURL, u.PhoneNumber, u.ExternalID, u.ExternalIssuer, u.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("user not found with id %d", u.ID)
	}

	if u.Address != nil {
		if err := upsertAddress(ctx, tx, u.ID, u.Address); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("user not found with id %d", id)
	}
	return nil
}

func (r *UserRepo) SetRole(ctx context.Context, id int64, role domain.Role) error {
	res, err := r.write.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, string(role), id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("user not found with id %d", id)
	}
	return nil
}

func upsertAddress(ctx context.Context, tx *sql.Tx, userID int64, a *domain.Address) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO addresses (user_id, street, city, state, zip, country)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			street = excluded.street, city = excluded.city, state = excluded.state,
			zip = excluded.zip, country = excluded.country`,
		userID, a.Street, a.City, a.State, a.Zip, a.Country)
	if err != nil {
		return fmt.Errorf("upsert address: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role string
	var street, city, state, zip, country sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.DisplayName,
		&u.ProfilePictureURL, &u.PhoneNumber, &role, &u.ExternalID, &u.ExternalIssuer, &u.CreatedAt,
		&street, &city, &state, &zip, &country)
	if err != nil {
		return nil, mapDBError(err)
	}
	u.Role = domain.Role(role)
	if street.Valid {
		u.Address = &domain.Address{
			Street:  street.String,
			City:    city.String,
			State:   state.String,
			Zip:     zip.String,
			Country: country.String,
		}
	}
	return &u, nil
}
