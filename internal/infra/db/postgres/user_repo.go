package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/mkkalpana/text-morph/internal/domain/users"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, public_id, name, email, hashed_password, language_preference,
       is_active, is_verified, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *users.User) error {
	const q = `
INSERT INTO users
(public_id, name, email, hashed_password, language_preference, is_active, is_verified, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id;`

	err := r.db.QueryRowContext(ctx, q,
		u.PublicID, u.Name, u.Email, u.HashedPassword,
		u.LanguagePreference, u.IsActive, u.IsVerified, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return users.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email=$1 LIMIT 1;`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*users.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id=$1 LIMIT 1;`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepository) Update(ctx context.Context, u *users.User) error {
	const q = `
UPDATE users
SET name = $1, language_preference = $2, updated_at = NOW()
WHERE id = $3;`
	_, err := r.db.ExecContext(ctx, q, u.Name, u.LanguagePreference, u.ID)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hashed string) error {
	const q = `UPDATE users SET hashed_password = $1, updated_at = NOW() WHERE id = $2;`
	_, err := r.db.ExecContext(ctx, q, hashed, id)
	return err
}

func (r *UserRepository) Deactivate(ctx context.Context, id int64) error {
	const q = `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1;`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *UserRepository) scanOne(row *sql.Row) (*users.User, error) {
	var u users.User
	var updated sql.NullTime
	if err := row.Scan(
		&u.ID, &u.PublicID, &u.Name, &u.Email, &u.HashedPassword,
		&u.LanguagePreference, &u.IsActive, &u.IsVerified, &u.CreatedAt, &updated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, err
	}
	if updated.Valid {
		u.UpdatedAt = &updated.Time
	}
	return &u, nil
}
