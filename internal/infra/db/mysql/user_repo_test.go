package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkkalpana/text-morph/internal/domain/users"
)

func TestUserCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := &users.User{
		PublicID:           "3f6f0d07-9e53-4d38-9f0a-0a5a0a8a1a2b",
		Name:               "Alice",
		Email:              "alice@example.com",
		HashedPassword:     "$2a$10$hash",
		LanguagePreference: "English",
		IsActive:           true,
		CreatedAt:          now,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.PublicID, u.Name, u.Email, u.HashedPassword, u.LanguagePreference, true, false, now).
		WillReturnResult(sqlmock.NewResult(3, 1))

	repo := NewUserRepository(db)
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(3), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	repo := NewUserRepository(db)
	err = repo.Create(context.Background(), &users.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, users.ErrDuplicateEmail)
}

func TestUserGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "public_id", "name", "email", "hashed_password",
		"language_preference", "is_active", "is_verified", "created_at", "updated_at",
	}).AddRow(int64(3), "pub-id", "Alice", "alice@example.com", "$2a$10$hash",
		"English", true, false, now, nil)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	repo := NewUserRepository(db)
	u, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewUserRepository(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestUserDeactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET is_active").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)
	require.NoError(t, repo.Deactivate(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
