package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintbox/internal/app/model"
	"complaintbox/internal/app/repository"
)

func newMockDB(t *testing.T) (*UserDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserDB(db), mock
}

func sampleUser() *model.User {
	return &model.User{
		ID:           "u-1",
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateUser(t *testing.T) {
	userDB, mock := newMockDB(t)
	user := sampleUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := userDB.CreateUser(context.Background(), user)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	userDB, mock := newMockDB(t)
	user := sampleUser()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(sqlite3.Error{
			Code:         sqlite3.ErrConstraint,
			ExtendedCode: sqlite3.ErrConstraintUnique,
		})

	err := userDB.CreateUser(context.Background(), user)
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestGetUserByEmail(t *testing.T) {
	userDB, mock := newMockDB(t)
	want := sampleUser()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
		AddRow(want.ID, want.Name, want.Email, want.PasswordHash, want.CreatedAt)
	mock.ExpectQuery("SELECT id, name, email, password_hash, created_at FROM users").
		WithArgs(want.Email).
		WillReturnRows(rows)

	got, err := userDB.GetUserByEmail(context.Background(), want.Email)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	userDB, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, name, email, password_hash, created_at FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := userDB.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
