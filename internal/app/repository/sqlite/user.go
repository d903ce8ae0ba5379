package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"complaintbox/internal/app/model"
	"complaintbox/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);`

// UserDB implements repository.UserRepository on SQLite. The UNIQUE
// constraint on email serializes concurrent registrations.
type UserDB struct {
	db *sql.DB
}

// Open opens (or creates) the user database at dbFilePath and ensures
// the schema exists.
func Open(dbFilePath string) (*UserDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}
	return &UserDB{db: db}, nil
}

// NewUserDB wraps an existing connection. Used by tests.
func NewUserDB(db *sql.DB) *UserDB {
	return &UserDB{db: db}
}

func (u *UserDB) Close() error {
	return u.db.Close()
}

func (u *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	insertSQL := `INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?);`
	_, err := u.db.ExecContext(ctx, insertSQL,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return repository.ErrEmailTaken
		}
		return fmt.Errorf("insert user failed: %w", err)
	}
	return nil
}

func (u *UserDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`
	row := u.db.QueryRowContext(ctx, query, email)

	var user model.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user failed: %w", err)
	}
	return &user, nil
}
