package repository

import (
	"context"
	"errors"

	"complaintbox/internal/app/model"
)

// ErrEmailTaken is returned by CreateUser when the email already has a
// record. The store's unique index is the only serialization point for
// concurrent registrations; callers add no locking of their own.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound is returned by lookups that match no record.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the relay's identity store.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	Close() error
}
