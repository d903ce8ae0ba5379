package model

import "time"

// User is a registered identity in the relay's user store. The
// password is only ever held as a bcrypt hash.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
