package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `db:"id"`

	// Email is the user's email address (unique). Used for login and to
	// invite the user into wallets.
	Email string `db:"email"`

	// DisplayName is the name shown to other wallet members. May be empty,
	// in which case the email is shown.
	DisplayName string `db:"display_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `db:"password_hash"`

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64 `db:"created_at"`

	// UpdatedAt is the Unix timestamp of the last change to the account.
	UpdatedAt int64 `db:"updated_at"`
}

// NewUser creates a User with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Name returns the display name, falling back to the email.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
