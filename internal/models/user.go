package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
//
// The balance engine treats users as read-only identity records; only the
// auth layer ever writes them.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// DisplayName is the name shown to other users.
	DisplayName string `json:"displayName"`

	// Email is the user's email address (unique). Used for login and for
	// payment reminder delivery.
	Email string `json:"email"`

	// ImageURL is an optional avatar reference. Empty when the user has none.
	ImageURL string `json:"imageUrl"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last account change.
	UpdatedAt int64 `json:"updatedAt"`
}

// NewUser builds a user record with a fresh ID and creation timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

