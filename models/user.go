package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role of a user account.
type Role string

const (
	// RoleAdmin grants user management rights: creating accounts, deleting
	// accounts, changing roles and resetting other users' passwords.
	RoleAdmin Role = "admin"

	// RoleUser is the default role: self-service operations and access to
	// the account's own vault only.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an account entity used for authentication, authorization
// and per-user vault encryption.
//
// WrappedDataKey holds the user's 32-byte data-encryption key, AEAD-encrypted
// under the process master key. It is assigned once at account creation and
// never mutated afterwards; the plaintext data key is never stored anywhere.
type User struct {
	// ID is the unique identifier of the account.
	ID uuid.UUID `json:"id"`

	// Email is the unique login identifier of the account.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// Role is the current authorization role ("admin" or "user").
	Role Role `json:"role"`

	// WrappedDataKey is the account's data-encryption key wrapped under the
	// master key. Never exposed via JSON.
	WrappedDataKey EncryptedBlob `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last account modification.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table associated with the
// User model.
func (u User) TableName() string {
	return "app_users"
}
