// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, JWT token generation and
// validation, and HTTP response writing.
package utils

import (
	"context"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated account identifier
// in the context. Set by the auth middleware after token validation.
var UserIDCtxKey = contextKey("userID")

// RoleClaimCtxKey is the key used to store the role claim from the bearer
// token. The claim is a default only; authorization-sensitive code paths
// re-resolve the authoritative role from storage.
var RoleClaimCtxKey = contextKey("roleClaim")

// GetUserIDFromContext retrieves the authenticated account identifier from
// the context.
//
// Returns the user ID and an ok flag:
//   - ok == true: value is found and has the correct uuid.UUID type
//   - ok == false: value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(uuid.UUID)
	return userID, ok
}

// GetRoleClaimFromContext retrieves the token's role claim from the context.
// When absent (tokens issued before role support) it returns models.RoleUser,
// which is the safe default.
func GetRoleClaimFromContext(ctx context.Context) models.Role {
	role, ok := ctx.Value(RoleClaimCtxKey).(models.Role)
	if !ok || !role.Valid() {
		return models.RoleUser
	}
	return role
}
