package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT claim set issued by the auth service.
//
// Role is informational only: tokens issued before role support existed do
// not carry it, and even when present it may be stale. Authorization checks
// always re-resolve the authoritative role from storage; the claim is used
// solely as the pre-lookup default.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the account email at issuance time.
	Email string `json:"email,omitempty"`

	// Role is the account role at issuance time. May be absent or stale.
	Role Role `json:"role,omitempty"`
}

// Token wraps a parsed or freshly issued JWT with convenience accessors for
// authentication flows.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the account identifier extracted from the "sub" claim.
	UserID uuid.UUID `json:"-"`

	// Email is the account email from the token claims.
	Email string `json:"-"`

	// Role is the role claim, defaulted to RoleUser when the token predates
	// role support. Never trusted for authorization without a storage lookup.
	Role Role `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
