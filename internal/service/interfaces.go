package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/models"
)

// AuthService handles registration, login, token lifecycle and the password
// flows that operate on the caller's own account.
type AuthService interface {
	// RegistrationStatus reports whether self-registration is still open.
	// It is open only while zero accounts exist.
	RegistrationStatus(ctx context.Context) (models.RegistrationStatusResponse, error)

	// Register creates the very first account with role admin and issues a
	// token for it. Once any account exists the call fails with
	// [store.ErrRegistrationClosed]; subsequent accounts are created by an
	// admin through [UserService].
	Register(ctx context.Context, req models.AuthRequest) (models.User, models.Token, error)

	// Login verifies credentials and issues a token. Unknown email and
	// wrong password are indistinguishable: both return [ErrWrongPassword].
	Login(ctx context.Context, req models.AuthRequest) (models.User, models.Token, error)

	// ParseToken validates a compact JWT string. Any failure is normalised
	// to [ErrTokenIsExpiredOrInvalid].
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// ChangePassword verifies the current password and replaces it. The
	// wrapped data key is untouched; vault data survives password changes.
	ChangePassword(ctx context.Context, userID uuid.UUID, req models.ChangePasswordRequest) error

	// RecoveryStatus reports whether the recovery endpoint is enabled.
	RecoveryStatus() models.RecoveryStatusResponse

	// RecoverPassword resets an account password given the configured
	// recovery key. The key comparison is constant-time. Returns
	// [ErrRecoveryDisabled] when no recovery key is configured and
	// [ErrWrongRecoveryKey] on mismatch.
	RecoverPassword(ctx context.Context, req models.RecoverRequest) error
}

// UserService handles admin-only account management. Every method
// re-resolves the actor's role from storage before acting; token claims are
// never sufficient.
type UserService interface {
	// CurrentUser returns the actor's own account.
	CurrentUser(ctx context.Context, userID uuid.UUID) (models.User, error)

	// ListUsers returns all accounts for an admin actor, or a one-element
	// list holding the actor's own account otherwise.
	ListUsers(ctx context.Context, actorID uuid.UUID) ([]models.User, error)

	// CreateUser provisions a new account with its own data key. Actor must
	// be admin.
	CreateUser(ctx context.Context, actorID uuid.UUID, req models.CreateUserRequest) (models.User, error)

	// ChangeRole updates a target account's role. Actor must be admin and
	// may not change their own role; demoting the last admin fails with
	// [store.ErrLastAdminDemotion].
	ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, role models.Role) error

	// ResetPassword sets a new password on a target account. Actor must be
	// admin and may not reset their own password through this path.
	ResetPassword(ctx context.Context, actorID, targetID uuid.UUID, newPassword string) error

	// DeleteUser removes a target account and all its vault data. Actor
	// must be admin and may not delete themselves.
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
}

// VaultService handles encrypted vault entries. Each call unwraps the
// owner's data key once, uses it, and discards it; plaintext keys never
// outlive the request.
type VaultService interface {
	// ListEntries returns the user's decrypted entries, newest first,
	// optionally narrowed by filter on the plaintext columns.
	ListEntries(ctx context.Context, userID uuid.UUID, filter models.VaultFilter) ([]models.VaultEntry, error)

	// GetEntry returns one decrypted entry or [store.ErrVaultItemNotFound].
	GetEntry(ctx context.Context, userID, itemID uuid.UUID) (models.VaultEntry, error)

	// CreateEntry encrypts and persists a new entry, returning it with
	// server-assigned identifiers and timestamps.
	CreateEntry(ctx context.Context, userID uuid.UUID, req models.VaultEntryRequest) (models.VaultEntry, error)

	// UpdateEntry re-encrypts and replaces an existing owned entry.
	// Credential IDs present in the request are preserved.
	UpdateEntry(ctx context.Context, userID, itemID uuid.UUID, req models.VaultEntryRequest) (models.VaultEntry, error)

	// DeleteEntry removes an owned entry.
	DeleteEntry(ctx context.Context, userID, itemID uuid.UUID) error
}

// IconService handles icon suggestions, imports and uploads for vault
// entries. Icon bytes are not sensitive and bypass the envelope.
type IconService interface {
	// SuggestIcons returns icon candidates for a display name, probing the
	// dashboard-icons CDN and falling back to favicon sources.
	SuggestIcons(ctx context.Context, name string) ([]models.IconCandidate, error)

	// ImportIcon downloads an image from url, enforces size and
	// content-type limits, and attaches it to the owned vault item.
	ImportIcon(ctx context.Context, userID, itemID uuid.UUID, url string) (models.VaultItem, error)

	// UploadIcon attaches client-provided image bytes to the owned vault
	// item.
	UploadIcon(ctx context.Context, userID, itemID uuid.UUID, contentType string, data []byte) (models.VaultItem, error)

	// GetIcon returns the stored icon blob for serving.
	GetIcon(ctx context.Context, userID uuid.UUID, iconRef string) (models.VaultIcon, error)
}

// AppInfoService exposes process-level information for the health endpoint.
type AppInfoService interface {
	// Health reports liveness and the running version.
	Health(ctx context.Context) models.HealthResponse
}
