// Package store implements the PostgreSQL persistence layer of the lockbox
// server: account records with their wrapped data keys, encrypted vault
// items, and icon blobs. All multi-step writes run inside single
// transactions so that the access-control invariants (registration gating,
// last-admin protection) hold atomically against the account table.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/models"
)

// UserRepository persists account records. The wrapped data key travels with
// the account row and is written exactly once, at creation.
type UserRepository interface {
	// CreateFirstUser inserts the very first account with role admin. The
	// zero-accounts precondition is checked inside the same transaction as
	// the insert; if any account exists the call fails with
	// [ErrRegistrationClosed].
	CreateFirstUser(ctx context.Context, user models.User) (models.User, error)

	// CreateUser inserts an account. Duplicate email returns
	// [ErrEmailAlreadyExists]. Authorization is the caller's concern.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// CountUsers returns the total number of accounts.
	CountUsers(ctx context.Context) (int, error)

	// FindUserByEmail returns the account with the given email or
	// [ErrUserNotFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the account with the given id or
	// [ErrUserNotFound].
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)

	// GetRole returns the authoritative current role of the account, read
	// directly from storage. Used on every authorization-sensitive request
	// instead of trusting token claims.
	GetRole(ctx context.Context, id uuid.UUID) (models.Role, error)

	// ListUsers returns all accounts ordered by creation time.
	ListUsers(ctx context.Context) ([]models.User, error)

	// ChangeRole updates the account's role. When the change demotes an
	// admin, the admin count is verified inside the same transaction and
	// [ErrLastAdminDemotion] is returned if the target is the last one.
	ChangeRole(ctx context.Context, id uuid.UUID, role models.Role) error

	// UpdatePassword replaces the account's password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdatePasswordByEmail replaces the password hash of the account with
	// the given email, returning [ErrUserNotFound] when no such account
	// exists. Used by the recovery path.
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error

	// DeleteUser removes the account; vault items and icons cascade.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// VaultRepository persists encrypted vault items. Every operation is scoped
// by the owning account id; rows owned by other accounts are invisible and
// surface as [ErrVaultItemNotFound].
type VaultRepository interface {
	// ListVaultItems returns the user's items, newest-updated first,
	// optionally narrowed by filter.
	ListVaultItems(ctx context.Context, userID uuid.UUID, filter models.VaultFilter) ([]models.VaultItem, error)

	// GetVaultItem returns a single owned item or [ErrVaultItemNotFound].
	GetVaultItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error)

	// CreateVaultItem inserts the item and returns it with server-assigned
	// timestamps.
	CreateVaultItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)

	// UpdateVaultItem replaces the plaintext columns and the encrypted
	// payload of an owned item, returning the updated row.
	UpdateVaultItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)

	// DeleteVaultItem removes an owned item; its icon row cascades.
	DeleteVaultItem(ctx context.Context, userID, itemID uuid.UUID) error
}

// IconRepository persists icon blobs attached to vault items.
type IconRepository interface {
	// SaveIcon stores the icon bytes and updates the owning vault item's
	// icon metadata in one transaction. Returns [ErrVaultItemNotFound] when
	// the item does not exist or belongs to another user.
	SaveIcon(ctx context.Context, icon models.VaultIcon) (models.VaultItem, error)

	// GetIconByRef returns the icon with the given reference owned by the
	// given user, or [ErrIconNotFound].
	GetIconByRef(ctx context.Context, userID uuid.UUID, iconRef string) (models.VaultIcon, error)
}

// Repositories aggregates all persistence interfaces consumed by the service
// layer.
type Repositories struct {
	UserRepository  UserRepository
	VaultRepository VaultRepository
	IconRepository  IconRepository
}
