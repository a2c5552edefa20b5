package models

import (
	"time"

	"github.com/google/uuid"
)

// VaultIcon is an uploaded or imported icon image stored in the database and
// attached to exactly one vault item. The bytes are not sensitive and are
// stored unencrypted.
type VaultIcon struct {
	// VaultItemID identifies the vault entry the icon belongs to.
	VaultItemID uuid.UUID

	// UserID identifies the owning account; icon serving is scoped by it.
	UserID uuid.UUID

	// IconRef is the opaque reference clients use to request the icon file.
	IconRef string

	// ContentType is the MIME type reported when serving the icon.
	ContentType string

	// Data holds the raw image bytes.
	Data []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the name of the database table associated with the
// VaultIcon model.
func (i VaultIcon) TableName() string {
	return "vault_icons"
}

// IconCandidate is a single icon suggestion produced by the icon service.
type IconCandidate struct {
	// URL is a directly usable icon image URL.
	URL string `json:"url"`

	// Source names where the candidate came from: "dashboard-icons",
	// "favicon" or "google-s2".
	Source string `json:"source"`

	// Slug is the dashboard-icons slug the candidate was derived from,
	// when applicable.
	Slug string `json:"slug,omitempty"`
}
