package models

import (
	"time"

	"github.com/google/uuid"
)

// Vault item types. Title, type and category stay plaintext so the server
// can list, search and filter without decrypting every row.
const (
	ItemTypeApplication = "Application"
	ItemTypeServer      = "Server"
)

// Server types selectable for ItemTypeServer entries.
const (
	ServerTypeVM        = "VM"
	ServerTypeBareMetal = "Bare Metal"
	ServerTypeDocker    = "Docker Container"
	ServerTypeCT        = "CT"
	ServerTypeNspawn    = "Systemd-Nspawn"
)

// Credential is a single username/password pair inside a vault payload.
// The ID is minted once when the credential is first encoded and preserved
// across edits so that client-held references stay stable.
type Credential struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// VaultPayload is the sensitive part of a vault entry. It is serialized to
// JSON and AEAD-encrypted under the owner's data key before it ever reaches
// the database; the database only sees the resulting envelope.
type VaultPayload struct {
	// URLs lists web addresses the entry applies to.
	URLs []string `json:"urls"`

	// IPs lists server addresses the entry applies to.
	IPs []string `json:"ips"`

	// ServerType is set for server entries only (see ServerType* constants).
	ServerType *string `json:"serverType,omitempty"`

	// Credentials holds the username/password pairs of the entry.
	Credentials []Credential `json:"credentials"`

	// Notes is free-form text.
	Notes string `json:"notes"`
}

// VaultItem is a single vault row as persisted. Title, Type and Category are
// intentionally plaintext; Payload is opaque ciphertext at rest.
type VaultItem struct {
	// ID is the unique identifier of the vault entry.
	ID uuid.UUID `json:"id"`

	// UserID identifies the owning account. Every read, write and delete is
	// scoped by it.
	UserID uuid.UUID `json:"-"`

	// Title is the plaintext display name used for listing and search.
	Title string `json:"title"`

	// Type is "Application" or "Server".
	Type string `json:"type"`

	// Category is a plaintext grouping label used for filtering.
	Category string `json:"category"`

	// Payload is the encrypted entry body.
	Payload EncryptedBlob `json:"-"`

	// Icon metadata. IconKind is "url" or "upload"; IconRef points at an
	// uploaded blob in the vault_icons table.
	IconKind *string `json:"iconKind,omitempty"`
	IconURL  *string `json:"iconUrl,omitempty"`
	IconRef  *string `json:"iconRef,omitempty"`
	IconMime *string `json:"iconMime,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table associated with the
// VaultItem model.
func (v VaultItem) TableName() string {
	return "vault_items"
}

// VaultEntry is a fully decrypted vault entry as exchanged with clients:
// the plaintext columns of the row joined with the decrypted payload.
type VaultEntry struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Category string    `json:"category"`

	URLs        []string     `json:"urls"`
	IPs         []string     `json:"ips"`
	ServerType  *string      `json:"serverType,omitempty"`
	Credentials []Credential `json:"credentials"`
	Notes       string       `json:"notes"`

	IconKind *string `json:"iconKind,omitempty"`
	IconURL  *string `json:"iconUrl,omitempty"`
	IconRef  *string `json:"iconRef,omitempty"`
	IconMime *string `json:"iconMime,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VaultFilter narrows vault listing. Zero values mean "no filter".
type VaultFilter struct {
	// Category filters on the exact plaintext category.
	Category string

	// Type filters on the exact item type.
	Type string

	// TitleSearch filters on a case-insensitive title substring.
	TitleSearch string
}
