// Package crypto implements the envelope-encryption core of the lockbox
// server: authenticated encryption of byte strings, master-key derivation,
// per-user data-key wrapping and the vault payload codec.
//
// Key hierarchy:
//
//	configured secret --DeriveMasterKey--> master key (process lifetime)
//	master key   --WrapDataKey-->   wrapped DEK (stored on the account row)
//	DEK          --EncodeEntry-->   encrypted vault payload (stored per item)
//
// The master key and plaintext DEKs exist only in memory. DEKs are unwrapped
// freshly per request and never cached across requests.
package crypto

import (
	"github.com/lockboxd/lockbox/models"
)

// CipherService provides authenticated encryption and decryption of byte
// strings under a caller-supplied 32-byte key, producing and consuming the
// self-describing [models.EncryptedBlob] envelope.
type CipherService interface {
	// Encrypt seals plaintext under key with AES-256-GCM using a fresh
	// random 12-byte nonce. associatedData may be nil.
	Encrypt(key, plaintext, associatedData []byte) (models.EncryptedBlob, error)

	// Decrypt opens blob under key. It returns [ErrAuthenticationFailed]
	// uniformly for tag mismatch, wrong key, wrong associated data, bad
	// nonce length or an unknown algorithm identifier.
	Decrypt(key []byte, blob models.EncryptedBlob, associatedData []byte) ([]byte, error)
}

// KeyRing manages per-user data-encryption keys: it generates them, wraps
// them under the process master key for storage and unwraps them on demand.
// A KeyRing holds the master key and is read-only after construction, so it
// is safe for concurrent use.
type KeyRing interface {
	// GenerateDataKey returns a fresh 32-byte random data-encryption key.
	GenerateDataKey() ([]byte, error)

	// WrapDataKey encrypts dataKey under the master key with no associated
	// data. The result is safe to persist alongside the account row.
	WrapDataKey(dataKey []byte) (models.EncryptedBlob, error)

	// UnwrapDataKey decrypts a stored wrapped data key. Failure returns
	// [ErrUnwrapDataKey] and means the master key changed or the blob is
	// corrupt; there is no recovery path because plaintext data keys are
	// never stored.
	UnwrapDataKey(blob models.EncryptedBlob) ([]byte, error)
}

// VaultCodec converts structured vault payloads to and from their encrypted
// at-rest form under a user's unwrapped data key.
type VaultCodec interface {
	// EncodeEntry normalizes credential identifiers (minting a UUID only for
	// credentials that lack one), serializes the payload to JSON and
	// encrypts it under dataKey. The normalized payload is returned so the
	// caller can echo the assigned identifiers back to the client.
	EncodeEntry(dataKey []byte, payload models.VaultPayload) (models.VaultPayload, models.EncryptedBlob, error)

	// DecodeEntry decrypts blob under dataKey and deserializes the payload.
	// A deserialization failure after successful decryption returns
	// [ErrCorruptEntry].
	DecodeEntry(dataKey []byte, blob models.EncryptedBlob) (models.VaultPayload, error)
}
