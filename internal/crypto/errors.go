package crypto

import "errors"

// Sentinel errors returned by the cipher service, the key ring and the vault
// codec. Callers should match against them with [errors.Is].
var (
	// ErrAuthenticationFailed is returned whenever decryption fails closed:
	// authentication-tag mismatch, wrong key, tampered ciphertext, wrong
	// nonce length or an unrecognized algorithm identifier. The error is
	// deliberately uniform so that callers (and attackers) cannot tell the
	// failure modes apart.
	ErrAuthenticationFailed = errors.New("decryption failed: cannot authenticate ciphertext")

	// ErrInvalidKeySize is returned when a key of the wrong length is passed
	// to an encryption or decryption operation. This indicates a programming
	// error, not tampering.
	ErrInvalidKeySize = errors.New("invalid key size: want 32 bytes")

	// ErrUnwrapDataKey is returned when a stored wrapped data key cannot be
	// unwrapped under the current master key. It wraps
	// [ErrAuthenticationFailed] and signals either master-key configuration
	// drift or data corruption; both require operator intervention, and the
	// affected account has no vault access until resolved.
	ErrUnwrapDataKey = errors.New("cannot unwrap user data key")

	// ErrCorruptEntry is returned when a vault payload decrypts successfully
	// but fails to deserialize. The codec is self-consistent, so this should
	// never happen in practice and is treated as a corruption signal rather
	// than a normal error.
	ErrCorruptEntry = errors.New("vault entry payload is corrupt")

	// ErrEmptyMasterKeySecret is returned when master-key derivation is
	// attempted with an empty configured secret.
	ErrEmptyMasterKeySecret = errors.New("master key secret is empty")
)
