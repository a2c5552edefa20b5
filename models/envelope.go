package models

// CipherAESGCM is the algorithm identifier written into every envelope
// produced by the cipher service. Decryption rejects any other value.
const CipherAESGCM = "aes-256-gcm"

// Envelope sizes in bytes. AES-256-GCM with a 96-bit nonce and a 128-bit
// authentication tag.
const (
	NonceSize = 12
	TagSize   = 16
	KeySize   = 32
)

// EncryptedBlob is the universal authenticated-encryption envelope used for
// both wrapped user data keys and vault item payloads. The ciphertext, nonce
// and tag are stored as raw bytes; Algorithm names the AEAD construction so
// that the envelope is self-describing at rest.
//
// An EncryptedBlob is opaque: nothing about the plaintext (not even its
// structure) can be recovered without the key, and any modification of any
// field causes decryption to fail closed.
type EncryptedBlob struct {
	// Ciphertext is the encrypted payload without the authentication tag.
	Ciphertext []byte `json:"ciphertext"`

	// Nonce is the 12-byte random nonce generated freshly per encryption.
	Nonce []byte `json:"nonce"`

	// Tag is the 16-byte GCM authentication tag.
	Tag []byte `json:"tag"`

	// Algorithm identifies the AEAD construction, e.g. "aes-256-gcm".
	Algorithm string `json:"alg"`
}

// IsZero reports whether the blob carries no envelope at all (never
// encrypted, as opposed to encrypted-then-corrupted).
func (b EncryptedBlob) IsZero() bool {
	return len(b.Ciphertext) == 0 && len(b.Nonce) == 0 && len(b.Tag) == 0 && b.Algorithm == ""
}
