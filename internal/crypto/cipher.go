package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/lockboxd/lockbox/models"
)

// cipherService is the private implementation of [CipherService].
// It is stateless: the key is supplied per call, so a single instance can be
// shared by every component of the server.
type cipherService struct{}

// NewCipherService constructs a [CipherService] implementing AES-256-GCM with
// a 96-bit random nonce and a 128-bit authentication tag.
func NewCipherService() CipherService {
	return &cipherService{}
}

// Encrypt implements [CipherService]. It reads a fresh 12-byte nonce from the
// OS CSPRNG for every call, so the same key never sees a repeated nonce, and
// splits the GCM output into ciphertext and authentication tag so the stored
// envelope is explicit about both. Returns an error if the key length is not
// 32 bytes or the random nonce read fails.
func (c *cipherService) Encrypt(key, plaintext, associatedData []byte) (models.EncryptedBlob, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return models.EncryptedBlob{}, err
	}

	nonce := make([]byte, models.NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal appends the tag to the ciphertext; carry it as a separate field.
	sealed := gcm.Seal(nil, nonce, plaintext, associatedData)
	tagStart := len(sealed) - models.TagSize

	return models.EncryptedBlob{
		Ciphertext: sealed[:tagStart],
		Nonce:      nonce,
		Tag:        sealed[tagStart:],
		Algorithm:  models.CipherAESGCM,
	}, nil
}

// Decrypt implements [CipherService]. Every failure that depends on the blob
// contents (unknown algorithm identifier, wrong nonce length, tag mismatch,
// wrong key or wrong associated data) is reported as the same
// [ErrAuthenticationFailed] so the caller learns nothing about the cause.
func (c *cipherService) Decrypt(key []byte, blob models.EncryptedBlob, associatedData []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if blob.Algorithm != models.CipherAESGCM {
		return nil, ErrAuthenticationFailed
	}
	if len(blob.Nonce) != models.NonceSize || len(blob.Tag) != models.TagSize {
		return nil, ErrAuthenticationFailed
	}

	// Reassemble the ciphertext||tag form gcm.Open expects.
	sealed := make([]byte, 0, len(blob.Ciphertext)+len(blob.Tag))
	sealed = append(sealed, blob.Ciphertext...)
	sealed = append(sealed, blob.Tag...)

	plaintext, err := gcm.Open(nil, blob.Nonce, sealed, associatedData)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

// newGCM builds an AES-256-GCM AEAD from a 32-byte key.
func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != models.KeySize {
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
