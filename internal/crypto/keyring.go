package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/lockboxd/lockbox/models"
)

// keyRing is the private implementation of [KeyRing]. It pairs the process
// master key with a cipher service. The master key is set at construction
// and never mutated, so the struct is safe for concurrent use.
type keyRing struct {
	masterKey []byte
	cipher    CipherService
}

// NewKeyRing constructs a [KeyRing] around the given master key. The key
// must be the 32-byte output of [DeriveMasterKey].
func NewKeyRing(masterKey []byte, cipher CipherService) (KeyRing, error) {
	if len(masterKey) != models.KeySize {
		return nil, ErrInvalidKeySize
	}

	return &keyRing{
		masterKey: masterKey,
		cipher:    cipher,
	}, nil
}

// GenerateDataKey implements [KeyRing]. It reads 32 random bytes from the OS
// CSPRNG. A data key is generated exactly once per account, at creation.
func (k *keyRing) GenerateDataKey() ([]byte, error) {
	dataKey := make([]byte, models.KeySize)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, fmt.Errorf("generate data key: %w", err)
	}
	return dataKey, nil
}

// WrapDataKey implements [KeyRing]. The data key is sealed under the master
// key with no associated data; the resulting envelope is what gets persisted
// on the account row.
func (k *keyRing) WrapDataKey(dataKey []byte) (models.EncryptedBlob, error) {
	if len(dataKey) != models.KeySize {
		return models.EncryptedBlob{}, ErrInvalidKeySize
	}
	return k.cipher.Encrypt(k.masterKey, dataKey, nil)
}

// UnwrapDataKey implements [KeyRing]. Any decryption failure is surfaced as
// [ErrUnwrapDataKey]: it means the configured master key no longer matches
// the one the blob was wrapped under, or the blob is corrupt. Either way the
// account's vault is unreadable until an operator intervenes, so the error
// must never be swallowed or downgraded.
func (k *keyRing) UnwrapDataKey(blob models.EncryptedBlob) ([]byte, error) {
	dataKey, err := k.cipher.Decrypt(k.masterKey, blob, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnwrapDataKey, err)
	}
	return dataKey, nil
}
