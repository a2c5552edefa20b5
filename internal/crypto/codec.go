package crypto

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/models"
)

// vaultCodec is the private implementation of [VaultCodec]. It serializes
// vault payloads to JSON and seals them with the cipher service.
type vaultCodec struct {
	cipher CipherService
}

// NewVaultCodec constructs a [VaultCodec] backed by the given cipher service.
func NewVaultCodec(cipher CipherService) VaultCodec {
	return &vaultCodec{cipher: cipher}
}

// EncodeEntry implements [VaultCodec].
//
// Credential identifiers are normalized before serialization: a credential
// without an ID gets a freshly minted UUID, while existing IDs are kept
// untouched so that references held by clients stay stable across edits.
// Nil slices are normalized to empty ones so the stored JSON shape is
// canonical regardless of how the caller built the payload.
func (c *vaultCodec) EncodeEntry(dataKey []byte, payload models.VaultPayload) (models.VaultPayload, models.EncryptedBlob, error) {
	normalized := normalizePayload(payload)

	plaintext, err := json.Marshal(normalized)
	if err != nil {
		return models.VaultPayload{}, models.EncryptedBlob{}, fmt.Errorf("marshal vault payload: %w", err)
	}

	blob, err := c.cipher.Encrypt(dataKey, plaintext, nil)
	if err != nil {
		return models.VaultPayload{}, models.EncryptedBlob{}, fmt.Errorf("encrypt vault payload: %w", err)
	}

	return normalized, blob, nil
}

// DecodeEntry implements [VaultCodec]. Decryption failures propagate as the
// cipher service's uniform authentication error; a JSON failure after a
// successful decryption is reported as [ErrCorruptEntry] because it can only
// mean stored data was damaged without breaking the authentication tag,
// a distinct condition an operator needs to see.
func (c *vaultCodec) DecodeEntry(dataKey []byte, blob models.EncryptedBlob) (models.VaultPayload, error) {
	plaintext, err := c.cipher.Decrypt(dataKey, blob, nil)
	if err != nil {
		return models.VaultPayload{}, err
	}

	var payload models.VaultPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return models.VaultPayload{}, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}

	return payload, nil
}

// normalizePayload returns a copy of payload with credential IDs assigned
// and nil slices replaced by empty ones.
func normalizePayload(payload models.VaultPayload) models.VaultPayload {
	normalized := payload

	if normalized.URLs == nil {
		normalized.URLs = []string{}
	}
	if normalized.IPs == nil {
		normalized.IPs = []string{}
	}

	normalized.Credentials = make([]models.Credential, len(payload.Credentials))
	for i, cred := range payload.Credentials {
		if cred.ID == "" {
			cred.ID = uuid.NewString()
		}
		normalized.Credentials[i] = cred
	}

	return normalized
}
