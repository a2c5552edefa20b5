package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/lockboxd/lockbox/models"
)

// DeriveMasterKey normalizes the configured master-key secret into a 32-byte
// symmetric key usable by the cipher service.
//
// Decoding policy: the trimmed secret is first interpreted as standard
// base64; if decoding fails it is treated as raw text bytes. If the
// resulting byte string is exactly 32 bytes it is used verbatim, otherwise
// its SHA-256 digest becomes the key.
//
// The derivation is deterministic (the same configured secret always yields
// the same key), which is what lets the server decrypt previously wrapped
// data keys after a restart. Callers derive once at startup and hold the
// result for the process lifetime; the key is never persisted or logged.
func DeriveMasterKey(secret string) ([]byte, error) {
	raw := strings.TrimSpace(secret)
	if raw == "" {
		return nil, ErrEmptyMasterKeySecret
	}

	buf, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		buf = []byte(raw)
	}

	if len(buf) == models.KeySize {
		return buf, nil
	}

	digest := sha256.Sum256(buf)
	return digest[:], nil
}
