package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/lockboxd/lockbox/models"
)

func TestDeriveMasterKey_Base64Exactly32Bytes(t *testing.T) {
	raw := bytes.Repeat([]byte{0xAB}, models.KeySize)
	secret := base64.StdEncoding.EncodeToString(raw)

	key, err := DeriveMasterKey(secret)
	if err != nil {
		t.Fatalf("DeriveMasterKey error: %v", err)
	}

	if !bytes.Equal(key, raw) {
		t.Fatal("expected the decoded 32-byte secret to be used verbatim")
	}
}

func TestDeriveMasterKey_Base64WrongLengthIsHashed(t *testing.T) {
	raw := []byte("sixteen-byte-key")
	secret := base64.StdEncoding.EncodeToString(raw)

	key, err := DeriveMasterKey(secret)
	if err != nil {
		t.Fatalf("DeriveMasterKey error: %v", err)
	}

	want := sha256.Sum256(raw)
	if !bytes.Equal(key, want[:]) {
		t.Fatal("expected SHA-256 of the decoded bytes")
	}
}

func TestDeriveMasterKey_RawTextFallback(t *testing.T) {
	// Not valid base64, so the raw text bytes are hashed.
	secret := "!!definitely not base64!!"

	key, err := DeriveMasterKey(secret)
	if err != nil {
		t.Fatalf("DeriveMasterKey error: %v", err)
	}

	want := sha256.Sum256([]byte(secret))
	if !bytes.Equal(key, want[:]) {
		t.Fatal("expected SHA-256 of the raw text bytes")
	}
}

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	const secret = "correct horse battery staple"

	k1, err := DeriveMasterKey(secret)
	if err != nil {
		t.Fatalf("DeriveMasterKey error: %v", err)
	}
	k2, err := DeriveMasterKey(secret)
	if err != nil {
		t.Fatalf("DeriveMasterKey error: %v", err)
	}

	if !bytes.Equal(k1, k2) {
		t.Fatal("expected identical keys for the same secret")
	}
	if len(k1) != models.KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), models.KeySize)
	}
}

func TestDeriveMasterKey_TrimsWhitespace(t *testing.T) {
	k1, err := DeriveMasterKey("  my secret \n")
	if err != nil {
		t.Fatalf("DeriveMasterKey error: %v", err)
	}
	k2, err := DeriveMasterKey("my secret")
	if err != nil {
		t.Fatalf("DeriveMasterKey error: %v", err)
	}

	if !bytes.Equal(k1, k2) {
		t.Fatal("expected surrounding whitespace to be ignored")
	}
}

func TestDeriveMasterKey_EmptySecret(t *testing.T) {
	if _, err := DeriveMasterKey("   "); !errors.Is(err, ErrEmptyMasterKeySecret) {
		t.Fatalf("expected ErrEmptyMasterKeySecret, got %v", err)
	}
}
