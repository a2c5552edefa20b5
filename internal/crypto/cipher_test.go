package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lockboxd/lockbox/models"
)

func testKey(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, models.KeySize)
}

func TestEncrypt_ProducesWellFormedBlob(t *testing.T) {
	svc := NewCipherService()

	blob, err := svc.Encrypt(testKey(0x2A), []byte("attack at dawn"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if len(blob.Nonce) != models.NonceSize {
		t.Fatalf("nonce length = %d, want %d", len(blob.Nonce), models.NonceSize)
	}
	if len(blob.Tag) != models.TagSize {
		t.Fatalf("tag length = %d, want %d", len(blob.Tag), models.TagSize)
	}
	if blob.Algorithm != models.CipherAESGCM {
		t.Fatalf("algorithm = %q, want %q", blob.Algorithm, models.CipherAESGCM)
	}
	if bytes.Equal(blob.Ciphertext, []byte("attack at dawn")) {
		t.Fatal("ciphertext equals plaintext")
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	svc := NewCipherService()
	key := testKey(0x01)

	b1, err := svc.Encrypt(key, []byte("same plaintext"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b2, err := svc.Encrypt(key, []byte("same plaintext"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if bytes.Equal(b1.Nonce, b2.Nonce) {
		t.Fatal("expected nonces to differ across calls")
	}
	if bytes.Equal(b1.Ciphertext, b2.Ciphertext) {
		t.Fatal("expected ciphertexts to differ across calls")
	}
}

func TestDecrypt_RoundTrip(t *testing.T) {
	svc := NewCipherService()
	key := testKey(0x17)

	plaintexts := [][]byte{
		[]byte(""),
		[]byte("x"),
		[]byte(`{"urls":["https://example.com"],"notes":"hello"}`),
		bytes.Repeat([]byte{0xFF}, 4096),
	}

	for _, want := range plaintexts {
		blob, err := svc.Encrypt(key, want, nil)
		if err != nil {
			t.Fatalf("Encrypt error: %v", err)
		}

		got, err := svc.Decrypt(key, blob, nil)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("round-trip mismatch: got %q, want %q", got, want)
		}
	}
}

func TestDecrypt_RoundTripWithAssociatedData(t *testing.T) {
	svc := NewCipherService()
	key := testKey(0x33)
	aad := []byte("user:42")

	blob, err := svc.Encrypt(key, []byte("secret"), aad)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := svc.Decrypt(key, blob, aad)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(got, []byte("secret")) {
		t.Fatalf("round-trip mismatch: got %q", got)
	}

	if _, err := svc.Decrypt(key, blob, []byte("user:43")); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed for wrong AAD, got %v", err)
	}
}

// Flipping any single bit of any envelope field must fail authentication,
// never return corrupted plaintext.
func TestDecrypt_TamperDetection(t *testing.T) {
	svc := NewCipherService()
	key := testKey(0x55)

	blob, err := svc.Encrypt(key, []byte("integrity matters"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	fields := map[string][]byte{
		"ciphertext": blob.Ciphertext,
		"nonce":      blob.Nonce,
		"tag":        blob.Tag,
	}

	for name, field := range fields {
		for i := range field {
			for bit := 0; bit < 8; bit++ {
				tampered := blob
				copied := bytes.Clone(field)
				copied[i] ^= 1 << bit

				switch name {
				case "ciphertext":
					tampered.Ciphertext = copied
				case "nonce":
					tampered.Nonce = copied
				case "tag":
					tampered.Tag = copied
				}

				if _, err := svc.Decrypt(key, tampered, nil); !errors.Is(err, ErrAuthenticationFailed) {
					t.Fatalf("flipping %s byte %d bit %d: expected ErrAuthenticationFailed, got %v", name, i, bit, err)
				}
			}
		}
	}
}

func TestDecrypt_KeyIsolation(t *testing.T) {
	svc := NewCipherService()

	blob, err := svc.Encrypt(testKey(0x01), []byte("for key one only"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err := svc.Decrypt(testKey(0x02), blob, nil); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed for wrong key, got %v", err)
	}
}

func TestDecrypt_RejectsUnknownAlgorithm(t *testing.T) {
	svc := NewCipherService()
	key := testKey(0x07)

	blob, err := svc.Encrypt(key, []byte("payload"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	blob.Algorithm = "chacha20-poly1305"

	if _, err := svc.Decrypt(key, blob, nil); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed for unknown algorithm, got %v", err)
	}
}

func TestDecrypt_RejectsWrongNonceLength(t *testing.T) {
	svc := NewCipherService()
	key := testKey(0x07)

	blob, err := svc.Encrypt(key, []byte("payload"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	blob.Nonce = blob.Nonce[:len(blob.Nonce)-1]

	if _, err := svc.Decrypt(key, blob, nil); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed for short nonce, got %v", err)
	}
}

func TestEncrypt_RejectsBadKeySize(t *testing.T) {
	svc := NewCipherService()

	if _, err := svc.Encrypt([]byte("short"), []byte("x"), nil); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("expected ErrInvalidKeySize, got %v", err)
	}
	if _, err := svc.Decrypt([]byte("short"), models.EncryptedBlob{}, nil); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("expected ErrInvalidKeySize, got %v", err)
	}
}
