// Package vault provides symmetric, authenticated encryption for small
// JSON-serializable secret payloads (bank connection credentials). Keys are
// derived from a single master secret with domain separation so a ciphertext
// produced for one subsystem can never be opened with a key derived for
// another.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
)

const (
	ivSize  = 16 // Fresh random IV per Encrypt call
	tagSize = 16 // GCM authentication tag
	keySize = 32 // AES-256
)

// Vault encrypts and decrypts payloads under a key derived from a master
// secret and a domain tag. The derived key is held in memory only and is
// never persisted.
type Vault struct {
	key []byte
}

// New derives the vault key from the master secret and domain tag using
// HKDF-SHA256. It fails with a configuration error when no master secret is
// configured.
func New(masterSecret, domain string) (*Vault, error) {
	if masterSecret == "" {
		return nil, fmt.Errorf("master secret is not configured: %w", apperrors.ErrConfiguration)
	}

	key := make([]byte, keySize)
	kdf := hkdf.New(sha256.New, []byte(masterSecret), nil, []byte(domain))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive vault key: %w", err)
	}
	return &Vault{key: key}, nil
}

// Encrypt serializes the payload as JSON and seals it with AES-256-GCM under
// a fresh random IV. The output is "b64(iv).b64(ciphertext).b64(tag)"; two
// calls on identical input produce different blobs that decrypt equally.
func (v *Vault) Encrypt(payload any) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize payload: %w", err)
	}

	aead, err := v.aead()
	if err != nil {
		return "", err
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	sealed := aead.Seal(nil, iv, plaintext, nil)
	// GCM appends the tag to the ciphertext; the blob format keeps them as
	// separate segments.
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(ciphertext),
		base64.StdEncoding.EncodeToString(tag),
	}, "."), nil
}

// Decrypt opens a blob produced by Encrypt and unmarshals the plaintext into
// out. A blob without exactly three dot-separated segments fails with a
// format error; a tag mismatch (tampered blob or wrong key) fails with an
// authentication error.
func (v *Vault) Decrypt(blob string, out any) error {
	parts := strings.Split(blob, ".")
	if len(parts) != 3 {
		return fmt.Errorf("ciphertext must have exactly 3 segments, got %d: %w", len(parts), apperrors.ErrFormat)
	}

	iv, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return fmt.Errorf("invalid IV segment: %w", apperrors.ErrFormat)
	}
	if len(iv) != ivSize {
		return fmt.Errorf("IV must be %d bytes, got %d: %w", ivSize, len(iv), apperrors.ErrFormat)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return fmt.Errorf("invalid ciphertext segment: %w", apperrors.ErrFormat)
	}
	tag, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("invalid tag segment: %w", apperrors.ErrFormat)
	}
	if len(tag) != tagSize {
		return fmt.Errorf("auth tag must be %d bytes, got %d: %w", tagSize, len(tag), apperrors.ErrFormat)
	}

	aead, err := v.aead()
	if err != nil {
		return err
	}

	sealed := append(append([]byte{}, ciphertext...), tag...)
	plaintext, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return fmt.Errorf("tag verification failed: %w", apperrors.ErrAuthentication)
	}

	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("failed to deserialize payload: %w", apperrors.ErrFormat)
	}
	return nil
}

func (v *Vault) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return aead, nil
}
