// Package secrets encrypts broker credentials before they are persisted.
//
// The wire format is AES-256-GCM with a 16-byte random IV and the GCM tag
// stored as a separate field, all base64 encoded. Documents written by
// earlier releases of the platform use the same format, so the key
// derivation parameters here must not change.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// keyDerivationSalt is fixed: changing it orphans every stored credential.
	keyDerivationSalt = "kanairy_salt_2024"
	pbkdf2Iterations  = 100000
	keyLength         = 32
	ivLength          = 16
	minKeyChars       = 32
)

// ErrInvalidCiphertext is returned when a stored credential cannot be
// decoded or fails GCM authentication.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// Encrypted is the persisted form of an encrypted credential.
type Encrypted struct {
	Ciphertext string // base64
	IV         string // base64, 16 bytes
	AuthTag    string // base64, 16 bytes
}

// Cipher encrypts and decrypts credentials with a key derived from the
// ENCRYPTION_KEY setting.
type Cipher struct {
	key []byte
}

// New derives the AES key from the configured passphrase. Passphrases
// shorter than 32 characters are right-padded with '0' before derivation,
// matching the behavior of earlier releases.
func New(passphrase string) *Cipher {
	if len(passphrase) < minKeyChars {
		passphrase = (passphrase + strings.Repeat("0", minKeyChars))[:minKeyChars]
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(keyDerivationSalt), pbkdf2Iterations, keyLength, sha256.New)
	return &Cipher{key: key}
}

// Encrypt seals the plaintext and returns the ciphertext/IV/tag triple.
func (c *Cipher) Encrypt(plaintext string) (Encrypted, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return Encrypted{}, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return Encrypted{}, fmt.Errorf("create gcm: %w", err)
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return Encrypted{}, fmt.Errorf("generate iv: %w", err)
	}

	// Seal appends the tag to the ciphertext; keep it as a separate field.
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	tagAt := len(sealed) - gcm.Overhead()

	return Encrypted{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed[:tagAt]),
		IV:         base64.StdEncoding.EncodeToString(iv),
		AuthTag:    base64.StdEncoding.EncodeToString(sealed[tagAt:]),
	}, nil
}

// Decrypt opens a stored credential. It returns ErrInvalidCiphertext for
// malformed input or when authentication fails.
func (c *Cipher) Decrypt(enc Encrypted) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(enc.Ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	iv, err := base64.StdEncoding.DecodeString(enc.IV)
	if err != nil || len(iv) != ivLength {
		return "", ErrInvalidCiphertext
	}
	tag, err := base64.StdEncoding.DecodeString(enc.AuthTag)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	plaintext, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
