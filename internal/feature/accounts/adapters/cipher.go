package adapters

import (
	"kanairy_backend/internal/feature/accounts/domain/entity"
	"kanairy_backend/internal/feature/accounts/usecase"
	"kanairy_backend/internal/platform/secrets"
)

// credentialCipher bridges the platform secrets cipher to the accounts
// usecase interface.
type credentialCipher struct {
	cipher *secrets.Cipher
}

var _ usecase.CredentialCipher = (*credentialCipher)(nil)

// NewCredentialCipher wraps a secrets.Cipher for use by the accounts usecase.
func NewCredentialCipher(cipher *secrets.Cipher) *credentialCipher {
	return &credentialCipher{cipher: cipher}
}

func (c *credentialCipher) Encrypt(plaintext string) (entity.EncryptedCredential, error) {
	enc, err := c.cipher.Encrypt(plaintext)
	if err != nil {
		return entity.EncryptedCredential{}, err
	}
	return entity.EncryptedCredential{
		Ciphertext: enc.Ciphertext,
		IV:         enc.IV,
		AuthTag:    enc.AuthTag,
	}, nil
}

func (c *credentialCipher) Decrypt(cred entity.EncryptedCredential) (string, error) {
	return c.cipher.Decrypt(secrets.Encrypted{
		Ciphertext: cred.Ciphertext,
		IV:         cred.IV,
		AuthTag:    cred.AuthTag,
	})
}
