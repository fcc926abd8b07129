package secrets

import (
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// Cipher seals and opens byte payloads with AES-256-GCM. It holds one key per
// configured passphrase: the first passphrase seals, all of them are tried
// when opening, so passphrases can rotate without invalidating data sealed
// under the previous one.
type Cipher struct {
	keys [][]byte
}

// NewCipher derives an encryption key from each passphrase. At least one
// passphrase is required and each must be at least MinPassphraseLength
// characters. Order matters: the first passphrase is the active one.
func NewCipher(passphrases ...string) (*Cipher, error) {
	if len(passphrases) == 0 {
		return nil, ErrNoPassphrase
	}

	keys := make([][]byte, 0, len(passphrases))
	for _, p := range passphrases {
		if len(p) < MinPassphraseLength {
			return nil, ErrPassphraseTooShort
		}
		key, err := deriveKey(p)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return &Cipher{keys: keys}, nil
}

// Encrypt seals plaintext under the active key and returns a cookie-safe
// base64 token. The nonce is prepended to the ciphertext so the token is
// self-contained.
func (c *Cipher) Encrypt(plaintext []byte) (string, error) {
	aead, err := newAEAD(c.keys[0])
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	ciphertext := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt opens a token produced by Encrypt, trying every configured key so
// data sealed before a passphrase rotation still opens.
func (c *Cipher) Decrypt(token string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	for _, key := range c.keys {
		aead, err := newAEAD(key)
		if err != nil {
			continue
		}

		if len(ciphertext) < aead.NonceSize() {
			return nil, ErrInvalidCiphertext
		}

		nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
		plaintext, err := aead.Open(nil, nonce, sealed, nil)
		if err == nil {
			return plaintext, nil
		}
	}

	return nil, ErrDecryptionFailed
}

// EncryptString seals a string value. See Encrypt.
func (c *Cipher) EncryptString(plaintext string) (string, error) {
	return c.Encrypt([]byte(plaintext))
}

// DecryptString opens a token back into a string. See Decrypt.
func (c *Cipher) DecryptString(token string) (string, error) {
	plaintext, err := c.Decrypt(token)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func newAEAD(key []byte) (gocipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return gocipher.NewGCM(block)
}
