package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the derived key size: 256 bits for AES-256.
	KeySize = 32

	// MinPassphraseLength is the minimum accepted passphrase length.
	MinPassphraseLength = 32

	// keyInfo provides domain separation for HKDF so keys derived here never
	// collide with keys another component derives from the same passphrase.
	keyInfo = "sessionkit-secrets-v1"
)

// deriveKey stretches a passphrase into a full-entropy AES-256 key using
// HKDF-SHA256, so passphrases of any length past the minimum are usable as-is.
func deriveKey(passphrase string) ([]byte, error) {
	reader := hkdf.New(sha256.New, []byte(passphrase), nil, []byte(keyInfo))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return key, nil
}

// GenerateKey creates a random passphrase suitable for NewCipher: 32 random
// bytes rendered as 43 base64 characters.
func GenerateKey() (string, error) {
	raw := make([]byte, KeySize)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
