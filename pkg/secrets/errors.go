package secrets

import "errors"

var (
	// Passphrase validation errors
	ErrNoPassphrase       = errors.New("at least one passphrase is required")
	ErrPassphraseTooShort = errors.New("passphrase must be at least 32 characters")

	// Encryption/decryption errors
	ErrEncryptionFailed  = errors.New("encryption failed")
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// Key derivation errors
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
