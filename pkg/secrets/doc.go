// Package secrets provides the payload encryption used across sessionkit: a
// Cipher that seals arbitrary bytes with AES-256-GCM under keys derived from
// operator-supplied passphrases.
//
// Keys are stretched from passphrases with HKDF-SHA-256 using a fixed
// domain-separation label, so a passphrase of any length past the minimum
// becomes a full-entropy 256-bit key. On encryption the nonce is prepended to
// the ciphertext and the whole token is base64-encoded, making it
// self-contained and safe to place in a cookie value.
//
// # Key Rotation
//
// A Cipher accepts several passphrases. The first one seals new data; every
// one of them is tried when opening. Rotating a compromised or aging
// passphrase is therefore a config change: prepend the new passphrase and
// keep the old one listed until data sealed under it has aged out.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionkit/pkg/secrets"
//
//	cipher, err := secrets.NewCipher("new-passphrase-32-chars-minimum!", "old-passphrase-32-chars-minimum!")
//	if err != nil {
//	    // handle error
//	}
//
//	token, err := cipher.EncryptString("super-secret")
//	plain, err := cipher.DecryptString(token)
//
// GenerateKey produces a random passphrase of suitable strength for
// bootstrapping configuration.
//
// # Error Handling
//
// Failures wrap sentinel package errors such as ErrDecryptionFailed and
// ErrInvalidCiphertext; match them with errors.Is. Decrypt deliberately does
// not reveal which configured key failed.
package secrets
