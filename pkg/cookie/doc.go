// Package cookie provides the HTTP cookie plumbing under sessionkit: a
// Manager that writes, reads and deletes cookies with consistent attribute
// defaults, plus signed and encrypted variants for values that must not be
// forged or read client-side.
//
// # Overview
//
// The Manager is initialised with one or more secret keys and default cookie
// Options. Three levels of protection are available:
//
//   - Set(), Get(), Delete() – plain cookies
//   - SetSigned(), GetSigned() – HMAC-SHA256 signed cookies (integrity only)
//   - SetEncrypted(), GetEncrypted() – AES-256-GCM sealed cookies (integrity + privacy)
//
// Encryption is delegated to the secrets package, which derives full-entropy
// keys from the configured secrets via HKDF. The session packages build on
// the encrypted variant: the identifier transport seals session IDs and the
// cookie store seals whole payloads.
//
// # Key Rotation
//
// Multiple secrets are supported, newest first. The first secret writes;
// every secret is tried on read, so rotating a secret never invalidates
// cookies issued under the previous one until they expire naturally.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionkit/pkg/cookie"
//
//	// secrets must be at least 32 characters
//	man, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	http.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
//	    _ = man.SetEncrypted(w, "sid", sessionID)
//	})
//
//	http.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
//	    sid, err := man.GetEncrypted(r, "sid")
//	    _, _ = sid, err
//	})
//
// # Configuration
//
// The Config struct allows the manager to be constructed from environment
// variables via github.com/caarlos0/env. Only non-zero fields are applied.
//
//	cfg := cookie.DefaultConfig()
//	_ = env.Parse(&cfg)
//	man, _ := cookie.NewFromConfig(cfg)
//
// # Error Handling
//
// Package-level sentinel errors cover the common failure scenarios, such as
// ErrCookieNotFound, ErrInvalidSignature and ErrDecryptionFailed; match them
// with errors.Is.
package cookie
