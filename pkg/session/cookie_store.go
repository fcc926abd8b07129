package session

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// maxCookieSize bounds name plus encoded value. Browsers cut cookies off
// around 4 KiB; payloads that would silently truncate are rejected instead.
const maxCookieSize = 4096

// defaultDataCookieName is the payload cookie written by the cookie store.
const defaultDataCookieName = "session_data"

// Cipher seals session payloads for cookie embedding and opens them again.
// The output must be cookie-safe. Implementations that hold several keys
// should seal with the newest and try all of them when opening, so keys can
// rotate without logging everyone out.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(token string) ([]byte, error)
}

// CookieStore keeps the whole session payload client-side in an encrypted
// cookie. No identifier is ever allocated: a session exists exactly when the
// cookie is present and decrypts. State written here survives server restarts
// and needs no shared storage, at the price of the cookie size limit.
type CookieStore struct {
	cookies   *cookie.Manager
	cipher    Cipher
	name      string
	retention time.Duration
	options   []cookie.Option
}

// CookieStoreOption configures a CookieStore.
type CookieStoreOption func(*CookieStore)

// WithDataCookieName overrides the payload cookie name.
func WithDataCookieName(name string) CookieStoreOption {
	return func(cs *CookieStore) {
		cs.name = name
	}
}

// WithDataCookieOptions appends cookie options applied on every payload write.
func WithDataCookieOptions(opts ...cookie.Option) CookieStoreOption {
	return func(cs *CookieStore) {
		cs.options = append(cs.options, opts...)
	}
}

// WithDataRetention overrides how long past expiry the payload cookie stays
// alive client-side. The grace lets an expired payload still reach the server
// once, where the Manager observes it and issues a replacement.
func WithDataRetention(retention time.Duration) CookieStoreOption {
	return func(cs *CookieStore) {
		cs.retention = retention
	}
}

// NewCookieStore creates a cookie-embedded session store. The cipher guards
// payload confidentiality and integrity; the cookie manager handles transport
// attributes.
func NewCookieStore(cookies *cookie.Manager, cipher Cipher, opts ...CookieStoreOption) *CookieStore {
	cs := &CookieStore{
		cookies:   cookies,
		cipher:    cipher,
		name:      defaultDataCookieName,
		retention: defaultRetention,
	}

	for _, opt := range opts {
		opt(cs)
	}

	return cs
}

// Load reads the payload from the request cookie. A missing cookie, a failed
// decrypt and an unparsable payload all report ErrSessionNotFound: a cookie
// that cannot be opened is indistinguishable from no session at all.
func (cs *CookieStore) Load(r *http.Request) (Data, error) {
	token, err := cs.cookies.Get(r, cs.name)
	if err != nil {
		return Data{}, ErrSessionNotFound
	}

	plaintext, err := cs.cipher.Decrypt(token)
	if err != nil {
		return Data{}, ErrSessionNotFound
	}

	var data Data
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return Data{}, ErrSessionNotFound
	}

	return data, nil
}

// Persist encrypts the payload and writes it as a cookie. Payloads whose
// encoded form exceeds the browser cookie limit are rejected with
// ErrPayloadTooLarge before anything is written.
func (cs *CookieStore) Persist(w http.ResponseWriter, data Data) error {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	token, err := cs.cipher.Encrypt(plaintext)
	if err != nil {
		return err
	}

	if len(cs.name)+len(token) > maxCookieSize {
		return ErrPayloadTooLarge
	}

	opts := []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if maxAge := cs.cookieMaxAge(data); maxAge > 0 {
		opts = append(opts, cookie.WithMaxAge(maxAge))
	}
	opts = append(opts, cs.options...)

	return cs.cookies.Set(w, cs.name, token, opts...)
}

// Clear deletes the payload cookie.
func (cs *CookieStore) Clear(w http.ResponseWriter) {
	cs.cookies.Delete(w, cs.name)
}

// cookieMaxAge derives the cookie lifetime from the payload expiry plus the
// retention grace. Never-expiring payloads ride a browser session cookie
// unless the caller set an explicit MaxAge option.
func (cs *CookieStore) cookieMaxAge(data Data) int {
	if data.ExpiresAt.IsZero() {
		return 0
	}
	maxAge := int(time.Until(data.ExpiresAt.Add(cs.retention)).Seconds())
	if maxAge < 0 {
		return 0
	}
	return maxAge
}
