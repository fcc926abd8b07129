package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// CookieTransport carries the session identifier in an encrypted cookie.
type CookieTransport struct {
	cookies    *cookie.Manager
	cookieName string
	options    []cookie.Option
}

// NewCookieTransport creates a cookie-based transport. Options are appended
// to the transport defaults on every write, so they can override any of them.
func NewCookieTransport(cookies *cookie.Manager, cookieName string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{
		cookies:    cookies,
		cookieName: cookieName,
		options:    opts,
	}
}

// GetSID extracts the session identifier from the cookie. Missing or
// undecryptable cookies both read as absence.
func (t *CookieTransport) GetSID(r *http.Request) (string, error) {
	sid, err := t.cookies.GetEncrypted(r, t.cookieName)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return sid, nil
}

// SetSID stores the session identifier in an encrypted cookie.
func (t *CookieTransport) SetSID(w http.ResponseWriter, sid string, ttl time.Duration) error {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	opts = append(opts, t.options...)

	return t.cookies.SetEncrypted(w, t.cookieName, sid, opts...)
}

// ClearSID removes the session cookie.
func (t *CookieTransport) ClearSID(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.cookieName)
	return nil
}
