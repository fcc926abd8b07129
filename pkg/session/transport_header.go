package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport carries the session identifier in an HTTP header, for API
// clients that do not speak cookies.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// HeaderOption is a functional option for HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets a custom prefix for the header value.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// NewHeaderTransport creates a header-based transport. The value is prefixed
// with "Bearer " unless overridden.
func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{
		headerName: headerName,
		prefix:     "Bearer ",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// GetSID extracts the session identifier from the header.
func (t *HeaderTransport) GetSID(r *http.Request) (string, error) {
	value := r.Header.Get(t.headerName)
	if value == "" {
		return "", ErrSessionNotFound
	}

	if t.prefix != "" {
		value = strings.TrimPrefix(value, t.prefix)
	}

	return value, nil
}

// SetSID sends the session identifier in the response header, along with a
// companion expiry header when a ttl is set.
func (t *HeaderTransport) SetSID(w http.ResponseWriter, sid string, ttl time.Duration) error {
	value := sid
	if t.prefix != "" {
		value = t.prefix + sid
	}
	w.Header().Set(t.headerName, value)

	if ttl > 0 {
		w.Header().Set(t.headerName+"-Expires", time.Now().Add(ttl).Format(time.RFC3339))
	}

	return nil
}

// ClearSID removes the session headers from the response.
func (t *HeaderTransport) ClearSID(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	w.Header().Del(t.headerName + "-Expires")
	return nil
}
