package session

import (
	"net/http"
	"time"
)

// CompositeTransport tries multiple transports in order, serving browsers and
// API clients from the same Manager.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport creates a transport that reads from the first
// transport carrying an identifier and writes through all of them.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{
		transports: transports,
	}
}

// GetSID extracts the session identifier from the first transport that has one.
func (t *CompositeTransport) GetSID(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		sid, err := transport.GetSID(r)
		if err == nil && sid != "" {
			return sid, nil
		}
	}
	return "", ErrSessionNotFound
}

// SetSID sends the session identifier via all configured transports.
func (t *CompositeTransport) SetSID(w http.ResponseWriter, sid string, ttl time.Duration) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.SetSID(w, sid, ttl); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// ClearSID removes the session identifier from all configured transports.
func (t *CompositeTransport) ClearSID(w http.ResponseWriter) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.ClearSID(w); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
