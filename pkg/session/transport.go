package session

import (
	"net/http"
	"time"
)

// Transport defines how session identifiers travel between client and server
// for keyed stores. The cookie store embeds the whole payload client-side and
// does not use a Transport.
type Transport interface {
	// GetSID extracts the session identifier from the request.
	GetSID(r *http.Request) (string, error)

	// SetSID sends the session identifier in the response. A positive ttl
	// bounds the client-side lifetime of the carrier.
	SetSID(w http.ResponseWriter, sid string, ttl time.Duration) error

	// ClearSID removes the session identifier carrier from the response.
	ClearSID(w http.ResponseWriter) error
}
