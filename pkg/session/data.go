package session

import (
	"encoding/json"
	"maps"
	"time"
)

// Reserved payload keys. User values sharing these names are shadowed on
// serialization and never round-trip.
const (
	flashKey    = "_flash"
	accessedKey = "_accessed"
	expireKey   = "_expire"
	deleteKey   = "_delete"
)

// Data is the persisted session payload: arbitrary user values plus the
// lifecycle fields the Manager maintains. It serializes to a single flat JSON
// object in which user keys sit alongside the reserved keys, so payloads are
// portable across stores and readable by other stacks.
type Data struct {
	// Values holds user key/value pairs.
	Values map[string]any

	// Flash holds values surfaced once by Session.Get and then discarded.
	Flash map[string]any

	// AccessedAt is stamped on every fetch and create.
	AccessedAt time.Time

	// ExpiresAt is the sliding expiration deadline. The zero value means the
	// session never expires.
	ExpiresAt time.Time

	// Deleted marks the payload for removal at the next save.
	Deleted bool
}

// newData returns a payload with freshly allocated maps. Payloads never share
// map instances; a stray write through one session must not leak into another.
func newData() Data {
	return Data{
		Values: make(map[string]any),
		Flash:  make(map[string]any),
	}
}

// IsExpired reports whether the payload has passed its expiry deadline.
// A zero ExpiresAt never expires.
func (d Data) IsExpired() bool {
	return !d.ExpiresAt.IsZero() && time.Now().After(d.ExpiresAt)
}

// renew stamps the access time and slides the expiry window forward.
// A non-positive ttl clears the deadline entirely.
func (d *Data) renew(now time.Time, ttl time.Duration) {
	d.AccessedAt = now
	if ttl > 0 {
		d.ExpiresAt = now.Add(ttl)
	} else {
		d.ExpiresAt = time.Time{}
	}
}

// clone returns a copy owning its own maps. Entry values are shared; the
// top-level maps are not.
func (d Data) clone() Data {
	out := d
	out.Values = make(map[string]any, len(d.Values))
	maps.Copy(out.Values, d.Values)
	out.Flash = make(map[string]any, len(d.Flash))
	maps.Copy(out.Flash, d.Flash)
	return out
}

// MarshalJSON flattens the payload into one JSON object. Reserved keys are
// always written and always win over colliding user keys.
func (d Data) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Values)+4)
	for k, v := range d.Values {
		out[k] = v
	}

	flash := d.Flash
	if flash == nil {
		flash = map[string]any{}
	}
	out[flashKey] = flash

	out[accessedKey] = formatTime(d.AccessedAt)
	out[expireKey] = formatTime(d.ExpiresAt)
	out[deleteKey] = d.Deleted

	return json.Marshal(out)
}

// UnmarshalJSON routes reserved keys into their typed fields and everything
// else into Values.
func (d *Data) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*d = newData()

	if msg, ok := raw[flashKey]; ok {
		if err := json.Unmarshal(msg, &d.Flash); err != nil {
			return err
		}
		if d.Flash == nil {
			d.Flash = make(map[string]any)
		}
		delete(raw, flashKey)
	}

	if msg, ok := raw[accessedKey]; ok {
		t, err := parseTime(msg)
		if err != nil {
			return err
		}
		d.AccessedAt = t
		delete(raw, accessedKey)
	}

	if msg, ok := raw[expireKey]; ok {
		t, err := parseTime(msg)
		if err != nil {
			return err
		}
		d.ExpiresAt = t
		delete(raw, expireKey)
	}

	if msg, ok := raw[deleteKey]; ok {
		if err := json.Unmarshal(msg, &d.Deleted); err != nil {
			return err
		}
		delete(raw, deleteKey)
	}

	for k, msg := range raw {
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return err
		}
		d.Values[k] = v
	}

	return nil
}

// formatTime renders t as RFC 3339 in UTC, or nil for the zero time so that
// "never expires" serializes as JSON null.
func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime accepts an RFC 3339 string or null.
func parseTime(msg json.RawMessage) (time.Time, error) {
	var s *string
	if err := json.Unmarshal(msg, &s); err != nil {
		return time.Time{}, err
	}
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, *s)
}
