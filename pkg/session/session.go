package session

import "time"

// Session is the per-request view of one visitor's state. Sessions are minted
// by a Manager, owned exclusively by the request that fetched them and
// discarded when the request ends; they carry no locking and must not be
// shared across goroutines that outlive the request.
type Session struct {
	id     string
	data   Data
	rotate bool
}

// ID returns the session identifier. It is empty when the session is backed
// by the cookie store, which never allocates one.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Get retrieves a value by key. Regular values are checked first; on a miss
// the flash values are consulted and a matching flash entry is consumed, so a
// flash value is surfaced exactly once. Absent keys yield nil, with no way to
// distinguish a missing key from a stored nil.
func (s *Session) Get(key string) any {
	if s == nil {
		return nil
	}
	if v, ok := s.data.Values[key]; ok {
		return v
	}
	if v, ok := s.data.Flash[key]; ok {
		delete(s.data.Flash, key)
		return v
	}
	return nil
}

// GetString retrieves a string value. The second return reports whether the
// key held a string. Flash entries are consumed like Get.
func (s *Session) GetString(key string) (string, bool) {
	str, ok := s.Get(key).(string)
	return str, ok
}

// GetInt retrieves an int value, tolerating the float64 form JSON decoding
// produces for numbers.
func (s *Session) GetInt(key string) (int, bool) {
	switch v := s.Get(key).(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value.
func (s *Session) GetBool(key string) (bool, bool) {
	b, ok := s.Get(key).(bool)
	return b, ok
}

// Set stores a value under key. A nil value removes the key instead; this is
// the only way to drop a regular value.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if value == nil {
		delete(s.data.Values, key)
		return
	}
	s.data.Values[key] = value
}

// Flash stores a value surfaced by the first Get that misses the regular
// values, then discarded. Setting an existing flash key overwrites it.
func (s *Session) Flash(key string, value any) {
	if s == nil {
		return
	}
	s.data.Flash[key] = value
}

// Has reports whether key is present among regular or flash values without
// consuming anything.
func (s *Session) Has(key string) bool {
	if s == nil {
		return false
	}
	if _, ok := s.data.Values[key]; ok {
		return true
	}
	_, ok := s.data.Flash[key]
	return ok
}

// Destroy marks the session for removal. The actual delete happens when the
// session is passed to Manager.Save; until then the data remains readable.
func (s *Session) Destroy() {
	if s == nil {
		return
	}
	s.data.Deleted = true
}

// IsDestroyed reports whether Destroy has been called.
func (s *Session) IsDestroyed() bool {
	return s != nil && s.data.Deleted
}

// Rotate marks the session for identifier rotation at the next Manager.Save.
// The data survives under a fresh identifier while the old one is retired.
// Sessions backed by the cookie store have no identifier; for them the mark
// is a no-op.
func (s *Session) Rotate() {
	if s == nil {
		return
	}
	s.rotate = true
}

// ExpiresAt returns the current expiry deadline. The zero time means the
// session never expires.
func (s *Session) ExpiresAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.data.ExpiresAt
}

// AccessedAt returns when the session was last fetched or created.
func (s *Session) AccessedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.data.AccessedAt
}
