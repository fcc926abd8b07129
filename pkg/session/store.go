package session

import "context"

// Store persists session payloads keyed by identifier. Implementations treat
// payloads as opaque records: expiry is interpreted by the Manager, never by
// the store, so Get returns whatever was last written even when the payload
// has passed its deadline. Cleanup mechanisms must retain expired entries for
// a grace period beyond their deadline so the Manager can observe the expired
// state and issue a replacement.
type Store interface {
	// Create inserts a new payload. It fails with ErrSessionExists when the
	// identifier is already taken.
	Create(ctx context.Context, sid string, data Data) error

	// Get retrieves a payload by identifier, or ErrSessionNotFound.
	Get(ctx context.Context, sid string) (Data, error)

	// Update replaces the payload wholesale, inserting if absent.
	Update(ctx context.Context, sid string, data Data) error

	// Delete removes a payload. Deleting an absent identifier is not an error.
	Delete(ctx context.Context, sid string) error
}

// StoreWithCleanup is an optional interface for stores that can sweep entries
// whose expiry passed longer than the retention grace ago.
type StoreWithCleanup interface {
	Store
	DeleteExpired(ctx context.Context) error
}

// Stats holds entry counts reported by a store.
type Stats struct {
	// Total is the number of stored payloads, expired ones included.
	Total int

	// Expired is the number of payloads past their deadline but not yet swept.
	Expired int
}

// StatsReporter is an optional interface for stores that can count their
// entries, feeding dashboards and the metrics collector.
type StatsReporter interface {
	Stats(ctx context.Context) (Stats, error)
}
