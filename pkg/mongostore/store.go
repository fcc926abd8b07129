package mongostore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// defaultCollection is the collection sessions are stored in.
const defaultCollection = "sessions"

// defaultRetention is how long expired payloads stay readable before the TTL
// monitor may purge them.
const defaultRetention = time.Hour

// sessionDoc is the stored document. The payload travels in its portable
// JSON form; expires_at and purge_at are derived fields that only feed the
// TTL monitor and the Stats report. Both are absent on never-expiring
// sessions, which keeps them out of the TTL monitor's reach.
type sessionDoc struct {
	SID       string     `bson:"_id"`
	Payload   string     `bson:"payload"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	PurgeAt   *time.Time `bson:"purge_at,omitempty"`
}

// Store implements session.Store on a MongoDB collection. Instead of running
// its own sweeper it schedules every document for purging at expiry plus the
// retention grace and lets Mongo's TTL monitor do the deleting.
type Store struct {
	collection *mongo.Collection
	retention  time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithRetention overrides the grace period expired payloads survive before
// the TTL monitor purges them.
func WithRetention(retention time.Duration) Option {
	return func(s *Store) {
		s.retention = retention
	}
}

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(s *Store) {
		s.collection = s.collection.Database().Collection(name)
	}
}

// New returns a store over the given database, creating the collection
// indexes if needed: a TTL index on purge_at that drives purging, and a
// plain index on expires_at that serves the Stats report.
func New(ctx context.Context, db *mongo.Database, opts ...Option) (*Store, error) {
	store := &Store{
		collection: db.Collection(defaultCollection),
		retention:  defaultRetention,
	}

	for _, opt := range opts {
		opt(store)
	}

	_, err := store.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "purge_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session indexes: %w", err)
	}

	return store, nil
}

// Create inserts a new payload, rejecting identifier collisions.
func (s *Store) Create(ctx context.Context, sid string, data session.Data) error {
	if sid == "" {
		return session.ErrInvalidSID
	}

	doc, err := s.newDoc(sid, data)
	if err != nil {
		return err
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return session.ErrSessionExists
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Get retrieves a payload as last stored, expired or not. A document whose
// payload no longer parses reads as absent.
func (s *Store) Get(ctx context.Context, sid string) (session.Data, error) {
	var doc sessionDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": sid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return session.Data{}, session.ErrSessionNotFound
		}
		return session.Data{}, fmt.Errorf("failed to get session: %w", err)
	}

	var data session.Data
	if err := json.Unmarshal([]byte(doc.Payload), &data); err != nil {
		return session.Data{}, session.ErrSessionNotFound
	}

	return data, nil
}

// Update replaces the payload wholesale, inserting if absent. The purge
// deadline is re-derived, so renewals push it forward.
func (s *Store) Update(ctx context.Context, sid string, data session.Data) error {
	if sid == "" {
		return session.ErrInvalidSID
	}

	doc, err := s.newDoc(sid, data)
	if err != nil {
		return err
	}

	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": sid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// Delete removes a payload. Absent identifiers are ignored.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": sid}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Stats counts stored payloads and how many of them are past their deadline
// but not yet purged.
func (s *Store) Stats(ctx context.Context) (session.Stats, error) {
	total, err := s.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return session.Stats{}, fmt.Errorf("failed to count sessions: %w", err)
	}

	expired, err := s.collection.CountDocuments(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now().UTC()}})
	if err != nil {
		return session.Stats{}, fmt.Errorf("failed to count expired sessions: %w", err)
	}

	return session.Stats{Total: int(total), Expired: int(expired)}, nil
}

// newDoc encodes a payload into its stored form, deriving the purge deadline
// from expiry and retention.
func (s *Store) newDoc(sid string, data session.Data) (sessionDoc, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return sessionDoc{}, err
	}

	doc := sessionDoc{SID: sid, Payload: string(payload)}
	if !data.ExpiresAt.IsZero() {
		expires := data.ExpiresAt.UTC()
		purge := expires.Add(s.retention)
		doc.ExpiresAt = &expires
		doc.PurgeAt = &purge
	}

	return doc, nil
}
