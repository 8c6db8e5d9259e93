// Package store provides the TTL session store backing workflow state.
//
// A session is a JSON payload keyed by (conversation key, workflow type).
// Every write carries an explicit TTL; there is no store-forever mode. A read
// of a missing or expired entry is a miss, not an error; callers treat a
// miss as the workflow's default state.
//
// The store is safe for concurrent use. The read-modify-write cycle performed
// by workflow handlers on top of it is not atomic: two concurrent events for
// the same conversation can interleave and one write can be lost. That race
// is accepted; see the engine documentation.
package store

import "time"

// Store is the session store capability handed to the workflow engine.
type Store interface {
	// GetSession returns the payload for the key/workflow pair, or (nil, nil)
	// when the entry is absent or expired.
	GetSession(key, workflow string) ([]byte, error)
	// SetSession writes the payload with the given TTL, replacing any
	// previous entry for the pair.
	SetSession(key, workflow string, data []byte, ttl time.Duration) error
	// DeleteSession removes the entry. Deleting a missing entry is not an
	// error.
	DeleteSession(key, workflow string) error
	// DeleteExpired removes entries whose TTL has elapsed and reports how
	// many were removed. SQL backends rely on a periodic sweep; reads already
	// treat expired rows as misses.
	DeleteExpired() (int64, error)
	// Close releases the underlying resources.
	Close() error
}

// Opts holds store configuration options.
type Opts struct {
	DSN string
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithDSN sets the database DSN for SQL-backed stores.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}
