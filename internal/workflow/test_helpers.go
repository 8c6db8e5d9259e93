package workflow

import (
	"fmt"
	"time"

	"github.com/ck19910321/LineBot/internal/models"
	"github.com/ck19910321/LineBot/internal/store"
)

// captureStore wraps a real store and records the TTL of the last write.
type captureStore struct {
	store.Store
	lastTTL time.Duration
}

func newCaptureStore() *captureStore {
	return &captureStore{Store: store.NewMemoryStore()}
}

func (c *captureStore) SetSession(key, workflow string, data []byte, ttl time.Duration) error {
	c.lastTTL = ttl
	return c.Store.SetSession(key, workflow, data, ttl)
}

// failingStore simulates an unreachable session store.
type failingStore struct{}

func (failingStore) GetSession(key, workflow string) ([]byte, error) {
	return nil, fmt.Errorf("store unavailable")
}

func (failingStore) SetSession(key, workflow string, data []byte, ttl time.Duration) error {
	return fmt.Errorf("store unavailable")
}

func (failingStore) DeleteSession(key, workflow string) error {
	return fmt.Errorf("store unavailable")
}

func (failingStore) DeleteExpired() (int64, error) {
	return 0, fmt.Errorf("store unavailable")
}

func (failingStore) Close() error { return nil }

// errSchedulerDown simulates the external executor rejecting a submission.
var errSchedulerDown = fmt.Errorf("scheduler down")

// fakeScheduler records submitted deliveries.
type fakeScheduler struct {
	deliveries []models.Delivery
	err        error
}

func (f *fakeScheduler) Schedule(d models.Delivery) error {
	if f.err != nil {
		return f.err
	}
	f.deliveries = append(f.deliveries, d)
	return nil
}
