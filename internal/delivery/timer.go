// Package delivery implements the deferred delivery scheduler.
//
// Submission is fire-and-forget: once a delivery is accepted the caller holds
// no handle to it and cannot retract it. Cancelling a workflow session after
// its delivery was submitted therefore does not stop the delivery; the
// payload was captured at submission time. Delivery is best-effort: a send
// failure at fire time is logged, not retried.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ck19910321/LineBot/internal/models"
)

// sendTimeout bounds one delivery attempt at fire time.
const sendTimeout = 30 * time.Second

// Sender pushes a message body to a destination.
type Sender interface {
	PushText(ctx context.Context, to, body string) error
}

// TimerScheduler fires deliveries with in-process one-shot timers.
type TimerScheduler struct {
	sender Sender

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewTimerScheduler creates a scheduler delivering through sender.
func NewTimerScheduler(sender Sender) *TimerScheduler {
	return &TimerScheduler{
		sender: sender,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule accepts a delivery and returns immediately. A fire time already in
// the past fires right away. Submission fails only when the scheduler has
// been stopped.
func (s *TimerScheduler) Schedule(d models.Delivery) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return fmt.Errorf("delivery scheduler is stopped")
	}
	id := uuid.NewString()
	delay := time.Until(d.FireAt)
	if delay < 0 {
		delay = 0
	}
	s.timers[id] = time.AfterFunc(delay, func() {
		s.fire(id, d)
	})
	s.mu.Unlock()

	slog.Debug("TimerScheduler delivery accepted", "id", id, "to", d.To, "fire_at", d.FireAt)
	return nil
}

func (s *TimerScheduler) fire(id string, d models.Delivery) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := s.sender.PushText(ctx, d.To, d.Body); err != nil {
		slog.Error("TimerScheduler delivery failed", "error", err, "id", id, "to", d.To)
		return
	}
	slog.Info("TimerScheduler delivery sent", "id", id, "to", d.To)
}

// Active returns the number of pending deliveries.
func (s *TimerScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels all pending deliveries and rejects further submissions.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	slog.Info("TimerScheduler stopped")
}
