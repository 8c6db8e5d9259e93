package scheduler

import "testing"

type countingSweeper struct {
	calls int
}

func (s *countingSweeper) DeleteExpired() (int64, error) {
	s.calls++
	return 0, nil
}

func TestAddJobInvalidExpr(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()
	if err := s.AddJob("invalid-cron", func() {}); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestAddSweep(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()
	if err := s.AddSweep("*/10 * * * *", &countingSweeper{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := s.AddSweep("not a schedule", &countingSweeper{}); err == nil {
		t.Error("expected error for invalid sweep schedule")
	}
}
