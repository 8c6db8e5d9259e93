// Package scheduler provides cron-based housekeeping for the bot.
//
// Its main job is the periodic sweep that deletes expired session rows from
// the store; reads already treat expired rows as misses, the sweep just keeps
// the table small.
package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Sweeper removes expired entries and reports how many were removed. The
// session store satisfies this.
type Sweeper interface {
	DeleteExpired() (int64, error)
}

// Scheduler provides cron-based job scheduling.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates and starts a cron scheduler using the standard 5-field
// format with panic recovery.
func NewScheduler() *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	c.Start()
	return &Scheduler{cron: c}
}

// AddJob schedules a task using the provided cron expression. It returns an
// error if the expression is invalid.
func (s *Scheduler) AddJob(expr string, task func()) error {
	_, err := s.cron.AddFunc(expr, task)
	return err
}

// AddSweep schedules the expired-session sweep on the given cron expression.
func (s *Scheduler) AddSweep(expr string, sw Sweeper) error {
	return s.AddJob(expr, func() {
		removed, err := sw.DeleteExpired()
		if err != nil {
			slog.Error("Session sweep failed", "error", err)
			return
		}
		if removed > 0 {
			slog.Info("Session sweep removed expired sessions", "count", removed)
		}
	})
}

// Stop stops the cron scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
