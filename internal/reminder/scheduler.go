package reminder

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler runs the reminder job on a fixed interval in the background.
type Scheduler struct {
	job      *Job
	interval time.Duration
}

// NewScheduler creates a scheduler firing the job every interval.
func NewScheduler(job *Job, interval time.Duration) *Scheduler {
	return &Scheduler{job: job, interval: interval}
}

// Start launches the background loop. The first round fires after one full
// interval, not immediately, so a crash-looping server doesn't spam inboxes.
// Cancelling the context stops the loop.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		slog.Info("Reminder scheduler started", "interval", s.interval)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Reminder scheduler stopped")
				return
			case <-ticker.C:
				if _, err := s.job.Run(ctx); err != nil {
					slog.Error("Reminder round failed", "error", err)
				}
			}
		}
	}()
}
