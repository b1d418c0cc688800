package service

import (
	"context"
	"time"
)

// Worker drives the checker on a fixed interval. It scans once immediately
// on start so a restart never delays overdue alerts by a full interval.
type Worker struct {
	checker  *Checker
	interval time.Duration
}

func NewWorker(checker *Checker, interval time.Duration) *Worker {
	return &Worker{
		checker:  checker,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. An in-flight scan finishes before Run
// returns; the scan itself observes ctx through its database calls.
func (w *Worker) Run(ctx context.Context) {
	w.checker.cfg.Log.Info("Notification worker started", "interval", w.interval.String())

	w.checker.Scan(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.checker.cfg.Log.Info("Notification worker stopped")
			return
		case <-ticker.C:
			w.checker.Scan(ctx)
		}
	}
}
