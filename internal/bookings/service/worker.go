package service

import (
	"context"
	"time"

	"bukid/pkg/logger"
)

// RefreshWorker drives the batch status refresh on a fixed interval so
// bookings cross into in_progress, completed and unpaid without anyone
// hitting the refresh endpoint.
type RefreshWorker struct {
	service  BookingService
	interval time.Duration
	log      *logger.Logger
}

func NewRefreshWorker(service BookingService, interval time.Duration, log *logger.Logger) *RefreshWorker {
	return &RefreshWorker{
		service:  service,
		interval: interval,
		log:      log,
	}
}

// Run blocks until ctx is cancelled. It refreshes once immediately so a
// restart picks up transitions that came due while the service was down.
func (w *RefreshWorker) Run(ctx context.Context) {
	w.log.Info("Status refresh worker started", "interval", w.interval.String())

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Status refresh worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	changes, err := w.service.RefreshStatuses(ctx)
	if err != nil {
		w.log.Error("Scheduled status refresh failed", "error", err)
		return
	}
	if len(changes) > 0 {
		w.log.Info("Scheduled status refresh applied transitions", "count", len(changes))
	}
}
