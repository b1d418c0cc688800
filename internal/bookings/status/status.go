// Package status derives a booking's lifecycle state from its dates and
// balance. The calculation is pure; persistence and event publishing live in
// the bookings service.
package status

import (
	"time"

	"bukid/pkg/model"
)

// Calculate returns the status a booking should hold at the given instant.
//
// Cancelled and Archived are absorbing: once a booking is in either state,
// neither time nor payments move it. For live bookings the event window
// decides the phase and the balance decides the variant within it:
//
//	past event:    Unpaid while money is owed, Completed once settled
//	during event:  InProgress regardless of balance
//	future event:  Pending until the first payment lands, then Confirmed
//
// The function is idempotent for a fixed (booking, now) pair.
func Calculate(b *model.Booking, now time.Time) model.BookingStatus {
	if b.Status.IsTerminal() {
		return b.Status
	}

	if !now.Before(b.EndAt) {
		if b.Balance > 0 {
			return model.StatusUnpaid
		}
		return model.StatusCompleted
	}

	if !now.Before(b.StartAt) {
		return model.StatusInProgress
	}

	if b.Balance == b.OriginalPrice {
		return model.StatusPending
	}
	return model.StatusConfirmed
}

// DaysUntil returns the number of calendar days from now until the booking's
// start date, computed in the business timezone. Same-day events yield 0;
// events already started yield negative values.
func DaysUntil(now, startAt time.Time, loc *time.Location) int {
	nowDay := truncateToDay(now.In(loc))
	startDay := truncateToDay(startAt.In(loc))
	return int(startDay.Sub(nowDay).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
