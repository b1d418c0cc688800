package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bukid/pkg/model"
)

func booking(start, end time.Time, price, balance float64, st model.BookingStatus) *model.Booking {
	return &model.Booking{
		StartAt:       start,
		EndAt:         end,
		OriginalPrice: price,
		Balance:       balance,
		Status:        st,
	}
}

func TestCalculate_TerminalStatusesAreAbsorbing(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	for _, terminal := range []model.BookingStatus{model.StatusCancelled, model.StatusArchived} {
		// Past, in-progress and future windows, paid and unpaid.
		cases := []*model.Booking{
			booking(past, past.Add(5*time.Hour), 1000, 1000, terminal),
			booking(past, past.Add(5*time.Hour), 1000, 0, terminal),
			booking(now.Add(-time.Hour), now.Add(time.Hour), 1000, 500, terminal),
			booking(future, future.Add(5*time.Hour), 1000, 0, terminal),
		}
		for _, b := range cases {
			assert.Equal(t, terminal, Calculate(b, now))
		}
	}
}

func TestCalculate_PastEvent(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -3)
	end := start.Add(6 * time.Hour)

	assert.Equal(t, model.StatusUnpaid, Calculate(booking(start, end, 50000, 20000, model.StatusConfirmed), now))
	assert.Equal(t, model.StatusCompleted, Calculate(booking(start, end, 50000, 0, model.StatusConfirmed), now))
}

func TestCalculate_EndBoundaryCountsAsPast(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	b := booking(now.Add(-4*time.Hour), now, 50000, 0, model.StatusInProgress)

	assert.Equal(t, model.StatusCompleted, Calculate(b, now))
}

func TestCalculate_InProgressIgnoresBalance(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-2 * time.Hour)
	end := now.Add(4 * time.Hour)

	assert.Equal(t, model.StatusInProgress, Calculate(booking(start, end, 50000, 50000, model.StatusPending), now))
	assert.Equal(t, model.StatusInProgress, Calculate(booking(start, end, 50000, 0, model.StatusConfirmed), now))
}

func TestCalculate_StartBoundaryIsInProgress(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	b := booking(now, now.Add(4*time.Hour), 50000, 50000, model.StatusPending)

	assert.Equal(t, model.StatusInProgress, Calculate(b, now))
}

func TestCalculate_FutureEvent(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, 10)
	end := start.Add(6 * time.Hour)

	assert.Equal(t, model.StatusPending, Calculate(booking(start, end, 50000, 50000, model.StatusPending), now))
	assert.Equal(t, model.StatusConfirmed, Calculate(booking(start, end, 50000, 25000, model.StatusPending), now))
	assert.Equal(t, model.StatusConfirmed, Calculate(booking(start, end, 50000, 0, model.StatusPending), now))
}

func TestCalculate_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	b := booking(now.AddDate(0, 0, 5), now.AddDate(0, 0, 5).Add(6*time.Hour), 50000, 30000, model.StatusPending)

	first := Calculate(b, now)
	b.Status = first
	assert.Equal(t, first, Calculate(b, now))
}

func TestDaysUntil(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	assert.NoError(t, err)

	// 23:30 Manila on Mar 14; an event the next Manila morning is 1 day out
	// even though less than 12 hours separate the instants.
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, manila)
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, manila)
	assert.Equal(t, 1, DaysUntil(now, start, manila))

	sameDay := time.Date(2026, 3, 14, 23, 59, 0, 0, manila)
	assert.Equal(t, 0, DaysUntil(now, sameDay, manila))

	started := time.Date(2026, 3, 12, 9, 0, 0, 0, manila)
	assert.Equal(t, -2, DaysUntil(now, started, manila))

	weekOut := time.Date(2026, 3, 21, 18, 0, 0, 0, manila)
	assert.Equal(t, 7, DaysUntil(now, weekOut, manila))
}

func TestDaysUntil_UTCInstantsConvertToBusinessDay(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	assert.NoError(t, err)

	// 17:00 UTC on Mar 14 is already 01:00 Mar 15 in Manila.
	now := time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 15, 1, 0, 0, 0, manila)
	assert.Equal(t, 0, DaysUntil(now, start, manila))
}
