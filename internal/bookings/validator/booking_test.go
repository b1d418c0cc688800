package validator

import (
	"testing"
	"time"

	"bukid/pkg/logger"
	"bukid/pkg/model"
)

func testValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	start := time.Date(2026, 10, 17, 16, 0, 0, 0, time.UTC)
	return &model.Booking{
		EventName: "Dela Cruz Wedding Reception",
		Client: model.Client{
			Name:  "Maria Dela Cruz",
			Phone: "+639171234567",
		},
		PavilionID:    "64b7f8a2c9e77a0012345678",
		StartAt:       start,
		EndAt:         start.Add(6 * time.Hour),
		GuestCount:    150,
		OriginalPrice: 250000,
		Balance:       250000,
	}
}

func TestValidateBooking(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantError bool
	}{
		{
			name:      "valid booking",
			mutate:    func(b *model.Booking) {},
			wantError: false,
		},
		{
			name:      "missing event name",
			mutate:    func(b *model.Booking) { b.EventName = "" },
			wantError: true,
		},
		{
			name:      "invalid phone",
			mutate:    func(b *model.Booking) { b.Client.Phone = "not-a-phone" },
			wantError: true,
		},
		{
			name:      "end before start",
			mutate:    func(b *model.Booking) { b.EndAt = b.StartAt.Add(-time.Hour) },
			wantError: true,
		},
		{
			name:      "zero guests",
			mutate:    func(b *model.Booking) { b.GuestCount = 0 },
			wantError: true,
		},
		{
			name:      "malformed pavilion id",
			mutate:    func(b *model.Booking) { b.PavilionID = "not-an-object-id" },
			wantError: true,
		},
		{
			name:      "unknown status",
			mutate:    func(b *model.Booking) { b.Status = model.BookingStatus(42) },
			wantError: true,
		},
		{
			name:      "balance above original price",
			mutate:    func(b *model.Booking) { b.Balance = b.OriginalPrice + 1 },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := v.Validate(b)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateUpdateWindow(t *testing.T) {
	v := testValidator()

	start := time.Date(2026, 10, 17, 16, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	err := v.ValidateUpdate(&model.BookingUpdate{StartAt: &start, EndAt: &end})
	if err == nil {
		t.Error("expected an error when end_at precedes start_at")
	}
}
