package testutil

import (
	"time"

	"bukid/pkg/model"
)

type BookingBuilder struct {
	booking model.Booking
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)
	return &BookingBuilder{
		booking: model.Booking{
			EventName: "Dela Cruz Wedding Reception",
			Client: model.Client{
				Name:  "Maria Dela Cruz",
				Phone: "+639171234567",
				Email: "maria@example.com",
			},
			PavilionID:    "64b7f8a2c9e77a0012345678",
			StartAt:       start,
			EndAt:         start.Add(6 * time.Hour),
			GuestCount:    150,
			OriginalPrice: 250000,
		},
	}
}

func (b *BookingBuilder) WithEventName(name string) *BookingBuilder {
	b.booking.EventName = name
	return b
}

func (b *BookingBuilder) WithClient(client model.Client) *BookingBuilder {
	b.booking.Client = client
	return b
}

func (b *BookingBuilder) WithPavilion(id string) *BookingBuilder {
	b.booking.PavilionID = id
	return b
}

func (b *BookingBuilder) WithWindow(start, end time.Time) *BookingBuilder {
	b.booking.StartAt = start
	b.booking.EndAt = end
	return b
}

func (b *BookingBuilder) WithGuestCount(count int) *BookingBuilder {
	b.booking.GuestCount = count
	return b
}

func (b *BookingBuilder) WithPrice(price float64) *BookingBuilder {
	b.booking.OriginalPrice = price
	return b
}

func (b *BookingBuilder) WithStatus(status model.BookingStatus) *BookingBuilder {
	b.booking.Status = status
	return b
}

func (b *BookingBuilder) Build() model.Booking {
	return b.booking
}

func (b *BookingBuilder) BuildPtr() *model.Booking {
	booking := b.booking
	return &booking
}

func ValidBooking() model.Booking {
	return NewBookingBuilder().Build()
}

func EmptyBooking() model.Booking {
	return model.Booking{}
}

func InvalidPhoneBooking() model.Booking {
	return NewBookingBuilder().
		WithClient(model.Client{Name: "Maria Dela Cruz", Phone: "invalid-phone"}).
		Build()
}

func PastEventBooking() model.Booking {
	start := time.Now().AddDate(0, -1, 0)
	return NewBookingBuilder().
		WithWindow(start, start.Add(6*time.Hour)).
		Build()
}

func ZeroPriceBooking() model.Booking {
	return NewBookingBuilder().
		WithPrice(0).
		Build()
}
