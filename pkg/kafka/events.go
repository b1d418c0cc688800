package kafka

import (
	"time"

	"bukid/pkg/model"
)

// Topics and event types shared between the bookings producer and its
// consumers (notifications, inventory).
const (
	TopicBookingEvents    = "bookings.events"
	TopicBookingEventsDLQ = "bookings.events.dlq"

	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"

	SchemaVersion = "1"
)

type BookingCreatedEvent struct {
	BookingID     string    `json:"booking_id"`
	EventName     string    `json:"event_name"`
	PavilionID    string    `json:"pavilion_id"`
	ClientName    string    `json:"client_name"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	OriginalPrice float64   `json:"original_price"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingStatusChangedEvent struct {
	BookingID string              `json:"booking_id"`
	From      model.BookingStatus `json:"from"`
	To        model.BookingStatus `json:"to"`
	Balance   float64             `json:"balance"`
	ChangedAt time.Time           `json:"changed_at"`
}

// NewBookingCreatedMessage builds the canonical message for a created
// booking, keyed by booking id.
func NewBookingCreatedMessage(source string, event BookingCreatedEvent) Message {
	return NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(EventBookingCreated).
		WithSchemaVersion(SchemaVersion).
		WithSource(source).
		Build()
}

func NewBookingStatusChangedMessage(source string, event BookingStatusChangedEvent) Message {
	return NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(EventBookingStatusChanged).
		WithSchemaVersion(SchemaVersion).
		WithSource(source).
		Build()
}
