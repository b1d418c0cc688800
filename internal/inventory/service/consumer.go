package service

import (
	"context"
	"fmt"

	"bukid/pkg/kafka"
	"bukid/pkg/logger"
)

// NewBookingEventsHandler returns the Kafka handler that keeps reservation
// booking-status snapshots in sync with the bookings service.
func NewBookingEventsHandler(svc InventoryService, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		switch msg.GetEventType() {
		case kafka.EventBookingStatusChanged:
			var event kafka.BookingStatusChangedEvent
			if err := msg.DecodeValue(&event); err != nil {
				return fmt.Errorf("%w: booking.status_changed payload: %v", kafka.ErrInvalidMessage, err)
			}
			return svc.SyncBookingStatus(ctx, event.BookingID, event.To)

		default:
			log.Debug("Ignoring booking event", "event_type", msg.GetEventType(), "key", msg.Key)
			return nil
		}
	}
}
