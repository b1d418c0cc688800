package service

import (
	"context"
	"fmt"

	"bukid/pkg/kafka"
	"bukid/pkg/logger"
)

// NewBookingEventsHandler returns the Kafka handler that turns booking
// events into bell notifications.
func NewBookingEventsHandler(checker *Checker, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		switch msg.GetEventType() {
		case kafka.EventBookingCreated:
			var event kafka.BookingCreatedEvent
			if err := msg.DecodeValue(&event); err != nil {
				return fmt.Errorf("%w: booking.created payload: %v", kafka.ErrInvalidMessage, err)
			}
			return checker.HandleBookingCreated(ctx, event)

		default:
			// Other booking events carry nothing the bell cares about.
			log.Debug("Ignoring booking event", "event_type", msg.GetEventType(), "key", msg.Key)
			return nil
		}
	}
}
