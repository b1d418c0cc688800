package model

import "time"

// NotificationType identifies what triggered a notification. The payment and
// new-booking types fire at most once per booking; unpaid reminders repeat on
// a cadence.
type NotificationType string

const (
	NotificationNewBooking     NotificationType = "new_booking"
	NotificationPayment1Week   NotificationType = "payment_1week"
	NotificationPayment3Days   NotificationType = "payment_3days"
	NotificationPayment1Day    NotificationType = "payment_1day"
	NotificationUnpaidReminder NotificationType = "unpaid_reminder"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationNewBooking, NotificationPayment1Week, NotificationPayment3Days,
		NotificationPayment1Day, NotificationUnpaidReminder:
		return true
	}
	return false
}

// AllNotificationTypes lists every known type.
var AllNotificationTypes = []NotificationType{
	NotificationNewBooking,
	NotificationPayment1Week,
	NotificationPayment3Days,
	NotificationPayment1Day,
	NotificationUnpaidReminder,
}

// OneShot reports whether the type may fire at most once per booking.
func (t NotificationType) OneShot() bool {
	return t != NotificationUnpaidReminder
}

type Notification struct {
	ID        string           `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID string           `json:"booking_id" bson:"booking_id" validate:"required,mongodb"`
	Type      NotificationType `json:"type" bson:"type" validate:"required,notification_type"`
	Message   string           `json:"message" bson:"message" validate:"required,min=1,max=500"`
	Read      bool             `json:"read" bson:"read"`
	Triggered bool             `json:"triggered" bson:"triggered"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// NotificationSchedule tracks reminder cadence per booking. History is
// append-only.
type NotificationSchedule struct {
	BookingID            string              `json:"booking_id" bson:"_id" validate:"required,mongodb"`
	LastNotificationSent time.Time           `json:"last_notification_sent" bson:"last_notification_sent"`
	History              []NotificationEntry `json:"history" bson:"history"`
}

type NotificationEntry struct {
	Type   NotificationType `json:"type" bson:"type"`
	SentAt time.Time        `json:"sent_at" bson:"sent_at"`
}
