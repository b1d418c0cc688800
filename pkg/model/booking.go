package model

import (
	"time"
)

// BookingStatus is the lifecycle state of a booking. Values are stable and
// stored as integers.
type BookingStatus int

const (
	StatusPending    BookingStatus = 1
	StatusConfirmed  BookingStatus = 2
	StatusInProgress BookingStatus = 3
	StatusCompleted  BookingStatus = 4
	StatusUnpaid     BookingStatus = 5
	StatusCancelled  BookingStatus = 6
	StatusArchived   BookingStatus = 7
)

func (s BookingStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusUnpaid:
		return "unpaid"
	case StatusCancelled:
		return "cancelled"
	case StatusArchived:
		return "archived"
	}
	return "unknown"
}

// IsTerminal reports whether the status is absorbing: once a booking is
// cancelled or archived, time and payments no longer move it.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusArchived
}

func (s BookingStatus) IsValid() bool {
	return s >= StatusPending && s <= StatusArchived
}

type Client struct {
	Name  string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" bson:"phone" validate:"omitempty,e164"`
	Email string `json:"email" bson:"email" validate:"omitempty,email"`
}

type Booking struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	EventName     string        `json:"event_name" bson:"event_name" validate:"required,min=2,max=150"`
	Client        Client        `json:"client" bson:"client" validate:"required"`
	PavilionID    string        `json:"pavilion_id" bson:"pavilion_id" validate:"required,mongodb"`
	PackageID     string        `json:"package_id,omitempty" bson:"package_id,omitempty" validate:"omitempty,mongodb"`
	StartAt       time.Time     `json:"start_at" bson:"start_at" validate:"required"`
	EndAt         time.Time     `json:"end_at" bson:"end_at" validate:"required,gtfield=StartAt"`
	GuestCount    int           `json:"guest_count" bson:"guest_count" validate:"required,min=1,max=2000"`
	Status        BookingStatus `json:"status" bson:"status" validate:"omitempty,booking_status"`
	OriginalPrice float64       `json:"original_price" bson:"original_price" validate:"required,gt=0"`
	Balance       float64       `json:"balance" bson:"balance" validate:"omitempty,min=0"`
	Notes         string        `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type BookingUpdate struct {
	EventName  string     `json:"event_name,omitempty" validate:"omitempty,min=2,max=150"`
	Client     *Client    `json:"client,omitempty" validate:"omitempty"`
	PavilionID string     `json:"pavilion_id,omitempty" validate:"omitempty,mongodb"`
	PackageID  string     `json:"package_id,omitempty" validate:"omitempty,mongodb"`
	StartAt    *time.Time `json:"start_at,omitempty" validate:"omitempty"`
	EndAt      *time.Time `json:"end_at,omitempty" validate:"omitempty"`
	GuestCount *int       `json:"guest_count,omitempty" validate:"omitempty,min=1,max=2000"`
	Notes      *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Payment records money received against a booking's balance.
type Payment struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method,omitempty" validate:"omitempty,oneof=cash gcash bank_transfer check"`
}

// StatusChange is one entry of the diff produced by a batch status refresh.
type StatusChange struct {
	BookingID string        `json:"booking_id" bson:"booking_id"`
	From      BookingStatus `json:"from" bson:"from"`
	To        BookingStatus `json:"to" bson:"to"`
	ChangedAt time.Time     `json:"changed_at" bson:"changed_at"`
}
