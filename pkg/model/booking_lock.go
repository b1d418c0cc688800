package model

import "time"

// BookingLock is an advisory lock keyed on (pavilion, event day). It prevents
// two concurrent creates from passing the overlap check for the same pavilion
// before either has committed.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
