package model

import "time"

// Pavilion is a bookable event venue on the farm grounds.
type Pavilion struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=1000"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=5000"`
	BaseRate    float64   `json:"base_rate" bson:"base_rate" validate:"required,gt=0"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type PavilionUpdate struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,min=1,max=5000"`
	BaseRate    *float64 `json:"base_rate,omitempty" validate:"omitempty,gt=0"`
	Active      *bool    `json:"active,omitempty"`
}

// Room is a lodging unit attached to a pavilion.
type Room struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PavilionID string    `json:"pavilion_id" bson:"pavilion_id" validate:"required,mongodb"`
	Name       string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Capacity   int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=50"`
	Rate       float64   `json:"rate" bson:"rate" validate:"required,gt=0"`
	Status     string    `json:"status" bson:"status" validate:"omitempty,oneof=available occupied maintenance"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type RoomUpdate struct {
	Name     string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Capacity *int     `json:"capacity,omitempty" validate:"omitempty,min=1,max=50"`
	Rate     *float64 `json:"rate,omitempty" validate:"omitempty,gt=0"`
	Status   string   `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
}
