package model

import "time"

type Employee struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Role      string    `json:"role" bson:"role" validate:"required,oneof=manager cook server driver maintenance coordinator"`
	Phone     string    `json:"phone" bson:"phone" validate:"omitempty,e164"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	DailyRate float64   `json:"daily_rate" bson:"daily_rate" validate:"required,gt=0"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type EmployeeUpdate struct {
	Name      string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Role      string   `json:"role,omitempty" validate:"omitempty,oneof=manager cook server driver maintenance coordinator"`
	Phone     string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Email     string   `json:"email,omitempty" validate:"omitempty,email"`
	DailyRate *float64 `json:"daily_rate,omitempty" validate:"omitempty,gt=0"`
	Active    *bool    `json:"active,omitempty"`
}
