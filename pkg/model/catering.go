package model

import "time"

// Package is a catering package priced per head.
type Package struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Category     string    `json:"category" bson:"category" validate:"required,oneof=wedding debut birthday corporate standard"`
	PricePerHead float64   `json:"price_per_head" bson:"price_per_head" validate:"required,gt=0"`
	Inclusions   []string  `json:"inclusions,omitempty" bson:"inclusions,omitempty" validate:"omitempty,dive,min=1,max=200"`
	DishIDs      []string  `json:"dish_ids,omitempty" bson:"dish_ids,omitempty" validate:"omitempty,dive,mongodb"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type PackageUpdate struct {
	Name         string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Category     string    `json:"category,omitempty" validate:"omitempty,oneof=wedding debut birthday corporate standard"`
	PricePerHead *float64  `json:"price_per_head,omitempty" validate:"omitempty,gt=0"`
	Inclusions   *[]string `json:"inclusions,omitempty" validate:"omitempty,dive,min=1,max=200"`
	DishIDs      *[]string `json:"dish_ids,omitempty" validate:"omitempty,dive,mongodb"`
	Active       *bool     `json:"active,omitempty"`
}

type Dish struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Category  string    `json:"category" bson:"category" validate:"required,oneof=appetizer soup main dessert beverage"`
	Price     float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Allergens []string  `json:"allergens,omitempty" bson:"allergens,omitempty" validate:"omitempty,dive,min=1,max=50"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type DishUpdate struct {
	Name      string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Category  string    `json:"category,omitempty" validate:"omitempty,oneof=appetizer soup main dessert beverage"`
	Price     *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Allergens *[]string `json:"allergens,omitempty" validate:"omitempty,dive,min=1,max=50"`
}
