package model

import "time"

// InventoryItem is a physical asset pool (chairs, tables, linens) tracked by
// total count. ReservedOut counts units permanently signed out of circulation.
type InventoryItem struct {
	ID                string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name              string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Category          string    `json:"category" bson:"category" validate:"required,oneof=furniture linen tableware equipment decor"`
	TotalQuantity     int       `json:"total_quantity" bson:"total_quantity" validate:"required,min=0"`
	ReservedOut       int       `json:"reserved_out" bson:"reserved_out" validate:"omitempty,min=0"`
	LowStockThreshold int       `json:"low_stock_threshold" bson:"low_stock_threshold" validate:"omitempty,min=0"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type InventoryItemUpdate struct {
	Name              string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Category          string `json:"category,omitempty" validate:"omitempty,oneof=furniture linen tableware equipment decor"`
	TotalQuantity     *int   `json:"total_quantity,omitempty" validate:"omitempty,min=0"`
	ReservedOut       *int   `json:"reserved_out,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int   `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
}

// InventoryReservation links inventory stock to a booking at a pavilion over a
// date range. BookingStatus is a snapshot kept current from booking events;
// reservations whose booking is cancelled or archived do not count against
// availability.
type InventoryReservation struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ItemID        string        `json:"item_id" bson:"item_id" validate:"required,mongodb"`
	BookingID     string        `json:"booking_id" bson:"booking_id" validate:"required,mongodb"`
	PavilionID    string        `json:"pavilion_id" bson:"pavilion_id" validate:"required,mongodb"`
	EventName     string        `json:"event_name" bson:"event_name" validate:"required,min=2,max=150"`
	Quantity      int           `json:"quantity" bson:"quantity" validate:"required,min=1"`
	StartAt       time.Time     `json:"start_at" bson:"start_at" validate:"required"`
	EndAt         time.Time     `json:"end_at" bson:"end_at" validate:"required,gtefield=StartAt"`
	BookingStatus BookingStatus `json:"booking_status" bson:"booking_status" validate:"omitempty,booking_status"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// AvailabilityReport is the advisory result of an availability check. The
// caller is warned, never blocked.
type AvailabilityReport struct {
	ItemID         string   `json:"item_id"`
	Requested      int      `json:"requested"`
	Available      int      `json:"available"`
	TotalQuantity  int      `json:"total_quantity"`
	OverlappingQty int      `json:"overlapping_qty"`
	Warnings       []string `json:"warnings,omitempty"`
	Conflicts      []string `json:"conflicts,omitempty"`
}
