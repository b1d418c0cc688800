package model

// MonthlyRevenue is one month's settled revenue: what was collected
// (original price minus outstanding balance) across bookings starting in
// that month.
type MonthlyRevenue struct {
	Year      int     `json:"year" bson:"year"`
	Month     int     `json:"month" bson:"month"`
	Bookings  int64   `json:"bookings" bson:"bookings"`
	Revenue   float64 `json:"revenue" bson:"revenue"`
	Collected float64 `json:"collected" bson:"collected"`
}

// PavilionBookings counts bookings per pavilion over a window.
type PavilionBookings struct {
	PavilionID string `json:"pavilion_id" bson:"_id"`
	Bookings   int64  `json:"bookings" bson:"bookings"`
}

// StatusBreakdown counts bookings per lifecycle status.
type StatusBreakdown struct {
	Status   BookingStatus `json:"status" bson:"_id"`
	Bookings int64         `json:"bookings" bson:"bookings"`
}
