package model

import "time"

type DiscountStatus string

const (
	DiscountPending  DiscountStatus = "pending"
	DiscountApproved DiscountStatus = "approved"
	DiscountRejected DiscountStatus = "rejected"
	DiscountModified DiscountStatus = "modified"
)

func (s DiscountStatus) IsValid() bool {
	switch s {
	case DiscountPending, DiscountApproved, DiscountRejected, DiscountModified:
		return true
	}
	return false
}

// Discount is a request to reduce a booking's price. Only pending requests may
// be reviewed; approve/reject/modify record the reviewer and are final.
type Discount struct {
	ID          string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID   string         `json:"booking_id" bson:"booking_id" validate:"required,mongodb"`
	RequestedBy string         `json:"requested_by" bson:"requested_by" validate:"required,min=2,max=100"`
	Amount      float64        `json:"amount" bson:"amount" validate:"required,gt=0"`
	Reason      string         `json:"reason" bson:"reason" validate:"required,min=3,max=500"`
	Status      DiscountStatus `json:"status" bson:"status" validate:"omitempty,oneof=pending approved rejected modified"`
	ReviewedBy  string         `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// DiscountReview carries the reviewer's decision payload. Amount is only
// honored for the modify action.
type DiscountReview struct {
	ReviewedBy string  `json:"reviewed_by" validate:"required,min=2,max=100"`
	Amount     float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Note       string  `json:"note,omitempty" validate:"omitempty,max=500"`
}
