package entity

import (
	"time"

	"gorm.io/gorm"
)

// Sale is an immutable point-of-sale record, written when a reservation
// is completed at the register or for a walk-in purchase.
type Sale struct {
	gorm.Model
	ReservationID *uint `gorm:"uniqueIndex" json:"reservationId,omitempty"`
	UserID        *uint `gorm:"index" json:"userId,omitempty"`

	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`

	PaymentMethod string    `gorm:"size:20" json:"paymentMethod"`
	SoldAt        time.Time `gorm:"index" json:"soldAt"`

	Items []SaleItem `json:"-"`
}
