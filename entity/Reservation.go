package entity

import (
	"gorm.io/gorm"
)

// Reservation statuses. Never hard-deleted by normal flow; only the
// status moves.
const (
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
	ReservationNoShow    = "NO_SHOW"
)

type Reservation struct {
	gorm.Model
	Code        string `gorm:"size:36;uniqueIndex;not null" json:"code"`
	Date        string `gorm:"size:10;index;not null" json:"date"` // "2006-01-02"
	StartTime   string `gorm:"size:5;not null" json:"startTime"`
	EndTime     string `gorm:"size:5;not null" json:"endTime"`
	DurationMin int    `json:"durationMin"`
	Status      string `gorm:"size:10;index;not null;default:CONFIRMED" json:"status"`
	Note        string `json:"note"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"` // preload on detail only

	StaffID *uint  `gorm:"index" json:"staffId,omitempty"`
	Staff   *Staff `json:"-"`

	CouponID *uint   `json:"couponId,omitempty"`
	Coupon   *Coupon `json:"-"`
	Discount int64   `json:"discount"`

	Items []ReservationMenu `json:"-"`
	Sale  *Sale             `gorm:"foreignKey:ReservationID" json:"-"`
}
