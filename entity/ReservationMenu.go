package entity

import (
	"gorm.io/gorm"
)

// ReservationMenu is one ordered line item. Price and duration are
// snapshots taken at booking time.
type ReservationMenu struct {
	gorm.Model
	ReservationID uint `gorm:"index" json:"reservationId"`
	MenuID        uint `json:"menuId"`
	Menu          Menu `json:"-"`

	Price       int64 `json:"price"`
	DurationMin int   `json:"durationMin"`
}
