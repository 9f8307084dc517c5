package entity

import (
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Detail      string `json:"detail"`
	Price       int64  `json:"price"`       // yen
	DurationMin int    `json:"durationMin"` // service time in minutes
	Active      bool   `gorm:"default:true" json:"active"`

	MenuCategoryID uint         `json:"menuCategoryId"`
	MenuCategory   MenuCategory `json:"-"` // preload on detail only

	ReservationMenus []ReservationMenu `json:"-"`
}
