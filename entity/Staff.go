package entity

import (
	"gorm.io/gorm"
)

type Staff struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Nickname     string `json:"nickname"`
	Profile      string `json:"profile"`
	Active       bool   `gorm:"default:true" json:"active"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`

	Schedules []StaffSchedule         `json:"-"`
	Overrides []StaffScheduleOverride `json:"-"`

	// Empty set = capable of every menu.
	Menus []Menu `gorm:"many2many:staff_menus;" json:"-"`

	Reservations []Reservation `json:"-"`
}
