package entity

import (
	"gorm.io/gorm"
)

type MenuCategory struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`

	Menus []Menu `json:"-"`
}
