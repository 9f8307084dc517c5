package entity

import (
	"gorm.io/gorm"
)

// Day types for business hours.
const (
	DayTypeWeekday = "weekday"
	DayTypeHoliday = "holiday" // weekends and public holidays
)

type BusinessHour struct {
	gorm.Model
	DayType      string `gorm:"size:10;uniqueIndex;not null" json:"dayType"`
	OpenTime     string `gorm:"size:5;not null" json:"openTime"`  // "HH:MM"
	CloseTime    string `gorm:"size:5;not null" json:"closeTime"` // exclusive
	SlotInterval int    `gorm:"not null" json:"slotInterval"`     // minutes
	LastBooking  string `gorm:"size:5;not null" json:"lastBooking"`
}
