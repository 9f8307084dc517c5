package entity

import (
	"gorm.io/gorm"
)

// StaffSchedule is one weekly recurring working-hours row.
// Weekday follows time.Weekday (0 = Sunday).
type StaffSchedule struct {
	gorm.Model
	StaffID   uint   `gorm:"index" json:"staffId"`
	Weekday   int    `json:"weekday"`
	StartTime string `gorm:"size:5" json:"startTime"` // "HH:MM"
	EndTime   string `gorm:"size:5" json:"endTime"`
	Active    bool   `gorm:"default:true" json:"active"`
}
