package entity

import (
	"gorm.io/gorm"
)

// StaffScheduleOverride replaces the weekly schedule for one date.
// Null start/end = day off that date.
type StaffScheduleOverride struct {
	gorm.Model
	StaffID   uint    `gorm:"index:idx_staff_override_date" json:"staffId"`
	Date      string  `gorm:"size:10;index:idx_staff_override_date" json:"date"` // "2006-01-02"
	StartTime *string `gorm:"size:5" json:"startTime,omitempty"`
	EndTime   *string `gorm:"size:5" json:"endTime,omitempty"`
	Note      string  `json:"note"`
}
