package entity

import (
	"gorm.io/gorm"
)

// Closure kinds.
const (
	ClosureHoliday     = "HOLIDAY"      // one-off closed day, optionally time-ranged
	ClosureSpecialOpen = "SPECIAL_OPEN" // reopens an otherwise-closed weekday
)

// Closure removes or restores bookability for one date.
// A HOLIDAY with no time range closes the whole day and wins over everything.
// A SPECIAL_OPEN only has effect on a date closed by the weekly closed weekday.
type Closure struct {
	gorm.Model
	Date      string  `gorm:"size:10;index;not null" json:"date"` // "2006-01-02"
	Kind      string  `gorm:"size:12;not null;default:HOLIDAY" json:"kind"`
	StartTime *string `gorm:"size:5" json:"startTime,omitempty"`
	EndTime   *string `gorm:"size:5" json:"endTime,omitempty"`
	Note      string  `json:"note"`
}
