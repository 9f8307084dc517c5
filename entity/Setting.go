package entity

import (
	"gorm.io/gorm"
)

// Well-known setting keys.
const (
	SettingClosedWeekdays     = "closed_weekdays"      // CSV of time.Weekday ints
	SettingTaxRate            = "tax_rate"             // percent, e.g. "10"
	SettingBookingHorizonDays = "booking_horizon_days" // today + N days bookable
	SettingDefaultDurationMin = "default_duration_min" // when no menus requested
)

// Setting is one mutable key/value configuration row. Loaded per request,
// never cached in-process, so evaluation stays pure and testable.
type Setting struct {
	gorm.Model
	Key   string `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Value string `gorm:"not null" json:"value"`
}
