package entity

import (
	"time"

	"gorm.io/gorm"
)

// Discount types.
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Customer-type restrictions.
const (
	CouponCustomerAll       = "ALL"
	CouponCustomerFirstTime = "FIRST_TIME"
	CouponCustomerReturning = "RETURNING"
)

type Coupon struct {
	gorm.Model
	Code         string `gorm:"size:50;uniqueIndex;not null" json:"code"` // stored upper-cased
	Detail       string `json:"detail"`
	DiscountType string `gorm:"size:10;not null" json:"discountType"`
	Value        int64  `gorm:"not null" json:"value"` // percent or yen

	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`

	UsageLimit            *int   `json:"usageLimit,omitempty"`
	UsageLimitPerCustomer *int   `json:"usageLimitPerCustomer,omitempty"`
	MinimumAmount         *int64 `json:"minimumAmount,omitempty"`

	CustomerType string `gorm:"size:10;not null;default:ALL" json:"customerType"`

	// Restriction sets. Empty = unrestricted. When a menu or category
	// restriction exists, the discount applies only to matched line items.
	Menus      []Menu         `gorm:"many2many:coupon_menus;" json:"-"`
	Categories []MenuCategory `gorm:"many2many:coupon_categories;" json:"-"`

	Weekdays  string  `gorm:"size:20" json:"weekdays"` // CSV of time.Weekday ints, "" = any
	TimeStart *string `gorm:"size:5" json:"timeStart,omitempty"`
	TimeEnd   *string `gorm:"size:5" json:"timeEnd,omitempty"`

	Active bool `gorm:"default:true" json:"active"`

	Usages []CouponUsage `json:"-"`
}
