package entity

import (
	"gorm.io/gorm"
)

// CouponUsage is one redemption, written in the same transaction as the
// reservation it belongs to. The unique index keeps a reservation from
// redeeming the same coupon twice.
type CouponUsage struct {
	gorm.Model
	CouponID      uint   `gorm:"index:uniq_coupon_reservation,unique" json:"couponId"`
	Coupon        Coupon `json:"-"`
	ReservationID uint   `gorm:"index:uniq_coupon_reservation,unique" json:"reservationId"`
	UserID        uint   `gorm:"index" json:"userId"`
}

func (CouponUsage) TableName() string { return "coupon_usages" }
