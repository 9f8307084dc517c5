package services

import (
	"testing"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

func baseCoupon() *entity.Coupon {
	return &entity.Coupon{
		Model:        gorm.Model{ID: 7},
		Code:         "WELCOME20",
		DiscountType: entity.DiscountPercentage,
		Value:        20,
		CustomerType: entity.CouponCustomerAll,
		Active:       true,
	}
}

func orderCtx(subtotal int64) CouponContext {
	return CouponContext{
		Subtotal: subtotal,
		Now:      time.Date(2026, 1, 15, 13, 0, 0, 0, time.Local), // Thursday
	}
}

func TestEvaluateCouponPercentage(t *testing.T) {
	out := evaluateCoupon(baseCoupon(), orderCtx(10000), couponCounts{})
	require.True(t, out.Valid, out.Reason)
	assert.Equal(t, int64(2000), out.Discount)
	assert.Equal(t, "WELCOME20", out.Code)
	assert.Equal(t, uint(7), out.CouponID)
}

func TestEvaluateCouponFixedCappedAtSubtotal(t *testing.T) {
	cp := baseCoupon()
	cp.DiscountType = entity.DiscountFixed
	cp.Value = 5000

	out := evaluateCoupon(cp, orderCtx(3000), couponCounts{})
	require.True(t, out.Valid)
	assert.Equal(t, int64(3000), out.Discount, "never discounts below zero total")

	out = evaluateCoupon(cp, orderCtx(8000), couponCounts{})
	require.True(t, out.Valid)
	assert.Equal(t, int64(5000), out.Discount)
}

func TestEvaluateCouponInactive(t *testing.T) {
	cp := baseCoupon()
	cp.Active = false

	out := evaluateCoupon(cp, orderCtx(10000), couponCounts{})
	assert.False(t, out.Valid)
	assert.Equal(t, "coupon is not active", out.Reason)
}

func TestEvaluateCouponValidityWindow(t *testing.T) {
	cp := baseCoupon()
	cp.ValidFrom = ptr(time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))
	out := evaluateCoupon(cp, orderCtx(10000), couponCounts{})
	assert.Equal(t, "coupon is not valid yet", out.Reason)

	cp = baseCoupon()
	cp.ValidUntil = ptr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local))
	out = evaluateCoupon(cp, orderCtx(10000), couponCounts{})
	assert.Equal(t, "coupon has expired", out.Reason)
}

func TestEvaluateCouponUsageLimits(t *testing.T) {
	cp := baseCoupon()
	cp.UsageLimit = ptr(100)
	out := evaluateCoupon(cp, orderCtx(10000), couponCounts{globalUses: 100})
	assert.Equal(t, "coupon usage limit reached", out.Reason)

	cp = baseCoupon()
	cp.UsageLimitPerCustomer = ptr(1)
	out = evaluateCoupon(cp, orderCtx(10000), couponCounts{customerKnown: true, customerUses: 1})
	assert.Equal(t, "coupon already used the maximum number of times", out.Reason)

	// Guest checkout cannot trip the per-customer limit.
	out = evaluateCoupon(cp, orderCtx(10000), couponCounts{customerUses: 1})
	assert.True(t, out.Valid)
}

func TestEvaluateCouponCustomerType(t *testing.T) {
	cp := baseCoupon()
	cp.CustomerType = entity.CouponCustomerFirstTime

	out := evaluateCoupon(cp, orderCtx(10000), couponCounts{customerKnown: true, customerSales: 0})
	assert.True(t, out.Valid)

	out = evaluateCoupon(cp, orderCtx(10000), couponCounts{customerKnown: true, customerSales: 2})
	assert.Equal(t, "coupon is for first-time customers only", out.Reason)

	out = evaluateCoupon(cp, orderCtx(10000), couponCounts{})
	assert.Equal(t, "coupon is for first-time customers only", out.Reason, "anonymous caller cannot prove first visit")

	cp.CustomerType = entity.CouponCustomerReturning
	out = evaluateCoupon(cp, orderCtx(10000), couponCounts{customerKnown: true, customerSales: 2})
	assert.True(t, out.Valid)

	out = evaluateCoupon(cp, orderCtx(10000), couponCounts{customerKnown: true, customerSales: 0})
	assert.Equal(t, "coupon is for returning customers only", out.Reason)
}

func TestEvaluateCouponMinimumAmount(t *testing.T) {
	cp := baseCoupon()
	cp.MinimumAmount = ptr(int64(5000))

	out := evaluateCoupon(cp, orderCtx(4999), couponCounts{})
	assert.Equal(t, "subtotal is below the coupon minimum", out.Reason)

	out = evaluateCoupon(cp, orderCtx(5000), couponCounts{})
	assert.True(t, out.Valid)
}

func TestEvaluateCouponMenuRestriction(t *testing.T) {
	cp := baseCoupon()
	cp.Menus = []entity.Menu{{Model: gorm.Model{ID: 10}}}
	cp.Categories = []entity.MenuCategory{{Model: gorm.Model{ID: 3}}}

	ctx := orderCtx(10000)
	ctx.MenuIDs = []uint{11}
	ctx.CategoryIDs = []uint{4}
	out := evaluateCoupon(cp, ctx, couponCounts{})
	assert.Equal(t, "coupon does not apply to the selected menus", out.Reason)

	// Menu match or category match is enough.
	ctx.MenuIDs = []uint{10, 11}
	assert.True(t, evaluateCoupon(cp, ctx, couponCounts{}).Valid)

	ctx.MenuIDs = []uint{11}
	ctx.CategoryIDs = []uint{3}
	assert.True(t, evaluateCoupon(cp, ctx, couponCounts{}).Valid)
}

func TestEvaluateCouponRestrictionNarrowsDiscount(t *testing.T) {
	cp := baseCoupon()
	cp.Menus = []entity.Menu{{Model: gorm.Model{ID: 10}}}

	ctx := orderCtx(13000)
	ctx.MenuIDs = []uint{10, 11}
	ctx.Items = []CouponLineItem{
		{MenuID: 10, CategoryID: 1, Price: 8000},
		{MenuID: 11, CategoryID: 2, Price: 5000},
	}

	out := evaluateCoupon(cp, ctx, couponCounts{})
	require.True(t, out.Valid)
	assert.Equal(t, int64(1600), out.Discount, "20% of the matching item only")
}

func TestEvaluateCouponWeekday(t *testing.T) {
	cp := baseCoupon()
	cp.Weekdays = "1,2,3" // Mon-Wed

	out := evaluateCoupon(cp, orderCtx(10000), couponCounts{}) // Thursday
	assert.Equal(t, "coupon is not valid on this day of week", out.Reason)

	ctx := orderCtx(10000)
	ctx.Weekday = ptr(time.Wednesday)
	assert.True(t, evaluateCoupon(cp, ctx, couponCounts{}).Valid)
}

func TestEvaluateCouponTimeOfDay(t *testing.T) {
	cp := baseCoupon()
	cp.TimeStart = ptr("10:00")
	cp.TimeEnd = ptr("15:00")

	ctx := orderCtx(10000)
	ctx.TimeOfDay = "15:00"
	assert.True(t, evaluateCoupon(cp, ctx, couponCounts{}).Valid, "bounds inclusive")

	ctx.TimeOfDay = "15:01"
	out := evaluateCoupon(cp, ctx, couponCounts{})
	assert.Equal(t, "coupon is not valid at this time of day", out.Reason)

	ctx.TimeOfDay = "09:59"
	out = evaluateCoupon(cp, ctx, couponCounts{})
	assert.Equal(t, "coupon is not valid at this time of day", out.Reason)
}

func TestCheckCoupon(t *testing.T) {
	valid := baseCoupon()
	assert.NoError(t, checkCoupon(valid))

	noCode := baseCoupon()
	noCode.Code = ""
	assert.ErrorIs(t, checkCoupon(noCode), ErrCouponInvalid)

	over100 := baseCoupon()
	over100.Value = 120
	assert.ErrorIs(t, checkCoupon(over100), ErrCouponInvalid)

	badType := baseCoupon()
	badType.DiscountType = "BOGO"
	assert.ErrorIs(t, checkCoupon(badType), ErrCouponInvalid)

	halfWindow := baseCoupon()
	halfWindow.TimeStart = ptr("10:00")
	assert.ErrorIs(t, checkCoupon(halfWindow), ErrCouponInvalid)
}
