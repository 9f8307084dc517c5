package services

import (
	"errors"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"gorm.io/gorm"
)

// CouponLineItem lets the validator narrow the discount to matching
// items when the coupon carries a menu/category restriction.
type CouponLineItem struct {
	MenuID     uint  `json:"menuId"`
	CategoryID uint  `json:"categoryId"`
	Price      int64 `json:"price"`
}

// CouponContext carries the order attributes a coupon is checked against.
type CouponContext struct {
	Subtotal    int64
	CustomerID  *uint
	MenuIDs     []uint
	CategoryIDs []uint
	Weekday     *time.Weekday // nil = derive from Now
	TimeOfDay   string        // "HH:MM"; "" = derive from Now
	Items       []CouponLineItem
	Now         time.Time
}

// CouponResult is the outcome of a validation. A failed check is an
// ordinary result with a reason, never a Go error.
type CouponResult struct {
	Valid        bool   `json:"valid"`
	Reason       string `json:"reason,omitempty"`
	Code         string `json:"code,omitempty"`
	Detail       string `json:"detail,omitempty"`
	DiscountType string `json:"discountType,omitempty"`
	Value        int64  `json:"value,omitempty"`
	Discount     int64  `json:"discount,omitempty"`
	CouponID     uint   `json:"couponId,omitempty"`
}

type couponCounts struct {
	globalUses    int64
	customerUses  int64
	customerSales int64
	customerKnown bool
}

type CouponService struct {
	Coupons *repository.CouponRepository
	Sales   *repository.SaleRepository

	now func() time.Time
}

func NewCouponService(coupons *repository.CouponRepository, sales *repository.SaleRepository) *CouponService {
	return &CouponService{Coupons: coupons, Sales: sales, now: time.Now}
}

// Validate runs the full check chain for a code. Store failures are the
// only errors; every policy outcome lands in the result.
func (s *CouponService) Validate(code string, ctx CouponContext) (*CouponResult, error) {
	cp, err := s.Coupons.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &CouponResult{Valid: false, Reason: "coupon not found"}, nil
	}
	if err != nil {
		return nil, err
	}

	counts := couponCounts{}
	counts.globalUses, err = s.Coupons.CountUsages(cp.ID)
	if err != nil {
		return nil, err
	}
	if ctx.CustomerID != nil {
		counts.customerKnown = true
		counts.customerUses, err = s.Coupons.CountUsagesForUser(cp.ID, *ctx.CustomerID)
		if err != nil {
			return nil, err
		}
		counts.customerSales, err = s.Sales.CountCompletedForUser(*ctx.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	if ctx.Now.IsZero() {
		ctx.Now = s.now()
	}
	out := evaluateCoupon(cp, ctx, counts)
	return &out, nil
}

// evaluateCoupon applies the checks in a fixed order; the first failing
// check decides the user-facing reason.
func evaluateCoupon(cp *entity.Coupon, ctx CouponContext, counts couponCounts) CouponResult {
	fail := func(reason string) CouponResult {
		return CouponResult{Valid: false, Reason: reason}
	}

	if !cp.Active {
		return fail("coupon is not active")
	}
	if cp.ValidFrom != nil && ctx.Now.Before(*cp.ValidFrom) {
		return fail("coupon is not valid yet")
	}
	if cp.ValidUntil != nil && ctx.Now.After(*cp.ValidUntil) {
		return fail("coupon has expired")
	}
	if cp.UsageLimit != nil && counts.globalUses >= int64(*cp.UsageLimit) {
		return fail("coupon usage limit reached")
	}
	if cp.UsageLimitPerCustomer != nil && counts.customerKnown &&
		counts.customerUses >= int64(*cp.UsageLimitPerCustomer) {
		return fail("coupon already used the maximum number of times")
	}
	if cp.CustomerType == entity.CouponCustomerFirstTime {
		if !counts.customerKnown || counts.customerSales > 0 {
			return fail("coupon is for first-time customers only")
		}
	}
	if cp.CustomerType == entity.CouponCustomerReturning {
		if !counts.customerKnown || counts.customerSales == 0 {
			return fail("coupon is for returning customers only")
		}
	}
	if cp.MinimumAmount != nil && ctx.Subtotal < *cp.MinimumAmount {
		return fail("subtotal is below the coupon minimum")
	}

	restricted := len(cp.Menus) > 0 || len(cp.Categories) > 0
	if restricted && !matchesRestriction(cp, ctx.MenuIDs, ctx.CategoryIDs) {
		return fail("coupon does not apply to the selected menus")
	}

	if cp.Weekdays != "" {
		wd := ctx.Now.Weekday()
		if ctx.Weekday != nil {
			wd = *ctx.Weekday
		}
		if !weekdayAllowed(cp.Weekdays, wd) {
			return fail("coupon is not valid on this day of week")
		}
	}

	if cp.TimeStart != nil && cp.TimeEnd != nil {
		tod := ctx.TimeOfDay
		if tod == "" {
			tod = utils.FormatHHMM(utils.MinutesOfDay(ctx.Now))
		}
		// Zero-padded HH:MM sorts correctly, so string compare is exact.
		if tod < *cp.TimeStart || tod > *cp.TimeEnd {
			return fail("coupon is not valid at this time of day")
		}
	}

	discount := computeDiscount(cp, ctx, restricted)
	return CouponResult{
		Valid:        true,
		Code:         cp.Code,
		Detail:       cp.Detail,
		DiscountType: cp.DiscountType,
		Value:        cp.Value,
		Discount:     discount,
		CouponID:     cp.ID,
	}
}

// matchesRestriction: OR across the two lists — any requested menu in
// the menu list, or any requested category in the category list.
func matchesRestriction(cp *entity.Coupon, menuIDs, categoryIDs []uint) bool {
	for _, m := range cp.Menus {
		for _, id := range menuIDs {
			if id == m.ID {
				return true
			}
		}
	}
	for _, c := range cp.Categories {
		for _, id := range categoryIDs {
			if id == c.ID {
				return true
			}
		}
	}
	return false
}

// computeDiscount narrows the base to matching line items when a
// restriction applies and a breakdown was supplied; the same OR match
// per item (broadest match wins).
func computeDiscount(cp *entity.Coupon, ctx CouponContext, restricted bool) int64 {
	base := ctx.Subtotal
	if restricted && len(ctx.Items) > 0 {
		base = 0
		for _, it := range ctx.Items {
			if lineItemMatches(cp, it) {
				base += it.Price
			}
		}
	}
	switch cp.DiscountType {
	case entity.DiscountPercentage:
		return base * cp.Value / 100
	case entity.DiscountFixed:
		if cp.Value > base {
			return base
		}
		return cp.Value
	default:
		return 0
	}
}

func lineItemMatches(cp *entity.Coupon, it CouponLineItem) bool {
	for _, m := range cp.Menus {
		if it.MenuID == m.ID {
			return true
		}
	}
	for _, c := range cp.Categories {
		if it.CategoryID == c.ID {
			return true
		}
	}
	return false
}

func weekdayAllowed(csv string, wd time.Weekday) bool {
	allowed := utils.ParseWeekdayCSV(csv)
	for _, w := range allowed {
		if w == wd {
			return true
		}
	}
	return false
}

// ---- admin management ----

var ErrCouponInvalid = errors.New("invalid coupon definition")

func (s *CouponService) List() ([]entity.Coupon, error) {
	return s.Coupons.ListAll()
}

func (s *CouponService) Get(id uint) (*entity.Coupon, error) {
	return s.Coupons.FindByID(id)
}

func (s *CouponService) Create(cp *entity.Coupon) error {
	if err := checkCoupon(cp); err != nil {
		return err
	}
	return s.Coupons.Create(cp)
}

func (s *CouponService) Update(cp *entity.Coupon) error {
	if err := checkCoupon(cp); err != nil {
		return err
	}
	return s.Coupons.Update(cp)
}

func checkCoupon(cp *entity.Coupon) error {
	if cp.Code == "" || cp.Value <= 0 {
		return ErrCouponInvalid
	}
	switch cp.DiscountType {
	case entity.DiscountPercentage:
		if cp.Value > 100 {
			return ErrCouponInvalid
		}
	case entity.DiscountFixed:
	default:
		return ErrCouponInvalid
	}
	switch cp.CustomerType {
	case entity.CouponCustomerAll, entity.CouponCustomerFirstTime, entity.CouponCustomerReturning:
	default:
		return ErrCouponInvalid
	}
	if (cp.TimeStart == nil) != (cp.TimeEnd == nil) {
		return ErrCouponInvalid
	}
	if cp.TimeStart != nil {
		if _, err := utils.ParseHHMM(*cp.TimeStart); err != nil {
			return ErrCouponInvalid
		}
		if _, err := utils.ParseHHMM(*cp.TimeEnd); err != nil {
			return ErrCouponInvalid
		}
	}
	return nil
}
