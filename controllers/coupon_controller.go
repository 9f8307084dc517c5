package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/services"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CouponController struct {
	Coupons    *services.CouponService
	CouponRepo *repository.CouponRepository
	MenuRepo   *repository.MenuRepository
}

func NewCouponController(coupons *services.CouponService, couponRepo *repository.CouponRepository, menuRepo *repository.MenuRepository) *CouponController {
	return &CouponController{Coupons: coupons, CouponRepo: couponRepo, MenuRepo: menuRepo}
}

type CouponCheckRequest struct {
	Code     string                    `json:"code" binding:"required"`
	Subtotal int64                     `json:"subtotal" binding:"required"`
	MenuIDs  []uint                    `json:"menuIds"`
	Date     string                    `json:"date"`      // optional; defaults to today
	Time     string                    `json:"time"`      // optional "HH:MM"
	Items    []services.CouponLineItem `json:"items"`
}

// POST /coupons/check — pre-checks a code for the logged-in customer.
// A failed check is a 200 with valid=false; only store trouble is a 5xx.
func (cc *CouponController) Check(c *gin.Context) {
	var req CouponCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	userID := utils.CurrentUserID(c)
	ctx := services.CouponContext{
		Subtotal:   req.Subtotal,
		CustomerID: &userID,
		MenuIDs:    req.MenuIDs,
		TimeOfDay:  req.Time,
		Items:      req.Items,
	}
	if req.Date != "" {
		day, err := utils.DateAtNoon(req.Date)
		if err != nil {
			resp.BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		wd := day.Weekday()
		ctx.Weekday = &wd
	}
	if len(req.MenuIDs) > 0 {
		menus, err := cc.MenuRepo.FindActiveByIDs(req.MenuIDs)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		for _, m := range menus {
			ctx.CategoryIDs = append(ctx.CategoryIDs, m.MenuCategoryID)
		}
	}

	result, err := cc.Coupons.Validate(req.Code, ctx)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, result)
}

// ---- admin ----

type CouponRequest struct {
	Code                  string  `json:"code" binding:"required"`
	Detail                string  `json:"detail"`
	DiscountType          string  `json:"discountType" binding:"required"`
	Value                 int64   `json:"value" binding:"required"`
	ValidFrom             *string `json:"validFrom,omitempty"`  // RFC3339
	ValidUntil            *string `json:"validUntil,omitempty"`
	UsageLimit            *int    `json:"usageLimit,omitempty"`
	UsageLimitPerCustomer *int    `json:"usageLimitPerCustomer,omitempty"`
	MinimumAmount         *int64  `json:"minimumAmount,omitempty"`
	CustomerType          string  `json:"customerType"`
	Weekdays              string  `json:"weekdays"`
	TimeStart             *string `json:"timeStart,omitempty"`
	TimeEnd               *string `json:"timeEnd,omitempty"`
	Active                *bool   `json:"active,omitempty"`
	MenuIDs               []uint  `json:"menuIds"`
	CategoryIDs           []uint  `json:"categoryIds"`
}

func (req *CouponRequest) apply(cp *entity.Coupon) error {
	cp.Code = req.Code
	cp.Detail = req.Detail
	cp.DiscountType = req.DiscountType
	cp.Value = req.Value
	cp.UsageLimit = req.UsageLimit
	cp.UsageLimitPerCustomer = req.UsageLimitPerCustomer
	cp.MinimumAmount = req.MinimumAmount
	cp.Weekdays = req.Weekdays
	cp.TimeStart = req.TimeStart
	cp.TimeEnd = req.TimeEnd
	cp.CustomerType = req.CustomerType
	if cp.CustomerType == "" {
		cp.CustomerType = entity.CouponCustomerAll
	}
	cp.Active = true
	if req.Active != nil {
		cp.Active = *req.Active
	}
	for _, raw := range []struct {
		in  *string
		out **time.Time
	}{{req.ValidFrom, &cp.ValidFrom}, {req.ValidUntil, &cp.ValidUntil}} {
		if raw.in == nil {
			*raw.out = nil
			continue
		}
		t, err := time.Parse(time.RFC3339, *raw.in)
		if err != nil {
			return errors.New("validity window must be RFC3339")
		}
		*raw.out = &t
	}
	return nil
}

// GET /admin/coupons
func (cc *CouponController) List(c *gin.Context) {
	rows, err := cc.Coupons.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /admin/coupons
func (cc *CouponController) Create(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	var cp entity.Coupon
	if err := req.apply(&cp); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.attachRestrictions(&cp, req.MenuIDs, req.CategoryIDs); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.Coupons.Create(&cp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resp.Conflict(c, "coupon code already exists")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, cp)
}

// PATCH /admin/coupons/:id
func (cc *CouponController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	cp, err := cc.Coupons.Get(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "coupon not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := req.apply(cp); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.attachRestrictions(cp, req.MenuIDs, req.CategoryIDs); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.Coupons.Update(cp); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, cp)
}

func (cc *CouponController) attachRestrictions(cp *entity.Coupon, menuIDs, categoryIDs []uint) error {
	cp.Menus = nil
	cp.Categories = nil
	if len(menuIDs) > 0 {
		menus, err := cc.MenuRepo.FindActiveByIDs(menuIDs)
		if err != nil {
			return err
		}
		if len(menus) != len(menuIDs) {
			return errors.New("menu not found")
		}
		cp.Menus = menus
	}
	for _, id := range categoryIDs {
		cat, err := cc.MenuRepo.FindCategoryByID(id)
		if err != nil {
			return errors.New("category not found")
		}
		cp.Categories = append(cp.Categories, *cat)
	}
	return nil
}
