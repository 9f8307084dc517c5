package controllers

import (
	"errors"
	"strconv"

	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/services"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

// POST /reservations
func (rc *ReservationController) Create(c *gin.Context) {
	var req services.CreateReservationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res, err := rc.Reservations.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		var couponErr *services.CouponRejectedError
		switch {
		case errors.Is(err, services.ErrMenuRequired),
			errors.Is(err, services.ErrInvalidDate):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrMenuNotFound):
			resp.NotFound(c, "menu not found")
		case errors.As(err, &couponErr):
			resp.BadRequest(c, couponErr.Reason)
		case errors.Is(err, services.ErrDayClosed),
			errors.Is(err, services.ErrSlotUnavailable),
			errors.Is(err, services.ErrNoStaffAvailable),
			errors.Is(err, services.ErrStaffNotQualified):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, res)
}

// GET /profile/reservations
func (rc *ReservationController) ListForMe(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := rc.Reservations.ListForUser(utils.CurrentUserID(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /reservations/:id
func (rc *ReservationController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	res, err := rc.Reservations.DetailForUser(utils.CurrentUserID(c), uint(id))
	if errors.Is(err, services.ErrReservationGone) {
		resp.NotFound(c, "reservation not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, res)
}

// PATCH /reservations/:id/cancel
func (rc *ReservationController) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}

	asAdmin := utils.CurrentRole(c) == "admin"
	err = rc.Reservations.Cancel(utils.CurrentUserID(c), uint(id), asAdmin)
	switch {
	case errors.Is(err, services.ErrReservationGone):
		resp.NotFound(c, "reservation not found")
	case errors.Is(err, services.ErrNotCancellable):
		resp.Conflict(c, err.Error())
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, gin.H{"cancelled": true})
	}
}

// ---- admin ----

// GET /admin/reservations?from=&to=&status=
func (rc *ReservationController) ListBetween(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		resp.BadRequest(c, "from and to are required")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}

	rows, err := rc.Reservations.ListBetween(from, to, c.Query("status"), (page-1)*limit, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// PATCH /admin/reservations/:id/no-show
func (rc *ReservationController) MarkNoShow(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	err = rc.Reservations.MarkNoShow(uint(id))
	switch {
	case errors.Is(err, services.ErrReservationGone):
		resp.NotFound(c, "reservation not found")
	case errors.Is(err, services.ErrNotCancellable):
		resp.Conflict(c, "only a confirmed reservation can be marked no-show")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, gin.H{"status": "NO_SHOW"})
	}
}
