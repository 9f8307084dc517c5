package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/services"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"github.com/gin-gonic/gin"
)

type SalesController struct {
	Sales *services.SalesService
}

func NewSalesController(sales *services.SalesService) *SalesController {
	return &SalesController{Sales: sales}
}

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=CASH CARD QR"`
}

// POST /admin/reservations/:id/checkout
func (sc *SalesController) Checkout(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "CASH"
	}

	sale, err := sc.Sales.CompleteReservation(uint(id), req.PaymentMethod)
	switch {
	case errors.Is(err, services.ErrReservationGone):
		resp.NotFound(c, "reservation not found")
	case errors.Is(err, services.ErrNotCompletable):
		resp.Conflict(c, err.Error())
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.Created(c, sale)
	}
}

type WalkInRequest struct {
	MenuIDs       []uint `json:"menuIds" binding:"required"`
	UserID        *uint  `json:"userId,omitempty"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=CASH CARD QR"`
}

// POST /admin/sales — counter sale without a reservation
func (sc *SalesController) CreateWalkIn(c *gin.Context) {
	var req WalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "CASH"
	}

	sale, err := sc.Sales.CreateWalkIn(req.UserID, req.MenuIDs, req.PaymentMethod)
	switch {
	case errors.Is(err, services.ErrMenuRequired):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrMenuNotFound):
		resp.NotFound(c, "menu not found")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.Created(c, sale)
	}
}

// startOfDay drops the noon anchor back to local midnight.
func startOfDay(noon time.Time) time.Time {
	return noon.Add(-12 * time.Hour)
}

func parseRange(c *gin.Context) (from, to string, ok bool) {
	from = c.Query("from")
	to = c.Query("to")
	if from == "" || to == "" {
		resp.BadRequest(c, "from and to are required")
		return "", "", false
	}
	return from, to, true
}

// GET /admin/sales?from=&to=
func (sc *SalesController) List(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	fromDay, err1 := utils.DateAtNoon(from)
	toDay, err2 := utils.DateAtNoon(to)
	if err1 != nil || err2 != nil {
		resp.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}

	rows, err := sc.Sales.List(startOfDay(fromDay), startOfDay(toDay), (page-1)*limit, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /admin/sales/report?from=&to=
func (sc *SalesController) Report(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	fromDay, err1 := utils.DateAtNoon(from)
	toDay, err2 := utils.DateAtNoon(to)
	if err1 != nil || err2 != nil {
		resp.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	report, err := sc.Sales.Report(startOfDay(fromDay), startOfDay(toDay))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, report)
}

// GET /admin/sales/report/export?from=&to=
func (sc *SalesController) Export(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	fromDay, err1 := utils.DateAtNoon(from)
	toDay, err2 := utils.DateAtNoon(to)
	if err1 != nil || err2 != nil {
		resp.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	buf, err := sc.Sales.ExportXLSX(startOfDay(fromDay), startOfDay(toDay))
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx", from, to)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
