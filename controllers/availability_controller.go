package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/services"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
}

func NewAvailabilityController(availability *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Availability: availability}
}

// parseMenuIDs reads a "1,2,3" query value.
func parseMenuIDs(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, errors.New("menuIds must be a comma-separated list of ids")
		}
		out = append(out, uint(n))
	}
	return out, nil
}

// GET /availability?date=2026-01-15&menuIds=1,2
func (ac *AvailabilityController) Day(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		resp.BadRequest(c, "date is required")
		return
	}
	menuIDs, err := parseMenuIDs(c.Query("menuIds"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	day, err := ac.Availability.DayAvailability(date, menuIDs)
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		resp.BadRequest(c, "date must be YYYY-MM-DD")
	case errors.Is(err, services.ErrMenuNotFound):
		resp.NotFound(c, "menu not found")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, day)
	}
}

// GET /availability/month?year=2026&month=1&menuIds=1
func (ac *AvailabilityController) Month(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		resp.BadRequest(c, "year is required")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		resp.BadRequest(c, "month must be 1-12")
		return
	}
	menuIDs, err := parseMenuIDs(c.Query("menuIds"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	days, err := ac.Availability.MonthAvailability(year, time.Month(month), menuIDs)
	if errors.Is(err, services.ErrMenuNotFound) {
		resp.NotFound(c, "menu not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, days)
}
