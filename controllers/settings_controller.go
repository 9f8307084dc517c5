package controllers

import (
	"strconv"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"github.com/gin-gonic/gin"
)

// SettingsController manages business hours, closures and the key/value
// settings rows. Thin enough to talk to the repositories directly.
type SettingsController struct {
	Settings *repository.SettingRepository
	Closures *repository.ClosureRepository
}

func NewSettingsController(settings *repository.SettingRepository, closures *repository.ClosureRepository) *SettingsController {
	return &SettingsController{Settings: settings, Closures: closures}
}

// GET /admin/settings
func (sc *SettingsController) List(c *gin.Context) {
	rows, err := sc.Settings.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

type SettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// PUT /admin/settings
func (sc *SettingsController) Set(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := sc.Settings.Set(req.Key, req.Value); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"key": req.Key, "value": req.Value})
}

// GET /admin/business-hours
func (sc *SettingsController) ListHours(c *gin.Context) {
	rows, err := sc.Settings.ListHours()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

type BusinessHourRequest struct {
	DayType      string `json:"dayType" binding:"required,oneof=weekday holiday"`
	OpenTime     string `json:"openTime" binding:"required"`
	CloseTime    string `json:"closeTime" binding:"required"`
	SlotInterval int    `json:"slotInterval" binding:"required"`
	LastBooking  string `json:"lastBooking" binding:"required"`
}

// PUT /admin/business-hours — malformed hours are rejected here, never
// at evaluation time.
func (sc *SettingsController) SaveHours(c *gin.Context) {
	var req BusinessHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	open, err1 := utils.ParseHHMM(req.OpenTime)
	closeMin, err2 := utils.ParseHHMM(req.CloseTime)
	last, err3 := utils.ParseHHMM(req.LastBooking)
	if err1 != nil || err2 != nil || err3 != nil {
		resp.BadRequest(c, "times must be HH:MM")
		return
	}
	if req.SlotInterval <= 0 || open >= closeMin || last < open {
		resp.BadRequest(c, "invalid business hours")
		return
	}

	row := entity.BusinessHour{
		DayType:      req.DayType,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		SlotInterval: req.SlotInterval,
		LastBooking:  req.LastBooking,
	}
	if err := sc.Settings.SaveHours(&row); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, row)
}

// GET /admin/closures?from=&to=
func (sc *SettingsController) ListClosures(c *gin.Context) {
	from := c.DefaultQuery("from", "0000-01-01")
	to := c.DefaultQuery("to", "9999-12-31")
	rows, err := sc.Closures.Between(from, to)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

type ClosureRequest struct {
	Date      string  `json:"date" binding:"required"`
	Kind      string  `json:"kind" binding:"required,oneof=HOLIDAY SPECIAL_OPEN"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Note      string  `json:"note"`
}

// POST /admin/closures
func (sc *SettingsController) CreateClosure(c *gin.Context) {
	var req ClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if _, err := utils.DateAtNoon(req.Date); err != nil {
		resp.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	if (req.StartTime == nil) != (req.EndTime == nil) {
		resp.BadRequest(c, "time range needs both start and end")
		return
	}
	if req.StartTime != nil {
		start, err1 := utils.ParseHHMM(*req.StartTime)
		end, err2 := utils.ParseHHMM(*req.EndTime)
		if err1 != nil || err2 != nil || start >= end {
			resp.BadRequest(c, "invalid time range")
			return
		}
	}

	row := entity.Closure{
		Date:      req.Date,
		Kind:      req.Kind,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	}
	if err := sc.Closures.Create(&row); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, row)
}

// DELETE /admin/closures/:id
func (sc *SettingsController) DeleteClosure(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	if err := sc.Closures.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
