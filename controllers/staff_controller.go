package controllers

import (
	"errors"
	"strconv"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/services"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	Staff     *services.StaffService
	StaffRepo *repository.StaffRepository
	MenuRepo  *repository.MenuRepository
}

func NewStaffController(staff *services.StaffService, staffRepo *repository.StaffRepository, menuRepo *repository.MenuRepository) *StaffController {
	return &StaffController{Staff: staff, StaffRepo: staffRepo, MenuRepo: menuRepo}
}

// GET /staff (public)
func (sc *StaffController) List(c *gin.Context) {
	rows, err := sc.Staff.List(false)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// ---- admin ----

type StaffRequest struct {
	Name         string `json:"name" binding:"required"`
	Nickname     string `json:"nickname"`
	Profile      string `json:"profile"`
	DisplayOrder int    `json:"displayOrder"`
	Active       *bool  `json:"active,omitempty"`
}

// GET /admin/staff
func (sc *StaffController) ListAll(c *gin.Context) {
	rows, err := sc.Staff.List(true)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /admin/staff/:id
func (sc *StaffController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	st, err := sc.Staff.Get(uint(id))
	if errors.Is(err, services.ErrStaffNotFound) {
		resp.NotFound(c, "staff not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"staff":     st,
		"schedules": st.Schedules,
		"menus":     st.Menus,
	})
}

// POST /admin/staff
func (sc *StaffController) Create(c *gin.Context) {
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	st := entity.Staff{
		Name:         req.Name,
		Nickname:     req.Nickname,
		Profile:      req.Profile,
		DisplayOrder: req.DisplayOrder,
		Active:       true,
	}
	if req.Active != nil {
		st.Active = *req.Active
	}
	if err := sc.Staff.Create(&st); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, st)
}

// PATCH /admin/staff/:id
func (sc *StaffController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	st, err := sc.Staff.Get(uint(id))
	if errors.Is(err, services.ErrStaffNotFound) {
		resp.NotFound(c, "staff not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	st.Name = req.Name
	st.Nickname = req.Nickname
	st.Profile = req.Profile
	st.DisplayOrder = req.DisplayOrder
	if req.Active != nil {
		st.Active = *req.Active
	}
	if err := sc.Staff.Update(st); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, st)
}

type ScheduleRow struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Active    *bool  `json:"active,omitempty"`
}

// PUT /admin/staff/:id/schedules — replaces the weekly schedule
func (sc *StaffController) SetSchedules(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	var req []ScheduleRow
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rows := make([]entity.StaffSchedule, 0, len(req))
	for _, r := range req {
		row := entity.StaffSchedule{
			Weekday:   r.Weekday,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Active:    true,
		}
		if r.Active != nil {
			row.Active = *r.Active
		}
		rows = append(rows, row)
	}

	err = sc.Staff.SetSchedules(uint(id), rows)
	switch {
	case errors.Is(err, services.ErrStaffNotFound):
		resp.NotFound(c, "staff not found")
	case err != nil:
		resp.BadRequest(c, err.Error())
	default:
		resp.OK(c, gin.H{"count": len(rows)})
	}
}

type OverrideRequest struct {
	Date      string  `json:"date" binding:"required"`
	StartTime *string `json:"startTime,omitempty"` // both nil = day off
	EndTime   *string `json:"endTime,omitempty"`
	Note      string  `json:"note"`
}

// PUT /admin/staff/:id/overrides
func (sc *StaffController) SetOverride(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o := entity.StaffScheduleOverride{
		StaffID:   uint(id),
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	}
	err = sc.Staff.SetOverride(&o)
	switch {
	case errors.Is(err, services.ErrStaffNotFound):
		resp.NotFound(c, "staff not found")
	case err != nil:
		resp.BadRequest(c, err.Error())
	default:
		resp.OK(c, o)
	}
}

// DELETE /admin/staff/:id/overrides/:date
func (sc *StaffController) ClearOverride(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	if err := sc.Staff.ClearOverride(uint(id), c.Param("date")); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}

type CapabilitiesRequest struct {
	MenuIDs []uint `json:"menuIds"` // empty = capable of all menus
}

// PUT /admin/staff/:id/capabilities
func (sc *StaffController) SetCapabilities(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	st, err := sc.Staff.Get(uint(id))
	if errors.Is(err, services.ErrStaffNotFound) {
		resp.NotFound(c, "staff not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	var req CapabilitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	menus, err := sc.MenuRepo.FindActiveByIDs(req.MenuIDs)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if len(menus) != len(req.MenuIDs) {
		resp.NotFound(c, "menu not found")
		return
	}
	if err := sc.StaffRepo.ReplaceCapabilities(st, menus); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"count": len(menus)})
}
