package controllers

import (
	"errors"
	"strconv"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Menus *services.MenuService
}

func NewMenuController(menus *services.MenuService) *MenuController {
	return &MenuController{Menus: menus}
}

// GET /menus (public)
func (mc *MenuController) List(c *gin.Context) {
	menus, err := mc.Menus.ListPublic()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, menus)
}

// GET /menus/:id (public)
func (mc *MenuController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	m, err := mc.Menus.Get(uint(id))
	if errors.Is(err, services.ErrMenuNotFound) {
		resp.NotFound(c, "menu not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, m)
}

// GET /menu-categories (public)
func (mc *MenuController) Categories(c *gin.Context) {
	cats, err := mc.Menus.ListCategories()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cats)
}

// ---- admin ----

type MenuRequest struct {
	Name           string `json:"name" binding:"required"`
	Detail         string `json:"detail"`
	Price          int64  `json:"price"`
	DurationMin    int    `json:"durationMin" binding:"required"`
	MenuCategoryID uint   `json:"menuCategoryId" binding:"required"`
	Active         *bool  `json:"active,omitempty"`
}

// GET /admin/menus
func (mc *MenuController) ListAll(c *gin.Context) {
	menus, err := mc.Menus.ListAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, menus)
}

// POST /admin/menus
func (mc *MenuController) Create(c *gin.Context) {
	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m := entity.Menu{
		Name:           req.Name,
		Detail:         req.Detail,
		Price:          req.Price,
		DurationMin:    req.DurationMin,
		MenuCategoryID: req.MenuCategoryID,
		Active:         true,
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if err := mc.Menus.Create(&m); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, m)
}

// PATCH /admin/menus/:id
func (mc *MenuController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	m, err := mc.Menus.Get(uint(id))
	if errors.Is(err, services.ErrMenuNotFound) {
		resp.NotFound(c, "menu not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m.Name = req.Name
	m.Detail = req.Detail
	m.Price = req.Price
	m.DurationMin = req.DurationMin
	m.MenuCategoryID = req.MenuCategoryID
	if req.Active != nil {
		m.Active = *req.Active
	}
	if err := mc.Menus.Update(m); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, m)
}

type CategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

// POST /admin/menu-categories
func (mc *MenuController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat := entity.MenuCategory{Name: req.Name, DisplayOrder: req.DisplayOrder}
	if err := mc.Menus.CreateCategory(&cat); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, cat)
}
