package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/pkg/resp"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB       *gorm.DB
	Users    *repository.UserRepository
	Sales    *repository.SaleRepository
	Bookings *repository.ReservationRepository
}

func NewAdminController(db *gorm.DB, users *repository.UserRepository, sales *repository.SaleRepository, bookings *repository.ReservationRepository) *AdminController {
	return &AdminController{DB: db, Users: users, Sales: sales, Bookings: bookings}
}

// GET /admin/dashboard — headline counters for the back office
func (ac *AdminController) Dashboard(c *gin.Context) {
	today := time.Now().Format(utils.DateLayout)

	reservationsToday, err := ac.Bookings.CountByDate(today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count reservations failed"})
		return
	}

	var totalCustomers int64
	if err := ac.DB.Model(&entity.User{}).
		Where("role = ?", "customer").
		Count(&totalCustomers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count customers failed"})
		return
	}

	var activeStaff int64
	if err := ac.DB.Model(&entity.Staff{}).
		Where("active = ?", true).
		Count(&activeStaff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count staff failed"})
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	monthSales, err := ac.Sales.TotalBetween(monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sum sales failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservationsToday": reservationsToday,
		"totalCustomers":    totalCustomers,
		"activeStaff":       activeStaff,
		"monthSales":        monthSales,
	})
}

// GET /admin/customers (page/limit)
func (ac *AdminController) Customers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := ac.Users.ListCustomers((page-1)*limit, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}
