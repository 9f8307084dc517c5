package routes

import (
	"github.com/d-syoyu/beauty-salon-web-sub001/configs"
	"github.com/d-syoyu/beauty-salon-web-sub001/controllers"
	"github.com/d-syoyu/beauty-salon-web-sub001/middlewares"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/services"
	"github.com/d-syoyu/beauty-salon-web-sub001/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	closureRepo := repository.NewClosureRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	menuSvc := services.NewMenuService(menuRepo)
	availabilitySvc := services.NewAvailabilityService(settingRepo, closureRepo, reservationRepo, menuRepo)
	staffSvc := services.NewStaffService(staffRepo, reservationRepo)
	couponSvc := services.NewCouponService(couponRepo, saleRepo)
	reservationSvc := services.NewReservationService(db, reservationRepo, menuRepo, couponRepo, availabilitySvc, staffSvc, couponSvc)
	salesSvc := services.NewSalesService(db, saleRepo, reservationRepo, menuRepo, settingRepo)

	// Back-office live feed
	feed := ws.NewFeedHub()
	go feed.Run()
	reservationSvc.Notifier = feed

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	availabilityCtrl := controllers.NewAvailabilityController(availabilitySvc)
	staffCtrl := controllers.NewStaffController(staffSvc, staffRepo, menuRepo)
	reservationCtrl := controllers.NewReservationController(reservationSvc)
	couponCtrl := controllers.NewCouponController(couponSvc, couponRepo, menuRepo)
	settingsCtrl := controllers.NewSettingsController(settingRepo, closureRepo)
	salesCtrl := controllers.NewSalesController(salesSvc)
	adminCtrl := controllers.NewAdminController(db, userRepo, saleRepo, reservationRepo)

	auth := func(roles ...string) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", auth())
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Public browsing
	r.GET("/menus", menuCtrl.List)
	r.GET("/menus/:id", menuCtrl.Detail)
	r.GET("/menu-categories", menuCtrl.Categories)
	r.GET("/staff", staffCtrl.List)
	r.GET("/availability", availabilityCtrl.Day)
	r.GET("/availability/month", availabilityCtrl.Month)

	// Customer (logged in)
	u := r.Group("/", auth())
	{
		u.POST("/reservations", reservationCtrl.Create)
		u.GET("/reservations/:id", reservationCtrl.Detail)
		u.PATCH("/reservations/:id/cancel", reservationCtrl.Cancel)
		u.POST("/coupons/check", couponCtrl.Check)
	}

	// Profile
	profile := r.Group("/profile", auth())
	{
		profile.GET("/reservations", reservationCtrl.ListForMe)
	}

	// Admin (admin only)
	admin := r.Group("/admin", auth("admin"))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.GET("/customers", adminCtrl.Customers)

		admin.GET("/reservations", reservationCtrl.ListBetween)
		admin.PATCH("/reservations/:id/cancel", reservationCtrl.Cancel)
		admin.PATCH("/reservations/:id/no-show", reservationCtrl.MarkNoShow)
		admin.POST("/reservations/:id/checkout", salesCtrl.Checkout)

		admin.GET("/staff", staffCtrl.ListAll)
		admin.GET("/staff/:id", staffCtrl.Detail)
		admin.POST("/staff", staffCtrl.Create)
		admin.PATCH("/staff/:id", staffCtrl.Update)
		admin.PUT("/staff/:id/schedules", staffCtrl.SetSchedules)
		admin.PUT("/staff/:id/overrides", staffCtrl.SetOverride)
		admin.DELETE("/staff/:id/overrides/:date", staffCtrl.ClearOverride)
		admin.PUT("/staff/:id/capabilities", staffCtrl.SetCapabilities)

		admin.GET("/menus", menuCtrl.ListAll)
		admin.POST("/menus", menuCtrl.Create)
		admin.PATCH("/menus/:id", menuCtrl.Update)
		admin.POST("/menu-categories", menuCtrl.CreateCategory)

		admin.GET("/coupons", couponCtrl.List)
		admin.POST("/coupons", couponCtrl.Create)
		admin.PATCH("/coupons/:id", couponCtrl.Update)

		admin.GET("/settings", settingsCtrl.List)
		admin.PUT("/settings", settingsCtrl.Set)
		admin.GET("/business-hours", settingsCtrl.ListHours)
		admin.PUT("/business-hours", settingsCtrl.SaveHours)
		admin.GET("/closures", settingsCtrl.ListClosures)
		admin.POST("/closures", settingsCtrl.CreateClosure)
		admin.DELETE("/closures/:id", settingsCtrl.DeleteClosure)

		admin.GET("/sales", salesCtrl.List)
		admin.POST("/sales", salesCtrl.CreateWalkIn)
		admin.GET("/sales/report", salesCtrl.Report)
		admin.GET("/sales/report/export", salesCtrl.Export)

		admin.GET("/ws/feed", feed.Handle())
	}
}
