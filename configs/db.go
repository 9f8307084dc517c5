package configs

import (
	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{},
		&entity.Staff{}, &entity.StaffSchedule{}, &entity.StaffScheduleOverride{},
		&entity.MenuCategory{}, &entity.Menu{},
		&entity.BusinessHour{}, &entity.Closure{}, &entity.Setting{},
		&entity.Reservation{}, &entity.ReservationMenu{},
		&entity.Coupon{}, &entity.CouponUsage{},
		&entity.Sale{}, &entity.SaleItem{},
	)
}
