package configs

import (
	"log"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first back-office account.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// SeedDefaults writes the business-hour rows and settings a fresh
// install needs before availability can be evaluated.
func SeedDefaults() error {
	db := DB()

	db.Where(entity.BusinessHour{DayType: entity.DayTypeWeekday}).
		Attrs(entity.BusinessHour{OpenTime: "10:00", CloseTime: "20:00", SlotInterval: 30, LastBooking: "19:00"}).
		FirstOrCreate(&entity.BusinessHour{})
	db.Where(entity.BusinessHour{DayType: entity.DayTypeHoliday}).
		Attrs(entity.BusinessHour{OpenTime: "09:00", CloseTime: "19:00", SlotInterval: 30, LastBooking: "18:00"}).
		FirstOrCreate(&entity.BusinessHour{})

	seedSetting := func(key, value string) {
		var row entity.Setting
		if err := db.Where("key = ?", key).First(&row).Error; err != nil {
			db.Create(&entity.Setting{Key: key, Value: value})
		}
	}
	seedSetting(entity.SettingClosedWeekdays, "2") // Tuesday
	seedSetting(entity.SettingTaxRate, "10")
	seedSetting(entity.SettingBookingHorizonDays, "30")
	seedSetting(entity.SettingDefaultDurationMin, "60")

	return nil
}
