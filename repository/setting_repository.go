package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"gorm.io/gorm"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) Get(key, fallback string) (string, error) {
	var row entity.Setting
	err := r.DB.Where("key = ?", key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return row.Value, nil
}

func (r *SettingRepository) GetInt(key string, fallback int) (int, error) {
	s, err := r.Get(key, "")
	if err != nil {
		return fallback, err
	}
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback, nil
	}
	return n, nil
}

func (r *SettingRepository) Set(key, value string) error {
	var row entity.Setting
	err := r.DB.Where("key = ?", key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(&entity.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	row.Value = value
	return r.DB.Save(&row).Error
}

func (r *SettingRepository) List() ([]entity.Setting, error) {
	var rows []entity.Setting
	err := r.DB.Order("key").Find(&rows).Error
	return rows, err
}

// ClosedWeekdays parses the closed_weekdays CSV, e.g. "1,3" = Mon, Wed.
func (r *SettingRepository) ClosedWeekdays() ([]time.Weekday, error) {
	s, err := r.Get(entity.SettingClosedWeekdays, "")
	if err != nil {
		return nil, err
	}
	return utils.ParseWeekdayCSV(s), nil
}

// HoursFor returns the business-hour row for a day type.
func (r *SettingRepository) HoursFor(dayType string) (*entity.BusinessHour, error) {
	var row entity.BusinessHour
	if err := r.DB.Where("day_type = ?", dayType).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *SettingRepository) ListHours() ([]entity.BusinessHour, error) {
	var rows []entity.BusinessHour
	err := r.DB.Order("day_type").Find(&rows).Error
	return rows, err
}

func (r *SettingRepository) SaveHours(h *entity.BusinessHour) error {
	var existing entity.BusinessHour
	err := r.DB.Where("day_type = ?", h.DayType).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(h).Error
	}
	if err != nil {
		return err
	}
	h.ID = existing.ID
	return r.DB.Save(h).Error
}
