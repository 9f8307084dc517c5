package repository

import (
	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"gorm.io/gorm"
)

type StaffRepository struct {
	DB *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{DB: db}
}

// ListActiveForDate loads active staff with the weekly schedule, any
// override for the given date, and the capability set — everything the
// qualification check needs in one query.
func (r *StaffRepository) ListActiveForDate(date string) ([]entity.Staff, error) {
	var staff []entity.Staff
	err := r.DB.
		Preload("Schedules", "active = ?", true).
		Preload("Overrides", "date = ?", date).
		Preload("Menus").
		Where("active = ?", true).
		Order("display_order, id").
		Find(&staff).Error
	return staff, err
}

func (r *StaffRepository) ListAll() ([]entity.Staff, error) {
	var staff []entity.Staff
	err := r.DB.Order("display_order, id").Find(&staff).Error
	return staff, err
}

func (r *StaffRepository) ListActive() ([]entity.Staff, error) {
	var staff []entity.Staff
	err := r.DB.Where("active = ?", true).Order("display_order, id").Find(&staff).Error
	return staff, err
}

func (r *StaffRepository) FindByID(id uint) (*entity.Staff, error) {
	var s entity.Staff
	if err := r.DB.Preload("Schedules").Preload("Menus").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) Create(s *entity.Staff) error {
	return r.DB.Create(s).Error
}

func (r *StaffRepository) Update(s *entity.Staff) error {
	return r.DB.Save(s).Error
}

// ReplaceSchedules swaps the full weekly schedule in one transaction.
func (r *StaffRepository) ReplaceSchedules(staffID uint, rows []entity.StaffSchedule) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("staff_id = ?", staffID).
			Delete(&entity.StaffSchedule{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].StaffID = staffID
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StaffRepository) UpsertOverride(o *entity.StaffScheduleOverride) error {
	var existing entity.StaffScheduleOverride
	err := r.DB.Where("staff_id = ? AND date = ?", o.StaffID, o.Date).First(&existing).Error
	if err == nil {
		o.ID = existing.ID
		return r.DB.Save(o).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.DB.Create(o).Error
}

func (r *StaffRepository) DeleteOverride(staffID uint, date string) error {
	return r.DB.Unscoped().
		Where("staff_id = ? AND date = ?", staffID, date).
		Delete(&entity.StaffScheduleOverride{}).Error
}

// ReplaceCapabilities sets the menu-capability set; empty = all menus.
func (r *StaffRepository) ReplaceCapabilities(staff *entity.Staff, menus []entity.Menu) error {
	return r.DB.Model(staff).Association("Menus").Replace(menus)
}
