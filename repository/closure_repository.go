package repository

import (
	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"gorm.io/gorm"
)

type ClosureRepository struct {
	DB *gorm.DB
}

func NewClosureRepository(db *gorm.DB) *ClosureRepository {
	return &ClosureRepository{DB: db}
}

func (r *ClosureRepository) ByDate(date string) ([]entity.Closure, error) {
	var rows []entity.Closure
	err := r.DB.Where("date = ?", date).Find(&rows).Error
	return rows, err
}

func (r *ClosureRepository) Between(from, to string) ([]entity.Closure, error) {
	var rows []entity.Closure
	err := r.DB.Where("date BETWEEN ? AND ?", from, to).Order("date").Find(&rows).Error
	return rows, err
}

func (r *ClosureRepository) Create(c *entity.Closure) error {
	return r.DB.Create(c).Error
}

func (r *ClosureRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&entity.Closure{}, id).Error
}
