package repository

import (
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"gorm.io/gorm"
)

type SaleRepository struct {
	DB *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{DB: db}
}

func (r *SaleRepository) Create(tx *gorm.DB, s *entity.Sale) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(s).Error
}

func (r *SaleRepository) CreateItem(tx *gorm.DB, item *entity.SaleItem) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(item).Error
}

func (r *SaleRepository) FindByID(id uint) (*entity.Sale, error) {
	var s entity.Sale
	if err := r.DB.Preload("Items").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepository) ListBetween(from, to time.Time, offset, limit int) ([]entity.Sale, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var rows []entity.Sale
	err := r.DB.Where("sold_at >= ? AND sold_at < ?", from, to).
		Order("sold_at DESC").Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, err
}

// CountCompletedForUser is what first-time/returning coupon checks read.
func (r *SaleRepository) CountCompletedForUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Sale{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DailyTotal is one row of the sales report.
type DailyTotal struct {
	Day      string `json:"day"` // "2006-01-02"
	Count    int64  `json:"count"`
	Subtotal int64  `json:"subtotal"`
	Discount int64  `json:"discount"`
	Tax      int64  `json:"tax"`
	Total    int64  `json:"total"`
}

func (r *SaleRepository) TotalsByDay(from, to time.Time) ([]DailyTotal, error) {
	var out []DailyTotal
	err := r.DB.Model(&entity.Sale{}).
		Select("strftime('%Y-%m-%d', sold_at) as day, count(*) as count, sum(subtotal) as subtotal, sum(discount) as discount, sum(tax) as tax, sum(total) as total").
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Group("day").Order("day").
		Scan(&out).Error
	return out, err
}

func (r *SaleRepository) TotalBetween(from, to time.Time) (int64, error) {
	var total *int64
	err := r.DB.Model(&entity.Sale{}).
		Select("sum(total)").
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
