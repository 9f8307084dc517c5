package repository

import (
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) Create(tx *gorm.DB, res *entity.Reservation) error {
	return tx.Create(res).Error
}

func (r *ReservationRepository) CreateItem(tx *gorm.DB, item *entity.ReservationMenu) error {
	return tx.Create(item).Error
}

// ConfirmedByDate returns every CONFIRMED reservation for one date.
// Pass a tx to re-read inside a booking transaction.
func (r *ReservationRepository) ConfirmedByDate(tx *gorm.DB, date string) ([]entity.Reservation, error) {
	if tx == nil {
		tx = r.DB
	}
	var rows []entity.Reservation
	err := tx.Where("date = ? AND status = ?", date, entity.ReservationConfirmed).
		Order("start_time").Find(&rows).Error
	return rows, err
}

func (r *ReservationRepository) ConfirmedBetween(from, to string) ([]entity.Reservation, error) {
	var rows []entity.Reservation
	err := r.DB.Where("date BETWEEN ? AND ? AND status = ?", from, to, entity.ReservationConfirmed).
		Order("date, start_time").Find(&rows).Error
	return rows, err
}

func (r *ReservationRepository) FindByID(id uint) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := r.DB.Preload("Items.Menu").First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) FindByIDForUser(userID, id uint) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := r.DB.Preload("Items.Menu").
		Where("id = ? AND user_id = ?", id, userID).First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// ReservationSummary backs list endpoints.
type ReservationSummary struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
	StaffID   *uint     `json:"staffId,omitempty"`
	UserID    uint      `json:"userId"`
	Discount  int64     `json:"discount"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *ReservationRepository) ListForUser(userID uint, limit int) ([]ReservationSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []ReservationSummary
	err := r.DB.Model(&entity.Reservation{}).
		Select("id, code, date, start_time, end_time, status, staff_id, user_id, discount, created_at").
		Where("user_id = ?", userID).
		Order("date DESC, start_time DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *ReservationRepository) ListBetween(from, to, status string, offset, limit int) ([]ReservationSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	q := r.DB.Model(&entity.Reservation{}).
		Select("id, code, date, start_time, end_time, status, staff_id, user_id, discount, created_at").
		Where("date BETWEEN ? AND ?", from, to)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []ReservationSummary
	err := q.Order("date, start_time").Offset(offset).Limit(limit).Scan(&out).Error
	return out, err
}

func (r *ReservationRepository) UpdateStatus(tx *gorm.DB, id uint, status string) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Model(&entity.Reservation{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *ReservationRepository) CountByDate(date string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Reservation{}).
		Where("date = ? AND status = ?", date, entity.ReservationConfirmed).
		Count(&count).Error
	return count, err
}
