package repository

import (
	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) Update(u *entity.User) error {
	return r.DB.Save(u).Error
}

// CustomerSummary backs the admin customer list.
type CustomerSummary struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PhoneNumber  string `json:"phoneNumber"`
	Reservations int64  `json:"reservations"`
}

func (r *UserRepository) ListCustomers(offset, limit int) ([]CustomerSummary, error) {
	var out []CustomerSummary
	err := r.DB.Model(&entity.User{}).
		Select("users.id, users.email, users.first_name, users.last_name, users.phone_number, count(reservations.id) as reservations").
		Joins("LEFT JOIN reservations ON reservations.user_id = users.id AND reservations.deleted_at IS NULL").
		Where("users.role = ?", "customer").
		Group("users.id").
		Order("users.id DESC").
		Offset(offset).Limit(limit).
		Scan(&out).Error
	return out, err
}
