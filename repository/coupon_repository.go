package repository

import (
	"strings"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"gorm.io/gorm"
)

type CouponRepository struct {
	DB *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{DB: db}
}

// FindByCode matches case-insensitively; codes are stored upper-cased.
func (r *CouponRepository) FindByCode(code string) (*entity.Coupon, error) {
	var cp entity.Coupon
	err := r.DB.Preload("Menus").Preload("Categories").
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&cp).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *CouponRepository) FindByID(id uint) (*entity.Coupon, error) {
	var cp entity.Coupon
	if err := r.DB.Preload("Menus").Preload("Categories").First(&cp, id).Error; err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *CouponRepository) ListAll() ([]entity.Coupon, error) {
	var rows []entity.Coupon
	err := r.DB.Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *CouponRepository) Create(cp *entity.Coupon) error {
	cp.Code = strings.ToUpper(strings.TrimSpace(cp.Code))
	return r.DB.Create(cp).Error
}

func (r *CouponRepository) Update(cp *entity.Coupon) error {
	cp.Code = strings.ToUpper(strings.TrimSpace(cp.Code))
	return r.DB.Save(cp).Error
}

func (r *CouponRepository) CountUsages(couponID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.CouponUsage{}).
		Where("coupon_id = ?", couponID).Count(&count).Error
	return count, err
}

func (r *CouponRepository) CountUsagesForUser(couponID, userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).Count(&count).Error
	return count, err
}

func (r *CouponRepository) CreateUsage(tx *gorm.DB, u *entity.CouponUsage) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(u).Error
}

// VoidUsageForReservation removes the redemption when a reservation is
// cancelled, releasing the usage-limit slot. Hard delete: a voided
// redemption must not keep counting against the limit.
func (r *CouponRepository) VoidUsageForReservation(tx *gorm.DB, reservationID uint) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Unscoped().
		Where("reservation_id = ?", reservationID).
		Delete(&entity.CouponUsage{}).Error
}
