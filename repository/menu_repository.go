package repository

import (
	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) ListActive() ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.DB.Where("active = ?", true).Order("menu_category_id, id").Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) ListAll() ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.DB.Order("menu_category_id, id").Find(&menus).Error
	return menus, err
}

// FindActiveByIDs returns the requested menus; callers must check the
// count against the request to detect unknown or inactive ids.
func (r *MenuRepository) FindActiveByIDs(ids []uint) ([]entity.Menu, error) {
	var menus []entity.Menu
	if len(ids) == 0 {
		return menus, nil
	}
	err := r.DB.Where("id IN ? AND active = ?", ids, true).Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) FindByID(id uint) (*entity.Menu, error) {
	var m entity.Menu
	if err := r.DB.Preload("MenuCategory").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) Create(m *entity.Menu) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) Update(m *entity.Menu) error {
	return r.DB.Save(m).Error
}

func (r *MenuRepository) ListCategories() ([]entity.MenuCategory, error) {
	var cats []entity.MenuCategory
	err := r.DB.Order("display_order, id").Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) CreateCategory(c *entity.MenuCategory) error {
	return r.DB.Create(c).Error
}

func (r *MenuRepository) UpdateCategory(c *entity.MenuCategory) error {
	return r.DB.Save(c).Error
}

func (r *MenuRepository) FindCategoryByID(id uint) (*entity.MenuCategory, error) {
	var c entity.MenuCategory
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
