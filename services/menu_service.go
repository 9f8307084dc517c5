package services

import (
	"errors"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"

	"gorm.io/gorm"
)

var ErrMenuInvalid = errors.New("invalid menu definition")

type MenuService struct {
	Menus *repository.MenuRepository
}

func NewMenuService(menus *repository.MenuRepository) *MenuService {
	return &MenuService{Menus: menus}
}

func (s *MenuService) ListPublic() ([]entity.Menu, error) {
	return s.Menus.ListActive()
}

func (s *MenuService) ListAll() ([]entity.Menu, error) {
	return s.Menus.ListAll()
}

func (s *MenuService) Get(id uint) (*entity.Menu, error) {
	m, err := s.Menus.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMenuNotFound
	}
	return m, err
}

func (s *MenuService) Create(m *entity.Menu) error {
	if err := checkMenu(m); err != nil {
		return err
	}
	if _, err := s.Menus.FindCategoryByID(m.MenuCategoryID); err != nil {
		return ErrMenuInvalid
	}
	return s.Menus.Create(m)
}

func (s *MenuService) Update(m *entity.Menu) error {
	if err := checkMenu(m); err != nil {
		return err
	}
	return s.Menus.Update(m)
}

func checkMenu(m *entity.Menu) error {
	if m.Name == "" || m.Price < 0 || m.DurationMin <= 0 {
		return ErrMenuInvalid
	}
	return nil
}

func (s *MenuService) ListCategories() ([]entity.MenuCategory, error) {
	return s.Menus.ListCategories()
}

func (s *MenuService) CreateCategory(c *entity.MenuCategory) error {
	if c.Name == "" {
		return ErrMenuInvalid
	}
	return s.Menus.CreateCategory(c)
}

func (s *MenuService) UpdateCategory(c *entity.MenuCategory) error {
	if c.Name == "" {
		return ErrMenuInvalid
	}
	return s.Menus.UpdateCategory(c)
}
