package entity

import (
	"gorm.io/gorm"
)

type SaleItem struct {
	gorm.Model
	SaleID uint `gorm:"index" json:"saleId"`
	MenuID uint `json:"menuId"`

	// Snapshots; menu rows can change after the sale.
	MenuName string `json:"menuName"`
	Price    int64  `json:"price"`
	Qty      int    `gorm:"default:1" json:"qty"`
}
