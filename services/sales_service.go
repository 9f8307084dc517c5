package services

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var ErrNotCompletable = errors.New("only a confirmed reservation can be completed")

type SalesService struct {
	DB           *gorm.DB
	Sales        *repository.SaleRepository
	Reservations *repository.ReservationRepository
	Menus        *repository.MenuRepository
	Settings     *repository.SettingRepository

	now func() time.Time
}

func NewSalesService(
	db *gorm.DB,
	sales *repository.SaleRepository,
	reservations *repository.ReservationRepository,
	menus *repository.MenuRepository,
	settings *repository.SettingRepository,
) *SalesService {
	return &SalesService{
		DB:           db,
		Sales:        sales,
		Reservations: reservations,
		Menus:        menus,
		Settings:     settings,
		now:          time.Now,
	}
}

// CompleteReservation checks out a reservation at the register: the
// status moves to COMPLETED and an immutable Sale is written in the
// same transaction, carrying the booking's coupon discount.
func (s *SalesService) CompleteReservation(reservationID uint, paymentMethod string) (*entity.Sale, error) {
	res, err := s.Reservations.FindByID(reservationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationGone
	}
	if err != nil {
		return nil, err
	}
	if res.Status != entity.ReservationConfirmed {
		return nil, ErrNotCompletable
	}

	var subtotal int64
	for _, item := range res.Items {
		subtotal += item.Price
	}
	discount := res.Discount
	if discount > subtotal {
		discount = subtotal
	}
	taxRate, err := s.Settings.GetInt(entity.SettingTaxRate, 10)
	if err != nil {
		return nil, err
	}
	tax := (subtotal - discount) * int64(taxRate) / 100
	userID := res.UserID

	sale := &entity.Sale{
		ReservationID: &res.ID,
		UserID:        &userID,
		Subtotal:      subtotal,
		Discount:      discount,
		Tax:           tax,
		Total:         subtotal - discount + tax,
		PaymentMethod: paymentMethod,
		SoldAt:        s.now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Reservations.UpdateStatus(tx, res.ID, entity.ReservationCompleted); err != nil {
			return err
		}
		if err := s.Sales.Create(tx, sale); err != nil {
			return err
		}
		for _, item := range res.Items {
			si := entity.SaleItem{
				SaleID:   sale.ID,
				MenuID:   item.MenuID,
				MenuName: item.Menu.Name,
				Price:    item.Price,
				Qty:      1,
			}
			if err := s.Sales.CreateItem(tx, &si); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// CreateWalkIn records a counter sale with no reservation behind it.
func (s *SalesService) CreateWalkIn(userID *uint, menuIDs []uint, paymentMethod string) (*entity.Sale, error) {
	if len(menuIDs) == 0 {
		return nil, ErrMenuRequired
	}
	menus, err := s.Menus.FindActiveByIDs(menuIDs)
	if err != nil {
		return nil, err
	}
	if len(menus) != len(uniqueIDs(menuIDs)) {
		return nil, ErrMenuNotFound
	}

	var subtotal int64
	for _, m := range menus {
		subtotal += m.Price
	}
	taxRate, err := s.Settings.GetInt(entity.SettingTaxRate, 10)
	if err != nil {
		return nil, err
	}
	tax := subtotal * int64(taxRate) / 100

	sale := &entity.Sale{
		UserID:        userID,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal + tax,
		PaymentMethod: paymentMethod,
		SoldAt:        s.now(),
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Sales.Create(tx, sale); err != nil {
			return err
		}
		for _, m := range menus {
			si := entity.SaleItem{SaleID: sale.ID, MenuID: m.ID, MenuName: m.Name, Price: m.Price, Qty: 1}
			if err := s.Sales.CreateItem(tx, &si); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ----- reporting -----

type SalesReport struct {
	From     string                  `json:"from"`
	To       string                  `json:"to"`
	Days     []repository.DailyTotal `json:"days"`
	Count    int64                   `json:"count"`
	Subtotal int64                   `json:"subtotal"`
	Discount int64                   `json:"discount"`
	Tax      int64                   `json:"tax"`
	Total    int64                   `json:"total"`
}

// Report aggregates sales per day over [from, to] (date strings).
func (s *SalesService) Report(from, to time.Time) (*SalesReport, error) {
	// to is inclusive as a date; query up to the next midnight
	end := to.AddDate(0, 0, 1)
	days, err := s.Sales.TotalsByDay(from, end)
	if err != nil {
		return nil, err
	}
	report := &SalesReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Days: days,
	}
	for _, d := range days {
		report.Count += d.Count
		report.Subtotal += d.Subtotal
		report.Discount += d.Discount
		report.Tax += d.Tax
		report.Total += d.Total
	}
	return report, nil
}

// ExportXLSX renders a report as an Excel workbook for the back office.
func (s *SalesService) ExportXLSX(from, to time.Time) (*bytes.Buffer, error) {
	report, err := s.Report(from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Sales", "Subtotal", "Discount", "Tax", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, d := range report.Days {
		values := []any{d.Day, d.Count, d.Subtotal, d.Discount, d.Tax, d.Total}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	totalRow := len(report.Days) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), report.Count)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), report.Subtotal)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), report.Discount)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), report.Tax)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), report.Total)

	return f.WriteToBuffer()
}

func (s *SalesService) List(from, to time.Time, offset, limit int) ([]entity.Sale, error) {
	return s.Sales.ListBetween(from, to.AddDate(0, 0, 1), offset, limit)
}
