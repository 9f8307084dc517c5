package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDayClosed         = errors.New("the salon is closed on that day")
	ErrSlotUnavailable   = errors.New("the requested slot is not available")
	ErrNoStaffAvailable  = errors.New("no staff can take the reservation")
	ErrMenuRequired      = errors.New("at least one menu is required")
	ErrReservationGone   = errors.New("reservation not found")
	ErrNotCancellable    = errors.New("only a confirmed reservation can be cancelled")
	ErrStaffNotQualified = errors.New("the requested staff cannot take the reservation")
)

// CouponRejectedError carries the validator's human-readable reason up
// to the transport layer.
type CouponRejectedError struct {
	Reason string
}

func (e *CouponRejectedError) Error() string {
	return fmt.Sprintf("coupon rejected: %s", e.Reason)
}

// ReservationNotifier receives post-commit booking events; the admin
// websocket feed implements it.
type ReservationNotifier interface {
	ReservationCreated(res *entity.Reservation)
	ReservationCancelled(res *entity.Reservation)
}

type ReservationService struct {
	DB           *gorm.DB
	Reservations *repository.ReservationRepository
	Menus        *repository.MenuRepository
	Coupons      *repository.CouponRepository
	Availability *AvailabilityService
	StaffSvc     *StaffService
	CouponSvc    *CouponService
	Notifier     ReservationNotifier // optional

	now func() time.Time
}

func NewReservationService(
	db *gorm.DB,
	reservations *repository.ReservationRepository,
	menus *repository.MenuRepository,
	coupons *repository.CouponRepository,
	availability *AvailabilityService,
	staffSvc *StaffService,
	couponSvc *CouponService,
) *ReservationService {
	return &ReservationService{
		DB:           db,
		Reservations: reservations,
		Menus:        menus,
		Coupons:      coupons,
		Availability: availability,
		StaffSvc:     staffSvc,
		CouponSvc:    couponSvc,
		now:          time.Now,
	}
}

// ----- DTOs from the controller -----

type CreateReservationReq struct {
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"`
	MenuIDs    []uint `json:"menuIds" binding:"required"`
	StaffID    *uint  `json:"staffId,omitempty"` // nil = auto-assign
	CouponCode string `json:"couponCode,omitempty"`
	Note       string `json:"note,omitempty"`
}

type CreateReservationRes struct {
	ID        uint   `json:"id"`
	Code      string `json:"code"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	StaffID   *uint  `json:"staffId,omitempty"`
	Subtotal  int64  `json:"subtotal"`
	Discount  int64  `json:"discount"`
}

// Create books a slot: availability check, staff assignment, coupon
// validation, then persist. The overlap check re-runs inside the write
// transaction so two concurrent requests cannot both commit.
func (s *ReservationService) Create(userID uint, req *CreateReservationReq) (*CreateReservationRes, error) {
	if len(req.MenuIDs) == 0 {
		return nil, ErrMenuRequired
	}
	day, err := utils.DateAtNoon(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	startMin, err := utils.ParseHHMM(req.StartTime)
	if err != nil {
		return nil, ErrInvalidDate
	}

	menus, err := s.Menus.FindActiveByIDs(req.MenuIDs)
	if err != nil {
		return nil, err
	}
	if len(menus) != len(uniqueIDs(req.MenuIDs)) {
		return nil, ErrMenuNotFound
	}

	duration, subtotal := 0, int64(0)
	categoryIDs := make([]uint, 0, len(menus))
	items := make([]CouponLineItem, 0, len(menus))
	for _, m := range menus {
		duration += m.DurationMin
		subtotal += m.Price
		categoryIDs = append(categoryIDs, m.MenuCategoryID)
		items = append(items, CouponLineItem{MenuID: m.ID, CategoryID: m.MenuCategoryID, Price: m.Price})
	}
	endMin := startMin + duration

	// Availability of the requested slot.
	avail, err := s.Availability.DayAvailability(req.Date, req.MenuIDs)
	if err != nil {
		return nil, err
	}
	if avail.IsClosed {
		return nil, ErrDayClosed
	}
	if !slotIsFree(avail.Slots, req.StartTime) {
		return nil, ErrSlotUnavailable
	}

	// Coupon, if any.
	var coupon *CouponResult
	if req.CouponCode != "" {
		wd := day.Weekday()
		result, err := s.CouponSvc.Validate(req.CouponCode, CouponContext{
			Subtotal:    subtotal,
			CustomerID:  &userID,
			MenuIDs:     req.MenuIDs,
			CategoryIDs: categoryIDs,
			Weekday:     &wd,
			TimeOfDay:   req.StartTime,
			Items:       items,
			Now:         s.now(),
		})
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, &CouponRejectedError{Reason: result.Reason}
		}
		coupon = result
	}

	// Staff: requested member must qualify, otherwise auto-assign.
	staff, err := s.resolveStaff(req, startMin, endMin)
	if err != nil {
		return nil, err
	}

	res := &entity.Reservation{
		Code:        uuid.NewString(),
		Date:        day.Format(utils.DateLayout),
		StartTime:   utils.FormatHHMM(startMin),
		EndTime:     utils.FormatHHMM(endMin),
		DurationMin: duration,
		Status:      entity.ReservationConfirmed,
		Note:        req.Note,
		UserID:      userID,
	}
	if staff != nil {
		id := staff.ID
		res.StaffID = &id
	}
	if coupon != nil {
		id := coupon.CouponID
		res.CouponID = &id
		res.Discount = coupon.Discount
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Conflict re-check inside the transaction: the earlier
		// availability read carries no isolation guarantee.
		existing, err := s.Reservations.ConfirmedByDate(tx, res.Date)
		if err != nil {
			return err
		}
		for _, other := range existing {
			os, err1 := utils.ParseHHMM(other.StartTime)
			oe, err2 := utils.ParseHHMM(other.EndTime)
			if err1 != nil || err2 != nil {
				continue
			}
			if utils.Overlaps(startMin, endMin, os, oe) {
				return ErrSlotUnavailable
			}
		}

		if err := s.Reservations.Create(tx, res); err != nil {
			return err
		}
		for _, m := range menus {
			item := entity.ReservationMenu{
				ReservationID: res.ID,
				MenuID:        m.ID,
				Price:         m.Price,
				DurationMin:   m.DurationMin,
			}
			if err := s.Reservations.CreateItem(tx, &item); err != nil {
				return err
			}
		}
		if coupon != nil {
			usage := entity.CouponUsage{
				CouponID:      coupon.CouponID,
				ReservationID: res.ID,
				UserID:        userID,
			}
			if err := s.Coupons.CreateUsage(tx, &usage); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.ReservationCreated(res)
	}

	return &CreateReservationRes{
		ID:        res.ID,
		Code:      res.Code,
		Date:      res.Date,
		StartTime: res.StartTime,
		EndTime:   res.EndTime,
		StaffID:   res.StaffID,
		Subtotal:  subtotal,
		Discount:  res.Discount,
	}, nil
}

func (s *ReservationService) resolveStaff(req *CreateReservationReq, startMin, endMin int) (*entity.Staff, error) {
	if req.StaffID == nil {
		staff, err := s.StaffSvc.AutoAssign(req.Date, startMin, endMin, req.MenuIDs)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, ErrNoStaffAvailable
		}
		return staff, nil
	}

	qualified, err := s.StaffSvc.Qualified(req.Date, startMin, endMin, req.MenuIDs)
	if err != nil {
		return nil, err
	}
	reservations, err := s.Reservations.ConfirmedByDate(nil, req.Date)
	if err != nil {
		return nil, err
	}
	for i := range qualified {
		if qualified[i].ID != *req.StaffID {
			continue
		}
		if pickAssignee(qualified[i:i+1], reservations, startMin, endMin) == nil {
			return nil, ErrStaffNotQualified
		}
		return &qualified[i], nil
	}
	return nil, ErrStaffNotQualified
}

func slotIsFree(slots []Slot, startTime string) bool {
	for _, slot := range slots {
		if slot.Time == startTime {
			return slot.Available
		}
	}
	return false
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	var out []uint
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ----- lifecycle -----

// Cancel moves a CONFIRMED reservation to CANCELLED and voids any
// coupon redemption in the same transaction. Owner-scoped unless admin.
func (s *ReservationService) Cancel(userID uint, reservationID uint, asAdmin bool) error {
	res, err := s.Reservations.FindByID(reservationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReservationGone
	}
	if err != nil {
		return err
	}
	if !asAdmin && res.UserID != userID {
		return ErrReservationGone
	}
	if res.Status != entity.ReservationConfirmed {
		return ErrNotCancellable
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Reservations.UpdateStatus(tx, res.ID, entity.ReservationCancelled); err != nil {
			return err
		}
		if res.CouponID != nil {
			if err := s.Coupons.VoidUsageForReservation(tx, res.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	res.Status = entity.ReservationCancelled
	if s.Notifier != nil {
		s.Notifier.ReservationCancelled(res)
	}
	return nil
}

// MarkNoShow is an admin transition from CONFIRMED.
func (s *ReservationService) MarkNoShow(reservationID uint) error {
	res, err := s.Reservations.FindByID(reservationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReservationGone
	}
	if err != nil {
		return err
	}
	if res.Status != entity.ReservationConfirmed {
		return ErrNotCancellable
	}
	return s.Reservations.UpdateStatus(nil, res.ID, entity.ReservationNoShow)
}

func (s *ReservationService) ListForUser(userID uint, limit int) ([]repository.ReservationSummary, error) {
	return s.Reservations.ListForUser(userID, limit)
}

func (s *ReservationService) DetailForUser(userID, reservationID uint) (*entity.Reservation, error) {
	res, err := s.Reservations.FindByIDForUser(userID, reservationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationGone
	}
	return res, err
}

func (s *ReservationService) ListBetween(from, to, status string, offset, limit int) ([]repository.ReservationSummary, error) {
	return s.Reservations.ListBetween(from, to, status, offset, limit)
}
