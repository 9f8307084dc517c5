package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// bookingFixture wires the full service stack onto an in-memory store
// with one menu, one staff member and weekday hours 10:00-20:00.
type bookingFixture struct {
	db           *gorm.DB
	reservations *ReservationService
	coupons      *repository.CouponRepository
	menu         entity.Menu
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Staff{},
		&entity.StaffSchedule{},
		&entity.StaffScheduleOverride{},
		&entity.MenuCategory{},
		&entity.Menu{},
		&entity.BusinessHour{},
		&entity.Closure{},
		&entity.Reservation{},
		&entity.ReservationMenu{},
		&entity.Coupon{},
		&entity.CouponUsage{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Setting{},
	))

	require.NoError(t, db.Create(&entity.BusinessHour{
		DayType:      entity.DayTypeWeekday,
		OpenTime:     "10:00",
		CloseTime:    "20:00",
		SlotInterval: 30,
		LastBooking:  "19:00",
	}).Error)

	category := entity.MenuCategory{Name: "Cut"}
	require.NoError(t, db.Create(&category).Error)
	menu := entity.Menu{Name: "Cut & Blow", Price: 8000, DurationMin: 60, Active: true, MenuCategoryID: category.ID}
	require.NoError(t, db.Create(&menu).Error)

	staff := entity.Staff{Name: "Aoi", Active: true, DisplayOrder: 1}
	require.NoError(t, db.Create(&staff).Error)
	for wd := 1; wd <= 6; wd++ {
		require.NoError(t, db.Create(&entity.StaffSchedule{
			StaffID: staff.ID, Weekday: wd, StartTime: "10:00", EndTime: "19:00", Active: true,
		}).Error)
	}

	for _, u := range []entity.User{
		{Email: "one@example.com", Role: "customer"},
		{Email: "two@example.com", Role: "customer"},
	} {
		require.NoError(t, db.Create(&u).Error)
	}

	settingRepo := repository.NewSettingRepository(db)
	closureRepo := repository.NewClosureRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	clock := func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local) }

	availability := NewAvailabilityService(settingRepo, closureRepo, reservationRepo, menuRepo)
	availability.now = clock
	staffSvc := NewStaffService(staffRepo, reservationRepo)
	couponSvc := NewCouponService(couponRepo, saleRepo)
	couponSvc.now = clock
	svc := NewReservationService(db, reservationRepo, menuRepo, couponRepo, availability, staffSvc, couponSvc)
	svc.now = clock

	return &bookingFixture{db: db, reservations: svc, coupons: couponRepo, menu: menu}
}

func (f *bookingFixture) book(userID uint, startTime string) (*CreateReservationRes, error) {
	return f.reservations.Create(userID, &CreateReservationReq{
		Date:      "2026-01-15", // Thursday
		StartTime: startTime,
		MenuIDs:   []uint{f.menu.ID},
	})
}

func TestCreateReservation(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.book(1, "13:00")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Code)
	assert.Equal(t, "13:00", res.StartTime)
	assert.Equal(t, "14:00", res.EndTime)
	assert.Equal(t, int64(8000), res.Subtotal)
	require.NotNil(t, res.StaffID, "auto-assigned")

	var stored entity.Reservation
	require.NoError(t, f.db.Preload("Items").First(&stored, res.ID).Error)
	assert.Equal(t, entity.ReservationConfirmed, stored.Status)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(8000), stored.Items[0].Price)
}

func TestCreateReservationConflicts(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.book(1, "13:00")
	require.NoError(t, err)

	_, err = f.book(2, "13:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable, "same slot")

	_, err = f.book(2, "13:30")
	assert.ErrorIs(t, err, ErrSlotUnavailable, "overlapping slot")

	_, err = f.book(2, "14:00")
	assert.NoError(t, err, "back to back is fine")
}

func TestCreateReservationValidation(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.reservations.Create(1, &CreateReservationReq{Date: "2026-01-15", StartTime: "13:00"})
	assert.ErrorIs(t, err, ErrMenuRequired)

	_, err = f.reservations.Create(1, &CreateReservationReq{
		Date: "2026-01-15", StartTime: "13:00", MenuIDs: []uint{999},
	})
	assert.ErrorIs(t, err, ErrMenuNotFound)

	_, err = f.reservations.Create(1, &CreateReservationReq{
		Date: "someday", StartTime: "13:00", MenuIDs: []uint{f.menu.ID},
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.book(1, "13:15")
	assert.ErrorIs(t, err, ErrSlotUnavailable, "off the slot grid")
}

func TestCreateReservationClosedDay(t *testing.T) {
	f := newBookingFixture(t)
	require.NoError(t, f.db.Create(&entity.Closure{Date: "2026-01-15", Kind: entity.ClosureHoliday}).Error)

	_, err := f.book(1, "13:00")
	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestCreateReservationStaffRequests(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.reservations.Create(1, &CreateReservationReq{
		Date: "2026-01-15", StartTime: "13:00", MenuIDs: []uint{f.menu.ID}, StaffID: ptr(uint(1)),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), *res.StaffID)

	// The only staff member is now booked 13:00-14:00.
	_, err = f.reservations.Create(2, &CreateReservationReq{
		Date: "2026-01-15", StartTime: "16:00", MenuIDs: []uint{f.menu.ID}, StaffID: ptr(uint(42)),
	})
	assert.ErrorIs(t, err, ErrStaffNotQualified, "unknown staff id")
}

func TestCancelReservation(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.book(1, "13:00")
	require.NoError(t, err)

	assert.ErrorIs(t, f.reservations.Cancel(2, res.ID, false), ErrReservationGone, "not the owner")
	require.NoError(t, f.reservations.Cancel(1, res.ID, false))
	assert.ErrorIs(t, f.reservations.Cancel(1, res.ID, false), ErrNotCancellable, "already cancelled")

	// The slot opens back up.
	_, err = f.book(2, "13:00")
	assert.NoError(t, err)
}

func TestReservationWithCoupon(t *testing.T) {
	f := newBookingFixture(t)
	limit := 1
	require.NoError(t, f.coupons.Create(&entity.Coupon{
		Code:         "welcome20",
		DiscountType: entity.DiscountPercentage,
		Value:        20,
		CustomerType: entity.CouponCustomerAll,
		UsageLimit:   &limit,
		Active:       true,
	}))

	res, err := f.reservations.Create(1, &CreateReservationReq{
		Date: "2026-01-15", StartTime: "13:00", MenuIDs: []uint{f.menu.ID}, CouponCode: "WELCOME20",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1600), res.Discount)

	// The redemption consumed the only use.
	_, err = f.reservations.Create(2, &CreateReservationReq{
		Date: "2026-01-15", StartTime: "16:00", MenuIDs: []uint{f.menu.ID}, CouponCode: "WELCOME20",
	})
	var rejected *CouponRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "coupon usage limit reached", rejected.Reason)

	// Cancelling releases it again.
	require.NoError(t, f.reservations.Cancel(1, res.ID, false))
	_, err = f.reservations.Create(2, &CreateReservationReq{
		Date: "2026-01-15", StartTime: "16:00", MenuIDs: []uint{f.menu.ID}, CouponCode: "WELCOME20",
	})
	assert.NoError(t, err)
}

func TestReservationWithUnknownCoupon(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.reservations.Create(1, &CreateReservationReq{
		Date: "2026-01-15", StartTime: "13:00", MenuIDs: []uint{f.menu.ID}, CouponCode: "NOPE",
	})
	var rejected *CouponRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "coupon not found", rejected.Reason)
}
