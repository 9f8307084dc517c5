package services

import (
	"errors"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrMenuNotFound = errors.New("menu not found")
)

// DayAvailability is the public availability result for one date.
type DayAvailability struct {
	Date     string `json:"date"`
	IsClosed bool   `json:"isClosed"`
	Slots    []Slot `json:"slots"`
}

// DaySummary is one row of the month calendar.
type DaySummary struct {
	Date     string `json:"date"`
	IsClosed bool   `json:"isClosed"`
	HasSlots bool   `json:"hasSlots"`
}

type AvailabilityService struct {
	Settings     *repository.SettingRepository
	Closures     *repository.ClosureRepository
	Reservations *repository.ReservationRepository
	Menus        *repository.MenuRepository

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewAvailabilityService(
	settings *repository.SettingRepository,
	closures *repository.ClosureRepository,
	reservations *repository.ReservationRepository,
	menus *repository.MenuRepository,
) *AvailabilityService {
	return &AvailabilityService{
		Settings:     settings,
		Closures:     closures,
		Reservations: reservations,
		Menus:        menus,
		now:          time.Now,
	}
}

// dayContext is everything the pure evaluator needs, loaded up front so
// the evaluation itself touches no store.
type dayContext struct {
	date           time.Time // noon-anchored
	now            time.Time
	hours          dayHours
	closedWeekdays []time.Weekday
	closures       []entity.Closure
	reservations   []entity.Reservation // CONFIRMED, same date
	horizonDays    int
	durationMin    int
}

// DayAvailability evaluates every slot of one date for a requested menu set.
func (s *AvailabilityService) DayAvailability(date string, menuIDs []uint) (*DayAvailability, error) {
	day, err := utils.DateAtNoon(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	duration, err := s.totalDuration(menuIDs)
	if err != nil {
		return nil, err
	}

	ctx, err := s.loadDayContext(day, duration)
	if err != nil {
		return nil, err
	}

	out := evaluateDay(ctx)
	return &out, nil
}

// MonthAvailability summarises each date of a month for the public calendar.
func (s *AvailabilityService) MonthAvailability(year int, month time.Month, menuIDs []uint) ([]DaySummary, error) {
	duration, err := s.totalDuration(menuIDs)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 12, 0, 0, 0, time.Local)
	var out []DaySummary
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		ctx, err := s.loadDayContext(d, duration)
		if err != nil {
			return nil, err
		}
		day := evaluateDay(ctx)
		summary := DaySummary{Date: day.Date, IsClosed: day.IsClosed}
		for _, slot := range day.Slots {
			if slot.Available {
				summary.HasSlots = true
				break
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

// totalDuration sums the requested menus' durations; default duration
// when no menus are given. Unknown or inactive ids are a not-found.
func (s *AvailabilityService) totalDuration(menuIDs []uint) (int, error) {
	if len(menuIDs) == 0 {
		return s.Settings.GetInt(entity.SettingDefaultDurationMin, 60)
	}
	menus, err := s.Menus.FindActiveByIDs(menuIDs)
	if err != nil {
		return 0, err
	}
	found := make(map[uint]int, len(menus))
	for _, m := range menus {
		found[m.ID] = m.DurationMin
	}
	total := 0
	for _, id := range menuIDs {
		d, ok := found[id]
		if !ok {
			return 0, ErrMenuNotFound
		}
		total += d
	}
	return total, nil
}

func (s *AvailabilityService) loadDayContext(day time.Time, durationMin int) (dayContext, error) {
	dateStr := day.Format(utils.DateLayout)

	hoursRow, err := s.Settings.HoursFor(dayTypeFor(day.Weekday()))
	if err != nil {
		return dayContext{}, err
	}
	hours, err := parseHours(hoursRow)
	if err != nil {
		return dayContext{}, err
	}

	closedWeekdays, err := s.Settings.ClosedWeekdays()
	if err != nil {
		return dayContext{}, err
	}
	closures, err := s.Closures.ByDate(dateStr)
	if err != nil {
		return dayContext{}, err
	}
	reservations, err := s.Reservations.ConfirmedByDate(nil, dateStr)
	if err != nil {
		return dayContext{}, err
	}
	horizon, err := s.Settings.GetInt(entity.SettingBookingHorizonDays, 30)
	if err != nil {
		return dayContext{}, err
	}

	return dayContext{
		date:           day,
		now:            s.now(),
		hours:          hours,
		closedWeekdays: closedWeekdays,
		closures:       closures,
		reservations:   reservations,
		horizonDays:    horizon,
		durationMin:    durationMin,
	}, nil
}

func dayTypeFor(wd time.Weekday) string {
	if wd == time.Saturday || wd == time.Sunday {
		return entity.DayTypeHoliday
	}
	return entity.DayTypeWeekday
}

// evaluateDay applies the availability rules in priority order.
func evaluateDay(ctx dayContext) DayAvailability {
	out := DayAvailability{Date: ctx.date.Format(utils.DateLayout)}

	// 1. Whole-day closure wins over everything.
	if dayClosed(ctx) {
		out.IsClosed = true
		return out
	}

	// 2. Outside the booking horizon: open, but nothing bookable.
	today := ctx.now.Format(utils.DateLayout)
	last := ctx.now.AddDate(0, 0, ctx.horizonDays).Format(utils.DateLayout)
	if out.Date < today || out.Date > last {
		return out
	}

	isToday := out.Date == today
	nowMin := utils.MinutesOfDay(ctx.now)
	specialStart, specialEnd, hasSpecialRange := specialOpenRange(ctx)

	for _, t := range GenerateSlots(ctx.hours.open, ctx.hours.close, ctx.hours.interval) {
		start, _ := utils.ParseHHMM(t)
		end := start + ctx.durationMin
		out.Slots = append(out.Slots, Slot{
			Time:      t,
			Available: slotAvailable(ctx, start, end, isToday, nowMin, specialStart, specialEnd, hasSpecialRange),
		})
	}
	return out
}

// dayClosed: a full-day holiday (no time range) closes the day; a closed
// weekday closes it unless a SPECIAL_OPEN record reopens that date.
func dayClosed(ctx dayContext) bool {
	specialOpen := false
	for _, c := range ctx.closures {
		switch c.Kind {
		case entity.ClosureHoliday:
			if c.StartTime == nil || c.EndTime == nil {
				return true
			}
		case entity.ClosureSpecialOpen:
			specialOpen = true
		}
	}
	if weekdayClosed(ctx) {
		return !specialOpen
	}
	return false
}

func weekdayClosed(ctx dayContext) bool {
	for _, wd := range ctx.closedWeekdays {
		if ctx.date.Weekday() == wd {
			return true
		}
	}
	return false
}

// specialOpenRange returns the time range of a SPECIAL_OPEN record when
// the record is itself time-ranged; bookings must then fit inside it.
// A SPECIAL_OPEN record only has effect on a weekday-closed date, so on
// an ordinarily open day the range is ignored.
func specialOpenRange(ctx dayContext) (int, int, bool) {
	if !weekdayClosed(ctx) {
		return 0, 0, false
	}
	for _, c := range ctx.closures {
		if c.Kind != entity.ClosureSpecialOpen || c.StartTime == nil || c.EndTime == nil {
			continue
		}
		start, err1 := utils.ParseHHMM(*c.StartTime)
		end, err2 := utils.ParseHHMM(*c.EndTime)
		if err1 == nil && err2 == nil {
			return start, end, true
		}
	}
	return 0, 0, false
}

func slotAvailable(ctx dayContext, start, end int, isToday bool, nowMin, specialStart, specialEnd int, hasSpecialRange bool) bool {
	if start > ctx.hours.lastBooking {
		return false
	}
	if isToday && start <= nowMin {
		return false
	}
	if end > ctx.hours.close {
		return false
	}
	if hasSpecialRange && (start < specialStart || end > specialEnd) {
		return false
	}
	for _, r := range ctx.reservations {
		rs, err1 := utils.ParseHHMM(r.StartTime)
		re, err2 := utils.ParseHHMM(r.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if utils.Overlaps(start, end, rs, re) {
			return false
		}
	}
	for _, c := range ctx.closures {
		if c.Kind != entity.ClosureHoliday || c.StartTime == nil || c.EndTime == nil {
			continue
		}
		cs, err1 := utils.ParseHHMM(*c.StartTime)
		ce, err2 := utils.ParseHHMM(*c.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if utils.Overlaps(start, end, cs, ce) {
			return false
		}
	}
	return true
}
