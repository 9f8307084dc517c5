package services

import (
	"errors"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/repository"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"
)

var ErrStaffNotFound = errors.New("staff not found")

type StaffService struct {
	Staff        *repository.StaffRepository
	Reservations *repository.ReservationRepository
}

func NewStaffService(staff *repository.StaffRepository, reservations *repository.ReservationRepository) *StaffService {
	return &StaffService{Staff: staff, Reservations: reservations}
}

// Qualified returns the active staff who are scheduled over the whole
// [start,end) interval on the date and can handle every requested menu.
func (s *StaffService) Qualified(date string, startMin, endMin int, menuIDs []uint) ([]entity.Staff, error) {
	day, err := utils.DateAtNoon(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	staff, err := s.Staff.ListActiveForDate(date)
	if err != nil {
		return nil, err
	}
	return qualifiedStaff(staff, day.Weekday(), startMin, endMin, menuIDs), nil
}

// AutoAssign picks a staff member for the interval: qualified, no
// conflicting CONFIRMED reservation, fewest reservations that day, ties
// broken by display order. A nil result means nobody can take it — a
// signal to the caller, not an error.
func (s *StaffService) AutoAssign(date string, startMin, endMin int, menuIDs []uint) (*entity.Staff, error) {
	candidates, err := s.Qualified(date, startMin, endMin, menuIDs)
	if err != nil {
		return nil, err
	}
	reservations, err := s.Reservations.ConfirmedByDate(nil, date)
	if err != nil {
		return nil, err
	}
	return pickAssignee(candidates, reservations, startMin, endMin), nil
}

// qualifiedStaff filters on schedule coverage and menu capability.
func qualifiedStaff(staff []entity.Staff, weekday time.Weekday, startMin, endMin int, menuIDs []uint) []entity.Staff {
	var out []entity.Staff
	for _, st := range staff {
		if !worksInterval(&st, weekday, startMin, endMin) {
			continue
		}
		if !capableOf(&st, menuIDs) {
			continue
		}
		out = append(out, st)
	}
	return out
}

// worksInterval checks schedule coverage: a date-specific override wins
// over the weekly schedule, and an override with null times is a day off.
// The caller preloads Overrides filtered to the requested date.
func worksInterval(st *entity.Staff, weekday time.Weekday, startMin, endMin int) bool {
	if len(st.Overrides) > 0 {
		o := st.Overrides[0]
		if o.StartTime == nil || o.EndTime == nil {
			return false
		}
		return coversInterval(*o.StartTime, *o.EndTime, startMin, endMin)
	}
	for _, sc := range st.Schedules {
		if !sc.Active || time.Weekday(sc.Weekday) != weekday {
			continue
		}
		if coversInterval(sc.StartTime, sc.EndTime, startMin, endMin) {
			return true
		}
	}
	return false
}

func coversInterval(start, end string, startMin, endMin int) bool {
	ws, err1 := utils.ParseHHMM(start)
	we, err2 := utils.ParseHHMM(end)
	if err1 != nil || err2 != nil {
		return false
	}
	return ws <= startMin && we >= endMin
}

// capableOf: an empty capability set means capable of every menu.
func capableOf(st *entity.Staff, menuIDs []uint) bool {
	if len(st.Menus) == 0 {
		return true
	}
	capable := make(map[uint]bool, len(st.Menus))
	for _, m := range st.Menus {
		capable[m.ID] = true
	}
	for _, id := range menuIDs {
		if !capable[id] {
			return false
		}
	}
	return true
}

// pickAssignee load-balances among unconflicted candidates. Candidates
// arrive ordered by display order, so the first minimum wins a tie.
func pickAssignee(candidates []entity.Staff, reservations []entity.Reservation, startMin, endMin int) *entity.Staff {
	var best *entity.Staff
	bestCount := -1
	for i := range candidates {
		st := &candidates[i]
		count := 0
		conflicted := false
		for _, r := range reservations {
			if r.StaffID == nil || *r.StaffID != st.ID {
				continue
			}
			count++
			rs, err1 := utils.ParseHHMM(r.StartTime)
			re, err2 := utils.ParseHHMM(r.EndTime)
			if err1 != nil || err2 != nil {
				continue
			}
			if utils.Overlaps(startMin, endMin, rs, re) {
				conflicted = true
				break
			}
		}
		if conflicted {
			continue
		}
		if bestCount == -1 || count < bestCount {
			best = st
			bestCount = count
		}
	}
	return best
}

// ---- admin management ----

func (s *StaffService) List(includeInactive bool) ([]entity.Staff, error) {
	if includeInactive {
		return s.Staff.ListAll()
	}
	return s.Staff.ListActive()
}

func (s *StaffService) Get(id uint) (*entity.Staff, error) {
	st, err := s.Staff.FindByID(id)
	if err != nil {
		return nil, ErrStaffNotFound
	}
	return st, nil
}

func (s *StaffService) Create(st *entity.Staff) error {
	return s.Staff.Create(st)
}

func (s *StaffService) Update(st *entity.Staff) error {
	return s.Staff.Update(st)
}

// SetSchedules replaces the weekly schedule after validating each row.
func (s *StaffService) SetSchedules(staffID uint, rows []entity.StaffSchedule) error {
	if _, err := s.Staff.FindByID(staffID); err != nil {
		return ErrStaffNotFound
	}
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			return errors.New("weekday must be 0-6")
		}
		start, err1 := utils.ParseHHMM(row.StartTime)
		end, err2 := utils.ParseHHMM(row.EndTime)
		if err1 != nil || err2 != nil || start >= end {
			return errors.New("invalid schedule time range")
		}
	}
	return s.Staff.ReplaceSchedules(staffID, rows)
}

// SetOverride records a date-specific override; nil times = day off.
func (s *StaffService) SetOverride(o *entity.StaffScheduleOverride) error {
	if _, err := s.Staff.FindByID(o.StaffID); err != nil {
		return ErrStaffNotFound
	}
	if _, err := utils.DateAtNoon(o.Date); err != nil {
		return ErrInvalidDate
	}
	if (o.StartTime == nil) != (o.EndTime == nil) {
		return errors.New("override needs both times or neither")
	}
	if o.StartTime != nil {
		start, err1 := utils.ParseHHMM(*o.StartTime)
		end, err2 := utils.ParseHHMM(*o.EndTime)
		if err1 != nil || err2 != nil || start >= end {
			return errors.New("invalid override time range")
		}
	}
	return s.Staff.UpsertOverride(o)
}

func (s *StaffService) ClearOverride(staffID uint, date string) error {
	return s.Staff.DeleteOverride(staffID, date)
}
