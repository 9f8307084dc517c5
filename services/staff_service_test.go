package services

import (
	"testing"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

func staffWithHours(id uint, weekday time.Weekday, start, end string) entity.Staff {
	return entity.Staff{
		Model:  gorm.Model{ID: id},
		Name:   "staff",
		Active: true,
		Schedules: []entity.StaffSchedule{
			{StaffID: id, Weekday: int(weekday), StartTime: start, EndTime: end, Active: true},
		},
	}
}

func TestWorksInterval(t *testing.T) {
	st := staffWithHours(1, time.Thursday, "10:00", "18:00")

	assert.True(t, worksInterval(&st, time.Thursday, 600, 660))
	assert.True(t, worksInterval(&st, time.Thursday, 1020, 1080), "ends exactly at shift end")
	assert.False(t, worksInterval(&st, time.Thursday, 1050, 1110), "runs past shift end")
	assert.False(t, worksInterval(&st, time.Thursday, 540, 660), "starts before shift")
	assert.False(t, worksInterval(&st, time.Friday, 600, 660), "not scheduled that day")
}

func TestWorksIntervalInactiveSchedule(t *testing.T) {
	st := staffWithHours(1, time.Thursday, "10:00", "18:00")
	st.Schedules[0].Active = false

	assert.False(t, worksInterval(&st, time.Thursday, 600, 660))
}

func TestWorksIntervalOverrideWins(t *testing.T) {
	st := staffWithHours(1, time.Thursday, "10:00", "18:00")
	st.Overrides = []entity.StaffScheduleOverride{
		{StaffID: 1, Date: "2026-01-15", StartTime: ptr("13:00"), EndTime: ptr("16:00")},
	}

	assert.False(t, worksInterval(&st, time.Thursday, 600, 660), "weekly hours ignored when overridden")
	assert.True(t, worksInterval(&st, time.Thursday, 780, 840))
}

func TestWorksIntervalOverrideDayOff(t *testing.T) {
	st := staffWithHours(1, time.Thursday, "10:00", "18:00")
	st.Overrides = []entity.StaffScheduleOverride{{StaffID: 1, Date: "2026-01-15"}}

	assert.False(t, worksInterval(&st, time.Thursday, 600, 660))
}

func TestCapableOf(t *testing.T) {
	anyMenu := entity.Staff{Model: gorm.Model{ID: 1}}
	assert.True(t, capableOf(&anyMenu, []uint{1, 2, 3}), "empty capability set means everything")

	cut := entity.Staff{
		Model: gorm.Model{ID: 2},
		Menus: []entity.Menu{{Model: gorm.Model{ID: 1}}, {Model: gorm.Model{ID: 2}}},
	}
	assert.True(t, capableOf(&cut, []uint{1}))
	assert.True(t, capableOf(&cut, []uint{1, 2}))
	assert.False(t, capableOf(&cut, []uint{1, 3}), "every requested menu must be covered")
}

func TestQualifiedStaff(t *testing.T) {
	working := staffWithHours(1, time.Thursday, "10:00", "18:00")
	offThatDay := staffWithHours(2, time.Friday, "10:00", "18:00")
	wrongMenu := staffWithHours(3, time.Thursday, "10:00", "18:00")
	wrongMenu.Menus = []entity.Menu{{Model: gorm.Model{ID: 99}}}

	got := qualifiedStaff([]entity.Staff{working, offThatDay, wrongMenu}, time.Thursday, 600, 660, []uint{1})
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestPickAssigneeFewestReservations(t *testing.T) {
	busy := staffWithHours(1, time.Thursday, "10:00", "18:00")
	free := staffWithHours(2, time.Thursday, "10:00", "18:00")
	reservations := []entity.Reservation{
		{StaffID: ptr(uint(1)), StartTime: "10:00", EndTime: "11:00", Status: entity.ReservationConfirmed},
		{StaffID: ptr(uint(1)), StartTime: "15:00", EndTime: "16:00", Status: entity.ReservationConfirmed},
		{StaffID: ptr(uint(2)), StartTime: "10:00", EndTime: "11:00", Status: entity.ReservationConfirmed},
	}

	got := pickAssignee([]entity.Staff{busy, free}, reservations, 780, 840)
	require.NotNil(t, got)
	assert.Equal(t, uint(2), got.ID)
}

func TestPickAssigneeSkipsConflicted(t *testing.T) {
	a := staffWithHours(1, time.Thursday, "10:00", "18:00")
	b := staffWithHours(2, time.Thursday, "10:00", "18:00")
	reservations := []entity.Reservation{
		{StaffID: ptr(uint(2)), StartTime: "13:00", EndTime: "14:00", Status: entity.ReservationConfirmed},
		{StaffID: ptr(uint(1)), StartTime: "10:00", EndTime: "11:00", Status: entity.ReservationConfirmed},
		{StaffID: ptr(uint(1)), StartTime: "15:00", EndTime: "16:00", Status: entity.ReservationConfirmed},
	}

	// b has fewer bookings but is busy 13:00-14:00.
	got := pickAssignee([]entity.Staff{a, b}, reservations, 780, 840)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)
}

func TestPickAssigneeDisplayOrderBreaksTies(t *testing.T) {
	first := staffWithHours(1, time.Thursday, "10:00", "18:00")
	second := staffWithHours(2, time.Thursday, "10:00", "18:00")

	// Candidates arrive in display order; with equal load the first wins.
	got := pickAssignee([]entity.Staff{first, second}, nil, 600, 660)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)
}

func TestPickAssigneeNobodyFree(t *testing.T) {
	only := staffWithHours(1, time.Thursday, "10:00", "18:00")
	reservations := []entity.Reservation{
		{StaffID: ptr(uint(1)), StartTime: "13:00", EndTime: "14:00", Status: entity.ReservationConfirmed},
	}

	assert.Nil(t, pickAssignee([]entity.Staff{only}, reservations, 780, 840))
	assert.Nil(t, pickAssignee(nil, nil, 780, 840))
}
