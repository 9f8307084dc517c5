package services

import (
	"testing"
	"time"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// 2026-01-15 is a Thursday.
func testDayCtx() dayContext {
	return dayContext{
		date:        time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local),
		now:         time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local),
		hours:       dayHours{open: 600, close: 1200, interval: 30, lastBooking: 1140},
		horizonDays: 30,
		durationMin: 60,
	}
}

func slotAt(t *testing.T, day DayAvailability, at string) Slot {
	t.Helper()
	for _, s := range day.Slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("no slot %s", at)
	return Slot{}
}

func TestEvaluateDayOpenWithReservation(t *testing.T) {
	ctx := testDayCtx()
	ctx.reservations = []entity.Reservation{
		{Date: "2026-01-15", StartTime: "13:00", EndTime: "14:00", Status: entity.ReservationConfirmed},
	}

	day := evaluateDay(ctx)
	require.False(t, day.IsClosed)
	require.Len(t, day.Slots, 20) // 10:00..19:30 every 30 min

	assert.True(t, slotAt(t, day, "11:00").Available)
	assert.True(t, slotAt(t, day, "12:00").Available, "ends exactly at the booking start")
	assert.False(t, slotAt(t, day, "12:30").Available, "would run into the booking")
	assert.False(t, slotAt(t, day, "13:00").Available)
	assert.False(t, slotAt(t, day, "13:30").Available)
	assert.True(t, slotAt(t, day, "14:00").Available, "starts exactly at the booking end")
	assert.True(t, slotAt(t, day, "19:00").Available, "last booking, ends at close")
	assert.False(t, slotAt(t, day, "19:30").Available, "past last booking")
}

func TestEvaluateDayDurationPushesPastClose(t *testing.T) {
	ctx := testDayCtx()
	ctx.durationMin = 90

	day := evaluateDay(ctx)
	assert.True(t, slotAt(t, day, "18:30").Available)
	assert.False(t, slotAt(t, day, "19:00").Available, "18:30+90 fits, 19:00+90 does not")
}

func TestEvaluateDayFullDayHoliday(t *testing.T) {
	ctx := testDayCtx()
	ctx.closures = []entity.Closure{{Date: "2026-01-15", Kind: entity.ClosureHoliday}}

	day := evaluateDay(ctx)
	assert.True(t, day.IsClosed)
	assert.Empty(t, day.Slots)
}

func TestEvaluateDayHolidayBeatsSpecialOpen(t *testing.T) {
	ctx := testDayCtx()
	ctx.closures = []entity.Closure{
		{Date: "2026-01-15", Kind: entity.ClosureSpecialOpen},
		{Date: "2026-01-15", Kind: entity.ClosureHoliday},
	}

	assert.True(t, evaluateDay(ctx).IsClosed)
}

func TestEvaluateDayPartialHoliday(t *testing.T) {
	ctx := testDayCtx()
	ctx.closures = []entity.Closure{
		{Date: "2026-01-15", Kind: entity.ClosureHoliday, StartTime: ptr("12:00"), EndTime: ptr("14:00")},
	}

	day := evaluateDay(ctx)
	require.False(t, day.IsClosed, "time-ranged closure keeps the day open")
	assert.True(t, slotAt(t, day, "11:00").Available)
	assert.False(t, slotAt(t, day, "11:30").Available, "runs into the closed window")
	assert.False(t, slotAt(t, day, "13:30").Available)
	assert.True(t, slotAt(t, day, "14:00").Available)
}

func TestEvaluateDayClosedWeekday(t *testing.T) {
	ctx := testDayCtx()
	ctx.closedWeekdays = []time.Weekday{time.Thursday}

	assert.True(t, evaluateDay(ctx).IsClosed)
}

func TestEvaluateDaySpecialOpenReopens(t *testing.T) {
	ctx := testDayCtx()
	ctx.closedWeekdays = []time.Weekday{time.Thursday}
	ctx.closures = []entity.Closure{{Date: "2026-01-15", Kind: entity.ClosureSpecialOpen}}

	day := evaluateDay(ctx)
	require.False(t, day.IsClosed)
	assert.True(t, slotAt(t, day, "10:00").Available)
}

func TestEvaluateDaySpecialOpenTimeRange(t *testing.T) {
	ctx := testDayCtx()
	ctx.closedWeekdays = []time.Weekday{time.Thursday}
	ctx.closures = []entity.Closure{
		{Date: "2026-01-15", Kind: entity.ClosureSpecialOpen, StartTime: ptr("12:00"), EndTime: ptr("16:00")},
	}

	day := evaluateDay(ctx)
	require.False(t, day.IsClosed)
	assert.False(t, slotAt(t, day, "11:30").Available, "before the reopened window")
	assert.True(t, slotAt(t, day, "12:00").Available)
	assert.True(t, slotAt(t, day, "15:00").Available, "60 min still fits before 16:00")
	assert.False(t, slotAt(t, day, "15:30").Available, "would end after the window")
}

func TestEvaluateDaySpecialOpenIgnoredOnOpenDay(t *testing.T) {
	ctx := testDayCtx()
	ctx.closures = []entity.Closure{
		{Date: "2026-01-15", Kind: entity.ClosureSpecialOpen, StartTime: ptr("12:00"), EndTime: ptr("16:00")},
	}

	// The weekday is not closed, so the record changes nothing: the full
	// grid stays bookable.
	day := evaluateDay(ctx)
	require.False(t, day.IsClosed)
	assert.True(t, slotAt(t, day, "10:00").Available)
	assert.True(t, slotAt(t, day, "11:30").Available)
	assert.True(t, slotAt(t, day, "19:00").Available)
}

func TestEvaluateDayBeyondHorizon(t *testing.T) {
	ctx := testDayCtx()
	ctx.now = time.Date(2025, 11, 1, 9, 0, 0, 0, time.Local)

	day := evaluateDay(ctx)
	assert.False(t, day.IsClosed, "not closed, just not bookable yet")
	assert.Empty(t, day.Slots)
}

func TestEvaluateDayInThePast(t *testing.T) {
	ctx := testDayCtx()
	ctx.now = time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local)

	day := evaluateDay(ctx)
	assert.False(t, day.IsClosed)
	assert.Empty(t, day.Slots)
}

func TestEvaluateDayToday(t *testing.T) {
	ctx := testDayCtx()
	ctx.now = time.Date(2026, 1, 15, 13, 5, 0, 0, time.Local)

	day := evaluateDay(ctx)
	assert.False(t, slotAt(t, day, "12:30").Available)
	assert.False(t, slotAt(t, day, "13:00").Available, "already started")
	assert.True(t, slotAt(t, day, "13:30").Available)
}

func TestDayTypeFor(t *testing.T) {
	assert.Equal(t, entity.DayTypeWeekday, dayTypeFor(time.Thursday))
	assert.Equal(t, entity.DayTypeHoliday, dayTypeFor(time.Saturday))
	assert.Equal(t, entity.DayTypeHoliday, dayTypeFor(time.Sunday))
}
