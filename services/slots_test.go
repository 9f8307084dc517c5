package services

import (
	"testing"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	// 09:00-20:00 every 10 minutes: 66 starts, close itself excluded.
	slots := GenerateSlots(540, 1200, 10)
	require.Len(t, slots, 66)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "19:50", slots[len(slots)-1])

	slots = GenerateSlots(600, 1200, 30)
	require.Len(t, slots, 20)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "19:30", slots[len(slots)-1])
}

func TestGenerateSlotsEmpty(t *testing.T) {
	assert.Empty(t, GenerateSlots(600, 600, 30))
	assert.Empty(t, GenerateSlots(700, 600, 30))
}

func TestParseHours(t *testing.T) {
	h, err := parseHours(&entity.BusinessHour{
		DayType:      entity.DayTypeWeekday,
		OpenTime:     "10:00",
		CloseTime:    "20:00",
		SlotInterval: 30,
		LastBooking:  "19:00",
	})
	require.NoError(t, err)
	assert.Equal(t, dayHours{open: 600, close: 1200, interval: 30, lastBooking: 1140}, h)

	_, err = parseHours(&entity.BusinessHour{OpenTime: "10:00", CloseTime: "20:00", SlotInterval: 0, LastBooking: "19:00"})
	assert.ErrorIs(t, err, ErrBadBusinessHours)

	_, err = parseHours(&entity.BusinessHour{OpenTime: "20:00", CloseTime: "10:00", SlotInterval: 30, LastBooking: "19:00"})
	assert.ErrorIs(t, err, ErrBadBusinessHours)

	_, err = parseHours(&entity.BusinessHour{OpenTime: "open", CloseTime: "20:00", SlotInterval: 30, LastBooking: "19:00"})
	assert.ErrorIs(t, err, ErrBadBusinessHours)
}
