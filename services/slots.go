package services

import (
	"errors"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"
	"github.com/d-syoyu/beauty-salon-web-sub001/utils"
)

// Slot is one candidate start time in a day's bookable grid.
type Slot struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}

var ErrBadBusinessHours = errors.New("invalid business hours configuration")

// dayHours is a business-hour row parsed to minutes-of-day.
type dayHours struct {
	open        int
	close       int
	interval    int
	lastBooking int
}

func parseHours(h *entity.BusinessHour) (dayHours, error) {
	open, err := utils.ParseHHMM(h.OpenTime)
	if err != nil {
		return dayHours{}, ErrBadBusinessHours
	}
	close, err := utils.ParseHHMM(h.CloseTime)
	if err != nil {
		return dayHours{}, ErrBadBusinessHours
	}
	last, err := utils.ParseHHMM(h.LastBooking)
	if err != nil {
		return dayHours{}, ErrBadBusinessHours
	}
	if h.SlotInterval <= 0 || open >= close {
		return dayHours{}, ErrBadBusinessHours
	}
	return dayHours{open: open, close: close, interval: h.SlotInterval, lastBooking: last}, nil
}

// GenerateSlots produces the fixed grid of start times for a business day:
// open inclusive up to but excluding close, stepping by interval minutes.
func GenerateSlots(openMin, closeMin, intervalMin int) []string {
	var out []string
	for t := openMin; t < closeMin; t += intervalMin {
		out = append(out, utils.FormatHHMM(t))
	}
	return out
}
