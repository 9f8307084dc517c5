package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseHHMM converts a zero-padded "HH:MM" string to minutes since midnight.
func ParseHHMM(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// FormatHHMM renders minutes since midnight as "HH:MM".
func FormatHHMM(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Half-open on purpose: a reservation ending exactly when another starts
// is not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// DateAtNoon parses a date-only string and anchors it at 12:00 local time,
// so weekday/closure lookups can never shift a day across a timezone edge.
func DateAtNoon(date string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	return d.Add(12 * time.Hour), nil
}

// MinutesOfDay returns the wall-clock minutes since midnight of t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseWeekdayCSV parses a comma-joined weekday list ("0,3" = Sun, Wed).
// Malformed entries are skipped.
func ParseWeekdayCSV(csv string) []time.Weekday {
	var out []time.Weekday
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		out = append(out, time.Weekday(n))
	}
	return out
}
