package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHHMM(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "00:00", FormatHHMM(0))
	assert.Equal(t, "09:05", FormatHHMM(545))
	assert.Equal(t, "19:50", FormatHHMM(1190))
}

func TestOverlaps(t *testing.T) {
	// Half-open intervals: touching endpoints do not conflict.
	assert.False(t, Overlaps(600, 660, 660, 720), "back to back")
	assert.False(t, Overlaps(660, 720, 600, 660), "back to back reversed")
	assert.True(t, Overlaps(600, 661, 660, 720), "one minute in")
	assert.True(t, Overlaps(600, 720, 630, 660), "contained")
	assert.True(t, Overlaps(630, 660, 600, 720), "containing")
	assert.False(t, Overlaps(600, 660, 720, 780), "disjoint")
}

func TestDateAtNoon(t *testing.T) {
	d, err := DateAtNoon("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, 12, d.Hour())
	assert.Equal(t, time.Thursday, d.Weekday())

	_, err = DateAtNoon("2026/01/15")
	assert.Error(t, err)
	_, err = DateAtNoon("not a date")
	assert.Error(t, err)
}

func TestParseWeekdayCSV(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Sunday, time.Wednesday}, ParseWeekdayCSV("0,3"))
	assert.Equal(t, []time.Weekday{time.Tuesday}, ParseWeekdayCSV(" 2 "))
	assert.Nil(t, ParseWeekdayCSV(""))
	assert.Nil(t, ParseWeekdayCSV("7,x,-1"))
}
