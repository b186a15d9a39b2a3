package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthDay(t *testing.T) {
	tests := []struct {
		input string
		want  MonthDay
	}{
		{input: "01-01", want: MonthDay{Month: time.January, Day: 1}},
		{input: "12-31", want: MonthDay{Month: time.December, Day: 31}},
		{input: "07-04", want: MonthDay{Month: time.July, Day: 4}},
	}
	for _, tt := range tests {
		got, err := ParseMonthDay(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.input, got.String())
	}
}

func TestParseMonthDay_Invalid(t *testing.T) {
	invalid := []string{"", "1-1", "13-01", "00-01", "01-32", "01-00", "01/01", "01-01 ", "aa-bb"}
	for _, input := range invalid {
		_, err := ParseMonthDay(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input string
		want  ClockTime
	}{
		{input: "00:00", want: ClockTime{Hour: 0, Minute: 0}},
		{input: "23:59", want: ClockTime{Hour: 23, Minute: 59}},
		{input: "20:15", want: ClockTime{Hour: 20, Minute: 15}},
	}
	for _, tt := range tests {
		got, err := ParseClockTime(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.input, got.String())
	}
}

func TestParseClockTime_Invalid(t *testing.T) {
	invalid := []string{"", "9:00", "24:00", "12:60", "12-30", "12:30 ", "ab:cd"}
	for _, input := range invalid {
		_, err := ParseClockTime(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestClockTime_MinuteOfDay(t *testing.T) {
	assert.Equal(t, 0, ClockTime{Hour: 0, Minute: 0}.MinuteOfDay())
	assert.Equal(t, 750, ClockTime{Hour: 12, Minute: 30}.MinuteOfDay())
	assert.Equal(t, 1439, ClockTime{Hour: 23, Minute: 59}.MinuteOfDay())
}

func TestMonthDayOf(t *testing.T) {
	instant := time.Date(2026, time.March, 15, 9, 45, 0, 0, time.UTC)

	assert.Equal(t, MonthDay{Month: time.March, Day: 15}, MonthDayOf(instant))
	assert.Equal(t, ClockTime{Hour: 9, Minute: 45}, ClockTimeOf(instant))
}
