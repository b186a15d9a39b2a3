package domain

import (
	"fmt"
	"time"
)

// MonthDay is a year-independent calendar date used by date triggers.
// The wire format is "MM-DD" (e.g. "01-01" for January 1st).
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses a "MM-DD" string into a MonthDay.
func ParseMonthDay(s string) (MonthDay, error) {
	var month, day int
	if _, err := fmt.Sscanf(s, "%2d-%2d", &month, &day); err != nil || len(s) != 5 || s[2] != '-' {
		return MonthDay{}, fmt.Errorf("invalid date %q: expected MM-DD", s)
	}
	if month < 1 || month > 12 {
		return MonthDay{}, fmt.Errorf("invalid date %q: month out of range", s)
	}
	if day < 1 || day > 31 {
		return MonthDay{}, fmt.Errorf("invalid date %q: day out of range", s)
	}
	return MonthDay{Month: time.Month(month), Day: day}, nil
}

// MonthDayOf extracts the month and day of the given instant.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// String formats the date as "MM-DD".
func (d MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(d.Month), d.Day)
}

// Equal reports whether both month and day match.
func (d MonthDay) Equal(other MonthDay) bool {
	return d.Month == other.Month && d.Day == other.Day
}

// ClockTime is a time of day with minute precision used by time triggers.
// The wire format is "HH:MM" (24-hour clock, e.g. "20:15").
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a "HH:MM" string into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &hour, &minute); err != nil || len(s) != 5 || s[2] != ':' {
		return ClockTime{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid time %q: hour out of range", s)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid time %q: minute out of range", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ClockTimeOf extracts the hour and minute of the given instant.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

// String formats the time as "HH:MM".
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinuteOfDay returns the minute offset from midnight, used for range
// comparisons.
func (t ClockTime) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// Equal reports whether both hour and minute match.
func (t ClockTime) Equal(other ClockTime) bool {
	return t.Hour == other.Hour && t.Minute == other.Minute
}
