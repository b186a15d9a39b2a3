// Package clock abstracts the current date and time of day so unlock
// evaluation can be tested against fixed instants.
package clock

import (
	"time"

	"github.com/achievekit/achievement-engine/pkg/domain"
)

// Clock yields the current date and time-of-day state used by date and time
// triggers, plus the string forms recorded as trigger values on unlock events.
type Clock interface {
	Now() time.Time
	CurrentDate() domain.MonthDay
	CurrentTime() domain.ClockTime
	DateString() string
	TimeString() string
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// NewSystemClock creates the production clock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (c *SystemClock) CurrentDate() domain.MonthDay {
	return domain.MonthDayOf(c.Now())
}

func (c *SystemClock) CurrentTime() domain.ClockTime {
	return domain.ClockTimeOf(c.Now())
}

func (c *SystemClock) DateString() string {
	return c.CurrentDate().String()
}

func (c *SystemClock) TimeString() string {
	return c.CurrentTime().String()
}

// Fixed is a clock pinned to one instant, for tests.
type Fixed struct {
	Instant time.Time
}

// NewFixed creates a clock that always reports the given instant.
func NewFixed(instant time.Time) *Fixed {
	return &Fixed{Instant: instant}
}

func (c *Fixed) Now() time.Time {
	return c.Instant
}

func (c *Fixed) CurrentDate() domain.MonthDay {
	return domain.MonthDayOf(c.Instant)
}

func (c *Fixed) CurrentTime() domain.ClockTime {
	return domain.ClockTimeOf(c.Instant)
}

func (c *Fixed) DateString() string {
	return c.CurrentDate().String()
}

func (c *Fixed) TimeString() string {
	return c.CurrentTime().String()
}
