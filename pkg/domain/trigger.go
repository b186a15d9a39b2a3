package domain

// Trigger is a single unlock condition that can fire given the current
// score, date and time-of-day state. Each concrete trigger inspects only the
// input relevant to its kind; triggers hold no external state.
type Trigger interface {
	Kind() AchievementKind
	Matches(score int64, date MonthDay, timeOfDay ClockTime) bool
}

// ScoreTrigger fires when the current score reaches its threshold.
type ScoreTrigger struct {
	Threshold int64
}

// Fire reports whether the score meets the threshold.
func (t ScoreTrigger) Fire(score int64) bool {
	return score >= t.Threshold
}

func (t ScoreTrigger) Kind() AchievementKind { return KindScore }

func (t ScoreTrigger) Matches(score int64, _ MonthDay, _ ClockTime) bool {
	return t.Fire(score)
}

// ScoreRange fires when the current score falls within [Start, End].
// Both boundaries are inclusive.
type ScoreRange struct {
	Start int64
	End   int64
}

// Fire reports whether the score is within the range, boundaries included.
func (t ScoreRange) Fire(score int64) bool {
	return score >= t.Start && score <= t.End
}

func (t ScoreRange) Kind() AchievementKind { return KindScoreRange }

func (t ScoreRange) Matches(score int64, _ MonthDay, _ ClockTime) bool {
	return t.Fire(score)
}

// DateTrigger fires on one calendar day each year.
type DateTrigger struct {
	Date MonthDay
}

// Fire reports whether the current date matches the target month and day.
func (t DateTrigger) Fire(date MonthDay) bool {
	return t.Date.Equal(date)
}

func (t DateTrigger) Kind() AchievementKind { return KindDate }

func (t DateTrigger) Matches(_ int64, date MonthDay, _ ClockTime) bool {
	return t.Fire(date)
}

// TimeTrigger fires during one minute of the day.
type TimeTrigger struct {
	Time ClockTime
}

// Fire reports whether the current time matches the target hour and minute.
func (t TimeTrigger) Fire(timeOfDay ClockTime) bool {
	return t.Time.Equal(timeOfDay)
}

func (t TimeTrigger) Kind() AchievementKind { return KindTime }

func (t TimeTrigger) Matches(_ int64, _ MonthDay, timeOfDay ClockTime) bool {
	return t.Fire(timeOfDay)
}

// TimeRange fires when the current time of day falls within [Start, End].
// Both boundaries are inclusive and compared by minute of day.
type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// Fire reports whether the time of day is within the range, boundaries included.
func (t TimeRange) Fire(timeOfDay ClockTime) bool {
	minute := timeOfDay.MinuteOfDay()
	return minute >= t.Start.MinuteOfDay() && minute <= t.End.MinuteOfDay()
}

func (t TimeRange) Kind() AchievementKind { return KindTimeRange }

func (t TimeRange) Matches(_ int64, _ MonthDay, timeOfDay ClockTime) bool {
	return t.Fire(timeOfDay)
}
