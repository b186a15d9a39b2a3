package config

// Definition represents the top-level achievement definition file.
// This structure is parsed from JSON and validated during startup.
type Definition struct {
	// Events declares the event vocabulary. Every event an achievement
	// subscribes to must be listed here.
	Events       []string       `json:"events"`
	Achievements AchievementSet `json:"achievements"`
}

// AchievementSet groups the achievement definitions by kind.
type AchievementSet struct {
	Score      []*ScoreAchievement      `json:"score"`
	Date       []*DateAchievement       `json:"date"`
	Time       []*TimeAchievement       `json:"time"`
	ScoreRange []*ScoreRangeAchievement `json:"scoreRange"`
	TimeRange  []*TimeRangeAchievement  `json:"timeRange"`
	Single     []*SingleAchievement     `json:"single"`
	Composite  []*CompositeAchievement  `json:"composite"`
}

// BaseAchievement holds the attributes shared by every achievement kind.
type BaseAchievement struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"` // Defaults to "default" when empty
	Events      []string `json:"event"`    // Subscribed event names, in order
}

// ScoreAchievement unlocks on numeric thresholds, one per level.
type ScoreAchievement struct {
	BaseAchievement
	Triggers []int64 `json:"trigger"`
	// MaxLevel caps the unlockable levels. Defaults to the number of
	// triggers when zero.
	MaxLevel int `json:"maxLevel"`
}

// DateAchievement unlocks on "MM-DD" calendar dates.
type DateAchievement struct {
	BaseAchievement
	Triggers []string `json:"trigger"`
}

// TimeAchievement unlocks on "HH:MM" times of day.
type TimeAchievement struct {
	BaseAchievement
	Triggers []string `json:"trigger"`
}

// ScoreRangeTrigger is an inclusive numeric boundary pair.
type ScoreRangeTrigger struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// ScoreRangeAchievement unlocks when the score falls within any pair.
type ScoreRangeAchievement struct {
	BaseAchievement
	Triggers []ScoreRangeTrigger `json:"trigger"`
}

// TimeRangeTrigger is an inclusive "HH:MM" boundary pair.
type TimeRangeTrigger struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeRangeAchievement unlocks when the time of day falls within any pair.
type TimeRangeAchievement struct {
	BaseAchievement
	Triggers []TimeRangeTrigger `json:"trigger"`
}

// SingleAchievement has no trigger and is unlocked by a direct call only.
type SingleAchievement struct {
	BaseAchievement
}

// CompositeAchievement combines triggers of several kinds through a boolean
// relation expression such as "score and (time or date)".
type CompositeAchievement struct {
	BaseAchievement
	Relation           string              `json:"relation"`
	ScoreTriggers      []int64             `json:"scoreTrigger"`
	DateTriggers       []string            `json:"dateTrigger"`
	TimeTriggers       []string            `json:"timeTrigger"`
	ScoreRangeTriggers []ScoreRangeTrigger `json:"scoreRangeTrigger"`
	TimeRangeTriggers  []TimeRangeTrigger  `json:"timeRangeTrigger"`
}
