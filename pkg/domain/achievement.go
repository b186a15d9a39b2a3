package domain

// AchievementKind identifies how an achievement's unlock condition is evaluated.
type AchievementKind string

const (
	// KindScore unlocks when an event counter reaches a numeric threshold.
	// Leveled: one threshold per level, unlocked strictly in increasing order.
	KindScore AchievementKind = "score"

	// KindScoreRange unlocks when an event counter falls within any of the
	// configured boundary pairs. Boundaries are inclusive on both ends.
	KindScoreRange AchievementKind = "scoreRange"

	// KindDate unlocks when the current calendar date (month and day)
	// matches any configured target.
	KindDate AchievementKind = "date"

	// KindTime unlocks when the current time of day (hour and minute)
	// matches any configured target.
	KindTime AchievementKind = "time"

	// KindTimeRange unlocks when the current time of day falls within any of
	// the configured boundary pairs. Boundaries are inclusive on both ends.
	KindTimeRange AchievementKind = "timeRange"

	// KindSingle has no trigger condition and is unlocked only by a direct
	// unlock call.
	KindSingle AchievementKind = "single"

	// KindComposite combines triggers of multiple kinds through a boolean
	// AND/OR relation expression.
	KindComposite AchievementKind = "composite"
)

// Kinds lists every achievement kind.
func Kinds() []AchievementKind {
	return []AchievementKind{
		KindScore,
		KindScoreRange,
		KindDate,
		KindTime,
		KindTimeRange,
		KindSingle,
		KindComposite,
	}
}

// IsValid returns true if the kind is a known achievement kind.
func (k AchievementKind) IsValid() bool {
	switch k {
	case KindScore, KindScoreRange, KindDate, KindTime, KindTimeRange, KindSingle, KindComposite:
		return true
	default:
		return false
	}
}

// ParseKind resolves a lower-cased kind tag (as written in relation
// expressions and definition files) to an AchievementKind.
// Returns false for unrecognized tags.
func ParseKind(tag string) (AchievementKind, bool) {
	switch tag {
	case "score":
		return KindScore, true
	case "scorerange", "scoreRange":
		return KindScoreRange, true
	case "date":
		return KindDate, true
	case "time":
		return KindTime, true
	case "timerange", "timeRange":
		return KindTimeRange, true
	case "single":
		return KindSingle, true
	case "composite":
		return KindComposite, true
	default:
		return "", false
	}
}

// Achievement is an immutable achievement definition. The Kind field selects
// which trigger payload is populated; all other payload fields are empty.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Category    string
	Kind        AchievementKind

	// MaxLevel is 1 for every kind except leveled score achievements,
	// where it equals the number of configured thresholds.
	MaxLevel int

	// Subscriptions lists the event names that drive this achievement,
	// in definition order. Empty for date/time-only and single achievements.
	Subscriptions []string

	ScoreTriggers []ScoreTrigger
	ScoreRanges   []ScoreRange
	DateTriggers  []DateTrigger
	TimeTriggers  []TimeTrigger
	TimeRanges    []TimeRange

	// Relation is set for composite achievements only.
	Relation *RelationGroup
}

// Leveled returns true if the achievement unlocks level by level.
func (a *Achievement) Leveled() bool {
	return a.MaxLevel > 1
}

// Triggers returns the union of all trigger payloads as the generic Trigger
// interface, in kind order. Used to build relation leaves for composites.
func (a *Achievement) Triggers() []Trigger {
	triggers := make([]Trigger, 0,
		len(a.ScoreTriggers)+len(a.ScoreRanges)+len(a.DateTriggers)+len(a.TimeTriggers)+len(a.TimeRanges))
	for _, t := range a.ScoreTriggers {
		triggers = append(triggers, t)
	}
	for _, t := range a.ScoreRanges {
		triggers = append(triggers, t)
	}
	for _, t := range a.DateTriggers {
		triggers = append(triggers, t)
	}
	for _, t := range a.TimeTriggers {
		triggers = append(triggers, t)
	}
	for _, t := range a.TimeRanges {
		triggers = append(triggers, t)
	}
	return triggers
}
