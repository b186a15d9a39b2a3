package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/errors"
	"github.com/achievekit/achievement-engine/pkg/relation"
)

// Loader loads and validates an achievement definition file.
// It performs file reading, JSON parsing, comprehensive validation and the
// mapping into immutable domain achievements.
type Loader struct {
	definitionPath string
	validator      *Validator
	relationParser *relation.Parser
	logger         *slog.Logger
}

// NewLoader creates a new Loader instance.
//
// Parameters:
//   - definitionPath: Path to the achievement definition JSON file
//   - logger: Structured logger for operational logging
func NewLoader(definitionPath string, logger *slog.Logger) *Loader {
	return &Loader{
		definitionPath: definitionPath,
		validator:      NewValidator(),
		relationParser: relation.NewParser(),
		logger:         logger,
	}
}

// Load reads the definition file and returns the achievement definitions
// together with the declared event vocabulary. This is a "fail fast"
// operation: any parse or validation failure aborts startup and no partial
// result is returned.
func (l *Loader) Load() ([]*domain.Achievement, []string, error) {
	data, err := os.ReadFile(l.definitionPath)
	if err != nil {
		return nil, nil, errors.ErrMalformedDefinition("failed to read definition file", err)
	}

	var definition Definition
	if err := json.Unmarshal(data, &definition); err != nil {
		return nil, nil, errors.ErrMalformedDefinition("failed to parse definition JSON", err)
	}

	return l.Build(&definition)
}

// Build validates an already-parsed definition and maps it into domain
// achievements. Exposed for callers that assemble definitions in code.
func (l *Loader) Build(definition *Definition) ([]*domain.Achievement, []string, error) {
	applyDefaults(definition)

	if err := l.validator.Validate(definition); err != nil {
		return nil, nil, err
	}

	achievements, err := l.mapAchievements(&definition.Achievements)
	if err != nil {
		return nil, nil, err
	}

	l.logger.Info("Achievement definition loaded",
		"achievements", len(achievements),
		"events", len(definition.Events),
		"definition_path", l.definitionPath,
	)

	return achievements, definition.Events, nil
}

// applyDefaults backfills the optional attributes before validation.
func applyDefaults(definition *Definition) {
	for _, base := range collectBases(&definition.Achievements) {
		if base.Category == "" {
			base.Category = "default"
		}
		if base.Name == "" {
			base.Name = base.ID
		}
	}
	for _, achievement := range definition.Achievements.Score {
		if achievement.MaxLevel == 0 {
			achievement.MaxLevel = len(achievement.Triggers)
		}
	}
}

func collectBases(set *AchievementSet) []*BaseAchievement {
	var bases []*BaseAchievement
	for _, a := range set.Score {
		bases = append(bases, &a.BaseAchievement)
	}
	for _, a := range set.Date {
		bases = append(bases, &a.BaseAchievement)
	}
	for _, a := range set.Time {
		bases = append(bases, &a.BaseAchievement)
	}
	for _, a := range set.ScoreRange {
		bases = append(bases, &a.BaseAchievement)
	}
	for _, a := range set.TimeRange {
		bases = append(bases, &a.BaseAchievement)
	}
	for _, a := range set.Single {
		bases = append(bases, &a.BaseAchievement)
	}
	for _, a := range set.Composite {
		bases = append(bases, &a.BaseAchievement)
	}
	return bases
}

func (l *Loader) mapAchievements(set *AchievementSet) ([]*domain.Achievement, error) {
	var achievements []*domain.Achievement

	for _, a := range set.Score {
		achievements = append(achievements, mapScore(a))
	}
	for _, a := range set.ScoreRange {
		achievements = append(achievements, mapScoreRange(a))
	}
	for _, a := range set.Date {
		mapped, err := mapDate(a)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, mapped)
	}
	for _, a := range set.Time {
		mapped, err := mapTime(a)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, mapped)
	}
	for _, a := range set.TimeRange {
		mapped, err := mapTimeRange(a)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, mapped)
	}
	for _, a := range set.Single {
		achievements = append(achievements, mapBase(&a.BaseAchievement, domain.KindSingle))
	}
	for _, a := range set.Composite {
		mapped, err := l.mapComposite(a)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, mapped)
	}

	return achievements, nil
}

func mapBase(base *BaseAchievement, kind domain.AchievementKind) *domain.Achievement {
	return &domain.Achievement{
		ID:            base.ID,
		Name:          base.Name,
		Description:   base.Description,
		Category:      base.Category,
		Kind:          kind,
		MaxLevel:      1,
		Subscriptions: base.Events,
	}
}

func mapScore(a *ScoreAchievement) *domain.Achievement {
	achievement := mapBase(&a.BaseAchievement, domain.KindScore)
	achievement.MaxLevel = a.MaxLevel
	achievement.ScoreTriggers = scoreTriggers(a.Triggers)
	return achievement
}

func mapScoreRange(a *ScoreRangeAchievement) *domain.Achievement {
	achievement := mapBase(&a.BaseAchievement, domain.KindScoreRange)
	achievement.ScoreRanges = scoreRanges(a.Triggers)
	return achievement
}

func mapDate(a *DateAchievement) (*domain.Achievement, error) {
	achievement := mapBase(&a.BaseAchievement, domain.KindDate)
	triggers, err := dateTriggers(a.ID, a.Triggers)
	if err != nil {
		return nil, err
	}
	achievement.DateTriggers = triggers
	return achievement, nil
}

func mapTime(a *TimeAchievement) (*domain.Achievement, error) {
	achievement := mapBase(&a.BaseAchievement, domain.KindTime)
	triggers, err := timeTriggers(a.ID, a.Triggers)
	if err != nil {
		return nil, err
	}
	achievement.TimeTriggers = triggers
	return achievement, nil
}

func mapTimeRange(a *TimeRangeAchievement) (*domain.Achievement, error) {
	achievement := mapBase(&a.BaseAchievement, domain.KindTimeRange)
	ranges, err := timeRanges(a.ID, a.Triggers)
	if err != nil {
		return nil, err
	}
	achievement.TimeRanges = ranges
	return achievement, nil
}

func (l *Loader) mapComposite(a *CompositeAchievement) (*domain.Achievement, error) {
	achievement := mapBase(&a.BaseAchievement, domain.KindComposite)
	achievement.ScoreTriggers = scoreTriggers(a.ScoreTriggers)
	achievement.ScoreRanges = scoreRanges(a.ScoreRangeTriggers)

	dates, err := dateTriggers(a.ID, a.DateTriggers)
	if err != nil {
		return nil, err
	}
	achievement.DateTriggers = dates

	times, err := timeTriggers(a.ID, a.TimeTriggers)
	if err != nil {
		return nil, err
	}
	achievement.TimeTriggers = times

	timeRangeTriggers, err := timeRanges(a.ID, a.TimeRangeTriggers)
	if err != nil {
		return nil, err
	}
	achievement.TimeRanges = timeRangeTriggers

	parsed, err := l.relationParser.Parse(a.Relation, achievement.Triggers())
	if err != nil {
		return nil, fmt.Errorf("achievement '%s': %w", a.ID, err)
	}
	achievement.Relation = parsed

	return achievement, nil
}

func scoreTriggers(thresholds []int64) []domain.ScoreTrigger {
	triggers := make([]domain.ScoreTrigger, 0, len(thresholds))
	for _, threshold := range thresholds {
		triggers = append(triggers, domain.ScoreTrigger{Threshold: threshold})
	}
	return triggers
}

func scoreRanges(pairs []ScoreRangeTrigger) []domain.ScoreRange {
	ranges := make([]domain.ScoreRange, 0, len(pairs))
	for _, pair := range pairs {
		ranges = append(ranges, domain.ScoreRange{Start: pair.Start, End: pair.End})
	}
	return ranges
}

func dateTriggers(id string, values []string) ([]domain.DateTrigger, error) {
	triggers := make([]domain.DateTrigger, 0, len(values))
	for _, value := range values {
		date, err := domain.ParseMonthDay(value)
		if err != nil {
			return nil, errors.ErrMalformedDefinition(fmt.Sprintf("achievement '%s'", id), err)
		}
		triggers = append(triggers, domain.DateTrigger{Date: date})
	}
	return triggers, nil
}

func timeTriggers(id string, values []string) ([]domain.TimeTrigger, error) {
	triggers := make([]domain.TimeTrigger, 0, len(values))
	for _, value := range values {
		timeOfDay, err := domain.ParseClockTime(value)
		if err != nil {
			return nil, errors.ErrMalformedDefinition(fmt.Sprintf("achievement '%s'", id), err)
		}
		triggers = append(triggers, domain.TimeTrigger{Time: timeOfDay})
	}
	return triggers, nil
}

func timeRanges(id string, pairs []TimeRangeTrigger) ([]domain.TimeRange, error) {
	ranges := make([]domain.TimeRange, 0, len(pairs))
	for _, pair := range pairs {
		start, err := domain.ParseClockTime(pair.Start)
		if err != nil {
			return nil, errors.ErrMalformedDefinition(fmt.Sprintf("achievement '%s'", id), err)
		}
		end, err := domain.ParseClockTime(pair.End)
		if err != nil {
			return nil, errors.ErrMalformedDefinition(fmt.Sprintf("achievement '%s'", id), err)
		}
		ranges = append(ranges, domain.TimeRange{Start: start, End: end})
	}
	return ranges, nil
}
