package config

import (
	"fmt"

	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/errors"
)

// Validator validates achievement definition files.
// It ensures all business rules are met before the engine starts.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs comprehensive validation of a definition.
// It checks for:
// - Unique, non-empty event names
// - Globally unique, non-empty achievement ids
// - Kind-specific trigger payloads (present and well-formed)
// - Subscriptions present for score-driven kinds and declared in the vocabulary
//
// Relation expressions are validated separately while building composites,
// since they need the parsed triggers.
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(definition *Definition) error {
	events := make(map[string]bool, len(definition.Events))
	for _, event := range definition.Events {
		if event == "" {
			return errors.ErrValidationFailed("events", "event name cannot be empty")
		}
		if events[event] {
			return errors.ErrValidationFailed("events", fmt.Sprintf("duplicate event name: %s", event))
		}
		events[event] = true
	}

	ids := make(map[string]bool)
	set := &definition.Achievements

	for _, a := range set.Score {
		if err := v.validateBase(&a.BaseAchievement, ids, events); err != nil {
			return err
		}
		if err := v.validateScore(a); err != nil {
			return err
		}
	}
	for _, a := range set.ScoreRange {
		if err := v.validateBase(&a.BaseAchievement, ids, events); err != nil {
			return err
		}
		if err := v.validateScoreRange(a); err != nil {
			return err
		}
	}
	for _, a := range set.Date {
		if err := v.validateBase(&a.BaseAchievement, ids, events); err != nil {
			return err
		}
		if err := v.validateDateValues(a.ID, a.Triggers); err != nil {
			return err
		}
	}
	for _, a := range set.Time {
		if err := v.validateBase(&a.BaseAchievement, ids, events); err != nil {
			return err
		}
		if err := v.validateTimeValues(a.ID, a.Triggers); err != nil {
			return err
		}
	}
	for _, a := range set.TimeRange {
		if err := v.validateBase(&a.BaseAchievement, ids, events); err != nil {
			return err
		}
		if err := v.validateTimeRange(a); err != nil {
			return err
		}
	}
	for _, a := range set.Single {
		if err := v.validateBase(&a.BaseAchievement, ids, events); err != nil {
			return err
		}
		if len(a.Events) > 0 {
			return errors.ErrValidationFailed(a.ID, "single achievements cannot subscribe to events")
		}
	}
	for _, a := range set.Composite {
		if err := v.validateBase(&a.BaseAchievement, ids, events); err != nil {
			return err
		}
		if err := v.validateComposite(a); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateBase(base *BaseAchievement, ids, events map[string]bool) error {
	if base.ID == "" {
		return errors.ErrValidationFailed("id", "achievement id cannot be empty")
	}
	if ids[base.ID] {
		return errors.ErrValidationFailed("id", fmt.Sprintf("duplicate achievement id: %s", base.ID))
	}
	ids[base.ID] = true

	for _, event := range base.Events {
		if !events[event] {
			return errors.ErrUndeclaredEvent(base.ID, event)
		}
	}
	return nil
}

func (v *Validator) validateScore(a *ScoreAchievement) error {
	if len(a.Triggers) == 0 {
		return errors.ErrValidationFailed(a.ID, "score achievement needs at least one threshold")
	}
	for i := 1; i < len(a.Triggers); i++ {
		if a.Triggers[i] <= a.Triggers[i-1] {
			return errors.ErrValidationFailed(a.ID, "score thresholds must be strictly increasing")
		}
	}
	if a.MaxLevel < 0 || a.MaxLevel > len(a.Triggers) {
		return errors.ErrValidationFailed(a.ID, "maxLevel cannot exceed the number of thresholds")
	}
	if len(a.Events) == 0 {
		return errors.ErrValidationFailed(a.ID, "score achievement must subscribe to at least one event")
	}
	return nil
}

func (v *Validator) validateScoreRange(a *ScoreRangeAchievement) error {
	if len(a.Triggers) == 0 {
		return errors.ErrValidationFailed(a.ID, "score range achievement needs at least one boundary pair")
	}
	for _, pair := range a.Triggers {
		if pair.Start > pair.End {
			return errors.ErrValidationFailed(a.ID, "range start cannot exceed range end")
		}
	}
	if len(a.Events) == 0 {
		return errors.ErrValidationFailed(a.ID, "score range achievement must subscribe to at least one event")
	}
	return nil
}

func (v *Validator) validateDateValues(id string, values []string) error {
	if len(values) == 0 {
		return errors.ErrValidationFailed(id, "date achievement needs at least one target date")
	}
	for _, value := range values {
		if _, err := domain.ParseMonthDay(value); err != nil {
			return errors.ErrValidationFailed(id, err.Error())
		}
	}
	return nil
}

func (v *Validator) validateTimeValues(id string, values []string) error {
	if len(values) == 0 {
		return errors.ErrValidationFailed(id, "time achievement needs at least one target time")
	}
	for _, value := range values {
		if _, err := domain.ParseClockTime(value); err != nil {
			return errors.ErrValidationFailed(id, err.Error())
		}
	}
	return nil
}

func (v *Validator) validateTimeRange(a *TimeRangeAchievement) error {
	if len(a.Triggers) == 0 {
		return errors.ErrValidationFailed(a.ID, "time range achievement needs at least one boundary pair")
	}
	for _, pair := range a.Triggers {
		start, err := domain.ParseClockTime(pair.Start)
		if err != nil {
			return errors.ErrValidationFailed(a.ID, err.Error())
		}
		end, err := domain.ParseClockTime(pair.End)
		if err != nil {
			return errors.ErrValidationFailed(a.ID, err.Error())
		}
		if start.MinuteOfDay() > end.MinuteOfDay() {
			return errors.ErrValidationFailed(a.ID, "range start cannot exceed range end")
		}
	}
	return nil
}

func (v *Validator) validateComposite(a *CompositeAchievement) error {
	if a.Relation == "" {
		return errors.ErrValidationFailed(a.ID, "composite achievement needs a relation expression")
	}
	triggerCount := len(a.ScoreTriggers) + len(a.DateTriggers) + len(a.TimeTriggers) +
		len(a.ScoreRangeTriggers) + len(a.TimeRangeTriggers)
	if triggerCount == 0 {
		return errors.ErrValidationFailed(a.ID, "composite achievement needs at least one trigger")
	}
	if (len(a.ScoreTriggers) > 0 || len(a.ScoreRangeTriggers) > 0) && len(a.Events) == 0 {
		return errors.ErrValidationFailed(a.ID, "composite achievement with score triggers must subscribe to at least one event")
	}
	return nil
}
