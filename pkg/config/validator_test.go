package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achievekit/achievement-engine/pkg/errors"
)

func validDefinition() *Definition {
	return &Definition{
		Events: []string{"kill", "assist"},
		Achievements: AchievementSet{
			Score: []*ScoreAchievement{
				{
					BaseAchievement: BaseAchievement{ID: "veteran", Events: []string{"kill"}},
					Triggers:        []int64{10, 20, 30},
					MaxLevel:        3,
				},
			},
		},
	}
}

func TestValidate_ValidDefinition(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(validDefinition()))
}

func TestValidate_Events(t *testing.T) {
	definition := validDefinition()
	definition.Events = []string{"kill", ""}
	err := NewValidator().Validate(definition)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))

	definition = validDefinition()
	definition.Events = []string{"kill", "kill", "assist"}
	err = NewValidator().Validate(definition)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate event")
}

func TestValidate_UndeclaredSubscription(t *testing.T) {
	definition := validDefinition()
	definition.Achievements.Score[0].Events = []string{"stealth-kill"}

	err := NewValidator().Validate(definition)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUndeclaredEvent))
}

func TestValidate_DuplicateIDAcrossKinds(t *testing.T) {
	definition := validDefinition()
	definition.Achievements.Single = []*SingleAchievement{
		{BaseAchievement: BaseAchievement{ID: "veteran"}},
	}

	err := NewValidator().Validate(definition)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate achievement id")
}

func TestValidate_ScoreRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScoreAchievement)
	}{
		{
			name:   "no thresholds",
			mutate: func(a *ScoreAchievement) { a.Triggers = nil },
		},
		{
			name:   "not strictly increasing",
			mutate: func(a *ScoreAchievement) { a.Triggers = []int64{10, 10, 30} },
		},
		{
			name:   "decreasing",
			mutate: func(a *ScoreAchievement) { a.Triggers = []int64{30, 20, 10} },
		},
		{
			name:   "maxLevel beyond thresholds",
			mutate: func(a *ScoreAchievement) { a.MaxLevel = 4 },
		},
		{
			name:   "no subscription",
			mutate: func(a *ScoreAchievement) { a.Events = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			definition := validDefinition()
			tt.mutate(definition.Achievements.Score[0])

			err := NewValidator().Validate(definition)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
		})
	}
}

func TestValidate_ScoreRangeRules(t *testing.T) {
	definition := validDefinition()
	definition.Achievements.ScoreRange = []*ScoreRangeAchievement{
		{
			BaseAchievement: BaseAchievement{ID: "inverted", Events: []string{"kill"}},
			Triggers:        []ScoreRangeTrigger{{Start: 20, End: 10}},
		},
	}

	err := NewValidator().Validate(definition)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range start cannot exceed range end")
}

func TestValidate_TimeRangeRules(t *testing.T) {
	definition := validDefinition()
	definition.Achievements.TimeRange = []*TimeRangeAchievement{
		{
			BaseAchievement: BaseAchievement{ID: "inverted"},
			Triggers:        []TimeRangeTrigger{{Start: "19:00", End: "17:00"}},
		},
	}

	err := NewValidator().Validate(definition)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range start cannot exceed range end")
}

func TestValidate_SingleCannotSubscribe(t *testing.T) {
	definition := validDefinition()
	definition.Achievements.Single = []*SingleAchievement{
		{BaseAchievement: BaseAchievement{ID: "founder", Events: []string{"kill"}}},
	}

	err := NewValidator().Validate(definition)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot subscribe")
}

func TestValidate_CompositeRules(t *testing.T) {
	tests := []struct {
		name      string
		composite *CompositeAchievement
	}{
		{
			name: "missing relation",
			composite: &CompositeAchievement{
				BaseAchievement: BaseAchievement{ID: "combo", Events: []string{"kill"}},
				ScoreTriggers:   []int64{100},
			},
		},
		{
			name: "no triggers",
			composite: &CompositeAchievement{
				BaseAchievement: BaseAchievement{ID: "combo"},
				Relation:        "score",
			},
		},
		{
			name: "score triggers without subscription",
			composite: &CompositeAchievement{
				BaseAchievement: BaseAchievement{ID: "combo"},
				Relation:        "score and date",
				ScoreTriggers:   []int64{100},
				DateTriggers:    []string{"01-01"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			definition := validDefinition()
			definition.Achievements.Composite = []*CompositeAchievement{tt.composite}

			err := NewValidator().Validate(definition)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
		})
	}
}
