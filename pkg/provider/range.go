package provider

import (
	"context"
	"strconv"

	"github.com/achievekit/achievement-engine/pkg/clock"
	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

// ScoreRangeProvider evaluates score range achievements.
type ScoreRangeProvider struct {
	achievements repository.AchievementRepository
}

// NewScoreRangeProvider creates the score range unlock provider.
func NewScoreRangeProvider(achievements repository.AchievementRepository) *ScoreRangeProvider {
	return &ScoreRangeProvider{achievements: achievements}
}

// GetUnlockable fires when the current score falls within any configured
// boundary pair and the achievement is not already unlocked.
func (p *ScoreRangeProvider) GetUnlockable(ctx context.Context, userID string, achievement *domain.Achievement, currentValue int64) (*domain.UnlockedEvent, error) {
	for _, trigger := range achievement.ScoreRanges {
		if !trigger.Fire(currentValue) {
			continue
		}
		unlocked, err := p.achievements.IsUnlocked(ctx, userID, achievement.ID)
		if err != nil {
			return nil, err
		}
		if !unlocked {
			event := domain.NewUnlockedEvent(userID, achievement, 1, strconv.FormatInt(currentValue, 10))
			return &event, nil
		}
		return nil, nil
	}
	return nil, nil
}

// TimeRangeProvider evaluates time range achievements against the clock.
type TimeRangeProvider struct {
	achievements repository.AchievementRepository
	clock        clock.Clock
}

// NewTimeRangeProvider creates the time range unlock provider.
func NewTimeRangeProvider(achievements repository.AchievementRepository, clk clock.Clock) *TimeRangeProvider {
	return &TimeRangeProvider{achievements: achievements, clock: clk}
}

// GetUnlockable fires when the current time of day falls within any
// configured boundary pair and the achievement is not already unlocked.
func (p *TimeRangeProvider) GetUnlockable(ctx context.Context, userID string, achievement *domain.Achievement, _ int64) (*domain.UnlockedEvent, error) {
	now := p.clock.CurrentTime()
	for _, trigger := range achievement.TimeRanges {
		if !trigger.Fire(now) {
			continue
		}
		unlocked, err := p.achievements.IsUnlocked(ctx, userID, achievement.ID)
		if err != nil {
			return nil, err
		}
		if !unlocked {
			event := domain.NewUnlockedEvent(userID, achievement, 1, now.String())
			return &event, nil
		}
		return nil, nil
	}
	return nil, nil
}
