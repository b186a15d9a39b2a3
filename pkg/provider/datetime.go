package provider

import (
	"context"

	"github.com/achievekit/achievement-engine/pkg/clock"
	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

// DateProvider evaluates calendar date achievements against the clock.
type DateProvider struct {
	achievements repository.AchievementRepository
	clock        clock.Clock
}

// NewDateProvider creates the date unlock provider.
func NewDateProvider(achievements repository.AchievementRepository, clk clock.Clock) *DateProvider {
	return &DateProvider{achievements: achievements, clock: clk}
}

// GetUnlockable fires when the current date matches any configured target
// and the achievement is not already unlocked.
func (p *DateProvider) GetUnlockable(ctx context.Context, userID string, achievement *domain.Achievement, _ int64) (*domain.UnlockedEvent, error) {
	now := p.clock.CurrentDate()
	for _, trigger := range achievement.DateTriggers {
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

// TimeProvider evaluates time-of-day achievements against the clock.
type TimeProvider struct {
	achievements repository.AchievementRepository
	clock        clock.Clock
}

// NewTimeProvider creates the time unlock provider.
func NewTimeProvider(achievements repository.AchievementRepository, clk clock.Clock) *TimeProvider {
	return &TimeProvider{achievements: achievements, clock: clk}
}

// GetUnlockable fires when the current time matches any configured target
// and the achievement is not already unlocked.
func (p *TimeProvider) GetUnlockable(ctx context.Context, userID string, achievement *domain.Achievement, _ int64) (*domain.UnlockedEvent, error) {
	now := p.clock.CurrentTime()
	for _, trigger := range achievement.TimeTriggers {
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
