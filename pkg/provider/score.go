package provider

import (
	"context"
	"strconv"

	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

// ScoreProvider evaluates leveled score achievements.
type ScoreProvider struct {
	achievements repository.AchievementRepository
}

// NewScoreProvider creates the score unlock provider.
func NewScoreProvider(achievements repository.AchievementRepository) *ScoreProvider {
	return &ScoreProvider{achievements: achievements}
}

// GetUnlockable walks the thresholds in level order and returns the first
// level that fires and is not yet unlocked. Levels are unlocked strictly in
// increasing order and never skipped: a lower locked level always wins even
// when the score satisfies a higher one.
func (p *ScoreProvider) GetUnlockable(ctx context.Context, userID string, achievement *domain.Achievement, currentValue int64) (*domain.UnlockedEvent, error) {
	for i, trigger := range achievement.ScoreTriggers {
		level := i + 1
		if !trigger.Fire(currentValue) || level > achievement.MaxLevel {
			continue
		}
		unlocked, err := p.achievements.IsLevelUnlocked(ctx, userID, achievement.ID, level)
		if err != nil {
			return nil, err
		}
		if !unlocked {
			event := domain.NewUnlockedEvent(userID, achievement, level, strconv.FormatInt(currentValue, 10))
			return &event, nil
		}
	}
	return nil, nil
}
