package provider

import (
	"context"
	"strconv"

	"github.com/achievekit/achievement-engine/pkg/clock"
	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

// CompositeProvider evaluates composite achievements by walking their
// relation tree against the current score, date and time.
type CompositeProvider struct {
	achievements repository.AchievementRepository
	clock        clock.Clock
}

// NewCompositeProvider creates the composite unlock provider.
func NewCompositeProvider(achievements repository.AchievementRepository, clk clock.Clock) *CompositeProvider {
	return &CompositeProvider{achievements: achievements, clock: clk}
}

// GetUnlockable fires when the relation tree evaluates true and the
// achievement is not already unlocked. currentValue is expected to be the
// best score across the achievement's subscribed events.
func (p *CompositeProvider) GetUnlockable(ctx context.Context, userID string, achievement *domain.Achievement, currentValue int64) (*domain.UnlockedEvent, error) {
	if achievement.Relation == nil {
		return nil, nil
	}
	if !achievement.Relation.Evaluate(currentValue, p.clock.CurrentDate(), p.clock.CurrentTime()) {
		return nil, nil
	}

	unlocked, err := p.achievements.IsUnlocked(ctx, userID, achievement.ID)
	if err != nil {
		return nil, err
	}
	if unlocked {
		return nil, nil
	}

	event := domain.NewUnlockedEvent(userID, achievement, 1, strconv.FormatInt(currentValue, 10))
	return &event, nil
}
