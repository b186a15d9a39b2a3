package engine

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/achievekit/achievement-engine/pkg/catalog"
	"github.com/achievekit/achievement-engine/pkg/clock"
	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/eventbus"
	"github.com/achievekit/achievement-engine/pkg/provider"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

func newTestController(t *testing.T, publisher eventbus.Publisher) (*Controller, *repository.MemoryRepository) {
	t.Helper()
	achievements := []*domain.Achievement{
		{
			ID:            "veteran",
			Name:          "Veteran",
			Category:      "combat",
			Kind:          domain.KindScore,
			MaxLevel:      3,
			Subscriptions: []string{"kill"},
			ScoreTriggers: []domain.ScoreTrigger{{Threshold: 10}, {Threshold: 20}, {Threshold: 30}},
		},
	}
	cat, err := catalog.New(achievements, []string{"kill"}, slog.Default())
	require.NoError(t, err)

	repo := repository.NewMemoryRepository()
	fixed := clock.NewFixed(time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC))
	facade := provider.NewFacade(cat, repo.Repository(), fixed)

	return NewController(cat, facade, repo.Repository(), publisher, slog.Default(), nil), repo
}

func TestController_PublishesAfterPersistence(t *testing.T) {
	publisher := eventbus.NewMockPublisher()
	publisher.On("PublishScoreChanged", mock.Anything).Return()
	publisher.On("PublishUnlocked", mock.MatchedBy(func(event domain.UnlockedEvent) bool {
		return event.AchievementID == "veteran" && event.Level == 1
	})).Return()

	controller, repo := newTestController(t, publisher)
	ctx := context.Background()

	require.NoError(t, controller.TriggerEventWithScore(ctx, "alice", "kill", 15))

	unlocked, err := repo.IsLevelUnlocked(ctx, "alice", "veteran", 1)
	require.NoError(t, err)
	assert.True(t, unlocked)

	publisher.AssertExpectations(t)
	publisher.AssertNumberOfCalls(t, "PublishScoreChanged", 1)
	publisher.AssertNumberOfCalls(t, "PublishUnlocked", 1)
}

func TestController_LostRaceIsSilent(t *testing.T) {
	publisher := eventbus.NewMockPublisher()
	publisher.On("PublishScoreChanged", mock.Anything).Return()

	controller, repo := newTestController(t, publisher)
	ctx := context.Background()

	// Another writer persisted the unlock first; no publication happens here.
	_, err := repo.Unlock(ctx, "alice", "veteran", 1)
	require.NoError(t, err)

	require.NoError(t, controller.TriggerEventWithScore(ctx, "alice", "kill", 15))

	publisher.AssertNotCalled(t, "PublishUnlocked", mock.Anything)
}

func TestController_LevelsUnlockOneAtATime(t *testing.T) {
	publisher := eventbus.NewMockPublisher()
	publisher.On("PublishScoreChanged", mock.Anything).Return()
	publisher.On("PublishUnlocked", mock.Anything).Return()

	controller, _ := newTestController(t, publisher)
	ctx := context.Background()

	// A score jump past several thresholds still walks levels in order,
	// one per trigger.
	require.NoError(t, controller.TriggerEventWithScore(ctx, "alice", "kill", 35))
	level2, err := controller.IsLevelUnlocked(ctx, "alice", "veteran", 2)
	require.NoError(t, err)
	assert.False(t, level2)

	require.NoError(t, controller.TriggerEventWithScore(ctx, "alice", "kill", 36))
	level2, err = controller.IsLevelUnlocked(ctx, "alice", "veteran", 2)
	require.NoError(t, err)
	assert.True(t, level2)

	require.NoError(t, controller.TriggerEventWithScore(ctx, "alice", "kill", 37))
	level3, err := controller.IsLevelUnlocked(ctx, "alice", "veteran", 3)
	require.NoError(t, err)
	assert.True(t, level3)

	publisher.AssertNumberOfCalls(t, "PublishUnlocked", 3)
}
