package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

func leveledAchievement() *domain.Achievement {
	return &domain.Achievement{
		ID:            "veteran",
		Name:          "Veteran",
		Kind:          domain.KindScore,
		MaxLevel:      3,
		Subscriptions: []string{"kill"},
		ScoreTriggers: []domain.ScoreTrigger{
			{Threshold: 10},
			{Threshold: 20},
			{Threshold: 30},
		},
	}
}

func TestScoreProvider_LevelsNeverSkipped(t *testing.T) {
	repo := repository.NewMemoryRepository()
	p := NewScoreProvider(repo)
	ctx := context.Background()
	achievement := leveledAchievement()

	// Score 25 satisfies levels 1 and 2 but level 1 comes first.
	event, err := p.GetUnlockable(ctx, "alice", achievement, 25)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, 1, event.Level)
	assert.Equal(t, "25", event.TriggerValue)

	created, err := repo.Unlock(ctx, "alice", achievement.ID, event.Level)
	require.NoError(t, err)
	require.True(t, created)

	// With level 1 persisted, the same score now yields level 2.
	event, err = p.GetUnlockable(ctx, "alice", achievement, 25)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, 2, event.Level)

	_, err = repo.Unlock(ctx, "alice", achievement.ID, event.Level)
	require.NoError(t, err)

	// Level 3 needs a score of 30.
	event, err = p.GetUnlockable(ctx, "alice", achievement, 25)
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestScoreProvider_BelowFirstThreshold(t *testing.T) {
	p := NewScoreProvider(repository.NewMemoryRepository())

	event, err := p.GetUnlockable(context.Background(), "alice", leveledAchievement(), 9)
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestScoreProvider_MaxLevelCap(t *testing.T) {
	achievement := leveledAchievement()
	achievement.MaxLevel = 2
	repo := repository.NewMemoryRepository()
	p := NewScoreProvider(repo)
	ctx := context.Background()

	_, err := repo.Unlock(ctx, "alice", achievement.ID, 1)
	require.NoError(t, err)
	_, err = repo.Unlock(ctx, "alice", achievement.ID, 2)
	require.NoError(t, err)

	// Level 3 is configured but capped away.
	event, err := p.GetUnlockable(ctx, "alice", achievement, 1000)
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestScoreRangeProvider(t *testing.T) {
	achievement := &domain.Achievement{
		ID:            "sweet-spot",
		Kind:          domain.KindScoreRange,
		MaxLevel:      1,
		Subscriptions: []string{"assist"},
		ScoreRanges:   []domain.ScoreRange{{Start: 10, End: 20}},
	}
	repo := repository.NewMemoryRepository()
	p := NewScoreRangeProvider(repo)
	ctx := context.Background()

	event, err := p.GetUnlockable(ctx, "alice", achievement, 9)
	require.NoError(t, err)
	assert.Nil(t, event)

	event, err = p.GetUnlockable(ctx, "alice", achievement, 10)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, 1, event.Level)
	assert.Equal(t, "10", event.TriggerValue)

	// Once unlocked the provider stays quiet.
	_, err = repo.Unlock(ctx, "alice", achievement.ID, 1)
	require.NoError(t, err)

	event, err = p.GetUnlockable(ctx, "alice", achievement, 15)
	require.NoError(t, err)
	assert.Nil(t, event)
}
