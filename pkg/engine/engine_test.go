package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achievekit/achievement-engine/pkg/clock"
	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/errors"
	"github.com/achievekit/achievement-engine/pkg/eventbus"
	"github.com/achievekit/achievement-engine/pkg/metrics"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

func newTestEngine(t *testing.T, instant time.Time) (*Engine, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	e, err := New(Options{
		DefinitionPath: filepath.Join("testdata", "definition.json"),
		Repository:     repo.Repository(),
		Clock:          clock.NewFixed(instant),
		Metrics:        metrics.New(),
	})
	require.NoError(t, err)
	return e, repo
}

func TestNew_FailsFastOnMissingDefinition(t *testing.T) {
	_, err := New(Options{
		DefinitionPath: filepath.Join("testdata", "missing.json"),
		Repository:     repository.NewMemoryRepository().Repository(),
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedDefinition))
}

func TestTriggerEvent_IncrementsAndUnlocks(t *testing.T) {
	e, _ := newTestEngine(t, time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var unlocked []domain.UnlockedEvent
	e.SubscribeOnUnlock(eventbus.UnlockedHandlerFunc(func(event domain.UnlockedEvent) {
		unlocked = append(unlocked, event)
	}))
	var scores []domain.ScoreChangedEvent
	e.SubscribeOnScoreChanged(eventbus.ScoreChangedHandlerFunc(func(event domain.ScoreChangedEvent) {
		scores = append(scores, event)
	}))

	for i := 0; i < 10; i++ {
		require.NoError(t, e.TriggerEvent(ctx, "alice", "kill"))
	}

	score, err := e.CurrentScore(ctx, "alice", "kill")
	require.NoError(t, err)
	assert.Equal(t, int64(10), score)

	// Every increment publishes a score change; the tenth one unlocks level 1.
	assert.Len(t, scores, 10)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "veteran", unlocked[0].AchievementID)
	assert.Equal(t, 1, unlocked[0].Level)
	assert.Equal(t, "10", unlocked[0].TriggerValue)
}

func TestTriggerEvent_UndeclaredEventRejected(t *testing.T) {
	e, _ := newTestEngine(t, time.Now())

	err := e.TriggerEvent(context.Background(), "alice", "teleport")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
}

func TestTriggerEventWithScore_CombinationUnlock(t *testing.T) {
	// combo requires a score of 100 on January 1st.
	e, _ := newTestEngine(t, time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	require.NoError(t, e.TriggerEventWithScore(ctx, "alice", "kill", 150))

	unlocked, err := e.IsUnlocked(ctx, "alice", "combo")
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestTriggerEventWithScore_CombinationWrongDate(t *testing.T) {
	e, _ := newTestEngine(t, time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	require.NoError(t, e.TriggerEventWithScore(ctx, "alice", "kill", 150))

	unlocked, err := e.IsUnlocked(ctx, "alice", "combo")
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestTriggerEventWithScore_SameScoreIsNoOp(t *testing.T) {
	e, _ := newTestEngine(t, time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var scores []domain.ScoreChangedEvent
	e.SubscribeOnScoreChanged(eventbus.ScoreChangedHandlerFunc(func(event domain.ScoreChangedEvent) {
		scores = append(scores, event)
	}))

	require.NoError(t, e.TriggerEventWithScore(ctx, "alice", "kill", 5))
	require.NoError(t, e.TriggerEventWithScore(ctx, "alice", "kill", 5))

	assert.Len(t, scores, 1)
}

func TestTriggerEventWithHighScore_Guard(t *testing.T) {
	e, _ := newTestEngine(t, time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	require.NoError(t, e.TriggerEventWithHighScore(ctx, "alice", "race-finished", 50))
	// A worse result is silently discarded.
	require.NoError(t, e.TriggerEventWithHighScore(ctx, "alice", "race-finished", 30))

	score, err := e.CurrentScore(ctx, "alice", "race-finished")
	require.NoError(t, err)
	assert.Equal(t, int64(50), score)

	require.NoError(t, e.TriggerEventWithHighScore(ctx, "alice", "race-finished", 80))

	score, err = e.CurrentScore(ctx, "alice", "race-finished")
	require.NoError(t, err)
	assert.Equal(t, int64(80), score)
}

func TestUnlock_PublishedExactlyOnce(t *testing.T) {
	e, _ := newTestEngine(t, time.Now())
	ctx := context.Background()

	var unlocked []domain.UnlockedEvent
	e.SubscribeOnUnlock(eventbus.UnlockedHandlerFunc(func(event domain.UnlockedEvent) {
		unlocked = append(unlocked, event)
	}))

	require.NoError(t, e.Unlock(ctx, "alice", "founder"))
	require.NoError(t, e.Unlock(ctx, "alice", "founder"))

	assert.Len(t, unlocked, 1)

	isUnlocked, err := e.IsUnlocked(ctx, "alice", "founder")
	require.NoError(t, err)
	assert.True(t, isUnlocked)
}

func TestUnlock_UnknownAchievement(t *testing.T) {
	e, _ := newTestEngine(t, time.Now())

	err := e.Unlock(context.Background(), "alice", "missing")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAchievementNotFound))
}

func TestCheckAndUnlock_SweepsStoredCounters(t *testing.T) {
	e, repo := newTestEngine(t, time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// Counters written behind the engine's back, e.g. by a bulk import.
	_, err := repo.SetScore(ctx, "alice", "kill", 25)
	require.NoError(t, err)

	require.NoError(t, e.CheckAndUnlock(ctx, "alice"))

	unlocked, err := e.IsLevelUnlocked(ctx, "alice", "veteran", 1)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestReset_IsolatedPerUser(t *testing.T) {
	e, _ := newTestEngine(t, time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	require.NoError(t, e.TriggerEventWithScore(ctx, "alice", "kill", 25))
	require.NoError(t, e.TriggerEventWithScore(ctx, "bob", "kill", 25))

	require.NoError(t, e.Reset(ctx, "alice"))

	score, err := e.CurrentScore(ctx, "alice", "kill")
	require.NoError(t, err)
	assert.Equal(t, int64(0), score)

	records, err := e.GetAllUnlocked(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, records)

	// Bob keeps his progress.
	score, err = e.CurrentScore(ctx, "bob", "kill")
	require.NoError(t, err)
	assert.Equal(t, int64(25), score)

	records, err = e.GetAllUnlocked(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "veteran", records[0].AchievementID)
}

func TestCatalogAccessor(t *testing.T) {
	e, _ := newTestEngine(t, time.Now())

	assert.Equal(t, 3, e.Catalog().Size())
	_, ok := e.Catalog().Get("combo")
	assert.True(t, ok)
}
