// Package engine orchestrates event ingestion, unlock evaluation,
// persistence and notification.
package engine

import (
	"context"
	"log/slog"

	"github.com/achievekit/achievement-engine/pkg/catalog"
	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/errors"
	"github.com/achievekit/achievement-engine/pkg/eventbus"
	"github.com/achievekit/achievement-engine/pkg/metrics"
	"github.com/achievekit/achievement-engine/pkg/provider"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

// Controller is the write-side entry point of the engine. Every mutation of
// per-user state flows through it: counter updates, unlock persistence and
// event publication.
//
// Publication happens only after successful persistence, and an unlock event
// is published at most once per (user, achievement, level) tuple even under
// concurrent triggers.
type Controller struct {
	catalog    *catalog.Catalog
	facade     *provider.Facade
	repository repository.Repository
	publisher  eventbus.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewController wires the controller. metrics may be nil.
func NewController(
	cat *catalog.Catalog,
	facade *provider.Facade,
	repo repository.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Controller {
	return &Controller{
		catalog:    cat,
		facade:     facade,
		repository: repo,
		publisher:  publisher,
		logger:     logger,
		metrics:    m,
	}
}

// TriggerEvent increments the user's counter for the named event by one and
// evaluates every achievement subscribed to it. The event must belong to the
// declared vocabulary.
func (c *Controller) TriggerEvent(ctx context.Context, userID, event string) error {
	if err := c.requireDeclared(event); err != nil {
		return err
	}
	c.metrics.ObserveTriggerEvent()

	score, err := c.repository.Events.Increment(ctx, userID, event)
	if err != nil {
		return err
	}
	c.publishScoreChanged(userID, event, score)

	return c.evaluate(ctx, userID, event, score)
}

// TriggerEventWithScore stores an absolute score for the named event and
// evaluates the subscribers. Setting the already-stored value is a no-op:
// no publication and no evaluation.
func (c *Controller) TriggerEventWithScore(ctx context.Context, userID, event string, score int64) error {
	if err := c.requireDeclared(event); err != nil {
		return err
	}
	c.metrics.ObserveTriggerEvent()

	stored, err := c.repository.Events.ScoreOf(ctx, userID, event)
	if err != nil {
		return err
	}
	if stored == score {
		return nil
	}

	if _, err := c.repository.Events.SetScore(ctx, userID, event, score); err != nil {
		return err
	}
	c.publishScoreChanged(userID, event, score)

	return c.evaluate(ctx, userID, event, score)
}

// TriggerEventWithHighScore stores the score only when it is at least the
// stored value. Lower submissions are silently discarded.
func (c *Controller) TriggerEventWithHighScore(ctx context.Context, userID, event string, score int64) error {
	if err := c.requireDeclared(event); err != nil {
		return err
	}
	c.metrics.ObserveTriggerEvent()

	stored, err := c.repository.Events.ScoreOf(ctx, userID, event)
	if err != nil {
		return err
	}
	if stored > score {
		return nil
	}

	if _, err := c.repository.Events.SetScore(ctx, userID, event, score); err != nil {
		return err
	}
	c.publishScoreChanged(userID, event, score)

	return c.evaluate(ctx, userID, event, score)
}

// CheckAndUnlock sweeps the entire catalog for the user against the stored
// counters and unlocks everything that qualifies. Useful after definition
// changes or bulk imports.
func (c *Controller) CheckAndUnlock(ctx context.Context, userID string) error {
	unlockables, err := c.facade.FindAll(ctx, userID)
	if err != nil {
		return err
	}
	return c.unlockAll(ctx, unlockables)
}

// Unlock directly unlocks level 1 of an achievement, bypassing trigger
// evaluation. This is the only unlock path for single achievements but
// works for any declared kind. Already-unlocked achievements are a no-op.
func (c *Controller) Unlock(ctx context.Context, userID, achievementID string) error {
	achievement, ok := c.catalog.Get(achievementID)
	if !ok {
		return errors.ErrAchievementNotFound(achievementID)
	}

	event := domain.NewUnlockedEvent(userID, achievement, 1, "")
	return c.persistAndPublish(ctx, event)
}

// IsUnlocked reports whether any level of the achievement is unlocked.
func (c *Controller) IsUnlocked(ctx context.Context, userID, achievementID string) (bool, error) {
	if _, ok := c.catalog.Get(achievementID); !ok {
		return false, errors.ErrAchievementNotFound(achievementID)
	}
	return c.repository.Achievements.IsUnlocked(ctx, userID, achievementID)
}

// IsLevelUnlocked reports whether a specific level of the achievement is
// unlocked.
func (c *Controller) IsLevelUnlocked(ctx context.Context, userID, achievementID string, level int) (bool, error) {
	if _, ok := c.catalog.Get(achievementID); !ok {
		return false, errors.ErrAchievementNotFound(achievementID)
	}
	return c.repository.Achievements.IsLevelUnlocked(ctx, userID, achievementID, level)
}

// CurrentScore returns the stored counter value for the named event, zero
// when nothing has been recorded.
func (c *Controller) CurrentScore(ctx context.Context, userID, event string) (int64, error) {
	if err := c.requireDeclared(event); err != nil {
		return 0, err
	}
	return c.repository.Events.ScoreOf(ctx, userID, event)
}

// GetAllUnlocked returns every unlock record of the user, oldest first.
func (c *Controller) GetAllUnlocked(ctx context.Context, userID string) ([]repository.UnlockRecord, error) {
	return c.repository.Achievements.GetAll(ctx, userID)
}

// Reset wipes the user's counters and unlock records. Irreversible, and
// scoped strictly to the given user.
func (c *Controller) Reset(ctx context.Context, userID string) error {
	if err := c.repository.Events.ResetCounters(ctx, userID); err != nil {
		return err
	}
	if err := c.repository.Achievements.Clear(ctx, userID); err != nil {
		return err
	}
	c.logger.Info("User progress reset", "userId", userID)
	return nil
}

func (c *Controller) evaluate(ctx context.Context, userID, event string, score int64) error {
	unlockables, err := c.facade.FindUnlockables(ctx, userID, event, score)
	if err != nil {
		return err
	}
	return c.unlockAll(ctx, unlockables)
}

func (c *Controller) unlockAll(ctx context.Context, unlockables []domain.UnlockedEvent) error {
	for _, unlockable := range unlockables {
		if err := c.persistAndPublish(ctx, unlockable); err != nil {
			return err
		}
	}
	return nil
}

// persistAndPublish writes the unlock tuple and, only when this call was the
// one that created it, publishes the event. The conditional write is the
// idempotency gate: concurrent triggers race on it and exactly one wins.
func (c *Controller) persistAndPublish(ctx context.Context, event domain.UnlockedEvent) error {
	created, err := c.repository.Achievements.Unlock(ctx, event.UserID, event.AchievementID, event.Level)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	c.metrics.ObserveUnlock(string(event.Kind))
	c.logger.Info("Achievement unlocked",
		"userId", event.UserID,
		"achievementId", event.AchievementID,
		"level", event.Level,
		"kind", event.Kind,
	)
	c.publisher.PublishUnlocked(event)
	return nil
}

func (c *Controller) publishScoreChanged(userID, event string, score int64) {
	c.metrics.ObserveScoreUpdate()
	c.publisher.PublishScoreChanged(domain.NewScoreChangedEvent(userID, event, score))
}

func (c *Controller) requireDeclared(event string) error {
	if _, declared := c.catalog.AllByEvent()[event]; !declared {
		return errors.ErrValidationFailed("event", "not part of the declared event vocabulary: "+event)
	}
	return nil
}
