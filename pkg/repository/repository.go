package repository

import (
	"context"
	"time"
)

// UnlockRecord is one persisted (user, achievement, level) unlock tuple.
// Once written it is never removed except by a full reset for the user.
type UnlockRecord struct {
	UserID        string    `json:"user_id" db:"user_id"`
	AchievementID string    `json:"achievement_id" db:"achievement_id"`
	Level         int       `json:"level" db:"level"`
	UnlockedAt    time.Time `json:"unlocked_at" db:"unlocked_at"`
}

// EventRepository manages the per-user event score counters.
// Implementations must be safe for concurrent use.
type EventRepository interface {
	// ScoreOf returns the current counter value for an event.
	// Events with no recorded value report zero.
	ScoreOf(ctx context.Context, userID, event string) (int64, error)

	// SetScore stores an absolute counter value and returns the new value.
	SetScore(ctx context.Context, userID, event string, score int64) (int64, error)

	// Increment adds one to the counter and returns the new value.
	Increment(ctx context.Context, userID, event string) (int64, error)

	// ResetCounters removes every counter of the user.
	ResetCounters(ctx context.Context, userID string) error
}

// AchievementRepository manages the per-user unlocked achievement state.
// Implementations must be safe for concurrent use.
type AchievementRepository interface {
	// IsUnlocked reports whether any level of the achievement is unlocked.
	IsUnlocked(ctx context.Context, userID, achievementID string) (bool, error)

	// IsLevelUnlocked reports whether a specific level is unlocked.
	IsLevelUnlocked(ctx context.Context, userID, achievementID string, level int) (bool, error)

	// Unlock marks a level as unlocked with a single atomic conditional
	// write. Returns true when the tuple was newly written and false when
	// it was already unlocked; a lost race is not an error.
	Unlock(ctx context.Context, userID, achievementID string, level int) (bool, error)

	// GetAll returns every unlock record of the user.
	GetAll(ctx context.Context, userID string) ([]UnlockRecord, error)

	// Clear removes every unlock record of the user. Irreversible.
	Clear(ctx context.Context, userID string) error
}

// Repository bundles the two per-user stores the engine depends on.
type Repository struct {
	Events       EventRepository
	Achievements AchievementRepository
}
