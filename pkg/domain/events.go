package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnlockedEvent is published after an achievement level has been persisted
// as unlocked for a user.
type UnlockedEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	UserID        string          `json:"user_id"`
	AchievementID string          `json:"achievement_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Kind          AchievementKind `json:"kind"`
	Level         int             `json:"level"`

	// TriggerValue is the human-readable value that caused the unlock:
	// the score for score-driven kinds, "MM-DD" for date kinds and
	// "HH:MM" for time kinds.
	TriggerValue string    `json:"trigger_value"`
	UnlockedAt   time.Time `json:"unlocked_at"`
}

// NewUnlockedEvent builds an unlock event for one achievement level.
func NewUnlockedEvent(userID string, achievement *Achievement, level int, triggerValue string) UnlockedEvent {
	return UnlockedEvent{
		EventID:       uuid.New(),
		UserID:        userID,
		AchievementID: achievement.ID,
		Name:          achievement.Name,
		Description:   achievement.Description,
		Category:      achievement.Category,
		Kind:          achievement.Kind,
		Level:         level,
		TriggerValue:  triggerValue,
		UnlockedAt:    time.Now().UTC(),
	}
}

// ScoreChangedEvent is published after an event counter has been updated,
// whether or not any achievement unlocked as a result.
type ScoreChangedEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	UserID    string    `json:"user_id"`
	EventName string    `json:"event_name"`
	Score     int64     `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewScoreChangedEvent builds a score update event.
func NewScoreChangedEvent(userID, eventName string, score int64) ScoreChangedEvent {
	return ScoreChangedEvent{
		EventID:   uuid.New(),
		UserID:    userID,
		EventName: eventName,
		Score:     score,
		UpdatedAt: time.Now().UTC(),
	}
}
