package repository

import (
	"context"
	"sort"
	"sync"
	"time"
)

type levelKey struct {
	achievementID string
	level         int
}

// MemoryRepository is an in-memory Repository implementation for tests,
// examples and embedded use. All state is guarded by a single mutex.
type MemoryRepository struct {
	mu       sync.Mutex
	counters map[string]map[string]int64       // userID -> event -> score
	unlocked map[string]map[levelKey]time.Time // userID -> (achievement, level) -> unlock time
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		counters: make(map[string]map[string]int64),
		unlocked: make(map[string]map[levelKey]time.Time),
	}
}

// Events returns the repository as an EventRepository.
func (r *MemoryRepository) Events() EventRepository { return r }

// Achievements returns the repository as an AchievementRepository.
func (r *MemoryRepository) Achievements() AchievementRepository { return r }

// Repository bundles the in-memory stores into the aggregate the engine takes.
func (r *MemoryRepository) Repository() Repository {
	return Repository{Events: r, Achievements: r}
}

func (r *MemoryRepository) ScoreOf(_ context.Context, userID, event string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counters[userID][event], nil
}

func (r *MemoryRepository) SetScore(_ context.Context, userID, event string, score int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counters[userID] == nil {
		r.counters[userID] = make(map[string]int64)
	}
	r.counters[userID][event] = score
	return score, nil
}

func (r *MemoryRepository) Increment(_ context.Context, userID, event string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counters[userID] == nil {
		r.counters[userID] = make(map[string]int64)
	}
	r.counters[userID][event]++
	return r.counters[userID][event], nil
}

func (r *MemoryRepository) ResetCounters(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.counters, userID)
	return nil
}

func (r *MemoryRepository) IsUnlocked(_ context.Context, userID, achievementID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.unlocked[userID] {
		if key.achievementID == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) IsLevelUnlocked(_ context.Context, userID, achievementID string, level int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.unlocked[userID][levelKey{achievementID: achievementID, level: level}]
	return ok, nil
}

func (r *MemoryRepository) Unlock(_ context.Context, userID, achievementID string, level int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := levelKey{achievementID: achievementID, level: level}
	if r.unlocked[userID] == nil {
		r.unlocked[userID] = make(map[levelKey]time.Time)
	}
	if _, exists := r.unlocked[userID][key]; exists {
		return false, nil
	}
	r.unlocked[userID][key] = time.Now().UTC()
	return true, nil
}

func (r *MemoryRepository) GetAll(_ context.Context, userID string) ([]UnlockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]UnlockRecord, 0, len(r.unlocked[userID]))
	for key, unlockedAt := range r.unlocked[userID] {
		records = append(records, UnlockRecord{
			UserID:        userID,
			AchievementID: key.achievementID,
			Level:         key.level,
			UnlockedAt:    unlockedAt,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].UnlockedAt.Equal(records[j].UnlockedAt) {
			return records[i].UnlockedAt.Before(records[j].UnlockedAt)
		}
		return records[i].AchievementID < records[j].AchievementID
	})
	return records, nil
}

func (r *MemoryRepository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.unlocked, userID)
	return nil
}
