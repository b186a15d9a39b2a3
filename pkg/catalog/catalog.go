// Package catalog indexes the loaded achievement definitions for fast
// lookup by id, kind, subscribed event and category.
package catalog

import (
	"log/slog"
	"sync"

	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/errors"
)

// Catalog provides O(1) in-memory lookups over the achievement definitions.
// All indexes are built at construction and the catalog is read-only
// afterwards; it may be shared freely across concurrent callers.
type Catalog struct {
	byID       map[string]*domain.Achievement
	byKind     map[domain.AchievementKind]map[string]*domain.Achievement
	byEvent    map[string][]*domain.Achievement
	byCategory map[string][]*domain.Achievement
	ordered    []*domain.Achievement
	mu         sync.RWMutex
	logger     *slog.Logger
}

// New builds a catalog from validated achievement definitions and the
// declared event vocabulary.
//
// Every event name an achievement subscribes to must appear in events;
// a violation aborts construction with an UNDECLARED_EVENT error and no
// partial catalog is returned.
func New(achievements []*domain.Achievement, events []string, logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		byID:       make(map[string]*domain.Achievement),
		byKind:     make(map[domain.AchievementKind]map[string]*domain.Achievement),
		byEvent:    make(map[string][]*domain.Achievement),
		byCategory: make(map[string][]*domain.Achievement),
		ordered:    make([]*domain.Achievement, 0, len(achievements)),
		logger:     logger,
	}

	for _, kind := range domain.Kinds() {
		c.byKind[kind] = make(map[string]*domain.Achievement)
	}
	for _, event := range events {
		c.byEvent[event] = nil
	}

	for _, achievement := range achievements {
		if err := c.add(achievement); err != nil {
			return nil, err
		}
	}

	c.logger.Info("Achievement catalog built",
		"achievements", len(c.byID),
		"events", len(c.byEvent),
		"categories", len(c.byCategory),
	)

	return c, nil
}

func (c *Catalog) add(achievement *domain.Achievement) error {
	for _, event := range achievement.Subscriptions {
		if _, declared := c.byEvent[event]; !declared {
			return errors.ErrUndeclaredEvent(achievement.ID, event)
		}
	}

	c.byID[achievement.ID] = achievement
	c.byKind[achievement.Kind][achievement.ID] = achievement
	c.byCategory[achievement.Category] = append(c.byCategory[achievement.Category], achievement)
	c.ordered = append(c.ordered, achievement)
	for _, event := range achievement.Subscriptions {
		c.byEvent[event] = append(c.byEvent[event], achievement)
	}
	return nil
}

// Get retrieves an achievement by its unique id.
func (c *Catalog) Get(id string) (*domain.Achievement, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	achievement, ok := c.byID[id]
	return achievement, ok
}

// GetByKind retrieves an achievement of a specific kind by id.
func (c *Catalog) GetByKind(kind domain.AchievementKind, id string) (*domain.Achievement, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	achievement, ok := c.byKind[kind][id]
	return achievement, ok
}

// SubscribedTo retrieves all achievements subscribed to an event, in
// definition order. Returns an empty slice for events nothing subscribes to.
func (c *Catalog) SubscribedTo(event string) []*domain.Achievement {
	c.mu.RLock()
	defer c.mu.RUnlock()

	achievements := c.byEvent[event]
	if achievements == nil {
		return []*domain.Achievement{}
	}
	return achievements
}

// ByCategory retrieves all achievements in a category.
func (c *Catalog) ByCategory(category string) []*domain.Achievement {
	c.mu.RLock()
	defer c.mu.RUnlock()

	achievements := c.byCategory[category]
	if achievements == nil {
		return []*domain.Achievement{}
	}
	return achievements
}

// All retrieves every achievement in definition order.
func (c *Catalog) All() []*domain.Achievement {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ordered
}

// AllByEvent returns the full event index: event name to subscribed
// achievements. Declared events without subscribers map to nil.
func (c *Catalog) AllByEvent() map[string][]*domain.Achievement {
	c.mu.RLock()
	defer c.mu.RUnlock()

	index := make(map[string][]*domain.Achievement, len(c.byEvent))
	for event, achievements := range c.byEvent {
		index[event] = achievements
	}
	return index
}

// Events returns the declared event vocabulary.
func (c *Catalog) Events() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	events := make([]string, 0, len(c.byEvent))
	for event := range c.byEvent {
		events = append(events, event)
	}
	return events
}

// Size returns the number of achievement definitions.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.byID)
}
