// Package eventbus delivers unlock and score-change notifications to
// registered listener code.
package eventbus

import (
	"reflect"
	"sync"

	"github.com/achievekit/achievement-engine/pkg/domain"
)

// Publisher is the outbound side the engine depends on. Publishing is
// fire-and-forget: there may be zero listeners and no delivery result is
// reported back.
type Publisher interface {
	PublishUnlocked(event domain.UnlockedEvent)
	PublishScoreChanged(event domain.ScoreChangedEvent)
}

// UnlockedHandler receives achievement unlock notifications.
type UnlockedHandler interface {
	OnUnlocked(event domain.UnlockedEvent)
}

// UnlockedHandlerFunc adapts a function to the UnlockedHandler interface.
type UnlockedHandlerFunc func(event domain.UnlockedEvent)

func (f UnlockedHandlerFunc) OnUnlocked(event domain.UnlockedEvent) { f(event) }

// ScoreChangedHandler receives score update notifications.
type ScoreChangedHandler interface {
	OnScoreChanged(event domain.ScoreChangedEvent)
}

// ScoreChangedHandlerFunc adapts a function to the ScoreChangedHandler interface.
type ScoreChangedHandlerFunc func(event domain.ScoreChangedEvent)

func (f ScoreChangedHandlerFunc) OnScoreChanged(event domain.ScoreChangedEvent) { f(event) }

// Bus is a synchronous in-process Publisher with handler registration.
// Handlers run on the publishing goroutine, in subscription order.
type Bus struct {
	mu                   sync.RWMutex
	unlockedHandlers     []UnlockedHandler
	scoreChangedHandlers []ScoreChangedHandler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeOnUnlock registers a handler for unlock events.
func (b *Bus) SubscribeOnUnlock(handler UnlockedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.unlockedHandlers = append(b.unlockedHandlers, handler)
}

// UnsubscribeOnUnlock removes a previously registered handler.
// Unknown handlers are ignored.
func (b *Bus) UnsubscribeOnUnlock(handler UnlockedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, registered := range b.unlockedHandlers {
		if sameHandler(registered, handler) {
			b.unlockedHandlers = append(b.unlockedHandlers[:i], b.unlockedHandlers[i+1:]...)
			return
		}
	}
}

// sameHandler matches handlers by value for comparable types and by function
// identity for the *HandlerFunc adapters, which are not comparable with ==.
func sameHandler(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}

// SubscribeOnScoreChanged registers a handler for score update events.
func (b *Bus) SubscribeOnScoreChanged(handler ScoreChangedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.scoreChangedHandlers = append(b.scoreChangedHandlers, handler)
}

// UnsubscribeOnScoreChanged removes a previously registered handler.
// Unknown handlers are ignored.
func (b *Bus) UnsubscribeOnScoreChanged(handler ScoreChangedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, registered := range b.scoreChangedHandlers {
		if sameHandler(registered, handler) {
			b.scoreChangedHandlers = append(b.scoreChangedHandlers[:i], b.scoreChangedHandlers[i+1:]...)
			return
		}
	}
}

// PublishUnlocked delivers an unlock event to every registered handler.
func (b *Bus) PublishUnlocked(event domain.UnlockedEvent) {
	b.mu.RLock()
	handlers := make([]UnlockedHandler, len(b.unlockedHandlers))
	copy(handlers, b.unlockedHandlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler.OnUnlocked(event)
	}
}

// PublishScoreChanged delivers a score update event to every registered handler.
func (b *Bus) PublishScoreChanged(event domain.ScoreChangedEvent) {
	b.mu.RLock()
	handlers := make([]ScoreChangedHandler, len(b.scoreChangedHandlers))
	copy(handlers, b.scoreChangedHandlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler.OnScoreChanged(event)
	}
}
