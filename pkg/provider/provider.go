// Package provider contains the per-kind unlock decision logic and the
// facade that dispatches achievements to it.
package provider

import (
	"context"

	"github.com/achievekit/achievement-engine/pkg/domain"
)

// UnlockProvider decides whether an achievement newly qualifies for unlock
// for a user, given the current value of its driving counter.
//
// Providers are read-only: they consult the repository's unlocked state but
// never write; persistence and publication belong to the controller. A nil
// event with a nil error means "not eligible right now".
type UnlockProvider interface {
	GetUnlockable(ctx context.Context, userID string, achievement *domain.Achievement, currentValue int64) (*domain.UnlockedEvent, error)
}
