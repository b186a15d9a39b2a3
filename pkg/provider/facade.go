package provider

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/achievekit/achievement-engine/pkg/catalog"
	"github.com/achievekit/achievement-engine/pkg/clock"
	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/errors"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

// findAllConcurrency caps the number of goroutines evaluating achievements
// during a full sweep.
const findAllConcurrency = 8

// Facade routes achievements to the unlock provider registered for their
// kind. Single achievements carry no provider: they unlock only through a
// direct call, never through event evaluation.
type Facade struct {
	providers map[domain.AchievementKind]UnlockProvider
	catalog   *catalog.Catalog
	events    repository.EventRepository
}

// NewFacade builds the facade with one provider per evaluatable kind.
func NewFacade(cat *catalog.Catalog, repo repository.Repository, clk clock.Clock) *Facade {
	return &Facade{
		providers: map[domain.AchievementKind]UnlockProvider{
			domain.KindScore:      NewScoreProvider(repo.Achievements),
			domain.KindScoreRange: NewScoreRangeProvider(repo.Achievements),
			domain.KindDate:       NewDateProvider(repo.Achievements, clk),
			domain.KindTime:       NewTimeProvider(repo.Achievements, clk),
			domain.KindTimeRange:  NewTimeRangeProvider(repo.Achievements, clk),
			domain.KindComposite:  NewCompositeProvider(repo.Achievements, clk),
		},
		catalog: cat,
		events:  repo.Events,
	}
}

// FindUnlockables evaluates every achievement subscribed to event against
// the given score and returns the ones that newly qualify.
func (f *Facade) FindUnlockables(ctx context.Context, userID, event string, score int64) ([]domain.UnlockedEvent, error) {
	var unlockables []domain.UnlockedEvent
	for _, achievement := range f.catalog.SubscribedTo(event) {
		unlockable, err := f.getUnlockable(ctx, userID, achievement, score)
		if err != nil {
			return nil, err
		}
		if unlockable != nil {
			unlockables = append(unlockables, *unlockable)
		}
	}
	return unlockables, nil
}

// FindUnlockablesForEvent evaluates the subscribers of event against the
// user's currently stored score for that event.
func (f *Facade) FindUnlockablesForEvent(ctx context.Context, userID, event string) ([]domain.UnlockedEvent, error) {
	score, err := f.events.ScoreOf(ctx, userID, event)
	if err != nil {
		return nil, err
	}
	return f.FindUnlockables(ctx, userID, event, score)
}

// FindAll sweeps the whole catalog for the user, evaluating each achievement
// against the best stored score across its subscribed events. Achievements
// are evaluated concurrently; the first error cancels the sweep.
func (f *Facade) FindAll(ctx context.Context, userID string) ([]domain.UnlockedEvent, error) {
	var (
		mu          sync.Mutex
		unlockables []domain.UnlockedEvent
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(findAllConcurrency)

	for _, achievement := range f.catalog.All() {
		if achievement.Kind == domain.KindSingle {
			continue
		}
		achievement := achievement
		group.Go(func() error {
			score, err := f.bestScoreOf(ctx, userID, achievement)
			if err != nil {
				return err
			}
			unlockable, err := f.getUnlockable(ctx, userID, achievement, score)
			if err != nil {
				return err
			}
			if unlockable != nil {
				mu.Lock()
				unlockables = append(unlockables, *unlockable)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return unlockables, nil
}

// BestScoreOf returns the highest stored score across the achievement's
// subscribed events, or math.MinInt64 when it subscribes to none.
func (f *Facade) BestScoreOf(ctx context.Context, userID string, achievement *domain.Achievement) (int64, error) {
	return f.bestScoreOf(ctx, userID, achievement)
}

func (f *Facade) bestScoreOf(ctx context.Context, userID string, achievement *domain.Achievement) (int64, error) {
	best := int64(math.MinInt64)
	for _, event := range achievement.Subscriptions {
		score, err := f.events.ScoreOf(ctx, userID, event)
		if err != nil {
			return 0, err
		}
		if score > best {
			best = score
		}
	}
	return best, nil
}

func (f *Facade) getUnlockable(ctx context.Context, userID string, achievement *domain.Achievement, score int64) (*domain.UnlockedEvent, error) {
	if achievement.Kind == domain.KindSingle {
		return nil, nil
	}
	p, ok := f.providers[achievement.Kind]
	if !ok {
		return nil, errors.ErrMissingProvider(string(achievement.Kind))
	}
	return p.GetUnlockable(ctx, userID, achievement, score)
}
