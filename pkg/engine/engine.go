package engine

import (
	"log/slog"

	"github.com/achievekit/achievement-engine/pkg/catalog"
	"github.com/achievekit/achievement-engine/pkg/clock"
	"github.com/achievekit/achievement-engine/pkg/config"
	"github.com/achievekit/achievement-engine/pkg/eventbus"
	"github.com/achievekit/achievement-engine/pkg/metrics"
	"github.com/achievekit/achievement-engine/pkg/provider"
	"github.com/achievekit/achievement-engine/pkg/repository"
)

// Options configures a new Engine.
type Options struct {
	// DefinitionPath is the JSON achievement definition file to load.
	DefinitionPath string

	// Repository holds the per-user stores. Required.
	Repository repository.Repository

	// Clock drives date and time achievement evaluation.
	// Defaults to the UTC system clock.
	Clock clock.Clock

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.Metrics
}

// Engine bundles the loaded catalog, the evaluation facade, the controller
// and an in-process event bus into one ready-to-use unit.
//
// Construction is fail-fast: a malformed definition file aborts with an
// error and no partially initialized engine is returned.
type Engine struct {
	*Controller

	catalog *catalog.Catalog
	bus     *eventbus.Bus
}

// New loads the definition file and wires a complete engine around it.
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewSystemClock()
	}

	loader := config.NewLoader(opts.DefinitionPath, logger)
	achievements, events, err := loader.Load()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(achievements, events, logger)
	if err != nil {
		return nil, err
	}
	opts.Metrics.SetCatalogSize(cat.Size())

	bus := eventbus.NewBus()
	facade := provider.NewFacade(cat, opts.Repository, clk)

	return &Engine{
		Controller: NewController(cat, facade, opts.Repository, bus, logger, opts.Metrics),
		catalog:    cat,
		bus:        bus,
	}, nil
}

// Catalog exposes the read-only achievement definition index.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// SubscribeOnUnlock registers a handler for unlock notifications.
func (e *Engine) SubscribeOnUnlock(handler eventbus.UnlockedHandler) {
	e.bus.SubscribeOnUnlock(handler)
}

// UnsubscribeOnUnlock removes a previously registered unlock handler.
func (e *Engine) UnsubscribeOnUnlock(handler eventbus.UnlockedHandler) {
	e.bus.UnsubscribeOnUnlock(handler)
}

// SubscribeOnScoreChanged registers a handler for score update notifications.
func (e *Engine) SubscribeOnScoreChanged(handler eventbus.ScoreChangedHandler) {
	e.bus.SubscribeOnScoreChanged(handler)
}

// UnsubscribeOnScoreChanged removes a previously registered score handler.
func (e *Engine) UnsubscribeOnScoreChanged(handler eventbus.ScoreChangedHandler) {
	e.bus.UnsubscribeOnScoreChanged(handler)
}
