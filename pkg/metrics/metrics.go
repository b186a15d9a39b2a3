// Package metrics provides Prometheus instrumentation for the achievement
// engine.
//
// All collectors are registered in a custom [prometheus.Registry] (not the
// global default) so embedding applications control what they expose.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors used by the achievement engine.
type Metrics struct {
	Registry *prometheus.Registry

	UnlocksTotal       *prometheus.CounterVec
	ScoreUpdatesTotal  prometheus.Counter
	TriggerEventsTotal prometheus.Counter
	CatalogSize        prometheus.Gauge
}

// New creates and registers all engine metrics in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		UnlocksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "achievement_unlocks_total",
			Help: "Total number of persisted achievement unlocks.",
		}, []string{"kind"}),

		ScoreUpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "achievement_score_updates_total",
			Help: "Total number of published score updates.",
		}),

		TriggerEventsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "achievement_trigger_events_total",
			Help: "Total number of processed trigger events.",
		}),

		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "achievement_catalog_size",
			Help: "Number of achievement definitions in the catalog.",
		}),
	}

	reg.MustRegister(
		m.UnlocksTotal,
		m.ScoreUpdatesTotal,
		m.TriggerEventsTotal,
		m.CatalogSize,
	)

	return m
}

// ObserveUnlock records one persisted unlock. Nil-safe so instrumentation
// stays optional.
func (m *Metrics) ObserveUnlock(kind string) {
	if m == nil {
		return
	}
	m.UnlocksTotal.WithLabelValues(kind).Inc()
}

// ObserveScoreUpdate records one published score update.
func (m *Metrics) ObserveScoreUpdate() {
	if m == nil {
		return
	}
	m.ScoreUpdatesTotal.Inc()
}

// ObserveTriggerEvent records one processed trigger event.
func (m *Metrics) ObserveTriggerEvent() {
	if m == nil {
		return
	}
	m.TriggerEventsTotal.Inc()
}

// SetCatalogSize records the number of loaded achievement definitions.
func (m *Metrics) SetCatalogSize(size int) {
	if m == nil {
		return
	}
	m.CatalogSize.Set(float64(size))
}
