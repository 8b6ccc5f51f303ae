package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// PricingMetrics records price matrix calculations.
type PricingMetrics struct {
	duration  *prometheus.HistogramVec
	cells     *prometheus.CounterVec
	conflicts *prometheus.CounterVec
	cache     *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "price_matrix_duration_seconds",
		Help:    "Duration of price matrix calculations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode", "outcome"})
	cells := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_matrix_cells_total",
		Help: "Price matrix cells produced, by validation status.",
	}, []string{"status"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_matrix_conflicts_total",
		Help: "Promotions removed by conflict resolution, by rule.",
	}, []string{"rule"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_matrix_cache_total",
		Help: "Price matrix cache lookups, by result.",
	}, []string{"result"})
	reg.MustRegister(duration, cells, conflicts, cache)
	return &PricingMetrics{
		duration:  duration,
		cells:     cells,
		conflicts: conflicts,
		cache:     cache,
	}
}

// ObserveCalculation records how long a matrix calculation took.
func (p *PricingMetrics) ObserveCalculation(mode, outcome string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(mode), normalizeLabel(outcome)).Observe(duration.Seconds())
}

// AddCells adds n cells under the given status.
func (p *PricingMetrics) AddCells(status string, n int) {
	if p == nil || p.cells == nil || n <= 0 {
		return
	}
	p.cells.WithLabelValues(normalizeLabel(status)).Add(float64(n))
}

// IncConflict counts one promotion removed by rule.
func (p *PricingMetrics) IncConflict(rule string) {
	if p == nil || p.conflicts == nil {
		return
	}
	p.conflicts.WithLabelValues(normalizeLabel(rule)).Inc()
}

// IncCache counts one cache lookup result.
func (p *PricingMetrics) IncCache(result string) {
	if p == nil || p.cache == nil {
		return
	}
	p.cache.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
