package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ppiankov/storyintake/internal/model"
)

// Metrics holds Prometheus metrics for the extraction orchestrator.
//
// Metrics are registered on the registry passed to NewMetrics, never on the
// global default, so tests and parallel orchestrators do not collide.
//
// Metrics:
//   - storyintake_extractions_total{strategy} - Transcripts processed
//   - storyintake_field_fallback_total{field} - Fields re-scored by the degraded path
//   - storyintake_urgency_level_total{level} - Urgency levels assigned
//   - storyintake_category_total{category} - Primary categories assigned
//   - storyintake_extraction_duration_seconds - Extraction latency
type Metrics struct {
	ExtractionsTotal   *prometheus.CounterVec
	FieldFallbackTotal *prometheus.CounterVec
	UrgencyLevelTotal  *prometheus.CounterVec
	CategoryTotal      *prometheus.CounterVec
	Duration           prometheus.Histogram
}

// NewMetrics creates and registers orchestrator metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ExtractionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyintake_extractions_total",
				Help: "Total number of transcripts processed",
			},
			[]string{"strategy"},
		),

		FieldFallbackTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyintake_field_fallback_total",
				Help: "Total number of fields produced by the degraded fallback path",
			},
			[]string{"field"}, // name, category, urgencyLevel, goalAmount
		),

		UrgencyLevelTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyintake_urgency_level_total",
				Help: "Total number of urgency levels assigned",
			},
			[]string{"level"},
		),

		CategoryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyintake_category_total",
				Help: "Total number of primary categories assigned",
			},
			[]string{"category"},
		),

		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "storyintake_extraction_duration_seconds",
				Help:    "Duration of one extraction in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~200ms
			},
		),
	}
}

// Record records one finished extraction. A nil receiver is a no-op.
func (m *Metrics) Record(result model.ExtractionResult, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(result.Strategy).Inc()
	m.UrgencyLevelTotal.WithLabelValues(result.UrgencyLevel.String()).Inc()
	m.CategoryTotal.WithLabelValues(result.Category.String()).Inc()
	m.Duration.Observe(elapsed.Seconds())
	for _, field := range model.Fields() {
		if result.FallbackTier[field] == model.TierFallback {
			m.FieldFallbackTotal.WithLabelValues(string(field)).Inc()
		}
	}
}
