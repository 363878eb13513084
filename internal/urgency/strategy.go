// Package urgency scores how urgent a transcript is. The contextual
// strategy layers a temporal score and a crisis score, merges them through
// an ordered rule table and maps the result onto LOW..CRITICAL using
// per-category thresholds.
package urgency

import (
	"math"
	"sort"

	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

// Strategy names selectable through urgency.strategy
const (
	StrategyContextual = "contextual-v2"
	StrategyKeyword    = "keyword-v1"
)

const maxUrgencyConfidence = 0.95

// Strategy turns a transcript and its resolved category into an urgency
// assessment. Implementations must be pure and safe for concurrent use.
type Strategy interface {
	// Name returns the configuration name of the strategy
	Name() string

	// Assess scores the transcript
	Assess(text string, category model.Category) model.UrgencyAssessment
}

// Explanation exposes every layer output behind one assessment
type Explanation struct {
	Temporal    model.TemporalSignal
	Crisis      model.CrisisSignal
	Combination Combination
	Thresholds  Thresholds
	Assessment  model.UrgencyAssessment
}

// ContextualStrategy is the layered engine: temporal and crisis layers,
// rule-based combination with capped category adjustments, and
// per-category thresholds
type ContextualStrategy struct {
	temporal   *TemporalLayer
	crisis     *CrisisLayer
	combiner   *Combiner
	thresholds ThresholdTable
}

// NewContextualStrategy creates the layered strategy
func NewContextualStrategy(lib *patterns.Library, maxAdjustment float64, thresholds ThresholdTable) *ContextualStrategy {
	return &ContextualStrategy{
		temporal:   NewTemporalLayer(lib),
		crisis:     NewCrisisLayer(lib),
		combiner:   NewCombiner(maxAdjustment),
		thresholds: thresholds,
	}
}

func (s *ContextualStrategy) Name() string { return StrategyContextual }

func (s *ContextualStrategy) Assess(text string, category model.Category) model.UrgencyAssessment {
	return s.Explain(text, category).Assessment
}

// Explain runs all layers and keeps their intermediate outputs
func (s *ContextualStrategy) Explain(text string, category model.Category) Explanation {
	ex := Explanation{
		Temporal: s.temporal.Score(text),
		Crisis:   s.crisis.Score(text),
	}
	ex.Combination = s.combiner.Combine(Inputs{Temporal: ex.Temporal, Crisis: ex.Crisis, Category: category})
	ex.Thresholds = s.thresholds.For(category)

	confidence := 0.3
	if ex.Crisis.Domain != "" {
		confidence += 0.3
	}
	if len(ex.Temporal.Matches) > 0 || ex.Temporal.NoUrgency {
		confidence += 0.2
	}
	if category != model.CategoryOther {
		confidence += 0.1
	}

	reasons := make([]string, len(ex.Combination.Reasons))
	copy(reasons, ex.Combination.Reasons)
	ex.Assessment = model.UrgencyAssessment{
		Score:      ex.Combination.Score,
		Level:      s.thresholds.Level(ex.Combination.Score, category, reasons),
		Confidence: round2(math.Min(confidence, maxUrgencyConfidence)),
		Reasons:    reasons,
	}
	return ex
}

// KeywordStrategy scores by temporal buckets alone against one global
// threshold table. It is kept for A/B comparison and rollback.
type KeywordStrategy struct {
	temporal   *TemporalLayer
	thresholds ThresholdTable
}

// NewKeywordStrategy creates the temporal-only strategy
func NewKeywordStrategy(lib *patterns.Library) *KeywordStrategy {
	return &KeywordStrategy{
		temporal:   NewTemporalLayer(lib),
		thresholds: GlobalThresholds(Thresholds{Medium: 0.3, High: 0.6, Critical: 0.85}),
	}
}

func (s *KeywordStrategy) Name() string { return StrategyKeyword }

func (s *KeywordStrategy) Assess(text string, category model.Category) model.UrgencyAssessment {
	temporal := s.temporal.Score(text)
	reasons := []string{"temporal:" + string(temporal.Bucket), "rule:keyword"}
	if temporal.NoUrgency {
		reasons = append(reasons, model.ReasonNoUrgency)
	}

	confidence := 0.3
	if len(temporal.Matches) > 0 || temporal.NoUrgency {
		confidence += 0.2
	}
	return model.UrgencyAssessment{
		Score:      temporal.Score,
		Level:      s.thresholds.Level(temporal.Score, category, reasons),
		Confidence: round2(confidence),
		Reasons:    reasons,
	}
}

// Registry holds the available strategies and resolves configured names
type Registry struct {
	strategies map[string]Strategy
	fallback   Strategy
}

// NewRegistry registers the built-in strategies, applying configured
// threshold overrides and adjustment cap to the contextual strategy
func NewRegistry(lib *patterns.Library, cfg model.UrgencyConfig) (*Registry, error) {
	thresholds, err := DefaultThresholds().WithOverrides(cfg.Thresholds)
	if err != nil {
		return nil, err
	}

	contextual := NewContextualStrategy(lib, cfg.MaxAdjustment, thresholds)
	registry := &Registry{
		strategies: make(map[string]Strategy),
		fallback:   contextual,
	}
	registry.Register(contextual)
	registry.Register(NewKeywordStrategy(lib))
	return registry, nil
}

// Register adds or replaces a strategy
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Find returns the named strategy. Unknown names resolve to contextual-v2
// and report false so callers can warn.
func (r *Registry) Find(name string) (Strategy, bool) {
	if s, ok := r.strategies[name]; ok {
		return s, true
	}
	return r.fallback, false
}

// Names lists registered strategy names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
