// Package pipeline assembles the extraction engine: it runs every extractor
// over a transcript, recovers engine faults per field, and renders results.
package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/storyintake/internal/classify"
	"github.com/ppiankov/storyintake/internal/extract"
	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
	"github.com/ppiankov/storyintake/internal/urgency"
)

const (
	maxGoalAmount     = 1_000_000
	contextConfidence = 0.5
)

// NameExtractor produces ranked name candidates
type NameExtractor interface {
	Extract(text string) model.NameResult
}

// CategoryAssessor resolves the primary category
type CategoryAssessor interface {
	Assess(text string) model.CategoryAssessment
}

// AmountExtractor finds the monetary goal
type AmountExtractor interface {
	Extract(text string) model.AmountResult
}

// Orchestrator runs all extractors and assembles the structured result.
// It holds only read-only collaborators and is safe for concurrent use.
type Orchestrator struct {
	names    NameExtractor
	category CategoryAssessor
	amounts  AmountExtractor
	urgency  urgency.Strategy
	fallback fallbackScorer
	metrics  *Metrics
	logger   zerolog.Logger
	version  string
}

// Option customizes an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the logger used for fault and debug lines
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithMetrics enables Prometheus instrumentation
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithUrgencyStrategy replaces the default contextual-v2 strategy
func WithUrgencyStrategy(s urgency.Strategy) Option {
	return func(o *Orchestrator) { o.urgency = s }
}

// WithNameExtractor replaces the name extractor
func WithNameExtractor(e NameExtractor) Option {
	return func(o *Orchestrator) { o.names = e }
}

// WithCategoryAssessor replaces the category engine
func WithCategoryAssessor(a CategoryAssessor) Option {
	return func(o *Orchestrator) { o.category = a }
}

// WithAmountExtractor replaces the amount extractor
func WithAmountExtractor(e AmountExtractor) Option {
	return func(o *Orchestrator) { o.amounts = e }
}

// NewOrchestrator wires the default extractors over a shared library
func NewOrchestrator(lib *patterns.Library, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		names:    extract.NewNameExtractor(lib),
		category: classify.NewEngine(lib),
		amounts:  extract.NewAmountExtractor(lib),
		urgency:  urgency.NewContextualStrategy(lib, urgency.DefaultMaxAdjustment, urgency.DefaultThresholds()),
		logger:   zerolog.Nop(),
		version:  lib.Version,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewFromConfig builds an orchestrator with the configured urgency strategy.
// An unknown strategy name falls back to contextual-v2 with a warning.
func NewFromConfig(lib *patterns.Library, cfg *model.Config, opts ...Option) (*Orchestrator, error) {
	registry, err := urgency.NewRegistry(lib, cfg.Urgency)
	if err != nil {
		return nil, fmt.Errorf("urgency strategy: %w", err)
	}
	strategy, found := registry.Find(cfg.Urgency.Strategy)

	o := NewOrchestrator(lib, append(opts, WithUrgencyStrategy(strategy))...)
	if !found {
		o.logger.Warn().
			Str("strategy", cfg.Urgency.Strategy).
			Strs("available", registry.Names()).
			Msg("unknown urgency strategy, using " + strategy.Name())
	}
	return o, nil
}

// Strategy returns the name of the urgency strategy in use
func (o *Orchestrator) Strategy() string {
	return o.urgency.Name()
}

// PatternVersion returns the pattern library version
func (o *Orchestrator) PatternVersion() string {
	return o.version
}

// Extract assesses one transcript. It never panics and never returns a
// partially populated result: engine faults are recovered per field and the
// field is re-scored by the degraded pattern set.
func (o *Orchestrator) Extract(transcript string, hints *model.ExtractionContext) model.ExtractionResult {
	start := time.Now()
	text := extract.Normalize(transcript)

	var result model.ExtractionResult
	if text == "" {
		result = o.empty()
	} else {
		result = o.assess(text, hints)
	}

	elapsed := time.Since(start)
	o.metrics.Record(result, elapsed)
	o.logger.Debug().
		Str("strategy", result.Strategy).
		Str("category", result.Category.String()).
		Str("urgency", result.UrgencyLevel.String()).
		Dur("elapsed", elapsed).
		Msg("extraction complete")
	return result
}

func (o *Orchestrator) assess(text string, hints *model.ExtractionContext) model.ExtractionResult {
	result := o.skeleton()

	// Name
	names, degraded := guard(o, model.FieldName,
		func() model.NameResult { return o.names.Extract(text) },
		func() model.NameResult {
			return model.NameResult{Primary: o.fallback.name(text), Candidates: []model.Candidate{}}
		})
	result.Name = names.Primary
	result.NameAlternatives = extract.Alternatives(names)
	switch {
	case degraded:
		result.FallbackTier[model.FieldName] = model.TierFallback
	case names.Primary != nil:
		result.FallbackTier[model.FieldName] = extract.NameTier(names.Primary.StrategyID)
	}
	if result.Name != nil {
		result.Confidence[model.FieldName] = result.Name.Confidence
	}

	// Category
	assessment, degraded := guard(o, model.FieldCategory,
		func() model.CategoryAssessment { return o.category.Assess(text) },
		func() model.CategoryAssessment { return o.fallback.category(text) })
	result.Category = assessment.Primary
	result.Confidence[model.FieldCategory] = assessment.Confidence
	if assessment.AllIntents != nil {
		result.Intents = assessment.AllIntents
	}
	switch {
	case degraded:
		result.FallbackTier[model.FieldCategory] = model.TierFallback
	case assessment.Primary == model.CategoryOther && hints != nil && hints.Category != nil && hints.Category.Valid():
		result.Category = *hints.Category
		result.Confidence[model.FieldCategory] = contextConfidence
		result.FallbackTier[model.FieldCategory] = model.TierContext
	case assessment.Primary == model.CategoryOther:
		result.FallbackTier[model.FieldCategory] = model.TierDefault
	default:
		result.FallbackTier[model.FieldCategory] = model.TierPrimary
	}

	// Urgency depends on the resolved category
	category := result.Category
	assessed, degraded := guard(o, model.FieldUrgency,
		func() model.UrgencyAssessment { return o.urgency.Assess(text, category) },
		func() model.UrgencyAssessment { return o.fallback.urgency(text) })
	result.Urgency = assessed
	result.UrgencyLevel = assessed.Level
	result.Confidence[model.FieldUrgency] = assessed.Confidence
	if degraded {
		result.FallbackTier[model.FieldUrgency] = model.TierFallback
	} else {
		result.FallbackTier[model.FieldUrgency] = model.TierPrimary
	}

	// Goal amount
	amount, degraded := guard(o, model.FieldGoalAmount,
		func() model.AmountResult { return o.amounts.Extract(text) },
		func() model.AmountResult { return o.fallback.amount(text) })
	switch {
	case degraded:
		result.FallbackTier[model.FieldGoalAmount] = model.TierFallback
	case amount.Value != nil:
		result.FallbackTier[model.FieldGoalAmount] = extract.AmountTier(amount.PatternID)
	case hints != nil && hints.GoalAmount != nil && *hints.GoalAmount > 0 && *hints.GoalAmount <= maxGoalAmount:
		v := *hints.GoalAmount
		amount = model.AmountResult{Value: &v, Confidence: contextConfidence}
		result.FallbackTier[model.FieldGoalAmount] = model.TierContext
	}
	if amount.Value != nil {
		result.GoalAmount = amount.Value
		result.Confidence[model.FieldGoalAmount] = amount.Confidence
	}

	return result
}

// guard runs primary and, if it panics, logs the fault and returns the
// degraded value instead
func guard[T any](o *Orchestrator, field model.Field, primary func() T, degraded func() T) (out T, usedFallback bool) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn().
				Str("field", string(field)).
				Str("panic", fmt.Sprint(r)).
				Msg("engine fault, re-scoring with fallback patterns")
			out = degraded()
			usedFallback = true
		}
	}()
	return primary(), false
}

// skeleton is a fully keyed result with null values and zero confidence
func (o *Orchestrator) skeleton() model.ExtractionResult {
	result := model.ExtractionResult{
		NameAlternatives: []model.Candidate{},
		Category:         model.CategoryOther,
		Intents:          []model.Intent{},
		UrgencyLevel:     model.UrgencyLow,
		Urgency:          model.UrgencyAssessment{Level: model.UrgencyLow, Reasons: []string{}},
		Confidence:       make(map[model.Field]float64, 4),
		FallbackTier:     make(map[model.Field]model.Tier, 4),
		Strategy:         o.urgency.Name(),
		PatternVersion:   o.version,
	}
	for _, f := range model.Fields() {
		result.Confidence[f] = 0
		result.FallbackTier[f] = model.TierNone
	}
	return result
}

// empty is the result for a blank transcript: LOW urgency, OTHER, zero
// confidence everywhere
func (o *Orchestrator) empty() model.ExtractionResult {
	result := o.skeleton()
	result.Urgency.Reasons = []string{model.ReasonEmptyTranscript}
	return result
}
