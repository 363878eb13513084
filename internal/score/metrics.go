package score

import (
	"math"

	"github.com/ppiankov/storyintake/internal/model"
)

// Summarize computes the numeric part of BaselineMetrics over a run.
// Identity fields (run ID, dataset, strategy, version) are left to the caller.
func Summarize(outcomes []model.CaseOutcome) model.BaselineMetrics {
	metrics := model.BaselineMetrics{
		Cases:         len(outcomes),
		FieldAccuracy: make(map[model.Field]float64, 4),
	}
	for _, f := range model.Fields() {
		metrics.FieldAccuracy[f] = 0
	}
	if len(outcomes) == 0 {
		return metrics
	}

	passed := 0
	fallback := 0
	fieldPassed := make(map[model.Field]int, 4)
	confidence := 0.0
	duration := 0.0

	for _, o := range outcomes {
		if o.Passed {
			passed++
		}
		if o.Result.UsedFallback() {
			fallback++
		}
		for _, f := range model.Fields() {
			if o.FieldPassed[f] {
				fieldPassed[f]++
			}
		}
		confidence += o.Result.AverageConfidence()
		duration += o.DurationMs
	}

	n := float64(len(outcomes))
	metrics.PassRate = round4(float64(passed) / n)
	metrics.FallbackUsageRate = round4(float64(fallback) / n)
	metrics.AvgConfidence = round4(confidence / n)
	metrics.AvgExecutionMs = round4(duration / n)
	for _, f := range model.Fields() {
		metrics.FieldAccuracy[f] = round4(float64(fieldPassed[f]) / n)
	}
	return metrics
}

// Failures returns the outcomes that did not pass, in input order
func Failures(outcomes []model.CaseOutcome) []model.CaseOutcome {
	var failed []model.CaseOutcome
	for _, o := range outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
