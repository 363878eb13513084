package score

import (
	"fmt"
	"strings"

	"github.com/ppiankov/storyintake/internal/model"
)

// Drop thresholds for accuracy-style metrics (higher is better)
const (
	criticalDrop = 0.10
	majorDrop    = 0.05
	minorDrop    = 0.01

	confidenceMajorDrop = 0.10
	confidenceMinorDrop = 0.03

	fallbackMajorRise = 0.10
	fallbackMinorRise = 0.02

	slowdownFactor = 2.0
	slowdownMinMs  = 1.0
)

// Comparator diffs a run against a stored baseline
type Comparator struct {
	passRateFloor float64
	fieldFloors   map[model.Field]float64
}

// NewComparator creates a comparator with the configured floors
func NewComparator(cfg model.EvalConfig) *Comparator {
	c := &Comparator{
		passRateFloor: cfg.PassRateFloor,
		fieldFloors:   make(map[model.Field]float64, len(cfg.FieldFloors)),
	}
	// Config loaders may lowercase map keys
	for name, floor := range cfg.FieldFloors {
		for _, f := range model.Fields() {
			if strings.EqualFold(name, string(f)) {
				c.fieldFloors[f] = floor
			}
		}
	}
	return c
}

// Compare returns every metric that regressed, most important first
func (c *Comparator) Compare(baseline, current model.BaselineMetrics) model.Comparison {
	result := model.Comparison{
		Baseline:    baseline,
		Current:     current,
		Regressions: []model.Regression{},
	}

	if r, ok := c.accuracy("pass_rate", baseline.PassRate, current.PassRate, c.passRateFloor); ok {
		result.Regressions = append(result.Regressions, r)
	}
	for _, f := range model.Fields() {
		metric := "field_accuracy." + string(f)
		if r, ok := c.accuracy(metric, baseline.FieldAccuracy[f], current.FieldAccuracy[f], c.fieldFloors[f]); ok {
			result.Regressions = append(result.Regressions, r)
		}
	}
	if r, ok := c.confidence(baseline.AvgConfidence, current.AvgConfidence); ok {
		result.Regressions = append(result.Regressions, r)
	}
	if r, ok := c.fallback(baseline.FallbackUsageRate, current.FallbackUsageRate); ok {
		result.Regressions = append(result.Regressions, r)
	}
	if r, ok := c.latency(baseline.AvgExecutionMs, current.AvgExecutionMs); ok {
		result.Regressions = append(result.Regressions, r)
	}
	return result
}

// accuracy grades a drop; falling below the floor is at least MAJOR
func (c *Comparator) accuracy(metric string, baseline, current, floor float64) (model.Regression, bool) {
	drop := round4(baseline - current)
	belowFloor := floor > 0 && current < floor

	var severity model.RegressionSeverity
	switch {
	case drop >= criticalDrop:
		severity = model.SeverityCritical
	case drop >= majorDrop:
		severity = model.SeverityMajor
	case drop >= minorDrop:
		severity = model.SeverityMinor
	}
	if belowFloor && severity != model.SeverityCritical {
		severity = model.SeverityMajor
	}
	if severity == "" {
		return model.Regression{}, false
	}

	description := fmt.Sprintf("%s dropped %.1f points (%.3f → %.3f)", metric, drop*100, baseline, current)
	if belowFloor {
		description += fmt.Sprintf(", below floor %.2f", floor)
	}
	return model.Regression{
		Metric:      metric,
		Severity:    severity,
		Baseline:    baseline,
		Current:     current,
		Delta:       -drop,
		Description: description,
		Data: map[string]interface{}{
			"floor":    floor,
			"critical": criticalDrop,
			"major":    majorDrop,
			"minor":    minorDrop,
			"formula":  "baseline - current",
		},
	}, true
}

func (c *Comparator) confidence(baseline, current float64) (model.Regression, bool) {
	drop := round4(baseline - current)

	var severity model.RegressionSeverity
	switch {
	case drop >= confidenceMajorDrop:
		severity = model.SeverityMajor
	case drop >= confidenceMinorDrop:
		severity = model.SeverityMinor
	default:
		return model.Regression{}, false
	}
	return model.Regression{
		Metric:      "avg_confidence",
		Severity:    severity,
		Baseline:    baseline,
		Current:     current,
		Delta:       -drop,
		Description: fmt.Sprintf("Average confidence dropped %.3f", drop),
		Data: map[string]interface{}{
			"major":   confidenceMajorDrop,
			"minor":   confidenceMinorDrop,
			"formula": "baseline - current",
		},
	}, true
}

func (c *Comparator) fallback(baseline, current float64) (model.Regression, bool) {
	rise := round4(current - baseline)

	var severity model.RegressionSeverity
	switch {
	case rise >= fallbackMajorRise:
		severity = model.SeverityMajor
	case rise >= fallbackMinorRise:
		severity = model.SeverityMinor
	default:
		return model.Regression{}, false
	}
	return model.Regression{
		Metric:      "fallback_usage_rate",
		Severity:    severity,
		Baseline:    baseline,
		Current:     current,
		Delta:       rise,
		Description: fmt.Sprintf("Fallback usage rose %.1f points", rise*100),
		Data: map[string]interface{}{
			"major":   fallbackMajorRise,
			"minor":   fallbackMinorRise,
			"formula": "current - baseline",
		},
	}, true
}

func (c *Comparator) latency(baseline, current float64) (model.Regression, bool) {
	if baseline <= 0 || current < baseline*slowdownFactor || current-baseline < slowdownMinMs {
		return model.Regression{}, false
	}
	return model.Regression{
		Metric:      "avg_execution_ms",
		Severity:    model.SeverityMinor,
		Baseline:    baseline,
		Current:     current,
		Delta:       round4(current - baseline),
		Description: fmt.Sprintf("Average execution time %.2fms → %.2fms", baseline, current),
		Data: map[string]interface{}{
			"factor":  slowdownFactor,
			"min_ms":  slowdownMinMs,
			"formula": "current >= baseline*factor && current-baseline >= min_ms",
		},
	}, true
}
