package model

import "time"

// BaselineMetrics summarizes one evaluation run over a dataset
type BaselineMetrics struct {
	RunID             string            `json:"run_id"`
	CreatedAt         time.Time         `json:"created_at"`
	Dataset           string            `json:"dataset,omitempty"`
	Strategy          string            `json:"strategy"`
	PatternVersion    string            `json:"pattern_version"`
	Cases             int               `json:"cases"`
	PassRate          float64           `json:"pass_rate"`
	FieldAccuracy     map[Field]float64 `json:"field_accuracy"`
	AvgConfidence     float64           `json:"avg_confidence"`
	FallbackUsageRate float64           `json:"fallback_usage_rate"`
	AvgExecutionMs    float64           `json:"avg_execution_ms"`
}

// RegressionSeverity grades how far a metric moved against the baseline
type RegressionSeverity string

const (
	SeverityCritical RegressionSeverity = "CRITICAL"
	SeverityMajor    RegressionSeverity = "MAJOR"
	SeverityMinor    RegressionSeverity = "MINOR"
)

// Regression is one metric that moved in the wrong direction
type Regression struct {
	Metric      string                 `json:"metric"`
	Severity    RegressionSeverity     `json:"severity"`
	Baseline    float64                `json:"baseline"`
	Current     float64                `json:"current"`
	Delta       float64                `json:"delta"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Thresholds and formula used
}

// Comparison is the diff of a run against a stored baseline
type Comparison struct {
	Baseline    BaselineMetrics `json:"baseline"`
	Current     BaselineMetrics `json:"current"`
	Regressions []Regression    `json:"regressions"`
}

// Failed reports whether any CRITICAL or MAJOR regression was found
func (c Comparison) Failed() bool {
	for _, r := range c.Regressions {
		if r.Severity == SeverityCritical || r.Severity == SeverityMajor {
			return true
		}
	}
	return false
}

// CaseOutcome is the per-case evaluation verdict
type CaseOutcome struct {
	ID          string           `json:"id"`
	Passed      bool             `json:"passed"`
	FieldPassed map[Field]bool   `json:"field_passed"`
	Result      ExtractionResult `json:"result"`
	DurationMs  float64          `json:"duration_ms"`
	Mismatches  []string         `json:"mismatches,omitempty"`
}
