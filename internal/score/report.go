package score

import (
	"fmt"
	"strings"

	"github.com/ppiankov/storyintake/internal/model"
)

const maxReportedFailures = 20

// Report is the full result of one evaluation run
type Report struct {
	Metrics    model.BaselineMetrics `json:"metrics"`
	Comparison *model.Comparison     `json:"comparison,omitempty"`
	Failures   []model.CaseOutcome   `json:"failures"`
}

// NewReport assembles a report; comparison may be nil when no baseline was given
func NewReport(metrics model.BaselineMetrics, comparison *model.Comparison, outcomes []model.CaseOutcome) Report {
	failures := Failures(outcomes)
	if failures == nil {
		failures = []model.CaseOutcome{}
	}
	return Report{Metrics: metrics, Comparison: comparison, Failures: failures}
}

// Failed reports whether the run should fail the build
func (r Report) Failed() bool {
	return r.Comparison != nil && r.Comparison.Failed()
}

// Markdown renders the report
func (r Report) Markdown() string {
	var b strings.Builder
	m := r.Metrics

	b.WriteString("# Extraction Evaluation\n\n")
	fmt.Fprintf(&b, "- **Run:** `%s`\n", m.RunID)
	if m.Dataset != "" {
		fmt.Fprintf(&b, "- **Dataset:** `%s`\n", m.Dataset)
	}
	fmt.Fprintf(&b, "- **Strategy:** `%s` · **Patterns:** `%s`\n", m.Strategy, m.PatternVersion)
	fmt.Fprintf(&b, "- **Cases:** %d\n\n", m.Cases)

	b.WriteString("## Metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Pass rate | %.1f%% |\n", m.PassRate*100)
	for _, f := range model.Fields() {
		fmt.Fprintf(&b, "| %s accuracy | %.1f%% |\n", f, m.FieldAccuracy[f]*100)
	}
	fmt.Fprintf(&b, "| Avg confidence | %.3f |\n", m.AvgConfidence)
	fmt.Fprintf(&b, "| Fallback usage | %.1f%% |\n", m.FallbackUsageRate*100)
	fmt.Fprintf(&b, "| Avg execution | %.2f ms |\n\n", m.AvgExecutionMs)

	if r.Comparison != nil {
		b.WriteString("## Baseline Comparison\n\n")
		fmt.Fprintf(&b, "Baseline run `%s` (%s)\n\n", r.Comparison.Baseline.RunID, r.Comparison.Baseline.PatternVersion)
		if len(r.Comparison.Regressions) == 0 {
			b.WriteString("✓ No regressions\n\n")
		} else {
			b.WriteString("| Severity | Metric | Baseline | Current | Description |\n|---|---|---|---|---|\n")
			for _, reg := range r.Comparison.Regressions {
				fmt.Fprintf(&b, "| %s %s | %s | %.3f | %.3f | %s |\n",
					severityIcon(reg.Severity), reg.Severity, reg.Metric, reg.Baseline, reg.Current, reg.Description)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "## Failed Cases (%d)\n\n", len(r.Failures))
		for i, f := range r.Failures {
			if i == maxReportedFailures {
				fmt.Fprintf(&b, "- … and %d more\n", len(r.Failures)-maxReportedFailures)
				break
			}
			fmt.Fprintf(&b, "- `%s`: %s\n", f.ID, strings.Join(f.Mismatches, "; "))
		}
	}

	return b.String()
}

func severityIcon(s model.RegressionSeverity) string {
	switch s {
	case model.SeverityCritical:
		return "🔴"
	case model.SeverityMajor:
		return "🟠"
	default:
		return "🟡"
	}
}
