package score

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/storyintake/internal/model"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func candidate(v string) *model.Candidate {
	return &model.Candidate{Value: v, Confidence: 0.9, StrategyID: "direct-full-name"}
}

func TestJudge(t *testing.T) {
	rec := model.DatasetRecord{
		ID: "case-1",
		Expected: model.Expected{
			Name:         strPtr("John Smith"),
			Category:     model.CategoryHousing,
			UrgencyLevel: model.UrgencyLow,
			GoalAmount:   floatPtr(1200),
		},
	}

	t.Run("all fields match", func(t *testing.T) {
		result := model.ExtractionResult{
			Name:         candidate("john  smith"),
			Category:     model.CategoryHousing,
			UrgencyLevel: model.UrgencyLow,
			GoalAmount:   floatPtr(1200),
		}
		got := Judge(rec, result, 1.5)
		if !got.Passed {
			t.Errorf("Expected pass, got mismatches %v", got.Mismatches)
		}
		if got.DurationMs != 1.5 {
			t.Errorf("Expected duration 1.5, got %v", got.DurationMs)
		}
	})

	t.Run("each mismatch reported", func(t *testing.T) {
		result := model.ExtractionResult{
			Category:     model.CategoryFood,
			UrgencyLevel: model.UrgencyHigh,
			GoalAmount:   floatPtr(1250),
		}
		got := Judge(rec, result, 0)
		if got.Passed {
			t.Fatal("Expected failure")
		}
		want := map[model.Field]bool{
			model.FieldName:       false,
			model.FieldCategory:   false,
			model.FieldUrgency:    false,
			model.FieldGoalAmount: false,
		}
		if diff := cmp.Diff(want, got.FieldPassed); diff != "" {
			t.Errorf("field verdicts (-want +got):\n%s", diff)
		}
		if len(got.Mismatches) != 4 {
			t.Errorf("Expected 4 mismatches, got %v", got.Mismatches)
		}
		if got.Mismatches[0] != `name: expected "John Smith", got null` {
			t.Errorf("Unexpected mismatch text: %s", got.Mismatches[0])
		}
	})
}

func TestJudge_Expectations(t *testing.T) {
	tests := []struct {
		name     string
		expected model.Expected
		expect   *model.Expectations
		result   model.ExtractionResult
		field    model.Field
		want     bool
	}{
		{
			name:     "null name expected and none extracted",
			expected: model.Expected{},
			result:   model.ExtractionResult{},
			field:    model.FieldName,
			want:     true,
		},
		{
			name:     "name extracted where none expected",
			expected: model.Expected{},
			result:   model.ExtractionResult{Name: candidate("Friday")},
			field:    model.FieldName,
			want:     false,
		},
		{
			name:     "partial name without fuzzy matching",
			expected: model.Expected{Name: strPtr("Maria Garcia")},
			result:   model.ExtractionResult{Name: candidate("Maria")},
			field:    model.FieldName,
			want:     false,
		},
		{
			name:     "partial name with fuzzy matching",
			expected: model.Expected{Name: strPtr("Maria Garcia")},
			expect:   &model.Expectations{AllowFuzzyName: true},
			result:   model.ExtractionResult{Name: candidate("Maria")},
			field:    model.FieldName,
			want:     true,
		},
		{
			name:     "different name with fuzzy matching",
			expected: model.Expected{Name: strPtr("Maria Garcia")},
			expect:   &model.Expectations{AllowFuzzyName: true},
			result:   model.ExtractionResult{Name: candidate("Maria Lopez")},
			field:    model.FieldName,
			want:     false,
		},
		{
			name:     "amount within tolerance",
			expected: model.Expected{GoalAmount: floatPtr(1000)},
			expect:   &model.Expectations{AmountTolerance: 0.05},
			result:   model.ExtractionResult{GoalAmount: floatPtr(1040)},
			field:    model.FieldGoalAmount,
			want:     true,
		},
		{
			name:     "amount outside tolerance",
			expected: model.Expected{GoalAmount: floatPtr(1000)},
			expect:   &model.Expectations{AmountTolerance: 0.05},
			result:   model.ExtractionResult{GoalAmount: floatPtr(1060)},
			field:    model.FieldGoalAmount,
			want:     false,
		},
		{
			name:     "amount extracted where none expected",
			expected: model.Expected{},
			result:   model.ExtractionResult{GoalAmount: floatPtr(50)},
			field:    model.FieldGoalAmount,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.DatasetRecord{ID: "x", Expected: tt.expected, Expectations: tt.expect}
			got := Judge(rec, tt.result, 0)
			if got.FieldPassed[tt.field] != tt.want {
				t.Errorf("Expected %s passed=%v, got %v (%v)", tt.field, tt.want, got.FieldPassed[tt.field], got.Mismatches)
			}
		})
	}
}

func outcome(passed bool, fields map[model.Field]bool, tier model.Tier, confidence, ms float64) model.CaseOutcome {
	result := model.ExtractionResult{
		Confidence:   make(map[model.Field]float64),
		FallbackTier: make(map[model.Field]model.Tier),
	}
	for _, f := range model.Fields() {
		result.Confidence[f] = confidence
		result.FallbackTier[f] = model.TierPrimary
	}
	result.FallbackTier[model.FieldName] = tier
	return model.CaseOutcome{Passed: passed, FieldPassed: fields, Result: result, DurationMs: ms}
}

func TestSummarize(t *testing.T) {
	all := map[model.Field]bool{model.FieldName: true, model.FieldCategory: true, model.FieldUrgency: true, model.FieldGoalAmount: true}
	noName := map[model.Field]bool{model.FieldCategory: true, model.FieldUrgency: true, model.FieldGoalAmount: true}

	outcomes := []model.CaseOutcome{
		outcome(true, all, model.TierPrimary, 0.8, 1),
		outcome(true, all, model.TierPrimary, 0.6, 2),
		outcome(false, noName, model.TierFallback, 0.4, 3),
		outcome(true, all, model.TierHeuristic, 0.6, 2),
	}

	got := Summarize(outcomes)
	want := model.BaselineMetrics{
		Cases:    4,
		PassRate: 0.75,
		FieldAccuracy: map[model.Field]float64{
			model.FieldName:       0.75,
			model.FieldCategory:   1,
			model.FieldUrgency:    1,
			model.FieldGoalAmount: 1,
		},
		AvgConfidence:     0.6,
		FallbackUsageRate: 0.25,
		AvgExecutionMs:    2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}

	if failed := Failures(outcomes); len(failed) != 1 {
		t.Errorf("Expected 1 failure, got %d", len(failed))
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got.Cases != 0 || got.PassRate != 0 {
		t.Errorf("Expected zero metrics, got %+v", got)
	}
	if len(got.FieldAccuracy) != 4 {
		t.Errorf("Expected every field keyed, got %v", got.FieldAccuracy)
	}
}

func baseline() model.BaselineMetrics {
	return model.BaselineMetrics{
		RunID:    "base",
		PassRate: 0.95,
		FieldAccuracy: map[model.Field]float64{
			model.FieldName:       0.95,
			model.FieldCategory:   0.98,
			model.FieldUrgency:    0.90,
			model.FieldGoalAmount: 0.97,
		},
		AvgConfidence:     0.80,
		FallbackUsageRate: 0.01,
		AvgExecutionMs:    0.5,
	}
}

func TestCompare_NoRegression(t *testing.T) {
	c := NewComparator(model.DefaultConfig().Eval)

	got := c.Compare(baseline(), baseline())
	if len(got.Regressions) != 0 {
		t.Errorf("Expected no regressions, got %+v", got.Regressions)
	}
	if got.Failed() {
		t.Error("Expected comparison to pass")
	}
}

func TestCompare_Severity(t *testing.T) {
	c := NewComparator(model.DefaultConfig().Eval)

	tests := []struct {
		name   string
		mutate func(m *model.BaselineMetrics)
		metric string
		want   model.RegressionSeverity
	}{
		{"pass rate drop 10 points", func(m *model.BaselineMetrics) { m.PassRate = 0.85 }, "pass_rate", model.SeverityCritical},
		{"pass rate drop 5 points", func(m *model.BaselineMetrics) { m.PassRate = 0.90 }, "pass_rate", model.SeverityMajor},
		{"pass rate drop 2 points", func(m *model.BaselineMetrics) { m.PassRate = 0.93 }, "pass_rate", model.SeverityMinor},
		{"field below floor", func(m *model.BaselineMetrics) {
			m.FieldAccuracy = map[model.Field]float64{model.FieldName: 0.95, model.FieldCategory: 0.97, model.FieldUrgency: 0.74, model.FieldGoalAmount: 0.97}
		}, "field_accuracy.urgencyLevel", model.SeverityCritical},
		{"major drop below floor", func(m *model.BaselineMetrics) {
			m.FieldAccuracy = map[model.Field]float64{model.FieldName: 0.95, model.FieldCategory: 0.89, model.FieldUrgency: 0.90, model.FieldGoalAmount: 0.97}
		}, "field_accuracy.category", model.SeverityMajor},
		{"confidence drop", func(m *model.BaselineMetrics) { m.AvgConfidence = 0.70 }, "avg_confidence", model.SeverityMajor},
		{"small confidence drop", func(m *model.BaselineMetrics) { m.AvgConfidence = 0.76 }, "avg_confidence", model.SeverityMinor},
		{"fallback rise", func(m *model.BaselineMetrics) { m.FallbackUsageRate = 0.15 }, "fallback_usage_rate", model.SeverityMajor},
		{"slower", func(m *model.BaselineMetrics) { m.AvgExecutionMs = 1.6 }, "avg_execution_ms", model.SeverityMinor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := baseline()
			tt.mutate(&current)
			got := c.Compare(baseline(), current)

			var found *model.Regression
			for i := range got.Regressions {
				if got.Regressions[i].Metric == tt.metric {
					found = &got.Regressions[i]
				}
			}
			if found == nil {
				t.Fatalf("Expected a %s regression, got %+v", tt.metric, got.Regressions)
			}
			if found.Severity != tt.want {
				t.Errorf("Expected %s, got %s (%s)", tt.want, found.Severity, found.Description)
			}
		})
	}
}

func TestCompare_FloorRaisesSeverity(t *testing.T) {
	c := NewComparator(model.EvalConfig{PassRateFloor: 0.85})

	base := baseline()
	base.PassRate = 0.855
	current := baseline()
	current.PassRate = 0.845

	got := c.Compare(base, current)
	if len(got.Regressions) != 1 {
		t.Fatalf("Expected one regression, got %+v", got.Regressions)
	}
	if got.Regressions[0].Severity != model.SeverityMajor {
		t.Errorf("Expected MAJOR for falling below the floor, got %s", got.Regressions[0].Severity)
	}
	if !got.Failed() {
		t.Error("Expected comparison to fail")
	}
}

func TestCompare_FloorKeysIgnoreCase(t *testing.T) {
	c := NewComparator(model.EvalConfig{FieldFloors: map[string]float64{"urgencylevel": 0.75}})

	base := baseline()
	base.FieldAccuracy[model.FieldUrgency] = 0.76
	current := baseline()
	current.FieldAccuracy[model.FieldUrgency] = 0.74

	got := c.Compare(base, current)
	if len(got.Regressions) != 1 {
		t.Fatalf("Expected one regression, got %+v", got.Regressions)
	}
	if got.Regressions[0].Severity != model.SeverityMajor {
		t.Errorf("Expected MAJOR for falling below the lowercased floor, got %s", got.Regressions[0].Severity)
	}
}

func TestBaseline_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	want := baseline()

	if err := WriteBaseline(path, want); err != nil {
		t.Fatalf("WriteBaseline failed: %v", err)
	}
	got, err := ReadBaseline(path)
	if err != nil {
		t.Fatalf("ReadBaseline failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("baseline mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte(`{"run_id":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBaseline(path); err == nil {
		t.Error("Expected error for baseline without field_accuracy")
	}
}

func TestCompare_MinorDoesNotFail(t *testing.T) {
	c := NewComparator(model.DefaultConfig().Eval)
	current := baseline()
	current.AvgConfidence = 0.76

	got := c.Compare(baseline(), current)
	if got.Failed() {
		t.Errorf("Expected MINOR-only comparison to pass, got %+v", got.Regressions)
	}
}

func TestReport_Markdown(t *testing.T) {
	c := NewComparator(model.DefaultConfig().Eval)
	current := baseline()
	current.RunID = "run-2"
	current.PassRate = 0.80
	cmpResult := c.Compare(baseline(), current)

	outcomes := []model.CaseOutcome{
		{ID: "golden-007", Passed: false, Mismatches: []string{"category: expected FOOD, got OTHER"}},
		{ID: "golden-008", Passed: true},
	}
	report := NewReport(current, &cmpResult, outcomes)
	md := report.Markdown()

	for _, want := range []string{
		"- **Run:** `run-2`",
		"| Pass rate | 80.0% |",
		"🔴 CRITICAL | pass_rate",
		"## Failed Cases (1)",
		"`golden-007`: category: expected FOOD, got OTHER",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, md)
		}
	}
	if !report.Failed() {
		t.Error("Expected report to fail on a CRITICAL regression")
	}
}
