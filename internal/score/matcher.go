// Package score judges extraction results against labeled cases, summarizes
// runs into baseline metrics, and diffs a run against a stored baseline.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/storyintake/internal/model"
)

const exactAmountTolerance = 0.005

// Judge compares one result with its labels
func Judge(rec model.DatasetRecord, result model.ExtractionResult, durationMs float64) model.CaseOutcome {
	outcome := model.CaseOutcome{
		ID:          rec.ID,
		Passed:      true,
		FieldPassed: make(map[model.Field]bool, 4),
		Result:      result,
		DurationMs:  durationMs,
	}

	expectations := model.Expectations{}
	if rec.Expectations != nil {
		expectations = *rec.Expectations
	}

	check := func(field model.Field, ok bool, want, got string) {
		outcome.FieldPassed[field] = ok
		if !ok {
			outcome.Passed = false
			outcome.Mismatches = append(outcome.Mismatches, fmt.Sprintf("%s: expected %s, got %s", field, want, got))
		}
	}

	check(model.FieldName,
		nameMatches(rec.Expected.Name, result.Name, expectations.AllowFuzzyName),
		describeName(rec.Expected.Name), describeCandidate(result.Name))
	check(model.FieldCategory,
		rec.Expected.Category == result.Category,
		rec.Expected.Category.String(), result.Category.String())
	check(model.FieldUrgency,
		rec.Expected.UrgencyLevel == result.UrgencyLevel,
		rec.Expected.UrgencyLevel.String(), result.UrgencyLevel.String())
	check(model.FieldGoalAmount,
		amountMatches(rec.Expected.GoalAmount, result.GoalAmount, expectations.AmountTolerance),
		describeAmount(rec.Expected.GoalAmount), describeAmount(result.GoalAmount))

	return outcome
}

func nameMatches(want *string, got *model.Candidate, fuzzy bool) bool {
	if want == nil || got == nil {
		return want == nil && got == nil
	}
	w, g := normalizeName(*want), normalizeName(got.Value)
	if w == g {
		return true
	}
	return fuzzy && tokenSubset(w, g)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// tokenSubset reports whether every token of the shorter name appears in
// the longer one ("maria" vs "maria garcia")
func tokenSubset(a, b string) bool {
	short, long := strings.Fields(a), strings.Fields(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return false
	}
	have := make(map[string]bool, len(long))
	for _, tok := range long {
		have[tok] = true
	}
	for _, tok := range short {
		if !have[tok] {
			return false
		}
	}
	return true
}

func amountMatches(want, got *float64, tolerance float64) bool {
	if want == nil || got == nil {
		return want == nil && got == nil
	}
	allowed := math.Max(*want*tolerance, exactAmountTolerance)
	return math.Abs(*got-*want) <= allowed
}

func describeName(s *string) string {
	if s == nil {
		return "null"
	}
	return fmt.Sprintf("%q", *s)
}

func describeCandidate(c *model.Candidate) string {
	if c == nil {
		return "null"
	}
	return fmt.Sprintf("%q", c.Value)
}

func describeAmount(v *float64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%.2f", *v)
}
