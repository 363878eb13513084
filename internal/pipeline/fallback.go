package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ppiankov/storyintake/internal/model"
)

const (
	fallbackNameConfidence     = 0.3
	fallbackCategoryConfidence = 0.2
	fallbackAmountConfidence   = 0.3
	fallbackUrgencyConfidence  = 0.1
	fallbackUrgencyScore       = 0.5
)

// Degraded pattern set; independent of the pattern library
var (
	fallbackNameRe   = regexp.MustCompile(`(?i:my name is)\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)`)
	fallbackAmountRe = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})+|\d+)`)

	fallbackCategories = []struct {
		category model.Category
		re       *regexp.Regexp
	}{
		{model.CategorySafety, regexp.MustCompile(`(?i)\b(?:abuse|violence|assault)`)},
		{model.CategoryHealthcare, regexp.MustCompile(`(?i)\b(?:hospital|surgery|medical)`)},
		{model.CategoryHousing, regexp.MustCompile(`(?i)\b(?:rent|evict|homeless)`)},
		{model.CategoryEmployment, regexp.MustCompile(`(?i)\b(?:job|laid off|fired)`)},
		{model.CategoryTransportation, regexp.MustCompile(`(?i)\b(?:car|truck|vehicle)\b`)},
		{model.CategoryFood, regexp.MustCompile(`(?i)\b(?:food|groceries)`)},
	}

	// First match wins; no match leaves MEDIUM
	fallbackUrgencies = []struct {
		level model.UrgencyLevel
		score float64
		re    *regexp.Regexp
	}{
		{model.UrgencyHigh, 0.7, regexp.MustCompile(`(?i)\b(?:today|tonight|right now|emergency|immediately)\b`)},
	}
)

// fallbackScorer re-scores fields after an engine fault. Every method
// returns a complete, well-typed value.
type fallbackScorer struct{}

func (fallbackScorer) name(text string) *model.Candidate {
	m := fallbackNameRe.FindStringSubmatchIndex(text)
	if m == nil {
		return nil
	}
	value := text[m[2]:m[3]]
	for _, r := range value {
		if !unicode.IsLetter(r) && r != ' ' {
			return nil
		}
	}
	return &model.Candidate{
		Value:      value,
		Confidence: fallbackNameConfidence,
		StrategyID: "fallback",
		SourceSpan: model.Span{Offset: m[2], Length: m[3] - m[2]},
	}
}

func (fallbackScorer) category(text string) model.CategoryAssessment {
	assessment := model.CategoryAssessment{
		Primary:    model.CategoryOther,
		AllIntents: []model.Intent{},
		Edges:      []model.CauseEffectEdge{},
		Confidence: fallbackCategoryConfidence,
		Rule:       model.ReasonDegradedMode,
		Reasoning:  []string{"category engine failed, degraded keyword match"},
	}
	for _, fc := range fallbackCategories {
		if fc.re.MatchString(text) {
			assessment.Primary = fc.category
			break
		}
	}
	return assessment
}

func (fallbackScorer) amount(text string) model.AmountResult {
	m := fallbackAmountRe.FindStringSubmatchIndex(text)
	if m == nil {
		return model.AmountResult{}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(text[m[2]:m[3]], ",", ""), 64)
	if err != nil || v <= 0 || v > maxGoalAmount {
		return model.AmountResult{}
	}
	return model.AmountResult{
		Value:      &v,
		Confidence: fallbackAmountConfidence,
		PatternID:  "fallback",
		SourceSpan: model.Span{Offset: m[0], Length: m[1] - m[0]},
	}
}

func (fallbackScorer) urgency(text string) model.UrgencyAssessment {
	assessment := model.UrgencyAssessment{
		Score:      fallbackUrgencyScore,
		Level:      model.UrgencyMedium,
		Confidence: fallbackUrgencyConfidence,
		Reasons:    []string{model.ReasonDegradedMode},
	}
	for _, fu := range fallbackUrgencies {
		if fu.re.MatchString(text) {
			assessment.Level = fu.level
			assessment.Score = fu.score
			break
		}
	}
	return assessment
}
