package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

const (
	maxAmount      = 1_000_000
	minBareAmount  = 50
	goalLookbehind = 40
)

// AmountExtractor finds the monetary goal in a transcript
type AmountExtractor struct {
	tables patterns.AmountTables
	rules  []amountRule
}

type amountRule struct {
	id         string
	re         *regexp.Regexp
	confidence float64
	parse      func(text string, m []int) (float64, bool)
}

// NewAmountExtractor creates an amount extractor over the library's amount tables
func NewAmountExtractor(lib *patterns.Library) *AmountExtractor {
	e := &AmountExtractor{tables: lib.Amounts}
	e.rules = []amountRule{
		{patterns.AmountCurrency, e.tables.Currency, 0.95, e.parseScaled},
		{patterns.AmountQualified, e.tables.Qualified, 0.85, e.parseQualified},
		{patterns.AmountDollars, e.tables.Dollars, 0.80, e.parseScaled},
		{patterns.AmountSpelled, e.tables.Spelled, 0.70, e.parseSpelled},
	}
	return e
}

// Extract returns the first amount found in pattern priority order. Within
// the winning pattern a match preceded by goal phrasing beats an earlier one.
func (e *AmountExtractor) Extract(text string) model.AmountResult {
	for _, rule := range e.rules {
		first := -1
		var firstValue float64
		var firstSpan model.Span

		for _, m := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			value, ok := rule.parse(text, m)
			if !ok || value <= 0 || value > maxAmount {
				continue
			}
			span := model.Span{Offset: m[0], Length: m[1] - m[0]}
			if e.goalContext(text, m[0]) {
				return amountResult(value, rule, span)
			}
			if first < 0 {
				first, firstValue, firstSpan = m[0], value, span
			}
		}
		if first >= 0 {
			return amountResult(firstValue, rule, firstSpan)
		}
	}
	return model.AmountResult{}
}

// AmountTier classifies an amount pattern as primary or heuristic
func AmountTier(patternID string) model.Tier {
	switch patternID {
	case "":
		return model.TierNone
	case patterns.AmountSpelled:
		return model.TierHeuristic
	}
	return model.TierPrimary
}

func amountResult(value float64, rule amountRule, span model.Span) model.AmountResult {
	v := value
	return model.AmountResult{
		Value:      &v,
		Confidence: rule.confidence,
		PatternID:  rule.id,
		SourceSpan: span,
	}
}

func (e *AmountExtractor) goalContext(text string, start int) bool {
	from := start - goalLookbehind
	if from < 0 {
		from = 0
	}
	return e.tables.GoalContext.MatchString(text[from:start])
}

// parseScaled reads group 1 as a numeral and group 2 as an optional scale
func (e *AmountExtractor) parseScaled(text string, m []int) (float64, bool) {
	value, ok := parseNumeral(group(text, m, 1))
	if !ok {
		return 0, false
	}
	return value * scale(group(text, m, 2)), true
}

// parseQualified rejects unitless numbers that look like counts or are too
// small to be a goal
func (e *AmountExtractor) parseQualified(text string, m []int) (float64, bool) {
	value, ok := parseNumeral(group(text, m, 1))
	if !ok {
		return 0, false
	}
	unit := strings.ToLower(group(text, m, 2))
	if unit == "" {
		next := strings.ToLower(group(text, m, 3))
		if value < minBareAmount || e.tables.CountWords[next] {
			return 0, false
		}
		return value, true
	}
	return value * scale(unit), true
}

// parseSpelled evaluates a spelled amount word by word
func (e *AmountExtractor) parseSpelled(text string, m []int) (float64, bool) {
	phrase := strings.ToLower(strings.ReplaceAll(text[m[0]:m[1]], "-", " "))
	total, current := 0.0, 0.0
	for _, w := range strings.Fields(phrase) {
		switch w {
		case "and", "of":
			continue
		case "hundred":
			if current == 0 {
				current = 1
			}
			current *= 100
		case "thousand", "grand":
			if current == 0 {
				current = 1
			}
			total += current * 1000
			current = 0
		case "couple", "few":
			current = e.tables.SpelledLex[w]
		default:
			v, ok := e.tables.SpelledLex[w]
			if !ok {
				return 0, false
			}
			current += v
		}
	}
	return total + current, true
}

func group(text string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}

func parseNumeral(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func scale(unit string) float64 {
	switch strings.ToLower(unit) {
	case "k", "thousand", "grand":
		return 1000
	}
	return 1
}
