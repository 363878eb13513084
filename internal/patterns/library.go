// Package patterns holds the versioned regular-expression tables used by the
// extraction engine. A Library is built once at process start and is read-only
// afterwards, so a single instance can be shared by concurrent callers.
package patterns

import (
	"regexp"

	"github.com/ppiankov/storyintake/internal/model"
)

// Version identifies the pattern snapshot; bump it whenever a table changes
// so cached results and stored baselines can be told apart.
const Version = "2026.10.1"

// Pattern is a compiled expression with an identifier and a weight.
// Weight means base confidence, bucket weight or multiplier factor depending
// on the table the pattern lives in.
type Pattern struct {
	ID     string
	Re     *regexp.Regexp
	Weight float64
}

// TemporalTable groups the expressions of one temporal bucket
type TemporalTable struct {
	Bucket   model.TemporalBucket
	Weight   float64
	Patterns []Pattern
}

// CrisisTable is one crisis domain: triggers plus domain-specific multipliers
type CrisisTable struct {
	Domain      model.CrisisDomain
	Base        float64
	Triggers    []Pattern
	Multipliers []Pattern // Weight is the multiplicative factor
}

// CategoryTable is the independent detector of one category
type CategoryTable struct {
	Category   model.Category
	Confidence float64
	Signals    []Pattern // ID is the signal tag
}

// CauseEffectRule records a directed edge when its phrasing matches
type CauseEffectRule struct {
	ID   string
	From model.Category
	To   model.Category
	Re   *regexp.Regexp
}

// Disambiguation holds the phrase sets used to pick one primary category
type Disambiguation struct {
	Violence         *regexp.Regexp
	Eviction         *regexp.Regexp
	MedicalEmergency *regexp.Regexp
	JobLoss          *regexp.Regexp
	HousingCost      *regexp.Regexp
	WorkWords        *regexp.Regexp
	RepairWords      *regexp.Regexp
}

// NamePattern is one ordered name expression; group 1 captures the name
type NamePattern struct {
	Strategy   string
	Re         *regexp.Regexp
	Confidence float64
}

// NameTables holds everything the name extractor needs
type NameTables struct {
	Direct       []NamePattern // Pattern-based strategies, in evaluation order
	Conversation []NamePattern // Greeting and hesitation markers
	ProperNoun   *regexp.Regexp
	Honorific    *regexp.Regexp
	Blacklist    map[string]bool
	StopWords    map[string]bool
	Connectives  map[string]bool
}

// AmountTables holds the amount expressions in priority order
type AmountTables struct {
	Currency    *regexp.Regexp
	Qualified   *regexp.Regexp
	Dollars     *regexp.Regexp
	Spelled     *regexp.Regexp
	SpelledLex  map[string]float64 // Number and scale words -> value
	GoalContext *regexp.Regexp
	CountWords  map[string]bool // Words that mark a bare number as not money
}

// Library is the complete, read-only pattern set
type Library struct {
	Version string

	Temporal  []TemporalTable // Highest weight first
	NoUrgency []Pattern

	Crisis            []CrisisTable
	SharedMultipliers []Pattern
	CrisisCap         float64

	Categories     []CategoryTable
	CauseEffect    []CauseEffectRule
	Disambiguation Disambiguation

	Names   NameTables
	Amounts AmountTables
}

// New compiles every table. The expressions are literals, so a compile
// failure is a programming error and panics at start-up.
func New() *Library {
	return &Library{
		Version:           Version,
		Temporal:          temporalTables(),
		NoUrgency:         noUrgencyPatterns(),
		Crisis:            crisisTables(),
		SharedMultipliers: sharedMultipliers(),
		CrisisCap:         0.95,
		Categories:        categoryTables(),
		CauseEffect:       causeEffectRules(),
		Disambiguation:    disambiguation(),
		Names:             nameTables(),
		Amounts:           amountTables(),
	}
}

// CategoryTable returns the detector table of c, or nil
func (l *Library) CategoryTable(c model.Category) *CategoryTable {
	for i := range l.Categories {
		if l.Categories[i].Category == c {
			return &l.Categories[i]
		}
	}
	return nil
}

func pat(id, expr string, weight float64) Pattern {
	return Pattern{ID: id, Re: regexp.MustCompile(expr), Weight: weight}
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
