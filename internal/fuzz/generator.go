package fuzz

import (
	"fmt"
	"math"
	"sort"

	"github.com/ppiankov/storyintake/internal/model"
)

const (
	// GeneratorName is recorded in the dataset metadata line
	GeneratorName = "storyintake-fuzz"

	baseLabelConfidence  = 1.0
	labelConfidenceFloor = 0.60
)

// Generator produces labeled transcript variations from a single seeded
// stream. Draw order is fixed, so records depend only on (seed, index).
type Generator struct {
	seed      int64
	rng       *Rand
	templates []Template
	mutations []Mutation
}

// NewGenerator creates a generator over the built-in templates
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:      seed,
		rng:       NewRand(seed),
		templates: Templates(),
		mutations: Mutations(),
	}
}

// Generate emits count records in stream order
func (g *Generator) Generate(count int) []model.DatasetRecord {
	records := make([]model.DatasetRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.next(i))
	}
	return records
}

// Meta returns the dataset metadata line for a run of count records
func (g *Generator) Meta(version string, count int) model.DatasetMeta {
	seed := g.seed
	return model.DatasetMeta{
		Meta:      true,
		Generator: GeneratorName,
		Version:   version,
		Seed:      &seed,
		Count:     count,
	}
}

func (g *Generator) next(i int) model.DatasetRecord {
	tmpl := g.templates[g.rng.Intn(len(g.templates))]
	name := fuzzNames[g.rng.Intn(len(fuzzNames))]
	amount := fuzzAmounts[g.rng.Intn(len(fuzzAmounts))]

	text := tmpl.Fill(name, amount)
	applied := []string{}
	penalty := 0.0
	for _, m := range g.mutations {
		if !g.rng.Chance(m.Probability) {
			continue
		}
		text = m.Apply(g.rng, text)
		applied = append(applied, m.ID)
		penalty += m.Penalty
	}

	expected := model.Expected{
		Category:     tmpl.Category,
		UrgencyLevel: tmpl.Urgency,
	}
	if tmpl.HasName() {
		n := name
		expected.Name = &n
	}
	if tmpl.HasAmount() {
		a := amount
		expected.GoalAmount = &a
	}

	confidence := LabelConfidence(penalty)
	rec := model.DatasetRecord{
		ID:               fmt.Sprintf("fuzz-%05d", i+1),
		Difficulty:       difficulty(tmpl.Difficulty, applied),
		SourceTemplateID: tmpl.ID,
		TranscriptText:   text,
		Expected:         expected,
		LabelConfidence:  &confidence,
		Mutations:        applied,
	}
	if contains(applied, MutationCapitalization) {
		rec.Expectations = &model.Expectations{AllowFuzzyName: true}
	}
	return rec
}

// LabelConfidence is the base confidence minus the summed mutation
// penalties, floored and rounded to two decimals
func LabelConfidence(penalty float64) float64 {
	c := math.Max(baseLabelConfidence-penalty, labelConfidenceFloor)
	return math.Round(c*100) / 100
}

func difficulty(base string, applied []string) string {
	switch {
	case contains(applied, MutationAdversarial):
		return model.DifficultyAdversarial
	case len(applied) >= 3:
		return model.DifficultyHard
	case len(applied) > 0 && base == model.DifficultyEasy:
		return model.DifficultyMedium
	}
	return base
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}

// Stats aggregates a generated dataset
type Stats struct {
	Count               int            `json:"count"`
	MeanLabelConfidence float64        `json:"mean_label_confidence"`
	MinLabelConfidence  float64        `json:"min_label_confidence"`
	Mutations           map[string]int `json:"mutations"`
	Difficulty          map[string]int `json:"difficulty"`
	Templates           map[string]int `json:"templates"`
}

// Summarize computes Stats over records
func Summarize(records []model.DatasetRecord) Stats {
	stats := Stats{
		Count:      len(records),
		Mutations:  make(map[string]int),
		Difficulty: make(map[string]int),
		Templates:  make(map[string]int),
	}
	if len(records) == 0 {
		return stats
	}

	sum := 0.0
	stats.MinLabelConfidence = baseLabelConfidence
	for _, rec := range records {
		c := baseLabelConfidence
		if rec.LabelConfidence != nil {
			c = *rec.LabelConfidence
		}
		sum += c
		stats.MinLabelConfidence = math.Min(stats.MinLabelConfidence, c)
		for _, m := range rec.Mutations {
			stats.Mutations[m]++
		}
		stats.Difficulty[rec.Difficulty]++
		stats.Templates[rec.SourceTemplateID]++
	}
	stats.MeanLabelConfidence = math.Round(sum/float64(len(records))*10000) / 10000
	return stats
}

// SortedKeys returns the keys of a count map in sorted order
func SortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
