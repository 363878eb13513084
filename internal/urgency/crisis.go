package urgency

import (
	"math"

	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

// CrisisLayer scores domain-specific crisis severity
type CrisisLayer struct {
	tables  []patterns.CrisisTable
	shared  []patterns.Pattern
	ceiling float64
}

// NewCrisisLayer creates a crisis layer over the library's crisis tables
func NewCrisisLayer(lib *patterns.Library) *CrisisLayer {
	return &CrisisLayer{tables: lib.Crisis, shared: lib.SharedMultipliers, ceiling: lib.CrisisCap}
}

// Score evaluates every domain independently. A domain counts only when one
// of its triggers matches; its base weight is then multiplied by each
// matching shared and domain-specific multiplier and capped. The highest
// domain wins, ties in table order.
func (l *CrisisLayer) Score(text string) model.CrisisSignal {
	signal := model.CrisisSignal{Matched: []model.DomainScore{}}

	var shared []patterns.Pattern
	for _, m := range l.shared {
		if m.Re.MatchString(text) {
			shared = append(shared, m)
		}
	}

	for _, table := range l.tables {
		var triggers []string
		for _, p := range table.Triggers {
			if p.Re.MatchString(text) {
				triggers = append(triggers, p.ID)
			}
		}
		if len(triggers) == 0 {
			continue
		}

		ds := model.DomainScore{
			Domain:      table.Domain,
			Base:        table.Base,
			Score:       table.Base,
			Triggers:    triggers,
			Multipliers: []string{},
		}
		for _, m := range shared {
			ds.Score *= m.Weight
			ds.Multipliers = append(ds.Multipliers, m.ID)
		}
		for _, m := range table.Multipliers {
			if m.Re.MatchString(text) {
				ds.Score *= m.Weight
				ds.Multipliers = append(ds.Multipliers, m.ID)
			}
		}
		ds.Score = round4(math.Min(ds.Score, l.ceiling))

		signal.Matched = append(signal.Matched, ds)
		if ds.Score > signal.Score {
			signal.Score = ds.Score
			signal.Domain = ds.Domain
		}
	}

	return signal
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
