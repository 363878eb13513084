package urgency

import (
	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

const noUrgencyWeight = 0.1

// TemporalLayer scores how time-sensitive a transcript is, independent of
// what the need is about
type TemporalLayer struct {
	tables    []patterns.TemporalTable
	noUrgency []patterns.Pattern
}

// NewTemporalLayer creates a temporal layer over the library's temporal tables
func NewTemporalLayer(lib *patterns.Library) *TemporalLayer {
	return &TemporalLayer{tables: lib.Temporal, noUrgency: lib.NoUrgency}
}

// Score returns the maximum bucket weight among all matching patterns.
// Explicit no-urgency markers are tracked separately so the combination
// rules can cap the final score.
func (l *TemporalLayer) Score(text string) model.TemporalSignal {
	signal := model.TemporalSignal{
		Bucket:           model.BucketNone,
		Matches:          []string{},
		NoUrgencyMarkers: []string{},
	}

	for _, table := range l.tables {
		for _, p := range table.Patterns {
			if !p.Re.MatchString(text) {
				continue
			}
			signal.Matches = append(signal.Matches, p.ID)
			if table.Weight > signal.Score {
				signal.Score = table.Weight
				signal.Bucket = table.Bucket
			}
		}
	}

	for _, p := range l.noUrgency {
		if p.Re.MatchString(text) {
			signal.NoUrgencyMarkers = append(signal.NoUrgencyMarkers, p.ID)
		}
	}
	signal.NoUrgency = len(signal.NoUrgencyMarkers) > 0
	if signal.NoUrgency && signal.Score < noUrgencyWeight {
		signal.Score = noUrgencyWeight
		signal.Bucket = model.BucketNoUrgency
	}

	return signal
}
