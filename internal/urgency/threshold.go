package urgency

import (
	"fmt"

	"github.com/ppiankov/storyintake/internal/model"
)

// Thresholds are one category's cutoffs; a score at or above a cutoff
// reaches that level
type Thresholds struct {
	Medium   float64
	High     float64
	Critical float64
}

// Level maps a score onto LOW..CRITICAL
func (th Thresholds) Level(score float64) model.UrgencyLevel {
	switch {
	case score >= th.Critical:
		return model.UrgencyCritical
	case score >= th.High:
		return model.UrgencyHigh
	case score >= th.Medium:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}

func (th Thresholds) validate() error {
	if th.Medium < 0 || th.Critical > 1 || th.Medium > th.High || th.High > th.Critical {
		return fmt.Errorf("thresholds must satisfy 0 <= medium <= high <= critical <= 1, got %.2f/%.2f/%.2f",
			th.Medium, th.High, th.Critical)
	}
	return nil
}

// ThresholdTable holds per-category cutoffs. Categories without an entry use
// the default row.
type ThresholdTable struct {
	byCategory map[model.Category]Thresholds
	fallback   Thresholds
}

// DefaultThresholds is the tuned per-category snapshot. Safety escalates
// earliest; employment and transportation latest.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		byCategory: map[model.Category]Thresholds{
			model.CategorySafety:         {Medium: 0.25, High: 0.45, Critical: 0.65},
			model.CategoryHealthcare:     {Medium: 0.30, High: 0.50, Critical: 0.75},
			model.CategoryHousing:        {Medium: 0.30, High: 0.55, Critical: 0.80},
			model.CategoryEmployment:     {Medium: 0.35, High: 0.60, Critical: 0.85},
			model.CategoryTransportation: {Medium: 0.35, High: 0.60, Critical: 0.85},
		},
		fallback: Thresholds{Medium: 0.30, High: 0.55, Critical: 0.80},
	}
}

// GlobalThresholds is a single table applied to every category
func GlobalThresholds(th Thresholds) ThresholdTable {
	return ThresholdTable{byCategory: map[model.Category]Thresholds{}, fallback: th}
}

// WithOverrides returns a copy with configured rows replacing defaults.
// Keys are category names; "default" replaces the fallback row.
func (t ThresholdTable) WithOverrides(overrides map[string]model.ThresholdConfig) (ThresholdTable, error) {
	out := ThresholdTable{
		byCategory: make(map[model.Category]Thresholds, len(t.byCategory)),
		fallback:   t.fallback,
	}
	for c, th := range t.byCategory {
		out.byCategory[c] = th
	}

	for key, cfg := range overrides {
		th := Thresholds{Medium: cfg.Medium, High: cfg.High, Critical: cfg.Critical}
		if err := th.validate(); err != nil {
			return t, fmt.Errorf("threshold override %q: %w", key, err)
		}
		if key == "default" {
			out.fallback = th
			continue
		}
		c, err := model.ParseCategory(key)
		if err != nil {
			return t, fmt.Errorf("threshold override: %w", err)
		}
		out.byCategory[c] = th
	}
	return out, nil
}

// For returns the cutoffs used for a category
func (t ThresholdTable) For(c model.Category) Thresholds {
	if th, ok := t.byCategory[c]; ok {
		return th
	}
	return t.fallback
}

// Level converts a final score to a level. An explicit no-urgency reason
// forces LOW whatever the score.
func (t ThresholdTable) Level(score float64, c model.Category, reasons []string) model.UrgencyLevel {
	for _, r := range reasons {
		if r == model.ReasonNoUrgency {
			return model.UrgencyLow
		}
	}
	return t.For(c).Level(score)
}
