package extract

import (
	"testing"

	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

func TestAmountExtractor_Patterns(t *testing.T) {
	extractor := NewAmountExtractor(lib)

	tests := []struct {
		name       string
		text       string
		want       float64
		patternID  string
		confidence float64
	}{
		{"currency", "I need $1200 for rent", 1200, patterns.AmountCurrency, 0.95},
		{"currency with commas", "the bill is $12,450.50 total", 12450.50, patterns.AmountCurrency, 0.95},
		{"currency with k", "we are trying to raise $5k", 5000, patterns.AmountCurrency, 0.95},
		{"qualified", "I need about 1200 dollars to catch up", 1200, patterns.AmountQualified, 0.85},
		{"qualified unitless", "we need 800 to cover the deposit", 800, patterns.AmountQualified, 0.85},
		{"bare dollars", "it costs 450 bucks and I have nothing", 450, patterns.AmountQualified, 0.85},
		{"dollars", "the mechanic quoted 2,300 dollars", 2300, patterns.AmountDollars, 0.80},
		{"spelled hundred", "I need fifteen hundred for the deposit", 1500, patterns.AmountSpelled, 0.70},
		{"spelled thousand", "the surgery is eight thousand", 8000, patterns.AmountSpelled, 0.70},
		{"spelled hyphenated", "maybe twenty-five hundred would do it", 2500, patterns.AmountSpelled, 0.70},
		{"spelled compound", "two thousand five hundred for the car", 2500, patterns.AmountSpelled, 0.70},
		{"spelled couple", "a couple thousand would help", 2000, patterns.AmountSpelled, 0.70},
		{"spelled grand", "about three grand for the lawyer", 3000, patterns.AmountSpelled, 0.70},
		{"spelled tens after hundred", "I need two hundred fifty dollars", 250, patterns.AmountSpelled, 0.70},
		{"spelled full compound", "we owe three thousand two hundred fifty", 3250, patterns.AmountSpelled, 0.70},
		{"spelled with and", "five hundred and twenty-five for the bill", 525, patterns.AmountSpelled, 0.70},
		{"spelled units after thousand", "three thousand and fifty would cover it", 3050, patterns.AmountSpelled, 0.70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractor.Extract(Normalize(tt.text))
			if result.Value == nil {
				t.Fatalf("Expected %.2f, got nil", tt.want)
			}
			if *result.Value != tt.want {
				t.Errorf("Expected %.2f, got %.2f", tt.want, *result.Value)
			}
			if result.PatternID != tt.patternID {
				t.Errorf("Expected pattern %s, got %s", tt.patternID, result.PatternID)
			}
			if result.Confidence != tt.confidence {
				t.Errorf("Expected confidence %.2f, got %.2f", tt.confidence, result.Confidence)
			}
		})
	}
}

func TestAmountExtractor_PriorityOrder(t *testing.T) {
	extractor := NewAmountExtractor(lib)

	// The spelled amount comes first in the text but currency outranks it
	result := extractor.Extract("fifteen hundred was the old quote, now it is $1,800")
	if result.Value == nil || *result.Value != 1800 {
		t.Fatalf("Expected 1800 from currency pattern, got %+v", result)
	}
}

func TestAmountExtractor_GoalContextPreferred(t *testing.T) {
	extractor := NewAmountExtractor(lib)

	result := extractor.Extract("I already paid $300 last week but I still need $900 for the rest")
	if result.Value == nil || *result.Value != 900 {
		t.Fatalf("Expected 900, got %+v", result)
	}
	if result.SourceSpan.Offset != 47 {
		t.Errorf("Expected offset 47, got %d", result.SourceSpan.Offset)
	}
}

func TestAmountExtractor_NoAmount(t *testing.T) {
	extractor := NewAmountExtractor(lib)

	for _, text := range []string{
		"",
		"I have three kids and we are about to be evicted",
		"we need 3 days to move out",
		"I need 200 hours of community service done",
		"we have been waiting about 20 minutes",
		"$0 left in my account",
		"$5,000,000 would change everything",
	} {
		result := extractor.Extract(text)
		if result.Value != nil {
			t.Errorf("Expected no amount for %q, got %.2f (%s)", text, *result.Value, result.PatternID)
		}
		if result.Confidence != 0 {
			t.Errorf("Expected zero confidence for %q, got %.2f", text, result.Confidence)
		}
	}
}

func TestAmountTier(t *testing.T) {
	tests := map[string]model.Tier{
		"":                       model.TierNone,
		patterns.AmountCurrency:  model.TierPrimary,
		patterns.AmountQualified: model.TierPrimary,
		patterns.AmountDollars:   model.TierPrimary,
		patterns.AmountSpelled:   model.TierHeuristic,
	}
	for id, want := range tests {
		if got := AmountTier(id); got != want {
			t.Errorf("AmountTier(%q): expected %s, got %s", id, want, got)
		}
	}
}
