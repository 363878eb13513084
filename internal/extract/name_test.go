package extract

import (
	"testing"

	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

var lib = patterns.New()

func TestNameExtractor_Strategies(t *testing.T) {
	extractor := NewNameExtractor(lib)

	tests := []struct {
		name       string
		text       string
		want       string
		strategy   string
		confidence float64
	}{
		{"full name", "My name is John Smith and I need $1200 for rent", "John Smith", patterns.StrategyDirectFullName, 0.95},
		{"single name", "Hi, my name is Keisha and I lost my job", "Keisha", patterns.StrategyDirectName, 0.90},
		{"lowercase transcript", "my name is john and i lost my job", "John", patterns.StrategyDirectName, 0.90},
		{"self identification", "This is Maria Garcia. I need $3500 for surgery tomorrow", "Maria Garcia", patterns.StrategySelfID, 0.80},
		{"honorific stripped", "Good morning, this is Dr. Patricia Johnson calling about wedding expenses", "Patricia Johnson", patterns.StrategyTitle, 0.85},
		{"third person", "I am writing for my neighbor, her name is Rosa Delgado", "Rosa Delgado", patterns.StrategyThirdPerson, 0.72},
		{"stammered", "so my name is... uh, it's Carlos Mendez and we need help", "Carlos Mendez", patterns.StrategyFragment, 0.72},
		{"context filler", "Well, Tom here, and the transmission went out", "Tom", patterns.StrategyContextFiller, 0.70},
		{"possessive", "This is about Ana's family and the rent", "Ana", patterns.StrategyPossessive, 0.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractor.Extract(Normalize(tt.text))
			if result.Primary == nil {
				t.Fatalf("Expected a primary candidate, got none (reasoning: %v)", result.Reasoning)
			}
			if result.Primary.Value != tt.want {
				t.Errorf("Expected name %q, got %q", tt.want, result.Primary.Value)
			}
			if result.Primary.StrategyID != tt.strategy {
				t.Errorf("Expected strategy %s, got %s", tt.strategy, result.Primary.StrategyID)
			}
			if result.Confidence != tt.confidence {
				t.Errorf("Expected confidence %.2f, got %.2f", tt.confidence, result.Confidence)
			}
		})
	}
}

func TestNameExtractor_ProperNounHeuristic(t *testing.T) {
	extractor := NewNameExtractor(lib)

	result := extractor.Extract("We talked to Denise Walker yesterday about the rent")
	if result.Primary == nil {
		t.Fatal("Expected a proper-noun candidate")
	}
	if result.Primary.Value != "Denise Walker" {
		t.Errorf("Expected 'Denise Walker', got %q", result.Primary.Value)
	}
	if result.Primary.StrategyID != patterns.StrategyProperNoun {
		t.Errorf("Expected proper-noun strategy, got %s", result.Primary.StrategyID)
	}
	if result.Confidence != 0.65 {
		t.Errorf("Expected confidence 0.65, got %.2f", result.Confidence)
	}
}

func TestNameExtractor_ProperNounSplitsAtStopWords(t *testing.T) {
	extractor := NewNameExtractor(lib)

	result := extractor.Extract("Thank God Kevin Brown Monday Hospital")
	if result.Primary == nil {
		t.Fatal("Expected a candidate")
	}
	if result.Primary.Value != "Kevin Brown" {
		t.Errorf("Expected 'Kevin Brown', got %q", result.Primary.Value)
	}
	if result.Primary.SourceSpan.Offset != 10 || result.Primary.SourceSpan.Length != 11 {
		t.Errorf("Expected span {10 11}, got %+v", result.Primary.SourceSpan)
	}
}

func TestNameExtractor_NoName(t *testing.T) {
	extractor := NewNameExtractor(lib)

	for _, text := range []string{
		"",
		"   ",
		"i need help with rent because i lost my job",
		"My name is um",
		"I'm calling about the situation",
		"This is Urgent. I need $500 for rent",
		"Hi, I'm Scared and I don't know who to call",
	} {
		result := extractor.Extract(Normalize(text))
		if result.Primary != nil {
			t.Errorf("Expected no name for %q, got %q (%s)", text, result.Primary.Value, result.Primary.StrategyID)
		}
		if result.Confidence != 0 {
			t.Errorf("Expected zero confidence for %q, got %.2f", text, result.Confidence)
		}
		if result.Candidates == nil {
			t.Errorf("Expected empty candidate slice for %q, got nil", text)
		}
	}
}

func TestNameExtractor_Validation(t *testing.T) {
	extractor := NewNameExtractor(lib)

	tests := []struct {
		value string
		valid bool
	}{
		{"John", true},
		{"Mary-Kate O'Neil", true},
		{"J", false},
		{"John3", false},
		{"Situation", false},
		{"Bcdfg", false},
		{"Schmidt", false}, // Four consonants in a row
		{"Anne-Marie", true},
		{"Urgent", false},
		{"Pregnant", false},
	}

	for _, tt := range tests {
		if got := extractor.valid(tt.value); got != tt.valid {
			t.Errorf("valid(%q): expected %v, got %v", tt.value, tt.valid, got)
		}
	}
}

func TestNameExtractor_RankingTieBreaks(t *testing.T) {
	extractor := NewNameExtractor(lib)

	pool := []model.Candidate{
		{Value: "Later Name", Confidence: 0.80, StrategyID: patterns.StrategySelfID, SourceSpan: model.Span{Offset: 40}},
		{Value: "Early Name", Confidence: 0.795, StrategyID: patterns.StrategySelfID, SourceSpan: model.Span{Offset: 5}},
		{Value: "Strong Name", Confidence: 0.95, StrategyID: patterns.StrategyDirectFullName, SourceSpan: model.Span{Offset: 90}},
		{Value: "Same Spot", Confidence: 0.72, StrategyID: patterns.StrategyFragment, SourceSpan: model.Span{Offset: 60}},
		{Value: "Same Spot Two", Confidence: 0.72, StrategyID: patterns.StrategyThirdPerson, SourceSpan: model.Span{Offset: 60}},
	}

	ranked := extractor.rank(pool)
	want := []string{"Strong Name", "Early Name", "Later Name", "Same Spot Two", "Same Spot"}
	if len(ranked) != len(want) {
		t.Fatalf("Expected %d candidates, got %d", len(want), len(ranked))
	}
	for i, name := range want {
		if ranked[i].Value != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, ranked[i].Value)
		}
	}
}

func TestNameExtractor_DedupeKeepsBest(t *testing.T) {
	extractor := NewNameExtractor(lib)

	result := extractor.Extract("My name is John Smith. John Smith speaking again.")
	count := 0
	for _, c := range result.Candidates {
		if c.Value == "John Smith" {
			count++
			if c.StrategyID != patterns.StrategyDirectFullName {
				t.Errorf("Expected surviving duplicate to be direct-full-name, got %s", c.StrategyID)
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected one 'John Smith' candidate, got %d", count)
	}
}

func TestAlternatives(t *testing.T) {
	result := model.NameResult{}
	for i := 0; i < 8; i++ {
		result.Candidates = append(result.Candidates, model.Candidate{Value: string(rune('A' + i))})
	}

	alts := Alternatives(result)
	if len(alts) != 5 {
		t.Fatalf("Expected 5 alternatives, got %d", len(alts))
	}
	if alts[0].Value != "B" {
		t.Errorf("Expected first alternative 'B', got %q", alts[0].Value)
	}
	if got := Alternatives(model.NameResult{}); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("  I’m  José\n here ")
	want := "I'm José here"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
