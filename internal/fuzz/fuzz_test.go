package fuzz

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/storyintake/internal/dataset"
	"github.com/ppiankov/storyintake/internal/model"
)

func TestRand_ReferenceStream(t *testing.T) {
	tests := []struct {
		seed int64
		want []uint32
	}{
		{1234, []uint32{314799534, 3021131492, 3877737075, 4168477787}},
		{0, []uint32{1144304738, 1416247, 958946056, 627933444}},
		{42, []uint32{2581720956, 1925393290, 3661312704, 2876485805}},
	}

	for _, tt := range tests {
		r := NewRand(tt.seed)
		for i, want := range tt.want {
			if got := r.Uint32(); got != want {
				t.Errorf("seed %d, draw %d: expected %d, got %d", tt.seed, i, want, got)
			}
		}
	}
}

func TestRand_Float64(t *testing.T) {
	r := NewRand(0)
	if got := r.Float64(); got != 0.26642920868471265 {
		t.Errorf("Expected 0.26642920868471265, got %v", got)
	}

	r = NewRand(7)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
		if n := r.Intn(5); n < 0 || n >= 5 {
			t.Fatalf("Intn out of range: %d", n)
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	first := NewGenerator(1234).Generate(200)
	second := NewGenerator(1234).Generate(200)

	if len(first) != 200 {
		t.Fatalf("Expected 200 records, got %d", len(first))
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("records differ between runs (-first +second):\n%s", diff)
	}

	encode := func(records []model.DatasetRecord) string {
		g := NewGenerator(1234)
		meta := g.Meta("test", len(records))
		var buf bytes.Buffer
		if err := dataset.Write(&buf, &meta, records); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return buf.String()
	}
	if encode(first) != encode(second) {
		t.Error("Expected byte-identical JSONL")
	}

	if diff := cmp.Diff(Summarize(first), Summarize(second)); diff != "" {
		t.Errorf("stats differ (-first +second):\n%s", diff)
	}
}

func TestGenerate_PrefixStable(t *testing.T) {
	short := NewGenerator(1234).Generate(50)
	long := NewGenerator(1234).Generate(200)

	if diff := cmp.Diff(short, long[:50]); diff != "" {
		t.Errorf("first 50 records depend on count (-short +long):\n%s", diff)
	}
}

func TestGenerate_SeedsDiffer(t *testing.T) {
	a := NewGenerator(1234).Generate(20)
	b := NewGenerator(4321).Generate(20)

	if cmp.Equal(a, b) {
		t.Error("Expected different seeds to produce different records")
	}
}

func TestGenerate_LabelConfidence(t *testing.T) {
	penalties := make(map[string]float64)
	for _, m := range Mutations() {
		penalties[m.ID] = m.Penalty
	}

	for _, rec := range NewGenerator(1234).Generate(200) {
		if rec.LabelConfidence == nil {
			t.Fatalf("%s: missing label confidence", rec.ID)
		}
		got := *rec.LabelConfidence
		sum := 0.0
		for _, m := range rec.Mutations {
			sum += penalties[m]
		}
		if want := LabelConfidence(sum); got != want {
			t.Errorf("%s: expected %.2f for %v, got %.2f", rec.ID, want, rec.Mutations, got)
		}
		if got > 1 || got < 0.6 {
			t.Errorf("%s: label confidence %.2f out of range", rec.ID, got)
		}
		if len(rec.Mutations) > 0 && got >= 1 {
			t.Errorf("%s: mutated case kept full confidence", rec.ID)
		}
	}
}

func TestLabelConfidence_Monotonic(t *testing.T) {
	prev := LabelConfidence(0)
	if prev != 1.0 {
		t.Fatalf("Expected base 1.0, got %.2f", prev)
	}

	sum := 0.0
	for _, m := range Mutations() {
		sum += m.Penalty
		got := LabelConfidence(sum)
		if got >= prev {
			t.Errorf("Adding %s: expected below %.2f, got %.2f", m.ID, prev, got)
		}
		prev = got
	}

	if got := LabelConfidence(0.75); got != 0.6 {
		t.Errorf("Expected floor 0.60, got %.2f", got)
	}
}

func TestGenerate_Labels(t *testing.T) {
	templates := make(map[string]Template)
	for _, tmpl := range Templates() {
		templates[tmpl.ID] = tmpl
	}

	for _, rec := range NewGenerator(99).Generate(100) {
		tmpl, ok := templates[rec.SourceTemplateID]
		if !ok {
			t.Fatalf("%s: unknown template %s", rec.ID, rec.SourceTemplateID)
		}
		if rec.Expected.Category != tmpl.Category || rec.Expected.UrgencyLevel != tmpl.Urgency {
			t.Errorf("%s: labels do not match template %s", rec.ID, tmpl.ID)
		}
		if (rec.Expected.Name != nil) != tmpl.HasName() {
			t.Errorf("%s: name label presence mismatch", rec.ID)
		}
		if (rec.Expected.GoalAmount != nil) != tmpl.HasAmount() {
			t.Errorf("%s: amount label presence mismatch", rec.ID)
		}
		if strings.Contains(rec.TranscriptText, "{") {
			t.Errorf("%s: unfilled slot in %q", rec.ID, rec.TranscriptText)
		}
	}
}

func TestMutations(t *testing.T) {
	const text = "My name is John Smith. I need $1,200 for rent. My kids are scared."

	t.Run("filler adds one word", func(t *testing.T) {
		got := insertFiller(NewRand(1), text)
		if len(strings.Fields(got)) <= len(strings.Fields(text)) {
			t.Errorf("Expected a filler word, got %q", got)
		}
	})

	t.Run("clause reorder keeps sentences", func(t *testing.T) {
		got := reorderClauses(NewRand(1), text)
		if got == text {
			t.Errorf("Expected reordered text, got %q", got)
		}
		split := func(s string) []string {
			out := regexp.MustCompile(`[.!?]\s*`).Split(s, -1)
			sort.Strings(out)
			return out
		}
		if diff := cmp.Diff(split(text), split(got)); diff != "" {
			t.Errorf("sentences changed (-want +got):\n%s", diff)
		}
		if single := reorderClauses(NewRand(1), "just one sentence"); single != "just one sentence" {
			t.Errorf("Expected single sentence unchanged, got %q", single)
		}
	})

	t.Run("irrelevant number appended", func(t *testing.T) {
		got := appendIrrelevantNumber(NewRand(1), text)
		if !strings.HasPrefix(got, text+" ") {
			t.Errorf("Expected original text kept as prefix, got %q", got)
		}
	})

	t.Run("capitalization is uniform", func(t *testing.T) {
		got := varyCapitalization(NewRand(1), text)
		if got != strings.ToLower(text) && got != strings.ToUpper(text) {
			t.Errorf("Expected all-lower or all-upper text, got %q", got)
		}
	})

	t.Run("adversarial token injected", func(t *testing.T) {
		got := injectAdversarialToken(NewRand(1), text)
		found := false
		for _, tok := range adversarialTokens {
			if strings.Contains(got, tok) {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected an adversarial token, got %q", got)
		}
	})
}

func TestSummarize(t *testing.T) {
	records := NewGenerator(1234).Generate(200)
	stats := Summarize(records)

	if stats.Count != 200 {
		t.Errorf("Expected count 200, got %d", stats.Count)
	}
	total := 0
	for _, n := range stats.Difficulty {
		total += n
	}
	if total != 200 {
		t.Errorf("Expected difficulty counts to sum to 200, got %d", total)
	}
	if stats.MeanLabelConfidence > 1 || stats.MeanLabelConfidence < stats.MinLabelConfidence {
		t.Errorf("Inconsistent confidence stats: %+v", stats)
	}

	empty := Summarize(nil)
	if empty.Count != 0 || empty.MeanLabelConfidence != 0 {
		t.Errorf("Expected zero stats, got %+v", empty)
	}
}

func TestFormatDollars(t *testing.T) {
	tests := map[float64]string{350: "$350", 1200: "$1,200", 7250: "$7,250", 1000000: "$1,000,000"}
	for in, want := range tests {
		if got := formatDollars(in); got != want {
			t.Errorf("formatDollars(%v): expected %s, got %s", in, want, got)
		}
	}
}
