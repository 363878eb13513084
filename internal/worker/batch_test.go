package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/ppiankov/storyintake/internal/cache"
	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
	"github.com/ppiankov/storyintake/internal/pipeline"
)

// countingExtractor implements Extractor and records how often it runs
type countingExtractor struct {
	calls atomic.Int32
}

func (e *countingExtractor) Extract(transcript string, hints *model.ExtractionContext) model.ExtractionResult {
	e.calls.Add(1)
	time.Sleep(time.Millisecond)
	return model.ExtractionResult{
		Name:     &model.Candidate{Value: transcript},
		Category: model.CategoryOther,
		Strategy: e.Strategy(),
	}
}

func (e *countingExtractor) Strategy() string       { return "counting" }
func (e *countingExtractor) PatternVersion() string { return "test" }

func TestBatchProcessor_Process(t *testing.T) {
	defer goleak.VerifyNone(t)

	extractor := &countingExtractor{}
	processor := NewBatchProcessor(extractor, 3, nil)

	items := []Item{
		{ID: "a", Transcript: "first"},
		{ID: "b", Transcript: "second"},
		{ID: "c", Transcript: "third"},
		{ID: "d", Transcript: "fourth"},
	}
	results := processor.Process(context.Background(), items)

	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}
	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.ID, res.Error)
		}
		if res.Index != i || res.ID != items[i].ID {
			t.Errorf("expected result %d to be %s, got %d/%s", i, items[i].ID, res.Index, res.ID)
		}
		if res.Result.NameValue() != items[i].Transcript {
			t.Errorf("expected name %q, got %q", items[i].Transcript, res.Result.NameValue())
		}
	}
	if got := extractor.calls.Load(); got != 4 {
		t.Errorf("expected 4 extractions, got %d", got)
	}
}

func TestBatchProcessor_ManyItemsKeepOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	processor := NewBatchProcessor(&countingExtractor{}, 2, nil)

	items := make([]Item, 100)
	for i := range items {
		items[i] = Item{ID: string(rune('A' + i%26)), Transcript: string(rune('a' + i%26))}
	}
	results := processor.Process(context.Background(), items)

	if len(results) != 100 {
		t.Fatalf("expected 100 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Index != i {
			t.Fatalf("expected index %d, got %d", i, res.Index)
		}
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&countingExtractor{}, 2, nil)

	results := processor.Process(context.Background(), []Item{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	extractor := &countingExtractor{}
	processor := NewBatchProcessor(extractor, 2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := processor.Process(ctx, []Item{{ID: "a", Transcript: "x"}, {ID: "b", Transcript: "y"}})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if !errors.Is(res.Error, context.Canceled) {
			t.Errorf("expected context.Canceled for %s, got %v", res.ID, res.Error)
		}
	}
	if got := extractor.calls.Load(); got != 0 {
		t.Errorf("expected no extractions, got %d", got)
	}
}

func TestBatchProcessor_Cache(t *testing.T) {
	defer goleak.VerifyNone(t)

	extractor := &countingExtractor{}
	memory := cache.NewMemoryCache(time.Minute, 0)
	processor := NewBatchProcessor(extractor, 1, memory)

	items := []Item{{ID: "a", Transcript: "same story"}}

	first := processor.Process(context.Background(), items)
	second := processor.Process(context.Background(), items)

	if first[0].Cached {
		t.Error("expected first run to miss the cache")
	}
	if !second[0].Cached {
		t.Error("expected second run to hit the cache")
	}
	if got := extractor.calls.Load(); got != 1 {
		t.Errorf("expected 1 extraction, got %d", got)
	}
	if second[0].Result.NameValue() != "same story" {
		t.Errorf("expected cached name %q, got %q", "same story", second[0].Result.NameValue())
	}
	if memory.Len() != 1 {
		t.Errorf("expected 1 cache entry, got %d", memory.Len())
	}
}

func TestBatchProcessor_HintsBypassCache(t *testing.T) {
	defer goleak.VerifyNone(t)

	extractor := &countingExtractor{}
	memory := cache.NewMemoryCache(time.Minute, 0)
	processor := NewBatchProcessor(extractor, 1, memory)

	housing := model.CategoryHousing
	items := []Item{{ID: "a", Transcript: "story", Hints: &model.ExtractionContext{Category: &housing}}}

	processor.Process(context.Background(), items)
	processor.Process(context.Background(), items)

	if got := extractor.calls.Load(); got != 2 {
		t.Errorf("expected 2 extractions, got %d", got)
	}
	if memory.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", memory.Len())
	}
}

func TestBatchProcessor_Orchestrator(t *testing.T) {
	defer goleak.VerifyNone(t)

	o := pipeline.NewOrchestrator(patterns.New())
	processor := NewBatchProcessor(o, 4, cache.Nop{})

	items := []Item{
		{ID: "rent", Transcript: "My name is John Smith and I need $1,200 for rent."},
		{ID: "blank", Transcript: "   "},
	}
	results := processor.Process(context.Background(), items)

	direct := o.Extract(items[0].Transcript, nil)
	if results[0].Result.NameValue() != direct.NameValue() {
		t.Errorf("expected name %q, got %q", direct.NameValue(), results[0].Result.NameValue())
	}
	if results[0].Result.Category != direct.Category {
		t.Errorf("expected category %s, got %s", direct.Category, results[0].Result.Category)
	}
	if results[1].Result.Name != nil || results[1].Result.GoalAmount != nil {
		t.Error("expected null fields for blank transcript")
	}
	if results[1].Result.UrgencyLevel != model.UrgencyLow {
		t.Errorf("expected LOW urgency for blank transcript, got %s", results[1].Result.UrgencyLevel)
	}
}

func TestReadItemsFromFile_Text(t *testing.T) {
	content := "first story\n# comment\n\n   \n  second story  \n"
	path := filepath.Join(t.TempDir(), "stories.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := ReadItemsFromFile(path)
	if err != nil {
		t.Fatalf("ReadItemsFromFile failed: %v", err)
	}

	expected := []Item{
		{ID: "line-1", Transcript: "first story"},
		{ID: "line-5", Transcript: "second story"},
	}
	if len(items) != len(expected) {
		t.Fatalf("expected %d items, got %d", len(expected), len(items))
	}
	for i, item := range items {
		if item.ID != expected[i].ID || item.Transcript != expected[i].Transcript {
			t.Errorf("expected %+v at index %d, got %+v", expected[i], i, item)
		}
	}
}

func TestReadItemsFromFile_Dataset(t *testing.T) {
	content := `{"_meta":true,"generator":"test","seed":1,"count":2}
{"id":"case-1","transcriptText":"My name is Ana."}
{"id":"case-2","transcriptText":"I need groceries."}
`
	path := filepath.Join(t.TempDir(), "cases.jsonl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := ReadItemsFromFile(path)
	if err != nil {
		t.Fatalf("ReadItemsFromFile failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "case-1" || items[1].Transcript != "I need groceries." {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestReadItemsFromFile_NonExistent(t *testing.T) {
	_, err := ReadItemsFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&countingExtractor{}, 2, nil)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestItemResult_GetError(t *testing.T) {
	r1 := &ItemResult{ID: "a"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("cancelled")
	r2 := &ItemResult{ID: "a", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
