package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/storyintake/internal/cache"
	"github.com/ppiankov/storyintake/internal/dataset"
	"github.com/ppiankov/storyintake/internal/model"
)

// Extractor assesses one transcript
type Extractor interface {
	Extract(transcript string, hints *model.ExtractionContext) model.ExtractionResult
	Strategy() string
	PatternVersion() string
}

// Item is one transcript to extract
type Item struct {
	ID         string
	Transcript string
	Hints      *model.ExtractionContext
}

// ExtractionJob extracts one item, consulting the cache first
type ExtractionJob struct {
	Index     int
	Item      Item
	Extractor Extractor
	Cache     cache.Cache
}

// Execute executes the extraction job
func (j *ExtractionJob) Execute(ctx context.Context) Result {
	out := &ItemResult{Index: j.Index, ID: j.Item.ID}
	if err := ctx.Err(); err != nil {
		out.Error = err
		return out
	}

	// Hinted extractions are not memoized: the key covers the transcript only
	var key string
	if j.Cache != nil && j.Item.Hints == nil {
		key = cache.Key(j.Extractor.PatternVersion(), j.Extractor.Strategy(), j.Item.Transcript)
		if cached, ok := cache.GetResult(j.Cache, key); ok {
			out.Result = cached
			out.Cached = true
			return out
		}
	}

	start := time.Now()
	out.Result = j.Extractor.Extract(j.Item.Transcript, j.Item.Hints)
	out.DurationMs = float64(time.Since(start).Microseconds()) / 1000

	if key != "" {
		if err := cache.SetResult(j.Cache, key, out.Result); err != nil {
			out.CacheError = err
		}
	}
	return out
}

// ItemResult is the outcome of one extraction job
type ItemResult struct {
	Index      int
	ID         string
	Result     model.ExtractionResult
	DurationMs float64
	Cached     bool
	CacheError error // Result is still valid
	Error      error // Job did not run
}

// GetError returns the error from the job
func (r *ItemResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts many transcripts concurrently
type BatchProcessor struct {
	extractor   Extractor
	concurrency int
	cache       cache.Cache
}

// NewBatchProcessor creates a new batch processor. c may be nil.
func NewBatchProcessor(extractor Extractor, concurrency int, c cache.Cache) *BatchProcessor {
	return &BatchProcessor{
		extractor:   extractor,
		concurrency: concurrency,
		cache:       c,
	}
}

// Process extracts every item and returns results in input order.
// Cancelling ctx stops submission; unsubmitted items carry ctx.Err().
func (b *BatchProcessor) Process(ctx context.Context, items []Item) []*ItemResult {
	if len(items) == 0 {
		return []*ItemResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	go func() {
		defer pool.Close()
		for i, item := range items {
			select {
			case <-ctx.Done():
				return
			default:
			}
			job := &ExtractionJob{Index: i, Item: item, Extractor: b.extractor, Cache: b.cache}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	out := make([]*ItemResult, len(items))
	for r := range pool.Results() {
		res := r.(*ItemResult)
		out[res.Index] = res
	}

	for i, res := range out {
		if res == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = &ItemResult{Index: i, ID: items[i].ID, Error: err}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads items from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ItemResult, error) {
	items, err := ReadItemsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read transcripts: %w", err)
	}

	return b.Process(ctx, items), nil
}

// ReadItemsFromFile reads a JSONL dataset (.jsonl) or a plain text file with
// one transcript per line. Plain-text items are numbered by line.
func ReadItemsFromFile(filePath string) ([]Item, error) {
	if strings.HasSuffix(filePath, ".jsonl") {
		ds, err := dataset.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		return ItemsFromRecords(ds.Records), nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var items []Item
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		items = append(items, Item{ID: fmt.Sprintf("line-%d", line), Transcript: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return items, nil
}

// ItemsFromRecords converts dataset records into batch items
func ItemsFromRecords(records []model.DatasetRecord) []Item {
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		items = append(items, Item{ID: rec.ID, Transcript: rec.TranscriptText})
	}
	return items
}
