package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ppiankov/storyintake/internal/cache"
	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
	"github.com/ppiankov/storyintake/internal/pipeline"
	"github.com/ppiankov/storyintake/internal/worker"
)

var (
	concurrency  int
	outputFile   string
	batchTimeout time.Duration
	useCache     bool
	cacheDir     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract many transcripts in parallel",
	Long: `Batch extracts many transcripts concurrently:
- Read transcripts from a JSONL dataset (.jsonl) or a text file (one per line)
- Extract in parallel with a configurable worker count
- Optionally memoize results in a memory + disk cache
- Write one JSON result per line, in input order

Example:
  storyintake batch stories.txt
  storyintake batch golden.jsonl --concurrency 8 --output results.jsonl
  storyintake batch stories.txt --cache --cache-dir ./.storyintake-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output JSONL path (default: stdout)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&useCache, "cache", false, "memoize results (overrides cache.enabled)")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (default: cache.dir)")
}

// batchLine is one line of batch output
type batchLine struct {
	ID         string                  `json:"id"`
	Result     *model.ExtractionResult `json:"result,omitempty"`
	DurationMs float64                 `json:"durationMs"`
	Cached     bool                    `json:"cached,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if useCache {
		cfg.Cache.Enabled = true
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Storyintake Batch Extraction\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Strategy:     %s\n", cfg.Urgency.Strategy)
	fmt.Fprintf(os.Stderr, "  Cache:        %v\n", cfg.Cache.Enabled)
	fmt.Fprintf(os.Stderr, "\n")

	o, err := newOrchestrator(patterns.New(), cfg, nil)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(o, cfg.Concurrency.Workers, cache.New(cfg.Cache))
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	successCount, failureCount, cachedCount, err := writeBatch(out, pipeline.NewRenderer(false), results)
	if err != nil {
		return err
	}

	// Summary
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d transcripts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Cached:    %d\n", cachedCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	if outputFile != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputFile)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d transcripts not processed", failureCount, len(results))
	}
	return nil
}

// writeBatch writes one JSON line per result in input order
func writeBatch(w io.Writer, renderer *pipeline.Renderer, results []*worker.ItemResult) (success, failures, cached int, err error) {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		line := batchLine{ID: res.ID, DurationMs: res.DurationMs, Cached: res.Cached}
		switch {
		case res.Error != nil:
			failures++
			line.Error = res.Error.Error()
			log.Warn().Str("id", res.ID).Err(res.Error).Msg("transcript not processed")
		default:
			success++
			result := res.Result
			line.Result = &result
			if res.Cached {
				cached++
			}
			if res.CacheError != nil {
				log.Warn().Str("id", res.ID).Err(res.CacheError).Msg("cache write failed")
			}
		}
		if err := renderer.EncodeJSON(bw, line); err != nil {
			return success, failures, cached, fmt.Errorf("encode %s: %w", res.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return success, failures, cached, fmt.Errorf("flush output: %w", err)
	}
	return success, failures, cached, nil
}
