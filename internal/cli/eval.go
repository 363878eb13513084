package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ppiankov/storyintake/internal/cache"
	"github.com/ppiankov/storyintake/internal/dataset"
	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
	"github.com/ppiankov/storyintake/internal/pipeline"
	"github.com/ppiankov/storyintake/internal/score"
	"github.com/ppiankov/storyintake/internal/worker"
)

var (
	evalDataset       string
	evalBaseline      string
	evalWriteBaseline string
	evalReport        string
	evalMetricsFile   string
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate extraction against a labeled dataset",
	Long: `Eval runs the engine over a golden or fuzz dataset and:
- Judges every case field by field against its labels
- Computes pass rate, per-field accuracy, confidence and fallback usage
- Compares the run against a stored baseline and grades regressions
- Exits with code 2 when a CRITICAL or MAJOR regression is found

Example:
  storyintake eval --dataset golden.jsonl
  storyintake eval --dataset golden.jsonl --write-baseline baseline.json
  storyintake eval --dataset golden.jsonl --baseline baseline.json --report eval.md`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalDataset, "dataset", "d", "", "JSONL dataset to evaluate (required)")
	evalCmd.Flags().StringVar(&evalBaseline, "baseline", "", "baseline metrics JSON to compare against")
	evalCmd.Flags().StringVar(&evalWriteBaseline, "write-baseline", "", "store this run's metrics as a baseline")
	evalCmd.Flags().StringVar(&evalReport, "report", "", "write report to path (.json or .md)")
	evalCmd.Flags().StringVar(&evalMetricsFile, "metrics-file", "", "write Prometheus text exposition of engine metrics")
	_ = evalCmd.MarkFlagRequired("dataset")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ds, err := dataset.ReadFile(evalDataset)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	o, err := newOrchestrator(patterns.New(), cfg, registry)
	if err != nil {
		return err
	}

	outcomes := evaluate(cmd.Context(), o, cfg.Concurrency.Workers, ds.Records)

	metrics := score.Summarize(outcomes)
	metrics.RunID = uuid.NewString()
	metrics.CreatedAt = time.Now().UTC()
	metrics.Dataset = filepath.Base(evalDataset)
	metrics.Strategy = o.Strategy()
	metrics.PatternVersion = o.PatternVersion()

	var comparison *model.Comparison
	if evalBaseline != "" {
		baseline, err := score.ReadBaseline(evalBaseline)
		if err != nil {
			return err
		}
		c := score.NewComparator(cfg.Eval).Compare(baseline, metrics)
		comparison = &c
	}
	report := score.NewReport(metrics, comparison, outcomes)

	if evalWriteBaseline != "" {
		if err := score.WriteBaseline(evalWriteBaseline, metrics); err != nil {
			return err
		}
		log.Info().Str("path", evalWriteBaseline).Str("run_id", metrics.RunID).Msg("baseline written")
	}
	if evalReport != "" {
		if err := writeReport(evalReport, report); err != nil {
			return err
		}
	}
	if evalMetricsFile != "" {
		if err := writeMetrics(evalMetricsFile, registry); err != nil {
			return err
		}
	}

	printEvalSummary(os.Stderr, report)

	if report.Failed() {
		return &ExitError{Code: 2, Err: fmt.Errorf("regression against baseline %s", evalBaseline)}
	}
	return nil
}

// evaluate extracts every record in parallel and judges the results in
// dataset order
func evaluate(ctx context.Context, o *pipeline.Orchestrator, workers int, records []model.DatasetRecord) []model.CaseOutcome {
	processor := worker.NewBatchProcessor(o, workers, cache.Nop{})
	results := processor.Process(ctx, worker.ItemsFromRecords(records))

	outcomes := make([]model.CaseOutcome, 0, len(records))
	for i, res := range results {
		if res.Error != nil {
			log.Warn().Str("id", res.ID).Err(res.Error).Msg("case not evaluated")
		}
		outcomes = append(outcomes, score.Judge(records[i], res.Result, res.DurationMs))
	}
	return outcomes
}

func writeReport(path string, report score.Report) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return pipeline.NewRenderer(true).RenderJSON(report, path)
	}
	if err := os.WriteFile(path, []byte(report.Markdown()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// writeMetrics dumps every gathered family in the Prometheus text format
func writeMetrics(path string, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var b strings.Builder
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&b, mf); err != nil {
			return fmt.Errorf("encode metric %s: %w", mf.GetName(), err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func printEvalSummary(w io.Writer, report score.Report) {
	m := report.Metrics
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Evaluation (%s)\n", m.RunID)
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Cases:          %d\n", m.Cases)
	fmt.Fprintf(w, "  Pass rate:      %.1f%%\n", m.PassRate*100)
	for _, f := range model.Fields() {
		fmt.Fprintf(w, "  %-15s %.1f%%\n", string(f)+":", m.FieldAccuracy[f]*100)
	}
	fmt.Fprintf(w, "  Fallback usage: %.1f%%\n", m.FallbackUsageRate*100)
	fmt.Fprintf(w, "  Avg execution:  %.2f ms\n", m.AvgExecutionMs)

	if report.Comparison != nil {
		fmt.Fprintf(w, "\n")
		if len(report.Comparison.Regressions) == 0 {
			fmt.Fprintf(w, "  ✓ No regressions against %s\n", report.Comparison.Baseline.RunID)
		}
		for _, r := range report.Comparison.Regressions {
			fmt.Fprintf(w, "  %s %-8s %s\n", r.Severity, r.Metric, r.Description)
		}
	}
	fmt.Fprintf(w, "\n")
}
