package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ppiankov/storyintake/internal/extract"
	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
	"github.com/ppiankov/storyintake/internal/pipeline"
	"github.com/ppiankov/storyintake/internal/urgency"
)

var (
	inputFile    string
	outJSON      string
	outMD        string
	hintCategory string
	hintGoal     float64
	explain      bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [transcript]",
	Short: "Extract structured fields from one transcript",
	Long: `Extract reads one transcript and prints the extraction result as JSON:
- Speaker name with ranked alternatives
- Need category and every detected intent
- Urgency level, score and the reasons behind it
- Monetary goal

The transcript is taken from the argument, from --file, or from stdin
when neither is given (or the argument is "-").

Example:
  storyintake extract "My name is John Smith and I need $1,200 for rent by Friday."
  storyintake extract --file story.txt --md story.md
  storyintake extract --file story.txt --category housing --goal 1500
  echo "..." | storyintake extract --explain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Input flags
	extractCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read transcript from file")

	// Output flags
	extractCmd.Flags().StringVar(&outJSON, "json", "", "also write JSON result to path")
	extractCmd.Flags().StringVar(&outMD, "md", "", "write Markdown report to path")
	extractCmd.Flags().BoolVar(&explain, "explain", false, "print urgency layer breakdown to stderr")

	// Context hints
	extractCmd.Flags().StringVar(&hintCategory, "category", "", "category hint used when the transcript resolves to OTHER")
	extractCmd.Flags().Float64Var(&hintGoal, "goal", 0, "goal amount hint used when the transcript states none")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	transcript, err := readTranscript(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	hints, err := buildHints(hintCategory, hintGoal)
	if err != nil {
		return err
	}

	lib := patterns.New()
	o, err := newOrchestrator(lib, cfg, nil)
	if err != nil {
		return err
	}

	result := o.Extract(transcript, hints)

	renderer := pipeline.NewRenderer(cfg.Output.Pretty)
	if err := renderer.EncodeJSON(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return err
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return err
		}
	}

	if cfg.Output.Verbose {
		renderer.RenderSummary(os.Stderr, result)
	}
	if explain {
		printExplanation(os.Stderr, lib, cfg, transcript, result.Category)
	}
	return nil
}

// newOrchestrator builds the configured engine. reg may be nil.
func newOrchestrator(lib *patterns.Library, cfg *model.Config, reg prometheus.Registerer) (*pipeline.Orchestrator, error) {
	opts := []pipeline.Option{pipeline.WithLogger(log.Logger)}
	if reg != nil {
		opts = append(opts, pipeline.WithMetrics(pipeline.NewMetrics(reg)))
	}
	return pipeline.NewFromConfig(lib, cfg, opts...)
}

func readTranscript(stdin io.Reader, args []string) (string, error) {
	switch {
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return string(data), nil
	case len(args) == 1 && args[0] != "-":
		return args[0], nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

func buildHints(category string, goal float64) (*model.ExtractionContext, error) {
	if category == "" && goal == 0 {
		return nil, nil
	}
	hints := &model.ExtractionContext{}
	if category != "" {
		c, err := model.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("--category: %w", err)
		}
		hints.Category = &c
	}
	if goal != 0 {
		hints.GoalAmount = &goal
	}
	return hints, nil
}

// printExplanation shows every urgency layer behind the assessment
func printExplanation(w io.Writer, lib *patterns.Library, cfg *model.Config, transcript string, category model.Category) {
	registry, err := urgency.NewRegistry(lib, cfg.Urgency)
	if err != nil {
		fmt.Fprintf(w, "explain unavailable: %v\n", err)
		return
	}
	strategy, _ := registry.Find(cfg.Urgency.Strategy)
	contextual, ok := strategy.(*urgency.ContextualStrategy)
	if !ok {
		fmt.Fprintf(w, "explain is only available for %s (using %s)\n", urgency.StrategyContextual, strategy.Name())
		return
	}

	ex := contextual.Explain(extract.Normalize(transcript), category)
	fmt.Fprintln(w, "═══════════════════════════════════════")
	fmt.Fprintln(w, "  Urgency Breakdown")
	fmt.Fprintln(w, "═══════════════════════════════════════")
	fmt.Fprintf(w, "  Temporal:    %.2f (%v) %s\n", ex.Temporal.Score, ex.Temporal.Bucket, strings.Join(ex.Temporal.Matches, ", "))
	if ex.Temporal.NoUrgency {
		fmt.Fprintf(w, "  No-urgency:  %s\n", strings.Join(ex.Temporal.NoUrgencyMarkers, ", "))
	}
	fmt.Fprintf(w, "  Crisis:      %.2f %v\n", ex.Crisis.Score, ex.Crisis.Domain)
	for _, d := range ex.Crisis.Matched {
		fmt.Fprintf(w, "    - %v %.2f\n", d.Domain, d.Score)
	}
	fmt.Fprintf(w, "  Rule:        %s → %.2f\n", ex.Combination.Rule, ex.Combination.Base)
	for _, adj := range ex.Combination.Adjustments {
		fmt.Fprintf(w, "    + %s %.2f\n", adj.Tag, adj.Amount)
	}
	fmt.Fprintf(w, "  Adjusted:    %.2f (cap %.2f)\n", ex.Combination.Adjusted, cfg.Urgency.MaxAdjustment)
	fmt.Fprintf(w, "  Thresholds:  medium %.2f · high %.2f · critical %.2f (%s)\n",
		ex.Thresholds.Medium, ex.Thresholds.High, ex.Thresholds.Critical, category)
	fmt.Fprintf(w, "  Result:      %.2f → %s\n", ex.Assessment.Score, ex.Assessment.Level)
	fmt.Fprintln(w, "═══════════════════════════════════════")
}
