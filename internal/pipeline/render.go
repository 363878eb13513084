package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/storyintake/internal/model"
)

// Renderer writes extraction results as JSON, Markdown or a short summary
type Renderer struct {
	Pretty bool
}

// NewRenderer creates a renderer
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{Pretty: pretty}
}

// EncodeJSON writes v as a single JSON document followed by a newline
func (r *Renderer) EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// RenderJSON writes v to path
func (r *Renderer) RenderJSON(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.EncodeJSON(f, v); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// RenderMarkdown writes the Markdown report of result to path
func (r *Renderer) RenderMarkdown(result model.ExtractionResult, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(result)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown formats one result as a Markdown report
func (r *Renderer) Markdown(result model.ExtractionResult) string {
	var b strings.Builder

	b.WriteString("# Story Intake Extraction\n\n")
	fmt.Fprintf(&b, "Strategy: `%s` · Patterns: `%s`\n\n", result.Strategy, result.PatternVersion)

	b.WriteString("## Fields\n\n")
	b.WriteString("| Field | Value | Confidence | Tier |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, f := range model.Fields() {
		fmt.Fprintf(&b, "| %s | %s | %.2f | %s |\n", f, fieldValue(result, f), result.Confidence[f], result.FallbackTier[f])
	}
	b.WriteString("\n")

	if len(result.NameAlternatives) > 0 {
		b.WriteString("## Name Alternatives\n\n")
		for _, c := range result.NameAlternatives {
			fmt.Fprintf(&b, "- %s (%.2f, %s)\n", c.Value, c.Confidence, c.StrategyID)
		}
		b.WriteString("\n")
	}

	if len(result.Intents) > 0 {
		b.WriteString("## Intents\n\n")
		for _, in := range result.Intents {
			fmt.Fprintf(&b, "- **%s** %.2f: %s\n", in.Category, in.Confidence, strings.Join(in.Signals, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Urgency\n\n")
	fmt.Fprintf(&b, "Score %.2f → **%s** (confidence %.2f)\n\n", result.Urgency.Score, result.UrgencyLevel, result.Urgency.Confidence)
	for _, reason := range result.Urgency.Reasons {
		fmt.Fprintf(&b, "- `%s`\n", reason)
	}

	return b.String()
}

// RenderSummary prints a one-screen summary of result
func (r *Renderer) RenderSummary(w io.Writer, result model.ExtractionResult) {
	fmt.Fprintln(w, "═══════════════════════════════════════")
	fmt.Fprintln(w, "  Extraction Summary")
	fmt.Fprintln(w, "═══════════════════════════════════════")
	for _, f := range model.Fields() {
		marker := ""
		if result.FallbackTier[f] == model.TierFallback {
			marker = "  ⚠ degraded"
		}
		fmt.Fprintf(w, "  %-13s %-22s %.2f%s\n", f, fieldValue(result, f), result.Confidence[f], marker)
	}
	fmt.Fprintf(w, "  %-13s %.2f\n", "urgencyScore", result.Urgency.Score)
	fmt.Fprintln(w, "═══════════════════════════════════════")
}

func fieldValue(result model.ExtractionResult, f model.Field) string {
	switch f {
	case model.FieldName:
		if result.Name == nil {
			return "-"
		}
		return result.Name.Value
	case model.FieldCategory:
		return result.Category.String()
	case model.FieldUrgency:
		return result.UrgencyLevel.String()
	case model.FieldGoalAmount:
		if result.GoalAmount == nil {
			return "-"
		}
		return fmt.Sprintf("$%.2f", *result.GoalAmount)
	}
	return ""
}
