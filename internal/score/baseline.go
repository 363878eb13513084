package score

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/storyintake/internal/model"
)

// ReadBaseline loads stored BaselineMetrics from a JSON file
func ReadBaseline(path string) (model.BaselineMetrics, error) {
	var baseline model.BaselineMetrics
	data, err := os.ReadFile(path)
	if err != nil {
		return baseline, fmt.Errorf("read baseline: %w", err)
	}
	if err := json.Unmarshal(data, &baseline); err != nil {
		return baseline, fmt.Errorf("decode baseline %s: %w", path, err)
	}
	if baseline.FieldAccuracy == nil {
		return baseline, fmt.Errorf("decode baseline %s: missing field_accuracy", path)
	}
	return baseline, nil
}

// WriteBaseline stores metrics as indented JSON
func WriteBaseline(path string, metrics model.BaselineMetrics) error {
	data, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write baseline: %w", err)
	}
	return nil
}
