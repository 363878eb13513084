// Package dataset reads and writes JSONL evaluation datasets: one case per
// line, with an optional leading {"_meta": true, ...} line.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/storyintake/internal/model"
)

const maxLineBytes = 1 << 20

// ErrMissingTranscript is wrapped by LineError when a case has no transcript field
var ErrMissingTranscript = errors.New("missing transcriptText")

// LineError reports a malformed dataset line
type LineError struct {
	Line int // 1-based
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Dataset is a parsed JSONL file
type Dataset struct {
	Meta    *model.DatasetMeta
	Records []model.DatasetRecord
}

// ReadFile loads the dataset at path
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses JSONL from r. Blank lines are skipped; a _meta line is only
// accepted as the first non-blank line.
func Read(r io.Reader) (*Dataset, error) {
	ds := &Dataset{Records: []model.DatasetRecord{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	seen := make(map[string]int)
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		if ds.Meta == nil && len(ds.Records) == 0 && isMeta(raw) {
			var meta model.DatasetMeta
			if err := json.Unmarshal(raw, &meta); err != nil {
				return nil, &LineError{Line: line, Err: err}
			}
			ds.Meta = &meta
			continue
		}

		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		if rec.ID != "" {
			if first, dup := seen[rec.ID]; dup {
				return nil, &LineError{Line: line, Err: fmt.Errorf("duplicate id %q (first on line %d)", rec.ID, first)}
			}
			seen[rec.ID] = line
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LineError{Line: line + 1, Err: err}
	}
	return ds, nil
}

func isMeta(raw []byte) bool {
	var probe struct {
		Meta bool `json:"_meta"`
	}
	return json.Unmarshal(raw, &probe) == nil && probe.Meta
}

func decodeRecord(raw []byte) (model.DatasetRecord, error) {
	var probe struct {
		Transcript *string `json:"transcriptText"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return model.DatasetRecord{}, err
	}
	if probe.Transcript == nil {
		return model.DatasetRecord{}, ErrMissingTranscript
	}

	var rec model.DatasetRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.DatasetRecord{}, err
	}
	return rec, nil
}

// Write emits meta (when non-nil) followed by one line per record.
// Output is byte-stable for equal input.
func Write(w io.Writer, meta *model.DatasetMeta, records []model.DatasetRecord) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	if meta != nil {
		m := *meta
		m.Meta = true
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode meta: %w", err)
		}
	}
	for i := range records {
		if err := enc.Encode(records[i]); err != nil {
			return fmt.Errorf("encode record %s: %w", records[i].ID, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes the dataset to path
func WriteFile(path string, meta *model.DatasetMeta, records []model.DatasetRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	if err := Write(f, meta, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
