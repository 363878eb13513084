package model

// DatasetMeta is the optional leading metadata line of a JSONL dataset
type DatasetMeta struct {
	Meta      bool   `json:"_meta"`
	Generator string `json:"generator,omitempty"`
	Version   string `json:"version,omitempty"`
	Seed      *int64 `json:"seed,omitempty"`
	Count     int    `json:"count,omitempty"`
}

// Expected holds the ground-truth labels of a dataset case.
// Null name/amount mean "nothing should be extracted".
type Expected struct {
	Name         *string      `json:"name"`
	Category     Category     `json:"category"`
	UrgencyLevel UrgencyLevel `json:"urgencyLevel"`
	GoalAmount   *float64     `json:"goalAmount"`
}

// Expectations relaxes matching for a dataset case
type Expectations struct {
	AmountTolerance float64 `json:"amountTolerance"` // Relative tolerance (0.05 = ±5%)
	AllowFuzzyName  bool    `json:"allowFuzzyName"`
}

// DatasetRecord is one golden or fuzzed evaluation case
type DatasetRecord struct {
	ID               string        `json:"id"`
	Difficulty       string        `json:"difficulty"`
	SourceTemplateID string        `json:"sourceTemplateId,omitempty"`
	TranscriptText   string        `json:"transcriptText"`
	Expected         Expected      `json:"expected"`
	Expectations     *Expectations `json:"expectations,omitempty"`
	LabelConfidence  *float64      `json:"labelConfidence,omitempty"`
	Mutations        []string      `json:"mutations,omitempty"`
	Notes            string        `json:"notes,omitempty"`
}

// Difficulty labels
const (
	DifficultyEasy        = "easy"
	DifficultyMedium      = "medium"
	DifficultyHard        = "hard"
	DifficultyAdversarial = "adversarial"
)
