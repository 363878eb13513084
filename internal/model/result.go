package model

// Span locates a candidate in the transcript (byte offsets)
type Span struct {
	Offset int `json:"offset"`
	Length int `json:"len"`
}

// Candidate is a provisional extracted value with its provenance.
// Extractors create candidates per call; they are never mutated afterwards.
type Candidate struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	StrategyID string  `json:"strategyId"`
	SourceSpan Span    `json:"sourceSpan"`
	RawContext string  `json:"rawContext,omitempty"`
}

// NameResult is the output of the name extractor
type NameResult struct {
	Primary    *Candidate  `json:"primary"`
	Candidates []Candidate `json:"candidates"` // Ranked, at most 10
	Confidence float64     `json:"confidence"`
	Reasoning  []string    `json:"reasoning"`
}

// AmountResult is the output of the amount extractor
type AmountResult struct {
	Value      *float64 `json:"value"`
	Confidence float64  `json:"confidence"`
	PatternID  string   `json:"patternId,omitempty"`
	SourceSpan Span     `json:"sourceSpan"`
}

// Field names the externally visible result fields
type Field string

const (
	FieldName       Field = "name"
	FieldCategory   Field = "category"
	FieldUrgency    Field = "urgencyLevel"
	FieldGoalAmount Field = "goalAmount"
)

// Fields lists result fields in a stable order
func Fields() []Field {
	return []Field{FieldName, FieldCategory, FieldUrgency, FieldGoalAmount}
}

// Tier records which path produced a field value
type Tier string

const (
	TierPrimary   Tier = "primary"   // High-precision strategy
	TierHeuristic Tier = "heuristic" // Low-precision strategy (proper-noun names, spelled amounts)
	TierContext   Tier = "context"   // Caller-supplied hint
	TierDefault   Tier = "default"   // Category resolved to OTHER
	TierFallback  Tier = "fallback"  // Degraded pattern set after an engine fault
	TierNone      Tier = "none"      // No value
)

// ExtractionContext carries optional caller hints
type ExtractionContext struct {
	Category   *Category `json:"category,omitempty"`
	GoalAmount *float64  `json:"goalAmount,omitempty"`
}

// ExtractionResult is the structured record returned for every transcript.
// Every field is either a validated value or an explicit null.
type ExtractionResult struct {
	Name             *Candidate        `json:"name"`
	NameAlternatives []Candidate       `json:"nameAlternatives"` // Up to 5 runners-up
	Category         Category          `json:"category"`
	Intents          []Intent          `json:"intents"`
	UrgencyLevel     UrgencyLevel      `json:"urgencyLevel"`
	Urgency          UrgencyAssessment `json:"urgency"`
	GoalAmount       *float64          `json:"goalAmount"`
	Confidence       map[Field]float64 `json:"confidence"`
	FallbackTier     map[Field]Tier    `json:"fallbackTier"`
	Strategy         string            `json:"strategy"`
	PatternVersion   string            `json:"patternVersion"`
}

// NameValue returns the extracted name or "" when null
func (r ExtractionResult) NameValue() string {
	if r.Name == nil {
		return ""
	}
	return r.Name.Value
}

// UsedFallback reports whether any field came from the degraded path
func (r ExtractionResult) UsedFallback() bool {
	for _, t := range r.FallbackTier {
		if t == TierFallback {
			return true
		}
	}
	return false
}

// AverageConfidence is the mean confidence across all result fields
func (r ExtractionResult) AverageConfidence() float64 {
	fields := Fields()
	sum := 0.0
	for _, f := range fields {
		sum += r.Confidence[f]
	}
	return sum / float64(len(fields))
}
