package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UrgencyLevel is the discrete urgency assigned to a transcript
type UrgencyLevel int

const (
	UrgencyLow UrgencyLevel = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

var urgencyNames = [...]string{
	UrgencyLow:      "LOW",
	UrgencyMedium:   "MEDIUM",
	UrgencyHigh:     "HIGH",
	UrgencyCritical: "CRITICAL",
}

func (l UrgencyLevel) String() string {
	if l >= 0 && int(l) < len(urgencyNames) {
		return urgencyNames[l]
	}
	return fmt.Sprintf("UrgencyLevel(%d)", int(l))
}

// ParseUrgencyLevel converts "low".."critical" (any case) into an UrgencyLevel
func ParseUrgencyLevel(s string) (UrgencyLevel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range urgencyNames {
		if n == name {
			return UrgencyLevel(i), nil
		}
	}
	return UrgencyLow, fmt.Errorf("unknown urgency level: %q", s)
}

func (l UrgencyLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *UrgencyLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUrgencyLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// TemporalBucket classifies how soon help is needed
type TemporalBucket string

const (
	BucketNone       TemporalBucket = "none"
	BucketImmediate  TemporalBucket = "immediate"
	BucketNextDay    TemporalBucket = "next_day"
	BucketShortTerm  TemporalBucket = "short_term"
	BucketMediumTerm TemporalBucket = "medium_term"
	BucketNoUrgency  TemporalBucket = "no_urgency"
)

// CrisisDomain is a subject-matter area scored by the crisis layer
type CrisisDomain string

const (
	DomainHousing   CrisisDomain = "housing"
	DomainMedical   CrisisDomain = "medical"
	DomainSafety    CrisisDomain = "safety"
	DomainFinancial CrisisDomain = "financial"
)

// TemporalSignal is the output of the temporal urgency layer
type TemporalSignal struct {
	Score            float64        `json:"score"`
	Bucket           TemporalBucket `json:"bucket"`
	Matches          []string       `json:"matches"`          // Pattern IDs that matched
	NoUrgency        bool           `json:"noUrgency"`        // Explicit "no rush" style marker present
	NoUrgencyMarkers []string       `json:"noUrgencyMarkers"` // Matched marker pattern IDs
}

// DomainScore is the score of one crisis domain after multipliers
type DomainScore struct {
	Domain      CrisisDomain `json:"domain"`
	Base        float64      `json:"base"`
	Score       float64      `json:"score"`
	Triggers    []string     `json:"triggers"`
	Multipliers []string     `json:"multipliers"`
}

// CrisisSignal is the output of the crisis pattern layer
type CrisisSignal struct {
	Score   float64       `json:"score"`   // Highest domain score, 0 when nothing matched
	Domain  CrisisDomain  `json:"domain"`  // Highest-scoring domain, empty when nothing matched
	Matched []DomainScore `json:"matched"` // Every matched domain, for audit
}

// UrgencyAssessment is computed once per transcript and never mutated
type UrgencyAssessment struct {
	Score      float64      `json:"score"`
	Level      UrgencyLevel `json:"level"`
	Confidence float64      `json:"confidence"`
	Reasons    []string     `json:"reasons"` // Ordered applied-rule tags
}

// Reason tags with cross-package meaning
const (
	ReasonNoUrgency       = "no_urgency"
	ReasonDegradedMode    = "degraded_mode"
	ReasonEmptyTranscript = "empty_transcript"
)

// HasReason reports whether the assessment carries the given reason tag
func (u UrgencyAssessment) HasReason(tag string) bool {
	for _, r := range u.Reasons {
		if r == tag {
			return true
		}
	}
	return false
}
