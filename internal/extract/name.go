package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

const (
	maxCandidates  = 10
	maxAlternates  = 5
	properNounConf = 0.65
	tieTolerance   = 0.01
	contextRadius  = 24
)

// NameExtractor finds the beneficiary name in a transcript
type NameExtractor struct {
	tables   patterns.NameTables
	priority map[string]int
}

// NewNameExtractor creates a name extractor over the library's name tables
func NewNameExtractor(lib *patterns.Library) *NameExtractor {
	priority := make(map[string]int, len(patterns.StrategyPriority))
	for i, s := range patterns.StrategyPriority {
		priority[s] = i
	}
	return &NameExtractor{tables: lib.Names, priority: priority}
}

// Extract pools candidates from the pattern, proper-noun and conversational
// strategies, then ranks them. Text should already be normalized.
func (e *NameExtractor) Extract(text string) model.NameResult {
	result := model.NameResult{
		Candidates: []model.Candidate{},
		Reasoning:  []string{},
	}
	if strings.TrimSpace(text) == "" {
		result.Reasoning = append(result.Reasoning, "empty transcript")
		return result
	}

	var pool []model.Candidate
	pool = append(pool, e.fromPatterns(text, e.tables.Direct)...)
	pool = append(pool, e.fromProperNouns(text)...)
	pool = append(pool, e.fromPatterns(text, e.tables.Conversation)...)

	ranked := e.rank(pool)
	if len(ranked) > maxCandidates {
		ranked = ranked[:maxCandidates]
	}
	result.Candidates = ranked

	if len(ranked) == 0 {
		result.Reasoning = append(result.Reasoning, "no valid name candidates")
		return result
	}

	primary := ranked[0]
	result.Primary = &primary
	result.Confidence = primary.Confidence
	for _, c := range ranked {
		result.Reasoning = append(result.Reasoning,
			fmt.Sprintf("%s: %q at %d (%.2f)", c.StrategyID, c.Value, c.SourceSpan.Offset, c.Confidence))
	}
	return result
}

// Alternatives returns up to five runners-up after the primary candidate
func Alternatives(r model.NameResult) []model.Candidate {
	if len(r.Candidates) <= 1 {
		return []model.Candidate{}
	}
	alts := r.Candidates[1:]
	if len(alts) > maxAlternates {
		alts = alts[:maxAlternates]
	}
	out := make([]model.Candidate, len(alts))
	copy(out, alts)
	return out
}

// NameTier classifies a name strategy as primary or heuristic
func NameTier(strategy string) model.Tier {
	switch strategy {
	case patterns.StrategyDirectFullName, patterns.StrategyDirectName, patterns.StrategyTitle,
		patterns.StrategySelfID, patterns.StrategyThirdPerson, patterns.StrategySpeakerID:
		return model.TierPrimary
	}
	return model.TierHeuristic
}

func (e *NameExtractor) fromPatterns(text string, table []patterns.NamePattern) []model.Candidate {
	var out []model.Candidate
	for _, p := range table {
		for _, m := range p.Re.FindAllStringSubmatchIndex(text, -1) {
			if len(m) < 4 || m[2] < 0 {
				continue
			}
			raw := text[m[2]:m[3]]
			value, ok := e.clean(raw)
			if !ok {
				continue
			}
			// A full-name match that cleans down to one word belongs to direct-name
			if p.Strategy == patterns.StrategyDirectFullName && len(strings.Fields(value)) < 2 {
				continue
			}
			out = append(out, model.Candidate{
				Value:      value,
				Confidence: p.Confidence,
				StrategyID: p.Strategy,
				SourceSpan: model.Span{Offset: m[2], Length: m[3] - m[2]},
				RawContext: window(text, m[0], m[1], contextRadius),
			})
		}
	}
	return out
}

// fromProperNouns splits capitalized runs at stop words and keeps the
// pieces that still hold two or more words
func (e *NameExtractor) fromProperNouns(text string) []model.Candidate {
	var out []model.Candidate
	for _, loc := range e.tables.ProperNoun.FindAllStringIndex(text, -1) {
		run := text[loc[0]:loc[1]]
		var words []string
		start := -1
		flush := func(end int) {
			if len(words) >= 2 {
				raw := strings.Join(words, " ")
				if value, ok := e.clean(raw); ok && len(strings.Fields(value)) >= 2 {
					out = append(out, model.Candidate{
						Value:      value,
						Confidence: properNounConf,
						StrategyID: patterns.StrategyProperNoun,
						SourceSpan: model.Span{Offset: loc[0] + start, Length: end - start},
						RawContext: window(text, loc[0], loc[1], contextRadius),
					})
				}
			}
			words = words[:0]
			start = -1
		}

		offset := 0
		for _, w := range strings.Split(run, " ") {
			if w == "" {
				offset++
				continue
			}
			if e.tables.StopWords[strings.ToLower(trimPunct(w))] {
				flush(offset - 1)
			} else {
				if start < 0 {
					start = offset
				}
				words = append(words, w)
			}
			offset += len(w) + 1
		}
		flush(len(run))
	}
	return out
}

// clean strips honorifics and connective words and validates the rest
func (e *NameExtractor) clean(raw string) (string, bool) {
	s := strings.Join(strings.Fields(raw), " ")
	s = e.tables.Honorific.ReplaceAllString(s, "")

	words := strings.Fields(s)
	for i := range words {
		words[i] = trimPunct(words[i])
	}
	for len(words) > 0 && (words[0] == "" || e.tables.Connectives[strings.ToLower(words[0])]) {
		words = words[1:]
	}
	for len(words) > 0 && (words[len(words)-1] == "" || e.tables.Connectives[strings.ToLower(words[len(words)-1])]) {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return "", false
	}

	value := titleCase(strings.Join(words, " "))
	if !e.valid(value) {
		return "", false
	}
	return value, true
}

func (e *NameExtractor) valid(value string) bool {
	n := utf8.RuneCountInString(value)
	if n < 2 || n > 50 {
		return false
	}
	for _, r := range value {
		if !unicode.IsLetter(r) && r != ' ' && r != '\'' && r != '-' {
			return false
		}
	}
	for _, w := range strings.Fields(value) {
		if e.tables.Blacklist[strings.ToLower(w)] {
			return false
		}
	}
	return !hasConsonantRun(value, 4)
}

// hasConsonantRun reports n or more consecutive ASCII consonants
func hasConsonantRun(s string, n int) bool {
	run := 0
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' && !strings.ContainsRune("aeiouy", r) {
			run++
			if run >= n {
				return true
			}
			continue
		}
		run = 0
	}
	return false
}

// rank orders candidates by confidence, then earlier offset, then strategy
// priority, and keeps the best candidate per distinct value
func (e *NameExtractor) rank(pool []model.Candidate) []model.Candidate {
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if math.Abs(a.Confidence-b.Confidence) > tieTolerance {
			return a.Confidence > b.Confidence
		}
		if a.SourceSpan.Offset != b.SourceSpan.Offset {
			return a.SourceSpan.Offset < b.SourceSpan.Offset
		}
		return e.priority[a.StrategyID] < e.priority[b.StrategyID]
	})

	seen := make(map[string]bool)
	ranked := make([]model.Candidate, 0, len(pool))
	for _, c := range pool {
		key := strings.ToLower(c.Value)
		if seen[key] {
			continue
		}
		seen[key] = true
		ranked = append(ranked, c)
	}
	return ranked
}
