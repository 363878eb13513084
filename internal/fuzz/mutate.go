package fuzz

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mutation IDs
const (
	MutationFiller         = "filler_words"
	MutationClauseReorder  = "clause_reorder"
	MutationIrrelevantNum  = "irrelevant_number"
	MutationIrrelevantWord = "irrelevant_keyword"
	MutationPunctuation    = "punctuation_chaos"
	MutationAdversarial    = "adversarial_token"
	MutationCapitalization = "capitalization_variance"
)

// Mutation is one probabilistic transcript perturbation. Applying it lowers
// the case's label confidence by Penalty.
type Mutation struct {
	ID          string
	Probability float64
	Penalty     float64
	Apply       func(r *Rand, text string) string
}

// Mutations returns the operators in application order
func Mutations() []Mutation {
	return []Mutation{
		{MutationFiller, 0.35, 0.02, insertFiller},
		{MutationClauseReorder, 0.20, 0.05, reorderClauses},
		{MutationIrrelevantNum, 0.25, 0.08, appendIrrelevantNumber},
		{MutationIrrelevantWord, 0.20, 0.06, appendIrrelevantKeyword},
		{MutationPunctuation, 0.25, 0.03, punctuationChaos},
		{MutationAdversarial, 0.08, 0.10, injectAdversarialToken},
		{MutationCapitalization, 0.20, 0.04, varyCapitalization},
	}
}

var (
	fillers           = []string{"um,", "uh,", "like,", "you know,", "I mean,", "so,"}
	irrelevantNumbers = []string{
		"I called 3 times already.",
		"We live in apartment 12.",
		"My son is 7.",
		"The bus comes at 9.",
	}
	irrelevantKeywords = []string{
		"My cousin works at the hospital.",
		"The school bus was late again.",
		"My neighbor just got a new car.",
		"We had pizza for dinner last week.",
	}
	adversarialTokens = []string{"[inaudible]", "[crosstalk]", "<unk>", "###"}
	punctuationSwaps  = []string{"...", "!!", " ,", ";"}

	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

func insertWord(r *Rand, text, word string) string {
	words := strings.Fields(text)
	if len(words) < 2 {
		return word + " " + text
	}
	pos := 1 + r.Intn(len(words)-1)
	out := make([]string, 0, len(words)+1)
	out = append(out, words[:pos]...)
	out = append(out, word)
	out = append(out, words[pos:]...)
	return strings.Join(out, " ")
}

func insertFiller(r *Rand, text string) string {
	return insertWord(r, text, pick(r, fillers))
}

func injectAdversarialToken(r *Rand, text string) string {
	return insertWord(r, text, pick(r, adversarialTokens))
}

// reorderClauses rotates sentences; single-sentence text is unchanged
func reorderClauses(r *Rand, text string) string {
	var sentences []string
	for _, s := range sentenceRe.FindAllString(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) < 2 {
		return text
	}
	shift := 1 + r.Intn(len(sentences)-1)
	rotated := append(append([]string{}, sentences[shift:]...), sentences[:shift]...)
	return strings.Join(rotated, " ")
}

func appendIrrelevantNumber(r *Rand, text string) string {
	return strings.TrimSpace(text) + " " + pick(r, irrelevantNumbers)
}

func appendIrrelevantKeyword(r *Rand, text string) string {
	return strings.TrimSpace(text) + " " + pick(r, irrelevantKeywords)
}

// punctuationChaos swaps every sentence-final period, or strips commas
func punctuationChaos(r *Rand, text string) string {
	swap := pick(r, punctuationSwaps)
	if swap == " ," {
		return strings.ReplaceAll(text, ",", "")
	}
	return strings.ReplaceAll(text, ". ", swap+" ")
}

func varyCapitalization(r *Rand, text string) string {
	if r.Chance(0.5) {
		return cases.Lower(language.English).String(text)
	}
	return cases.Upper(language.English).String(text)
}
