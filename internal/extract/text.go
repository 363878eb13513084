// Package extract turns transcript text into name and amount candidates
package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Normalize prepares a transcript for matching: NFC composition, straight
// apostrophes and single spaces. All offsets reported by extractors refer to
// the normalized text.
func Normalize(transcript string) string {
	s := norm.NFC.String(transcript)
	s = apostrophes.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// window returns the text around [start,end) padded by radius bytes,
// widened to rune boundaries
func window(text string, start, end, radius int) string {
	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	for from > 0 && !isRuneStart(text[from]) {
		from--
	}
	for to < len(text) && !isRuneStart(text[to]) {
		to++
	}
	return strings.TrimSpace(text[from:to])
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// titleCase capitalizes an all-lowercase name; mixed-case input is kept as is
func titleCase(s string) string {
	if strings.ToLower(s) != s {
		return s
	}
	return cases.Title(language.English).String(s)
}

// trimPunct strips sentence punctuation around a word
func trimPunct(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return unicode.IsPunct(r) && r != '\'' && r != '-'
	})
}
