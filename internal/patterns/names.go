package patterns

import "regexp"

// Name strategy identifiers, in descending tie-break priority
const (
	StrategyDirectFullName = "direct-full-name"
	StrategyDirectName     = "direct-name"
	StrategyTitle          = "title"
	StrategySelfID         = "self-id"
	StrategyThirdPerson    = "third-person"
	StrategySpeakerID      = "speaker-id"
	StrategyGreeting       = "greeting"
	StrategyPossessive     = "possessive"
	StrategyFragment       = "fragment"
	StrategyProperNoun     = "proper-noun"
	StrategyContextFiller  = "context-filler"
)

// StrategyPriority lists strategies from strongest to weakest
var StrategyPriority = []string{
	StrategyDirectFullName,
	StrategyDirectName,
	StrategyTitle,
	StrategySelfID,
	StrategyThirdPerson,
	StrategySpeakerID,
	StrategyGreeting,
	StrategyPossessive,
	StrategyFragment,
	StrategyProperNoun,
	StrategyContextFiller,
}

const (
	capWord = `\p{Lu}[\p{L}'\-]+`
	anyWord = `\p{L}[\p{L}'\-]+`
	title   = `(?:(?:Dr|Mr|Mrs|Ms|Miss|Mx|Prof)\.?\s+)?`
)

func nameTables() NameTables {
	return NameTables{
		Direct: []NamePattern{
			{StrategyDirectFullName, regexp.MustCompile(`(?i:\bmy (?:full )?name(?: is|'s))\s+(` + anyWord + `\s+` + anyWord + `)`), 0.95},
			{StrategyDirectName, regexp.MustCompile(`(?i:\bmy name(?: is|'s))\s+(` + anyWord + `)`), 0.90},
			{StrategyTitle, regexp.MustCompile(`\b(?:Dr|Mr|Mrs|Ms|Miss|Mx|Prof|Professor|Pastor|Rev|Reverend)\.?\s+(` + capWord + `(?:\s+` + capWord + `)?)`), 0.85},
			{StrategySelfID, regexp.MustCompile(`\b(?i:i am|i'm|this is|call me)\s+(` + title + capWord + `(?:\s+` + capWord + `)?)`), 0.80},
			{StrategyThirdPerson, regexp.MustCompile(`\b(?i:her name is|his name is|their name is|named)\s+(` + capWord + `(?:\s+` + capWord + `)?)`), 0.72},
			{StrategySpeakerID, regexp.MustCompile(`\b(` + capWord + `(?:\s+` + capWord + `)?)\s+(?i:speaking|calling)\b`), 0.75},
			{StrategyPossessive, regexp.MustCompile(`\b(` + capWord + `)'s\s+(?i:story|family|situation|request|fundraiser|campaign)\b`), 0.68},
			{StrategyFragment, regexp.MustCompile(`(?i:\bmy name(?: is|'s)?)(?:\s*(?:\.{2,}|…|,|-+)\s*|\s*(?i:um|uh|er)\b[,.]?\s*)+(?:(?i:it's|is)\s+)?(` + anyWord + `(?:\s+` + anyWord + `)?)`), 0.72},
		},
		Conversation: []NamePattern{
			{StrategyGreeting, regexp.MustCompile(`(?i:\b(?:hello|hi|hey|good (?:morning|afternoon|evening))[,.!]*\s+(?:this is|it's|it is|i'm|i am))\s+(` + title + capWord + `(?:\s+` + capWord + `)?)`), 0.78},
			{StrategyContextFiller, regexp.MustCompile(`(?i:\b(?:well|so|um|uh|okay|ok),?\s+)(` + capWord + `(?:\s+` + capWord + `)?)\s+(?i:here)\b`), 0.70},
		},
		ProperNoun: regexp.MustCompile(capWord + `(?:[ ]+` + capWord + `)+`),
		Honorific:  regexp.MustCompile(`^(?i:(?:dr|mr|mrs|ms|miss|mx|prof|professor|pastor|rev|reverend)\.?\s+)`),
		Blacklist: set(
			"um", "uh", "er", "hmm", "like", "well", "so", "okay", "ok", "yeah", "yes", "no",
			"situation", "sorry", "struggling", "here", "calling", "speaking", "going", "trying",
			"not", "really", "just", "desperate", "behind", "unable", "writing", "reaching",
			"hoping", "asking", "the", "a", "an", "single", "mother", "father", "mom", "dad",
			"help", "please", "thank", "thanks", "god", "hello", "hi", "hey", "good", "morning",
			"afternoon", "evening", "monday", "tuesday", "wednesday", "thursday", "friday",
			"saturday", "sunday", "january", "february", "march", "april", "june", "july",
			"august", "september", "october", "november", "december", "today", "tomorrow",
			"tonight", "sick", "homeless", "unemployed", "currently", "also", "still",
			"inaudible", "noise", "nobody", "unknown", "name", "and", "but", "because",
			"in", "at", "on", "out", "it", "is", "my", "me", "we", "our", "that", "this",
			"i'm", "i've", "i'll", "i'd", "we're", "it's",
			"urgent", "scared", "afraid", "worried", "ill", "broke", "alone", "stuck",
			"pregnant", "disabled", "hungry", "tired", "exhausted", "injured",
		),
		StopWords: set(
			"i", "the", "this", "that", "my", "we", "our", "and", "but", "so", "then", "when",
			"after", "because", "if", "it", "it's", "um", "uh", "well", "okay", "now", "last",
			"next", "every", "please", "hello", "hi", "hey", "good", "morning", "afternoon",
			"evening", "thank", "thanks", "god", "lord", "jesus", "christmas", "easter",
			"thanksgiving", "dr", "mr", "mrs", "ms", "hospital", "bank", "street", "avenue",
			"road", "county", "city", "center", "centre", "school", "university", "college",
			"department", "church", "medicaid", "medicare", "social", "security", "united",
			"states", "america", "american", "red", "cross", "salvation", "army", "walmart",
			"uber", "lyft", "covid", "gofundme", "section", "eight", "monday", "tuesday",
			"wednesday", "thursday", "friday", "saturday", "sunday", "january", "february",
			"march", "april", "may", "june", "july", "august", "september", "october",
			"november", "december", "inaudible", "noise", "nobody", "i'm", "i've", "i'll",
			"i'd", "we're",
		),
		Connectives: set(
			"and", "but", "so", "or", "i", "im", "i'm", "from", "here", "speaking", "calling",
			"who", "with", "my", "the", "a", "an", "to", "of", "for", "is", "was", "because",
			"also", "then", "um", "uh", "and,", "at", "in",
		),
	}
}
