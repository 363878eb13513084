package patterns

import "regexp"

// Amount pattern identifiers, in priority order
const (
	AmountCurrency  = "currency"
	AmountQualified = "qualified"
	AmountDollars   = "dollars"
	AmountSpelled   = "spelled"
)

const (
	numeral    = `((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)`
	numberWord = `(?:(?:twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)(?:[\s-]+(?:one|two|three|four|five|six|seven|eight|nine))?` +
		`|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen` +
		`|one|two|three|four|five|six|seven|eight|nine)`
	andWord  = `[\s-]+(?:and[\s-]+)?`
	quantity = `(?:a[\s-]+couple(?:[\s-]+of)?|a[\s-]+few|a|` + numberWord + `)`
)

func amountTables() AmountTables {
	return AmountTables{
		// group 1 numeral, group 2 scale
		Currency: regexp.MustCompile(`(?i)\$\s?` + numeral + `(?:\s?(k|thousand|grand)\b)?`),
		// group 1 numeral, group 2 unit, group 3 the word after a unitless number
		Qualified: regexp.MustCompile(`(?i)\b(?:need|needs|needed|about|around|approximately|roughly|nearly|almost|at least|over|raise|raising|owe|owes|costs?|goal (?:is|of))\s+` +
			`(?:about |around |approximately |roughly |at least |like |maybe )?` + numeral +
			`(?:\s?(k|thousand|grand|dollars|bucks|usd)\b)?(?:\s+(\p{L}+))?`),
		// group 1 numeral, group 2 scale
		Dollars: regexp.MustCompile(`(?i)\b` + numeral + `\s?(k|thousand|grand)?\s*(?:dollars|bucks|usd)\b`),
		Spelled: regexp.MustCompile(`(?i)\b` + quantity + `[\s-]+(?:(?:thousand|grand)(?:` + andWord + numberWord + `[\s-]+hundred(?:` + andWord + numberWord + `)?|` + andWord + numberWord + `)?` +
			`|hundred(?:` + andWord + numberWord + `)?)\b`),
		SpelledLex: map[string]float64{
			"a": 1, "couple": 2, "few": 3,
			"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
			"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
			"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
			"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
			"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
			"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
			"hundred": 100, "thousand": 1000, "grand": 1000,
		},
		GoalContext: regexp.MustCompile(`(?i)\b(?:need|needs|needed|raise|raising|goal|asking for|looking for|short|cost|costs|owe|owes|total|help with|to cover|to pay)\b`),
		CountWords: set(
			"day", "days", "week", "weeks", "month", "months", "year", "years",
			"hour", "hours", "minute", "minutes", "kid", "kids", "child", "children",
			"people", "person", "percent", "times", "mile", "miles", "pounds", "am", "pm",
			"degrees", "feet", "rooms", "bedrooms", "members",
		),
	}
}
