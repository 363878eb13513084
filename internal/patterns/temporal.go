package patterns

import "github.com/ppiankov/storyintake/internal/model"

const weekday = `(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)`

func temporalTables() []TemporalTable {
	return []TemporalTable{
		{
			Bucket: model.BucketImmediate,
			Weight: 0.9,
			Patterns: []Pattern{
				pat("immediate:today", `(?i)\btoday\b`, 0.9),
				pat("immediate:tonight", `(?i)\btonight\b`, 0.9),
				pat("immediate:right_now", `(?i)\bright now\b`, 0.9),
				pat("immediate:immediately", `(?i)\bimmediate(?:ly)?\b`, 0.9),
				pat("immediate:asap", `(?i)\b(?:asap|as soon as possible)\b`, 0.9),
				pat("immediate:urgent", `(?i)\burgent(?:ly)?\b`, 0.9),
				pat("immediate:daypart", `(?i)\bthis (?:morning|afternoon|evening)\b`, 0.9),
				pat("immediate:hours", `(?i)\bwithin (?:(?:a few |the next few )?hours|an hour|the hour)\b`, 0.9),
				pat("immediate:end_of_day", `(?i)\bby (?:the )?end of (?:the )?day\b`, 0.9),
			},
		},
		{
			Bucket: model.BucketNextDay,
			Weight: 0.8,
			Patterns: []Pattern{
				pat("next_day:tomorrow", `(?i)\btomorrow\b`, 0.8),
				pat("next_day:24_hours", `(?i)\b(?:within|in) (?:the next )?24 hours\b`, 0.8),
				pat("next_day:by_morning", `(?i)\bby (?:the )?morning\b`, 0.8),
				pat("next_day:overnight", `(?i)\bovernight\b`, 0.8),
			},
		},
		{
			Bucket: model.BucketShortTerm,
			Weight: 0.6,
			Patterns: []Pattern{
				pat("short_term:this_week", `(?i)\b(?:this|end of the|end of this) week(?:end)?\b`, 0.6),
				pat("short_term:few_days", `(?i)\b(?:a |the next |next )?(?:few|couple(?: of)?) days\b`, 0.6),
				pat("short_term:weekday", `(?i)\bby (?:this |next )?`+weekday+`\b`, 0.6),
				pat("short_term:within_days", `(?i)\b(?:within|in) (?:a|one|two|three|four|five|\d) days?\b`, 0.6),
				pat("short_term:next_week", `(?i)\bnext week\b`, 0.6),
			},
		},
		{
			Bucket: model.BucketMediumTerm,
			Weight: 0.3,
			Patterns: []Pattern{
				pat("medium_term:month", `(?i)\b(?:next|this|end of the|end of this) month\b`, 0.3),
				pat("medium_term:first_of_month", `(?i)\b(?:the )?first of the month\b`, 0.3),
				pat("medium_term:weeks", `(?i)\b(?:a |few |couple(?: of)? |two |three |\d )weeks\b`, 0.3),
				pat("medium_term:months", `(?i)\bin (?:a|one|two|three|\d) months?\b`, 0.3),
				pat("medium_term:soon", `(?i)\bsoon\b`, 0.3),
			},
		},
	}
}

func noUrgencyPatterns() []Pattern {
	return []Pattern{
		pat("no_urgency:eventually", `(?i)\beventually\b`, 0.1),
		pat("no_urgency:no_rush", `(?i)\bno (?:rush|hurry)\b`, 0.1),
		pat("no_urgency:not_urgent", `(?i)\b(?:not|isn't|is not) (?:urgent|an emergency)\b`, 0.1),
		pat("no_urgency:not_in_a_hurry", `(?i)\bnot in (?:a|any) (?:hurry|rush)\b`, 0.1),
		pat("no_urgency:when_possible", `(?i)\bwhen(?:ever)? (?:possible|convenient|you can)\b`, 0.1),
		pat("no_urgency:someday", `(?i)\bsome ?day\b`, 0.1),
		pat("no_urgency:down_the_road", `(?i)\b(?:down the road|in the (?:distant |far )?future|at some point)\b`, 0.1),
	}
}
