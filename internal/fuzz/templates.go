package fuzz

import (
	"strconv"
	"strings"

	"github.com/ppiankov/storyintake/internal/model"
)

// Template is a labeled base transcript with {name} and {amount} slots.
// A template without a slot expects a null value for that field.
type Template struct {
	ID         string
	Difficulty string
	Text       string
	Category   model.Category
	Urgency    model.UrgencyLevel
}

// HasName reports whether the template carries a name slot
func (t Template) HasName() bool { return strings.Contains(t.Text, "{name}") }

// HasAmount reports whether the template carries an amount slot
func (t Template) HasAmount() bool { return strings.Contains(t.Text, "{amount}") }

// Fill substitutes the slots
func (t Template) Fill(name string, amount float64) string {
	return strings.NewReplacer("{name}", name, "{amount}", formatDollars(amount)).Replace(t.Text)
}

// Templates returns the built-in base transcripts
func Templates() []Template {
	return []Template{
		{"housing-rent", model.DifficultyEasy,
			"My name is {name} and I need {amount} for rent",
			model.CategoryHousing, model.UrgencyLow},
		{"medical-surgery", model.DifficultyEasy,
			"This is {name}. I need {amount} for surgery tomorrow",
			model.CategoryHealthcare, model.UrgencyCritical},
		{"no-urgency-roof", model.DifficultyMedium,
			"We would like help with a new roof eventually, when possible",
			model.CategoryOther, model.UrgencyLow},
		{"family-wedding", model.DifficultyMedium,
			"Good morning, this is Dr. {name}... wedding expenses after her father passed away",
			model.CategoryFamily, model.UrgencyLow},
		{"eviction-threat", model.DifficultyHard,
			"My landlord is threatening to evict us if we don't pay by Friday. My name is {name}.",
			model.CategoryHousing, model.UrgencyCritical},
		{"car-repair", model.DifficultyEasy,
			"Hi, this is {name}. My car broke down and I need {amount} for the repair",
			model.CategoryTransportation, model.UrgencyLow},
		{"groceries", model.DifficultyEasy,
			"I'm {name} and we need help with groceries for my kids, about {amount}",
			model.CategoryFood, model.UrgencyLow},
		{"tuition", model.DifficultyMedium,
			"My name is {name}. I need {amount} for tuition before classes start next month",
			model.CategoryEducation, model.UrgencyLow},
		{"immigration-lawyer", model.DifficultyMedium,
			"This is {name}, I need {amount} for a lawyer for my immigration court hearing",
			model.CategoryLegal, model.UrgencyLow},
		{"safety-weapon", model.DifficultyHard,
			"My abusive boyfriend has a gun and I need to get out tonight. I'm {name}.",
			model.CategorySafety, model.UrgencyCritical},
		{"job-loss-bills", model.DifficultyMedium,
			"I was laid off last month and I'm behind on bills. My name is {name} and I need {amount}.",
			model.CategoryEmployment, model.UrgencyMedium},
	}
}

var (
	fuzzNames = []string{
		"Maria Garcia", "John Smith", "Denise Walker", "Kevin Brown", "Aisha Rahman",
		"Luis Ortega", "Grace Kim", "Samuel Okafor", "Elena Petrova", "David Nguyen",
	}
	fuzzAmounts = []float64{350, 800, 1200, 1500, 2400, 3500, 5000, 7250}
)

// formatDollars renders 1200 as "$1,200"
func formatDollars(v float64) string {
	digits := strconv.FormatInt(int64(v), 10)
	var b strings.Builder
	b.WriteByte('$')
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
