package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of need categories a transcript can resolve to
type Category int

const (
	CategoryOther          Category = iota // No usable evidence
	CategorySafety                         // Violence, abuse, immediate danger
	CategoryHousing                        // Rent, eviction, homelessness
	CategoryEmployment                     // Job loss, lost income
	CategoryTransportation                 // Vehicle repair, commuting
	CategoryHealthcare                     // Medical bills, surgery, medication
	CategoryLegal                          // Court, lawyer, immigration
	CategoryFood                           // Groceries, hunger
	CategoryEducation                      // Tuition, school supplies
	CategoryFamily                         // Weddings, funerals, family events
)

var categoryNames = [...]string{
	CategoryOther:          "OTHER",
	CategorySafety:         "SAFETY",
	CategoryHousing:        "HOUSING",
	CategoryEmployment:     "EMPLOYMENT",
	CategoryTransportation: "TRANSPORTATION",
	CategoryHealthcare:     "HEALTHCARE",
	CategoryLegal:          "LEGAL",
	CategoryFood:           "FOOD",
	CategoryEducation:      "EDUCATION",
	CategoryFamily:         "FAMILY",
}

// AllCategories lists every category in declaration order
func AllCategories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for i := range categoryNames {
		out = append(out, Category(i))
	}
	return out
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is one of the declared categories
func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(categoryNames)
}

// ParseCategory converts a name like "housing" or "HOUSING" into a Category
func ParseCategory(s string) (Category, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return CategoryOther, fmt.Errorf("unknown category: %q", s)
}

// MarshalJSON encodes the category as its upper-case name
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes an upper- or lower-case category name
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Intent is one detected category of need with its supporting signal tags
type Intent struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Signals    []string `json:"signals"` // Sorted, de-duplicated tags (e.g., "housing:evict")
}

// CauseEffectEdge records causal phrasing between two co-occurring intents.
// It only biases disambiguation and is never persisted.
type CauseEffectEdge struct {
	From   Category `json:"from"`
	To     Category `json:"to"`
	Phrase string   `json:"phrase"`
}

// CategoryAssessment is the output of the category engine
type CategoryAssessment struct {
	Primary    Category          `json:"primary"`
	AllIntents []Intent          `json:"allIntents"`
	Edges      []CauseEffectEdge `json:"edges"`
	Confidence float64           `json:"confidence"`
	Rule       string            `json:"rule"`      // Disambiguation rule that selected Primary
	Reasoning  []string          `json:"reasoning"` // Ordered, human-readable steps
}
