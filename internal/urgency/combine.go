package urgency

import (
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/storyintake/internal/model"
)

// Combination rule names, in evaluation order
const (
	RuleNoUrgencyCap          = "no_urgency_cap"
	RuleCrisisImmediate       = "crisis_immediate"
	RuleCrisisNearTerm        = "crisis_near_term"
	RuleTemporalWithoutCrisis = "temporal_without_crisis"
	RuleCrisisOnly            = "crisis_only"
	RuleMaxSignal             = "max_signal"
)

const (
	noUrgencyCeiling = 0.25
	multiDomainBonus = 0.05
	temporalDamping  = 0.7
	temporalBonus    = 0.05
)

// DefaultMaxAdjustment is the single authoritative bound on summed adjustments
const DefaultMaxAdjustment = 0.15

// Inputs are the layer outputs plus the already-resolved category
type Inputs struct {
	Temporal model.TemporalSignal
	Crisis   model.CrisisSignal
	Category model.Category
}

// Adjustment is one bounded, category-driven addition to the combined score
type Adjustment struct {
	Tag    string
	Amount float64
}

// Combination is the outcome of the combination engine
type Combination struct {
	Base        float64 // Score produced by the rule that fired
	Rule        string
	Adjustments []Adjustment
	Adjusted    float64 // Sum of adjustments after the cap
	Score       float64
	Reasons     []string
}

type combinationRule struct {
	name    string
	applies func(c, t float64, in Inputs) bool
	score   func(c, t float64) float64
}

// categoryCeiling is the adjustment ceiling of categories whose crisis
// domain escalates urgency
var categoryCeiling = map[model.Category]struct {
	domain  model.CrisisDomain
	ceiling float64
}{
	model.CategorySafety:     {model.DomainSafety, 0.15},
	model.CategoryHealthcare: {model.DomainMedical, 0.10},
	model.CategoryHousing:    {model.DomainHousing, 0.08},
}

// Combiner merges temporal and crisis scores through an ordered rule table.
// Exactly one rule fires; max_signal applies when none of the others do.
type Combiner struct {
	rules         []combinationRule
	maxAdjustment float64
}

// NewCombiner creates a combiner. A non-positive maxAdjustment falls back to
// DefaultMaxAdjustment; values above it are clamped to it.
func NewCombiner(maxAdjustment float64) *Combiner {
	if maxAdjustment <= 0 || maxAdjustment > DefaultMaxAdjustment {
		maxAdjustment = DefaultMaxAdjustment
	}
	return &Combiner{
		maxAdjustment: maxAdjustment,
		rules: []combinationRule{
			{
				name:    RuleNoUrgencyCap,
				applies: func(c, t float64, in Inputs) bool { return in.Temporal.NoUrgency },
				score: func(c, t float64) float64 {
					return math.Min(math.Max(c, t*temporalDamping), noUrgencyCeiling)
				},
			},
			{
				name:    RuleCrisisImmediate,
				applies: func(c, t float64, in Inputs) bool { return c >= 0.5 && t >= 0.8 },
				score:   func(c, t float64) float64 { return c + 0.2*t },
			},
			{
				name:    RuleCrisisNearTerm,
				applies: func(c, t float64, in Inputs) bool { return c >= 0.5 && t >= 0.6 },
				score:   func(c, t float64) float64 { return c + 0.1*t },
			},
			{
				name:    RuleTemporalWithoutCrisis,
				applies: func(c, t float64, in Inputs) bool { return c < 0.3 && t >= 0.8 },
				score:   func(c, t float64) float64 { return t + temporalBonus },
			},
			{
				name:    RuleCrisisOnly,
				applies: func(c, t float64, in Inputs) bool { return c >= 0.5 },
				score:   func(c, t float64) float64 { return c },
			},
		},
	}
}

// Combine runs the rule table, then adds category adjustments. The summed
// adjustments are capped once at maxAdjustment and the result is clamped to
// [0,1]; no individual adjustment is clamped on its own.
func (cb *Combiner) Combine(in Inputs) Combination {
	c, t := in.Crisis.Score, in.Temporal.Score
	out := Combination{Rule: RuleMaxSignal, Adjustments: []Adjustment{}}

	out.Base = math.Max(c, t*temporalDamping)
	for _, r := range cb.rules {
		if r.applies(c, t, in) {
			out.Rule = r.name
			out.Base = r.score(c, t)
			break
		}
	}
	out.Base = clamp(out.Base)

	out.Reasons = append(out.Reasons, "temporal:"+string(in.Temporal.Bucket))
	if in.Crisis.Domain != "" {
		out.Reasons = append(out.Reasons, "crisis:"+string(in.Crisis.Domain))
	}
	out.Reasons = append(out.Reasons, "rule:"+out.Rule)

	if out.Rule == RuleNoUrgencyCap {
		out.Reasons = append(out.Reasons, model.ReasonNoUrgency)
		out.Score = round4(out.Base)
		return out
	}

	out.Adjustments = cb.adjustments(in)
	sum := 0.0
	for _, a := range out.Adjustments {
		sum += a.Amount
		out.Reasons = append(out.Reasons, fmt.Sprintf("adjust:%s", a.Tag))
	}
	if sum > cb.maxAdjustment {
		sum = cb.maxAdjustment
		out.Reasons = append(out.Reasons, "adjust:capped")
	}
	out.Adjusted = round4(sum)
	out.Score = round4(clamp(out.Base + sum))
	return out
}

func (cb *Combiner) adjustments(in Inputs) []Adjustment {
	adj := []Adjustment{}

	if cc, ok := categoryCeiling[in.Category]; ok {
		amount := cc.ceiling / 2
		for _, ds := range in.Crisis.Matched {
			if ds.Domain == cc.domain {
				amount = cc.ceiling
				break
			}
		}
		adj = append(adj, Adjustment{Tag: "category_" + strings.ToLower(in.Category.String()), Amount: amount})
	}

	if len(in.Crisis.Matched) >= 2 {
		adj = append(adj, Adjustment{Tag: "multi_domain", Amount: multiDomainBonus})
	}
	return adj
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
