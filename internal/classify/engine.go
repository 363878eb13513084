// Package classify detects need intents in a transcript and selects one
// primary category.
//
// Every category has an independent detector. When more than one fires, an
// ordered rule table picks the primary category: rules are evaluated top to
// bottom, the first rule that applies wins, and the highest-confidence rule
// at the end always applies.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

const (
	noEvidenceConfidence = 0.3
	jobLossReach         = 50
	workRepairRatio      = 1.5
	minWorkHits          = 2
)

// Rule names recorded in CategoryAssessment.Rule
const (
	RuleNoIntents             = "no_intents"
	RuleSingleIntent          = "single_intent"
	RuleSafetyViolence        = "safety_violence"
	RuleMedicalEmergency      = "medical_emergency"
	RuleSafetyWithoutViolence = "safety_without_violence"
	RuleTransportVsEmployment = "transport_vs_employment"
	RuleEvictionHousing       = "eviction_housing"
	RuleJobLossRootCause      = "job_loss_root_cause"
	RuleHighestConfidence     = "highest_confidence"
)

// Engine is the category engine. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	lib   *patterns.Library
	rules []rule
}

// rule inspects the evidence and either selects a category or passes
type rule struct {
	name  string
	apply func(ev *evidence) (model.Category, bool)
}

// evidence is everything the disambiguation rules look at for one call
type evidence struct {
	text      string
	intents   map[model.Category]model.Intent
	remaining []model.Intent // Candidates after SAFETY-without-violence removal
	edges     []model.CauseEffectEdge
	violence  bool
}

func (ev *evidence) has(c model.Category) bool {
	for _, in := range ev.remaining {
		if in.Category == c {
			return true
		}
	}
	return false
}

// NewEngine creates a category engine over the shared pattern library
func NewEngine(lib *patterns.Library) *Engine {
	e := &Engine{lib: lib}
	e.rules = []rule{
		{RuleSafetyViolence, e.safetyViolence},
		{RuleTransportVsEmployment, e.transportVsEmployment},
		{RuleEvictionHousing, e.evictionHousing},
		{RuleJobLossRootCause, e.jobLossRootCause},
		{RuleMedicalEmergency, e.medicalEmergency},
		{RuleSafetyWithoutViolence, e.singleRemaining},
		{RuleHighestConfidence, e.highestConfidence},
	}
	return e
}

// Assess detects all intents and resolves the primary category.
// Absent evidence resolves to OTHER; the result is never unset.
func (e *Engine) Assess(text string) model.CategoryAssessment {
	intents := e.detect(text)
	edges := e.causeEffect(text, intents)

	assessment := model.CategoryAssessment{
		Primary:    model.CategoryOther,
		AllIntents: intents,
		Edges:      edges,
		Reasoning:  []string{},
	}
	for _, in := range intents {
		assessment.Reasoning = append(assessment.Reasoning,
			fmt.Sprintf("detected %s (%.2f): %s", in.Category, in.Confidence, strings.Join(in.Signals, ", ")))
	}
	for _, edge := range edges {
		assessment.Reasoning = append(assessment.Reasoning,
			fmt.Sprintf("cause-effect %s -> %s: %q", edge.From, edge.To, edge.Phrase))
	}

	switch len(intents) {
	case 0:
		assessment.Confidence = noEvidenceConfidence
		assessment.Rule = RuleNoIntents
		assessment.Reasoning = append(assessment.Reasoning, "no category signals, defaulting to OTHER")
		return assessment
	case 1:
		assessment.Primary = intents[0].Category
		assessment.Confidence = intents[0].Confidence
		assessment.Rule = RuleSingleIntent
		return assessment
	}

	ev := e.evidence(text, intents, edges)
	if !ev.violence && len(ev.remaining) < len(intents) {
		assessment.Reasoning = append(assessment.Reasoning, "SAFETY signals without violence phrasing, not routing to SAFETY")
	}
	for _, r := range e.rules {
		category, ok := r.apply(ev)
		if !ok {
			continue
		}
		assessment.Primary = category
		assessment.Confidence = ev.intents[category].Confidence
		assessment.Rule = r.name
		assessment.Reasoning = append(assessment.Reasoning, fmt.Sprintf("rule %s selected %s", r.name, category))
		break
	}
	return assessment
}

// detect runs every category detector independently. Intents come back
// sorted by confidence, ties in declaration order.
func (e *Engine) detect(text string) []model.Intent {
	intents := []model.Intent{}
	for _, table := range e.lib.Categories {
		var signals []string
		for _, sig := range table.Signals {
			if sig.Re.MatchString(text) {
				signals = append(signals, sig.ID)
			}
		}
		if len(signals) == 0 {
			continue
		}
		sort.Strings(signals)
		intents = append(intents, model.Intent{
			Category:   table.Category,
			Confidence: table.Confidence,
			Signals:    signals,
		})
	}
	sort.SliceStable(intents, func(i, j int) bool {
		if intents[i].Confidence != intents[j].Confidence {
			return intents[i].Confidence > intents[j].Confidence
		}
		return intents[i].Category < intents[j].Category
	})
	return intents
}

// causeEffect records an edge for each causal phrasing whose two categories
// were both detected
func (e *Engine) causeEffect(text string, intents []model.Intent) []model.CauseEffectEdge {
	present := make(map[model.Category]bool, len(intents))
	for _, in := range intents {
		present[in.Category] = true
	}
	edges := []model.CauseEffectEdge{}
	for _, ce := range e.lib.CauseEffect {
		if !present[ce.From] || !present[ce.To] {
			continue
		}
		if phrase := ce.Re.FindString(text); phrase != "" {
			edges = append(edges, model.CauseEffectEdge{From: ce.From, To: ce.To, Phrase: phrase})
		}
	}
	return edges
}

func (e *Engine) evidence(text string, intents []model.Intent, edges []model.CauseEffectEdge) *evidence {
	ev := &evidence{
		text:     text,
		intents:  make(map[model.Category]model.Intent, len(intents)),
		edges:    edges,
		violence: e.lib.Disambiguation.Violence.MatchString(text),
	}
	for _, in := range intents {
		ev.intents[in.Category] = in
		// Threat-of-eviction phrasing trips the SAFETY detector; without
		// violence words it must compete as something else
		if in.Category == model.CategorySafety && !ev.violence {
			continue
		}
		ev.remaining = append(ev.remaining, in)
	}
	return ev
}

func (e *Engine) safetyViolence(ev *evidence) (model.Category, bool) {
	if ev.violence && ev.has(model.CategorySafety) {
		return model.CategorySafety, true
	}
	return model.CategoryOther, false
}

// medicalEmergency settles HEALTHCARE vs SAFETY: it applies only when SAFETY
// fired without violence phrasing
func (e *Engine) medicalEmergency(ev *evidence) (model.Category, bool) {
	if _, safety := ev.intents[model.CategorySafety]; !safety || ev.violence {
		return model.CategoryOther, false
	}
	if ev.has(model.CategoryHealthcare) && e.lib.Disambiguation.MedicalEmergency.MatchString(ev.text) {
		return model.CategoryHealthcare, true
	}
	return model.CategoryOther, false
}

func (e *Engine) singleRemaining(ev *evidence) (model.Category, bool) {
	if len(ev.remaining) == 1 {
		return ev.remaining[0].Category, true
	}
	return model.CategoryOther, false
}

// transportVsEmployment flips to EMPLOYMENT only on clearly work-centred
// stories: more than 1.5x as many work hits as repair hits and at least two
func (e *Engine) transportVsEmployment(ev *evidence) (model.Category, bool) {
	if !ev.has(model.CategoryTransportation) || !ev.has(model.CategoryEmployment) {
		return model.CategoryOther, false
	}
	work := len(e.lib.Disambiguation.WorkWords.FindAllStringIndex(ev.text, -1))
	repair := len(e.lib.Disambiguation.RepairWords.FindAllStringIndex(ev.text, -1))
	if float64(work) > workRepairRatio*float64(repair) && work >= minWorkHits {
		return model.CategoryEmployment, true
	}
	return model.CategoryTransportation, true
}

func (e *Engine) evictionHousing(ev *evidence) (model.Category, bool) {
	if ev.has(model.CategoryEmployment) && ev.has(model.CategoryHousing) &&
		e.lib.Disambiguation.Eviction.MatchString(ev.text) {
		return model.CategoryHousing, true
	}
	return model.CategoryOther, false
}

// jobLossRootCause picks EMPLOYMENT when job-loss phrasing is followed
// closely by rent or housing words
func (e *Engine) jobLossRootCause(ev *evidence) (model.Category, bool) {
	if !ev.has(model.CategoryEmployment) || !ev.has(model.CategoryHousing) {
		return model.CategoryOther, false
	}
	for _, loc := range e.lib.Disambiguation.JobLoss.FindAllStringIndex(ev.text, -1) {
		end := loc[1] + jobLossReach
		if end > len(ev.text) {
			end = len(ev.text)
		}
		if e.lib.Disambiguation.HousingCost.MatchString(ev.text[loc[1]:end]) {
			return model.CategoryEmployment, true
		}
	}
	return model.CategoryOther, false
}

// highestConfidence always applies. Ties go to the root of a cause-effect
// edge, then to declaration order.
func (e *Engine) highestConfidence(ev *evidence) (model.Category, bool) {
	roots := make(map[model.Category]bool)
	for _, edge := range ev.edges {
		roots[edge.From] = true
	}
	best := ev.remaining[0]
	for _, in := range ev.remaining[1:] {
		switch {
		case in.Confidence > best.Confidence:
			best = in
		case in.Confidence == best.Confidence && roots[in.Category] && !roots[best.Category]:
			best = in
		}
	}
	return best.Category, true
}
