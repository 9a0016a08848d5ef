package score

import (
	"fmt"

	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/scan"
	"codeberg.org/mutker/syshealth/internal/sensors"
)

// evalContext carries the engine inputs into the section evaluators.
// Evaluators read it; they never mutate it.
type evalContext struct {
	blob     *scan.Blob
	snapshot sensors.Snapshot
}

// sectionEvaluator scores one domain in isolation.
type sectionEvaluator func(ctx evalContext, b *sectionBuilder)

// sectionBuilder accumulates evidence, fired rules and recommendations
// for one section, then materializes the SectionScore with its
// invariant: score = 100 - clamp(sum of impacts, 0, 100).
type sectionBuilder struct {
	name    string
	inputs  []RawInput
	rules   []AppliedRule
	actions []string
	forced  Status
	hasData bool
}

func newSectionBuilder(name string) *sectionBuilder {
	return &sectionBuilder{name: name}
}

// input records one evidence pair and marks the section as having data.
func (b *sectionBuilder) input(key, value string) {
	b.inputs = append(b.inputs, RawInput{Key: key, Value: value})
	b.hasData = true
}

// missing records absent evidence without marking the section as
// having data. Missing inputs never penalize health, only confidence.
func (b *sectionBuilder) missing(key, reason string) {
	b.inputs = append(b.inputs, RawInput{Key: key, Value: "unavailable: " + reason})
}

// inputFloat records a numeric metric, routing to input or missing.
func (b *sectionBuilder) inputFloat(key string, v metric.Value[float64], format string) (float64, bool) {
	val, ok := v.Get()
	if !ok {
		b.missing(key, v.Reason())
		return 0, false
	}
	b.input(key, fmt.Sprintf(format, val))

	return val, true
}

// inputInt records an integer metric, routing to input or missing.
func (b *sectionBuilder) inputInt(key string, v metric.Value[int]) (int, bool) {
	val, ok := v.Get()
	if !ok {
		b.missing(key, v.Reason())
		return 0, false
	}
	b.input(key, fmt.Sprintf("%d", val))

	return val, true
}

// apply fires a rule: one firing, one immutable audit record.
func (b *sectionBuilder) apply(ruleID, description string, impact int) {
	b.rules = append(b.rules, AppliedRule{RuleID: ruleID, Description: description, Impact: impact})
}

// force sets the section status explicitly; the worst forced status
// wins over later, milder ones.
func (b *sectionBuilder) force(s Status) {
	if statusRank(s) > statusRank(b.forced) {
		b.forced = s
	}
}

func (b *sectionBuilder) recommend(action string) {
	b.actions = append(b.actions, action)
}

// build materializes the SectionScore. A section without any usable
// evidence is Unknown; it keeps the default score of 100 but the engine
// excludes it from the weighted average entirely.
func (b *sectionBuilder) build(weight float64) SectionScore {
	total := 0
	for _, r := range b.rules {
		total += r.Impact
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	score := 100 - total

	status := StatusUnknown
	switch {
	case !b.hasData:
		status = StatusUnknown
	case b.forced != "":
		status = b.forced
	default:
		status = statusForScore(score)
	}

	return SectionScore{
		SectionName:        b.name,
		Weight:             weight,
		Score:              score,
		Status:             status,
		RawInputs:          b.inputs,
		AppliedRules:       b.rules,
		RecommendedActions: b.actions,
	}
}
