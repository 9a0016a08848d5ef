package score

import (
	"math"
	"strings"
	"time"

	"codeberg.org/mutker/syshealth/internal/scan"
	"codeberg.org/mutker/syshealth/internal/sensors"
)

// evaluators maps each section to its rule set, in SectionOrder.
var evaluators = map[string]sectionEvaluator{
	SectionCPU:       evalCPU,
	SectionGPU:       evalGPU,
	SectionRAM:       evalRAM,
	SectionStorage:   evalStorage,
	SectionOS:        evalOS,
	SectionSecurity:  evalSecurity,
	SectionStability: evalStability,
	SectionDrivers:   evalDrivers,
	SectionNetwork:   evalNetwork,
	SectionDevices:   evalDevices,
	SectionUpdates:   evalUpdates,
}

// ComputeScore is the single entry point of the scoring engine: a pure
// function from the raw scan blob, the sensor snapshot and the
// collector error list to a complete report. It performs no I/O and
// never fails; a panicking section evaluator degrades that section to
// Unknown instead of aborting the report.
func ComputeScore(blob *scan.Blob, snapshot sensors.Snapshot, collectorErrors []string) Report {
	ctx := evalContext{blob: blob, snapshot: snapshot}
	weights := Weights()

	sections := make([]SectionScore, 0, len(SectionOrder))
	for _, name := range SectionOrder {
		sections = append(sections, evaluateSection(ctx, name, weights[name]))
	}

	global := weightedAverage(sections)

	penalties := criticalPenalties(sections)
	for _, p := range penalties {
		global -= float64(p.Impact)
	}

	score := int(math.Round(global))
	score, capApplied := applyHardCaps(score, sections)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	confidence := computeConfidence(blob, snapshot, collectorErrors)
	complete, failureReason := collectionStatus(confidence, collectorErrors)

	return Report{
		ComputedAt:              time.Now(),
		GlobalHealthScore:       score,
		GlobalHealthGrade:       Grade(score),
		GlobalHealthLabel:       Label(score),
		HardCapApplied:          capApplied,
		Weights:                 weights,
		Sections:                sections,
		CriticalPenalties:       penalties,
		Confidence:              confidence,
		CollectionComplete:      complete,
		CollectionFailureReason: failureReason,
	}
}

// evaluateSection runs one evaluator with panic isolation. A section
// whose rules blow up reports Unknown rather than killing the report.
func evaluateSection(ctx evalContext, name string, weight float64) (section SectionScore) {
	b := newSectionBuilder(name)

	defer func() {
		if r := recover(); r != nil {
			fallback := newSectionBuilder(name)
			fallback.missing("evaluation", "section evaluator failed unexpectedly")
			section = fallback.build(weight)
		}
	}()

	if ev, ok := evaluators[name]; ok {
		ev(ctx, b)
	}

	return b.build(weight)
}

// weightedAverage computes the global score over non-Unknown sections.
// A section with zero evidence must not drag the average toward zero,
// so Unknown sections are excluded from numerator and denominator. With
// no scoreable section at all the machine is presumed healthy; the
// confidence model carries the doubt.
func weightedAverage(sections []SectionScore) float64 {
	sum := 0.0
	totalWeight := 0.0
	for _, s := range sections {
		if s.Status == StatusUnknown {
			continue
		}
		sum += float64(s.Score) * s.Weight
		totalWeight += s.Weight
	}
	if totalWeight == 0 {
		return 100
	}

	return sum / totalWeight
}

// criticalPenalties is a reserved extension point: penalties applied
// after the weighted mean and before hard caps. No rule populates it
// today, but the application order is part of the contract.
func criticalPenalties(_ []SectionScore) []AppliedRule {
	return []AppliedRule{}
}

// applyHardCaps enforces catastrophic ceilings. A cap only applies
// when strictly below the current score, and caps are checked in the
// order Security, Stability, Storage so the lowest applicable cap
// ends up recorded.
func applyHardCaps(score int, sections []SectionScore) (int, *string) {
	var applied *string

	caps := []struct {
		cap    int
		reason string
		fired  bool
	}{
		{SecurityHardCap, "Critical security finding: score capped at 40", anyRuleFired(sections, RuleDefenderOff, RuleMalwareThreat)},
		{BSODHardCap, "BSOD detected in the last 30 days: score capped at 50", anyRuleFired(sections, RuleBSOD)},
		{SMARTHardCap, "Critical SMART finding, disk failure risk: score capped at 35", anyRuleFired(sections, RuleSMARTPendingCritical, RuleSMARTReallocCritical)},
	}

	for i := range caps {
		if caps[i].fired && caps[i].cap < score {
			score = caps[i].cap
			reason := caps[i].reason
			applied = &reason
		}
	}

	return score, applied
}

// anyRuleFired reports whether any of the given rules fired in any
// section.
func anyRuleFired(sections []SectionScore, ruleIDs ...string) bool {
	for _, s := range sections {
		for _, r := range s.AppliedRules {
			for _, id := range ruleIDs {
				if r.RuleID == id {
					return true
				}
			}
		}
	}

	return false
}

// collectionStatus derives completeness from the counter source and
// the collector error list, joining all contributing reasons.
func collectionStatus(confidence ConfidenceModel, collectorErrors []string) (bool, *string) {
	var reasons []string
	if confidence.CollectionFailed {
		reasons = append(reasons, "primary performance-counter source empty or failed")
	}
	reasons = append(reasons, collectorErrors...)

	if len(reasons) == 0 {
		return true, nil
	}

	joined := strings.Join(reasons, "; ")

	return false, &joined
}
