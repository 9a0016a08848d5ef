package score

import (
	"fmt"

	"codeberg.org/mutker/syshealth/internal/scan"
)

// evalStability scores system and application error volume, blue
// screens and the reliability-history crash trend.
func evalStability(ctx evalContext, b *sectionBuilder) {
	events := ctx.blob.Section(scan.SectionEventLogs)

	sysErrs, sysOK := b.inputInt("systemErrors7d", events.Field("systemErrors7d").Int())
	appErrs, appOK := b.inputInt("applicationErrors7d", events.Field("applicationErrors7d").Int())
	if sysOK || appOK {
		total := sysErrs + appErrs
		b.input("combinedErrors7d", fmt.Sprintf("%d", total))
		switch {
		case total > ErrorCountCritical:
			b.apply(RuleErrorsCritical, "Very high error volume over the last 7 days", ErrorCountCriticalPenalty)
			b.force(StatusCritical)
			b.recommend("Review the System and Application event logs for recurring faults")
		case total > ErrorCountDegraded:
			b.apply(RuleErrorsDegraded, "High error volume over the last 7 days", ErrorCountDegradedPenalty)
			b.force(StatusDegraded)
		case total > ErrorCountWarning:
			b.apply(RuleErrorsWarning, "Elevated error volume over the last 7 days", ErrorCountWarningPenalty)
		}
	}

	if bsod, ok := b.inputInt("bsodCount30d", events.Field("bsodCount30d").Int()); ok && bsod > 0 {
		b.apply(RuleBSOD, fmt.Sprintf("%d BSOD event(s) in the last 30 days", bsod), BSODPenalty)
		b.force(StatusCritical)
		b.recommend("Analyze the latest memory dump to identify the faulting driver")
	}

	crashes, ok := b.inputInt("reliabilityCrashCount", ctx.blob.Section(scan.SectionReliabilityHistory).Field("crashCount").Int())
	if ok {
		switch {
		case crashes > CrashCountCritical:
			b.apply(RuleCrashCritical, "Frequent application crashes in reliability history", CrashCountCriticalPenalty)
			b.recommend("Identify the crashing applications in reliability history")
		case crashes > CrashCountDegraded:
			b.apply(RuleCrashDegraded, "Repeated application crashes in reliability history", CrashCountDegradedPenalty)
		case crashes > CrashCountWarning:
			b.apply(RuleCrashWarning, "Occasional application crashes in reliability history", CrashCountWarningPenalty)
		}
	}
}
