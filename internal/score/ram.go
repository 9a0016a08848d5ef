package score

import (
	"fmt"

	"codeberg.org/mutker/syshealth/internal/scan"
)

// evalRAM scores memory pressure from the raw scan's Memory section.
func evalRAM(ctx evalContext, b *sectionBuilder) {
	mem := ctx.blob.Section(scan.SectionMemory)

	if total, ok := mem.Field("totalGB").Float().Get(); ok {
		b.input("totalGB", fmt.Sprintf("%.1f", total))
	}

	usage, ok := b.inputFloat("usagePercent", mem.Field("usagePercent").Float(), "%.1f")
	if !ok {
		return
	}

	switch {
	case usage > RAMSaturationPct:
		b.apply(RuleRAMSaturation, "Memory saturated, swap thrashing likely", RAMSaturationPenalty)
		b.force(StatusCritical)
		b.recommend("Close memory-heavy applications or add RAM")
	case usage > RAMDegradedPct:
		b.apply(RuleRAMDegraded, "Memory usage high, swap active", RAMDegradedPenalty)
		b.force(StatusDegraded)
		b.recommend("Review startup programs and background services")
	case usage > RAMWarningPct:
		b.apply(RuleRAMWarning, "Memory usage elevated", RAMWarningPenalty)
		b.force(StatusWarning)
	}
}
