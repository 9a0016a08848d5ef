package score

import "codeberg.org/mutker/syshealth/internal/scan"

// evalCPU scores the CPU section from sensor readings, falling back to
// the raw scan for load when the sensor source has no reading. Missing
// data never penalizes health, only confidence.
func evalCPU(ctx evalContext, b *sectionBuilder) {
	if temp, ok := b.inputFloat("cpuTempC", ctx.snapshot.CPU.TempC, "%.1f"); ok {
		switch {
		case temp > CPUTempCriticalC:
			b.apply(RuleCPUTempCritical, "CPU temperature above critical threshold", CPUTempCriticalPenalty)
			b.force(StatusCritical)
			b.recommend("Check CPU cooling: clean heatsink, verify fan operation and thermal paste")
		case temp > CPUTempDegradedC:
			b.apply(RuleCPUTempDegraded, "CPU temperature above degraded threshold", CPUTempDegradedPenalty)
			b.force(StatusDegraded)
			b.recommend("Improve case airflow and inspect CPU cooler")
		case temp > CPUTempWarningC:
			b.apply(RuleCPUTempWarning, "CPU temperature elevated", CPUTempWarningPenalty)
			b.force(StatusWarning)
		}
	}

	load := ctx.snapshot.CPU.LoadPercent
	if !load.Available() {
		load = ctx.blob.Section(scan.SectionCPU).Field("usagePercent").Float()
	}
	if pct, ok := b.inputFloat("cpuLoadPercent", load, "%.1f"); ok {
		switch {
		case pct > CPULoadCriticalPct:
			b.apply(RuleCPULoadCritical, "CPU load critically high", CPULoadCriticalPenalty)
			b.recommend("Identify runaway processes consuming CPU time")
		case pct > CPULoadHighPct:
			b.apply(RuleCPULoadHigh, "CPU load high", CPULoadHighPenalty)
		}
	}
}
