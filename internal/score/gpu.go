package score

// evalGPU scores the GPU section from sensor readings. Machines
// without a dedicated GPU get a forced healthy section with an
// informational rule instead of an Unknown gap.
func evalGPU(ctx evalContext, b *sectionBuilder) {
	if !ctx.snapshot.HasDedicatedGPU() {
		b.input("gpu", "no dedicated GPU detected")
		b.apply(RuleGPUNone, "No dedicated GPU detected, integrated graphics assumed", 0)
		b.force(StatusOK)

		return
	}

	gpu := ctx.snapshot.GPU
	if name, ok := gpu.Name.Get(); ok {
		b.input("gpuName", name)
	}

	if temp, ok := b.inputFloat("gpuTempC", gpu.TempC, "%.1f"); ok {
		switch {
		case temp > GPUTempCriticalC:
			b.apply(RuleGPUTempCritical, "GPU temperature above critical threshold", GPUTempCriticalPenalty)
			b.force(StatusCritical)
			b.recommend("Check GPU cooling: dust, fan curve, case airflow")
		case temp > GPUTempDegradedC:
			b.apply(RuleGPUTempDegraded, "GPU temperature above degraded threshold", GPUTempDegradedPenalty)
			b.force(StatusDegraded)
		case temp > GPUTempWarningC:
			b.apply(RuleGPUTempWarning, "GPU temperature elevated", GPUTempWarningPenalty)
		}
	}

	if load, ok := b.inputFloat("gpuLoadPercent", gpu.LoadPercent, "%.1f"); ok {
		if load > GPULoadSustainedPct {
			b.apply(RuleGPULoadHigh, "GPU load sustained near saturation", GPULoadPenalty)
		}
	}

	total, totalOK := b.inputFloat("vramTotalMB", gpu.VRAMTotalMB, "%.0f")
	used, usedOK := b.inputFloat("vramUsedMB", gpu.VRAMUsedMB, "%.0f")
	if totalOK && usedOK && total > 0 {
		pct := used / total * 100
		switch {
		case pct > GPUVRAMCriticalPct:
			b.apply(RuleGPUVRAMCritical, "VRAM usage critically high", GPUVRAMCriticalPenalty)
			b.recommend("Close GPU-heavy applications or lower texture settings")
		case pct > GPUVRAMHighPct:
			b.apply(RuleGPUVRAMHigh, "VRAM usage high", GPUVRAMHighPenalty)
		}
	}
}
