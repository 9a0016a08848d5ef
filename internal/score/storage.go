package score

import (
	"fmt"

	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/scan"
)

// evalStorage scores the system volume's free space, disk temperatures
// and SMART counters. Disk temperature prefers the live sensor reading
// and falls back to the raw scan.
func evalStorage(ctx evalContext, b *sectionBuilder) {
	vol := ctx.blob.Section(scan.SectionStorage).Field("systemVolume")

	freePct, pctOK := b.inputFloat("systemVolumeFreePercent", vol.Field("freePercent").Float(), "%.1f")
	freeGB, gbOK := b.inputFloat("systemVolumeFreeGB", vol.Field("freeGB").Float(), "%.1f")

	// Either unit is enough evidence on its own; a volume that only
	// reports absolute free space still trips the degraded rule.
	switch {
	case pctOK && freePct < StorageFreeCriticalPct:
		b.apply(RuleStorageFreeCritical, "System volume critically low on free space", StorageFreeCriticalPenalty)
		b.force(StatusCritical)
		b.recommend("Free up disk space immediately: temp files, old downloads, unused applications")
	case (pctOK && freePct < StorageFreeDegradedPct) || (gbOK && freeGB < StorageFreeDegradedGB):
		b.apply(RuleStorageFreeDegraded, "System volume low on free space", StorageFreeDegradedPenalty)
		b.force(StatusDegraded)
		b.recommend("Free up disk space on the system volume")
	case pctOK && freePct < StorageFreeWarningPct:
		b.apply(RuleStorageFreeWarning, "System volume free space shrinking", StorageFreeWarningPenalty)
		b.force(StatusWarning)
	}

	if temp, ok := b.inputFloat("maxDiskTempC", maxDiskTemp(ctx), "%.1f"); ok {
		switch {
		case temp > DiskTempCriticalC:
			b.apply(RuleDiskTempCritical, "Disk temperature above critical threshold", DiskTempCriticalPenalty)
			b.recommend("Check drive cooling and case airflow")
		case temp > DiskTempWarningC:
			b.apply(RuleDiskTempWarning, "Disk temperature elevated", DiskTempWarningPenalty)
		}
	}

	smart := ctx.blob.Section(scan.SectionSmartDetails)
	if pending, ok := b.inputInt("pendingSectors", smart.Field("pendingSectors").Int()); ok {
		switch {
		case pending > SMARTPendingCritical:
			b.apply(RuleSMARTPendingCritical, fmt.Sprintf("%d pending sectors, imminent disk failure risk", pending), SMARTPendingCriticalPenalty)
			b.force(StatusCritical)
			b.recommend("Back up data now and plan drive replacement")
		case pending > 0:
			b.apply(RuleSMARTPending, fmt.Sprintf("%d pending sectors detected", pending), SMARTPendingPenalty)
			b.recommend("Back up important data and monitor SMART counters")
		}
	}
	if realloc, ok := b.inputInt("reallocatedSectors", smart.Field("reallocatedSectors").Int()); ok {
		switch {
		case realloc > SMARTReallocCritical:
			b.apply(RuleSMARTReallocCritical, fmt.Sprintf("%d reallocated sectors, disk is failing", realloc), SMARTReallocCriticalPenalty)
			b.force(StatusCritical)
			b.recommend("Back up data now and replace the drive")
		case realloc > 0:
			b.apply(RuleSMARTRealloc, fmt.Sprintf("%d reallocated sectors detected", realloc), SMARTReallocPenalty)
			b.recommend("Back up important data and monitor SMART counters")
		}
	}
}

// maxDiskTemp returns the hottest disk reading, preferring live
// sensors over the raw scan.
func maxDiskTemp(ctx evalContext) metric.Value[float64] {
	best := metric.None[float64]("no disk temperature source available")
	found := false
	maxT := 0.0

	for _, d := range ctx.snapshot.Disks {
		if t, ok := d.TempC.Get(); ok {
			if !found || t > maxT {
				maxT = t
			}
			found = true
		}
	}
	if found {
		return metric.Some(maxT)
	}

	for _, d := range ctx.blob.Section(scan.SectionStorage).Field("disks").Each() {
		if t, ok := d.Field("tempC").Float().Get(); ok {
			if !found || t > maxT {
				maxT = t
			}
			found = true
		}
	}
	if found {
		return metric.Some(maxT)
	}

	return best
}
