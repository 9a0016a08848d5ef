package score

import (
	"codeberg.org/mutker/syshealth/internal/scan"
	"codeberg.org/mutker/syshealth/internal/sensors"
)

// computeConfidence measures how trustworthy the collected data is.
// It is evaluated independently from health: a machine can be perfectly
// healthy with barely trustworthy data, and vice versa.
func computeConfidence(blob *scan.Blob, snapshot sensors.Snapshot, collectorErrors []string) ConfidenceModel {
	model := ConfidenceModel{
		BaseScore:       100,
		MissingSignals:  []string{},
		CollectorErrors: append([]string{}, collectorErrors...),
	}
	score := model.BaseScore

	if !snapshot.CPU.TempC.Available() {
		score -= MissingCPUTempPenalty
		model.MissingSignals = append(model.MissingSignals, "CPU temperature unavailable: "+snapshot.CPU.TempC.Reason())
	}

	if snapshot.HasDedicatedGPU() {
		if !snapshot.GPU.TempC.Available() {
			score -= MissingGPUTempPenalty
			model.MissingSignals = append(model.MissingSignals, "GPU temperature unavailable: "+snapshot.GPU.TempC.Reason())
		}
		if !snapshot.GPU.VRAMTotalMB.Available() || !snapshot.GPU.VRAMUsedMB.Available() {
			score -= MissingVRAMPenalty
			model.MissingSignals = append(model.MissingSignals, "VRAM reading unavailable")
		}
	}

	if countersFailed(blob) {
		score -= CountersFailedPenalty
		model.CollectionFailed = true
		model.MissingSignals = append(model.MissingSignals, "performance counter collection empty or failed")
	}

	score -= CollectorErrorPenalty * len(collectorErrors)

	if score < 0 {
		score = 0
	}
	model.ConfidenceScore = score

	switch {
	case score >= ConfidenceReliableFloor:
		model.ConfidenceLevel = ConfidenceReliable
	case score >= ConfidenceMediumFloor:
		model.ConfidenceLevel = ConfidenceMedium
	default:
		model.ConfidenceLevel = ConfidenceLow
	}

	return model
}

// countersFailed reports whether the primary performance-counter
// source is empty, failed or absent.
func countersFailed(blob *scan.Blob) bool {
	status := blob.SectionStatus(scan.SectionPerformanceCounters)
	return status == scan.StatusEmpty || status == scan.StatusFailed
}
