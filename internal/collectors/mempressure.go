package collectors

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	memPressureName   = "memoryPressure"
	memPressureSource = "PerfCounter_Memory"

	committedPctCounter = `\Memory\% Committed Bytes In Use`
	availableMBCounter  = `\Memory\Available MBytes`

	memSampleCount    = 5
	memSampleInterval = 500 * time.Millisecond

	// Exact thresholds for suspected pressure.
	highCommitThresholdPct  = 90.0
	lowAvailableThresholdMB = 500.0
)

// MemPressureInfo is the memoryPressure signal payload.
type MemPressureInfo struct {
	AvgCommittedPercent metric.Value[float64] `json:"avgCommittedPercent"`
	AvgAvailableMB      metric.Value[float64] `json:"avgAvailableMB"`
	SamplesTaken        int                   `json:"samplesTaken"`
}

// MemPressure samples commit charge and available memory over a short
// bounded loop.
type MemPressure struct {
	counters CounterSampler
}

func NewMemPressure(counters CounterSampler) *MemPressure {
	return &MemPressure{counters: counters}
}

func (c *MemPressure) Name() string                  { return memPressureName }
func (c *MemPressure) DefaultTimeout() time.Duration { return 15 * time.Second }
func (c *MemPressure) Priority() int                 { return 20 }

func (c *MemPressure) Collect(ctx context.Context) signal.Result {
	return safeCollect(memPressureName, memPressureSource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *MemPressure) collect(ctx context.Context) signal.Result {
	var (
		commit, avail []float64
		cancelled     bool
	)

	for i := 0; i < memSampleCount; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				cancelled = true
			case <-time.After(memSampleInterval):
			}
			if cancelled {
				break
			}
		}

		if v, err := c.counters.Sample(ctx, committedPctCounter); err == nil {
			commit = append(commit, v)
		}
		if v, err := c.counters.Sample(ctx, availableMBCounter); err == nil {
			avail = append(avail, v)
		}
	}

	if len(commit) == 0 && len(avail) == 0 {
		return signal.Unavailable(memPressureName, "memory counters produced no samples", memPressureSource)
	}

	info := MemPressureInfo{
		AvgCommittedPercent: average(commit, "commit counter produced no samples"),
		AvgAvailableMB:      average(avail, "available-memory counter produced no samples"),
		SamplesTaken:        max(len(commit), len(avail)),
	}

	quality := signal.QualityOK
	avgCommit, hasCommit := info.AvgCommittedPercent.Get()
	avgAvail, hasAvail := info.AvgAvailableMB.Get()
	switch {
	case hasCommit && avgCommit > highCommitThresholdPct,
		hasAvail && avgAvail < lowAvailableThresholdMB:
		quality = signal.QualitySuspect
	case cancelled, !hasCommit, !hasAvail:
		quality = signal.QualityPartial
	}

	result := signal.Ok(memPressureName, info, memPressureSource, quality)
	if cancelled {
		result = result.WithNotes(fmt.Sprintf("cancelled after %d of %d samples", info.SamplesTaken, memSampleCount))
	}

	return result
}

func average(samples []float64, emptyReason string) metric.Value[float64] {
	if len(samples) == 0 {
		return metric.None[float64](emptyReason)
	}

	sum := 0.0
	for _, s := range samples {
		sum += s
	}

	return metric.Some(sum / float64(len(samples)))
}
