package collectors

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	ioLatencyName   = "ioLatency"
	ioLatencySource = "PerfCounter_PhysicalDisk"

	diskTransferCounter = `\PhysicalDisk(_Total)\Avg. Disk sec/Transfer`

	ioSampleCount    = 5
	ioSampleInterval = 500 * time.Millisecond

	// Sustained latency above 25ms per transfer suggests a saturated or
	// failing disk path.
	highLatencyThresholdMS = 25.0

	secondsToMillis = 1000.0
)

// IOLatencyInfo is the ioLatency signal payload.
type IOLatencyInfo struct {
	AvgLatencyMS metric.Value[float64] `json:"avgLatencyMS"`
	MaxLatencyMS metric.Value[float64] `json:"maxLatencyMS"`
	SamplesTaken int                   `json:"samplesTaken"`
}

// IOLatency samples disk transfer latency over a bounded loop.
type IOLatency struct {
	counters CounterSampler
}

func NewIOLatency(counters CounterSampler) *IOLatency {
	return &IOLatency{counters: counters}
}

func (c *IOLatency) Name() string                  { return ioLatencyName }
func (c *IOLatency) DefaultTimeout() time.Duration { return 20 * time.Second }
func (c *IOLatency) Priority() int                 { return 30 }

func (c *IOLatency) Collect(ctx context.Context) signal.Result {
	return safeCollect(ioLatencyName, ioLatencySource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *IOLatency) collect(ctx context.Context) signal.Result {
	var (
		samples   []float64
		cancelled bool
	)

	for i := 0; i < ioSampleCount; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				cancelled = true
			case <-time.After(ioSampleInterval):
			}
			if cancelled {
				break
			}
		}

		v, err := c.counters.Sample(ctx, diskTransferCounter)
		if err != nil {
			continue
		}
		samples = append(samples, v*secondsToMillis)
	}

	if len(samples) == 0 {
		return signal.Unavailable(ioLatencyName, "disk latency counter produced no samples", ioLatencySource)
	}

	maxMS := samples[0]
	for _, s := range samples {
		if s > maxMS {
			maxMS = s
		}
	}

	info := IOLatencyInfo{
		AvgLatencyMS: average(samples, "no latency samples"),
		MaxLatencyMS: metric.Some(maxMS),
		SamplesTaken: len(samples),
	}

	quality := signal.QualityOK
	avg, _ := info.AvgLatencyMS.Get()
	switch {
	case avg > highLatencyThresholdMS:
		quality = signal.QualitySuspect
	case cancelled, len(samples) < ioSampleCount-1:
		quality = signal.QualityPartial
	}

	result := signal.Ok(ioLatencyName, info, ioLatencySource, quality)
	if cancelled {
		result = result.WithNotes(fmt.Sprintf("cancelled after %d of %d samples", len(samples), ioSampleCount))
	}

	return result
}
