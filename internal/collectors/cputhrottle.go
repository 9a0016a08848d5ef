package collectors

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	cpuThrottleName   = "cpuThrottle"
	cpuThrottleSource = "PerfCounter_Processor"

	maxFrequencyCounter = `\Processor Information(_Total)\% of Maximum Frequency`

	providerProcessorPower = "Microsoft-Windows-Kernel-Processor-Power"
	providerKernelThermal  = "Microsoft-Windows-Kernel-Thermal"

	// Firmware/power throttle notifications.
	firmwareThrottleEventID = 37
	powerThrottleEventID    = 55

	// Exact thresholds: 5 samples at 200ms, first discarded; suspect on
	// 3+ throttle events in 7 days, any thermal event, or average
	// frequency below 85% of maximum.
	throttleSampleCount    = 5
	throttleSampleInterval = 200 * time.Millisecond
	throttleEventThreshold = 3
	minHealthyFrequencyPct = 85.0
	throttleLookbackWindow = 7 * 24 * time.Hour
)

// CPUThrottleInfo is the cpuThrottle signal payload.
type CPUThrottleInfo struct {
	AvgFrequencyPercent metric.Value[float64] `json:"avgFrequencyPercent"`
	ThrottleEvents7d    int                   `json:"throttleEvents7d"`
	ThermalEvents7d     int                   `json:"thermalEvents7d"`
	SamplesTaken        int                   `json:"samplesTaken"`
}

// CPUThrottle detects sustained frequency capping from firmware, power
// or thermal pressure.
type CPUThrottle struct {
	events   EventQuerier
	counters CounterSampler
	now      func() time.Time
}

func NewCPUThrottle(events EventQuerier, counters CounterSampler) *CPUThrottle {
	return &CPUThrottle{events: events, counters: counters, now: time.Now}
}

func (c *CPUThrottle) Name() string                  { return cpuThrottleName }
func (c *CPUThrottle) DefaultTimeout() time.Duration { return 15 * time.Second }
func (c *CPUThrottle) Priority() int                 { return 10 }

func (c *CPUThrottle) Collect(ctx context.Context) signal.Result {
	return safeCollect(cpuThrottleName, cpuThrottleSource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *CPUThrottle) collect(ctx context.Context) signal.Result {
	since := c.now().Add(-throttleLookbackWindow)

	events, evErr := c.events.Query(ctx, logSystem, since)
	if evErr != nil && errors.HasCode(evErr, errors.ErrAccessDenied) {
		return signal.Unavailable(cpuThrottleName, accessDeniedReason("processor power events"), "EventLog_System")
	}

	samples, cancelled := c.sampleFrequency(ctx)

	avgFreq := metric.None[float64]("frequency counter produced no samples")
	if len(samples) > 0 {
		sum := 0.0
		for _, s := range samples {
			sum += s
		}
		avgFreq = metric.Some(sum / float64(len(samples)))
	}

	if evErr != nil && len(samples) == 0 {
		return signal.Unavailable(cpuThrottleName,
			fmt.Sprintf("no throttle evidence obtainable: events: %v; counters unavailable", evErr),
			cpuThrottleSource)
	}

	info := CPUThrottleInfo{
		AvgFrequencyPercent: avgFreq,
		ThrottleEvents7d:    countEvents(events, providerProcessorPower, firmwareThrottleEventID, powerThrottleEventID),
		ThermalEvents7d:     countEvents(events, providerKernelThermal),
		SamplesTaken:        len(samples),
	}

	quality := signal.QualityOK
	avg, avgOK := avgFreq.Get()
	switch {
	case info.ThrottleEvents7d >= throttleEventThreshold,
		info.ThermalEvents7d > 0,
		avgOK && avg < minHealthyFrequencyPct:
		quality = signal.QualitySuspect
	case cancelled, !avgOK, evErr != nil:
		quality = signal.QualityPartial
	}

	result := signal.Ok(cpuThrottleName, info, cpuThrottleSource, quality)
	if cancelled {
		result = result.WithNotes(fmt.Sprintf("cancelled after %d of %d samples", len(samples), throttleSampleCount-1))
	} else if evErr != nil {
		result = result.WithNotes("event log unavailable, counter samples only")
	}

	return result
}

// sampleFrequency polls the frequency counter, discarding the first
// sample (counters need a priming read). Cancellation between samples
// yields the partial set gathered so far.
func (c *CPUThrottle) sampleFrequency(ctx context.Context) (samples []float64, cancelled bool) {
	for i := 0; i < throttleSampleCount; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return samples, true
			case <-time.After(throttleSampleInterval):
			}
		}

		v, err := c.counters.Sample(ctx, maxFrequencyCounter)
		if err != nil {
			continue
		}
		if i == 0 {
			continue // priming read
		}
		samples = append(samples, v)
	}

	return samples, false
}
