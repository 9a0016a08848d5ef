package collectors

import (
	"context"
	"time"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	powerLimitName   = "powerLimits"
	powerLimitSource = "EventLog_System"

	processorPerfCounter = `\Processor Information(_Total)\% Processor Performance`

	powerLimitLookbackWindow = 7 * 24 * time.Hour

	// Performance held under 90% of nominal while limit events are
	// present indicates active power capping.
	cappedPerformancePct = 90.0
)

// PowerLimitInfo is the powerLimits signal payload.
type PowerLimitInfo struct {
	LimitEvents7d        int                   `json:"limitEvents7d"`
	ProcessorPerformance metric.Value[float64] `json:"processorPerformancePercent"`
}

// PowerLimit detects firmware or policy power capping of the CPU.
type PowerLimit struct {
	events   EventQuerier
	counters CounterSampler
	now      func() time.Time
}

func NewPowerLimit(events EventQuerier, counters CounterSampler) *PowerLimit {
	return &PowerLimit{events: events, counters: counters, now: time.Now}
}

func (c *PowerLimit) Name() string                  { return powerLimitName }
func (c *PowerLimit) DefaultTimeout() time.Duration { return 15 * time.Second }
func (c *PowerLimit) Priority() int                 { return 80 }

func (c *PowerLimit) Collect(ctx context.Context) signal.Result {
	return safeCollect(powerLimitName, powerLimitSource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *PowerLimit) collect(ctx context.Context) signal.Result {
	since := c.now().Add(-powerLimitLookbackWindow)

	events, evErr := c.events.Query(ctx, logSystem, since)
	if evErr != nil && errors.HasCode(evErr, errors.ErrAccessDenied) {
		return signal.Unavailable(powerLimitName, accessDeniedReason("power limit events"), powerLimitSource)
	}

	perf := metric.None[float64]("processor performance counter unavailable")
	if v, err := c.counters.Sample(ctx, processorPerfCounter); err == nil {
		perf = metric.Some(v)
	}

	if evErr != nil && !perf.Available() {
		return signal.Unavailable(powerLimitName,
			"no power limit evidence obtainable: events: "+evErr.Error(), powerLimitSource)
	}

	info := PowerLimitInfo{
		LimitEvents7d:        countEvents(events, providerProcessorPower, firmwareThrottleEventID, powerThrottleEventID),
		ProcessorPerformance: perf,
	}

	quality := signal.QualityOK
	perfVal, hasPerf := perf.Get()
	switch {
	case info.LimitEvents7d > 0 && hasPerf && perfVal < cappedPerformancePct:
		quality = signal.QualitySuspect
	case !hasPerf, evErr != nil:
		quality = signal.QualityPartial
	}

	return signal.Ok(powerLimitName, info, powerLimitSource, quality)
}
