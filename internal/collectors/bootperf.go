package collectors

import (
	"context"
	"strconv"
	"time"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	bootPerfName   = "bootPerformance"
	bootPerfSource = "EventLog_Diagnostics-Performance"

	bootDurationEventID = 100
	// IDs 101-110 mark individual boot degradation causes.
	bootDegradationFirstID = 101
	bootDegradationLastID  = 110

	bootLookbackWindow = 30 * 24 * time.Hour

	// Exact thresholds: a boot over two minutes or more than three
	// degradation events in 30 days is suspect.
	slowBootThresholdMS      = 120_000
	bootDegradationThreshold = 3

	// Duration field in boot events.
	bootTimeDataKey = "BootTimeMS"
)

// BootPerfInfo is the bootPerformance signal payload.
type BootPerfInfo struct {
	LastBootDurationMS  metric.Value[int] `json:"lastBootDurationMS"`
	DegradationCount30d int               `json:"degradationCount30d"`
	UptimeSeconds       metric.Value[int] `json:"uptimeSeconds"`
}

// BootPerf measures boot duration and degradation events, falling back
// to uptime-only reporting when the diagnostics provider is absent.
type BootPerf struct {
	events EventQuerier
	uptime UptimeSource
	now    func() time.Time
}

func NewBootPerf(events EventQuerier, uptime UptimeSource) *BootPerf {
	return &BootPerf{events: events, uptime: uptime, now: time.Now}
}

func (c *BootPerf) Name() string                  { return bootPerfName }
func (c *BootPerf) DefaultTimeout() time.Duration { return 10 * time.Second }
func (c *BootPerf) Priority() int                 { return 40 }

func (c *BootPerf) Collect(ctx context.Context) signal.Result {
	return safeCollect(bootPerfName, bootPerfSource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *BootPerf) collect(ctx context.Context) signal.Result {
	since := c.now().Add(-bootLookbackWindow)

	events, err := c.events.Query(ctx, logBootDiagnostics, since)
	if err != nil {
		switch {
		case errors.HasCode(err, errors.ErrAccessDenied):
			// Never downgrade a permissions problem into "no issue found".
			return signal.Unavailable(bootPerfName, accessDeniedReason("boot diagnostics events"), bootPerfSource)
		case errors.HasCode(err, errors.ErrProviderNotFound):
			return c.uptimeFallback()
		default:
			return signal.Unavailable(bootPerfName, "boot diagnostics query failed: "+err.Error(), bootPerfSource)
		}
	}

	info := BootPerfInfo{
		LastBootDurationMS: lastBootDuration(events),
		UptimeSeconds:      c.readUptime(),
	}
	for id := bootDegradationFirstID; id <= bootDegradationLastID; id++ {
		info.DegradationCount30d += countEvents(events, "", id)
	}

	quality := signal.QualityOK
	lastBoot, hasBoot := info.LastBootDurationMS.Get()
	switch {
	case hasBoot && lastBoot > slowBootThresholdMS,
		info.DegradationCount30d > bootDegradationThreshold:
		quality = signal.QualitySuspect
	case !hasBoot:
		quality = signal.QualityPartial
	}

	return signal.Ok(bootPerfName, info, bootPerfSource, quality)
}

// uptimeFallback reports uptime only, degraded but valid, when the boot
// diagnostics provider does not exist on this system.
func (c *BootPerf) uptimeFallback() signal.Result {
	info := BootPerfInfo{
		LastBootDurationMS: metric.None[int]("boot diagnostics provider not found"),
		UptimeSeconds:      c.readUptime(),
	}

	if !info.UptimeSeconds.Available() {
		return signal.Unavailable(bootPerfName,
			"boot diagnostics provider not found and uptime unreadable: "+info.UptimeSeconds.Reason(),
			"Uptime")
	}

	return signal.Ok(bootPerfName, info, "Uptime", signal.QualityPartial).
		WithNotes("boot diagnostics provider absent, uptime-only fallback")
}

func (c *BootPerf) readUptime() metric.Value[int] {
	if c.uptime == nil {
		return metric.None[int]("no uptime source configured")
	}

	d, err := c.uptime.Uptime()
	if err != nil {
		return metric.None[int]("uptime read failed: " + err.Error())
	}

	return metric.Some(int(d.Seconds()))
}

// lastBootDuration extracts the duration of the most recent boot event.
func lastBootDuration(events []Event) metric.Value[int] {
	var (
		latest   time.Time
		duration = metric.None[int]("no boot duration event in window")
	)

	for _, e := range events {
		if e.ID != bootDurationEventID || e.Time.Before(latest) {
			continue
		}

		raw, ok := e.Data[bootTimeDataKey]
		if !ok {
			continue
		}
		ms, err := strconv.Atoi(raw)
		if err != nil {
			duration = metric.Invalid[int]("boot duration not numeric: " + raw)
			continue
		}

		latest = e.Time
		duration = metric.Some(ms)
	}

	return duration
}
