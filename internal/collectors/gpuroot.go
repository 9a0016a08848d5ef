package collectors

import (
	"context"
	"strings"
	"time"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	gpuRootName   = "gpuRootCause"
	gpuRootSource = "EventLog_System"

	gpuRootLookbackWindow = 7 * 24 * time.Hour
)

// GPURootCauseInfo is the gpuRootCause signal payload. It narrows a GPU
// problem down to driver resets, bus faults or application crashes.
type GPURootCauseInfo struct {
	TDRCount7d      int `json:"tdrCount7d"`
	BusErrorCount7d int `json:"busErrorCount7d"`
	AppCrashCount7d int `json:"appCrashCount7d"`
}

// GPURootCause correlates recent GPU-related failures across sources.
type GPURootCause struct {
	events EventQuerier
	now    func() time.Time
}

func NewGPURootCause(events EventQuerier) *GPURootCause {
	return &GPURootCause{events: events, now: time.Now}
}

func (c *GPURootCause) Name() string                  { return gpuRootName }
func (c *GPURootCause) DefaultTimeout() time.Duration { return 20 * time.Second }
func (c *GPURootCause) Priority() int                 { return 60 }

func (c *GPURootCause) Collect(ctx context.Context) signal.Result {
	return safeCollect(gpuRootName, gpuRootSource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *GPURootCause) collect(ctx context.Context) signal.Result {
	since := c.now().Add(-gpuRootLookbackWindow)

	system, err := c.events.Query(ctx, logSystem, since)
	if err != nil {
		if errors.HasCode(err, errors.ErrAccessDenied) {
			return signal.Unavailable(gpuRootName, accessDeniedReason("system event log"), gpuRootSource)
		}
		return signal.Unavailable(gpuRootName, "system event log query failed: "+err.Error(), gpuRootSource)
	}

	info := GPURootCauseInfo{
		TDRCount7d:      countEvents(system, providerDisplay, tdrEventID),
		BusErrorCount7d: countBusErrors(system),
	}

	notes := ""
	app, appErr := c.events.Query(ctx, logApplication, since)
	if appErr != nil {
		notes = "application log unavailable, crash correlation omitted"
	} else {
		info.AppCrashCount7d = countGPUCrashes(app)
	}

	quality := signal.QualityOK
	switch {
	case info.TDRCount7d > 0, info.BusErrorCount7d > 0:
		quality = signal.QualitySuspect
	case info.AppCrashCount7d > 0, appErr != nil:
		quality = signal.QualityPartial
	}

	result := signal.Ok(gpuRootName, info, gpuRootSource, quality)
	if notes != "" {
		result = result.WithNotes(notes)
	}

	return result
}

// countBusErrors counts WHEA events attributed to the PCI Express bus,
// where a flaky GPU or riser shows up first.
func countBusErrors(system []Event) int {
	count := 0
	for _, e := range system {
		if e.Provider != providerWHEA {
			continue
		}
		msg := strings.ToLower(e.Message)
		if strings.Contains(msg, "pci express") || strings.Contains(msg, "pcie") {
			count++
		}
	}

	return count
}
