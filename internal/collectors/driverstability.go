package collectors

import (
	"context"
	"strings"
	"time"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	driverStabilityName   = "driverStability"
	driverStabilitySource = "EventLog_System"

	providerDisplay     = "Display"
	providerKernelPower = "Microsoft-Windows-Kernel-Power"
	providerBugCheck    = "Microsoft-Windows-WER-SystemErrorReporting"
	providerAppError    = "Application Error"

	// TDR: driver reset after a timeout instead of a system crash.
	tdrEventID                = 4101
	unexpectedShutdownEventID = 41
	bugCheckEventID           = 1001
	appCrashEventID           = 1000

	driverLookbackWindow = 30 * 24 * time.Hour
	tdrPartialThreshold  = 3
)

// gpuModuleHints identify GPU driver modules in application crash records.
var gpuModuleHints = []string{"nvlddmkm", "nvwgf2um", "atikmdag", "amdkmdag", "igdkmd"}

// DriverStabilityInfo is the driverStability signal payload.
type DriverStabilityInfo struct {
	TDRCount30d                int `json:"tdrCount30d"`
	UnexpectedShutdownCount30d int `json:"unexpectedShutdownCount30d"`
	BugCheckCount30d           int `json:"bugCheckCount30d"`
	GPUCrashCount30d           int `json:"gpuCrashCount30d"`
}

// DriverStability counts driver resets, bug checks and unexpected
// shutdowns over a 30-day window.
type DriverStability struct {
	events EventQuerier
	now    func() time.Time
}

func NewDriverStability(events EventQuerier) *DriverStability {
	return &DriverStability{events: events, now: time.Now}
}

func (c *DriverStability) Name() string                  { return driverStabilityName }
func (c *DriverStability) DefaultTimeout() time.Duration { return 20 * time.Second }
func (c *DriverStability) Priority() int                 { return 50 }

func (c *DriverStability) Collect(ctx context.Context) signal.Result {
	return safeCollect(driverStabilityName, driverStabilitySource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *DriverStability) collect(ctx context.Context) signal.Result {
	since := c.now().Add(-driverLookbackWindow)

	system, err := c.events.Query(ctx, logSystem, since)
	if err != nil {
		if errors.HasCode(err, errors.ErrAccessDenied) {
			return signal.Unavailable(driverStabilityName, accessDeniedReason("system event log"), driverStabilitySource)
		}
		return signal.Unavailable(driverStabilityName, "system event log query failed: "+err.Error(), driverStabilitySource)
	}

	info := DriverStabilityInfo{
		TDRCount30d:                countEvents(system, providerDisplay, tdrEventID),
		UnexpectedShutdownCount30d: countEvents(system, providerKernelPower, unexpectedShutdownEventID),
		BugCheckCount30d:           countEvents(system, providerBugCheck, bugCheckEventID),
	}

	notes := ""
	app, appErr := c.events.Query(ctx, logApplication, since)
	if appErr != nil {
		notes = "application log unavailable, GPU crash count omitted"
	} else {
		info.GPUCrashCount30d = countGPUCrashes(app)
	}

	quality := signal.QualityOK
	switch {
	case info.UnexpectedShutdownCount30d > 0, info.BugCheckCount30d > 0:
		quality = signal.QualitySuspect
	case info.TDRCount30d > tdrPartialThreshold, info.GPUCrashCount30d > 0:
		quality = signal.QualityPartial
	case appErr != nil:
		quality = signal.QualityPartial
	}

	result := signal.Ok(driverStabilityName, info, driverStabilitySource, quality)
	if notes != "" {
		result = result.WithNotes(notes)
	}

	return result
}

func countGPUCrashes(app []Event) int {
	count := 0
	for _, e := range app {
		if e.Provider != providerAppError || e.ID != appCrashEventID {
			continue
		}
		msg := strings.ToLower(e.Message)
		for _, hint := range gpuModuleHints {
			if strings.Contains(msg, hint) {
				count++
				break
			}
		}
	}

	return count
}
