package collectors

import (
	"context"
	"time"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	wheaName   = "wheaErrors"
	wheaSource = "EventLog_System"

	providerWHEA = "Microsoft-Windows-WHEA-Logger"

	wheaLookbackWindow = 7 * 24 * time.Hour
)

// WHEAInfo is the wheaErrors signal payload. WHEA records hardware
// faults detected by the platform (memory, bus, CPU).
type WHEAInfo struct {
	CorrectedCount int `json:"correctedCount"`
	FatalCount     int `json:"fatalCount"`
}

// WHEA classifies hardware error events by severity over a 7-day window.
type WHEA struct {
	events EventQuerier
	now    func() time.Time
}

func NewWHEA(events EventQuerier) *WHEA {
	return &WHEA{events: events, now: time.Now}
}

func (c *WHEA) Name() string                  { return wheaName }
func (c *WHEA) DefaultTimeout() time.Duration { return 15 * time.Second }
func (c *WHEA) Priority() int                 { return 70 }

func (c *WHEA) Collect(ctx context.Context) signal.Result {
	return safeCollect(wheaName, wheaSource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *WHEA) collect(ctx context.Context) signal.Result {
	since := c.now().Add(-wheaLookbackWindow)

	events, err := c.events.Query(ctx, logSystem, since)
	if err != nil {
		if errors.HasCode(err, errors.ErrAccessDenied) {
			return signal.Unavailable(wheaName, accessDeniedReason("hardware error events"), wheaSource)
		}
		return signal.Unavailable(wheaName, "hardware error query failed: "+err.Error(), wheaSource)
	}

	var info WHEAInfo
	for _, e := range events {
		if e.Provider != providerWHEA {
			continue
		}
		if e.Level <= levelError {
			info.FatalCount++
		} else {
			info.CorrectedCount++
		}
	}

	quality := signal.QualityOK
	if info.FatalCount > 0 {
		quality = signal.QualitySuspect
	}

	return signal.Ok(wheaName, info, wheaSource, quality)
}
