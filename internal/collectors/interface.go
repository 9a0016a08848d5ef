// Package collectors implements the signal collectors: independent,
// individually unreliable probes over OS event logs, performance
// counters and the local network. OS access goes through small injected
// interfaces so every collector is testable without the host platform.
package collectors

import (
	"context"
	"time"
)

// Event is one OS event-log record.
type Event struct {
	Time     time.Time
	Provider string
	ID       int
	// Level follows the OS convention: 1 critical, 2 error, 3 warning,
	// 4 informational.
	Level   int
	Message string
	// Data carries provider-specific payload fields, e.g. boot duration.
	Data map[string]string
}

// EventQuerier reads events from a named log since a point in time.
// Implementations signal a missing provider with ErrProviderNotFound
// (collectors fall back) and a permissions problem with ErrAccessDenied
// (collectors fail with a specific reason, never a silent downgrade).
type EventQuerier interface {
	Query(ctx context.Context, logName string, since time.Time) ([]Event, error)
}

// CounterSampler reads one instantaneous performance-counter value.
type CounterSampler interface {
	Sample(ctx context.Context, counter string) (float64, error)
}

// UptimeSource reports time since last boot.
type UptimeSource interface {
	Uptime() (time.Duration, error)
}

// Pinger measures round-trip time to a target host. An error means the
// probe was lost.
type Pinger interface {
	Ping(ctx context.Context, target string) (time.Duration, error)
}

// LinkInfo describes the active network link.
type LinkInfo struct {
	InterfaceName string
	SpeedMbps     float64
}

// LinkInfoSource reports the active link, and the default gateway for
// local-only probing.
type LinkInfoSource interface {
	LinkInfo() (LinkInfo, error)
	Gateway() (string, error)
}

// Event log names shared by the collectors.
const (
	logSystem          = "System"
	logApplication     = "Application"
	logBootDiagnostics = "Microsoft-Windows-Diagnostics-Performance/Operational"
)

// Windows event levels.
const (
	levelCritical = 1
	levelError    = 2
	levelWarning  = 3
)

// countEvents counts events from a provider with one of the given IDs.
// Empty provider or nil IDs match everything.
func countEvents(events []Event, provider string, ids ...int) int {
	count := 0
	for _, e := range events {
		if provider != "" && e.Provider != provider {
			continue
		}
		if len(ids) > 0 && !containsID(ids, e.ID) {
			continue
		}
		count++
	}

	return count
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}
