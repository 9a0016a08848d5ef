// Package signal defines the unit of diagnostic evidence: independently
// collectible, individually unreliable, and explicitly tagged with
// provenance and quality so the scoring layer never has to guess why a
// value is missing.
package signal

import (
	"context"
	"time"
)

// Quality tags how much a collected signal can be trusted.
type Quality string

const (
	// QualityOK means data was collected with no anomaly.
	QualityOK Quality = "ok"
	// QualityPartial means data is incomplete or a fallback method was used.
	QualityPartial Quality = "partial"
	// QualitySuspect means data is present and suggests an active problem.
	QualitySuspect Quality = "suspect"
	// QualityError means collection itself failed.
	QualityError Quality = "error"
)

// Result is the output of one collector for one collection run. Created
// once, never mutated, consumed read-only.
type Result struct {
	Name      string    `json:"name"`
	Available bool      `json:"available"`
	Value     any       `json:"value"`
	Source    string    `json:"source"`
	Quality   Quality   `json:"quality"`
	Reason    string    `json:"reason,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Collector is one polymorphic unit of collection work.
type Collector interface {
	// Name is the stable key identifying this signal, e.g. "cpuThrottle".
	Name() string

	// DefaultTimeout is the collector-chosen budget for one Collect call.
	DefaultTimeout() time.Duration

	// Priority orders collectors when an orchestrator enforces ordering;
	// lower runs first.
	Priority() int

	// Collect gathers the signal. It must never panic past its boundary
	// and must honor ctx cancellation, returning a partial-but-valid
	// result rather than blocking past its budget.
	Collect(ctx context.Context) Result
}
