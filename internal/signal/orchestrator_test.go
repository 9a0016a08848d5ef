package signal_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/mutker/syshealth/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollector struct {
	name     string
	timeout  time.Duration
	priority int
	collect  func(ctx context.Context) signal.Result
}

func (c *stubCollector) Name() string                  { return c.name }
func (c *stubCollector) DefaultTimeout() time.Duration { return c.timeout }
func (c *stubCollector) Priority() int                 { return c.priority }
func (c *stubCollector) Collect(ctx context.Context) signal.Result {
	return c.collect(ctx)
}

func TestRunCollectsAllResults(t *testing.T) {
	collectors := []signal.Collector{
		&stubCollector{
			name: "cpuThrottle", timeout: time.Second, priority: 1,
			collect: func(context.Context) signal.Result {
				return signal.Ok("cpuThrottle", 12, "PerfCounter_Processor", signal.QualityOK)
			},
		},
		&stubCollector{
			name: "bootPerf", timeout: time.Second, priority: 2,
			collect: func(context.Context) signal.Result {
				return signal.Unavailable("bootPerf", "event log access denied", "EventLog_System")
			},
		},
	}

	results := signal.NewOrchestrator(collectors, 0).Run(context.Background())
	require.Len(t, results, 2)

	assert.True(t, results["cpuThrottle"].Available)
	assert.Equal(t, signal.QualityOK, results["cpuThrottle"].Quality)

	assert.False(t, results["bootPerf"].Available)
	assert.Equal(t, signal.QualityError, results["bootPerf"].Quality)
	assert.Equal(t, "event log access denied", results["bootPerf"].Reason)
}

func TestRunHonorsPerCollectorTimeout(t *testing.T) {
	slow := &stubCollector{
		name: "slow", timeout: 20 * time.Millisecond, priority: 1,
		collect: func(ctx context.Context) signal.Result {
			<-ctx.Done()
			return signal.Unavailable("slow", "timed out waiting for counter samples", "PerfCounter_Disk")
		},
	}

	start := time.Now()
	results := signal.NewOrchestrator([]signal.Collector{slow}, 0).Run(context.Background())
	elapsed := time.Since(start)

	assert.Less(t, elapsed, time.Second, "orchestrator must not wait past the collector budget")
	assert.False(t, results["slow"].Available)
	assert.Contains(t, results["slow"].Reason, "timed out")
}

func TestRunRecoversPanickingCollector(t *testing.T) {
	collectors := []signal.Collector{
		&stubCollector{
			name: "broken", timeout: time.Second, priority: 1,
			collect: func(context.Context) signal.Result {
				panic("nil deref in provider parsing")
			},
		},
		&stubCollector{
			name: "fine", timeout: time.Second, priority: 2,
			collect: func(context.Context) signal.Result {
				return signal.Ok("fine", nil, "test", signal.QualityOK)
			},
		},
	}

	results := signal.NewOrchestrator(collectors, 0).Run(context.Background())
	require.Len(t, results, 2)

	assert.False(t, results["broken"].Available)
	assert.Equal(t, signal.QualityError, results["broken"].Quality)
	assert.Contains(t, results["broken"].Reason, "panicked")
	assert.Contains(t, results["broken"].Reason, "nil deref")

	assert.True(t, results["fine"].Available, "a panicking collector must not poison the run")
}

func TestRunGlobalBudget(t *testing.T) {
	slow := &stubCollector{
		name: "patient", timeout: time.Minute, priority: 1,
		collect: func(ctx context.Context) signal.Result {
			<-ctx.Done()
			return signal.Unavailable("patient", "collection budget exhausted", "test")
		},
	}

	start := time.Now()
	signal.NewOrchestrator([]signal.Collector{slow}, 30*time.Millisecond).Run(context.Background())
	assert.Less(t, time.Since(start), time.Second)
}

func TestErrors(t *testing.T) {
	results := map[string]signal.Result{
		"whea": signal.Ok("whea", nil, "EventLog_System", signal.QualityOK),
		"io":   signal.Unavailable("io", "disk probe failed: permission denied", "DiskProbe"),
		"boot": signal.Unavailable("boot", "provider not found", "EventLog_Diagnostics"),
		"net":  signal.Ok("net", nil, "LocalPing", signal.QualitySuspect),
	}

	errs := signal.Errors(results)
	require.Len(t, errs, 2)
	// Sorted by collector name for deterministic reports.
	assert.Equal(t, "boot: provider not found", errs[0])
	assert.Equal(t, "io: disk probe failed: permission denied", errs[1])
}

func TestUnavailableNormalizesEmptyReason(t *testing.T) {
	r := signal.Unavailable("x", "", "src")
	assert.NotEmpty(t, r.Reason)
}
