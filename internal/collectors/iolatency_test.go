package collectors_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/mutker/syshealth/internal/collectors"
	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transferCounter = `\PhysicalDisk(_Total)\Avg. Disk sec/Transfer`

func TestIOLatencyHealthy(t *testing.T) {
	// The counter reports seconds per transfer; the payload is in ms.
	c := collectors.NewIOLatency(&fakeCounters{values: map[string]float64{
		transferCounter: 0.008,
	}})

	result := c.Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualityOK, result.Quality)
	assert.Equal(t, "ioLatency", result.Name)

	info, ok := result.Value.(collectors.IOLatencyInfo)
	require.True(t, ok)
	assert.Equal(t, 5, info.SamplesTaken)

	avg, hasAvg := info.AvgLatencyMS.Get()
	require.True(t, hasAvg)
	assert.InDelta(t, 8.0, avg, 0.001)

	maxMS, hasMax := info.MaxLatencyMS.Get()
	require.True(t, hasMax)
	assert.InDelta(t, 8.0, maxMS, 0.001)
}

func TestIOLatencySuspectOnSustainedLatency(t *testing.T) {
	c := collectors.NewIOLatency(&fakeCounters{values: map[string]float64{
		transferCounter: 0.040,
	}})

	result := c.Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualitySuspect, result.Quality)

	info := result.Value.(collectors.IOLatencyInfo)
	avg, _ := info.AvgLatencyMS.Get()
	assert.InDelta(t, 40.0, avg, 0.001)
}

func TestIOLatencyPartialOnCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	c := collectors.NewIOLatency(&fakeCounters{values: map[string]float64{
		transferCounter: 0.008,
	}})

	result := c.Collect(ctx)
	require.True(t, result.Available, "cancellation must yield a partial result, not a failure")
	assert.Equal(t, signal.QualityPartial, result.Quality)
	assert.Contains(t, result.Notes, "cancelled")

	info := result.Value.(collectors.IOLatencyInfo)
	assert.Less(t, info.SamplesTaken, 5)
}

func TestIOLatencyNothingObtainable(t *testing.T) {
	c := collectors.NewIOLatency(&fakeCounters{err: errors.New().New(collectors.ErrCounterUnavailable)})

	result := c.Collect(context.Background())
	assert.False(t, result.Available)
	assert.Equal(t, signal.QualityError, result.Quality)
	assert.NotEmpty(t, result.Reason)
}
