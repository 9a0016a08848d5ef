package collectors_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/syshealth/internal/collectors"
	"codeberg.org/mutker/syshealth/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeedTestDisabledByDefault(t *testing.T) {
	result := collectors.NewSpeedTest(false, "").Collect(context.Background())

	assert.False(t, result.Available)
	assert.Equal(t, signal.QualityOK, result.Quality, "opting out is not a collection error")
	assert.Contains(t, result.Reason, "not enabled")

	// Skipped signals must not surface as collector errors.
	errs := signal.Errors(map[string]signal.Result{"speedTest": result})
	assert.Empty(t, errs)
}

func TestSpeedTestExecutableNotFound(t *testing.T) {
	result := collectors.NewSpeedTest(true, "/nonexistent/definitely-not-a-speedtest-binary").Collect(context.Background())

	assert.False(t, result.Available)
	assert.Equal(t, signal.QualityOK, result.Quality)
	assert.Contains(t, result.Reason, "not found")
	// The two unavailable reasons must stay distinguishable.
	assert.NotContains(t, result.Reason, "not enabled")
}

func TestSpeedTestParsesOutput(t *testing.T) {
	c := collectors.NewSpeedTestWithRunner(true,
		func(string) (string, error) { return "/usr/bin/speedtest", nil },
		func(context.Context, string) ([]byte, error) {
			return []byte(`{
				"download": {"bandwidth": 12500000},
				"upload": {"bandwidth": 2500000},
				"ping": {"latency": 11.5}
			}`), nil
		},
	)

	result := c.Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualityOK, result.Quality)

	info := result.Value.(collectors.SpeedTestInfo)
	assert.InDelta(t, 100.0, info.DownloadMbps, 0.001)
	assert.InDelta(t, 20.0, info.UploadMbps, 0.001)
	assert.InDelta(t, 11.5, info.PingMS, 0.001)
}

func TestSpeedTestUnparseableOutput(t *testing.T) {
	c := collectors.NewSpeedTestWithRunner(true,
		func(string) (string, error) { return "/usr/bin/speedtest", nil },
		func(context.Context, string) ([]byte, error) {
			return []byte("Usage: speedtest [options]"), nil
		},
	)

	result := c.Collect(context.Background())
	assert.False(t, result.Available)
	assert.Equal(t, signal.QualityError, result.Quality)
	assert.Contains(t, result.Reason, "unparseable")
}
