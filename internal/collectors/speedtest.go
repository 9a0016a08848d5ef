package collectors

import (
	"context"
	"encoding/json"
	"os/exec"
	"time"

	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	speedTestName   = "speedTest"
	speedTestSource = "ExternalSpeedTest"

	defaultSpeedTestBinary = "speedtest"
)

// SpeedTestInfo is the speedTest signal payload.
type SpeedTestInfo struct {
	DownloadMbps float64 `json:"downloadMbps"`
	UploadMbps   float64 `json:"uploadMbps"`
	PingMS       float64 `json:"pingMS"`
}

// speedTestOutput matches the CLI's JSON output format.
type speedTestOutput struct {
	Download struct {
		Bandwidth float64 `json:"bandwidth"` // bytes per second
	} `json:"download"`
	Upload struct {
		Bandwidth float64 `json:"bandwidth"`
	} `json:"upload"`
	Ping struct {
		Latency float64 `json:"latency"`
	} `json:"ping"`
}

// SpeedTest runs an external speed-test executable. Disabled by default:
// it only runs with an explicit opt-in AND a discoverable executable,
// and each missing precondition is reported as its own distinct
// non-error unavailable reason, never a silent zero.
type SpeedTest struct {
	enabled  bool
	binary   string
	lookPath func(string) (string, error)
	run      func(ctx context.Context, path string) ([]byte, error)
}

func NewSpeedTest(enabled bool, binaryOverride string) *SpeedTest {
	binary := binaryOverride
	if binary == "" {
		binary = defaultSpeedTestBinary
	}

	return &SpeedTest{
		enabled:  enabled,
		binary:   binary,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, path string) ([]byte, error) {
			return exec.CommandContext(ctx, path, "--format=json", "--accept-license").Output()
		},
	}
}

// NewSpeedTestWithRunner injects the executable lookup and runner, for
// tests and for embedders shipping their own binary.
func NewSpeedTestWithRunner(
	enabled bool,
	lookPath func(string) (string, error),
	run func(ctx context.Context, path string) ([]byte, error),
) *SpeedTest {
	c := NewSpeedTest(enabled, "")
	c.lookPath = lookPath
	c.run = run

	return c
}

func (c *SpeedTest) Name() string                  { return speedTestName }
func (c *SpeedTest) DefaultTimeout() time.Duration { return 90 * time.Second }
func (c *SpeedTest) Priority() int                 { return 100 }

func (c *SpeedTest) Collect(ctx context.Context) signal.Result {
	return safeCollect(speedTestName, speedTestSource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *SpeedTest) collect(ctx context.Context) signal.Result {
	if !c.enabled {
		return signal.Skipped(speedTestName, "external speed test not enabled (opt-in required)", speedTestSource)
	}

	path, err := c.lookPath(c.binary)
	if err != nil {
		return signal.Skipped(speedTestName, "speed test executable not found on host: "+c.binary, speedTestSource)
	}

	out, err := c.run(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return signal.Unavailable(speedTestName, "speed test cancelled before completion", speedTestSource)
		}
		return signal.Unavailable(speedTestName, "speed test execution failed: "+err.Error(), speedTestSource)
	}

	var parsed speedTestOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return signal.Unavailable(speedTestName, "speed test output unparseable: "+err.Error(), speedTestSource)
	}

	const bytesToMegabits = 8.0 / 1_000_000.0
	info := SpeedTestInfo{
		DownloadMbps: parsed.Download.Bandwidth * bytesToMegabits,
		UploadMbps:   parsed.Upload.Bandwidth * bytesToMegabits,
		PingMS:       parsed.Ping.Latency,
	}

	return signal.Ok(speedTestName, info, speedTestSource, signal.QualityOK)
}
