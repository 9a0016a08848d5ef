package collectors_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/mutker/syshealth/internal/collectors"
	"codeberg.org/mutker/syshealth/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWHEAClassification(t *testing.T) {
	events := &fakeEvents{logs: map[string][]collectors.Event{
		"System": {
			eventAt(1*day, "Microsoft-Windows-WHEA-Logger", 18, 1), // fatal
			eventAt(2*day, "Microsoft-Windows-WHEA-Logger", 19, 2), // fatal
			eventAt(3*day, "Microsoft-Windows-WHEA-Logger", 17, 3), // corrected
			eventAt(4*day, "Microsoft-Windows-WHEA-Logger", 17, 4), // corrected
			eventAt(1*day, "SomethingElse", 18, 1),                 // not WHEA
		},
	}}

	result := collectors.NewWHEA(events).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualitySuspect, result.Quality)

	info := result.Value.(collectors.WHEAInfo)
	assert.Equal(t, 2, info.FatalCount)
	assert.Equal(t, 2, info.CorrectedCount)

	assert.WithinDuration(t, time.Now().Add(-7*day), events.lastSince, time.Minute)
}

func TestWHEACorrectedOnlyIsOK(t *testing.T) {
	events := &fakeEvents{logs: map[string][]collectors.Event{
		"System": {eventAt(1*day, "Microsoft-Windows-WHEA-Logger", 17, 3)},
	}}

	result := collectors.NewWHEA(events).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualityOK, result.Quality)
}

func TestDriverStabilitySuspectOnBugCheck(t *testing.T) {
	events := &fakeEvents{logs: map[string][]collectors.Event{
		"System": {
			eventAt(5*day, "Microsoft-Windows-WER-SystemErrorReporting", 1001, 2),
		},
		"Application": {},
	}}

	result := collectors.NewDriverStability(events).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualitySuspect, result.Quality)
	assert.Equal(t, 1, result.Value.(collectors.DriverStabilityInfo).BugCheckCount30d)
}

func TestDriverStabilityPartialOnRepeatedTDR(t *testing.T) {
	var tdrs []collectors.Event
	for i := 0; i < 4; i++ {
		tdrs = append(tdrs, eventAt(time.Duration(i+1)*day, "Display", 4101, 3))
	}
	events := &fakeEvents{logs: map[string][]collectors.Event{
		"System":      tdrs,
		"Application": {},
	}}

	result := collectors.NewDriverStability(events).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualityPartial, result.Quality)
	assert.Equal(t, 4, result.Value.(collectors.DriverStabilityInfo).TDRCount30d)
}

func TestDriverStabilityCountsGPUCrashes(t *testing.T) {
	events := &fakeEvents{logs: map[string][]collectors.Event{
		"System": {},
		"Application": {
			{
				Time: time.Now().Add(-day), Provider: "Application Error", ID: 1000,
				Message: "Faulting module name: nvlddmkm.sys",
			},
			{
				Time: time.Now().Add(-day), Provider: "Application Error", ID: 1000,
				Message: "Faulting module name: ntdll.dll",
			},
		},
	}}

	result := collectors.NewDriverStability(events).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, 1, result.Value.(collectors.DriverStabilityInfo).GPUCrashCount30d)
}

func TestGPURootCauseSuspectOnRecentTDR(t *testing.T) {
	events := &fakeEvents{logs: map[string][]collectors.Event{
		"System": {
			eventAt(2*day, "Display", 4101, 3),
		},
		"Application": {},
	}}

	result := collectors.NewGPURootCause(events).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualitySuspect, result.Quality)
	assert.Equal(t, 1, result.Value.(collectors.GPURootCauseInfo).TDRCount7d)
}

func TestGPURootCauseBusErrors(t *testing.T) {
	events := &fakeEvents{logs: map[string][]collectors.Event{
		"System": {
			{
				Time: time.Now().Add(-day), Provider: "Microsoft-Windows-WHEA-Logger",
				ID: 17, Level: 3, Message: "A corrected hardware error occurred. Component: PCI Express Root Port",
			},
		},
		"Application": {},
	}}

	result := collectors.NewGPURootCause(events).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualitySuspect, result.Quality)
	assert.Equal(t, 1, result.Value.(collectors.GPURootCauseInfo).BusErrorCount7d)
}
