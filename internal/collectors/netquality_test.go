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

func TestNetQualityExcellent(t *testing.T) {
	pinger := &fakePinger{rtts: map[string]time.Duration{
		"127.0.0.1":   200 * time.Microsecond,
		"192.168.1.1": 2 * time.Millisecond,
	}}
	link := &fakeLink{info: collectors.LinkInfo{InterfaceName: "eth0", SpeedMbps: 1000}, gateway: "192.168.1.1"}

	result := collectors.NewNetQuality(pinger, link, nil).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualityOK, result.Quality)

	info := result.Value.(collectors.NetQualityInfo)
	assert.Equal(t, collectors.VerdictExcellent, info.Verdict)
	require.Len(t, info.Targets, 2)
	assert.Equal(t, 30, info.Targets[0].Sent)
	assert.Zero(t, info.Targets[0].Lost)
}

func TestNetQualityPoorOnLoss(t *testing.T) {
	// Gateway answers nothing: 100% loss on that target.
	pinger := &fakePinger{rtts: map[string]time.Duration{
		"127.0.0.1": 200 * time.Microsecond,
	}}
	link := &fakeLink{info: collectors.LinkInfo{SpeedMbps: 1000}, gateway: "192.168.1.1"}

	result := collectors.NewNetQuality(pinger, link, nil).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, signal.QualitySuspect, result.Quality)
	assert.Equal(t, collectors.VerdictPoor, result.Value.(collectors.NetQualityInfo).Verdict)
}

func TestNetQualityAverageOnSlowLink(t *testing.T) {
	pinger := &fakePinger{rtts: map[string]time.Duration{
		"127.0.0.1": 200 * time.Microsecond,
	}}
	link := &fakeLink{info: collectors.LinkInfo{SpeedMbps: 10}}

	result := collectors.NewNetQuality(pinger, link, nil).Collect(context.Background())
	require.True(t, result.Available)
	assert.Equal(t, collectors.VerdictAverage, result.Value.(collectors.NetQualityInfo).Verdict)
}

func TestNetQualityRejectsPublicTargets(t *testing.T) {
	pinger := &fakePinger{rtts: map[string]time.Duration{
		"127.0.0.1": 200 * time.Microsecond,
		"8.8.8.8":   5 * time.Millisecond,
		"10.0.0.53": time.Millisecond,
	}}
	link := &fakeLink{info: collectors.LinkInfo{SpeedMbps: 1000}}

	// 8.8.8.8 is public and must never be probed.
	result := collectors.NewNetQuality(pinger, link, []string{"8.8.8.8", "10.0.0.53"}).Collect(context.Background())
	require.True(t, result.Available)

	info := result.Value.(collectors.NetQualityInfo)
	for _, target := range info.Targets {
		assert.NotEqual(t, "8.8.8.8", target.Target)
	}
	require.Len(t, info.Targets, 2)
}

func TestNetQualityTotalLossStillReports(t *testing.T) {
	// Even with nothing configured, loopback keeps the probe alive; a
	// pinger that loses everything still yields stats, not a failure.
	pinger := &fakePinger{rtts: map[string]time.Duration{}}

	result := collectors.NewNetQuality(pinger, nil, nil).Collect(context.Background())
	require.True(t, result.Available)
	info := result.Value.(collectors.NetQualityInfo)
	assert.Equal(t, collectors.VerdictPoor, info.Verdict)
	assert.InDelta(t, 100.0, info.Targets[0].LossPercent, 0.001)
}

func TestNetQualityCancellationYieldsPartial(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	pinger := &fakePinger{rtts: map[string]time.Duration{
		"127.0.0.1":   200 * time.Microsecond,
		"192.168.1.1": time.Millisecond,
	}}
	link := &fakeLink{info: collectors.LinkInfo{SpeedMbps: 1000}, gateway: "192.168.1.1"}

	result := collectors.NewNetQuality(pinger, link, nil).Collect(ctx)
	require.True(t, result.Available, "cancellation must degrade to partial, not fail")
	assert.Equal(t, signal.QualityPartial, result.Quality)
}
