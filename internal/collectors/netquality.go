package collectors

import (
	"context"
	"fmt"
	"math"
	"net"
	"sort"
	"time"

	"codeberg.org/mutker/syshealth/internal/metric"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	netQualityName   = "networkQuality"
	netQualitySource = "LocalPing"

	pingsPerTarget = 30
	pingInterval   = 50 * time.Millisecond

	loopbackTarget = "127.0.0.1"
)

// Four-tier link verdict.
const (
	VerdictExcellent = "Excellent"
	VerdictGood      = "Bon"
	VerdictAverage   = "Moyen"
	VerdictPoor      = "Mauvais"
)

// Combined verdict thresholds.
const (
	poorLossPct    = 10.0
	poorP95MS      = 150.0
	averageLossPct = 2.0
	averageP95MS   = 80.0
	slowLinkMbps   = 100.0
	goodP95MS      = 30.0
	goodJitterMS   = 15.0
)

// NetTargetStats summarizes probes against one target.
type NetTargetStats struct {
	Target      string  `json:"target"`
	Sent        int     `json:"sent"`
	Lost        int     `json:"lost"`
	LossPercent float64 `json:"lossPercent"`
	P50MS       float64 `json:"p50MS"`
	P95MS       float64 `json:"p95MS"`
	JitterMS    float64 `json:"jitterMS"`
}

// NetQualityInfo is the networkQuality signal payload.
type NetQualityInfo struct {
	Verdict       string                `json:"verdict"`
	LinkSpeedMbps metric.Value[float64] `json:"linkSpeedMbps"`
	Targets       []NetTargetStats      `json:"targets"`
}

// NetQuality measures latency, jitter and loss against strictly local
// targets: gateway, loopback and RFC1918 DNS servers. Public internet
// hosts are never probed.
type NetQuality struct {
	pinger     Pinger
	link       LinkInfoSource
	dnsTargets []string
}

func NewNetQuality(pinger Pinger, link LinkInfoSource, dnsTargets []string) *NetQuality {
	return &NetQuality{pinger: pinger, link: link, dnsTargets: dnsTargets}
}

func (c *NetQuality) Name() string                  { return netQualityName }
func (c *NetQuality) DefaultTimeout() time.Duration { return 60 * time.Second }
func (c *NetQuality) Priority() int                 { return 90 }

func (c *NetQuality) Collect(ctx context.Context) signal.Result {
	return safeCollect(netQualityName, netQualitySource, func() signal.Result {
		return c.collect(ctx)
	})
}

func (c *NetQuality) collect(ctx context.Context) signal.Result {
	targets := c.buildTargets()
	if len(targets) == 0 {
		return signal.Unavailable(netQualityName, "no local probe targets available", netQualitySource)
	}

	linkSpeed := c.readLinkSpeed()

	var (
		stats     []NetTargetStats
		cancelled bool
	)
	for _, target := range targets {
		s, done := c.probeTarget(ctx, target)
		if s.Sent > 0 {
			stats = append(stats, s)
		}
		if !done {
			cancelled = true
			break
		}
	}

	if len(stats) == 0 {
		return signal.Unavailable(netQualityName, "probing cancelled before any target completed", netQualitySource)
	}

	info := NetQualityInfo{
		Verdict:       verdict(stats, linkSpeed),
		LinkSpeedMbps: linkSpeed,
		Targets:       stats,
	}

	quality := signal.QualityOK
	switch {
	case info.Verdict == VerdictPoor:
		quality = signal.QualitySuspect
	case cancelled, len(stats) < len(targets):
		quality = signal.QualityPartial
	}

	result := signal.Ok(netQualityName, info, netQualitySource, quality)
	if cancelled {
		result = result.WithNotes(fmt.Sprintf("cancelled after %d of %d targets", len(stats), len(targets)))
	}

	return result
}

// buildTargets assembles the probe list, rejecting anything outside
// loopback and RFC1918 space.
func (c *NetQuality) buildTargets() []string {
	targets := []string{loopbackTarget}

	if c.link != nil {
		if gw, err := c.link.Gateway(); err == nil && isLocalTarget(gw) {
			targets = append(targets, gw)
		}
	}

	for _, dns := range c.dnsTargets {
		if isLocalTarget(dns) {
			targets = append(targets, dns)
		}
	}

	return dedupe(targets)
}

func (c *NetQuality) readLinkSpeed() metric.Value[float64] {
	if c.link == nil {
		return metric.None[float64]("no link info source configured")
	}

	info, err := c.link.LinkInfo()
	if err != nil {
		return metric.None[float64]("link info read failed: " + err.Error())
	}

	return metric.Some(info.SpeedMbps)
}

// probeTarget sends pingsPerTarget probes, honoring cancellation between
// probes. done is false when the loop was cancelled early.
func (c *NetQuality) probeTarget(ctx context.Context, target string) (NetTargetStats, bool) {
	stats := NetTargetStats{Target: target}

	var rtts []float64
	for i := 0; i < pingsPerTarget; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				finishStats(&stats, rtts)
				return stats, false
			case <-time.After(pingInterval):
			}
		}

		stats.Sent++
		rtt, err := c.pinger.Ping(ctx, target)
		if err != nil {
			stats.Lost++
			continue
		}
		rtts = append(rtts, float64(rtt.Microseconds())/1000.0)
	}

	finishStats(&stats, rtts)

	return stats, true
}

func finishStats(stats *NetTargetStats, rtts []float64) {
	if stats.Sent > 0 {
		stats.LossPercent = float64(stats.Lost) / float64(stats.Sent) * 100
	}
	if len(rtts) == 0 {
		return
	}

	stats.P50MS = percentile(rtts, 50)
	stats.P95MS = percentile(rtts, 95)

	for i := 1; i < len(rtts); i++ {
		stats.JitterMS += math.Abs(rtts[i] - rtts[i-1])
	}
	if len(rtts) > 1 {
		stats.JitterMS /= float64(len(rtts) - 1)
	}
}

// verdict combines worst-case loss, latency and link speed into the
// four-tier rating.
func verdict(stats []NetTargetStats, linkSpeed metric.Value[float64]) string {
	var worstLoss, worstP95, worstJitter float64
	for _, s := range stats {
		worstLoss = math.Max(worstLoss, s.LossPercent)
		worstP95 = math.Max(worstP95, s.P95MS)
		worstJitter = math.Max(worstJitter, s.JitterMS)
	}

	speed, hasSpeed := linkSpeed.Get()

	switch {
	case worstLoss > poorLossPct, worstP95 > poorP95MS:
		return VerdictPoor
	case worstLoss > averageLossPct, worstP95 > averageP95MS, hasSpeed && speed < slowLinkMbps:
		return VerdictAverage
	case worstP95 > goodP95MS, worstJitter > goodJitterMS:
		return VerdictGood
	default:
		return VerdictExcellent
	}
}

func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}

	return sorted[idx]
}

// isLocalTarget accepts loopback and RFC1918 addresses only.
func isLocalTarget(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}

	return ip.IsLoopback() || ip.IsPrivate()
}

func dedupe(targets []string) []string {
	seen := make(map[string]bool, len(targets))
	out := targets[:0]
	for _, t := range targets {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}

	return out
}
