package collectors

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/signal"
)

// Default source implementations for hosts without a platform collection
// layer. The real event-log and counter providers are injected by the
// embedding platform; these defaults keep the scanner useful everywhere.

// systemUptime reads uptime from /proc.
type systemUptime struct{}

func NewSystemUptime() UptimeSource {
	return systemUptime{}
}

func (systemUptime) Uptime() (time.Duration, error) {
	errFactory := errors.New()

	data, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrCollectFailed, err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, errFactory.WithMessage(errors.ErrCollectFailed, "empty /proc/uptime")
	}

	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrCollectFailed, err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// tcpPinger measures round-trip time by timing a TCP connect. A refused
// connection still measures the round trip (SYN answered with RST); only
// a timeout counts as loss. No payload ever leaves the local network.
type tcpPinger struct {
	port    string
	timeout time.Duration
}

func NewTCPPinger() Pinger {
	return &tcpPinger{port: "53", timeout: time.Second}
}

func (p *tcpPinger) Ping(ctx context.Context, target string) (time.Duration, error) {
	errFactory := errors.New()

	dialer := net.Dialer{Timeout: p.timeout}
	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(target, p.port))
	elapsed := time.Since(start)

	if conn != nil {
		conn.Close()
		return elapsed, nil
	}
	if err != nil && strings.Contains(err.Error(), "refused") {
		// Host answered; the refusal itself is the round trip.
		return elapsed, nil
	}

	return 0, errFactory.Wrap(errors.ErrCollectTimeout, err)
}

// procLink reads link speed and default gateway from /sys and /proc.
type procLink struct{}

func NewProcLink() LinkInfoSource {
	return procLink{}
}

func (procLink) LinkInfo() (LinkInfo, error) {
	errFactory := errors.New()

	ifaces, err := net.Interfaces()
	if err != nil {
		return LinkInfo{}, errFactory.Wrap(errors.ErrCollectFailed, err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		data, err := os.ReadFile("/sys/class/net/" + iface.Name + "/speed")
		if err != nil {
			continue
		}
		speed, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
		if err != nil || speed <= 0 {
			continue
		}

		return LinkInfo{InterfaceName: iface.Name, SpeedMbps: speed}, nil
	}

	return LinkInfo{}, errFactory.WithMessage(errors.ErrCollectFailed, "no active interface reports a link speed")
}

func (procLink) Gateway() (string, error) {
	errFactory := errors.New()

	f, err := os.Open("/proc/net/route")
	if err != nil {
		return "", errFactory.Wrap(errors.ErrCollectFailed, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Scan() // header
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[1] != "00000000" {
			continue
		}

		gw, err := strconv.ParseUint(fields[2], 16, 32)
		if err != nil {
			continue
		}

		// /proc/net/route stores the address little-endian.
		ip := net.IPv4(byte(gw), byte(gw>>8), byte(gw>>16), byte(gw>>24))

		return ip.String(), nil
	}

	return "", errFactory.WithMessage(errors.ErrCollectFailed, "no default route found")
}

// unsupportedEventLog stands in on platforms without an event log
// provider. Collectors treat it as a missing provider and fall back.
type unsupportedEventLog struct{}

func NewUnsupportedEventLog() EventQuerier {
	return unsupportedEventLog{}
}

func (unsupportedEventLog) Query(_ context.Context, logName string, _ time.Time) ([]Event, error) {
	errFactory := errors.New()
	return nil, errFactory.WithMessage(errors.ErrProviderNotFound,
		fmt.Sprintf("event log %q not available on this platform", logName))
}

// unsupportedCounters stands in on platforms without performance
// counters.
type unsupportedCounters struct{}

func NewUnsupportedCounters() CounterSampler {
	return unsupportedCounters{}
}

func (unsupportedCounters) Sample(_ context.Context, counter string) (float64, error) {
	errFactory := errors.New()
	return 0, errFactory.WithMessage(ErrCounterUnavailable,
		fmt.Sprintf("performance counter %q not available on this platform", counter))
}

// Sources bundles the OS access points the collector set is built from.
type Sources struct {
	Events   EventQuerier
	Counters CounterSampler
	Uptime   UptimeSource
	Pinger   Pinger
	Link     LinkInfoSource
}

// DefaultSources returns the portable defaults.
func DefaultSources() Sources {
	return Sources{
		Events:   NewUnsupportedEventLog(),
		Counters: NewUnsupportedCounters(),
		Uptime:   NewSystemUptime(),
		Pinger:   NewTCPPinger(),
		Link:     NewProcLink(),
	}
}

// Options configure the optional collectors.
type Options struct {
	SpeedTestEnabled bool
	SpeedTestBinary  string
	DNSTargets       []string
}

// DefaultSet builds the full collector set over the given sources.
func DefaultSet(src Sources, opts Options) []signal.Collector {
	return []signal.Collector{
		NewCPUThrottle(src.Events, src.Counters),
		NewMemPressure(src.Counters),
		NewIOLatency(src.Counters),
		NewBootPerf(src.Events, src.Uptime),
		NewDriverStability(src.Events),
		NewGPURootCause(src.Events),
		NewWHEA(src.Events),
		NewPowerLimit(src.Events, src.Counters),
		NewNetQuality(src.Pinger, src.Link, opts.DNSTargets),
		NewSpeedTest(opts.SpeedTestEnabled, opts.SpeedTestBinary),
	}
}
