package collectors_test

import (
	"context"
	"time"

	"codeberg.org/mutker/syshealth/internal/collectors"
	"codeberg.org/mutker/syshealth/internal/errors"
)

// fakeEvents serves canned events per log name, or a coded error.
type fakeEvents struct {
	logs      map[string][]collectors.Event
	errCode   errors.ErrorCode
	lastSince time.Time
}

func (f *fakeEvents) Query(_ context.Context, logName string, since time.Time) ([]collectors.Event, error) {
	f.lastSince = since
	if f.errCode != "" {
		return nil, errors.New().New(f.errCode)
	}

	var out []collectors.Event
	for _, e := range f.logs[logName] {
		if !e.Time.Before(since) {
			out = append(out, e)
		}
	}

	return out, nil
}

// fakeCounters serves a fixed value per counter path.
type fakeCounters struct {
	values map[string]float64
	err    error
}

func (f *fakeCounters) Sample(_ context.Context, counter string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}

	v, ok := f.values[counter]
	if !ok {
		return 0, errors.New().New(collectors.ErrCounterUnavailable)
	}

	return v, nil
}

// fakeUptime serves a fixed uptime.
type fakeUptime struct {
	d   time.Duration
	err error
}

func (f *fakeUptime) Uptime() (time.Duration, error) {
	return f.d, f.err
}

// fakePinger serves a fixed RTT per target; a zero RTT means loss.
type fakePinger struct {
	rtts map[string]time.Duration
}

func (f *fakePinger) Ping(_ context.Context, target string) (time.Duration, error) {
	rtt, ok := f.rtts[target]
	if !ok || rtt == 0 {
		return 0, errors.New().New(errors.ErrCollectTimeout)
	}

	return rtt, nil
}

// fakeLink serves fixed link info and gateway.
type fakeLink struct {
	info    collectors.LinkInfo
	gateway string
	err     error
}

func (f *fakeLink) LinkInfo() (collectors.LinkInfo, error) {
	return f.info, f.err
}

func (f *fakeLink) Gateway() (string, error) {
	if f.gateway == "" {
		return "", errors.New().New(errors.ErrCollectFailed)
	}

	return f.gateway, nil
}

func eventAt(age time.Duration, provider string, id, level int) collectors.Event {
	return collectors.Event{
		Time:     time.Now().Add(-age),
		Provider: provider,
		ID:       id,
		Level:    level,
	}
}

const day = 24 * time.Hour
