package scan

import (
	"fmt"

	"codeberg.org/mutker/syshealth/internal/metric"
)

// Probe is a safe-navigation cursor into the raw blob. Every step on a
// missing or mistyped node yields an empty probe instead of an error,
// so section evaluators stay uniformly defensive without nested
// conditionals.
type Probe struct {
	v  any
	ok bool
}

// Field descends into a map key.
func (p Probe) Field(key string) Probe {
	if !p.ok {
		return Probe{}
	}

	m, ok := p.v.(map[string]any)
	if !ok {
		return Probe{}
	}

	v, ok := m[key]
	if !ok || v == nil {
		return Probe{}
	}

	return Probe{v: v, ok: true}
}

// Index descends into an array element.
func (p Probe) Index(i int) Probe {
	if !p.ok {
		return Probe{}
	}

	arr, ok := p.v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Probe{}
	}
	if arr[i] == nil {
		return Probe{}
	}

	return Probe{v: arr[i], ok: true}
}

// Each returns one probe per element of an array node, or nil when the
// node is not an array.
func (p Probe) Each() []Probe {
	if !p.ok {
		return nil
	}

	arr, ok := p.v.([]any)
	if !ok {
		return nil
	}

	probes := make([]Probe, 0, len(arr))
	for _, v := range arr {
		probes = append(probes, Probe{v: v, ok: v != nil})
	}

	return probes
}

// Exists reports whether the probe points at a present node.
func (p Probe) Exists() bool {
	return p.ok
}

// Float extracts a numeric leaf. JSON numbers decode as float64 but
// hand-built blobs may carry native ints.
func (p Probe) Float() metric.Value[float64] {
	if !p.ok {
		return metric.None[float64]("value absent from raw scan")
	}

	switch n := p.v.(type) {
	case float64:
		return metric.Some(n)
	case float32:
		return metric.Some(float64(n))
	case int:
		return metric.Some(float64(n))
	case int64:
		return metric.Some(float64(n))
	default:
		return metric.None[float64](fmt.Sprintf("expected number, raw scan holds %T", p.v))
	}
}

// Int extracts an integer leaf, truncating JSON's float64 encoding.
func (p Probe) Int() metric.Value[int] {
	f := p.Float()
	v, ok := f.Get()
	if !ok {
		return metric.None[int](f.Reason())
	}

	return metric.Some(int(v))
}

// Bool extracts a boolean leaf.
func (p Probe) Bool() metric.Value[bool] {
	if !p.ok {
		return metric.None[bool]("value absent from raw scan")
	}

	b, ok := p.v.(bool)
	if !ok {
		return metric.None[bool](fmt.Sprintf("expected bool, raw scan holds %T", p.v))
	}

	return metric.Some(b)
}

// Str extracts a string leaf.
func (p Probe) Str() metric.Value[string] {
	if !p.ok {
		return metric.None[string]("value absent from raw scan")
	}

	s, ok := p.v.(string)
	if !ok {
		return metric.None[string](fmt.Sprintf("expected string, raw scan holds %T", p.v))
	}

	return metric.Some(s)
}
