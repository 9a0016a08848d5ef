// Package metric provides the maybe-known value wrapper used for every
// measured quantity in the system. A disabled sensor reporting zero must
// never be confused with a real zero reading, so availability and the
// reason for unavailability travel with the value itself.
package metric

import "encoding/json"

// Value wraps a measurement that may be unavailable. Invariant: when
// available is false the value is absent and reason is non-empty; when
// available is true reason is empty.
type Value[T any] struct {
	value     *T
	available bool
	reason    string
}

// Some returns an available Value holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{value: &v, available: true}
}

// None returns an unavailable Value carrying the given reason. Reasons
// are expected to be specific; an empty reason is replaced so the
// availability invariant still holds.
func None[T any](reason string) Value[T] {
	if reason == "" {
		reason = "unavailable without recorded reason"
	}

	return Value[T]{reason: reason}
}

// Invalid returns an unavailable Value for a reading that was obtained
// but rejected as physically implausible.
func Invalid[T any](detail string) Value[T] {
	return None[T]("invalid reading: " + detail)
}

// Available reports whether the value was measured.
func (v Value[T]) Available() bool {
	return v.available
}

// Reason returns why the value is unavailable, or "" when it is available.
func (v Value[T]) Reason() string {
	return v.reason
}

// Get returns the measured value and whether it is available.
func (v Value[T]) Get() (T, bool) {
	if !v.available {
		var zero T
		return zero, false
	}

	return *v.value, true
}

// OrElse returns the measured value, or def when unavailable.
func (v Value[T]) OrElse(def T) T {
	if !v.available {
		return def
	}

	return *v.value
}

type valueJSON[T any] struct {
	Value     *T      `json:"value"`
	Available bool    `json:"available"`
	Reason    *string `json:"reason"`
}

// MarshalJSON implements the wire contract: value is null when
// unavailable, reason is null when available.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	out := valueJSON[T]{Value: v.value, Available: v.available}
	if !v.available {
		out.Reason = &v.reason
	}

	return json.Marshal(out)
}

// UnmarshalJSON restores a Value, normalizing any input that violates
// the availability invariant.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	var in valueJSON[T]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	if !in.Available || in.Value == nil {
		reason := ""
		if in.Reason != nil {
			reason = *in.Reason
		}
		*v = None[T](reason)

		return nil
	}

	*v = Some(*in.Value)

	return nil
}
