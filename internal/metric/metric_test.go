package metric_test

import (
	"encoding/json"
	"testing"

	"codeberg.org/mutker/syshealth/internal/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSome(t *testing.T) {
	v := metric.Some(72.5)

	assert.True(t, v.Available())
	assert.Empty(t, v.Reason())

	got, ok := v.Get()
	assert.True(t, ok)
	assert.InDelta(t, 72.5, got, 0.001)
	assert.InDelta(t, 72.5, v.OrElse(0), 0.001)
}

func TestSomeZeroIsAvailable(t *testing.T) {
	// A real 0°C reading must stay distinguishable from "no reading".
	v := metric.Some(0.0)

	assert.True(t, v.Available())
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Zero(t, got)
}

func TestNone(t *testing.T) {
	v := metric.None[int]("sensor disabled in firmware")

	assert.False(t, v.Available())
	assert.Equal(t, "sensor disabled in firmware", v.Reason())

	_, ok := v.Get()
	assert.False(t, ok)
	assert.Equal(t, 42, v.OrElse(42))
}

func TestNoneEmptyReasonNormalized(t *testing.T) {
	v := metric.None[int]("")

	assert.False(t, v.Available())
	assert.NotEmpty(t, v.Reason(), "unavailable values must always carry a reason")
}

func TestInvalid(t *testing.T) {
	v := metric.Invalid[float64]("temperature 412C above plausible range")

	assert.False(t, v.Available())
	assert.Contains(t, v.Reason(), "invalid reading")
	assert.Contains(t, v.Reason(), "412C")
}

func TestMarshalAvailable(t *testing.T) {
	data, err := json.Marshal(metric.Some(55.0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":55,"available":true,"reason":null}`, string(data))
}

func TestMarshalUnavailable(t *testing.T) {
	data, err := json.Marshal(metric.None[float64]("nvml init failed"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null,"available":false,"reason":"nvml init failed"}`, string(data))
}

func TestUnmarshalRoundTrip(t *testing.T) {
	var v metric.Value[int]
	require.NoError(t, json.Unmarshal([]byte(`{"value":7,"available":true,"reason":null}`), &v))
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, got)

	var missing metric.Value[int]
	require.NoError(t, json.Unmarshal([]byte(`{"value":null,"available":false,"reason":"not collected"}`), &missing))
	assert.False(t, missing.Available())
	assert.Equal(t, "not collected", missing.Reason())
}

func TestUnmarshalInvariantNormalization(t *testing.T) {
	// available=true with a null value violates the invariant; the
	// decoded Value must come out unavailable with a reason.
	var v metric.Value[int]
	require.NoError(t, json.Unmarshal([]byte(`{"value":null,"available":true,"reason":null}`), &v))
	assert.False(t, v.Available())
	assert.NotEmpty(t, v.Reason())
}
