package sensors

import (
	"fmt"

	"codeberg.org/mutker/syshealth/internal/metric"
)

// Physical plausibility bounds. Readings outside these ranges are
// discarded as invalid rather than surfaced as real measurements.
const (
	minPlausibleTempC = -20.0
	maxPlausibleTempC = 150.0
)

// ValidTempC wraps a temperature reading, rejecting values no silicon
// could report.
func ValidTempC(v float64) metric.Value[float64] {
	if v < minPlausibleTempC || v > maxPlausibleTempC {
		return metric.Invalid[float64](fmt.Sprintf("temperature %.1fC outside [%.0f,%.0f]", v, minPlausibleTempC, maxPlausibleTempC))
	}

	return metric.Some(v)
}

// ValidPercent wraps a percentage reading, rejecting values outside [0,100].
func ValidPercent(v float64) metric.Value[float64] {
	if v < 0 || v > 100 {
		return metric.Invalid[float64](fmt.Sprintf("percentage %.1f outside [0,100]", v))
	}

	return metric.Some(v)
}

// ValidNonNegative wraps a reading that can never be negative (byte
// counts, megabytes).
func ValidNonNegative(v float64) metric.Value[float64] {
	if v < 0 {
		return metric.Invalid[float64](fmt.Sprintf("negative reading %.1f", v))
	}

	return metric.Some(v)
}
