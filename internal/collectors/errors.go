package collectors

import (
	"fmt"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/signal"
)

const (
	ErrCounterUnavailable = errors.ErrorCode("collector_counter_unavailable")
	ErrNoSamples          = errors.ErrorCode("collector_no_samples")
	ErrExecNotFound       = errors.ErrorCode("collector_exec_not_found")
	ErrExecFailed         = errors.ErrorCode("collector_exec_failed")
	ErrParseOutput        = errors.ErrorCode("collector_parse_output_failed")
)

// safeCollect runs fn and converts a panic into an unavailable result so
// no collector failure crosses its own boundary.
func safeCollect(name, source string, fn func() signal.Result) (result signal.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = signal.Unavailable(name, fmt.Sprintf("internal collector failure: %v", r), source)
		}
	}()

	return fn()
}

// accessDeniedReason builds the mandatory specific reason for a
// permissions failure. Permission problems are never downgraded into
// "no issue found".
func accessDeniedReason(what string) string {
	return "access denied reading " + what + "; run with elevated privileges"
}
