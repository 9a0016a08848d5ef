package signal

import "time"

// Ok returns an available result with the given quality.
func Ok(name string, value any, source string, quality Quality) Result {
	return Result{
		Name:      name,
		Available: true,
		Value:     value,
		Source:    source,
		Quality:   quality,
		Timestamp: time.Now(),
	}
}

// Unavailable returns an error-quality result for a failed collection.
// The reason must be specific; a generic "unknown error" is a defect.
func Unavailable(name, reason, source string) Result {
	if reason == "" {
		reason = "collection failed without recorded reason"
	}

	return Result{
		Name:      name,
		Available: false,
		Source:    source,
		Quality:   QualityError,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// Skipped returns a non-error unavailable result for a signal that was
// deliberately not collected (feature disabled, optional dependency
// absent). Skipped signals never count as collector errors.
func Skipped(name, reason, source string) Result {
	return Result{
		Name:      name,
		Available: false,
		Source:    source,
		Quality:   QualityOK,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// WithNotes returns a copy of r with notes attached.
func (r Result) WithNotes(notes string) Result {
	r.Notes = notes
	return r
}
