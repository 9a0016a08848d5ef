package reportstore

import (
	"context"

	"codeberg.org/mutker/syshealth/internal/score"
)

// Store keeps the latest computed health report. It is a single-slot
// mailbox, not a history: each save replaces the previous report.
type Store interface {
	Save(ctx context.Context, report *score.Report) error
	Latest(ctx context.Context) (*score.Report, error)
	Close() error
}
