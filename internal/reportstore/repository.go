package reportstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/logger"
	"codeberg.org/mutker/syshealth/internal/score"

	_ "github.com/mattn/go-sqlite3"
)

type Repository interface {
	Save(ctx context.Context, report *score.Report) error
	Latest(ctx context.Context) (*score.Report, error)
	Close() error
}

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing report repository at: %s", cfg.DBPath)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteRepository{db: db}, nil
}

func (r *sqliteRepository) Save(ctx context.Context, report *score.Report) error {
	errFactory := errors.New()

	payload, err := json.Marshal(report)
	if err != nil {
		return errFactory.Wrap(ErrEncodeReport, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO report (id, computed_at, health_score, payload)
        VALUES (1, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            computed_at = excluded.computed_at,
            health_score = excluded.health_score,
            payload = excluded.payload
    `,
		report.ComputedAt.Unix(),
		report.GlobalHealthScore,
		string(payload),
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Latest(ctx context.Context) (*score.Report, error) {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM report WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errFactory.New(ErrNoReport)
	}
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}

	var report score.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, errFactory.Wrap(ErrDecodeReport, err)
	}

	return &report, nil
}

func (r *sqliteRepository) Close() error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		if err := r.db.Close(); err != nil {
			return errFactory.Wrap(ErrStorageClose, err)
		}
		r.db = nil
	}

	return nil
}
