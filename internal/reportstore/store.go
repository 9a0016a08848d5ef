// Package reportstore persists the latest health report to a local
// sqlite database. Disabled by default; when disabled the service is a
// no-op so callers never branch on configuration.
package reportstore

import (
	"context"

	"codeberg.org/mutker/syshealth/internal/errors"
	"codeberg.org/mutker/syshealth/internal/score"
)

type service struct {
	repo Repository
	cfg  Config
}

func NewService(cfg Config) (Store, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		return &noopStore{}, nil
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) Save(ctx context.Context, report *score.Report) error {
	errFactory := errors.New()

	if report == nil {
		return errFactory.New(ErrInvalidReport)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		return s.repo.Save(ctx, report)
	}
}

func (s *service) Latest(ctx context.Context) (*score.Report, error) {
	return s.repo.Latest(ctx)
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.repo.Close(); err != nil {
		return errFactory.Wrap(ErrServiceShutdown, err)
	}
	return nil
}

type noopStore struct{}

func (noopStore) Save(_ context.Context, _ *score.Report) error { return nil }

func (noopStore) Latest(_ context.Context) (*score.Report, error) {
	return nil, errors.New().New(ErrNoReport)
}

func (noopStore) Close() error { return nil }
