package labels

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Fallback tries a primary engine and recovers every failure through a
// backup engine. The primary's error is logged, never surfaced: callers
// always get a label.
type Fallback struct {
	primary Engine
	backup  Engine
	logger  *log.Logger
}

var _ Engine = (*Fallback)(nil)

// WithFallback wraps primary so that any failure is recovered by backup.
// The backup is expected to be infallible (typically Local). Pass nil for
// logger to discard recovery notices.
func WithFallback(primary, backup Engine, logger *log.Logger) *Fallback {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Fallback{primary: primary, backup: backup, logger: logger}
}

// DifferenceLabel returns the primary result, or the backup's on failure.
func (f *Fallback) DifferenceLabel(ctx context.Context, req DifferenceRequest) (DifferenceLabel, error) {
	out, err := f.primary.DifferenceLabel(ctx, req)
	if err == nil {
		return out, nil
	}
	f.logger.Warn("label service failed, using local formatter", "task", "difference", "err", err)
	return f.backup.DifferenceLabel(ctx, req)
}

// CAGRLabel returns the primary result, or the backup's on failure.
func (f *Fallback) CAGRLabel(ctx context.Context, req CAGRRequest) (string, error) {
	out, err := f.primary.CAGRLabel(ctx, req)
	if err == nil {
		return out, nil
	}
	f.logger.Warn("label service failed, using local formatter", "task", "cagr", "err", err)
	return f.backup.CAGRLabel(ctx, req)
}
