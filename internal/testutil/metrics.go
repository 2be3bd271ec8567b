package testutil

import (
	"context"

	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

// NewRecorderWithShutdown returns an in-memory recorder, with no exporters,
// and a shutdown that always succeeds.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	rec := metrics.NewRecorder()
	return rec, func(context.Context) error { return nil }
}
