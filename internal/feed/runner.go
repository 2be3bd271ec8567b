package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/saturday-stats/internal/logging"
)

// Runner owns the goroutine a Source runs on.
type Runner struct {
	source Source
	handle Handler
	logger *slog.Logger

	startMu  sync.Mutex
	started  bool
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// NewRunner pairs source with the handler it should feed.
func NewRunner(source Source, handle Handler, logger *slog.Logger) *Runner {
	return &Runner{
		source: source,
		handle: handle,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start runs the source in the background until ctx is cancelled or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.startMu.Lock()
	defer r.startMu.Unlock()
	if r.started {
		return
	}
	r.started = true

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	go func() {
		defer close(r.done)
		logging.Info(r.logger, "feed started", logging.FieldSource, r.source.Name())
		err := r.source.Run(runCtx, r.handle)
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error(r.logger, "feed stopped with error", err, logging.FieldSource, r.source.Name())
			return
		}
		logging.Info(r.logger, "feed stopped", logging.FieldSource, r.source.Name())
	}()
}

// Stop cancels the source and waits for it to return or for ctx to expire.
func (r *Runner) Stop(ctx context.Context) error {
	r.startMu.Lock()
	started := r.started
	r.startMu.Unlock()
	if !started {
		return nil
	}

	r.stopOnce.Do(func() {
		r.cancel()
	})
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status reports the source's connection health.
func (r *Runner) Status() Status {
	return r.source.Status()
}

// Source exposes the wrapped source.
func (r *Runner) Source() Source {
	return r.source
}
