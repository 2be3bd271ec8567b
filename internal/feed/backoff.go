package feed

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 30 * time.Second
)

// BackoffConfig bounds reconnect delays for streaming sources.
type BackoffConfig struct {
	Initial time.Duration
	Max     time.Duration
}

func (c BackoffConfig) build() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultInitialBackoff
	if c.Initial > 0 {
		b.InitialInterval = c.Initial
	}
	b.MaxInterval = defaultMaxBackoff
	if c.Max > 0 {
		b.MaxInterval = c.Max
	}
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	// Never give up; the feed is expected to come back.
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// sleep waits d or until ctx ends, reporting whether the wait completed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
