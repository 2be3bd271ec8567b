package server

import (
	"context"

	"github.com/preston-bernstein/saturday-stats/internal/feed"
)

// Feed is the slice of feed.Runner the server drives.
type Feed interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() feed.Status
}

// Rotation is the slice of rotation.Scheduler the server drives.
type Rotation interface {
	Start()
	Stop()
}
