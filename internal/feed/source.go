// Package feed delivers raw scoreboard payloads from an upstream channel to
// a handler. Every source delivers synchronously, so at most one payload is
// in flight at a time.
package feed

import (
	"context"
	"time"
)

// Handler consumes one raw payload. A returned error is logged by the source;
// it never stops the source.
type Handler func(ctx context.Context, payload []byte) error

// Source produces payloads until ctx is cancelled.
type Source interface {
	Name() string
	Run(ctx context.Context, handle Handler) error
	Status() Status
}

// Status describes the connection health of a source.
type Status struct {
	Source      string    `json:"source"`
	Connected   bool      `json:"connected"`
	Messages    int       `json:"messages"`
	Reconnects  int       `json:"reconnects"`
	LastMessage time.Time `json:"lastMessage"`
	LastError   string    `json:"lastError,omitempty"`
}
