package feed

import (
	"sync"
	"time"
)

// tracker records connection events for Status.
type tracker struct {
	mu     sync.RWMutex
	status Status
	now    func() time.Time
}

func newTracker(name string) *tracker {
	return &tracker{status: Status{Source: name}, now: time.Now}
}

func (t *tracker) connected() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Connected = true
}

func (t *tracker) disconnected(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Connected = false
	if err != nil {
		t.status.LastError = err.Error()
	}
}

func (t *tracker) reconnecting() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Reconnects++
}

func (t *tracker) message() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Messages++
	t.status.LastMessage = t.now()
}

func (t *tracker) failed(err error) {
	if err == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.LastError = err.Error()
}

func (t *tracker) snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}
