package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// ErrListen is returned by servers built with NewFailingHTTPServer.
var ErrListen = errors.New("listen failure")

// StubHTTPServer records calls made by the server lifecycle. ListenAndServe
// returns ListenErr; Shutdown returns ShutdownErr, first waiting on Unblock
// (or ctx) when Unblock is set. It is safe for use across goroutines.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Unblock     chan struct{}

	mu        sync.Mutex
	listens   int
	shutdowns int
}

// NewFailingHTTPServer returns a server whose ListenAndServe fails immediately.
func NewFailingHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{AddrVal: ":0", ListenErr: ErrListen}
}

// NewClosedHTTPServer returns a server that reports a clean close on ListenAndServe.
func NewClosedHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{AddrVal: ":0", ListenErr: http.ErrServerClosed}
}

// NewBlockingHTTPServer returns a server whose Shutdown waits until Unblock
// is closed or the shutdown context expires.
func NewBlockingHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{AddrVal: ":0", Unblock: make(chan struct{})}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listens++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdowns++
	s.mu.Unlock()
	if s.Unblock != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Unblock:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}

// Listens reports how many times ListenAndServe ran.
func (s *StubHTTPServer) Listens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens
}

// Shutdowns reports how many times Shutdown ran.
func (s *StubHTTPServer) Shutdowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdowns
}
