package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
)

// httpServer abstracts the HTTP server implementation for easier testing.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// netHTTPServer binds its own listener so Addr can report the real port
// when configured with ":0".
type netHTTPServer struct {
	srv *http.Server

	mu       sync.Mutex
	listener net.Listener
}

func newNetHTTPServer(srv *http.Server) *netHTTPServer {
	return &netHTTPServer{srv: srv}
}

func (s *netHTTPServer) ListenAndServe() error {
	ln, err := s.bind()
	if err != nil {
		return err
	}
	return s.srv.Serve(ln)
}

func (s *netHTTPServer) bind() (net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener, nil
	}
	addr := s.srv.Addr
	if addr == "" {
		addr = ":http"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	return ln, nil
}

func (s *netHTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Addr is the bound address once listening, else the configured one.
func (s *netHTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.srv.Addr
}

func (s *netHTTPServer) Handler() http.Handler {
	return s.srv.Handler
}
