package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle. Bind
// acquires the listener synchronously so callers know the port is held (or
// free) the moment the call returns.
type Server struct {
	httpServer *http.Server
	ln         net.Listener
}

// Centralized tuning knobs. ReadTimeout stays unset: the websocket stream
// holds connections open for its own pong deadline.
const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// normalizeAddr accepts "8080" or ":8080".
func normalizeAddr(port string) string {
	if port == "" || strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// Bind builds the underlying http.Server and acquires the port. It must be
// called before Serve; splitting the bind from the blocking accept loop
// lets a Shutdown issued at any point find the listener.
func (s *Server) Bind(port string, handler http.Handler) error {
	s.httpServer = newHTTPServer(normalizeAddr(port), handler)
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

// Serve blocks on the bound listener until the server stops. A Shutdown
// issued before Serve makes it return http.ErrServerClosed immediately.
func (s *Server) Serve() error {
	return s.httpServer.Serve(s.ln)
}

// Run starts the HTTP server on the given port using the provided handler.
// It blocks until the server stops.
func (s *Server) Run(port string, handler http.Handler) error {
	if err := s.Bind(port, handler); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully stops the server, allowing in-flight requests to
// complete. The listener is released by the time it returns, even if Serve
// was never reached.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	err := s.httpServer.Shutdown(ctx)
	if s.ln != nil {
		// Already closed when Serve ran; this covers a shutdown that beat
		// the accept loop.
		_ = s.ln.Close()
	}
	return err
}
