package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"thermostat_controller/internal/logger"
)

// teardownTimeout bounds the drain of the outgoing route set during a mode
// switch.
const teardownTimeout = 5 * time.Second

// Switcher serves exactly one of two route sets on a single port. A Serve
// call first drains whatever set is live, then binds the requested one, so
// the normal API and the provisioning portal are never reachable together.
type Switcher struct {
	port         string
	normal       http.Handler
	provisioning http.Handler
	log          *logger.Logger

	mu      sync.Mutex
	current *Server
}

func NewSwitcher(port string, normal, provisioning http.Handler, log *logger.Logger) *Switcher {
	return &Switcher{
		port:         port,
		normal:       normal,
		provisioning: provisioning,
		log:          log,
	}
}

// ServeNormal activates the normal operation route set.
func (s *Switcher) ServeNormal() error {
	return s.serve("normal", s.normal)
}

// ServeProvisioning activates the setup portal route set.
func (s *Switcher) ServeProvisioning() error {
	return s.serve("provisioning", s.provisioning)
}

func (s *Switcher) serve(name string, handler http.Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
		err := s.current.Shutdown(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("tear down previous route set: %w", err)
		}
		s.current = nil
	}

	// Bind synchronously so the accept loop in the goroutine can never race
	// a Shutdown: by the time serve returns, the port is held by the new
	// set, and a later Shutdown always finds the listener.
	srv := &Server{}
	if err := srv.Bind(s.port, handler); err != nil {
		return fmt.Errorf("bind %s route set: %w", name, err)
	}
	s.current = srv
	go func() {
		if err := srv.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("http_server_stopped", "routes", name, "err", err)
		}
	}()
	s.log.Infow("route set active", "routes", name, "port", s.port)
	return nil
}

// Shutdown drains the live route set, if any.
func (s *Switcher) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	err := s.current.Shutdown(ctx)
	s.current = nil
	return err
}
