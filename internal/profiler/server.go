// Package profiler serves pprof and event bus counters on a local port for
// debugging a running editor.
package profiler

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/accentflow/internal/core/eventbus"
)

type Server struct {
	httpServer *http.Server
	listener   net.Listener
	port       int
	logger     zerolog.Logger

	mu        sync.Mutex
	published map[eventbus.Event]int
	dropped   map[eventbus.Event]int
}

// New creates a server for 127.0.0.1:port. Port 0 picks a free port.
func New(port int, logger zerolog.Logger) *Server {
	s := &Server{
		port:      port,
		logger:    logger,
		published: map[eventbus.Event]int{},
		dropped:   map[eventbus.Event]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/events", s.serveEvents)

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Observe counts every event published or dropped on bus.
func (s *Server) Observe(bus *eventbus.EventBus) {
	bus.OnPublish(func(e eventbus.Event, _ any) {
		s.mu.Lock()
		s.published[e]++
		s.mu.Unlock()
	})
	bus.OnDrop(func(e eventbus.Event, _ any) {
		s.mu.Lock()
		s.dropped[e]++
		s.mu.Unlock()
	})
}

// EventCounts is the /debug/events response body.
type EventCounts struct {
	Published map[eventbus.Event]int `json:"published"`
	Dropped   map[eventbus.Event]int `json:"dropped"`
}

// Counts returns a copy of the event counters.
func (s *Server) Counts() EventCounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := EventCounts{
		Published: make(map[eventbus.Event]int, len(s.published)),
		Dropped:   make(map[eventbus.Event]int, len(s.dropped)),
	}
	for k, v := range s.published {
		out.Published[k] = v
	}
	for k, v := range s.dropped {
		out.Dropped[k] = v
	}
	return out
}

func (s *Server) serveEvents(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Counts()); err != nil {
		s.logger.Warn().Err(err).Msg("encode event counts")
	}
}

// Start listens and serves in the background. The server shuts down when
// ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener
	s.logger.Info().Str("addr", listener.Addr().String()).Msg("starting profiler server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("profiler server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down profiler server")
	return s.httpServer.Shutdown(ctx)
}
