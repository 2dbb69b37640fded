package profiler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/accentflow/internal/core/eventbus"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	server := New(0, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, server.Start(ctx), "Start() error")
	return server
}

func TestServer_StartAndShutdown(t *testing.T) {
	server := New(0, zerolog.Nop())
	require.NoError(t, server.Start(context.Background()))
	assert.Contains(t, server.Addr(), "127.0.0.1:")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(shutdownCtx), "Shutdown() error")
}

func TestServer_PprofEndpoints(t *testing.T) {
	baseURL := "http://" + startServer(t).Addr()

	for _, endpoint := range []string{
		"/debug/pprof/",
		"/debug/pprof/cmdline",
		"/debug/pprof/symbol",
	} {
		t.Run(endpoint, func(t *testing.T) {
			resp, err := http.Get(baseURL + endpoint)
			require.NoError(t, err, "GET %s error", endpoint)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestServer_EventCounts(t *testing.T) {
	server := startServer(t)

	bus := eventbus.New(1)
	server.Observe(bus)

	bus.PublishCycleStarted(eventbus.CycleStartedPayload{Base: 'e'})
	bus.PublishCycleStarted(eventbus.CycleStartedPayload{Base: 'a'}) // buffer full

	counts := server.Counts()
	assert.Equal(t, 1, counts.Published[eventbus.EventCycleStarted])
	assert.Equal(t, 1, counts.Dropped[eventbus.EventCycleStarted])

	resp, err := http.Get("http://" + server.Addr() + "/debug/events")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var got EventCounts
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, counts, got)
}
