package eventbus_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/accentflow/internal/core/eventbus"
	"github.com/colonyops/accentflow/internal/core/eventbus/testbus"
)

func TestRegisterDebugLogger(t *testing.T) {
	tb := testbus.New(t)

	var buf bytes.Buffer
	eventbus.RegisterDebugLogger(tb.EventBus, zerolog.New(&buf).Level(zerolog.DebugLevel))

	tb.PublishCycleStarted(eventbus.CycleStartedPayload{Base: 'e', Variant: "é"})
	tb.PublishCycleCommitted(eventbus.CycleCommittedPayload{Base: 'e', Variant: "è", Index: 1, Reason: "release"})

	tb.AssertPublished(t, eventbus.EventCycleCommitted)

	out := buf.String()
	assert.Contains(t, out, `"event":"cycle.started"`)
	assert.Contains(t, out, `"variant":"è"`)
	assert.Contains(t, out, `"reason":"release"`)
}

func TestBus_DropsWhenFull(t *testing.T) {
	bus := eventbus.New(1)

	var dropped []eventbus.Event
	bus.OnDrop(func(e eventbus.Event, _ any) { dropped = append(dropped, e) })

	// Not started: the first publish fills the buffer, the second drops.
	bus.PublishModifierChanged(eventbus.ModifierChangedPayload{Armed: true})
	bus.PublishModifierChanged(eventbus.ModifierChangedPayload{Armed: false})

	assert.Equal(t, []eventbus.Event{eventbus.EventModifierChanged}, dropped)
}

func TestBus_NilPublishIsNoop(t *testing.T) {
	var bus *eventbus.EventBus
	assert.NotPanics(t, func() {
		bus.PublishCycleStarted(eventbus.CycleStartedPayload{Base: 'a'})
	})
}

func TestBus_SubscriberPanicRecovered(t *testing.T) {
	bus := eventbus.New(8)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	panicked := make(chan any, 1)
	delivered := make(chan struct{}, 1)

	bus.OnPanic(func(_ eventbus.Event, _ any, r any) { panicked <- r })
	bus.SubscribeStatusChanged(func(eventbus.StatusChangedPayload) { panic("boom") })
	bus.SubscribeStatusChanged(func(eventbus.StatusChangedPayload) { delivered <- struct{}{} })

	go bus.Start(ctx)
	bus.PublishStatusChanged(eventbus.StatusChangedPayload{From: "idle", To: "armed"})

	select {
	case r := <-panicked:
		assert.Equal(t, "boom", r)
	case <-time.After(time.Second):
		require.FailNow(t, "panic hook not called")
	}

	select {
	case <-delivered:
	case <-time.After(time.Second):
		require.FailNow(t, "second subscriber not called")
	}
}
