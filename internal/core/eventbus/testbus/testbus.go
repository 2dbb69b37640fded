// Package testbus provides test utilities for the event bus.
// It wraps a real EventBus with event recording and assertion helpers.
package testbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/colonyops/accentflow/internal/core/eventbus"
)

// RecordedEvent holds a captured event name and payload.
type RecordedEvent struct {
	Event   eventbus.Event
	Payload any
}

// Bus wraps a real EventBus with event recording for tests.
type Bus struct {
	*eventbus.EventBus

	mu     sync.Mutex
	events []RecordedEvent
}

// New creates a test bus, starts it in a background goroutine, and records
// every event type. The bus is stopped when the test completes.
func New(t *testing.T) *Bus {
	t.Helper()

	bus := eventbus.New(256)
	ctx, cancel := context.WithCancel(context.Background())

	tb := &Bus{EventBus: bus}

	bus.SubscribeConfigReloaded(func(p eventbus.ConfigReloadedPayload) {
		tb.record(eventbus.EventConfigReloaded, p)
	})
	bus.SubscribeCycleAdvanced(func(p eventbus.CycleAdvancedPayload) {
		tb.record(eventbus.EventCycleAdvanced, p)
	})
	bus.SubscribeCycleCommitted(func(p eventbus.CycleCommittedPayload) {
		tb.record(eventbus.EventCycleCommitted, p)
	})
	bus.SubscribeCycleSkipped(func(p eventbus.CycleSkippedPayload) {
		tb.record(eventbus.EventCycleSkipped, p)
	})
	bus.SubscribeCycleStarted(func(p eventbus.CycleStartedPayload) {
		tb.record(eventbus.EventCycleStarted, p)
	})
	bus.SubscribeEditorStarted(func(p eventbus.EditorStartedPayload) {
		tb.record(eventbus.EventEditorStarted, p)
	})
	bus.SubscribeEditorStopped(func(p eventbus.EditorStoppedPayload) {
		tb.record(eventbus.EventEditorStopped, p)
	})
	bus.SubscribeModifierChanged(func(p eventbus.ModifierChangedPayload) {
		tb.record(eventbus.EventModifierChanged, p)
	})
	bus.SubscribeStatusChanged(func(p eventbus.StatusChangedPayload) {
		tb.record(eventbus.EventStatusChanged, p)
	})

	go bus.Start(ctx)
	t.Cleanup(cancel)

	return tb
}

func (tb *Bus) record(event eventbus.Event, payload any) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.events = append(tb.events, RecordedEvent{Event: event, Payload: payload})
}

// Events returns a copy of all recorded events.
func (tb *Bus) Events() []RecordedEvent {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	out := make([]RecordedEvent, len(tb.events))
	copy(out, tb.events)
	return out
}

// Payloads returns the recorded payloads for one event type, in order.
func (tb *Bus) Payloads(event eventbus.Event) []any {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	var out []any
	for _, e := range tb.events {
		if e.Event == event {
			out = append(out, e.Payload)
		}
	}
	return out
}

// WaitFor blocks until at least n events of the given type are recorded or
// the timeout expires.
func (tb *Bus) WaitFor(event eventbus.Event, n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		if len(tb.Payloads(event)) >= n {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}

// AssertPublished asserts that an event of the given type was recorded.
func (tb *Bus) AssertPublished(t *testing.T, event eventbus.Event) {
	t.Helper()
	if !tb.WaitFor(event, 1, 500*time.Millisecond) {
		t.Errorf("expected event %q to be published, but it was not", event)
	}
}

// AssertNotPublished asserts that an event of the given type was NOT
// recorded within the given wait period.
func (tb *Bus) AssertNotPublished(t *testing.T, event eventbus.Event, wait time.Duration) {
	t.Helper()
	time.Sleep(wait)
	if len(tb.Payloads(event)) > 0 {
		t.Errorf("expected event %q to NOT be published, but it was", event)
	}
}
