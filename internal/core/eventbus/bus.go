package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus fans events out to subscribers on a single goroutine.
// A nil *EventBus accepts publishes and drops them.
type EventBus struct {
	ch chan envelope

	mu   sync.RWMutex
	subs map[Event][]func(any)

	hooks hooks
}

// New creates a bus with the given buffer size. Call Start to begin delivery.
func New(buffer int) *EventBus {
	if buffer < 1 {
		buffer = 1
	}
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start delivers queued events until ctx is cancelled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.deliver(env)
		}
	}
}

func (bus *EventBus) deliver(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

func (bus *EventBus) publish(event Event, payload any) {
	if bus == nil {
		return
	}
	bus.send(event, payload)
}

// PublishConfigReloaded publishes EventConfigReloaded.
func (bus *EventBus) PublishConfigReloaded(p ConfigReloadedPayload) {
	bus.publish(EventConfigReloaded, p)
}

// SubscribeConfigReloaded registers fn for EventConfigReloaded.
func (bus *EventBus) SubscribeConfigReloaded(fn func(ConfigReloadedPayload)) {
	bus.subscribe(EventConfigReloaded, func(p any) { fn(p.(ConfigReloadedPayload)) })
}

// PublishCycleAdvanced publishes EventCycleAdvanced.
func (bus *EventBus) PublishCycleAdvanced(p CycleAdvancedPayload) {
	bus.publish(EventCycleAdvanced, p)
}

// SubscribeCycleAdvanced registers fn for EventCycleAdvanced.
func (bus *EventBus) SubscribeCycleAdvanced(fn func(CycleAdvancedPayload)) {
	bus.subscribe(EventCycleAdvanced, func(p any) { fn(p.(CycleAdvancedPayload)) })
}

// PublishCycleCommitted publishes EventCycleCommitted.
func (bus *EventBus) PublishCycleCommitted(p CycleCommittedPayload) {
	bus.publish(EventCycleCommitted, p)
}

// SubscribeCycleCommitted registers fn for EventCycleCommitted.
func (bus *EventBus) SubscribeCycleCommitted(fn func(CycleCommittedPayload)) {
	bus.subscribe(EventCycleCommitted, func(p any) { fn(p.(CycleCommittedPayload)) })
}

// PublishCycleSkipped publishes EventCycleSkipped.
func (bus *EventBus) PublishCycleSkipped(p CycleSkippedPayload) {
	bus.publish(EventCycleSkipped, p)
}

// SubscribeCycleSkipped registers fn for EventCycleSkipped.
func (bus *EventBus) SubscribeCycleSkipped(fn func(CycleSkippedPayload)) {
	bus.subscribe(EventCycleSkipped, func(p any) { fn(p.(CycleSkippedPayload)) })
}

// PublishCycleStarted publishes EventCycleStarted.
func (bus *EventBus) PublishCycleStarted(p CycleStartedPayload) {
	bus.publish(EventCycleStarted, p)
}

// SubscribeCycleStarted registers fn for EventCycleStarted.
func (bus *EventBus) SubscribeCycleStarted(fn func(CycleStartedPayload)) {
	bus.subscribe(EventCycleStarted, func(p any) { fn(p.(CycleStartedPayload)) })
}

// PublishEditorStarted publishes EventEditorStarted.
func (bus *EventBus) PublishEditorStarted(p EditorStartedPayload) {
	bus.publish(EventEditorStarted, p)
}

// SubscribeEditorStarted registers fn for EventEditorStarted.
func (bus *EventBus) SubscribeEditorStarted(fn func(EditorStartedPayload)) {
	bus.subscribe(EventEditorStarted, func(p any) { fn(p.(EditorStartedPayload)) })
}

// PublishEditorStopped publishes EventEditorStopped.
func (bus *EventBus) PublishEditorStopped(p EditorStoppedPayload) {
	bus.publish(EventEditorStopped, p)
}

// SubscribeEditorStopped registers fn for EventEditorStopped.
func (bus *EventBus) SubscribeEditorStopped(fn func(EditorStoppedPayload)) {
	bus.subscribe(EventEditorStopped, func(p any) { fn(p.(EditorStoppedPayload)) })
}

// PublishModifierChanged publishes EventModifierChanged.
func (bus *EventBus) PublishModifierChanged(p ModifierChangedPayload) {
	bus.publish(EventModifierChanged, p)
}

// SubscribeModifierChanged registers fn for EventModifierChanged.
func (bus *EventBus) SubscribeModifierChanged(fn func(ModifierChangedPayload)) {
	bus.subscribe(EventModifierChanged, func(p any) { fn(p.(ModifierChangedPayload)) })
}

// PublishStatusChanged publishes EventStatusChanged.
func (bus *EventBus) PublishStatusChanged(p StatusChangedPayload) {
	bus.publish(EventStatusChanged, p)
}

// SubscribeStatusChanged registers fn for EventStatusChanged.
func (bus *EventBus) SubscribeStatusChanged(fn func(StatusChangedPayload)) {
	bus.subscribe(EventStatusChanged, func(p any) { fn(p.(StatusChangedPayload)) })
}
