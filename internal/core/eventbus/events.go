// Package eventbus provides a typed publish/subscribe event bus used to
// observe accent cycling from outside the controller.
//
// Publishing never blocks. Subscribers run on the bus goroutine and must not
// call back into the controller; they exist for logging and for forwarding
// notifications into the editor.
package eventbus

import (
	"github.com/colonyops/accentflow/internal/core/config"
)

// Event names a kind of notification.
type Event string

// Keep list sorted A-Z.
const (
	EventConfigReloaded  Event = "config.reloaded"
	EventCycleAdvanced   Event = "cycle.advanced"
	EventCycleCommitted  Event = "cycle.committed"
	EventCycleSkipped    Event = "cycle.skipped"
	EventCycleStarted    Event = "cycle.started"
	EventEditorStarted   Event = "editor.started"
	EventEditorStopped   Event = "editor.stopped"
	EventModifierChanged Event = "modifier.changed"
	EventStatusChanged   Event = "status.changed"
)

// AllEvents lists every event name.
var AllEvents = []Event{
	EventConfigReloaded,
	EventCycleAdvanced,
	EventCycleCommitted,
	EventCycleSkipped,
	EventCycleStarted,
	EventEditorStarted,
	EventEditorStopped,
	EventModifierChanged,
	EventStatusChanged,
}

// ConfigReloadedPayload is emitted after the config file changed on disk and
// was loaded successfully.
type ConfigReloadedPayload struct {
	Config *config.Config
}

// CycleStartedPayload is emitted when a substitution is inserted for a new
// base letter.
type CycleStartedPayload struct {
	Base    rune
	Variant string
}

// CycleAdvancedPayload is emitted when the live substitution moves to the
// next variant.
type CycleAdvancedPayload struct {
	Base    rune
	Variant string
	Index   int
}

// CycleCommittedPayload is emitted when a cycle ends. Detached is set when
// the node had already left the surface and nothing was written.
type CycleCommittedPayload struct {
	Base     rune
	Variant  string
	Index    int
	Reason   string
	Detached bool
}

// CycleSkippedPayload is emitted when a cycle could not start.
type CycleSkippedPayload struct {
	Base   rune
	Reason string
}

// EditorStartedPayload is emitted when the editor program starts.
type EditorStartedPayload struct{}

// EditorStoppedPayload is emitted when the editor program exits.
type EditorStoppedPayload struct{}

// ModifierChangedPayload is emitted when the accent modifier is armed or
// released.
type ModifierChangedPayload struct {
	Armed bool
}

// StatusChangedPayload is emitted when the status indicator changes state.
type StatusChangedPayload struct {
	From string
	To   string
}
