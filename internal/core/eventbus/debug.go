package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger registers bus hooks that log all event activity.
// Accent events carry their payload so a log file can reconstruct what the
// user typed; drops and subscriber panics are logged as warnings/errors.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		e := logger.Debug().Str("event", string(event))
		switch p := payload.(type) {
		case CycleStartedPayload:
			e = e.Str("base", string(p.Base)).Str("variant", p.Variant)
		case CycleAdvancedPayload:
			e = e.Str("base", string(p.Base)).Str("variant", p.Variant).Int("index", p.Index)
		case CycleCommittedPayload:
			e = e.Str("base", string(p.Base)).
				Str("variant", p.Variant).
				Str("reason", p.Reason).
				Bool("detached", p.Detached)
		case CycleSkippedPayload:
			e = e.Str("base", string(p.Base)).Str("reason", p.Reason)
		case ModifierChangedPayload:
			e = e.Bool("armed", p.Armed)
		case StatusChangedPayload:
			e = e.Str("from", p.From).Str("to", p.To)
		}
		e.Msg("event fired")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}
