// Package logging provides zerolog helpers shared across components.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger from the global one with a component
// identifier and the context hook attached.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger().Hook(ContextHook{})
}
