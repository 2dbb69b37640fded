package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies script and file tags from the event context onto the
// log line. Attach the context with Event.Ctx.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if s := GetScript(ctx); s != "" {
		e.Str("script", s)
	}
	if f := GetFile(ctx); f != "" {
		e.Str("file", f)
	}
}
