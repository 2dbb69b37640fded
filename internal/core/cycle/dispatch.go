package cycle

// Handler processes one event synchronously.
type Handler func(Event) Result

// Dispatcher maps event kinds to handlers. Unknown kinds are ignored.
type Dispatcher struct {
	handlers map[EventKind]Handler
}

// NewDispatcher builds the dispatch table for c.
func NewDispatcher(c *Controller) *Dispatcher {
	return &Dispatcher{
		handlers: map[EventKind]Handler{
			EventKeyDown: c.HandleKeyDown,
			EventKeyUp:   c.HandleKeyUp,
			EventFocusLost: func(Event) Result {
				c.FocusLost()
				return Result{Action: ActionAbort}
			},
			EventVisibility: func(ev Event) Result {
				c.VisibilityChanged(ev.Hidden)
				if ev.Hidden {
					return Result{Action: ActionAbort}
				}
				return Result{Action: ActionIgnore}
			},
		},
	}
}

// Dispatch runs the handler registered for ev.Kind.
func (d *Dispatcher) Dispatch(ev Event) Result {
	h, ok := d.handlers[ev.Kind]
	if !ok {
		return Result{Action: ActionIgnore}
	}
	return h(ev)
}
