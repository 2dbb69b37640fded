// Package cycle implements the accent-cycling state machine: holding the
// accent modifier and pressing a base letter repeatedly walks through that
// letter's variants, and the chosen one is committed as plain text when the
// modifier is released, focus is lost, or ordinary typing resumes.
//
// All handling is synchronous. A Controller must only be driven from one
// goroutine; hosts deliver events in order and each one runs to completion.
package cycle

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/colonyops/accentflow/internal/core/accent"
	"github.com/colonyops/accentflow/internal/core/eventbus"
)

// Reason explains why a cycle ended or failed to start.
type Reason string

const (
	ReasonTyping       Reason = "typing"
	ReasonSwitch       Reason = "switch"
	ReasonRelease      Reason = "release"
	ReasonFocus        Reason = "focus"
	ReasonHidden       Reason = "hidden"
	ReasonDetached     Reason = "detached"
	ReasonTableChanged Reason = "table-changed"
	ReasonShutdown     Reason = "shutdown"
	ReasonNoInsertion  Reason = "no-insertion-point"
)

// Deps are the collaborators a Controller drives. Surface and Table are
// required; the rest default to no-ops.
type Deps struct {
	Table    *accent.Table
	Surface  Surface
	Selector Selector
	Status   StatusIndicator
	Bus      *eventbus.EventBus
	Logger   zerolog.Logger
}

// Controller owns the modifier flag, the cycle state and the live node for
// one text surface.
type Controller struct {
	table    *accent.Table
	renderer *Renderer
	selector Selector
	indic    StatusIndicator
	bus      *eventbus.EventBus
	logger   zerolog.Logger

	mod    ModifierTracker
	state  State
	status Status

	dispatch *Dispatcher
}

// New creates a controller in the IDLE state.
func New(deps Deps) *Controller {
	c := &Controller{
		table:    deps.Table,
		renderer: NewRenderer(deps.Surface),
		selector: deps.Selector,
		indic:    deps.Status,
		bus:      deps.Bus,
		logger:   deps.Logger,
	}
	if c.selector == nil {
		c.selector = nopSelector{}
	}
	if c.indic == nil {
		c.indic = nopStatus{}
	}
	if c.table == nil {
		c.table = accent.Default()
	}
	c.dispatch = NewDispatcher(c)
	return c
}

// Dispatch routes ev through the dispatch table.
func (c *Controller) Dispatch(ev Event) Result {
	return c.dispatch.Dispatch(ev)
}

// Status returns what the status indicator currently shows.
func (c *Controller) Status() Status {
	return c.status
}

// Armed reports whether the accent modifier is held.
func (c *Controller) Armed() bool {
	return c.mod.Armed()
}

// State exposes the cycle state for read-only inspection.
func (c *Controller) State() *State {
	return &c.state
}

// Table returns the active accent table.
func (c *Controller) Table() *accent.Table {
	return c.table
}

// SetTable swaps the accent table. A live cycle is committed first so the
// stored index never refers to the wrong variant list.
func (c *Controller) SetTable(t *accent.Table) {
	if t == nil {
		return
	}
	c.end(ReasonTableChanged)
	c.table = t
	c.refreshStatus()
}

// HandleKeyDown classifies and applies a key-down event.
func (c *Controller) HandleKeyDown(ev Event) Result {
	action := Classify(ev, &c.state, c.table)

	switch action {
	case ActionArm:
		c.arm(ev.Mods)
	case ActionStart:
		c.start(ev.Rune)
		return Result{Action: action, Consumed: true}
	case ActionAdvance:
		c.advance(ev.Rune)
		return Result{Action: action, Consumed: true}
	case ActionAbort:
		c.end(ReasonTyping)
		c.refreshStatus()
	}

	return Result{Action: action}
}

// HandleKeyUp applies a key-up event. Releasing the accent modifier, or any
// key-up reported without it, ends the cycle.
func (c *Controller) HandleKeyUp(ev Event) Result {
	if ev.Key == KeyAccent || !ev.Mods.Has(ModAccent) {
		c.release(ReasonRelease)
		return Result{Action: ActionAbort}
	}

	// Swallow the release of a letter that was turned into a substitution.
	consumed := ev.Key == KeyRune && c.table.Has(ev.Rune)
	return Result{Action: ActionIgnore, Consumed: consumed}
}

// FocusLost commits the live cycle and disarms.
func (c *Controller) FocusLost() {
	c.release(ReasonFocus)
}

// VisibilityChanged commits and disarms when the surface becomes hidden.
func (c *Controller) VisibilityChanged(hidden bool) {
	if hidden {
		c.release(ReasonHidden)
	}
}

// Abort commits the live cycle, if any, without touching the modifier.
// It is a no-op when IDLE.
func (c *Controller) Abort() {
	c.end(ReasonShutdown)
	c.refreshStatus()
}

func (c *Controller) arm(mods Modifiers) {
	if c.mod.Press(mods) {
		c.bus.PublishModifierChanged(eventbus.ModifierChangedPayload{Armed: true})
	}
	c.refreshStatus()
}

func (c *Controller) release(reason Reason) {
	if c.mod.Release() {
		c.bus.PublishModifierChanged(eventbus.ModifierChangedPayload{Armed: false})
	}
	c.end(reason)
	c.refreshStatus()
}

// start commits any live cycle, then inserts variant 0 for base.
func (c *Controller) start(base rune) {
	c.end(ReasonSwitch)

	variants, _ := c.table.Variants(base)
	node, err := c.renderer.Render(variants[0])
	if err != nil {
		c.logger.Debug().Err(err).Str("base", string(base)).Msg("cycle not started")
		c.bus.PublishCycleSkipped(eventbus.CycleSkippedPayload{Base: base, Reason: string(ReasonNoInsertion)})
		c.refreshStatus()
		return
	}

	c.state.begin(base, node)
	c.selector.Show(base, variants, node, 0)
	c.bus.PublishCycleStarted(eventbus.CycleStartedPayload{Base: base, Variant: variants[0]})
	c.refreshStatus()
}

func (c *Controller) advance(base rune) {
	cur, _ := c.state.Index(base)
	next := accent.Wrap(cur+1, c.table.Len(base))
	variant, _ := c.table.Variant(base, next)

	if err := c.renderer.Rewrite(c.state.Node(), variant); err != nil {
		c.logger.Debug().Err(err).Str("base", string(base)).Msg("cycle advance skipped")
		c.end(ReasonDetached)
		c.refreshStatus()
		return
	}

	c.state.setIndex(base, next)
	c.selector.Update(next)
	c.bus.PublishCycleAdvanced(eventbus.CycleAdvancedPayload{Base: base, Variant: variant, Index: next})
}

// end performs CYCLING -> IDLE. The visual commit is skipped when the node
// was detached; the state is cleared regardless.
func (c *Controller) end(reason Reason) {
	base, ok := c.state.Active()
	if !ok {
		return
	}

	idx, _ := c.state.Index(base)
	variant, _ := c.table.Variant(base, idx)

	detached := false
	if err := c.renderer.Commit(c.state.Node()); err != nil {
		detached = errors.Is(err, ErrDetachedNode)
		c.logger.Debug().Err(err).Str("base", string(base)).Msg("commit skipped")
	}

	c.state.reset()
	c.selector.Hide()

	c.logger.Debug().
		Str("base", string(base)).
		Str("variant", variant).
		Str("reason", string(reason)).
		Msg("cycle ended")
	c.bus.PublishCycleCommitted(eventbus.CycleCommittedPayload{
		Base:     base,
		Variant:  variant,
		Index:    idx,
		Reason:   string(reason),
		Detached: detached,
	})
}

func (c *Controller) refreshStatus() {
	next := StatusIdle
	switch {
	case c.state.Cycling():
		next = StatusCycling
	case c.mod.Armed():
		next = StatusArmed
	}

	if next == c.status {
		return
	}
	prev := c.status
	c.status = next
	c.indic.SetStatus(next)
	c.bus.PublishStatusChanged(eventbus.StatusChangedPayload{From: prev.String(), To: next.String()})
}
