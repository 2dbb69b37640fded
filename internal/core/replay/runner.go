package replay

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/accentflow/internal/core/accent"
	"github.com/colonyops/accentflow/internal/core/cycle"
	"github.com/colonyops/accentflow/internal/core/eventbus"
	"github.com/colonyops/accentflow/internal/core/logging"
	"github.com/colonyops/accentflow/internal/core/surface"
)

// StepResult records what the controller did with one input.
type StepResult struct {
	Step     int    `json:"step"`
	Event    string `json:"event"`
	Action   string `json:"action"`
	Consumed bool   `json:"consumed,omitempty"`
}

// Result is the outcome of one script.
type Result struct {
	Name     string       `json:"name"`
	Path     string       `json:"path,omitempty"`
	Text     string       `json:"text"`
	Status   string       `json:"status"`
	Steps    []StepResult `json:"steps"`
	Failures []string     `json:"failures,omitempty"`
}

// Passed reports whether every expectation held.
func (r Result) Passed() bool {
	return len(r.Failures) == 0
}

// Runner executes scripts against a fresh buffer and controller each time.
type Runner struct {
	table  *accent.Table
	bus    *eventbus.EventBus
	logger zerolog.Logger
}

// NewRunner creates a runner. Scripts without their own accents use tbl.
// bus may be nil.
func NewRunner(tbl *accent.Table, bus *eventbus.EventBus, logger zerolog.Logger) *Runner {
	if tbl == nil {
		tbl = accent.Default()
	}
	return &Runner{table: tbl, bus: bus, logger: logger}
}

// RunAll runs scripts in order.
func (r *Runner) RunAll(ctx context.Context, scripts []Script) []Result {
	results := make([]Result, 0, len(scripts))
	for _, s := range scripts {
		results = append(results, r.Run(ctx, s))
	}
	return results
}

// Summary counts passed and failed results.
func Summary(results []Result) (passed, failed int) {
	for _, res := range results {
		if res.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

type session struct {
	buf  *surface.Buffer
	ctrl *cycle.Controller
	res  *Result
}

// Run executes one script. Script errors are reported as failures.
func (r *Runner) Run(ctx context.Context, s Script) Result {
	ctx = logging.WithScript(ctx, s.Name)
	res := Result{Name: s.Name, Path: s.Path}

	tbl := r.table
	if s.Accents != nil {
		t, err := accent.New(s.Accents)
		if err != nil {
			res.Failures = append(res.Failures, fmt.Sprintf("accents: %v", err))
			return res
		}
		tbl = t
	}

	buf := surface.New(s.Text)
	buf.SetEditable(s.IsEditable())

	sess := &session{
		buf: buf,
		ctrl: cycle.New(cycle.Deps{
			Table:   tbl,
			Surface: buf,
			Bus:     r.bus,
			Logger:  r.logger,
		}),
		res: &res,
	}

	for i, st := range s.Events {
		if err := ctx.Err(); err != nil {
			res.Failures = append(res.Failures, fmt.Sprintf("stopped at step %d: %v", i, err))
			break
		}
		if err := sess.apply(i, st); err != nil {
			res.Failures = append(res.Failures, fmt.Sprintf("step %d: %v", i, err))
			break
		}
	}

	res.Text = buf.String()
	res.Status = sess.ctrl.Status().String()
	res.Failures = append(res.Failures, check(s, res, buf)...)

	for _, sr := range res.Steps {
		r.logger.Debug().Ctx(ctx).
			Int("step", sr.Step).
			Str("event", sr.Event).
			Str("action", sr.Action).
			Bool("consumed", sr.Consumed).
			Msg("replay step")
	}
	r.logger.Debug().Ctx(ctx).
		Bool("passed", res.Passed()).
		Str("text", res.Text).
		Str("status", res.Status).
		Msg("replay finished")

	return res
}

func check(s Script, res Result, buf *surface.Buffer) []string {
	var failures []string
	if s.Expect != nil && res.Text != *s.Expect {
		failures = append(failures, fmt.Sprintf("text: got %q, want %q", res.Text, *s.Expect))
	}
	if s.ExpectStatus != "" && res.Status != s.ExpectStatus {
		failures = append(failures, fmt.Sprintf("status: got %s, want %s", res.Status, s.ExpectStatus))
	}

	styled := 0
	for _, seg := range buf.Segments() {
		if seg.Styled {
			styled++
		}
	}
	switch {
	case styled > 1:
		failures = append(failures, fmt.Sprintf("%d live substitutions on the surface", styled))
	case styled == 1 && res.Status != cycle.StatusCycling.String():
		failures = append(failures, "live substitution left after the cycle ended")
	}
	return failures
}

func (s *session) apply(i int, st Step) error {
	kind, err := st.kind()
	if err != nil {
		return err
	}
	mods, err := parseMods(st.Mods)
	if err != nil {
		return err
	}

	switch kind {
	case "down":
		k, err := parseKey(st.Down)
		if err != nil {
			return err
		}
		s.press(i, k, mods)
	case "up":
		k, err := parseKey(st.Up)
		if err != nil {
			return err
		}
		ev := cycle.Event{Kind: cycle.EventKeyUp, Key: k.key, Rune: k.r, Mods: mods}
		if k.key == cycle.KeyAccent {
			ev = cycle.AccentUp()
		}
		s.dispatch(i, "up "+k.name, ev)
	case "blur":
		s.dispatch(i, "blur", cycle.FocusLost())
	case "hidden":
		s.dispatch(i, fmt.Sprintf("hidden %t", *st.Hidden), cycle.Visibility(*st.Hidden))
	case "type":
		for _, r := range st.Type {
			s.press(i, scriptKey{key: cycle.KeyRune, r: r, name: string(r)}, withCase(r, mods))
		}
	case "detach":
		action := "noop"
		if n := s.ctrl.State().Node(); n != nil && s.buf.RemoveNode(n) {
			action = "removed"
		}
		s.res.Steps = append(s.res.Steps, StepResult{Step: i, Event: "detach", Action: action})
	case "select_all":
		s.buf.SelectAll()
		s.res.Steps = append(s.res.Steps, StepResult{Step: i, Event: "select_all", Action: "selected"})
	}
	return nil
}

// press dispatches a key-down and, like a host editor, inserts the
// character when the controller did not consume it.
func (s *session) press(i int, k scriptKey, mods cycle.Modifiers) {
	var ev cycle.Event
	switch k.key {
	case cycle.KeyAccent:
		ev = cycle.AccentDown(mods)
	case cycle.KeyRune:
		ev = cycle.KeyDown(k.r, mods)
	default:
		ev = cycle.Event{Kind: cycle.EventKeyDown, Key: k.key, Mods: mods}
	}

	res := s.dispatch(i, fmt.Sprintf("down %s [%s]", k.name, mods), ev)
	if !res.Consumed && inserts(k, mods) {
		s.buf.InsertText(string(k.r))
	}
}

func (s *session) dispatch(i int, desc string, ev cycle.Event) cycle.Result {
	res := s.ctrl.Dispatch(ev)
	s.res.Steps = append(s.res.Steps, StepResult{
		Step:     i,
		Event:    desc,
		Action:   res.Action.String(),
		Consumed: res.Consumed,
	})
	return res
}
