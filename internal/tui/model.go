// Package tui implements the full-screen accent editor.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/accentflow/internal/core/config"
	"github.com/colonyops/accentflow/internal/core/cycle"
	"github.com/colonyops/accentflow/internal/core/eventbus"
	"github.com/colonyops/accentflow/internal/core/styles"
	"github.com/colonyops/accentflow/internal/core/surface"
)

const (
	headerHeight = 1
	footerHeight = 2
	commitBuffer = 16
)

// Options configures the editor.
type Options struct {
	Config  *config.Config
	Text    string
	Title   string
	Output  string             // Ctrl+S target; empty disables saving
	Reloads <-chan config.Reload // optional config hot reload feed
	Bus     *eventbus.EventBus
	Logger  zerolog.Logger
}

type committedMsg eventbus.CycleCommittedPayload

type reloadMsg config.Reload

type savedMsg struct {
	path string
	err  error
}

// Model is the Bubble Tea model for the editor.
type Model struct {
	cfg    *config.Config
	keys   KeyMap
	help   help.Model
	buf    *surface.Buffer
	ctrl   *cycle.Controller
	popup  *Popup
	badge  *Badge
	bus    *eventbus.EventBus
	logger zerolog.Logger

	commits <-chan eventbus.CycleCommittedPayload
	reloads <-chan config.Reload

	width  int
	height int
	top    int

	altHeld        bool
	seq            int
	releaseTimeout time.Duration

	title    string
	output   string
	last     string
	notice   string
	quitting bool
}

// New builds the editor model.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		d := config.DefaultConfig()
		cfg = &d
	}

	tbl, err := cfg.Table()
	if err != nil {
		return nil, fmt.Errorf("build accent table: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = "accentflow"
	}

	m := &Model{
		cfg:            cfg,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		buf:            surface.New(opts.Text),
		badge:          NewBadge(cfg.Status.Ready, cfg.Status.Selecting),
		bus:            opts.Bus,
		logger:         opts.Logger,
		reloads:        opts.Reloads,
		releaseTimeout: cfg.ReleaseTimeout,
		title:          title,
		output:         opts.Output,
	}
	m.popup = NewPopup(m.locate, m.bodyWidth, cfg.Popup.Offset)
	m.ctrl = cycle.New(cycle.Deps{
		Table:    tbl,
		Surface:  m.buf,
		Selector: m.popup,
		Status:   m.badge,
		Bus:      opts.Bus,
		Logger:   m.logger,
	})

	if opts.Bus != nil {
		ch := make(chan eventbus.CycleCommittedPayload, commitBuffer)
		opts.Bus.SubscribeCycleCommitted(func(p eventbus.CycleCommittedPayload) {
			select {
			case ch <- p:
			default:
			}
		})
		m.commits = ch
	}

	return m, nil
}

// Text returns the buffer content.
func (m *Model) Text() string {
	return m.buf.String()
}

// Buffer exposes the text surface.
func (m *Model) Buffer() *surface.Buffer {
	return m.buf
}

// Controller exposes the accent controller.
func (m *Model) Controller() *cycle.Controller {
	return m.ctrl
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.bus.PublishEditorStarted(eventbus.EditorStartedPayload{})
	return tea.Batch(m.waitCommitted(), m.waitReload())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case releaseTickMsg:
		if msg.seq == m.seq && m.altHeld {
			m.releaseAccent()
		}
		return m, nil

	case tea.BlurMsg:
		m.altHeld = false
		m.ctrl.Dispatch(cycle.FocusLost())
		return m, nil

	case tea.ResumeMsg:
		m.ctrl.Dispatch(cycle.Visibility(false))
		return m, nil

	case committedMsg:
		m.last = formatCommitted(eventbus.CycleCommittedPayload(msg))
		return m, m.waitCommitted()

	case reloadMsg:
		m.applyReload(config.Reload(msg))
		return m, m.waitReload()

	case savedMsg:
		if msg.err != nil {
			m.notice = "save failed: " + msg.err.Error()
		} else {
			m.notice = "saved " + msg.path
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if r, ok := accentKey(msg); ok {
		return m.handleAccent(r)
	}

	// Any non-Alt key means the modifier is no longer held.
	if m.altHeld {
		m.releaseAccent()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Suspend):
		m.ctrl.Dispatch(cycle.Visibility(true))
		return tea.Suspend
	case key.Matches(msg, m.keys.Save):
		m.ctrl.Abort()
		return m.save()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}

	res := m.ctrl.Dispatch(keyEvent(msg))
	if res.Consumed {
		return nil
	}

	if key.Matches(msg, m.keys.SelectAll) {
		m.buf.SelectAll()
		return nil
	}
	if applyEdit(m.buf, msg) {
		m.notice = ""
	}
	return nil
}

// handleAccent turns an Alt+letter press into accent modifier down (once)
// followed by the letter, and restarts the release timer.
func (m *Model) handleAccent(r rune) tea.Cmd {
	if !m.altHeld {
		m.altHeld = true
		m.ctrl.Dispatch(cycle.AccentDown(0))
	}
	m.ctrl.Dispatch(cycle.KeyDown(r, cycle.ModAccent|shiftFor(r)))

	m.seq++
	return releaseTick(m.releaseTimeout, m.seq)
}

func (m *Model) releaseAccent() {
	m.altHeld = false
	m.ctrl.Dispatch(cycle.AccentUp())
}

func (m *Model) quit() tea.Cmd {
	m.ctrl.Abort()
	m.quitting = true
	m.bus.PublishEditorStopped(eventbus.EditorStoppedPayload{})
	return tea.Quit
}

func (m *Model) save() tea.Cmd {
	if m.output == "" {
		m.notice = "no output file; start with --output to enable saving"
		return nil
	}
	path, text := m.output, m.buf.String()
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(text), 0o644)
		return savedMsg{path: path, err: err}
	}
}

func (m *Model) applyReload(r config.Reload) {
	if r.Err != nil {
		m.notice = "config reload failed: " + r.Err.Error()
		return
	}

	cfg := r.Config
	tbl, err := cfg.Table()
	if err != nil {
		m.notice = "config reload failed: " + err.Error()
		return
	}

	m.ctrl.SetTable(tbl)
	if p, ok := styles.GetPalette(cfg.Theme); ok {
		styles.SetTheme(p)
	}
	m.badge.SetLabels(cfg.Status.Ready, cfg.Status.Selecting)
	m.popup.SetOffset(cfg.Popup.Offset)
	m.releaseTimeout = cfg.ReleaseTimeout
	m.cfg = cfg
	m.notice = "config reloaded"

	m.bus.PublishConfigReloaded(eventbus.ConfigReloadedPayload{Config: cfg})
}

func (m *Model) waitCommitted() tea.Cmd {
	if m.commits == nil {
		return nil
	}
	ch := m.commits
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return committedMsg(p)
	}
}

func (m *Model) waitReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}

func formatCommitted(p eventbus.CycleCommittedPayload) string {
	if p.Detached {
		return fmt.Sprintf("%c → %s discarded (%s)", p.Base, p.Variant, p.Reason)
	}
	return fmt.Sprintf("%c → %s (%s)", p.Base, p.Variant, p.Reason)
}

func (m *Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *Model) bodyWidth() int {
	return m.width
}

// scrollToCaret keeps the caret line inside the body.
func (m *Model) scrollToCaret() {
	line, _ := m.buf.LineCol(m.buf.Caret())
	h := m.bodyHeight()
	switch {
	case line < m.top:
		m.top = line
	case line >= m.top+h:
		m.top = line - h + 1
	}
}

// locate maps a node to its viewport cell after scrolling.
func (m *Model) locate(n cycle.Node) (Point, bool) {
	start, ok := m.buf.NodeStart(n)
	if !ok {
		return Point{}, false
	}
	m.scrollToCaret()
	line, col := cellPos(m.buf, start)
	return Point{Row: line - m.top, Col: col}, true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}

	m.scrollToCaret()
	body := renderBuffer(m.buf, m.top, m.bodyHeight(), m.width, m.buf.Editable())
	if m.popup.Visible() {
		body = overlay(body, m.popup.View(), m.popup.Position())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		strings.Join(body, "\n"),
		m.footer(),
	)
}

func (m *Model) header() string {
	title := styles.TitleStyle.Render(m.title)
	if !m.buf.Editable() {
		title += " " + styles.ReadOnlyStyle.Render("read-only")
	}
	badge := m.badge.View()
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(badge), 1)
	return title + strings.Repeat(" ", gap) + badge
}

func (m *Model) footer() string {
	status := m.notice
	style := styles.FooterStyle
	if status == "" && m.last != "" {
		status = "last: " + m.last
		style = styles.CommittedStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(status),
		m.help.View(m.keys),
	)
}
