package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/accentflow/internal/core/cycle"
	"github.com/colonyops/accentflow/pkg/tuitest"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name   string
		anchor Point
		w, h   int
		offset int
		viewW  int
		want   Point
	}{
		{"above anchor", Point{Row: 5, Col: 10}, 8, 3, 0, 80, Point{Row: 2, Col: 10}},
		{"exactly fits above", Point{Row: 3, Col: 0}, 8, 3, 0, 80, Point{Row: 0, Col: 0}},
		{"flips below", Point{Row: 1, Col: 10}, 8, 3, 0, 80, Point{Row: 2, Col: 10}},
		{"flips below with offset", Point{Row: 1, Col: 10}, 8, 3, 2, 80, Point{Row: 4, Col: 10}},
		{"offset ignored above", Point{Row: 5, Col: 10}, 8, 3, 2, 80, Point{Row: 2, Col: 10}},
		{"clamped to right edge", Point{Row: 5, Col: 78}, 8, 3, 0, 80, Point{Row: 2, Col: 72}},
		{"wider than viewport", Point{Row: 5, Col: 4}, 100, 3, 0, 80, Point{Row: 2, Col: 0}},
		{"unknown width", Point{Row: 5, Col: 78}, 8, 3, 0, 0, Point{Row: 2, Col: 78}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Place(tt.anchor, tt.w, tt.h, tt.offset, tt.viewW))
		})
	}
}

type fixedNode struct{}

func (fixedNode) IsAttached() bool { return true }

func TestPopup_ShowUpdateHide(t *testing.T) {
	anchor := Point{Row: 0, Col: 3}
	located := 0
	p := NewPopup(func(cycle.Node) (Point, bool) {
		located++
		return anchor, true
	}, func() int { return 80 }, 1)

	assert.False(t, p.Visible())
	assert.Empty(t, p.View())

	p.Show('e', []string{"é", "è", "ê", "ë"}, fixedNode{}, 0)
	require.True(t, p.Visible())
	assert.Equal(t, 0, p.Selected())

	view := p.View()
	assert.Equal(t, 3, lipgloss.Height(view), "single row inside a border")
	// No room above row 0, so it flips below the anchor plus the offset.
	assert.Equal(t, Point{Row: 2, Col: 3}, p.Position())

	plain := tuitest.StripANSI(view)
	assert.Contains(t, plain, "e │")
	for _, v := range []string{"é", "è", "ê", "ë"} {
		assert.Contains(t, plain, v)
	}

	width := lipgloss.Width(view)
	p.Update(3)
	assert.Equal(t, 3, p.Selected())
	assert.Equal(t, width, lipgloss.Width(p.View()), "highlight does not resize")
	assert.Equal(t, Point{Row: 2, Col: 3}, p.Position(), "position fixed after show")
	assert.Equal(t, 1, located)

	p.Hide()
	assert.False(t, p.Visible())
	p.Update(1)
	assert.Equal(t, 3, p.Selected(), "update ignored while hidden")
}

func TestPopup_Ordinals(t *testing.T) {
	p := NewPopup(func(cycle.Node) (Point, bool) { return Point{}, false }, func() int { return 0 }, 0)
	p.Show('o', []string{"ô", "œ", "ö"}, fixedNode{}, 1)

	plain := tuitest.StripANSI(p.View())
	assert.Contains(t, plain, "ô 1")
	assert.Contains(t, plain, "œ 2")
	assert.Contains(t, plain, "ö 3")
	assert.False(t, strings.Contains(plain, "4"))
}

func TestBadge(t *testing.T) {
	b := NewBadge("ready", "selecting")
	assert.Empty(t, b.View())

	b.SetStatus(cycle.StatusArmed)
	assert.Equal(t, "ready", strings.TrimSpace(tuitest.StripANSI(b.View())))

	b.SetStatus(cycle.StatusCycling)
	assert.Equal(t, "selecting", strings.TrimSpace(tuitest.StripANSI(b.View())))
	assert.Equal(t, cycle.StatusCycling, b.Status())

	b.SetLabels("on", "picking")
	assert.Equal(t, "picking", strings.TrimSpace(tuitest.StripANSI(b.View())))

	b.SetStatus(cycle.StatusIdle)
	assert.Empty(t, b.View())
}
