package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/accentflow/internal/core/cycle"
	"github.com/colonyops/accentflow/internal/core/styles"
)

var _ cycle.Selector = (*Popup)(nil)

// Point is a cell position inside the text viewport.
type Point struct {
	Row int
	Col int
}

// Place positions a popup of the given size relative to an anchor cell.
// The popup sits on the rows directly above the anchor, left aligned with
// it. When that would cross the top of the viewport it flips below the
// anchor, pushed down by offset rows. Columns are clamped so the popup
// stays inside a viewport of width viewW.
func Place(anchor Point, w, h, offset, viewW int) Point {
	p := Point{Row: anchor.Row - h, Col: anchor.Col}
	if p.Row < 0 {
		p.Row = anchor.Row + 1 + offset
	}
	if viewW > 0 && p.Col+w > viewW {
		p.Col = viewW - w
	}
	p.Col = max(p.Col, 0)
	return p
}

// Locator resolves a substitution node to its viewport cell.
type Locator func(cycle.Node) (Point, bool)

// Popup is the floating variant picker. Its position is fixed when shown
// and only the highlight changes afterwards.
type Popup struct {
	locate Locator
	viewW  func() int
	offset int

	visible  bool
	base     rune
	variants []string
	selected int
	pos      Point
}

// NewPopup creates a hidden popup.
func NewPopup(locate Locator, viewW func() int, offset int) *Popup {
	return &Popup{locate: locate, viewW: viewW, offset: offset}
}

// SetOffset changes the flip-below offset for the next Show.
func (p *Popup) SetOffset(offset int) {
	p.offset = offset
}

// Show implements cycle.Selector.
func (p *Popup) Show(base rune, variants []string, anchor cycle.Node, selected int) {
	p.base = base
	p.variants = append(p.variants[:0], variants...)
	p.selected = selected
	p.visible = true

	a, ok := p.locate(anchor)
	if !ok {
		a = Point{}
	}
	view := p.View()
	p.pos = Place(a, lipgloss.Width(view), lipgloss.Height(view), p.offset, p.viewW())
}

// Update implements cycle.Selector.
func (p *Popup) Update(selected int) {
	if !p.visible {
		return
	}
	p.selected = selected
}

// Hide implements cycle.Selector.
func (p *Popup) Hide() {
	p.visible = false
}

// Visible reports whether the popup is shown.
func (p *Popup) Visible() bool {
	return p.visible
}

// Selected returns the highlighted variant index.
func (p *Popup) Selected() int {
	return p.selected
}

// Position returns where the popup was placed.
func (p *Popup) Position() Point {
	return p.pos
}

// View renders the popup box. Options keep a fixed width whether
// highlighted or not, so the box never changes size while cycling.
func (p *Popup) View() string {
	if !p.visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.PopupBaseStyle.Render(string(p.base)))
	sb.WriteString(styles.PopupSeparatorStyle.Render(" │"))
	for i, v := range p.variants {
		style := styles.PopupOptionStyle
		if i == p.selected {
			style = styles.PopupSelectedStyle
		}
		sb.WriteString(style.Render(v))
		if i < 9 {
			sb.WriteString(styles.PopupOrdinalStyle.Render(fmt.Sprint(i + 1)))
		}
	}
	return styles.PopupStyle.Render(sb.String())
}
