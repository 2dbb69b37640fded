package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/accentflow/internal/core/styles"
	"github.com/colonyops/accentflow/internal/core/surface"
)

const sgrReset = "\x1b[0m"

type cellAttr uint8

const (
	attrStyled cellAttr = 1 << iota
	attrSelected
	attrCaret
)

type cell struct {
	r    rune
	attr cellAttr
}

// bufferLines splits the buffer into lines of attributed cells. The caret
// is its own cell when it sits at a line end.
func bufferLines(buf *surface.Buffer, showCaret bool) [][]cell {
	runes := buf.Runes()
	attrs := make([]cellAttr, len(runes)+1)

	for _, seg := range buf.Segments() {
		if !seg.Styled {
			continue
		}
		for i := range len([]rune(seg.Text)) {
			attrs[seg.Start+i] |= attrStyled
		}
	}
	if sel, ok := buf.Selection(); ok && !sel.Collapsed() {
		for i := sel.Start; i < sel.End; i++ {
			attrs[i] |= attrSelected
		}
	}
	if showCaret {
		attrs[buf.Caret()] |= attrCaret
	}

	lines := [][]cell{{}}
	for i, r := range runes {
		if r == '\n' {
			if attrs[i]&attrCaret != 0 {
				lines[len(lines)-1] = append(lines[len(lines)-1], cell{r: ' ', attr: attrCaret})
			}
			lines = append(lines, []cell{})
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], cell{r: r, attr: attrs[i]})
	}
	if attrs[len(runes)]&attrCaret != 0 {
		lines[len(lines)-1] = append(lines[len(lines)-1], cell{r: ' ', attr: attrCaret})
	}
	return lines
}

func styleFor(a cellAttr) lipgloss.Style {
	switch {
	case a&attrCaret != 0:
		return styles.CaretStyle
	case a&attrStyled != 0:
		return styles.HighlightStyle
	case a&attrSelected != 0:
		return styles.SelectionStyle
	default:
		return styles.TextStyle
	}
}

// renderLine renders runs of equal attributes and truncates to width.
func renderLine(cells []cell, width int) string {
	var sb strings.Builder
	for i := 0; i < len(cells); {
		j := i
		var run strings.Builder
		for j < len(cells) && cells[j].attr == cells[i].attr {
			run.WriteRune(cells[j].r)
			j++
		}
		sb.WriteString(styleFor(cells[i].attr).Render(run.String()))
		i = j
	}
	if width > 0 {
		return ansi.Truncate(sb.String(), width, "")
	}
	return sb.String()
}

// renderBuffer renders height lines starting at line top.
func renderBuffer(buf *surface.Buffer, top, height, width int, showCaret bool) []string {
	lines := bufferLines(buf, showCaret)
	out := make([]string, 0, height)
	for i := top; i < top+height; i++ {
		if i < len(lines) {
			out = append(out, renderLine(lines[i], width))
		} else {
			out = append(out, "")
		}
	}
	return out
}

// cellPos maps a rune offset to its line and display column.
func cellPos(buf *surface.Buffer, pos int) (line, col int) {
	line, runeCol := buf.LineCol(pos)
	runes := buf.Runes()
	start := pos - runeCol
	return line, ansi.StringWidth(string(runes[start:pos]))
}

// overlay draws fg over bg with its top-left corner at p. Rows outside bg
// are dropped.
func overlay(bg []string, fg string, p Point) []string {
	out := make([]string, len(bg))
	copy(out, bg)

	for i, fl := range strings.Split(fg, "\n") {
		row := p.Row + i
		if row < 0 || row >= len(out) {
			continue
		}
		line := out[row]
		if w := ansi.StringWidth(line); w < p.Col {
			line += strings.Repeat(" ", p.Col-w)
		}
		left := ansi.Truncate(line, p.Col, "")
		right := ansi.TruncateLeft(line, p.Col+ansi.StringWidth(fl), "")
		out[row] = left + sgrReset + fl + sgrReset + right
	}
	return out
}
