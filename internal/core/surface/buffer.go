// Package surface implements an in-memory text surface made of plain and
// styled fragments. Styled fragments are handed out as substitution nodes
// and keep their identity until they are replaced or removed.
//
// All positions are rune offsets. A Buffer is not safe for concurrent use.
package surface

import (
	"slices"
	"strings"

	"github.com/colonyops/accentflow/internal/core/cycle"
)

var _ cycle.Surface = (*Buffer)(nil)

// Fragment is a run of text. Styled fragments are substitution nodes.
type Fragment struct {
	text   []rune
	styled bool
	buf    *Buffer
}

// IsAttached reports whether the fragment is still part of a buffer.
func (f *Fragment) IsAttached() bool {
	return f != nil && f.buf != nil
}

// Text returns the fragment content.
func (f *Fragment) Text() string {
	return string(f.text)
}

// Styled reports whether the fragment is a substitution node.
func (f *Fragment) Styled() bool {
	return f.styled
}

// Segment is a read-only view of one fragment for rendering.
type Segment struct {
	Text   string
	Styled bool
	Start  int
}

// Buffer is an editable fragment list with a caret and a selection anchor.
type Buffer struct {
	frags    []*Fragment
	caret    int
	anchor   int
	editable bool
}

// New returns an editable buffer holding text with the caret at the end.
func New(text string) *Buffer {
	b := &Buffer{editable: true}
	if text != "" {
		b.frags = []*Fragment{{text: []rune(text), buf: b}}
	}
	b.caret = b.Len()
	b.anchor = b.caret
	return b
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	n := 0
	for _, f := range b.frags {
		n += len(f.text)
	}
	return n
}

func (b *Buffer) String() string {
	var sb strings.Builder
	for _, f := range b.frags {
		sb.WriteString(string(f.text))
	}
	return sb.String()
}

// Runes returns a copy of the buffer content.
func (b *Buffer) Runes() []rune {
	out := make([]rune, 0, b.Len())
	for _, f := range b.frags {
		out = append(out, f.text...)
	}
	return out
}

// Segments returns the fragments in order.
func (b *Buffer) Segments() []Segment {
	out := make([]Segment, 0, len(b.frags))
	pos := 0
	for _, f := range b.frags {
		out = append(out, Segment{Text: string(f.text), Styled: f.styled, Start: pos})
		pos += len(f.text)
	}
	return out
}

// Caret returns the caret position.
func (b *Buffer) Caret() int {
	return b.caret
}

// Editable reports whether the buffer offers an insertion point.
func (b *Buffer) Editable() bool {
	return b.editable
}

// SetEditable toggles the insertion point. A read-only buffer reports no
// selection and ignores editing.
func (b *Buffer) SetEditable(v bool) {
	b.editable = v
}

// HasSelection reports whether a non-empty range is selected.
func (b *Buffer) HasSelection() bool {
	return b.caret != b.anchor
}

// Selection implements cycle.Surface.
func (b *Buffer) Selection() (cycle.Selection, bool) {
	if !b.editable {
		return cycle.Selection{}, false
	}
	return cycle.Selection{Start: min(b.caret, b.anchor), End: max(b.caret, b.anchor)}, true
}

// DeleteSelection implements cycle.Surface.
func (b *Buffer) DeleteSelection(sel cycle.Selection) int {
	start := b.clamp(sel.Start)
	end := b.clamp(sel.End)
	if start > end {
		start, end = end, start
	}
	b.removeRange(start, end)
	b.caret, b.anchor = start, start
	return start
}

// InsertNode implements cycle.Surface.
func (b *Buffer) InsertNode(at int, text string) cycle.Node {
	at = b.clamp(at)
	f := &Fragment{text: []rune(text), styled: true, buf: b}
	i := b.split(at)
	b.frags = slices.Insert(b.frags, i, f)
	b.shiftInsert(at, len(f.text))
	return f
}

// SetNodeText implements cycle.Surface. Positions after the node move with
// its length so the caret keeps its place relative to the text.
func (b *Buffer) SetNodeText(n cycle.Node, text string) {
	f, start := b.lookup(n)
	if f == nil {
		return
	}
	oldEnd := start + len(f.text)
	f.text = []rune(text)
	newEnd := start + len(f.text)

	move := func(p int) int {
		switch {
		case p >= oldEnd:
			return p + newEnd - oldEnd
		case p > newEnd:
			return newEnd
		}
		return p
	}
	b.caret = move(b.caret)
	b.anchor = move(b.anchor)
}

// ReplaceWithText implements cycle.Surface.
func (b *Buffer) ReplaceWithText(n cycle.Node) int {
	f, start := b.lookup(n)
	if f == nil {
		return b.caret
	}
	i := slices.Index(b.frags, f)
	b.frags[i] = &Fragment{text: slices.Clone(f.text), buf: b}
	f.buf = nil
	end := start + len(f.text)
	b.normalize()
	return end
}

// NodeEnd implements cycle.Surface.
func (b *Buffer) NodeEnd(n cycle.Node) int {
	f, start := b.lookup(n)
	if f == nil {
		return b.caret
	}
	return start + len(f.text)
}

// NodeStart returns the position of n, or false if n is not in this buffer.
func (b *Buffer) NodeStart(n cycle.Node) (int, bool) {
	f, start := b.lookup(n)
	return start, f != nil
}

// CollapseCaret implements cycle.Surface.
func (b *Buffer) CollapseCaret(at int) {
	at = b.clamp(at)
	b.caret, b.anchor = at, at
}

// RemoveNode deletes n from the buffer, detaching it. It reports whether n
// was found.
func (b *Buffer) RemoveNode(n cycle.Node) bool {
	f, start := b.lookup(n)
	if f == nil {
		return false
	}
	b.removeRange(start, start+len(f.text))
	return true
}

// Clear removes everything, detaching any live node.
func (b *Buffer) Clear() {
	for _, f := range b.frags {
		f.buf = nil
	}
	b.frags = nil
	b.caret, b.anchor = 0, 0
}

// SetText replaces the whole content and puts the caret at the end.
func (b *Buffer) SetText(text string) {
	b.Clear()
	if text != "" {
		b.frags = []*Fragment{{text: []rune(text), buf: b}}
	}
	b.CollapseCaret(b.Len())
}

func (b *Buffer) lookup(n cycle.Node) (*Fragment, int) {
	f, ok := n.(*Fragment)
	if !ok || f == nil || f.buf != b {
		return nil, 0
	}
	pos := 0
	for _, g := range b.frags {
		if g == f {
			return f, pos
		}
		pos += len(g.text)
	}
	return nil, 0
}

func (b *Buffer) clamp(p int) int {
	return max(0, min(p, b.Len()))
}

// split ensures a fragment boundary at pos and returns the index of the
// first fragment starting at pos.
func (b *Buffer) split(pos int) int {
	start := 0
	for i, f := range b.frags {
		if pos == start {
			return i
		}
		end := start + len(f.text)
		if pos < end {
			off := pos - start
			right := &Fragment{text: slices.Clone(f.text[off:]), styled: f.styled, buf: b}
			f.text = f.text[:off:off]
			b.frags = slices.Insert(b.frags, i+1, right)
			return i + 1
		}
		start = end
	}
	return len(b.frags)
}

// removeRange deletes [start, end) and detaches the removed fragments.
func (b *Buffer) removeRange(start, end int) {
	if start >= end {
		return
	}
	i := b.split(start)
	j := b.split(end)
	for _, f := range b.frags[i:j] {
		f.buf = nil
	}
	b.frags = slices.Delete(b.frags, i, j)

	n := end - start
	move := func(p int) int {
		switch {
		case p >= end:
			return p - n
		case p > start:
			return start
		}
		return p
	}
	b.caret = move(b.caret)
	b.anchor = move(b.anchor)
	b.normalize()
}

func (b *Buffer) insertPlain(pos int, rs []rune) {
	if len(rs) == 0 {
		return
	}
	i := b.split(pos)
	switch {
	case i > 0 && !b.frags[i-1].styled:
		b.frags[i-1].text = append(b.frags[i-1].text, rs...)
	case i < len(b.frags) && !b.frags[i].styled:
		b.frags[i].text = append(slices.Clone(rs), b.frags[i].text...)
	default:
		b.frags = slices.Insert(b.frags, i, &Fragment{text: slices.Clone(rs), buf: b})
	}
	b.shiftInsert(pos, len(rs))
}

func (b *Buffer) shiftInsert(at, n int) {
	if b.caret >= at {
		b.caret += n
	}
	if b.anchor >= at {
		b.anchor += n
	}
}

// normalize drops empty plain fragments and merges plain neighbours.
// Styled fragments are never merged so node identity survives.
func (b *Buffer) normalize() {
	out := b.frags[:0]
	for _, f := range b.frags {
		if !f.styled && len(f.text) == 0 {
			continue
		}
		if n := len(out); n > 0 && !f.styled && !out[n-1].styled {
			out[n-1].text = append(out[n-1].text, f.text...)
			continue
		}
		out = append(out, f)
	}
	clear(b.frags[len(out):])
	b.frags = out
}
