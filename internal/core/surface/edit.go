package surface

// InsertText types s at the caret, replacing any selection.
func (b *Buffer) InsertText(s string) bool {
	if !b.editable || s == "" {
		return false
	}
	sel, _ := b.Selection()
	at := b.DeleteSelection(sel)
	rs := []rune(s)
	b.insertPlain(at, rs)
	b.CollapseCaret(at + len(rs))
	return true
}

// Backspace deletes the selection or the rune before the caret.
func (b *Buffer) Backspace() bool {
	if !b.editable {
		return false
	}
	if b.HasSelection() {
		sel, _ := b.Selection()
		b.DeleteSelection(sel)
		return true
	}
	if b.caret == 0 {
		return false
	}
	b.removeRange(b.caret-1, b.caret)
	return true
}

// DeleteForward deletes the selection or the rune after the caret.
func (b *Buffer) DeleteForward() bool {
	if !b.editable {
		return false
	}
	if b.HasSelection() {
		sel, _ := b.Selection()
		b.DeleteSelection(sel)
		return true
	}
	if b.caret >= b.Len() {
		return false
	}
	b.removeRange(b.caret, b.caret+1)
	return true
}

// MoveLeft moves the caret one rune left. With extend the selection grows.
func (b *Buffer) MoveLeft(extend bool) {
	b.moveTo(b.caret-1, extend)
}

// MoveRight moves the caret one rune right.
func (b *Buffer) MoveRight(extend bool) {
	b.moveTo(b.caret+1, extend)
}

// LineStart moves the caret to the start of its line.
func (b *Buffer) LineStart(extend bool) {
	rs := b.Runes()
	p := b.caret
	for p > 0 && rs[p-1] != '\n' {
		p--
	}
	b.moveTo(p, extend)
}

// LineEnd moves the caret to the end of its line.
func (b *Buffer) LineEnd(extend bool) {
	rs := b.Runes()
	p := b.caret
	for p < len(rs) && rs[p] != '\n' {
		p++
	}
	b.moveTo(p, extend)
}

// MoveUp moves the caret to the same column on the previous line, clamped
// to that line's length.
func (b *Buffer) MoveUp(extend bool) {
	line, col := b.LineCol(b.caret)
	if line == 0 {
		b.moveTo(0, extend)
		return
	}
	b.moveTo(b.posAt(line-1, col), extend)
}

// MoveDown moves the caret to the same column on the next line.
func (b *Buffer) MoveDown(extend bool) {
	line, col := b.LineCol(b.caret)
	if line >= b.LineCount()-1 {
		b.moveTo(b.Len(), extend)
		return
	}
	b.moveTo(b.posAt(line+1, col), extend)
}

// SelectAll selects the whole buffer with the caret at the end.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.caret = b.Len()
}

// LineCol converts a position into zero-based line and rune column.
func (b *Buffer) LineCol(pos int) (line, col int) {
	pos = b.clamp(pos)
	for _, r := range b.Runes()[:pos] {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// LineCount returns the number of lines; an empty buffer has one.
func (b *Buffer) LineCount() int {
	n := 1
	for _, f := range b.frags {
		for _, r := range f.text {
			if r == '\n' {
				n++
			}
		}
	}
	return n
}

func (b *Buffer) posAt(line, col int) int {
	rs := b.Runes()
	cur := 0
	p := 0
	for p < len(rs) && cur < line {
		if rs[p] == '\n' {
			cur++
		}
		p++
	}
	for c := 0; c < col && p < len(rs) && rs[p] != '\n'; c++ {
		p++
	}
	return p
}

func (b *Buffer) moveTo(p int, extend bool) {
	b.caret = b.clamp(p)
	if !extend {
		b.anchor = b.caret
	}
}
