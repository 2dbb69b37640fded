package cycle

import "errors"

var (
	// ErrNoInsertionPoint means the surface has no caret or selection to
	// write a substitution into.
	ErrNoInsertionPoint = errors.New("no insertion point")

	// ErrDetachedNode means the live substitution was removed from the
	// surface by something other than the controller.
	ErrDetachedNode = errors.New("substitution node detached")
)

// Node is an opaque handle to a substitution owned by the controller.
// Callers must check IsAttached before mutating through it.
type Node interface {
	IsAttached() bool
}

// Selection is a range of rune offsets on the surface. Start == End is a
// collapsed caret.
type Selection struct {
	Start int
	End   int
}

// Collapsed reports whether the selection is a bare caret.
func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

// Surface is the editable text the controller writes substitutions into.
type Surface interface {
	// Selection returns the current selection. ok is false when there is no
	// valid insertion point.
	Selection() (sel Selection, ok bool)
	// DeleteSelection removes the selected content and returns the
	// collapsed insertion position.
	DeleteSelection(sel Selection) int
	// InsertNode inserts a styled inline node holding text at position at.
	InsertNode(at int, text string) Node
	// SetNodeText replaces the content of n without changing its identity.
	SetNodeText(n Node, text string)
	// ReplaceWithText swaps n for equivalent plain text and returns the
	// position right after it. n is detached afterwards.
	ReplaceWithText(n Node) int
	// NodeEnd returns the position right after n.
	NodeEnd(n Node) int
	// CollapseCaret places a collapsed caret at position at.
	CollapseCaret(at int)
}
