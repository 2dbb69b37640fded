package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/accentflow/internal/core/cycle"
)

func TestBuffer_InsertAndCommitNode(t *testing.T) {
	b := New("ab")

	sel, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, cycle.Selection{Start: 2, End: 2}, sel)

	at := b.DeleteSelection(sel)
	n := b.InsertNode(at, "é")
	assert.Equal(t, "abé", b.String())
	assert.Equal(t, 3, b.Caret())
	assert.True(t, n.IsAttached())

	b.SetNodeText(n, "è")
	assert.Equal(t, "abè", b.String())

	end := b.ReplaceWithText(n)
	assert.Equal(t, 3, end)
	assert.False(t, n.IsAttached())
	assert.Equal(t, []Segment{{Text: "abè", Start: 0}}, b.Segments())
}

func TestBuffer_SelectionReplacedByNode(t *testing.T) {
	b := New("hello")
	b.SelectAll()

	sel, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, cycle.Selection{Start: 0, End: 5}, sel)

	at := b.DeleteSelection(sel)
	b.InsertNode(at, "ü")
	assert.Equal(t, "ü", b.String())
	assert.Equal(t, 1, b.Caret())
	assert.False(t, b.HasSelection())
}

func TestBuffer_SetNodeTextShiftsCaret(t *testing.T) {
	b := New("ab")
	n := b.InsertNode(1, "é")
	require.Equal(t, 3, b.Caret())

	b.SetNodeText(n, "xyz")
	assert.Equal(t, "axyzb", b.String())
	assert.Equal(t, 5, b.Caret())

	start, ok := b.NodeStart(n)
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, b.NodeEnd(n))
}

func TestBuffer_NodeDetachment(t *testing.T) {
	t.Run("backspace", func(t *testing.T) {
		b := New("a")
		n := b.InsertNode(1, "é")
		require.True(t, b.Backspace())
		assert.False(t, n.IsAttached())
		assert.Equal(t, "a", b.String())
	})

	t.Run("remove", func(t *testing.T) {
		b := New("a")
		n := b.InsertNode(0, "é")
		assert.True(t, b.RemoveNode(n))
		assert.False(t, b.RemoveNode(n))
		assert.False(t, n.IsAttached())
	})

	t.Run("clear", func(t *testing.T) {
		b := New("a")
		n := b.InsertNode(1, "é")
		b.Clear()
		assert.False(t, n.IsAttached())
		assert.Equal(t, 0, b.Len())
	})

	t.Run("set text", func(t *testing.T) {
		b := New("a")
		n := b.InsertNode(1, "é")
		b.SetText("xyz")
		assert.False(t, n.IsAttached())
		assert.Equal(t, 3, b.Caret())
	})

	t.Run("foreign node", func(t *testing.T) {
		a, b := New(""), New("")
		n := a.InsertNode(0, "é")
		assert.False(t, b.RemoveNode(n))
		assert.Equal(t, "é", a.String())
	})
}

func TestBuffer_TypingNextToNodeKeepsItIntact(t *testing.T) {
	b := New("a")
	n := b.InsertNode(1, "é")
	require.True(t, b.InsertText("b"))

	assert.Equal(t, []Segment{
		{Text: "a", Start: 0},
		{Text: "é", Styled: true, Start: 1},
		{Text: "b", Start: 2},
	}, b.Segments())
	assert.True(t, n.IsAttached())
}

func TestBuffer_ReadOnly(t *testing.T) {
	b := New("abc")
	b.SetEditable(false)

	_, ok := b.Selection()
	assert.False(t, ok)
	assert.False(t, b.InsertText("x"))
	assert.False(t, b.Backspace())
	assert.False(t, b.DeleteForward())
	assert.Equal(t, "abc", b.String())
}

func TestBuffer_Editing(t *testing.T) {
	b := New("abc")
	b.CollapseCaret(1)
	require.True(t, b.DeleteForward())
	assert.Equal(t, "ac", b.String())

	b.CollapseCaret(0)
	assert.False(t, b.Backspace())

	b.CollapseCaret(b.Len())
	assert.False(t, b.DeleteForward())
}

func TestBuffer_Motion(t *testing.T) {
	b := New("ab\ncd")

	line, col := b.LineCol(4)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
	assert.Equal(t, 2, b.LineCount())

	b.MoveUp(false)
	assert.Equal(t, 2, b.Caret())

	b.MoveDown(false)
	assert.Equal(t, 5, b.Caret())

	b.LineStart(false)
	assert.Equal(t, 3, b.Caret())

	b.LineEnd(false)
	assert.Equal(t, 5, b.Caret())

	b.MoveDown(false)
	assert.Equal(t, 5, b.Caret())

	b.CollapseCaret(1)
	b.MoveUp(false)
	assert.Equal(t, 0, b.Caret())

	b.MoveLeft(false)
	assert.Equal(t, 0, b.Caret())
}

func TestBuffer_ExtendSelectionThenType(t *testing.T) {
	b := New("ab\ncd")
	b.CollapseCaret(0)
	b.MoveRight(true)
	b.MoveRight(true)
	require.True(t, b.HasSelection())

	require.True(t, b.InsertText("X"))
	assert.Equal(t, "X\ncd", b.String())
	assert.Equal(t, 1, b.Caret())
	assert.False(t, b.HasSelection())
}

func TestBuffer_Unicode(t *testing.T) {
	b := New("çà")
	assert.Equal(t, 2, b.Len())
	require.True(t, b.Backspace())
	assert.Equal(t, "ç", b.String())
}
