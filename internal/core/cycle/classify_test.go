package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/accentflow/internal/core/accent"
)

type stubNode struct{ attached bool }

func (n *stubNode) IsAttached() bool { return n.attached }

func TestClassify(t *testing.T) {
	tbl := accent.Default()

	cycling := &State{}
	cycling.begin('e', &stubNode{attached: true})

	tests := []struct {
		name  string
		ev    Event
		state *State
		want  Action
	}{
		{"bare accent arms", AccentDown(0), &State{}, ActionArm},
		{"accent with shift ignored", AccentDown(ModShift), &State{}, ActionIgnore},
		{"accent with ctrl ignored", AccentDown(ModCtrl), &State{}, ActionIgnore},
		{"letter without accent aborts", KeyDown('x', 0), cycling, ActionAbort},
		{"table letter without accent aborts", KeyDown('e', 0), cycling, ActionAbort},
		{"shift without accent aborts", Event{Kind: EventKeyDown, Key: KeyShift, Mods: ModShift}, &State{}, ActionAbort},
		{"unmapped letter with accent ignored", KeyDown('z', ModAccent), &State{}, ActionIgnore},
		{"non-rune key with accent ignored", Event{Kind: EventKeyDown, Key: KeyOther, Mods: ModAccent}, &State{}, ActionIgnore},
		{"ctrl chord ignored", KeyDown('e', ModAccent|ModCtrl), &State{}, ActionIgnore},
		{"meta chord ignored", KeyDown('e', ModAccent|ModMeta), &State{}, ActionIgnore},
		{"mapped letter starts", KeyDown('e', ModAccent), &State{}, ActionStart},
		{"shifted letter starts", KeyDown('E', ModAccent|ModShift), &State{}, ActionStart},
		{"same letter advances", KeyDown('e', ModAccent), cycling, ActionAdvance},
		{"other letter starts", KeyDown('a', ModAccent), cycling, ActionStart},
		{"case is a different letter", KeyDown('E', ModAccent|ModShift), cycling, ActionStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ev, tt.state, tbl))
		})
	}
}

func TestClassify_NilTable(t *testing.T) {
	assert.Equal(t, ActionIgnore, Classify(KeyDown('e', ModAccent), &State{}, nil))
}

func TestState_ResetClearsIndex(t *testing.T) {
	var s State
	s.begin('e', &stubNode{attached: true})
	s.setIndex('e', 2)

	i, ok := s.Index('e')
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	s.reset()
	_, ok = s.Index('e')
	assert.False(t, ok)
	assert.False(t, s.Cycling())
	assert.Nil(t, s.Node())
}

func TestModifierTracker(t *testing.T) {
	var m ModifierTracker

	assert.False(t, m.Press(ModAccent|ModShift))
	assert.False(t, m.Armed())

	assert.True(t, m.Press(ModAccent))
	assert.False(t, m.Press(ModAccent))
	assert.True(t, m.Armed())

	assert.True(t, m.Release())
	assert.False(t, m.Release())
}

func TestModifiers_String(t *testing.T) {
	assert.Equal(t, "none", Modifiers(0).String())
	assert.Equal(t, "accent+shift", (ModAccent | ModShift).String())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusIdle, StatusArmed, StatusCycling} {
		got, ok := ParseStatus(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := ParseStatus("bogus")
	assert.False(t, ok)
}
