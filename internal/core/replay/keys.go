package replay

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/colonyops/accentflow/internal/core/cycle"
)

type scriptKey struct {
	key  cycle.Key
	r    rune
	name string
}

var namedKeys = map[string]scriptKey{
	"alt":       {key: cycle.KeyAccent},
	"accent":    {key: cycle.KeyAccent},
	"shift":     {key: cycle.KeyShift},
	"ctrl":      {key: cycle.KeyCtrl},
	"meta":      {key: cycle.KeyMeta},
	"space":     {key: cycle.KeyRune, r: ' '},
	"enter":     {key: cycle.KeyOther},
	"tab":       {key: cycle.KeyOther},
	"esc":       {key: cycle.KeyOther},
	"backspace": {key: cycle.KeyOther},
	"delete":    {key: cycle.KeyOther},
	"left":      {key: cycle.KeyOther},
	"right":     {key: cycle.KeyOther},
	"up":        {key: cycle.KeyOther},
	"down":      {key: cycle.KeyOther},
	"home":      {key: cycle.KeyOther},
	"end":       {key: cycle.KeyOther},
}

func parseKey(s string) (scriptKey, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return scriptKey{key: cycle.KeyRune, r: r, name: s}, nil
	}
	k, ok := namedKeys[strings.ToLower(s)]
	if !ok {
		return scriptKey{}, fmt.Errorf("unknown key %q", s)
	}
	k.name = strings.ToLower(s)
	return k, nil
}

var modNames = map[string]cycle.Modifiers{
	"alt":    cycle.ModAccent,
	"accent": cycle.ModAccent,
	"shift":  cycle.ModShift,
	"ctrl":   cycle.ModCtrl,
	"meta":   cycle.ModMeta,
}

func parseMods(names []string) (cycle.Modifiers, error) {
	var m cycle.Modifiers
	for _, n := range names {
		f, ok := modNames[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
		m |= f
	}
	return m, nil
}

// inserts reports whether an unconsumed key would reach the text as a
// character. Chords with the accent, ctrl or meta modifier never do.
func inserts(k scriptKey, mods cycle.Modifiers) bool {
	if k.key != cycle.KeyRune {
		return false
	}
	return mods&(cycle.ModAccent|cycle.ModCtrl|cycle.ModMeta) == 0
}

func withCase(r rune, mods cycle.Modifiers) cycle.Modifiers {
	if unicode.IsUpper(r) {
		return mods | cycle.ModShift
	}
	return mods
}
