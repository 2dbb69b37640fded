// Package accent holds the mapping from base letters to their accented variants.
package accent

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Table maps a base letter to an ordered, fixed list of variants.
// A Table is immutable once built; index arithmetic wraps modulo the
// variant count.
type Table struct {
	bases    []rune
	variants map[rune][]string
}

// defaultVariants mirrors the French layout the tool was built around.
var defaultVariants = map[string][]string{
	"e": {"é", "è", "ê", "ë"},
	"E": {"É", "È", "Ê", "Ë"},
	"a": {"à", "â", "æ", "ä"},
	"A": {"À", "Â", "Æ", "Ä"},
	"u": {"ù", "û", "ü"},
	"U": {"Ù", "Û", "Ü"},
	"i": {"î", "ï"},
	"I": {"Î", "Ï"},
	"o": {"ô", "œ", "ö"},
	"O": {"Ô", "Œ", "Ö"},
	"c": {"ç"},
	"C": {"Ç"},
	"y": {"ÿ"},
	"Y": {"Ÿ"},
}

// DefaultMappings returns a copy of the built-in mappings keyed by base letter.
func DefaultMappings() map[string][]string {
	out := make(map[string][]string, len(defaultVariants))
	for base, vs := range defaultVariants {
		out[base] = slices.Clone(vs)
	}
	return out
}

// Default returns the built-in table.
func Default() *Table {
	t, err := New(defaultVariants)
	if err != nil {
		panic(fmt.Sprintf("accent: default table invalid: %v", err))
	}
	return t
}

// New builds a table from base letter strings to variant lists. Each base
// must be exactly one rune and each variant list must be non-empty with no
// empty entries.
func New(mappings map[string][]string) (*Table, error) {
	t := &Table{
		bases:    make([]rune, 0, len(mappings)),
		variants: make(map[rune][]string, len(mappings)),
	}

	for base, vs := range mappings {
		r, err := ParseBase(base)
		if err != nil {
			return nil, err
		}
		if len(vs) == 0 {
			return nil, fmt.Errorf("base %q has no variants", base)
		}
		for i, v := range vs {
			if v == "" {
				return nil, fmt.Errorf("base %q: variant %d is empty", base, i)
			}
		}

		t.bases = append(t.bases, r)
		t.variants[r] = slices.Clone(vs)
	}

	slices.Sort(t.bases)
	return t, nil
}

// ParseBase converts a configured base string into its single rune.
func ParseBase(base string) (rune, error) {
	if utf8.RuneCountInString(base) != 1 {
		return 0, fmt.Errorf("base %q must be a single character", base)
	}
	r, _ := utf8.DecodeRuneInString(base)
	if r == utf8.RuneError {
		return 0, fmt.Errorf("base %q is not valid UTF-8", base)
	}
	return r, nil
}

// Has reports whether base is a key of the table.
func (t *Table) Has(base rune) bool {
	_, ok := t.variants[base]
	return ok
}

// Variants returns the ordered variants for base. The returned slice must
// not be modified.
func (t *Table) Variants(base rune) ([]string, bool) {
	vs, ok := t.variants[base]
	return vs, ok
}

// Len returns the number of variants for base, or 0 when base is unknown.
func (t *Table) Len(base rune) int {
	return len(t.variants[base])
}

// Variant returns the variant at index modulo the variant count.
func (t *Table) Variant(base rune, index int) (string, bool) {
	vs, ok := t.variants[base]
	if !ok {
		return "", false
	}
	return vs[Wrap(index, len(vs))], true
}

// Bases returns the base letters in display order.
func (t *Table) Bases() []rune {
	return slices.Clone(t.bases)
}

// Mappings returns the table as configuration-shaped data.
func (t *Table) Mappings() map[string][]string {
	out := make(map[string][]string, len(t.bases))
	for _, b := range t.bases {
		out[string(b)] = slices.Clone(t.variants[b])
	}
	return out
}

// Wrap normalizes index into [0, n). n must be positive.
func Wrap(index, n int) int {
	index %= n
	if index < 0 {
		index += n
	}
	return index
}
