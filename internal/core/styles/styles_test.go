package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsNonDecreasing(t, names)

	for _, name := range names {
		p, ok := GetPalette(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, p.Primary, name)
	}

	_, ok := GetPalette("does-not-exist")
	assert.False(t, ok)
}

func TestBlend(t *testing.T) {
	black := lipgloss.Color("#000000")
	white := lipgloss.Color("#ffffff")

	assert.Equal(t, black, Blend(black, white, 0))
	assert.Equal(t, white, Blend(black, white, 1))

	mid := Blend(black, white, 0.5)
	assert.NotEqual(t, black, mid)
	assert.NotEqual(t, white, mid)

	assert.Equal(t, lipgloss.Color("nope"), Blend("nope", white, 0.5))
}

func TestContrast(t *testing.T) {
	p, _ := GetPalette(DefaultTheme)
	assert.Equal(t, p.Background, Contrast(p, "#ffffff"))
	assert.Equal(t, p.Foreground, Contrast(p, "#000000"))
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, _ := GetPalette("gruvbox")
	SetTheme(p)

	assert.Equal(t, p.Primary, ColorPrimary)
	assert.Equal(t, Blend(p.Surface, p.Primary, 0.35), ColorHighlightBg)
	assert.Equal(t, p, CurrentPalette)
}

func TestGlamourStyle(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, string(ColorForeground), *cfg.Document.Color)
}
