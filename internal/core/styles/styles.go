// Package styles provides the shared lipgloss styles and color themes.
package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color

	// Derived from the palette.
	ColorHighlightBg lipgloss.Color
	ColorPopupBg     lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessStyle       lipgloss.Style
	InfoStyle          lipgloss.Style
	WarnStyle          lipgloss.Style
	ErrorStyle         lipgloss.Style
	TableHeaderStyle   lipgloss.Style
	TableCellStyle     lipgloss.Style
	TableBaseStyle     lipgloss.Style

	// Editor chrome.
	TitleStyle     lipgloss.Style
	BadgeStyle     lipgloss.Style
	BadgeBusyStyle lipgloss.Style
	FooterStyle    lipgloss.Style
	CommittedStyle lipgloss.Style
	TextStyle      lipgloss.Style
	ReadOnlyStyle  lipgloss.Style

	// Inline substitution and caret.
	HighlightStyle lipgloss.Style
	CaretStyle     lipgloss.Style
	SelectionStyle lipgloss.Style

	// Variant popup.
	PopupStyle          lipgloss.Style
	PopupBaseStyle      lipgloss.Style
	PopupOptionStyle    lipgloss.Style
	PopupSelectedStyle  lipgloss.Style
	PopupOrdinalStyle   lipgloss.Style
	PopupSeparatorStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	ColorHighlightBg = Blend(p.Surface, p.Primary, 0.35)
	ColorPopupBg = Blend(p.Background, p.Surface, 0.6)

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	InfoStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	WarnStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Padding(0, 1)
	TableBaseStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	BadgeStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorSuccess)
	BadgeBusyStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorWarning).
		Foreground(Contrast(p, ColorWarning)).
		Bold(true)
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CommittedStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	TextStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ReadOnlyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	HighlightStyle = lipgloss.NewStyle().
		Background(ColorHighlightBg).
		Foreground(Contrast(p, ColorHighlightBg)).
		Underline(true)
	CaretStyle = lipgloss.NewStyle().
		Reverse(true)
	SelectionStyle = lipgloss.NewStyle().
		Background(ColorSurface)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Background(ColorPopupBg).
		Padding(0, 1)
	PopupBaseStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorPopupBg)
	PopupOptionStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorPopupBg).
		Padding(0, 1)
	PopupSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	PopupOrdinalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorPopupBg)
	PopupSeparatorStyle = lipgloss.NewStyle().
		Foreground(ColorSurface).
		Background(ColorPopupBg)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
