// Package styles provides the lipgloss theme and renderers of the terminal
// front-end.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of base colors a Theme is derived from.
type Palette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
}

// Theme holds lipgloss colors and styles.
type Theme struct {
	Background     lipgloss.Color
	Surface        lipgloss.Color
	SurfaceVariant lipgloss.Color
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color

	Error   lipgloss.Color
	Success lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style

	// Search overlay
	Overlay      lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Placeholder  lipgloss.Style
	Caret        lipgloss.Style
	Button       lipgloss.Style
	Engine       lipgloss.Style

	Suggestion         lipgloss.Style
	SuggestionSelected lipgloss.Style
	SuggestionRemoved  lipgloss.Style
	RemoveControl      lipgloss.Style

	TrayItem lipgloss.Style

	// Tab panel
	Panel          lipgloss.Style
	TabRow         lipgloss.Style
	TabRowSelected lipgloss.Style
	TabRowHover    lipgloss.Style
	TabNumber      lipgloss.Style
	TabActive      lipgloss.Style

	Backdrop lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Box lipgloss.Style
}

// DefaultDarkPalette returns hardcoded dark theme colors.
func DefaultDarkPalette() Palette {
	return Palette{
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#4ade80",
		Border:         "#333333",
	}
}

// NewTheme creates the default dark theme.
func NewTheme() *Theme {
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a Palette.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Background:     lipgloss.Color(p.Background),
		Surface:        lipgloss.Color(p.Surface),
		SurfaceVariant: lipgloss.Color(p.SurfaceVariant),
		Text:           lipgloss.Color(p.Text),
		Muted:          lipgloss.Color(p.Muted),
		Accent:         lipgloss.Color(p.Accent),
		Border:         lipgloss.Color(p.Border),

		Error:   lipgloss.Color("#ef4444"),
		Success: lipgloss.Color(p.Accent),
	}

	t.buildStyles()
	return t
}

// buildStyles creates all derived lipgloss styles.
func (t *Theme) buildStyles() {
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Normal = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Highlight = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.Overlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.Input = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	t.InputFocused = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.SurfaceVariant)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Surface)

	t.Caret = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent)

	t.Button = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.Engine = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(t.Text).
		PaddingLeft(2)

	t.SuggestionSelected = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceVariant).
		PaddingLeft(2).
		Bold(true)

	t.SuggestionRemoved = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true).
		PaddingLeft(2)

	t.RemoveControl = lipgloss.NewStyle().
		Foreground(t.Error)

	t.TrayItem = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.SurfaceVariant).
		Padding(0, 1)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 1)

	t.TabRow = lipgloss.NewStyle().
		Foreground(t.Text)

	t.TabRowSelected = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceVariant).
		Bold(true)

	t.TabRowHover = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	t.TabNumber = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.TabActive = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.Backdrop = lipgloss.NewStyle().
		Foreground(t.Muted).
		Faint(true)

	t.HelpKey = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
}
