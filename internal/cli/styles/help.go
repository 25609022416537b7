package styles

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/ui/input"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// SearchKeyMap describes the overlay bindings. Only Quit and Help are
// matched by the model; the rest are interpreted by the controller and
// listed here for the help bar.
type SearchKeyMap struct {
	ToggleSearch key.Binding
	TabPanel     key.Binding
	Tap          key.Binding
	Focus        key.Binding
	Navigate     key.Binding
	Remove       key.Binding
	Close        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k SearchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleSearch, k.TabPanel, k.Tap, k.Close, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k SearchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleSearch, k.Tap, k.Focus},
		{k.TabPanel, k.Navigate, k.Remove},
		{k.Close, k.Help, k.Quit},
	}
}

// NewSearchKeyMap builds the help bindings from the user's settings.
func NewSearchKeyMap(s entity.Settings, tapKey string) SearchKeyMap {
	mod := keyLabel(s.ModifierKey())
	tabKeys := make([]string, 0, len(s.TabKeys))
	for _, k := range s.TabKeys {
		tabKeys = append(tabKeys, keyLabel(k))
	}

	toggle := mod + "+" + keyLabel(s.SearchTriggerKey())
	tabs := mod + "+" + strings.Join(tabKeys, "/")

	km := SearchKeyMap{
		ToggleSearch: key.NewBinding(
			key.WithKeys(toggle),
			key.WithHelp(toggle, "search"),
		),
		TabPanel: key.NewBinding(
			key.WithKeys(tabs),
			key.WithHelp(tabs, "tabs"),
		),
		Tap: key.NewBinding(
			key.WithKeys(tapKey),
			key.WithHelp(tapKey+" ×2", "tap search"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus input"),
		),
		Navigate: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "move"),
		),
		Remove: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "close tab"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
	if tapKey == "" || !s.Touch {
		km.Tap.SetEnabled(false)
	}
	return km
}

// keyLabel turns a DOM key name into its help label.
func keyLabel(k string) string {
	switch input.NormalizeKey(k) {
	case input.KeyControl:
		return "ctrl"
	case input.KeyArrowUp:
		return "↑"
	case input.KeyArrowDown:
		return "↓"
	case input.KeyArrowLeft:
		return "←"
	case input.KeyArrowRight:
		return "→"
	case input.KeySpace:
		return "space"
	}
	return strings.ToLower(k)
}

// NewStyledHelp creates a help model with theme styling.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
