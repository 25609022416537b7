// Package model provides the Bubble Tea model of the search overlay.
package model

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/fsearch/internal/cli/styles"
	"github.com/bnema/fsearch/internal/logging"
	"github.com/bnema/fsearch/internal/ui/controller"
	"github.com/bnema/fsearch/internal/ui/input"
)

// maxBoxWidth caps the overlay and panel width on wide terminals.
const maxBoxWidth = 72

// pageLines is the height of the page header above the overlay.
const pageLines = 2

// tickMsg fires when the controller's next timer is due.
type tickMsg struct {
	at time.Time
}

// SearchModel renders the controller's overlay and panel and feeds it
// terminal input. The model owns no UI state of its own beyond layout.
type SearchModel struct {
	ctx      context.Context
	theme    *styles.Theme
	ctrl     *controller.SearchController
	poster   *Poster
	hostname string
	tapKey   string

	keys     styles.SearchKeyMap
	help     help.Model
	showHelp bool

	frame   styles.Frame
	timerAt time.Time
	width   int
	height  int
	now     func() time.Time
}

// NewSearchModel creates the model. Functions posted to poster are run on
// the Bubble Tea loop.
func NewSearchModel(ctx context.Context, theme *styles.Theme, ctrl *controller.SearchController, poster *Poster, hostname, tapKey string) SearchModel {
	log := logging.FromContext(ctx)
	log.Debug().Str("tap_key", tapKey).Msg("creating search model")

	m := SearchModel{
		ctx:      ctx,
		theme:    theme,
		ctrl:     ctrl,
		poster:   poster,
		hostname: hostname,
		tapKey:   tapKey,
		keys:     styles.NewSearchKeyMap(ctrl.Settings(), tapKey),
		help:     styles.NewStyledHelp(theme),
		width:    80,
		height:   24,
		now:      time.Now,
	}
	m.layout()
	return m
}

// Init implements tea.Model.
func (m SearchModel) Init() tea.Cmd {
	m.ctrl.Start()
	return m.poster.wait()
}

// Update implements tea.Model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case postMsg:
		msg.fn()
		cmds = append(cmds, m.poster.wait())

	case tickMsg:
		if !m.timerAt.After(msg.at) {
			m.timerAt = time.Time{}
		}
		m.ctrl.Tick(msg.at)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.Shutdown()
			m.poster.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		default:
			for _, ev := range KeyEvents(msg, m.now(), m.tapKey) {
				m.ctrl.Handle(ev)
			}
		}

	case tea.MouseMsg:
		if ev, ok := m.mouseEvent(msg); ok {
			m.ctrl.Handle(ev)
		}
	}

	m.keys = styles.NewSearchKeyMap(m.ctrl.Settings(), m.tapKey)
	m.layout()
	if cmd := m.scheduleTimer(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// scheduleTimer arms a tick for the controller's next timer unless one is
// already armed for that instant.
func (m *SearchModel) scheduleTimer() tea.Cmd {
	next, ok := m.ctrl.NextTimer()
	if !ok || next.Equal(m.timerAt) {
		return nil
	}
	m.timerAt = next
	delay := max(next.Sub(m.now()), 0)
	return tea.Tick(delay, func(t time.Time) tea.Msg { return tickMsg{at: t} })
}

func (m *SearchModel) boxWidth() int {
	return min(m.width, maxBoxWidth)
}

// layout renders the overlay and the panel and keeps their click targets.
func (m *SearchModel) layout() {
	w := m.boxWidth()
	m.frame = styles.Stack(
		styles.RenderOverlay(m.theme, m.ctrl.Overlay(), w),
		styles.RenderTabPanel(m.theme, m.ctrl.Panel(), w),
	)
}

func (m SearchModel) mouseEvent(msg tea.MouseMsg) (input.Event, bool) {
	now := m.now()
	x, y := msg.X, msg.Y-pageLines
	hit, onTarget := m.frame.HitAt(x, y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if !m.ctrl.Panel().IsOpen() {
			return nil, false
		}
		if onTarget && (hit.Target == input.ClickTabRow || hit.Target == input.ClickTabClose) {
			return input.HoverEvent{Index: hit.Index, Time: now}, true
		}
		return input.HoverEvent{Index: -1, Time: now}, true
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil, false
		}
		if onTarget {
			return input.ClickEvent{Target: hit.Target, Index: hit.Index, Time: now}, true
		}
		// A click on the page stands in for a touch tap.
		return input.TapEvent{Time: now}, true
	}
	return nil, false
}

// View implements tea.Model.
func (m SearchModel) View() string {
	t := m.theme
	var b strings.Builder

	header := t.Title.Render("fsearch") + " " + t.Subtle.Render(m.hostname)
	rule := strings.Repeat("─", max(m.boxWidth(), 1))
	if m.ctrl.Backdrop().Visible() {
		header = t.Backdrop.Render("fsearch " + m.hostname)
		rule = t.Backdrop.Render(strings.Repeat("░", max(m.boxWidth(), 1)))
	} else {
		rule = t.Subtle.Render(rule)
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n")

	used := pageLines
	if m.frame.View != "" {
		b.WriteString(m.frame.View)
		b.WriteString("\n")
		used += m.frame.Height()
	}

	var helpView string
	if m.showHelp {
		helpView = m.help.FullHelpView(m.keys.FullHelp())
	} else {
		helpView = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	if gap := m.height - used - lipgloss.Height(helpView) - 1; gap > 0 {
		b.WriteString(strings.Repeat("\n", gap))
	}
	b.WriteString(helpView)
	return b.String()
}

// KeyEvents translates a terminal key into controller events. Pasted text
// arrives as one message and is split into one event per rune.
func KeyEvents(msg tea.KeyMsg, now time.Time, tapKey string) []input.Event {
	if msg.Type == tea.KeyRunes && !msg.Alt && (msg.Paste || len(msg.Runes) > 1) {
		events := make([]input.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, input.KeyEvent{Key: string(r), Time: now})
		}
		return events
	}
	return input.FromTerminal(msg.String(), now, tapKey)
}
