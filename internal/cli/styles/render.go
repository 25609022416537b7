package styles

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/fsearch/internal/ui/component"
	"github.com/bnema/fsearch/internal/ui/input"
)

// MinWidth is the narrowest box the renderers produce.
const MinWidth = 24

// Hit is a clickable cell range on one line of a Frame.
type Hit struct {
	Line   int
	Start  int
	End    int
	Target input.ClickTarget
	Index  int
}

// Frame is a rendered block plus the click targets it contains.
type Frame struct {
	View string
	Hits []Hit
}

// Height is the number of lines in the frame.
func (f Frame) Height() int {
	if f.View == "" {
		return 0
	}
	return lipgloss.Height(f.View)
}

// HitAt returns the click target under cell (x, y).
func (f Frame) HitAt(x, y int) (Hit, bool) {
	for _, h := range f.Hits {
		if h.Line == y && x >= h.Start && x < h.End {
			return h, true
		}
	}
	return Hit{}, false
}

// Stack joins frames top to bottom, shifting their hits.
func Stack(frames ...Frame) Frame {
	var out Frame
	var views []string
	offset := 0
	for _, f := range frames {
		if f.View == "" {
			continue
		}
		for _, h := range f.Hits {
			h.Line += offset
			out.Hits = append(out.Hits, h)
		}
		views = append(views, f.View)
		offset += f.Height()
	}
	out.View = strings.Join(views, "\n")
	return out
}

// line accumulates styled segments and the hits they cover.
type line struct {
	b    strings.Builder
	col  int
	hits []Hit
}

func (l *line) add(s string) {
	l.b.WriteString(s)
	l.col += lipgloss.Width(s)
}

func (l *line) addHit(s string, target input.ClickTarget, index int) {
	start := l.col
	l.add(s)
	l.hits = append(l.hits, Hit{Start: start, End: l.col, Target: target, Index: index})
}

// box renders lines inside style and shifts hits past its border and padding.
func box(style lipgloss.Style, width int, lines []*line) Frame {
	rows := make([]string, len(lines))
	var hits []Hit
	top := style.GetBorderTopSize() + style.GetPaddingTop()
	left := style.GetBorderLeftSize() + style.GetPaddingLeft()
	for i, l := range lines {
		rows[i] = l.b.String()
		for _, h := range l.hits {
			h.Line = top + i
			h.Start += left
			h.End += left
			hits = append(hits, h)
		}
	}
	view := style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join(rows, "\n"))
	return Frame{View: view, Hits: hits}
}

func clampWidth(width int) int {
	if width < MinWidth {
		return MinWidth
	}
	return width
}

// RenderOverlay draws the search overlay: input row, shortcut tray and the
// suggestion dropdown.
func RenderOverlay(t *Theme, o *component.SearchOverlay, width int) Frame {
	if o == nil || o.State() == component.OverlayClosed {
		return Frame{}
	}
	width = clampWidth(width)
	inner := width - t.Overlay.GetHorizontalFrameSize()

	var lines []*line

	head := &line{}
	if e, ok := o.Preview.Engine(); ok {
		head.add(t.Engine.Render(e.Key))
		head.add(" ")
	}
	buttons := " " + t.Button.Render("⏎") + " " + t.RemoveControl.Render("✕")
	field := inner - head.col - lipgloss.Width(buttons)
	head.add(renderField(t, o, field))
	head.add(" ")
	head.addHit(t.Button.Render("⏎"), input.ClickSearchButton, 0)
	head.add(" ")
	head.addHit(t.RemoveControl.Render("✕"), input.ClickCloseButton, 0)
	lines = append(lines, head)

	tray := &line{}
	if o.Tray.Expanded() {
		tray.addHit(t.Subtle.Render("▾"), input.ClickShortcutToggle, 0)
		for i, item := range o.Tray.Items() {
			if tray.col+lipgloss.Width(item.Tooltip)+3 > inner {
				break
			}
			tray.add(" ")
			tray.addHit(t.TrayItem.Render(item.Tooltip), input.ClickShortcut, i)
		}
	} else {
		tray.addHit(t.Subtle.Render("▸ shortcuts"), input.ClickShortcutToggle, 0)
	}
	lines = append(lines, tray)

	caption := o.Suggestions.RemoveCaption()
	for i, row := range o.Suggestions.Rows() {
		l := &line{}
		if row.Removed {
			l.add(t.SuggestionRemoved.Render(component.TruncateTitle(row.Text, inner-2)))
			lines = append(lines, l)
			continue
		}
		style := t.Suggestion
		if i == o.Suggestions.Highlighted() {
			style = t.SuggestionSelected
		}
		remove := "✕ " + caption
		text := component.TruncateTitle(row.Text, inner-2-lipgloss.Width(remove)-1)
		l.addHit(style.Render(text), input.ClickSuggestionText, i)
		if gap := inner - l.col - lipgloss.Width(remove); gap > 0 {
			l.add(strings.Repeat(" ", gap))
		} else {
			l.add(" ")
		}
		l.addHit(t.RemoveControl.Render(remove), input.ClickSuggestionRemove, i)
		lines = append(lines, l)
	}

	return box(t.Overlay, width, lines)
}

func renderField(t *Theme, o *component.SearchOverlay, width int) string {
	if width < 1 {
		width = 1
	}
	value := []rune(o.Value())
	if len(value) == 0 {
		label := component.TruncateTitle(o.Label(), width)
		if o.Focused() {
			return t.Caret.Render(" ") + t.Placeholder.Render(pad(label, width-1))
		}
		return t.Placeholder.Render(pad(label, width))
	}

	style := t.Input
	if !o.Focused() {
		return style.Render(pad(component.TruncateTitle(string(value), width), width))
	}
	style = t.InputFocused

	caret := o.Caret()
	before := string(value[:caret])
	at := " "
	after := ""
	if caret < len(value) {
		at = string(value[caret])
		after = string(value[caret+1:])
	}
	// Keep the caret visible by dropping text from the left.
	for lipgloss.Width(before)+1 > width && before != "" {
		_, size := utf8.DecodeRuneInString(before)
		before = before[size:]
	}
	room := width - lipgloss.Width(before) - 1
	after = component.TruncateTitle(after, room)
	return style.Render(before) + t.Caret.Render(at) + style.Render(pad(after, room))
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// RenderTabPanel draws the visible window of the tab panel.
func RenderTabPanel(t *Theme, p *component.TabPanel, width int) Frame {
	if p == nil || !p.IsOpen() {
		return Frame{}
	}
	width = clampWidth(width)
	inner := width - t.Panel.GetHorizontalFrameSize()

	rows, first := p.Visible()
	var lines []*line

	if first > 0 {
		l := &line{}
		l.add(t.Subtle.Render(fmt.Sprintf("↑ %d more", first)))
		lines = append(lines, l)
	}

	for i, row := range rows {
		index := first + i
		style := t.TabRow
		switch {
		case index == p.Highlighted():
			style = t.TabRowSelected
		case index == p.Hover():
			style = t.TabRowHover
		}

		l := &line{}
		number := t.TabNumber.Render(fmt.Sprintf("%2d ", row.Number))
		icon := renderIcon(t, row)
		marker := " "
		if row.Tab.Active {
			marker = t.TabActive.Render("●")
		}
		closeCtl := t.RemoveControl.Render("✕")
		titleWidth := inner - lipgloss.Width(number) - lipgloss.Width(icon) - 3 - lipgloss.Width(closeCtl)
		title := pad(component.TruncateTitle(row.Tab.DisplayTitle(), titleWidth), titleWidth)

		l.addHit(number+icon+" "+style.Render(title)+" "+marker, input.ClickTabRow, index)
		l.add(" ")
		l.addHit(closeCtl, input.ClickTabClose, index)
		lines = append(lines, l)
	}

	if rest := p.Len() - first - len(rows); rest > 0 {
		l := &line{}
		l.add(t.Subtle.Render(fmt.Sprintf("↓ %d more", rest)))
		lines = append(lines, l)
	}
	if len(lines) == 0 {
		l := &line{}
		l.add(t.Subtle.Render("no tabs"))
		lines = append(lines, l)
	}

	return box(t.Panel, width, lines)
}

func renderIcon(t *Theme, row component.TabRow) string {
	switch row.Icon {
	case component.IconLoaded:
		if row.Swatch != "" {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(row.Swatch)).Render("■")
		}
		return t.Normal.Render("■")
	case component.IconPlaceholder:
		return t.Subtle.Render("□")
	default:
		return t.Subtle.Render("◌")
	}
}
