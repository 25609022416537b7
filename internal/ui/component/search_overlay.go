package component

import (
	"time"

	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/ui/mainloop"
)

// TouchFocusDelay defers input focus after a touch-opened overlay.
const TouchFocusDelay = 350 * time.Millisecond

// OverlayState is the lifecycle stage of the search overlay.
type OverlayState int

const (
	OverlayClosed OverlayState = iota
	OverlayOpening
	OverlayOpen
	OverlayClosing
)

func (s OverlayState) String() string {
	switch s {
	case OverlayOpening:
		return "opening"
	case OverlayOpen:
		return "open"
	case OverlayClosing:
		return "closing"
	default:
		return "closed"
	}
}

// SearchOverlay is the search box with its dropdown, shortcut tray and
// engine preview. Timers run on the shared wheel so every transition
// happens on the UI loop.
type SearchOverlay struct {
	timers *mainloop.TimerWheel

	state      OverlayState
	focused    bool
	input      []rune
	caret      int
	focusDelay time.Duration
	lang       string

	focusTimer mainloop.TimerID
	closeTimer mainloop.TimerID

	Suggestions *SuggestionList
	Tray        *ShortcutTray
	Preview     *FaviconPreview
}

// OverlayConfig configures a SearchOverlay.
type OverlayConfig struct {
	Timers     *mainloop.TimerWheel
	Catalog    *entity.EngineCatalog
	Lang       string
	FocusDelay time.Duration // touch focus delay, TouchFocusDelay when zero
	// OnSuggestionsCleared runs whenever the dropdown is emptied.
	OnSuggestionsCleared func()
}

// NewSearchOverlay creates a closed overlay.
func NewSearchOverlay(cfg OverlayConfig) *SearchOverlay {
	delay := cfg.FocusDelay
	if delay <= 0 {
		delay = TouchFocusDelay
	}
	timers := cfg.Timers
	if timers == nil {
		timers = mainloop.NewTimerWheel()
	}
	return &SearchOverlay{
		timers:      timers,
		focusDelay:  delay,
		lang:        cfg.Lang,
		Suggestions: NewSuggestionList(cfg.Lang, cfg.OnSuggestionsCleared),
		Tray:        NewShortcutTray(cfg.Catalog),
		Preview:     NewFaviconPreview(cfg.Catalog),
	}
}

// State returns the lifecycle stage.
func (o *SearchOverlay) State() OverlayState { return o.state }

// IsOpen reports whether the overlay is shown or about to be.
func (o *SearchOverlay) IsOpen() bool {
	return o.state == OverlayOpening || o.state == OverlayOpen
}

// Focused reports whether the input has keyboard focus.
func (o *SearchOverlay) Focused() bool { return o.focused }

// Label is the localized input label.
func (o *SearchOverlay) Label() string { return SearchLabel(o.lang) }

// SetLocale switches language and engine catalog.
func (o *SearchOverlay) SetLocale(lang string, catalog *entity.EngineCatalog) {
	o.lang = lang
	o.Suggestions.SetLang(lang)
	o.Tray = NewShortcutTray(catalog)
	o.Preview.SetCatalog(catalog)
	if o.IsOpen() {
		o.Preview.Update(o.Value())
	}
}

// Open shows an empty overlay and schedules input focus. Touch-opened
// overlays focus after the focus delay, keyboard-opened ones on the next tick.
func (o *SearchOverlay) Open(now time.Time, touch bool) {
	if o.IsOpen() {
		return
	}
	o.timers.Cancel(o.closeTimer)
	o.reset()
	o.state = OverlayOpening

	delay := time.Duration(0)
	if touch {
		delay = o.focusDelay
	}
	o.focusTimer = o.timers.Schedule(now, delay, func() {
		if o.state != OverlayOpening {
			return
		}
		o.state = OverlayOpen
		o.focused = true
	})
}

// Close hides the overlay and clears input, preview and dropdown.
func (o *SearchOverlay) Close(now time.Time) {
	if !o.IsOpen() {
		return
	}
	o.timers.Cancel(o.focusTimer)
	o.reset()
	o.state = OverlayClosing
	o.closeTimer = o.timers.Schedule(now, 0, func() {
		if o.state == OverlayClosing {
			o.state = OverlayClosed
		}
	})
}

func (o *SearchOverlay) reset() {
	o.focused = false
	o.input = nil
	o.caret = 0
	o.Preview.Clear()
	o.Tray.Collapse()
	o.Suggestions.Clear()
}

// Focus gives the input keyboard focus.
func (o *SearchOverlay) Focus() {
	if !o.IsOpen() {
		return
	}
	o.state = OverlayOpen
	o.focused = true
}

// Blur takes focus away from the input.
func (o *SearchOverlay) Blur() { o.focused = false }

// Value returns the input text.
func (o *SearchOverlay) Value() string { return string(o.input) }

// Caret returns the caret position in runes.
func (o *SearchOverlay) Caret() int { return o.caret }

// SetValue replaces the input text and puts the caret at the end.
func (o *SearchOverlay) SetValue(s string) {
	o.input = []rune(s)
	o.caret = len(o.input)
}

// Insert types s at the caret.
func (o *SearchOverlay) Insert(s string) {
	r := []rune(s)
	if len(r) == 0 {
		return
	}
	tail := append([]rune(nil), o.input[o.caret:]...)
	o.input = append(append(o.input[:o.caret], r...), tail...)
	o.caret += len(r)
}

// Backspace deletes the rune before the caret.
func (o *SearchOverlay) Backspace() {
	if o.caret == 0 {
		return
	}
	o.input = append(o.input[:o.caret-1], o.input[o.caret:]...)
	o.caret--
}

// DeleteForward deletes the rune under the caret.
func (o *SearchOverlay) DeleteForward() {
	if o.caret >= len(o.input) {
		return
	}
	o.input = append(o.input[:o.caret], o.input[o.caret+1:]...)
}

// MoveCaret shifts the caret by delta runes, clamped to the text.
func (o *SearchOverlay) MoveCaret(delta int) {
	o.caret = max(0, min(len(o.input), o.caret+delta))
}

// CaretToEnd puts the caret after the last rune.
func (o *SearchOverlay) CaretToEnd() { o.caret = len(o.input) }

// CaretToStart puts the caret before the first rune.
func (o *SearchOverlay) CaretToStart() { o.caret = 0 }

// ApplyMatches rebuilds or hides the dropdown after a keystroke.
func (o *SearchOverlay) ApplyMatches(matches []entity.MatchCandidate) {
	if len(matches) == 0 {
		o.Suggestions.Clear()
		return
	}
	o.Suggestions.Build(matches)
}

// MoveSuggestion steps the dropdown highlight and copies the highlighted
// text into the input, keeping a typed "token:" prefix.
func (o *SearchOverlay) MoveSuggestion(down bool) bool {
	if !o.Suggestions.Visible() {
		return false
	}
	row, ok := o.Suggestions.Move(down)
	if !ok || row.Removed {
		return false
	}
	o.SetValue(ReplaceQuery(o.Value(), row.Text))
	return true
}

// PickShortcut inserts the tray item's "token:" and focuses the input.
func (o *SearchOverlay) PickShortcut(index int) bool {
	text, ok := o.Tray.Pick(index)
	if !ok {
		return false
	}
	o.Focus()
	o.SetValue(text)
	o.Preview.Update(text)
	return true
}
