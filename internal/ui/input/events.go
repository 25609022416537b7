// Package input turns raw key, tap, and pointer events into overlay gestures.
package input

import "time"

// Event is a typed UI event delivered to the search controller.
type Event interface {
	Timestamp() time.Time
}

// KeyEvent is a single key press, named with DOM key names ("Control",
// "Enter", "ArrowDown", "f").
type KeyEvent struct {
	Key  string
	Time time.Time
}

// Timestamp implements Event.
func (e KeyEvent) Timestamp() time.Time { return e.Time }

// TapEvent is a touch start anywhere on the page.
type TapEvent struct {
	Time time.Time
}

// Timestamp implements Event.
func (e TapEvent) Timestamp() time.Time { return e.Time }

// ClickTarget identifies the element a pointer click landed on.
type ClickTarget int

const (
	ClickNone ClickTarget = iota
	// ClickSearchButton submits the current input.
	ClickSearchButton
	// ClickCloseButton closes the overlay.
	ClickCloseButton
	// ClickShortcutToggle shows or hides the shortcut tray.
	ClickShortcutToggle
	// ClickShortcut inserts the shortcut at Index into the input.
	ClickShortcut
	// ClickSuggestionText appends the suggestion at Index and submits.
	ClickSuggestionText
	// ClickSuggestionRemove deletes the suggestion at Index.
	ClickSuggestionRemove
	// ClickTabRow switches to the tab shown at Index.
	ClickTabRow
	// ClickTabClose closes the tab shown at Index.
	ClickTabClose
)

func (t ClickTarget) String() string {
	switch t {
	case ClickSearchButton:
		return "search_button"
	case ClickCloseButton:
		return "close_button"
	case ClickShortcutToggle:
		return "shortcut_toggle"
	case ClickShortcut:
		return "shortcut"
	case ClickSuggestionText:
		return "suggestion_text"
	case ClickSuggestionRemove:
		return "suggestion_remove"
	case ClickTabRow:
		return "tab_row"
	case ClickTabClose:
		return "tab_close"
	default:
		return "none"
	}
}

// ClickEvent is a pointer click on an overlay or panel element.
type ClickEvent struct {
	Target ClickTarget
	Index  int
	Time   time.Time
}

// Timestamp implements Event.
func (e ClickEvent) Timestamp() time.Time { return e.Time }

// HoverEvent moves pointer focus onto a tab panel row. Index -1 clears it.
type HoverEvent struct {
	Index int
	Time  time.Time
}

// Timestamp implements Event.
func (e HoverEvent) Timestamp() time.Time { return e.Time }
