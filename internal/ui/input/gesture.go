package input

import (
	"slices"
	"time"

	"github.com/bnema/fsearch/internal/domain/entity"
)

// Gesture thresholds.
const (
	// DoubleTapMin is the lower bound (exclusive) of a double-tap interval.
	DoubleTapMin = 50 * time.Millisecond
	// DoubleTapMax is the upper bound (exclusive) of a double-tap interval.
	DoubleTapMax = 190 * time.Millisecond
	// ModifierHold is how long a modifier press stays armed.
	ModifierHold = 500 * time.Millisecond
	// TapsForPanel is the rapid tap count that opens the tab panel.
	TapsForPanel = 3
)

// GestureAction is what the recognizer asks the controller to do.
type GestureAction int

const (
	ActionNone GestureAction = iota
	ActionToggleSearch
	ActionOpenTabPanel
	ActionCloseTabPanel
)

func (a GestureAction) String() string {
	switch a {
	case ActionToggleSearch:
		return "toggle_search"
	case ActionOpenTabPanel:
		return "open_tab_panel"
	case ActionCloseTabPanel:
		return "close_tab_panel"
	default:
		return "none"
	}
}

// UIState is the visible state the recognizer decides against.
type UIState struct {
	SearchOpen         bool
	TabPanelOpen       bool
	SuggestionsVisible bool
}

// Bindings are the chord keys and touch switch taken from settings.
type Bindings struct {
	Modifier string
	Trigger  string
	TabKeys  []string
	Touch    bool
}

// BindingsFromSettings extracts recognizer bindings from user settings.
func BindingsFromSettings(s entity.Settings) Bindings {
	return Bindings{
		Modifier: s.ModifierKey(),
		Trigger:  s.SearchTriggerKey(),
		TabKeys:  s.TabKeys,
		Touch:    s.Touch,
	}.normalized()
}

func (b Bindings) normalized() Bindings {
	tabKeys := make([]string, len(b.TabKeys))
	for i, k := range b.TabKeys {
		tabKeys[i] = NormalizeKey(k)
	}
	return Bindings{
		Modifier: NormalizeKey(b.Modifier),
		Trigger:  NormalizeKey(b.Trigger),
		TabKeys:  tabKeys,
		Touch:    b.Touch,
	}
}

// GestureRecognizer detects the modifier chords and tap sequences that
// toggle the overlay and the tab panel. It is not safe for concurrent use;
// the controller drives it from the UI loop.
type GestureRecognizer struct {
	bindings Bindings

	pressed   bool
	pressedAt time.Time

	lastTap time.Time
	taps    int
}

// NewGestureRecognizer creates a recognizer with the given bindings.
func NewGestureRecognizer(b Bindings) *GestureRecognizer {
	return &GestureRecognizer{bindings: b.normalized()}
}

// SetBindings replaces the bindings, e.g. after settings were refreshed.
func (g *GestureRecognizer) SetBindings(b Bindings) {
	g.bindings = b.normalized()
}

// Bindings returns the active bindings.
func (g *GestureRecognizer) Bindings() Bindings {
	return g.bindings
}

// Armed reports whether a modifier press is still live at now.
func (g *GestureRecognizer) Armed(now time.Time) bool {
	return g.pressed && now.Sub(g.pressedAt) < ModifierHold
}

// Reset clears pending presses and tap history.
func (g *GestureRecognizer) Reset() {
	g.pressed = false
	g.pressedAt = time.Time{}
	g.lastTap = time.Time{}
	g.taps = 0
}

// Tap registers a touch start. Two taps between DoubleTapMin and DoubleTapMax
// apart toggle the overlay, or close the tab panel when it is open. Three taps
// closer together than DoubleTapMin open the tab panel when nothing is open.
func (g *GestureRecognizer) Tap(now time.Time, state UIState) GestureAction {
	if !g.bindings.Touch {
		return ActionNone
	}

	action := ActionNone
	g.taps++

	if !g.lastTap.IsZero() {
		delta := now.Sub(g.lastTap)
		switch {
		case delta >= DoubleTapMax:
		case delta > DoubleTapMin:
			if state.TabPanelOpen {
				action = ActionCloseTabPanel
			} else {
				action = ActionToggleSearch
			}
			g.taps = 0
		default:
			if g.taps == TapsForPanel && !state.TabPanelOpen && !state.SearchOpen {
				action = ActionOpenTabPanel
			}
		}
	}

	if g.taps%TapsForPanel == 0 {
		g.taps = 0
	}
	g.lastTap = now
	return action
}

// Key registers a key press outside the search input.
func (g *GestureRecognizer) Key(key string, now time.Time, state UIState) GestureAction {
	key = NormalizeKey(key)

	if key == g.bindings.Modifier {
		g.pressed = true
		g.pressedAt = now
		return ActionNone
	}
	if !g.Armed(now) {
		g.pressed = false
		return ActionNone
	}

	if key == g.bindings.Trigger && !state.TabPanelOpen {
		g.pressed = false
		return ActionToggleSearch
	}

	if g.isTabKey(key) && !state.SearchOpen {
		g.pressed = false
		if state.TabPanelOpen {
			return ActionCloseTabPanel
		}
		return ActionOpenTabPanel
	}

	return ActionNone
}

func (g *GestureRecognizer) isTabKey(key string) bool {
	return slices.Contains(g.bindings.TabKeys, key)
}
