package input

import (
	"strings"
	"time"
)

// DOM key names used by settings and the gesture recognizer.
const (
	KeyControl    = "Control"
	KeyAlt        = "Alt"
	KeyShift      = "Shift"
	KeyMeta       = "Meta"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyDelete     = "Delete"
	KeyBackspace  = "Backspace"
	KeyTab        = "Tab"
	KeySpace      = " "
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
)

var keyByName = map[string]string{
	"ctrl":       KeyControl,
	"control":    KeyControl,
	"alt":        KeyAlt,
	"option":     KeyAlt,
	"shift":      KeyShift,
	"meta":       KeyMeta,
	"super":      KeyMeta,
	"cmd":        KeyMeta,
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"esc":        KeyEscape,
	"escape":     KeyEscape,
	"delete":     KeyDelete,
	"del":        KeyDelete,
	"backspace":  KeyBackspace,
	"tab":        KeyTab,
	"space":      KeySpace,
	"up":         KeyArrowUp,
	"arrowup":    KeyArrowUp,
	"down":       KeyArrowDown,
	"arrowdown":  KeyArrowDown,
	"left":       KeyArrowLeft,
	"arrowleft":  KeyArrowLeft,
	"right":      KeyArrowRight,
	"arrowright": KeyArrowRight,
	"home":       KeyHome,
	"end":        KeyEnd,
}

// terminal control sequences that stand for a named key with Control held.
var ctrlAliases = map[string]string{
	"j": KeyEnter,
	"m": KeyEnter,
	"[": KeyEscape,
	"h": KeyBackspace,
	"i": KeyTab,
	"@": KeySpace,
}

// NormalizeKey maps a key name or alias to its DOM key name. Single
// characters are returned unchanged so "f" and "F" stay distinct.
func NormalizeKey(name string) string {
	if len([]rune(name)) == 1 {
		return name
	}
	if key, ok := keyByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return key
	}
	return name
}

// IsArrow reports whether key moves a highlight up or down.
func IsArrow(key string) bool {
	return key == KeyArrowUp || key == KeyArrowDown
}

// FromTerminal decomposes a terminal key string ("ctrl+j", "alt+down", "f")
// into the key events a browser would have delivered. Terminals cannot
// report a lone modifier, so each modifier prefix becomes its own press ahead
// of the base key. A key equal to tapKey is reported as a tap instead.
func FromTerminal(s string, now time.Time, tapKey string) []Event {
	if s == "" {
		return nil
	}
	if tapKey != "" && s == tapKey {
		return []Event{TapEvent{Time: now}}
	}

	var events []Event
	rest := s
	ctrl := false
	for {
		prefix, base, ok := strings.Cut(rest, "+")
		if !ok || base == "" {
			break
		}
		mod, known := keyByName[prefix]
		if !known || (mod != KeyControl && mod != KeyAlt && mod != KeyShift && mod != KeyMeta) {
			break
		}
		if mod == KeyControl {
			ctrl = true
		}
		events = append(events, KeyEvent{Key: mod, Time: now})
		rest = base
	}

	key := NormalizeKey(rest)
	if ctrl {
		if alias, ok := ctrlAliases[rest]; ok {
			key = alias
		}
	}
	return append(events, KeyEvent{Key: key, Time: now})
}
