package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"ctrl":      KeyControl,
		"Control":   KeyControl,
		"esc":       KeyEscape,
		"Return":    KeyEnter,
		"up":        KeyArrowUp,
		"ArrowDown": KeyArrowDown,
		"f":         "f",
		"F":         "F",
		"PageUp":    "PageUp",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeKey(in), in)
	}
}

func TestFromTerminal(t *testing.T) {
	now := time.Unix(1000, 0)
	keys := func(events []Event) []string {
		out := make([]string, 0, len(events))
		for _, e := range events {
			if k, ok := e.(KeyEvent); ok {
				out = append(out, k.Key)
			}
		}
		return out
	}

	tests := []struct {
		in   string
		want []string
	}{
		{"f", []string{"f"}},
		{"enter", []string{KeyEnter}},
		{"esc", []string{KeyEscape}},
		{"down", []string{KeyArrowDown}},
		{"ctrl+j", []string{KeyControl, KeyEnter}},
		{"ctrl+down", []string{KeyControl, KeyArrowDown}},
		{"ctrl+@", []string{KeyControl, KeySpace}},
		{"alt+s", []string{KeyAlt, "s"}},
		{"ctrl+alt+up", []string{KeyControl, KeyAlt, KeyArrowUp}},
		{"+", []string{"+"}},
		{"alt++", []string{KeyAlt, "+"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(FromTerminal(tt.in, now, "")))
		})
	}
}

func TestFromTerminalTapKey(t *testing.T) {
	now := time.Unix(1000, 0)
	events := FromTerminal("ctrl+t", now, "ctrl+t")
	if assert.Len(t, events, 1) {
		assert.Equal(t, TapEvent{Time: now}, events[0])
	}
	assert.Nil(t, FromTerminal("", now, ""))
}
