package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/fsearch/internal/domain/entity"
)

func newRecognizer() *GestureRecognizer {
	return NewGestureRecognizer(BindingsFromSettings(entity.DefaultSettings()))
}

func TestTapDoubleTapTogglesSearch(t *testing.T) {
	g := newRecognizer()
	t0 := time.Unix(1000, 0)

	assert.Equal(t, ActionNone, g.Tap(t0, UIState{}))
	assert.Equal(t, ActionToggleSearch, g.Tap(t0.Add(100*time.Millisecond), UIState{}))

	// The counter was reset, so a slow third tap does nothing.
	assert.Equal(t, ActionNone, g.Tap(t0.Add(600*time.Millisecond), UIState{SearchOpen: true}))
}

func TestTapDoubleTapClosesOpenPanel(t *testing.T) {
	g := newRecognizer()
	t0 := time.Unix(1000, 0)
	state := UIState{TabPanelOpen: true}

	g.Tap(t0, state)
	assert.Equal(t, ActionCloseTabPanel, g.Tap(t0.Add(120*time.Millisecond), state))
}

func TestTapIntervalBounds(t *testing.T) {
	tests := []struct {
		name  string
		delta time.Duration
		want  GestureAction
	}{
		{"at lower bound", DoubleTapMin, ActionNone},
		{"just above lower bound", DoubleTapMin + time.Millisecond, ActionToggleSearch},
		{"just below upper bound", DoubleTapMax - time.Millisecond, ActionToggleSearch},
		{"at upper bound", DoubleTapMax, ActionNone},
		{"slow", time.Second, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newRecognizer()
			t0 := time.Unix(1000, 0)
			g.Tap(t0, UIState{})
			assert.Equal(t, tt.want, g.Tap(t0.Add(tt.delta), UIState{}))
		})
	}
}

func TestTapTripleRapidOpensPanel(t *testing.T) {
	g := newRecognizer()
	t0 := time.Unix(1000, 0)

	assert.Equal(t, ActionNone, g.Tap(t0, UIState{}))
	assert.Equal(t, ActionNone, g.Tap(t0.Add(20*time.Millisecond), UIState{}))
	assert.Equal(t, ActionOpenTabPanel, g.Tap(t0.Add(40*time.Millisecond), UIState{}))
}

func TestTapTripleRapidIgnoredWhenSomethingOpen(t *testing.T) {
	for _, state := range []UIState{{SearchOpen: true}, {TabPanelOpen: true}} {
		g := newRecognizer()
		t0 := time.Unix(1000, 0)
		g.Tap(t0, state)
		g.Tap(t0.Add(20*time.Millisecond), state)
		assert.Equal(t, ActionNone, g.Tap(t0.Add(40*time.Millisecond), state))
	}
}

func TestTapDisabledWithoutTouch(t *testing.T) {
	s := entity.DefaultSettings()
	s.Touch = false
	g := NewGestureRecognizer(BindingsFromSettings(s))
	t0 := time.Unix(1000, 0)

	g.Tap(t0, UIState{})
	assert.Equal(t, ActionNone, g.Tap(t0.Add(100*time.Millisecond), UIState{}))
}

func TestKeyChordTogglesSearch(t *testing.T) {
	g := newRecognizer()
	t0 := time.Unix(1000, 0)

	assert.Equal(t, ActionNone, g.Key(KeyControl, t0, UIState{}))
	assert.True(t, g.Armed(t0.Add(100*time.Millisecond)))
	assert.Equal(t, ActionToggleSearch, g.Key(KeyEnter, t0.Add(100*time.Millisecond), UIState{}))

	// The press was consumed.
	assert.Equal(t, ActionNone, g.Key(KeyEnter, t0.Add(200*time.Millisecond), UIState{SearchOpen: true}))
}

func TestKeyChordExpires(t *testing.T) {
	g := newRecognizer()
	t0 := time.Unix(1000, 0)

	g.Key(KeyControl, t0, UIState{})
	assert.False(t, g.Armed(t0.Add(ModifierHold)))
	assert.Equal(t, ActionNone, g.Key(KeyEnter, t0.Add(ModifierHold), UIState{}))
}

func TestKeyTriggerWithoutModifier(t *testing.T) {
	g := newRecognizer()
	assert.Equal(t, ActionNone, g.Key(KeyEnter, time.Unix(1000, 0), UIState{}))
}

func TestKeyTabChord(t *testing.T) {
	g := newRecognizer()
	t0 := time.Unix(1000, 0)

	g.Key(KeyControl, t0, UIState{})
	assert.Equal(t, ActionOpenTabPanel, g.Key(KeyArrowDown, t0.Add(50*time.Millisecond), UIState{}))

	g.Key(KeyControl, t0.Add(time.Second), UIState{TabPanelOpen: true})
	assert.Equal(t, ActionCloseTabPanel, g.Key(KeyArrowUp, t0.Add(time.Second+50*time.Millisecond), UIState{TabPanelOpen: true}))
}

func TestKeyMutualExclusion(t *testing.T) {
	g := newRecognizer()
	t0 := time.Unix(1000, 0)

	// Search trigger is ignored while the tab panel is open.
	g.Key(KeyControl, t0, UIState{TabPanelOpen: true})
	assert.Equal(t, ActionNone, g.Key(KeyEnter, t0.Add(10*time.Millisecond), UIState{TabPanelOpen: true}))

	// Tab keys are ignored while the overlay is open.
	g.Key(KeyControl, t0.Add(time.Second), UIState{SearchOpen: true})
	assert.Equal(t, ActionNone, g.Key(KeyArrowDown, t0.Add(time.Second+10*time.Millisecond), UIState{SearchOpen: true}))
}

func TestKeyCustomBindings(t *testing.T) {
	g := NewGestureRecognizer(Bindings{Modifier: "alt", Trigger: "s", TabKeys: []string{"up"}})
	t0 := time.Unix(1000, 0)

	g.Key(KeyAlt, t0, UIState{})
	assert.Equal(t, ActionToggleSearch, g.Key("s", t0.Add(10*time.Millisecond), UIState{}))

	g.Key("Alt", t0.Add(time.Second), UIState{})
	assert.Equal(t, ActionOpenTabPanel, g.Key(KeyArrowUp, t0.Add(time.Second+10*time.Millisecond), UIState{}))
}

func TestReset(t *testing.T) {
	g := newRecognizer()
	t0 := time.Unix(1000, 0)
	g.Key(KeyControl, t0, UIState{})
	g.Tap(t0, UIState{})
	g.Reset()

	assert.False(t, g.Armed(t0))
	assert.Equal(t, ActionNone, g.Tap(t0.Add(100*time.Millisecond), UIState{}))
}
