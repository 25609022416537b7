package styles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/ui/component"
	"github.com/bnema/fsearch/internal/ui/input"
	"github.com/bnema/fsearch/internal/ui/mainloop"
)

func TestStackShiftsHits(t *testing.T) {
	top := Frame{View: "a\nb", Hits: []Hit{{Line: 1, Start: 0, End: 1, Target: input.ClickSearchButton}}}
	bottom := Frame{View: "c", Hits: []Hit{{Line: 0, Start: 2, End: 4, Target: input.ClickTabRow, Index: 3}}}

	f := Stack(top, Frame{}, bottom)

	assert.Equal(t, "a\nb\nc", f.View)
	assert.Equal(t, 3, f.Height())

	hit, ok := f.HitAt(3, 2)
	require.True(t, ok)
	assert.Equal(t, input.ClickTabRow, hit.Target)
	assert.Equal(t, 3, hit.Index)

	_, ok = f.HitAt(4, 2)
	assert.False(t, ok, "end is exclusive")

	hit, ok = f.HitAt(0, 1)
	require.True(t, ok)
	assert.Equal(t, input.ClickSearchButton, hit.Target)
}

func TestRenderTabPanelClosed(t *testing.T) {
	f := RenderTabPanel(NewTheme(), component.NewTabPanel(4), 60)
	assert.Empty(t, f.View)
	assert.Zero(t, f.Height())
}

func TestRenderTabPanelHits(t *testing.T) {
	p := component.NewTabPanel(2)
	p.Build([]entity.Tab{
		{ID: 1, Title: "one"},
		{ID: 2, Title: "two"},
		{ID: 3, Title: "three", Active: true},
	})

	f := RenderTabPanel(NewTheme(), p, 60)
	require.NotEmpty(t, f.View)
	assert.Contains(t, f.View, "three")
	assert.Contains(t, f.View, "↑ 1 more")

	var rows, closers []int
	for _, h := range f.Hits {
		switch h.Target {
		case input.ClickTabRow:
			rows = append(rows, h.Index)
		case input.ClickTabClose:
			closers = append(closers, h.Index)
		}
	}
	assert.Equal(t, []int{1, 2}, rows, "hits carry absolute row indexes")
	assert.Equal(t, []int{1, 2}, closers)

	// Border plus the scroll hint put the first visible row on line 2.
	hit, ok := f.HitAt(f.Hits[0].Start, 2)
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index)
}

func TestRenderOverlayHits(t *testing.T) {
	timers := mainloop.NewTimerWheel()
	o := component.NewSearchOverlay(component.OverlayConfig{
		Timers:  timers,
		Catalog: entity.NewEngineCatalog(entity.LangEN),
		Lang:    entity.LangEN,
	})
	now := time.Unix(0, 0)
	o.Open(now, false)
	timers.Advance(now)
	o.ApplyMatches([]entity.MatchCandidate{{ID: 1, Text: "alpha"}, {ID: 2, Text: "beta"}})

	f := RenderOverlay(NewTheme(), o, 60)
	require.NotEmpty(t, f.View)
	assert.Contains(t, f.View, "alpha")

	counts := map[input.ClickTarget]int{}
	for _, h := range f.Hits {
		counts[h.Target]++
	}
	assert.Equal(t, 1, counts[input.ClickSearchButton])
	assert.Equal(t, 1, counts[input.ClickCloseButton])
	assert.Equal(t, 1, counts[input.ClickShortcutToggle])
	assert.Equal(t, 2, counts[input.ClickSuggestionText])
	assert.Equal(t, 2, counts[input.ClickSuggestionRemove])

	o.Tray.Toggle()
	f = RenderOverlay(NewTheme(), o, 60)
	shortcuts := 0
	for _, h := range f.Hits {
		if h.Target == input.ClickShortcut {
			shortcuts++
		}
	}
	assert.Positive(t, shortcuts)

	o.Suggestions.MarkRemoved(0)
	f = RenderOverlay(NewTheme(), o, 60)
	assert.Contains(t, f.View, component.RemovedPlaceholder(entity.LangEN))
}

func TestRenderOverlayClosed(t *testing.T) {
	o := component.NewSearchOverlay(component.OverlayConfig{Catalog: entity.NewEngineCatalog(entity.LangEN)})
	assert.Empty(t, RenderOverlay(NewTheme(), o, 60).View)
}

func TestNewSearchKeyMapFollowsSettings(t *testing.T) {
	s := entity.DefaultSettings()
	km := NewSearchKeyMap(s, "f2")
	assert.Equal(t, "ctrl+enter", km.ToggleSearch.Help().Key)
	assert.Equal(t, "ctrl+↓/↑", km.TabPanel.Help().Key)
	assert.True(t, km.Tap.Enabled())

	s.Touch = false
	assert.False(t, NewSearchKeyMap(s, "f2").Tap.Enabled())
	assert.False(t, NewSearchKeyMap(entity.DefaultSettings(), "").Tap.Enabled())
}
