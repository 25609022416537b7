package controller

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/fsearch/internal/app/messaging"
	portmocks "github.com/bnema/fsearch/internal/application/port/mocks"
	"github.com/bnema/fsearch/internal/application/usecase"
	"github.com/bnema/fsearch/internal/domain/entity"
	repomocks "github.com/bnema/fsearch/internal/domain/repository/mocks"
	"github.com/bnema/fsearch/internal/logging"
	"github.com/bnema/fsearch/internal/ui/component"
	"github.com/bnema/fsearch/internal/ui/input"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type sentRequest struct {
	query messaging.Query
	tabID entity.TabID
	key   string
	cb    messaging.Callback
}

// fakeChannel records requests; tests answer them by calling cb, which is
// what the bridge does once a response is posted onto the loop.
type fakeChannel struct {
	sent []sentRequest
	err  error
}

func (f *fakeChannel) record(r sentRequest) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, r)
	return uint64(len(f.sent)), nil
}

func (f *fakeChannel) Tabs(_ context.Context, cb messaging.Callback) (uint64, error) {
	return f.record(sentRequest{query: messaging.QueryTabs, cb: cb})
}

func (f *fakeChannel) Update(_ context.Context, id entity.TabID, cb messaging.Callback) (uint64, error) {
	return f.record(sentRequest{query: messaging.QueryUpdate, tabID: id, cb: cb})
}

func (f *fakeChannel) Remove(_ context.Context, id entity.TabID, cb messaging.Callback) (uint64, error) {
	return f.record(sentRequest{query: messaging.QueryRemove, tabID: id, cb: cb})
}

func (f *fakeChannel) Storage(_ context.Context, key string, cb messaging.Callback) (uint64, error) {
	return f.record(sentRequest{query: messaging.QueryStorage, key: key, cb: cb})
}

func (f *fakeChannel) last(t *testing.T, q messaging.Query) sentRequest {
	t.Helper()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].query == q {
			return f.sent[i]
		}
	}
	t.Fatalf("no %s request sent", q)
	return sentRequest{}
}

func (f *fakeChannel) count(q messaging.Query) int {
	n := 0
	for _, r := range f.sent {
		if r.query == q {
			n++
		}
	}
	return n
}

type harness struct {
	t       *testing.T
	ctrl    *SearchController
	channel *fakeChannel
	opener  *portmocks.MockURLOpener
	data    map[string][]byte
	now     time.Time

	mu    sync.Mutex
	queue []func()
}

type harnessOption func(*Config)

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	h := &harness{
		t:       t,
		channel: &fakeChannel{},
		opener:  portmocks.NewMockURLOpener(t),
		data:    map[string][]byte{},
		now:     time.Unix(1000, 0),
	}

	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, key string) ([]byte, error) {
		return h.data[key], nil
	}).Maybe()
	store.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, key string, v []byte) error {
		h.data[key] = v
		return nil
	}).Maybe()

	cfg := Config{
		Hostname:     "example.org",
		Settings:     entity.DefaultSettings(),
		Channel:      h.channel,
		Suggestions:  usecase.NewSuggestionsUseCase(store),
		Opener:       usecase.NewOpenRequestUseCase(h.opener),
		Post:         h.post,
		Now:          func() time.Time { return h.now },
		ViewportRows: 4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctrl, err := New(testCtx(), cfg)
	require.NoError(t, err)
	h.ctrl = ctrl
	return h
}

func (h *harness) post(fn func()) {
	h.mu.Lock()
	h.queue = append(h.queue, fn)
	h.mu.Unlock()
}

func (h *harness) drain() {
	h.mu.Lock()
	queue := h.queue
	h.queue = nil
	h.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
}

func (h *harness) queued() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

func (h *harness) advance(d time.Duration) {
	h.now = h.now.Add(d)
	h.ctrl.Tick(h.now)
}

func (h *harness) key(keys ...string) {
	for _, k := range keys {
		h.now = h.now.Add(10 * time.Millisecond)
		h.ctrl.Handle(input.KeyEvent{Key: k, Time: h.now})
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.key(string(r))
	}
}

func (h *harness) click(target input.ClickTarget, index int) {
	h.ctrl.Handle(input.ClickEvent{Target: target, Index: index, Time: h.now})
}

// openSearch fires the chord and answers the settings refresh with blob.
func (h *harness) openSearch(blob string) {
	h.t.Helper()
	h.key(input.KeyControl, input.KeyEnter)
	req := h.channel.last(h.t, messaging.QueryStorage)
	require.Equal(h.t, entity.SettingsStorageKey, req.key)
	var data json.RawMessage
	if blob != "" {
		data = json.RawMessage(blob)
	}
	req.cb(messaging.Response{Action: messaging.ActionGetStorage, Key: req.key, Data: data}, nil)
	h.advance(0)
}

func tabsResponse(t *testing.T, tabs []entity.Tab) messaging.Response {
	data, err := json.Marshal(tabs)
	require.NoError(t, err)
	return messaging.Response{Action: messaging.ActionTabs, Data: data}
}

func tabIDResponse(action messaging.Action, id entity.TabID) messaging.Response {
	data, _ := json.Marshal(id)
	return messaging.Response{Action: action, Data: data}
}

func sampleTabs() []entity.Tab {
	return []entity.Tab{
		{ID: 1, Title: "one"},
		{ID: 2, Title: "two", Active: true},
		{ID: 3, Title: "three"},
	}
}

// openPanel fires the tab chord and answers with tabs.
func (h *harness) openPanel(tabs []entity.Tab) {
	h.t.Helper()
	h.key(input.KeyControl, input.KeyArrowDown)
	h.channel.last(h.t, messaging.QueryTabs).cb(tabsResponse(h.t, tabs), nil)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(testCtx(), Config{})
	assert.Error(t, err)
}

func TestChordOpensSearchAfterSettingsRefresh(t *testing.T) {
	h := newHarness(t)

	h.key(input.KeyControl, input.KeyEnter)
	assert.False(t, h.ctrl.State().SearchOpen, "overlay waits for the settings refresh")

	req := h.channel.last(t, messaging.QueryStorage)
	req.cb(messaging.Response{Action: messaging.ActionGetStorage, Data: json.RawMessage(`{"lang":"ru","self":true}`)}, nil)

	assert.True(t, h.ctrl.State().SearchOpen)
	assert.True(t, h.ctrl.Backdrop().Visible())
	assert.Equal(t, entity.LangRU, h.ctrl.Settings().Lang)
	assert.True(t, h.ctrl.Settings().OpenInSelf)
	assert.Equal(t, "Введите запрос", h.ctrl.Overlay().Label())

	h.advance(0)
	assert.True(t, h.ctrl.Overlay().Focused())
}

func TestChordTogglesSearchClosed(t *testing.T) {
	h := newHarness(t)
	h.openSearch("")
	h.key(input.KeyTab) // leave the input so the chord reaches the recognizer

	h.key(input.KeyControl, input.KeyEnter)
	assert.False(t, h.ctrl.State().SearchOpen)
	assert.False(t, h.ctrl.Backdrop().Visible())
}

func TestSearchRefusedOnExcludedHost(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.Hostname = "www.linkedin.com" })

	h.key(input.KeyControl, input.KeyEnter)
	assert.Zero(t, h.channel.count(messaging.QueryStorage))
	assert.False(t, h.ctrl.State().SearchOpen)
}

func TestSearchRefusedWhenRefreshExcludesHost(t *testing.T) {
	h := newHarness(t)

	h.key(input.KeyControl, input.KeyEnter)
	h.channel.last(t, messaging.QueryStorage).cb(messaging.Response{
		Action: messaging.ActionGetStorage,
		Data:   json.RawMessage(`{"exclude_urls":["example.org"]}`),
	}, nil)

	assert.False(t, h.ctrl.State().SearchOpen)
}

func TestSearchOpensWhenSettingsRefreshFails(t *testing.T) {
	h := newHarness(t)

	h.key(input.KeyControl, input.KeyEnter)
	h.channel.last(t, messaging.QueryStorage).cb(messaging.Response{}, messaging.ErrRequestTimeout)

	assert.True(t, h.ctrl.State().SearchOpen)
}

func TestSearchOpensWhenBridgeIsDown(t *testing.T) {
	h := newHarness(t)
	h.channel.err = messaging.ErrBridgeClosed

	h.key(input.KeyControl, input.KeyEnter)
	assert.True(t, h.ctrl.State().SearchOpen)
}

func TestStaleSettingsResponseDoesNotOpen(t *testing.T) {
	h := newHarness(t)

	h.key(input.KeyControl, input.KeyEnter)
	req := h.channel.last(t, messaging.QueryStorage)
	h.key(input.KeyEscape)

	req.cb(messaging.Response{Action: messaging.ActionGetStorage, Data: json.RawMessage(`{"lang":"ru"}`)}, nil)
	assert.False(t, h.ctrl.State().SearchOpen)
	assert.Equal(t, entity.LangEN, h.ctrl.Settings().Lang)
}

func TestDoubleTapOpensWithTouchFocusDelay(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Handle(input.TapEvent{Time: h.now})
	h.now = h.now.Add(100 * time.Millisecond)
	h.ctrl.Handle(input.TapEvent{Time: h.now})

	h.channel.last(t, messaging.QueryStorage).cb(messaging.Response{Action: messaging.ActionGetStorage}, nil)
	require.True(t, h.ctrl.State().SearchOpen)

	h.advance(component.TouchFocusDelay - time.Millisecond)
	assert.False(t, h.ctrl.Overlay().Focused())
	h.advance(time.Millisecond)
	assert.True(t, h.ctrl.Overlay().Focused())
}

func TestTypingShowsSuggestionsAndEnterOpens(t *testing.T) {
	h := newHarness(t)
	h.data[entity.SuggestionsStorageKey] = []byte(`[{"id":0,"request":"lofi beats","typeCount":3},{"id":1,"request":"lol","typeCount":1}]`)
	h.ctrl.Start()
	h.openSearch("")

	h.typeText("yt:lo")
	state := h.ctrl.State()
	assert.True(t, state.SuggestionsVisible)
	engine, ok := h.ctrl.Overlay().Preview.Engine()
	require.True(t, ok)
	assert.Equal(t, "youtube", engine.Key)

	h.key(input.KeyArrowDown)
	assert.Equal(t, "yt:lofi beats", h.ctrl.Overlay().Value())

	h.opener.EXPECT().OpenURL(mock.Anything, "http://youtube.com/results?search_query=lofi beats", false).Return(nil).Once()
	h.key(input.KeyEnter)

	assert.False(t, h.ctrl.State().SearchOpen)
	assert.Contains(t, string(h.data[entity.SuggestionsStorageKey]), `"typeCount":4`)
}

func TestBlankEnterKeepsOverlayOpen(t *testing.T) {
	h := newHarness(t)
	h.openSearch("")

	h.key(input.KeyEnter)
	assert.True(t, h.ctrl.State().SearchOpen)
	h.opener.AssertNotCalled(t, "OpenURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpenFailureKeepsOverlayOpen(t *testing.T) {
	h := newHarness(t)
	h.openSearch("")
	h.typeText("cats")

	h.opener.EXPECT().OpenURL(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no browser")).Once()
	h.key(input.KeyEnter)
	assert.True(t, h.ctrl.State().SearchOpen)
	assert.Equal(t, "cats", h.ctrl.Overlay().Value())
}

func TestSuggestionClicks(t *testing.T) {
	h := newHarness(t)
	h.data[entity.SuggestionsStorageKey] = []byte(`[{"id":0,"request":"alpha","typeCount":1},{"id":1,"request":"alps","typeCount":2},{"id":2,"request":"beta","typeCount":1}]`)
	h.ctrl.Start()
	h.openSearch("")
	h.typeText("al")

	rows := h.ctrl.Overlay().Suggestions.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "alps", rows[0].Text)

	h.click(input.ClickSuggestionRemove, 0)
	rows = h.ctrl.Overlay().Suggestions.Rows()
	assert.True(t, rows[0].Removed)
	assert.Equal(t, "Suggest removed", rows[0].Text)
	assert.NotContains(t, string(h.data[entity.SuggestionsStorageKey]), "alps")

	h.opener.EXPECT().OpenURL(mock.Anything, "https://google.by/search?q=alalpha", false).Return(nil).Once()
	h.click(input.ClickSuggestionText, 1)
	assert.False(t, h.ctrl.State().SearchOpen)

	// Closing cleared the dropdown, which renumbered the remaining ids.
	list, err := entity.DecodeSuggestions(h.data[entity.SuggestionsStorageKey])
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].ID)
	assert.Equal(t, 1, list[1].ID)
}

func TestRemoveAfterKeystrokeTargetsRenumberedRow(t *testing.T) {
	h := newHarness(t)
	h.data[entity.SuggestionsStorageKey] = []byte(`[{"id":0,"request":"cat","typeCount":3},{"id":1,"request":"car","typeCount":2},{"id":2,"request":"cab","typeCount":1}]`)
	h.ctrl.Start()
	h.openSearch("")

	h.typeText("c")
	h.click(input.ClickSuggestionRemove, 0)
	h.typeText("a")

	rows := h.ctrl.Overlay().Suggestions.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, component.SuggestionRow{ID: 0, Text: "car"}, rows[0])
	assert.Equal(t, component.SuggestionRow{ID: 1, Text: "cab"}, rows[1])

	h.click(input.ClickSuggestionRemove, 0)
	list, err := entity.DecodeSuggestions(h.data[entity.SuggestionsStorageKey])
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cab", list[0].Text)
}

func TestShortcutTrayClick(t *testing.T) {
	h := newHarness(t)
	h.openSearch("")

	h.click(input.ClickShortcutToggle, 0)
	assert.True(t, h.ctrl.Overlay().Tray.Expanded())
	h.click(input.ClickShortcut, 6)
	assert.Equal(t, "w:", h.ctrl.Overlay().Value())
	assert.False(t, h.ctrl.Overlay().Tray.Expanded())
}

func TestFKeyFocusesInput(t *testing.T) {
	h := newHarness(t)
	h.openSearch("")
	h.key(input.KeyTab)
	require.False(t, h.ctrl.Overlay().Focused())

	h.key("f")
	assert.True(t, h.ctrl.Overlay().Focused())
	assert.Empty(t, h.ctrl.Overlay().Value())
}

func TestTabPanelFlow(t *testing.T) {
	h := newHarness(t)

	h.openPanel(sampleTabs())
	require.True(t, h.ctrl.State().TabPanelOpen)
	assert.True(t, h.ctrl.Backdrop().Visible())
	assert.Equal(t, 1, h.ctrl.Panel().Highlighted())
	for _, r := range h.ctrl.Panel().Rows() {
		assert.Equal(t, component.IconPlaceholder, r.Icon)
	}

	h.key(input.KeyArrowDown)
	assert.Equal(t, 2, h.ctrl.Panel().Highlighted())

	h.key(input.KeyEnter)
	req := h.channel.last(t, messaging.QueryUpdate)
	assert.Equal(t, entity.TabID(3), req.tabID)
	assert.True(t, h.ctrl.State().TabPanelOpen, "panel stays until the host confirms")

	req.cb(tabIDResponse(messaging.ActionUpdate, 3), nil)
	assert.False(t, h.ctrl.State().TabPanelOpen)
	assert.False(t, h.ctrl.Backdrop().Visible())
}

func TestTabPanelEnterPrefersHoveredRow(t *testing.T) {
	h := newHarness(t)
	h.openPanel(sampleTabs())

	h.ctrl.Handle(input.HoverEvent{Index: 0, Time: h.now})
	h.key(input.KeyEnter)
	assert.Equal(t, entity.TabID(1), h.channel.last(t, messaging.QueryUpdate).tabID)
}

func TestTabChordClosesPanel(t *testing.T) {
	h := newHarness(t)
	h.openPanel(sampleTabs())

	h.key(input.KeyControl, input.KeyArrowUp)
	assert.False(t, h.ctrl.State().TabPanelOpen)
}

func TestMutualExclusion(t *testing.T) {
	h := newHarness(t)
	h.openPanel(sampleTabs())

	// The search chord is ignored while the panel is open.
	h.key(input.KeyControl, input.KeyEnter)
	assert.False(t, h.ctrl.State().SearchOpen)

	h.key(input.KeyEscape)
	h.openSearch("")
	h.key(input.KeyTab)

	// The tab chord is ignored while the overlay is open.
	before := h.channel.count(messaging.QueryTabs)
	h.key(input.KeyControl, input.KeyArrowDown)
	assert.Equal(t, before, h.channel.count(messaging.QueryTabs))
	assert.False(t, h.ctrl.State().TabPanelOpen)
}

func TestTabsResponseDroppedWhenSearchOpenedMeanwhile(t *testing.T) {
	h := newHarness(t)

	h.key(input.KeyControl, input.KeyArrowDown)
	tabsReq := h.channel.last(t, messaging.QueryTabs)

	h.openSearch("")
	tabsReq.cb(tabsResponse(t, sampleTabs()), nil)

	state := h.ctrl.State()
	assert.True(t, state.SearchOpen)
	assert.False(t, state.TabPanelOpen)
}

func TestStaleTabsResponseDropped(t *testing.T) {
	h := newHarness(t)

	h.key(input.KeyControl, input.KeyArrowDown)
	stale := h.channel.last(t, messaging.QueryTabs)
	h.key(input.KeyEscape)

	h.key(input.KeyControl, input.KeyArrowDown)
	fresh := h.channel.last(t, messaging.QueryTabs)

	stale.cb(tabsResponse(t, sampleTabs()[:1]), nil)
	assert.False(t, h.ctrl.State().TabPanelOpen)

	fresh.cb(tabsResponse(t, sampleTabs()), nil)
	assert.Equal(t, 3, h.ctrl.Panel().Len())
}

func TestChangeTabNotification(t *testing.T) {
	h := newHarness(t)
	h.openPanel(sampleTabs())

	h.ctrl.HandleNotification(tabIDResponse(messaging.ActionChangeTab, 3))
	assert.False(t, h.ctrl.State().TabPanelOpen)

	h.openSearch("")
	h.ctrl.HandleNotification(tabIDResponse(messaging.ActionChangeTab, 1))
	assert.True(t, h.ctrl.State().SearchOpen)
}

func TestRemoveTabOptimisticAndConfirmed(t *testing.T) {
	h := newHarness(t)
	h.openPanel(sampleTabs())

	h.key(input.KeyDelete)
	req := h.channel.last(t, messaging.QueryRemove)
	assert.Equal(t, entity.TabID(2), req.tabID)
	assert.Equal(t, 2, h.ctrl.Panel().Len())
	tab, _ := h.ctrl.Panel().TabAt(h.ctrl.Panel().Highlighted())
	assert.Equal(t, entity.TabID(3), tab.ID)

	req.cb(tabIDResponse(messaging.ActionTabRemoved, 2), nil)
	assert.Equal(t, 2, h.ctrl.Panel().Len())
}

func TestRemoveTabRevertedOnFailure(t *testing.T) {
	h := newHarness(t)
	h.openPanel(sampleTabs())

	h.click(input.ClickTabClose, 0)
	req := h.channel.last(t, messaging.QueryRemove)
	assert.Equal(t, entity.TabID(1), req.tabID)
	require.Equal(t, 2, h.ctrl.Panel().Len())

	req.cb(messaging.Response{}, &messaging.HostError{Query: messaging.QueryRemove, Message: "tab not found"})
	require.Equal(t, 3, h.ctrl.Panel().Len())
	assert.Equal(t, entity.TabID(1), h.ctrl.Panel().Rows()[0].Tab.ID)
	tab, _ := h.ctrl.Panel().TabAt(h.ctrl.Panel().Highlighted())
	assert.Equal(t, entity.TabID(2), tab.ID)
}

func TestTabRowClickSwitches(t *testing.T) {
	h := newHarness(t)
	h.openPanel(sampleTabs())

	h.click(input.ClickTabRow, 2)
	assert.Equal(t, entity.TabID(3), h.channel.last(t, messaging.QueryUpdate).tabID)
}

type fakeFavicons struct{}

func (fakeFavicons) Load(_ context.Context, u string) ([]byte, error) {
	if u == "http://bad/icon" {
		return nil, errors.New("boom")
	}
	return []byte(u), nil
}

func TestTabIconsLoadThroughPost(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.Favicons = fakeFavicons{}
		c.Swatch = func([]byte) (string, bool) { return "#112233", true }
	})

	tabs := []entity.Tab{
		{ID: 1, Title: "ok", Active: true, FaviconURL: "http://good/icon"},
		{ID: 2, Title: "bad", FaviconURL: "http://bad/icon"},
		{ID: 3, Title: "none"},
	}
	h.openPanel(tabs)

	require.Eventually(t, func() bool { return h.queued() == 3 }, 2*time.Second, 5*time.Millisecond)
	rows := h.ctrl.Panel().Rows()
	assert.Equal(t, component.IconLoading, rows[0].Icon)

	h.drain()
	rows = h.ctrl.Panel().Rows()
	assert.Equal(t, component.IconLoaded, rows[0].Icon)
	assert.Equal(t, "#112233", rows[0].Swatch)
	assert.Equal(t, component.IconPlaceholder, rows[1].Icon)
	assert.Equal(t, component.IconPlaceholder, rows[2].Icon)
}

func TestShutdownReindexes(t *testing.T) {
	h := newHarness(t)
	h.data[entity.SuggestionsStorageKey] = []byte(`[{"id":0,"request":"alpha","typeCount":1},{"id":1,"request":"beta","typeCount":1}]`)
	h.ctrl.Start()
	h.openSearch("")
	h.typeText("al")
	h.click(input.ClickSuggestionRemove, 0)

	// Remove keeps the stale id of beta until a reindex.
	assert.Contains(t, string(h.data[entity.SuggestionsStorageKey]), `"id":1`)

	h.ctrl.Shutdown()
	assert.Contains(t, string(h.data[entity.SuggestionsStorageKey]), `"id":0`)
	assert.Zero(t, h.ctrl.timers.Len())
}
