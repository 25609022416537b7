// Package controller drives the search overlay and the tab panel from typed
// UI events and host responses.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/fsearch/internal/app/messaging"
	"github.com/bnema/fsearch/internal/application/port"
	"github.com/bnema/fsearch/internal/application/usecase"
	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/logging"
	"github.com/bnema/fsearch/internal/ui/component"
	"github.com/bnema/fsearch/internal/ui/input"
	"github.com/bnema/fsearch/internal/ui/mainloop"
)

// iconLoadLimit bounds concurrent favicon fetches for one panel build.
const iconLoadLimit = 4

// TabChannel is the controller's view of the message bridge.
type TabChannel interface {
	Tabs(ctx context.Context, cb messaging.Callback) (uint64, error)
	Update(ctx context.Context, id entity.TabID, cb messaging.Callback) (uint64, error)
	Remove(ctx context.Context, id entity.TabID, cb messaging.Callback) (uint64, error)
	Storage(ctx context.Context, key string, cb messaging.Callback) (uint64, error)
}

// Config wires a SearchController.
type Config struct {
	// Hostname of the page; the overlay stays inactive on excluded hosts.
	Hostname    string
	Settings    entity.Settings
	Channel     TabChannel
	Suggestions *usecase.SuggestionsUseCase
	Opener      *usecase.OpenRequestUseCase
	// Favicons is optional; without it every row shows the placeholder icon.
	Favicons port.FaviconLoader
	// Swatch reduces favicon bytes to a display color.
	Swatch func(data []byte) (string, bool)
	// Post enqueues work onto the UI loop.
	Post            func(func())
	Now             func() time.Time
	ViewportRows    int
	TouchFocusDelay time.Duration
}

// SearchController owns all page-side UI state. Every exported method must
// be called from the UI loop; background results come back through Post.
type SearchController struct {
	ctx context.Context
	log *zerolog.Logger

	hostname    string
	settings    entity.Settings
	channel     TabChannel
	suggestions *usecase.SuggestionsUseCase
	opener      *usecase.OpenRequestUseCase
	favicons    port.FaviconLoader
	swatch      func([]byte) (string, bool)
	now         func() time.Time

	gestures *input.GestureRecognizer
	timers   *mainloop.TimerWheel
	icons    *mainloop.Coalescer
	overlay  *component.SearchOverlay
	panel    *component.TabPanel
	backdrop component.Backdrop

	// Sequence numbers guard against late responses: a callback only acts
	// when its number is still current.
	openSeq     uint64
	openPending bool
	tabsSeq     uint64
	tabsPending bool
	iconCancel  context.CancelFunc
}

// New creates a controller. Call Start before feeding events.
func New(ctx context.Context, cfg Config) (*SearchController, error) {
	if cfg.Channel == nil {
		return nil, fmt.Errorf("search controller: channel is required")
	}
	if cfg.Suggestions == nil || cfg.Opener == nil {
		return nil, fmt.Errorf("search controller: suggestions and opener are required")
	}
	if cfg.Post == nil {
		return nil, fmt.Errorf("search controller: post function is required")
	}

	ctx = logging.WithComponent(ctx, "controller")
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	c := &SearchController{
		ctx:         ctx,
		log:         logging.FromContext(ctx),
		hostname:    cfg.Hostname,
		settings:    cfg.Settings,
		channel:     cfg.Channel,
		suggestions: cfg.Suggestions,
		opener:      cfg.Opener,
		favicons:    cfg.Favicons,
		swatch:      cfg.Swatch,
		now:         now,
		gestures:    input.NewGestureRecognizer(input.BindingsFromSettings(cfg.Settings)),
		timers:      mainloop.NewTimerWheel(),
		icons:       mainloop.NewCoalescer(cfg.Post),
		panel:       component.NewTabPanel(cfg.ViewportRows),
	}
	c.overlay = component.NewSearchOverlay(component.OverlayConfig{
		Timers:               c.timers,
		Catalog:              entity.NewEngineCatalog(cfg.Settings.Lang),
		Lang:                 cfg.Settings.Lang,
		FocusDelay:           cfg.TouchFocusDelay,
		OnSuggestionsCleared: c.reindex,
	})
	c.applySettings(cfg.Settings)
	return c, nil
}

// Start loads suggestions and asks the host for the stored settings.
func (c *SearchController) Start() {
	if err := c.suggestions.Load(c.ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to load suggestions")
	}
	if _, err := c.channel.Storage(c.ctx, entity.SettingsStorageKey, func(resp messaging.Response, err error) {
		if err != nil {
			c.log.Warn().Err(err).Msg("initial settings request failed, using defaults")
			return
		}
		c.mergeSettings(resp)
	}); err != nil {
		c.log.Warn().Err(err).Msg("failed to request settings")
	}
}

// Shutdown renumbers pending suggestion removals and drops queued work.
func (c *SearchController) Shutdown() {
	c.reindex()
	c.cancelIcons()
	c.icons.Stop()
	c.timers.Clear()
}

// State reports which surfaces are shown.
func (c *SearchController) State() input.UIState {
	return input.UIState{
		SearchOpen:         c.overlay.IsOpen(),
		TabPanelOpen:       c.panel.IsOpen(),
		SuggestionsVisible: c.overlay.Suggestions.Visible(),
	}
}

// Overlay exposes the search overlay for rendering.
func (c *SearchController) Overlay() *component.SearchOverlay { return c.overlay }

// Panel exposes the tab panel for rendering.
func (c *SearchController) Panel() *component.TabPanel { return c.panel }

// Backdrop exposes the scrim for rendering.
func (c *SearchController) Backdrop() component.Backdrop { return c.backdrop }

// Settings returns the settings in effect.
func (c *SearchController) Settings() entity.Settings { return c.settings }

// Tick fires due timers.
func (c *SearchController) Tick(now time.Time) {
	c.timers.Advance(now)
	c.syncBackdrop()
}

// NextTimer returns when the next timer is due.
func (c *SearchController) NextTimer() (time.Time, bool) {
	return c.timers.Next()
}

// Handle dispatches one UI event.
func (c *SearchController) Handle(ev input.Event) {
	switch e := ev.(type) {
	case input.KeyEvent:
		c.handleKey(input.NormalizeKey(e.Key), e.Time)
	case input.TapEvent:
		c.apply(c.gestures.Tap(e.Time, c.State()), e.Time, true)
	case input.ClickEvent:
		c.handleClick(e)
	case input.HoverEvent:
		if c.panel.IsOpen() {
			c.panel.SetHover(e.Index)
		}
	}
	c.syncBackdrop()
}

// HandleNotification reacts to host-initiated messages.
func (c *SearchController) HandleNotification(resp messaging.Response) {
	if resp.Action != messaging.ActionChangeTab {
		c.log.Debug().Str("action", string(resp.Action)).Msg("ignoring host notification")
		return
	}
	if c.panel.IsOpen() {
		c.closePanel()
		c.syncBackdrop()
	}
}

func (c *SearchController) apply(action input.GestureAction, now time.Time, touch bool) {
	switch action {
	case input.ActionToggleSearch:
		if c.overlay.IsOpen() {
			c.closeSearch(now)
			return
		}
		c.openSearch(touch)
	case input.ActionOpenTabPanel:
		c.openPanel()
	case input.ActionCloseTabPanel:
		c.closePanel()
	}
}

func (c *SearchController) handleKey(key string, now time.Time) {
	if c.overlay.IsOpen() && c.overlay.Focused() {
		c.handleInputKey(key, now)
		return
	}

	if key == input.KeyEscape {
		if c.overlay.IsOpen() || c.openPending {
			c.closeSearch(now)
		}
		if c.panel.IsOpen() || c.tabsPending {
			c.closePanel()
		}
		return
	}

	if key == input.KeyDelete && c.panel.IsOpen() {
		if tab, ok := c.panel.TabAt(c.panel.Highlighted()); ok {
			c.removeTab(tab.ID)
		}
		return
	}

	if action := c.gestures.Key(key, now, c.State()); action != input.ActionNone {
		c.apply(action, now, false)
		return
	}

	switch {
	case input.IsArrow(key) && c.panel.IsOpen():
		c.panel.Move(key == input.KeyArrowDown)
	case key == "f" && c.overlay.IsOpen():
		c.overlay.Focus()
	case key == input.KeyEnter && c.panel.IsOpen():
		if tab, ok := c.panel.Target(); ok {
			c.switchTab(tab.ID)
		}
	}
}

func (c *SearchController) handleInputKey(key string, now time.Time) {
	o := c.overlay

	switch key {
	case input.KeyEscape:
		c.closeSearch(now)
		return
	case input.KeyEnter:
		c.submit(o.Value(), true)
		return
	case input.KeyTab:
		o.Blur()
		return
	case input.KeyArrowUp, input.KeyArrowDown:
		o.MoveSuggestion(key == input.KeyArrowDown)
		o.Preview.Update(o.Value())
		return
	case input.KeyArrowLeft:
		o.MoveCaret(-1)
		return
	case input.KeyArrowRight:
		o.MoveCaret(1)
		return
	case input.KeyHome:
		o.CaretToStart()
		return
	case input.KeyEnd:
		o.CaretToEnd()
		return
	case input.KeyBackspace:
		o.Backspace()
	case input.KeyDelete:
		o.DeleteForward()
	case input.KeyControl, input.KeyAlt, input.KeyShift, input.KeyMeta:
		return
	default:
		if len([]rune(key)) != 1 {
			return
		}
		o.Insert(key)
	}

	c.refreshMatches()
}

func (c *SearchController) handleClick(e input.ClickEvent) {
	o := c.overlay

	switch e.Target {
	case input.ClickSearchButton:
		if o.IsOpen() {
			c.submit(o.Value(), false)
		}
	case input.ClickCloseButton:
		c.closeSearch(e.Time)
	case input.ClickShortcutToggle:
		if o.IsOpen() {
			o.Tray.Toggle()
		}
	case input.ClickShortcut:
		if o.IsOpen() {
			o.PickShortcut(e.Index)
		}
	case input.ClickSuggestionText:
		row, ok := o.Suggestions.Row(e.Index)
		if !ok || row.Removed {
			return
		}
		o.SetValue(o.Value() + row.Text)
		c.submit(o.Value(), false)
	case input.ClickSuggestionRemove:
		c.removeSuggestion(e.Index)
	case input.ClickTabRow:
		if tab, ok := c.panel.TabAt(e.Index); ok {
			c.switchTab(tab.ID)
		}
	case input.ClickTabClose:
		if tab, ok := c.panel.TabAt(e.Index); ok {
			c.removeTab(tab.ID)
		}
	}
}

// refreshMatches renumbers pending removals before matching so the rebuilt
// rows carry the ids the store uses.
func (c *SearchController) refreshMatches() {
	c.reindex()
	value := c.overlay.Value()
	c.overlay.ApplyMatches(c.suggestions.FindMatches(value))
	c.overlay.Preview.Update(value)
}

// submit records (when asked) and opens the input. Blank input keeps the
// overlay open.
func (c *SearchController) submit(text string, record bool) {
	if record {
		if _, err := c.suggestions.Record(c.ctx, text); err != nil {
			c.log.Warn().Err(err).Msg("failed to save suggestion")
		}
	}

	out, err := c.opener.Open(c.ctx, usecase.OpenInput{Text: text, Settings: c.settings})
	if err != nil {
		c.log.Error().Err(err).Msg("failed to open search request")
		return
	}
	if !out.Opened {
		return
	}
	c.closeSearch(c.now())
}

func (c *SearchController) removeSuggestion(index int) {
	row, ok := c.overlay.Suggestions.MarkRemoved(index)
	if !ok {
		return
	}
	if _, err := c.suggestions.Remove(c.ctx, row.ID); err != nil {
		c.log.Warn().Err(err).Int("id", row.ID).Msg("failed to persist suggestion removal")
	}
}

func (c *SearchController) reindex() {
	if err := c.suggestions.Reindex(c.ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to reindex suggestions")
	}
}

// openSearch refreshes settings from storage, then shows the overlay if
// nothing else claimed the screen meanwhile.
func (c *SearchController) openSearch(touch bool) {
	if c.panel.IsOpen() || c.openPending {
		return
	}
	if c.settings.IsExcludedHost(c.hostname) {
		c.log.Debug().Str("host", c.hostname).Msg("search disabled on excluded host")
		return
	}

	c.openSeq++
	seq := c.openSeq
	c.openPending = true

	show := func() {
		if seq != c.openSeq || !c.openPending {
			return
		}
		c.openPending = false
		if c.panel.IsOpen() || c.overlay.IsOpen() {
			return
		}
		if c.settings.IsExcludedHost(c.hostname) {
			c.log.Debug().Str("host", c.hostname).Msg("search disabled on excluded host")
			return
		}
		c.reindex()
		if err := c.suggestions.Refresh(c.ctx); err != nil {
			c.log.Warn().Err(err).Msg("failed to refresh suggestions")
		}
		c.overlay.Open(c.now(), touch)
		c.syncBackdrop()
	}

	_, err := c.channel.Storage(c.ctx, entity.SettingsStorageKey, func(resp messaging.Response, err error) {
		if err != nil {
			c.log.Warn().Err(err).Msg("settings refresh failed, opening with current settings")
		} else if seq == c.openSeq {
			c.mergeSettings(resp)
		}
		show()
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to request settings, opening with current settings")
		show()
	}
}

func (c *SearchController) closeSearch(now time.Time) {
	c.openSeq++
	c.openPending = false
	c.overlay.Close(now)
}

func (c *SearchController) openPanel() {
	if c.overlay.IsOpen() || c.panel.IsOpen() || c.tabsPending {
		return
	}

	c.tabsSeq++
	seq := c.tabsSeq
	c.tabsPending = true

	_, err := c.channel.Tabs(c.ctx, func(resp messaging.Response, err error) {
		if seq != c.tabsSeq || !c.tabsPending {
			c.log.Debug().Msg("dropping stale tabs response")
			return
		}
		c.tabsPending = false
		if err != nil {
			c.log.Warn().Err(err).Msg("tabs request failed")
			return
		}
		if c.overlay.IsOpen() {
			return
		}
		tabs, err := resp.Tabs()
		if err != nil {
			c.log.Warn().Err(err).Msg("malformed tabs response")
			return
		}
		c.panel.Build(tabs)
		c.loadIcons(tabs)
		c.syncBackdrop()
	})
	if err != nil {
		c.tabsPending = false
		c.log.Warn().Err(err).Msg("failed to request tabs")
	}
}

func (c *SearchController) closePanel() {
	c.tabsSeq++
	c.tabsPending = false
	c.cancelIcons()
	c.panel.Close()
}

func (c *SearchController) switchTab(id entity.TabID) {
	_, err := c.channel.Update(c.ctx, id, func(resp messaging.Response, err error) {
		if err != nil {
			c.log.Warn().Err(err).Int("tab_id", int(id)).Msg("tab switch failed")
			return
		}
		if c.panel.IsOpen() {
			c.closePanel()
		}
		if c.overlay.IsOpen() {
			c.closeSearch(c.now())
		}
		c.syncBackdrop()
	})
	if err != nil {
		c.log.Warn().Err(err).Int("tab_id", int(id)).Msg("failed to request tab switch")
	}
}

// removeTab drops the row right away and puts it back if the host refuses.
func (c *SearchController) removeTab(id entity.TabID) {
	idx := c.panel.IndexOf(id)
	if idx < 0 {
		return
	}
	row := c.panel.Rows()[idx]
	c.panel.RemoveTab(id)

	revert := func() {
		if c.panel.IsOpen() && c.panel.IndexOf(id) < 0 {
			c.panel.Restore(row, idx)
		}
	}

	_, err := c.channel.Remove(c.ctx, id, func(resp messaging.Response, err error) {
		if err != nil {
			c.log.Warn().Err(err).Int("tab_id", int(id)).Msg("tab removal failed, restoring row")
			revert()
			return
		}
		if removed, derr := resp.TabID(); derr == nil && removed != id {
			c.panel.RemoveTab(removed)
		}
	})
	if err != nil {
		c.log.Warn().Err(err).Int("tab_id", int(id)).Msg("failed to request tab removal")
		revert()
	}
}

func (c *SearchController) loadIcons(tabs []entity.Tab) {
	c.cancelIcons()

	if c.favicons == nil {
		for _, t := range tabs {
			c.panel.SetIcon(t.ID, component.IconPlaceholder, "")
		}
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.iconCancel = cancel

	go func() {
		var g errgroup.Group
		g.SetLimit(iconLoadLimit)
		for _, t := range tabs {
			t := t
			g.Go(func() error {
				state, swatch := c.fetchIcon(ctx, t.FaviconURL)
				if ctx.Err() != nil {
					return nil
				}
				c.icons.Post(fmt.Sprintf("favicon:%d", t.ID), func() {
					if ctx.Err() == nil {
						c.panel.SetIcon(t.ID, state, swatch)
					}
				})
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (c *SearchController) fetchIcon(ctx context.Context, faviconURL string) (component.IconState, string) {
	if faviconURL == "" {
		return component.IconPlaceholder, ""
	}
	data, err := c.favicons.Load(ctx, faviconURL)
	if err != nil || len(data) == 0 {
		if err != nil && ctx.Err() == nil {
			logging.FromContext(ctx).Debug().Err(err).Str("url", faviconURL).Msg("favicon unavailable")
		}
		return component.IconPlaceholder, ""
	}
	if c.swatch == nil {
		return component.IconLoaded, ""
	}
	swatch, ok := c.swatch(data)
	if !ok {
		return component.IconPlaceholder, ""
	}
	return component.IconLoaded, swatch
}

func (c *SearchController) cancelIcons() {
	if c.iconCancel != nil {
		c.iconCancel()
		c.iconCancel = nil
	}
}

func (c *SearchController) mergeSettings(resp messaging.Response) {
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return
	}
	c.applySettings(usecase.Apply(c.ctx, c.settings, resp.Data))
}

func (c *SearchController) applySettings(s entity.Settings) {
	langChanged := s.Lang != c.settings.Lang
	c.settings = s
	c.gestures.SetBindings(input.BindingsFromSettings(s))
	c.backdrop.Enabled = s.Background
	c.backdrop.Animated = s.BackgroundAnimation
	if langChanged {
		c.overlay.SetLocale(s.Lang, entity.NewEngineCatalog(s.Lang))
	}
	c.syncBackdrop()
}

func (c *SearchController) syncBackdrop() {
	c.backdrop.Sync(c.overlay.IsOpen(), c.panel.IsOpen())
}
