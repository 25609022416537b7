// Package tabs provides the host-side tab list.
package tabs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/fsearch/internal/application/port"
	"github.com/bnema/fsearch/internal/domain/entity"
	domainurl "github.com/bnema/fsearch/internal/domain/url"
	"github.com/bnema/fsearch/internal/logging"
)

// ErrTabNotFound is returned for ids that are not (or no longer) open.
var ErrTabNotFound = errors.New("tab not found")

// MemoryBrowser is an in-process TabBrowser. Exactly one tab is active
// whenever the list is non-empty.
type MemoryBrowser struct {
	mu     sync.Mutex
	tabs   []entity.Tab
	nextID entity.TabID

	subMu     sync.Mutex
	subs      map[int]func(entity.TabID)
	nextSubID int
}

var _ port.TabBrowser = (*MemoryBrowser)(nil)

// NewMemoryBrowser seeds the browser with tabs. Ids of zero are assigned;
// the first tab marked active wins, else the first tab is activated.
func NewMemoryBrowser(seed []entity.Tab) *MemoryBrowser {
	b := &MemoryBrowser{nextID: 1, subs: make(map[int]func(entity.TabID))}

	activeSeen := false
	for _, t := range seed {
		if t.ID == 0 {
			t.ID = b.nextID
		}
		if t.ID >= b.nextID {
			b.nextID = t.ID + 1
		}
		if t.Active && activeSeen {
			t.Active = false
		}
		activeSeen = activeSeen || t.Active
		b.tabs = append(b.tabs, t)
	}
	if !activeSeen && len(b.tabs) > 0 {
		b.tabs[0].Active = true
	}
	return b
}

// List returns a snapshot of the tabs in display order.
func (b *MemoryBrowser) List(_ context.Context) ([]entity.Tab, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.tabs), nil
}

// Activate makes id the active tab.
func (b *MemoryBrowser) Activate(ctx context.Context, id entity.TabID) error {
	b.mu.Lock()
	idx := b.indexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return fmt.Errorf("activate %d: %w", id, ErrTabNotFound)
	}
	changed := !b.tabs[idx].Active
	b.setActiveLocked(idx)
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("tab_id", int(id)).Bool("changed", changed).Msg("tab activated")
	if changed {
		b.notify(id)
	}
	return nil
}

// Remove closes id. Closing the active tab activates its right neighbour,
// or the left one when it was last.
func (b *MemoryBrowser) Remove(ctx context.Context, id entity.TabID) error {
	b.mu.Lock()
	idx := b.indexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return fmt.Errorf("remove %d: %w", id, ErrTabNotFound)
	}
	wasActive := b.tabs[idx].Active
	b.tabs = slices.Delete(b.tabs, idx, idx+1)

	var activated entity.TabID
	if wasActive && len(b.tabs) > 0 {
		next := min(idx, len(b.tabs)-1)
		b.setActiveLocked(next)
		activated = b.tabs[next].ID
	}
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("tab_id", int(id)).Msg("tab removed")
	if activated != 0 {
		b.notify(activated)
	}
	return nil
}

// Open loads rawURL in the active tab when inActive is set, otherwise in a
// new tab that becomes active.
func (b *MemoryBrowser) Open(ctx context.Context, rawURL string, inActive bool) (entity.Tab, error) {
	title := domainurl.ExtractHost(rawURL)
	if title == "" {
		title = rawURL
	}

	b.mu.Lock()
	if inActive {
		if idx := b.activeIndexLocked(); idx >= 0 {
			b.tabs[idx].URL = rawURL
			b.tabs[idx].Title = title
			b.tabs[idx].FaviconURL = ""
			tab := b.tabs[idx]
			b.mu.Unlock()
			logging.FromContext(ctx).Debug().Int("tab_id", int(tab.ID)).Str("url", rawURL).Msg("loaded url in active tab")
			return tab, nil
		}
	}

	tab := entity.Tab{ID: b.nextID, Title: title, URL: rawURL}
	b.nextID++
	b.tabs = append(b.tabs, tab)
	b.setActiveLocked(len(b.tabs) - 1)
	tab = b.tabs[len(b.tabs)-1]
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("tab_id", int(tab.ID)).Str("url", rawURL).Msg("opened url in new tab")
	b.notify(tab.ID)
	return tab, nil
}

// OnActivated registers fn for activation changes.
func (b *MemoryBrowser) OnActivated(fn func(entity.TabID)) func() {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	id := b.nextSubID
	b.nextSubID++
	b.subs[id] = fn

	return func() {
		b.subMu.Lock()
		defer b.subMu.Unlock()
		delete(b.subs, id)
	}
}

func (b *MemoryBrowser) notify(id entity.TabID) {
	b.subMu.Lock()
	fns := make([]func(entity.TabID), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.subMu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

func (b *MemoryBrowser) indexLocked(id entity.TabID) int {
	return slices.IndexFunc(b.tabs, func(t entity.Tab) bool { return t.ID == id })
}

func (b *MemoryBrowser) activeIndexLocked() int {
	return slices.IndexFunc(b.tabs, func(t entity.Tab) bool { return t.Active })
}

func (b *MemoryBrowser) setActiveLocked(idx int) {
	for i := range b.tabs {
		b.tabs[i].Active = i == idx
	}
}
