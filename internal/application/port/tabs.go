// Package port defines interfaces for infrastructure adapters.
package port

import (
	"context"

	"github.com/bnema/fsearch/internal/domain/entity"
)

// TabBrowser is the privileged side of the browser: it owns the real tab
// list. Only the background host talks to it.
type TabBrowser interface {
	// List returns all tabs of the current window in display order.
	List(ctx context.Context) ([]entity.Tab, error)

	// Activate makes id the active tab.
	Activate(ctx context.Context, id entity.TabID) error

	// Remove closes id.
	Remove(ctx context.Context, id entity.TabID) error

	// Open loads rawURL either in a new tab or in the active one.
	Open(ctx context.Context, rawURL string, inActive bool) (entity.Tab, error)

	// OnActivated registers fn to run whenever the active tab changes.
	// The returned function unregisters it.
	OnActivated(fn func(id entity.TabID)) (unsubscribe func())
}
