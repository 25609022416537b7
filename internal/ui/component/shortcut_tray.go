package component

import "github.com/bnema/fsearch/internal/domain/entity"

// ShortcutItem is one engine icon in the tray; Tooltip is its shortcut token.
type ShortcutItem struct {
	Key     string
	Favicon string
	Tooltip string
}

// ShortcutTray lists one item per catalog engine. Clicking an item inserts
// "token:" into the input and folds the tray.
type ShortcutTray struct {
	items    []ShortcutItem
	expanded bool
}

// NewShortcutTray builds the tray from the engine catalog order.
func NewShortcutTray(catalog *entity.EngineCatalog) *ShortcutTray {
	t := &ShortcutTray{}
	for _, e := range catalog.All() {
		t.items = append(t.items, ShortcutItem{Key: e.Key, Favicon: e.Favicon, Tooltip: e.Shortcut})
	}
	return t
}

// Items returns the tray items.
func (t *ShortcutTray) Items() []ShortcutItem {
	out := make([]ShortcutItem, len(t.items))
	copy(out, t.items)
	return out
}

// Expanded reports whether the tray is unfolded.
func (t *ShortcutTray) Expanded() bool { return t.expanded }

// Toggle folds or unfolds the tray.
func (t *ShortcutTray) Toggle() { t.expanded = !t.expanded }

// Collapse folds the tray.
func (t *ShortcutTray) Collapse() { t.expanded = false }

// Pick returns the input text for the item at index and folds the tray.
func (t *ShortcutTray) Pick(index int) (string, bool) {
	if index < 0 || index >= len(t.items) {
		return "", false
	}
	t.expanded = false
	return t.items[index].Tooltip + ":", true
}
