package component

import (
	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/domain/url"
)

// FaviconPreview is the single engine icon shown inside the input while the
// text starts with an engine shortcut.
type FaviconPreview struct {
	catalog *entity.EngineCatalog
	index   int
	swaps   int
}

// NewFaviconPreview returns an empty preview.
func NewFaviconPreview(catalog *entity.EngineCatalog) *FaviconPreview {
	return &FaviconPreview{catalog: catalog, index: -1}
}

// Update recomputes the preview for the input text. The icon is only
// replaced when the matched engine changes.
func (p *FaviconPreview) Update(text string) {
	idx := -1
	if text != "" {
		idx = p.catalog.IndexOfShortcut(url.ParseInput(text).Token)
	}
	if idx == p.index {
		return
	}
	p.index = idx
	if idx >= 0 {
		p.swaps++
	}
}

// Clear removes the icon.
func (p *FaviconPreview) Clear() { p.index = -1 }

// Engine returns the previewed engine.
func (p *FaviconPreview) Engine() (entity.SearchEngine, bool) {
	if p.index < 0 {
		return entity.SearchEngine{}, false
	}
	return p.catalog.All()[p.index], true
}

// Swaps counts how many times an icon was attached.
func (p *FaviconPreview) Swaps() int { return p.swaps }

// SetCatalog replaces the catalog, e.g. after a language change.
func (p *FaviconPreview) SetCatalog(catalog *entity.EngineCatalog) {
	p.catalog = catalog
	p.index = -1
}
