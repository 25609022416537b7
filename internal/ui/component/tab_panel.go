package component

import (
	"github.com/mattn/go-runewidth"

	"github.com/bnema/fsearch/internal/domain/entity"
)

// DefaultViewportRows is how many tab rows fit when nothing else is known.
const DefaultViewportRows = 8

// IconState tracks a tab row's favicon.
type IconState int

const (
	IconLoading IconState = iota
	IconLoaded
	IconPlaceholder
)

// TabRow is one row of the tab panel. Number is the 1-based position at
// build time and is not renumbered when rows are removed.
type TabRow struct {
	Tab    entity.Tab
	Number int
	Icon   IconState
	Swatch string
}

// TabPanel is the switcher listing every open tab.
type TabPanel struct {
	open     bool
	rows     []TabRow
	sel      Selection
	hover    int
	viewport int
	offset   int
}

// NewTabPanel creates a closed panel showing viewportRows rows at a time.
func NewTabPanel(viewportRows int) *TabPanel {
	if viewportRows <= 0 {
		viewportRows = DefaultViewportRows
	}
	return &TabPanel{viewport: viewportRows, hover: -1, sel: NewSelection(0, -1)}
}

// Build opens the panel with one row per tab, highlights the active tab and
// scrolls it into view. Rows start with their icon loading.
func (p *TabPanel) Build(tabs []entity.Tab) {
	p.rows = make([]TabRow, 0, len(tabs))
	active := -1
	for i, t := range tabs {
		p.rows = append(p.rows, TabRow{Tab: t, Number: i + 1, Icon: IconLoading})
		if t.Active && active < 0 {
			active = i
		}
	}
	p.sel = NewSelection(len(p.rows), active)
	p.hover = -1
	p.offset = 0
	p.open = true
	p.scrollIntoView()
}

// Close hides the panel and drops its rows.
func (p *TabPanel) Close() {
	p.open = false
	p.rows = nil
	p.sel = NewSelection(0, -1)
	p.hover = -1
	p.offset = 0
}

// IsOpen reports whether the panel is shown.
func (p *TabPanel) IsOpen() bool { return p.open }

// Rows returns a copy of every row.
func (p *TabPanel) Rows() []TabRow {
	out := make([]TabRow, len(p.rows))
	copy(out, p.rows)
	return out
}

// Len returns the number of rows.
func (p *TabPanel) Len() int { return len(p.rows) }

// Highlighted returns the highlighted row index, or -1.
func (p *TabPanel) Highlighted() int { return p.sel.Index() }

// Offset returns the first visible row.
func (p *TabPanel) Offset() int { return p.offset }

// ViewportRows returns the viewport height in rows.
func (p *TabPanel) ViewportRows() int { return p.viewport }

// SetViewportRows resizes the viewport, keeping the highlight visible.
func (p *TabPanel) SetViewportRows(n int) {
	if n <= 0 {
		n = DefaultViewportRows
	}
	p.viewport = n
	p.scrollIntoView()
}

// Visible returns the rows inside the viewport and the index of the first.
func (p *TabPanel) Visible() ([]TabRow, int) {
	end := min(len(p.rows), p.offset+p.viewport)
	return p.rows[p.offset:end], p.offset
}

// Move steps the highlight with wrap-around. The viewport scrolls only when
// the highlighted row leaves it; wrapping snaps to the opposite edge.
func (p *TabPanel) Move(down bool) int {
	i, wrapped := p.sel.Move(down)
	if i < 0 {
		return i
	}
	if wrapped {
		if down {
			p.offset = 0
		} else {
			p.offset = p.maxOffset()
		}
		return i
	}
	p.scrollIntoView()
	return i
}

// SetHover marks the row under the pointer. -1 clears it.
func (p *TabPanel) SetHover(index int) {
	if index < 0 || index >= len(p.rows) {
		p.hover = -1
		return
	}
	p.hover = index
}

// Hover returns the pointer-focused row, or -1.
func (p *TabPanel) Hover() int { return p.hover }

// Target returns the tab Enter switches to: the pointer-focused row when
// there is one, the highlighted row otherwise.
func (p *TabPanel) Target() (entity.Tab, bool) {
	if p.hover >= 0 {
		return p.rows[p.hover].Tab, true
	}
	return p.TabAt(p.sel.Index())
}

// TabAt returns the tab shown at row index.
func (p *TabPanel) TabAt(index int) (entity.Tab, bool) {
	if index < 0 || index >= len(p.rows) {
		return entity.Tab{}, false
	}
	return p.rows[index].Tab, true
}

// IndexOf returns the row showing tab id, or -1.
func (p *TabPanel) IndexOf(id entity.TabID) int {
	for i, r := range p.rows {
		if r.Tab.ID == id {
			return i
		}
	}
	return -1
}

// RemoveTab deletes the row for id. When it was highlighted, the highlight
// moves to the following row, wrapping to the first.
func (p *TabPanel) RemoveTab(id entity.TabID) bool {
	idx := p.IndexOf(id)
	if idx < 0 {
		return false
	}

	cur := p.sel.Index()
	p.rows = append(p.rows[:idx], p.rows[idx+1:]...)

	next := cur
	switch {
	case len(p.rows) == 0:
		next = -1
	case cur == idx:
		next = idx % len(p.rows)
	case cur > idx:
		next = cur - 1
	}
	p.sel = NewSelection(len(p.rows), next)

	switch {
	case p.hover == idx:
		p.hover = -1
	case p.hover > idx:
		p.hover--
	}

	p.offset = min(p.offset, p.maxOffset())
	p.scrollIntoView()
	return true
}

// Restore puts a removed row back at index, keeping the current highlight
// on the same tab. An empty panel highlights the restored row.
func (p *TabPanel) Restore(row TabRow, index int) {
	index = max(0, min(index, len(p.rows)))
	cur := p.sel.Index()

	p.rows = append(p.rows, TabRow{})
	copy(p.rows[index+1:], p.rows[index:])
	p.rows[index] = row

	switch {
	case cur < 0:
		cur = index
	case cur >= index:
		cur++
	}
	if p.hover >= index {
		p.hover++
	}
	p.sel = NewSelection(len(p.rows), cur)
	p.scrollIntoView()
}

// SetIcon records the favicon outcome for tab id.
func (p *TabPanel) SetIcon(id entity.TabID, state IconState, swatch string) bool {
	idx := p.IndexOf(id)
	if idx < 0 {
		return false
	}
	p.rows[idx].Icon = state
	p.rows[idx].Swatch = swatch
	return true
}

func (p *TabPanel) maxOffset() int {
	return max(0, len(p.rows)-p.viewport)
}

func (p *TabPanel) scrollIntoView() {
	i := p.sel.Index()
	if i < 0 {
		return
	}
	if i < p.offset {
		p.offset = i
	} else if i >= p.offset+p.viewport {
		p.offset = i - p.viewport + 1
	}
}

// TruncateTitle fits title into width terminal cells.
func TruncateTitle(title string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(title, width, "…")
}
