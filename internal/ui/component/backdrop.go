package component

// Backdrop is the page scrim behind the overlay and the tab panel.
type Backdrop struct {
	Enabled  bool
	Animated bool
	shown    bool
}

// Sync shows the scrim while either surface is open.
func (b *Backdrop) Sync(searchOpen, tabPanelOpen bool) {
	b.shown = b.Enabled && (searchOpen || tabPanelOpen)
}

// Visible reports whether the scrim is drawn.
func (b Backdrop) Visible() bool { return b.shown }
