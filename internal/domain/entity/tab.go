package entity

// TabID identifies a browser tab owned by the tab host.
type TabID int

// Tab describes an open browser tab. The host owns tabs; the
// search controller only ever reads them.
type Tab struct {
	ID         TabID  `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
	Active     bool   `json:"active"`
	FaviconURL string `json:"favIconUrl,omitempty"`
}

// DisplayTitle returns the title, falling back to URL.
func (t Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" {
		return t.URL
	}
	return "New Tab"
}
