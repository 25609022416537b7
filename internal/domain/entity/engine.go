package entity

import "strings"

// SearchEngine is one entry of the built-in search engine catalog.
type SearchEngine struct {
	Key        string // catalog key, e.g. "google"
	Origin     string // base URL, with trailing slash
	SearchPath string // appended to Origin before the query
	Shortcut   string // token typed by the user, e.g. "g"
	Favicon    string // icon reference shown in the tray and input
}

// SearchURL returns the full search URL for query.
func (e SearchEngine) SearchURL(query string) string {
	return e.Origin + e.SearchPath + query
}

// DefaultEngineKey is used when the configured engine is unknown.
const DefaultEngineKey = "google"

// EngineCatalog is the ordered, read-only list of search engines.
type EngineCatalog struct {
	engines []SearchEngine
}

// NewEngineCatalog builds the catalog for the given UI language.
// The wikipedia origin is prefixed with the language subdomain.
func NewEngineCatalog(lang string) *EngineCatalog {
	engines := []SearchEngine{
		{Key: "google", Origin: "https://google.by/", SearchPath: "search?q=", Shortcut: "g", Favicon: "img/google.png"},
		{Key: "bing", Origin: "https://bing.com/", SearchPath: "search?q=", Shortcut: "b", Favicon: "img/bing.png"},
		{Key: "yandex", Origin: "https://yandex.by/", SearchPath: "search/?text=", Shortcut: "y", Favicon: "img/yandex.png"},
		{Key: "duckduck", Origin: "https://duckduckgo.com/", SearchPath: "?q=", Shortcut: "d", Favicon: "img/duckduck.png"},
		{Key: "baidu", Origin: "http://baidu.com/", SearchPath: "s?wd=", Shortcut: "du", Favicon: "img/baidu.png"},
		{Key: "youtube", Origin: "http://youtube.com/", SearchPath: "results?search_query=", Shortcut: "yt", Favicon: "img/youtube.png"},
		{Key: "wikipedia", Origin: "http://wikipedia.org/", SearchPath: "w/index.php?search=", Shortcut: "w", Favicon: "img/wikipedia.png"},
		{Key: "github", Origin: "http://github.com/", SearchPath: "search?utf8=✓&q=", Shortcut: "gt", Favicon: "img/github.png"},
	}

	if lang != "" {
		for i := range engines {
			if engines[i].Key == "wikipedia" {
				engines[i].Origin = strings.Replace(engines[i].Origin, "http://", "http://"+lang+".", 1)
			}
		}
	}

	return &EngineCatalog{engines: engines}
}

// All returns a copy of the catalog in display order.
func (c *EngineCatalog) All() []SearchEngine {
	out := make([]SearchEngine, len(c.engines))
	copy(out, c.engines)
	return out
}

// ByKey looks up an engine by catalog key.
func (c *EngineCatalog) ByKey(key string) (SearchEngine, bool) {
	for _, e := range c.engines {
		if e.Key == key {
			return e, true
		}
	}
	return SearchEngine{}, false
}

// ByShortcut looks up an engine by its shortcut token.
func (c *EngineCatalog) ByShortcut(token string) (SearchEngine, bool) {
	if token == "" {
		return SearchEngine{}, false
	}
	for _, e := range c.engines {
		if e.Shortcut == token {
			return e, true
		}
	}
	return SearchEngine{}, false
}

// IndexOfShortcut returns the catalog position of token, or -1.
func (c *EngineCatalog) IndexOfShortcut(token string) int {
	for i, e := range c.engines {
		if e.Shortcut == token {
			return i
		}
	}
	return -1
}

// Default returns the engine for key, falling back to google.
func (c *EngineCatalog) Default(key string) SearchEngine {
	if e, ok := c.ByKey(key); ok {
		return e
	}
	e, _ := c.ByKey(DefaultEngineKey)
	return e
}
