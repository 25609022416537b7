package config

// Config is the process-level configuration. User preferences shared with
// the page (engine, keys, shortcuts) live in storage, not here.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	Page     PageConfig     `mapstructure:"page" toml:"page" json:"page"`
	Host     HostConfig     `mapstructure:"host" toml:"host" json:"host"`
	UI       UIConfig       `mapstructure:"ui" toml:"ui" json:"ui"`
	Favicon  FaviconConfig  `mapstructure:"favicon" toml:"favicon" json:"favicon"`
}

// DatabaseConfig locates the storage database.
type DatabaseConfig struct {
	// Path to the SQLite file. Empty means $XDG_DATA_HOME/fsearch/fsearch.sqlite.
	Path string `mapstructure:"path" toml:"path" json:"path" jsonschema:"description=SQLite storage file"`
}

// LoggingConfig controls log level, format and file output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,enum=text"`

	// File output. The terminal UI always logs to a file.
	LogDir     string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups"`
}

// PageConfig describes the page the overlay is injected into.
type PageConfig struct {
	// Hostname is checked against the exclude_urls preference.
	Hostname string `mapstructure:"hostname" toml:"hostname" json:"hostname"`
}

// HostConfig configures the background tab host.
type HostConfig struct {
	// Tabs seeds the host's tab list. The first entry marked active wins.
	Tabs []TabSeed `mapstructure:"tabs" toml:"tabs" json:"tabs"`
	// SystemBrowser opens resolved URLs in the desktop browser as well.
	SystemBrowser bool `mapstructure:"system_browser" toml:"system_browser" json:"system_browser"`
}

// TabSeed is one initial tab of the host.
type TabSeed struct {
	Title      string `mapstructure:"title" toml:"title" json:"title"`
	URL        string `mapstructure:"url" toml:"url" json:"url"`
	FaviconURL string `mapstructure:"favicon_url" toml:"favicon_url" json:"favicon_url,omitempty"`
	Active     bool   `mapstructure:"active" toml:"active" json:"active,omitempty"`
}

// UIConfig tunes the terminal front-end.
type UIConfig struct {
	// ViewportRows is how many tab rows the panel shows before scrolling.
	ViewportRows int `mapstructure:"viewport_rows" toml:"viewport_rows" json:"viewport_rows" jsonschema:"minimum=1"`
	// TouchFocusDelayMs defers input focus after a tap-opened overlay.
	TouchFocusDelayMs int `mapstructure:"touch_focus_delay_ms" toml:"touch_focus_delay_ms" json:"touch_focus_delay_ms" jsonschema:"minimum=0"`
	// RequestTimeoutMs bounds each bridge round trip.
	RequestTimeoutMs int `mapstructure:"request_timeout_ms" toml:"request_timeout_ms" json:"request_timeout_ms" jsonschema:"minimum=1"`
	// TapKey is the terminal key reported as a touch tap. Empty disables it.
	TapKey string `mapstructure:"tap_key" toml:"tap_key" json:"tap_key"`
}

// FaviconConfig controls favicon fetching for tab rows.
type FaviconConfig struct {
	Enabled        bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	TimeoutSeconds int  `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" jsonschema:"minimum=1"`
}
