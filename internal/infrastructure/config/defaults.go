package config

const (
	defaultViewportRows      = 8
	defaultTouchFocusDelayMs = 350
	defaultRequestTimeoutMs  = 2000
	defaultLogMaxSizeMB      = 10
	defaultLogMaxBackups     = 3
	defaultFaviconTimeoutSec = 5
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
		Page: PageConfig{
			Hostname: "localhost",
		},
		Host: HostConfig{
			Tabs: []TabSeed{
				{Title: "New Tab", URL: "about:blank", Active: true},
			},
		},
		UI: UIConfig{
			ViewportRows:      defaultViewportRows,
			TouchFocusDelayMs: defaultTouchFocusDelayMs,
			RequestTimeoutMs:  defaultRequestTimeoutMs,
			TapKey:            "f2",
		},
		Favicon: FaviconConfig{
			Enabled:        true,
			TimeoutSeconds: defaultFaviconTimeoutSec,
		},
	}
}
