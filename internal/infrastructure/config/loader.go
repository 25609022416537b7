package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a configuration manager rooted at the XDG config dir.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerWithDir(configDir)
}

// NewManagerWithDir creates a configuration manager that reads
// config.toml from configDir.
func NewManagerWithDir(configDir string) (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// FSEARCH_DATABASE_PATH, FSEARCH_UI_VIEWPORT_ROWS, ...
	v.SetEnvPrefix("FSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "FSEARCH_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind FSEARCH_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "FSEARCH_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind FSEARCH_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		configDir: configDir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load reads defaults, the config file and the environment, creating a
// default config file on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile = filepath.Join(m.configDir, "config.toml")
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// decode unmarshals, fills derived paths, normalizes and validates.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensurePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensurePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	return nil
}

// normalizeConfig lowercases enum-like values and clamps out-of-range
// numbers to their defaults.
func normalizeConfig(config *Config) {
	defaults := DefaultConfig()

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.UI.TapKey = strings.ToLower(strings.TrimSpace(config.UI.TapKey))
	config.Page.Hostname = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(config.Page.Hostname)), "www.")

	if config.Logging.MaxSizeMB <= 0 {
		config.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if config.Logging.MaxBackups < 0 {
		config.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
	if config.UI.ViewportRows <= 0 {
		config.UI.ViewportRows = defaults.UI.ViewportRows
	}
	if config.UI.TouchFocusDelayMs < 0 {
		config.UI.TouchFocusDelayMs = defaults.UI.TouchFocusDelayMs
	}
	if config.UI.RequestTimeoutMs <= 0 {
		config.UI.RequestTimeoutMs = defaults.UI.RequestTimeoutMs
	}
	if config.Favicon.TimeoutSeconds <= 0 {
		config.Favicon.TimeoutSeconds = defaults.Favicon.TimeoutSeconds
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Host.Tabs = append([]TabSeed(nil), m.config.Host.Tabs...)
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, "config.toml")
}

// createDefaultConfig writes the defaults as config.toml next to a JSON schema.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return err
	}

	configFile := filepath.Join(m.configDir, "config.toml")
	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if _, err := GenerateSchemaFile(m.configDir); err != nil {
		return err
	}
	return nil
}

// setDefaults registers every default so viper knows all keys, which also
// makes AutomaticEnv work for keys absent from the file.
func (m *Manager) setDefaults() {
	d := DefaultConfig()

	m.viper.SetDefault("database.path", d.Database.Path)

	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
	m.viper.SetDefault("logging.log_dir", d.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", d.Logging.MaxBackups)

	m.viper.SetDefault("page.hostname", d.Page.Hostname)

	m.viper.SetDefault("host.tabs", d.Host.Tabs)
	m.viper.SetDefault("host.system_browser", d.Host.SystemBrowser)

	m.viper.SetDefault("ui.viewport_rows", d.UI.ViewportRows)
	m.viper.SetDefault("ui.touch_focus_delay_ms", d.UI.TouchFocusDelayMs)
	m.viper.SetDefault("ui.request_timeout_ms", d.UI.RequestTimeoutMs)
	m.viper.SetDefault("ui.tap_key", d.UI.TapKey)

	m.viper.SetDefault("favicon.enabled", d.Favicon.Enabled)
	m.viper.SetDefault("favicon.timeout_seconds", d.Favicon.TimeoutSeconds)
}
