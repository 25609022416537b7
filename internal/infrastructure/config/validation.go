package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	validLogFormats = []string{"console", "json", "text"}
)

// validateConfig collects every problem instead of stopping at the first.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateHost(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !lo.Contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of %s (got %q)", strings.Join(validLogLevels, ", "), config.Logging.Level))
	}
	if !lo.Contains(validLogFormats, config.Logging.Format) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of %s (got %q)", strings.Join(validLogFormats, ", "), config.Logging.Format))
	}
	return validationErrors
}

func validateHost(config *Config) []string {
	var validationErrors []string
	for i, tab := range config.Host.Tabs {
		if strings.TrimSpace(tab.URL) == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("host.tabs[%d].url must not be empty", i))
		}
	}
	return validationErrors
}
