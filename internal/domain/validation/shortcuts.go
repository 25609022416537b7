// Package validation checks user supplied values before they are stored.
package validation

import (
	"net"
	"regexp"
	"strings"

	"github.com/bnema/fsearch/internal/domain/entity"
)

var (
	shortcutTokenRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,19}$`)
	hostLabelRE     = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)
)

// ValidateShortcutToken checks the part typed before the colon.
func ValidateShortcutToken(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{"shortcut token cannot be empty"}
	}
	if !shortcutTokenRE.MatchString(value) {
		return []string{"shortcut token must start with a letter and be 1-20 alphanumeric characters"}
	}
	return nil
}

// ValidateShortcutDestination checks the host a shortcut opens. A port is
// allowed, a scheme is not.
func ValidateShortcutDestination(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{"shortcut destination cannot be empty"}
	}
	if strings.Contains(value, "://") {
		return []string{"shortcut destination must be a bare host without scheme"}
	}

	host := value
	if h, _, err := net.SplitHostPort(value); err == nil {
		host = h
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	for _, label := range strings.Split(host, ".") {
		if !hostLabelRE.MatchString(label) {
			return []string{"shortcut destination must be a valid host name"}
		}
	}
	return nil
}

// ValidateCustomShortcut checks a stored "token:destination[/path]" entry.
func ValidateCustomShortcut(raw string) []string {
	sc, err := entity.ParseCustomShortcut(raw)
	if err != nil {
		return []string{err.Error()}
	}
	// The parser splits the host at the first slash, so a scheme would
	// survive as a bare "https:" destination.
	if _, rest, _ := strings.Cut(strings.TrimSpace(raw), ":"); strings.Contains(rest, "://") {
		return []string{"shortcut destination must be a bare host without scheme"}
	}
	errs := ValidateShortcutToken(sc.Token)
	errs = append(errs, ValidateShortcutDestination(sc.Destination)...)
	if strings.ContainsAny(sc.Path, " \t\r\n") {
		errs = append(errs, "shortcut path must not contain whitespace")
	}
	return errs
}
