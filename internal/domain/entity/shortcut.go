package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidShortcut is returned for custom shortcuts not of the form token:destination.
var ErrInvalidShortcut = errors.New("invalid shortcut")

// CustomShortcut is a user defined "token:destination" mapping.
// Destination is the host part, Path whatever follows the first slash.
//
//	"f:facebook.com"          → {Token: "f", Destination: "facebook.com"}
//	"gh:github.com/bnema/"    → {Token: "gh", Destination: "github.com", Path: "/bnema/"}
type CustomShortcut struct {
	Token       string
	Destination string
	Path        string
}

// ParseCustomShortcut parses one stored shortcut string.
func ParseCustomShortcut(raw string) (CustomShortcut, error) {
	token, rest, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || token == "" || rest == "" {
		return CustomShortcut{}, fmt.Errorf("%w: %q", ErrInvalidShortcut, raw)
	}

	dest, path := rest, ""
	if i := strings.Index(rest, "/"); i >= 0 {
		dest, path = rest[:i], rest[i:]
	}
	if dest == "" {
		return CustomShortcut{}, fmt.Errorf("%w: %q has no destination", ErrInvalidShortcut, raw)
	}

	return CustomShortcut{Token: token, Destination: dest, Path: path}, nil
}

// String renders the shortcut in its stored form.
func (s CustomShortcut) String() string {
	return s.Token + ":" + s.Destination + s.Path
}

// Expand builds the target for an optional trailing query.
func (s CustomShortcut) Expand(query string) string {
	return s.Destination + s.Path + query
}

// ParseCustomShortcuts parses all valid entries, skipping invalid ones.
// Invalid entries are returned separately so callers can report them.
func ParseCustomShortcuts(raw []string) ([]CustomShortcut, []error) {
	var (
		out  []CustomShortcut
		errs []error
	)
	for _, r := range raw {
		s, err := ParseCustomShortcut(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, s)
	}
	return out, errs
}
