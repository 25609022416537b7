// Package url resolves search-box input into destination URLs.
package url

import (
	"net/url"
	"strings"
	"unicode"
)

// StripHTTPScheme removes a leading http:// or https:// (case-insensitive).
func StripHTTPScheme(input string) string {
	lower := strings.ToLower(input)
	switch {
	case strings.HasPrefix(lower, "https://"):
		return input[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		return input[len("http://"):]
	}
	return input
}

// HasScheme reports whether target already carries a URL scheme.
func HasScheme(target string) bool {
	i := strings.Index(target, "://")
	if i <= 0 {
		return false
	}
	for _, r := range target[:i] {
		if !unicode.IsLetter(r) && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

// WithHTTP prefixes target with http:// unless it has a scheme.
func WithHTTP(target string) string {
	if HasScheme(target) {
		return target
	}
	return "http://" + target
}

// IsDomainLiteral reports whether input looks like a bare domain: it ends
// in a dot followed by ASCII letters and contains no whitespace.
func IsDomainLiteral(input string) bool {
	if input == "" || strings.ContainsFunc(input, unicode.IsSpace) {
		return false
	}
	dot := strings.LastIndexByte(input, '.')
	if dot < 0 || dot == len(input)-1 {
		return false
	}
	for _, r := range input[dot+1:] {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ExtractHost returns the host of rawURL without a leading "www.".
func ExtractHost(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
