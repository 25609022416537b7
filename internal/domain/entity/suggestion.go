package entity

import (
	"encoding/json"
	"strings"
)

// SuggestionsStorageKey is the storage key holding the persisted suggestion list.
const SuggestionsStorageKey = "suggests"

// Suggestion is a remembered free-text query.
// ID is positional and only dense after a reindex.
type Suggestion struct {
	ID       int    `json:"id"`
	Text     string `json:"request"`
	UseCount int    `json:"typeCount"`
}

// MatchCandidate is the per-keystroke projection used to render the dropdown.
type MatchCandidate struct {
	ID       int
	UseCount int
	Text     string
}

// NormalizeQuery strips a leading "token:" prefix and lowercases the rest.
func NormalizeQuery(text string) string {
	if _, rest, ok := strings.Cut(text, ":"); ok {
		text = rest
	}
	return strings.ToLower(text)
}

// DecodeSuggestions parses a stored suggestion list. Records without text are dropped.
func DecodeSuggestions(raw []byte) ([]Suggestion, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []Suggestion
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	out := list[:0]
	for _, s := range list {
		if s.Text == "" {
			continue
		}
		if s.UseCount < 1 {
			s.UseCount = 1
		}
		out = append(out, s)
	}
	return out, nil
}
