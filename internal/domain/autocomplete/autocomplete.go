// Package autocomplete ranks remembered queries against what the user types.
package autocomplete

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/bnema/fsearch/internal/domain/entity"
)

// MaxVisible caps the number of rendered dropdown rows.
const MaxVisible = 10

// FindMatches returns one candidate per suggestion sharing a word prefix with
// text, ordered by descending use count. Ties keep storage order.
// Blank (after normalization) text yields nil.
func FindMatches(suggestions []entity.Suggestion, text string) []entity.MatchCandidate {
	queryWords := strings.Fields(entity.NormalizeQuery(text))
	if len(queryWords) == 0 {
		return nil
	}

	var matches []entity.MatchCandidate
	for _, s := range suggestions {
		if matchesAnyWord(queryWords, strings.Fields(s.Text)) {
			matches = append(matches, entity.MatchCandidate{
				ID:       s.ID,
				UseCount: s.UseCount,
				Text:     s.Text,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].UseCount > matches[j].UseCount
	})
	return matches
}

func matchesAnyWord(queryWords, suggestionWords []string) bool {
	for _, q := range queryWords {
		for _, w := range suggestionWords {
			if strings.HasPrefix(w, q) {
				return true
			}
		}
	}
	return false
}

// Record bumps the use count of an equal suggestion or appends a new one with
// an id one past the highest in use, so gaps left by Remove are never
// reused before Reindex. It returns the updated list and false when text
// normalizes to nothing.
func Record(suggestions []entity.Suggestion, text string) ([]entity.Suggestion, bool) {
	normalized := strings.TrimSpace(entity.NormalizeQuery(text))
	if normalized == "" {
		return suggestions, false
	}

	for i := range suggestions {
		if suggestions[i].Text == normalized {
			suggestions[i].UseCount++
			return suggestions, true
		}
	}

	next := 0
	if len(suggestions) > 0 {
		next = lo.MaxBy(suggestions, func(a, b entity.Suggestion) bool { return a.ID > b.ID }).ID + 1
	}
	return append(suggestions, entity.Suggestion{
		ID:       next,
		Text:     normalized,
		UseCount: 1,
	}), true
}

// Remove deletes the suggestion carrying id. Ids are not renumbered.
func Remove(suggestions []entity.Suggestion, id int) ([]entity.Suggestion, bool) {
	for i := range suggestions {
		if suggestions[i].ID == id {
			return append(suggestions[:i], suggestions[i+1:]...), true
		}
	}
	return suggestions, false
}

// Reindex reassigns dense ids 0..n-1 in place.
func Reindex(suggestions []entity.Suggestion) {
	for i := range suggestions {
		suggestions[i].ID = i
	}
}
