package component

import (
	"strings"

	"github.com/bnema/fsearch/internal/domain/autocomplete"
	"github.com/bnema/fsearch/internal/domain/entity"
)

// SuggestionRow is one dropdown row. A removed row keeps its slot and shows a
// placeholder until the dropdown is rebuilt.
type SuggestionRow struct {
	ID      int
	Text    string
	Removed bool
}

// SuggestionList is the autocomplete dropdown under the search input.
type SuggestionList struct {
	rows    []SuggestionRow
	sel     Selection
	lang    string
	onClear func()
}

// NewSuggestionList creates an empty, hidden dropdown. onClear runs every
// time the dropdown is cleared. A rebuild replaces the rows without it, so
// ids captured by the caller's matches stay valid.
func NewSuggestionList(lang string, onClear func()) *SuggestionList {
	return &SuggestionList{lang: lang, onClear: onClear, sel: NewSelection(0, -1)}
}

// SetLang switches the placeholder language.
func (l *SuggestionList) SetLang(lang string) { l.lang = lang }

// Build replaces the rows with at most autocomplete.MaxVisible matches and
// reports whether the dropdown is visible. Nothing is highlighted.
func (l *SuggestionList) Build(matches []entity.MatchCandidate) bool {
	l.reset()
	if len(matches) > autocomplete.MaxVisible {
		matches = matches[:autocomplete.MaxVisible]
	}
	for _, m := range matches {
		l.rows = append(l.rows, SuggestionRow{ID: m.ID, Text: m.Text})
	}
	l.sel.Resize(len(l.rows))
	return l.Visible()
}

// Clear empties and hides the dropdown.
func (l *SuggestionList) Clear() {
	l.reset()
	if l.onClear != nil {
		l.onClear()
	}
}

func (l *SuggestionList) reset() {
	l.rows = nil
	l.sel = NewSelection(0, -1)
}

// Visible reports whether the dropdown has rows.
func (l *SuggestionList) Visible() bool { return len(l.rows) > 0 }

// Rows returns a copy of the rows in display order.
func (l *SuggestionList) Rows() []SuggestionRow {
	out := make([]SuggestionRow, len(l.rows))
	copy(out, l.rows)
	return out
}

// Highlighted returns the highlighted row index, or -1.
func (l *SuggestionList) Highlighted() int { return l.sel.Index() }

// Move steps the highlight and returns the newly highlighted row.
func (l *SuggestionList) Move(down bool) (SuggestionRow, bool) {
	i, _ := l.sel.Move(down)
	if i < 0 {
		return SuggestionRow{}, false
	}
	return l.rows[i], true
}

// Row returns the row at index.
func (l *SuggestionList) Row(index int) (SuggestionRow, bool) {
	if index < 0 || index >= len(l.rows) {
		return SuggestionRow{}, false
	}
	return l.rows[index], true
}

// MarkRemoved turns the row at index into a placeholder and returns the row
// as it was. Rows already removed are ignored.
func (l *SuggestionList) MarkRemoved(index int) (SuggestionRow, bool) {
	row, ok := l.Row(index)
	if !ok || row.Removed {
		return SuggestionRow{}, false
	}
	l.rows[index] = SuggestionRow{ID: row.ID, Text: RemovedPlaceholder(l.lang), Removed: true}
	return row, true
}

// RemoveCaption is the caption of the per-row remove control.
func (l *SuggestionList) RemoveCaption() string {
	return RemoveLabel(l.lang)
}

// ReplaceQuery swaps the query part of input for text, keeping a typed
// "token:" prefix.
func ReplaceQuery(input, text string) string {
	if token, _, ok := strings.Cut(input, ":"); ok && token != "" {
		return token + ":" + text
	}
	return text
}
