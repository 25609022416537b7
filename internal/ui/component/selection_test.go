package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionMove(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		start       int
		down        bool
		want        int
		wantWrapped bool
	}{
		{"down from none", 3, -1, true, 0, false},
		{"up from none", 3, -1, false, 2, false},
		{"down", 3, 0, true, 1, false},
		{"down wraps", 3, 2, true, 0, true},
		{"up wraps", 3, 0, false, 2, true},
		{"empty", 0, -1, true, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(tt.count, tt.start)
			got, wrapped := s.Move(tt.down)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantWrapped, wrapped)
			assert.Equal(t, tt.want, s.Index())
		})
	}
}

func TestSelectionSingleHighlight(t *testing.T) {
	s := NewSelection(4, 1)
	for i := 0; i < 9; i++ {
		s.Move(true)
	}
	// 1 + 9 steps over 4 rows.
	assert.Equal(t, 2, s.Index())

	s.Resize(2)
	assert.Equal(t, -1, s.Index())

	s.Set(5)
	assert.Equal(t, -1, s.Index())
	s.Set(1)
	assert.Equal(t, 1, s.Index())
	s.Clear()
	assert.Equal(t, -1, s.Index())
}
