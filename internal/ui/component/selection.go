package component

// Selection is a single cyclic highlight over a list of rows.
// Index -1 means nothing is highlighted.
type Selection struct {
	index int
	count int
}

// NewSelection returns a selection over count rows highlighting index.
func NewSelection(count, index int) Selection {
	s := Selection{index: -1}
	s.Resize(count)
	s.Set(index)
	return s
}

// Index returns the highlighted row, or -1.
func (s Selection) Index() int { return s.index }

// Len returns the number of rows.
func (s Selection) Len() int { return s.count }

// Set highlights index. Out-of-range values clear the highlight.
func (s *Selection) Set(index int) {
	if index < 0 || index >= s.count {
		s.index = -1
		return
	}
	s.index = index
}

// Clear removes the highlight.
func (s *Selection) Clear() { s.index = -1 }

// Resize changes the row count, clearing a highlight that no longer fits.
func (s *Selection) Resize(count int) {
	if count < 0 {
		count = 0
	}
	s.count = count
	if s.index >= count {
		s.index = -1
	}
}

// Move steps the highlight one row down (or up), wrapping at both ends.
// With nothing highlighted, down lands on the first row and up on the last.
// It returns the new index and whether the step wrapped around.
func (s *Selection) Move(down bool) (int, bool) {
	if s.count == 0 {
		s.index = -1
		return -1, false
	}

	if s.index < 0 {
		if down {
			s.index = 0
		} else {
			s.index = s.count - 1
		}
		return s.index, false
	}

	wrapped := false
	if down {
		s.index++
		if s.index >= s.count {
			s.index = 0
			wrapped = true
		}
	} else {
		s.index--
		if s.index < 0 {
			s.index = s.count - 1
			wrapped = true
		}
	}
	return s.index, wrapped
}
