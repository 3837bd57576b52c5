package terminal

import "strings"

// PlainTextRow returns the plain text content of a single row (no ANSI),
// with trailing spaces trimmed. Useful for pattern matching (activity
// classification) and tests.
func (s *Screen) PlainTextRow(row int) string {
	r := s.row(row)
	if r == nil {
		return ""
	}
	var b strings.Builder
	for c := range r.Cells {
		text := r.cellText(c)
		if text == "" && r.Cells[c].MultiCellID != 1 {
			b.WriteByte(' ')
		} else {
			b.WriteString(text)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// CellText returns the text backing the cell at (row, col), for a
// renderer building its desired-screen buffer (spec.md §4.14).
func (s *Screen) CellText(row, col int) string {
	r := s.row(row)
	if r == nil {
		return ""
	}
	return r.cellText(col)
}

// CellRendition returns the resolved Rendition of the cell at (row, col).
func (s *Screen) CellRendition(row, col int) Rendition {
	r := s.row(row)
	if r == nil || col < 0 || col >= len(r.Cells) {
		return DefaultRendition
	}
	return lookupRendition(s.Active.GraphicsIDs, r.Cells[col].GraphicsID)
}

// CellHyperlink returns the resolved Hyperlink of the cell at (row, col),
// if any.
func (s *Screen) CellHyperlink(row, col int) (Hyperlink, bool) {
	r := s.row(row)
	if r == nil || col < 0 || col >= len(r.Cells) {
		return Hyperlink{}, false
	}
	return lookupHyperlink(s.Active.HyperlinkIDs, r.Cells[col].HyperlinkID)
}

// CellDirty reports and clears the dirty bit of the cell at (row, col),
// for draw() to decide which cells need a put_cell call (spec.md §4.10).
func (s *Screen) CellDirty(row, col int) bool {
	r := s.row(row)
	if r == nil || col < 0 || col >= len(r.Cells) {
		return false
	}
	dirty := r.Cells[col].Dirty
	r.Cells[col].Dirty = false
	return dirty
}

// PlainText returns the full visible screen content as plain text.
func (s *Screen) PlainText() string {
	var b strings.Builder
	for r := 0; r < s.Height; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s.PlainTextRow(r))
	}
	return b.String()
}
