package terminal

import "strings"

// ScrollDown rotates the rows within the scroll region leftward — i.e.
// visually scrolls text up — and, if scroll-back is enabled and the
// region covers the whole screen, migrates the top row to scroll-back
// via C6 (spec.md §4.7). The name mirrors the spec's own terminology for
// the operation that makes room for a new bottom line.
func (s *Screen) ScrollDown() {
	s.scrollRegionBy(1)
}

// ScrollUpRegion rotates the rows within the scroll region the other way
// (the SD control sequence): a blank line appears at the top of the
// region and the bottom row is discarded.
func (s *Screen) ScrollUpRegion(n int) {
	start, end := s.ScrollRegion.Start, s.ScrollRegion.EndExclusive
	for k := 0; k < n; k++ {
		s.releaseRowIds(end - 1)
		copy(s.Active.Rows[start+1:end], s.Active.Rows[start:end-1])
		s.Active.Rows[start] = NewRow(s.Width)
	}
	s.WholeScreenDirty = true
}

func (s *Screen) scrollRegionBy(n int) {
	start, end := s.ScrollRegion.Start, s.ScrollRegion.EndExclusive
	wholeScreen := start == 0 && end == s.Height
	for k := 0; k < n; k++ {
		top := s.Active.Rows[start]
		if wholeScreen && s.ScrollbackEnabled {
			top.stripTrailingEmptyCells()
			s.Scrollback.AppendRow(top)
		} else {
			s.releaseRowIds(start)
		}
		copy(s.Active.Rows[start:end-1], s.Active.Rows[start+1:end])
		s.Active.Rows[end-1] = NewRow(s.Width)
	}
	s.WholeScreenDirty = true
}

// releaseRowIds drops every id referenced by row i's cells, used when a
// row is discarded outright rather than migrated to scroll-back.
func (s *Screen) releaseRowIds(i int) {
	row := &s.Active.Rows[i]
	for c := range row.Cells {
		s.dropCellIds(&row.Cells[c])
	}
}

// InsertBlankLines inserts n blank lines at the cursor row, restricted to
// [cursor.row, region end) (spec.md §4.8 IL).
func (s *Screen) InsertBlankLines(n int) {
	start, end := s.Cursor.Row, s.ScrollRegion.EndExclusive
	for k := 0; k < n && end-start > 0; k++ {
		s.releaseRowIds(end - 1)
		copy(s.Active.Rows[start+1:end], s.Active.Rows[start:end-1])
		s.Active.Rows[start] = NewRow(s.Width)
	}
	s.WholeScreenDirty = true
}

// DeleteLines deletes n lines at the cursor row, restricted to
// [cursor.row, region end) (spec.md §4.8 DL).
func (s *Screen) DeleteLines(n int) {
	start, end := s.Cursor.Row, s.ScrollRegion.EndExclusive
	for k := 0; k < n && end-start > 0; k++ {
		s.releaseRowIds(start)
		copy(s.Active.Rows[start:end-1], s.Active.Rows[start+1:end])
		s.Active.Rows[end-1] = NewRow(s.Width)
	}
	s.WholeScreenDirty = true
}

// InsertBlankCells inserts n blank cells at the cursor, shifting the rest
// of the row right and dropping cells that fall off the end (ICH).
func (s *Screen) InsertBlankCells(n int) {
	row := s.row(s.Cursor.Row)
	if row == nil {
		return
	}
	col := s.Cursor.Col
	for k := 0; k < n; k++ {
		if col < len(row.Cells) {
			s.dropCellIds(&row.Cells[len(row.Cells)-1])
		}
		copy(row.Cells[col+1:], row.Cells[col:len(row.Cells)-1])
		row.Cells[col] = Cell{}
	}
	s.markRowDirty(row, col, len(row.Cells)-1)
}

// DeleteCells deletes n cells at the cursor, shifting the remainder of
// the row left and filling the vacated tail with blanks (DCH).
func (s *Screen) DeleteCells(n int) {
	row := s.row(s.Cursor.Row)
	if row == nil {
		return
	}
	col := s.Cursor.Col
	for k := 0; k < n; k++ {
		if col < len(row.Cells) {
			s.dropCellIds(&row.Cells[col])
		}
		copy(row.Cells[col:len(row.Cells)-1], row.Cells[col+1:])
		row.Cells[len(row.Cells)-1] = Cell{}
	}
	s.markRowDirty(row, col, len(row.Cells)-1)
}

// EraseCells overwrites n cells at the cursor with blanks (ECH), without
// shifting the rest of the row.
func (s *Screen) EraseCells(n int) {
	row := s.row(s.Cursor.Row)
	if row == nil {
		return
	}
	end := s.Cursor.Col + n
	if end > len(row.Cells) {
		end = len(row.Cells)
	}
	for c := s.Cursor.Col; c < end; c++ {
		s.dropCellIds(&row.Cells[c])
		row.Cells[c].Dirty = true
	}
}

func (s *Screen) markRowDirty(row *Row, from, to int) {
	for c := from; c <= to && c < len(row.Cells); c++ {
		row.Cells[c].Dirty = true
	}
}

// EraseDisplay implements ED: mode 0 erases after the cursor, 1 before,
// 2 the whole screen, 3 the whole screen plus scroll-back.
func (s *Screen) EraseDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseRowFrom(s.Cursor.Row, s.Cursor.Col)
		for r := s.Cursor.Row + 1; r < s.Height; r++ {
			s.eraseRowFrom(r, 0)
		}
	case 1:
		for r := 0; r < s.Cursor.Row; r++ {
			s.eraseRowFrom(r, 0)
		}
		s.eraseRowRange(s.Cursor.Row, 0, s.Cursor.Col+1)
	case 2:
		for r := 0; r < s.Height; r++ {
			s.eraseRowFrom(r, 0)
		}
	case 3:
		for r := 0; r < s.Height; r++ {
			s.eraseRowFrom(r, 0)
		}
		s.Scrollback = NewScrollback()
	}
	s.WholeScreenDirty = true
}

// EraseLine implements EL: mode 0 erases after the cursor on this line,
// 1 before, 2 the whole line.
func (s *Screen) EraseLine(mode int) {
	switch mode {
	case 0:
		s.eraseRowFrom(s.Cursor.Row, s.Cursor.Col)
	case 1:
		s.eraseRowRange(s.Cursor.Row, 0, s.Cursor.Col+1)
	case 2:
		s.eraseRowFrom(s.Cursor.Row, 0)
	}
}

func (s *Screen) eraseRowFrom(r, fromCol int) {
	s.eraseRowRange(r, fromCol, s.Width)
}

func (s *Screen) eraseRowRange(r, from, to int) {
	row := s.row(r)
	if row == nil {
		return
	}
	if to > len(row.Cells) {
		to = len(row.Cells)
	}
	for c := from; c < to; c++ {
		s.dropCellIds(&row.Cells[c])
		row.Cells[c].Dirty = true
	}
}

// SelectedText walks rows in the selected range, stripping trailing
// blanks per row and inserting '\n' between rows except across overflow
// rows (spec.md §4.7 selected_text).
func (s *Screen) SelectedText() string {
	if !s.Selection.Active {
		return ""
	}
	lo, hi := s.Selection.Start, s.Selection.End
	if hi.less(lo) {
		lo, hi = hi, lo
	}
	var b strings.Builder
	for abs := lo.AbsoluteRow; abs <= hi.AbsoluteRow; abs++ {
		row, ok := s.rowAtAbsolute(abs)
		if !ok {
			continue
		}
		startCol, endCol := 0, len(row.Cells)
		if abs == lo.AbsoluteRow {
			startCol = lo.Col
		}
		if abs == hi.AbsoluteRow {
			endCol = hi.Col + 1
			if endCol > len(row.Cells) {
				endCol = len(row.Cells)
			}
		}
		for c := startCol; c < endCol; c++ {
			b.WriteString(row.cellText(c))
		}
		if abs != hi.AbsoluteRow && !row.Overflow {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// rowAtAbsolute resolves an absolute row number to a Row, checking
// scroll-back first and then the active grid.
func (s *Screen) rowAtAbsolute(abs int) (Row, bool) {
	if row, ok := s.Scrollback.RowAt(abs); ok {
		return row, true
	}
	activeStart := s.Scrollback.AbsoluteRowStart() + s.Scrollback.Len()
	idx := abs - activeStart
	if idx < 0 || idx >= len(s.Active.Rows) {
		return Row{}, false
	}
	return s.Active.Rows[idx], true
}

// IDExhaustions sums id-map exhaustions across the active row group and
// everything retained in scroll-back, for a caller (Pane) to surface as a
// Warn-level log when it increases.
func (s *Screen) IDExhaustions() int {
	return s.Active.Exhaustions + s.Scrollback.Exhaustions()
}

// Resize changes the screen's dimensions, padding or truncating rows and
// revealing scroll-back on growth, clamping the cursor on shrink. It
// reports whether the cursor had to be clamped into the new bounds.
func (s *Screen) Resize(width, height int) bool {
	for i := range s.Active.Rows {
		if width > s.Width {
			padRow(&s.Active.Rows[i], width)
		} else if width < s.Width {
			truncateRow(&s.Active.Rows[i], width)
		}
	}
	s.Width = width

	if height > s.Height {
		grow := height - s.Height
		taken := s.Scrollback.TakeRows(s.Active, width, 0, grow)
		for k := taken; k < grow; k++ {
			s.Active.Rows = append(s.Active.Rows, NewRow(width))
		}
	} else if height < s.Height {
		shrink := s.Height - height
		for k := 0; k < shrink && len(s.Active.Rows) > height; k++ {
			top := s.Active.Rows[0]
			if s.ScrollbackEnabled {
				top.stripTrailingEmptyCells()
				s.Scrollback.AppendRow(top)
			}
			s.Active.Rows = s.Active.Rows[1:]
		}
	}
	s.Height = height
	s.ScrollRegion = ScrollRegion{Start: 0, EndExclusive: height}

	clamped := false
	if s.Cursor.Row >= height {
		s.Cursor.Row = height - 1
		clamped = true
	}
	if s.Cursor.Col >= width {
		s.Cursor.Col = width - 1
		clamped = true
	}
	s.recomputeTextOffset()
	s.WholeScreenDirty = true
	return clamped
}
