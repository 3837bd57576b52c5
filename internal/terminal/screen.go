package terminal

// ScrollRegion is an inclusive-exclusive row range participating in
// scrolling commands (DECSTBM), spec.md §3 glossary "Scroll region".
type ScrollRegion struct {
	Start        int
	EndExclusive int
}

// CursorState is the screen's cursor, cached with a text offset to
// accelerate single-cell writes (spec.md §4.7).
type CursorState struct {
	Row             int
	Col             int
	TextOffset      int
	OverflowPending bool
	Rendition       Rendition // style applied to a freshly-typed block cursor
	Shape           CursorShape
	Hidden          bool
}

// CursorShape mirrors DECSCUSR's six styles (spec.md §4.8).
type CursorShape int

const (
	CursorBlockBlink CursorShape = iota + 1
	CursorBlock
	CursorUnderlineBlink
	CursorUnderline
	CursorBarBlink
	CursorBar
)

// SelectionPoint is one endpoint of a selection, kept in absolute
// coordinates so the selection survives scrolling (spec.md §4.7).
type SelectionPoint struct {
	Row         int
	Col         int
	AbsoluteRow int
}

// Selection is the screen's current text selection, if any.
type Selection struct {
	Active bool
	Start  SelectionPoint
	End    SelectionPoint
}

// less is a lexicographic compare over (AbsoluteRow, Col), used by
// InSelection (spec.md §4.7: "in_selection(p) does a lexicographic
// compare").
func (p SelectionPoint) less(q SelectionPoint) bool {
	if p.AbsoluteRow != q.AbsoluteRow {
		return p.AbsoluteRow < q.AbsoluteRow
	}
	return p.Col < q.Col
}

// Screen is the visible grid: an active row-group plus scroll-back and
// the cursor/mode/selection state that sits on top of it (spec.md §3/§4.7).
// Screen has no internal mutex of its own; the owning Terminal/Pane
// guards it (spec.md §9 concurrency model).
type Screen struct {
	Width, Height int

	Active     *RowGroup
	Scrollback *Scrollback

	ScrollbackEnabled bool
	ScrollRegion      ScrollRegion
	OriginMode        bool
	AutoWrap          bool

	CurrentGraphicsID  uint16
	CurrentHyperlinkID uint16

	Cursor      CursorState
	SavedCursor CursorState

	Selection Selection

	VisualScrollOffset int
	WholeScreenDirty   bool

	WidthFunc WidthFunc
}

// NewScreen creates a blank width×height screen with scroll-back enabled
// and the scroll region spanning the whole screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		Width:             width,
		Height:            height,
		Active:            NewRowGroup(),
		Scrollback:        NewScrollback(),
		ScrollbackEnabled: true,
		ScrollRegion:      ScrollRegion{Start: 0, EndExclusive: height},
		AutoWrap:          true,
		WidthFunc:         DefaultWidthFunc,
		WholeScreenDirty:  true,
	}
	for i := 0; i < height; i++ {
		s.Active.appendRow(NewRow(width))
	}
	return s
}

// minRow/maxRowExclusive bound cursor motion per spec.md §4.7: "Cursor
// moves are clamped to [min_row, max_row] × [0, width-1], with
// min_row/max_row respecting origin mode and scroll region."
func (s *Screen) minRow() int {
	if s.OriginMode {
		return s.ScrollRegion.Start
	}
	return 0
}

func (s *Screen) maxRowExclusive() int {
	if s.OriginMode {
		return s.ScrollRegion.EndExclusive
	}
	return s.Height
}

func (s *Screen) row(i int) *Row {
	if i < 0 || i >= len(s.Active.Rows) {
		return nil
	}
	return &s.Active.Rows[i]
}

// recomputeTextOffset recomputes Cursor.TextOffset from the current row's
// cells, per spec.md §4.7.
func (s *Screen) recomputeTextOffset() {
	row := s.row(s.Cursor.Row)
	if row == nil {
		s.Cursor.TextOffset = 0
		return
	}
	s.Cursor.TextOffset = row.cellTextOffset(s.Cursor.Col)
}

// SetCursor moves the cursor to (row, col), clamped to the legal range,
// clears overflow_pending, and recomputes the text offset (spec.md §4.7).
func (s *Screen) SetCursor(row, col int) {
	min, max := s.minRow(), s.maxRowExclusive()
	if row < min {
		row = min
	}
	if row >= max {
		row = max - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= s.Width {
		col = s.Width - 1
	}
	s.Cursor.Row = row
	s.Cursor.Col = col
	s.Cursor.OverflowPending = false
	s.recomputeTextOffset()
}

// SetCursorCol incrementally adjusts the text offset by walking the cells
// between the old and new columns, O(|Δcol|) (spec.md §4.7).
func (s *Screen) SetCursorCol(col int) {
	if col < 0 {
		col = 0
	}
	if col >= s.Width {
		col = s.Width - 1
	}
	row := s.row(s.Cursor.Row)
	if row == nil {
		s.Cursor.Col = col
		return
	}
	if col > s.Cursor.Col {
		for c := s.Cursor.Col; c < col && c < len(row.Cells); c++ {
			s.Cursor.TextOffset += int(row.Cells[c].TextSize)
		}
	} else if col < s.Cursor.Col {
		for c := s.Cursor.Col - 1; c >= col && c >= 0; c-- {
			s.Cursor.TextOffset -= int(row.Cells[c].TextSize)
		}
	}
	s.Cursor.Col = col
	s.Cursor.OverflowPending = false
}

// PutCodePoint is the hottest path in the emulator (spec.md §4.7). cluster
// is the full grapheme cluster (lead rune plus any trailing combining
// marks) so width can be determined once for the whole cluster; combining
// marks that arrive as their own call are passed with length 1 and Kind
// width 0, which appends to the previous cell instead of advancing.
func (s *Screen) PutCodePoint(cluster []rune) {
	if len(cluster) == 0 {
		return
	}
	if s.Cursor.OverflowPending {
		if s.AutoWrap {
			if row := s.row(s.Cursor.Row); row != nil {
				row.Overflow = true
			}
			s.advanceRowWithScroll()
			s.Cursor.Col = 0
			s.recomputeTextOffset()
		} else {
			s.Cursor.OverflowPending = false
			s.SetCursorCol(s.Width - 1)
		}
	}

	width := s.WidthFunc(cluster)
	text := string(cluster)

	if width == 0 {
		// Combining mark: attach to the previous cell's text region.
		prevCol := s.Cursor.Col - 1
		row := s.row(s.Cursor.Row)
		if row != nil && prevCol >= 0 {
			row.appendToCellText(prevCol, text)
		}
		return
	}

	row := s.row(s.Cursor.Row)
	if row == nil {
		return
	}
	col := s.Cursor.Col
	if col < len(row.Cells) {
		s.dropCellIds(&row.Cells[col])
	}
	row.setCellText(col, text)
	row.Cells[col].Dirty = true
	if s.CurrentGraphicsID != 0 {
		s.Active.GraphicsIDs.UseID(s.CurrentGraphicsID)
	}
	row.Cells[col].GraphicsID = s.CurrentGraphicsID
	if s.CurrentHyperlinkID != 0 {
		s.Active.HyperlinkIDs.UseID(s.CurrentHyperlinkID)
	}
	row.Cells[col].HyperlinkID = s.CurrentHyperlinkID

	if width == 2 && col+1 < len(row.Cells) {
		s.dropCellIds(&row.Cells[col+1])
		row.setCellText(col+1, "")
		row.Cells[col].LeftBoundary = true
		wideID, ok := s.Active.MultiCellIDs.Allocate(WideCell)
		if !ok {
			wideID = 1
			s.Active.Exhaustions++
		}
		row.Cells[col].MultiCellID = wideID
		row.Cells[col+1].MultiCellID = wideID
		row.Cells[col+1].Dirty = true
	}

	s.recomputeTextOffset()
	newCol := col + width
	if newCol >= s.Width {
		s.Cursor.Col = s.Width - 1
		s.Cursor.OverflowPending = true
	} else {
		s.Cursor.Col = newCol
		s.SetCursorCol(newCol)
	}
}

// dropCellIds releases the graphics/hyperlink/multicell ids a cell held
// before it is overwritten (spec.md §4.7 step 3).
func (s *Screen) dropCellIds(c *Cell) {
	if c.GraphicsID != 0 {
		s.Active.GraphicsIDs.DropID(c.GraphicsID)
	}
	if c.HyperlinkID != 0 {
		s.Active.HyperlinkIDs.DropID(c.HyperlinkID)
	}
	if c.MultiCellID > 1 {
		s.Active.MultiCellIDs.DropID(c.MultiCellID)
	}
	*c = Cell{}
}

// advanceRowWithScroll moves the cursor down one row, scrolling the
// region if already at its bottom (spec.md §4.7 step 1).
func (s *Screen) advanceRowWithScroll() {
	if s.Cursor.Row+1 >= s.ScrollRegion.EndExclusive {
		s.ScrollDown()
		return
	}
	s.Cursor.Row++
}

// InSelection reports whether p falls within the current selection,
// inclusive, using the lexicographic compare described in spec.md §4.7.
func (s *Screen) InSelection(p SelectionPoint) bool {
	if !s.Selection.Active {
		return false
	}
	lo, hi := s.Selection.Start, s.Selection.End
	if hi.less(lo) {
		lo, hi = hi, lo
	}
	return !p.less(lo) && !hi.less(p)
}

// VisualScrollToBottom resets the visual scroll offset; any writable
// operation forces this (spec.md §4.7).
func (s *Screen) VisualScrollToBottom() {
	s.VisualScrollOffset = s.Scrollback.AbsoluteRowStart() + s.Scrollback.Len()
}
