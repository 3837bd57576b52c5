package terminal

// MultiCellInfo describes a cell spanning more than one grid position per
// the Kitty text-sizing protocol (spec.md §3). Defaults yield the two
// well-known singletons at ids 0 ("narrow") and 1 ("wide").
type MultiCellInfo struct {
	Scale                 uint8 // 1..7
	Width                 uint8 // 0..7
	FractionalNumerator   uint8 // 0..15
	FractionalDenominator uint8 // 0..15, denom > num
	VerticalAlign         uint8 // 0..2
	HorizontalAlign       uint8 // 0..2
}

// NarrowCell and WideCell are the implicit multi-cell singletons bound to
// ids 0 and 1 in every row group's multi_cell_ids map.
var (
	NarrowCell = MultiCellInfo{Width: 1}
	WideCell   = MultiCellInfo{Width: 2}
)

// Hyperlink is the value type stored in a row group's hyperlink IdMap,
// populated by OSC 8 (spec.md §4.8).
type Hyperlink struct {
	URI string
	ID  string
}

// Cell is a single grid position. It carries no text of its own: it
// points into its row's text buffer via an offset computed from the sum
// of preceding cells' TextSize (spec.md §3). An empty cell is all three
// ids zero and TextSize zero.
type Cell struct {
	GraphicsID   uint16
	HyperlinkID  uint16
	MultiCellID  uint16
	TextSize     uint16 // u15 in spec; stored as uint16, top bit unused
	Dirty        bool
	LeftBoundary bool // left_boundary_of_multicell
	TopBoundary  bool // top_boundary_of_multicell
	Stale        bool
}

// IsEmpty reports whether the cell carries no attributes and no text,
// per spec.md §3's definition of an empty cell.
func (c Cell) IsEmpty() bool {
	return c.GraphicsID == 0 && c.HyperlinkID == 0 && c.MultiCellID == 0 && c.TextSize == 0
}

// Row is one line of the grid: a fixed-width slice of cells and the byte
// string backing their text. Invariant: the sum of cells' TextSize equals
// len(Text); Text is always valid UTF-8 (spec.md §3).
type Row struct {
	Cells    []Cell
	Text     []byte
	Overflow bool // cursor passed the right edge writing this row
}

// NewRow allocates a blank row of the given width.
func NewRow(width int) Row {
	return Row{Cells: make([]Cell, width)}
}

// cellTextOffset returns the byte offset into r.Text at which the text of
// r.Cells[col] begins, by summing preceding cells' TextSize.
func (r *Row) cellTextOffset(col int) int {
	off := 0
	for i := 0; i < col && i < len(r.Cells); i++ {
		off += int(r.Cells[i].TextSize)
	}
	return off
}

// cellText returns the text backing r.Cells[col].
func (r *Row) cellText(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	start := r.cellTextOffset(col)
	end := start + int(r.Cells[col].TextSize)
	if end > len(r.Text) {
		end = len(r.Text)
	}
	return string(r.Text[start:end])
}

// setCellText replaces the text backing r.Cells[col] with s, splicing
// r.Text and updating TextSize. Used by put_code_point (C7) to both
// overwrite a cell's glyph and to append combining marks to the previous
// cell.
func (r *Row) setCellText(col int, s string) {
	if col < 0 || col >= len(r.Cells) {
		return
	}
	start := r.cellTextOffset(col)
	oldSize := int(r.Cells[col].TextSize)
	end := start + oldSize
	if end > len(r.Text) {
		end = len(r.Text)
	}
	newText := make([]byte, 0, len(r.Text)-oldSize+len(s))
	newText = append(newText, r.Text[:start]...)
	newText = append(newText, s...)
	newText = append(newText, r.Text[end:]...)
	r.Text = newText
	r.Cells[col].TextSize = uint16(len(s))
}

// appendToCellText appends s to the text already backing r.Cells[col],
// used when a zero-width combining mark attaches to the previous cell
// (spec.md §4.6 step 2).
func (r *Row) appendToCellText(col int, s string) {
	if col < 0 || col >= len(r.Cells) {
		return
	}
	start := r.cellTextOffset(col)
	oldSize := int(r.Cells[col].TextSize)
	end := start + oldSize
	if end > len(r.Text) {
		end = len(r.Text)
	}
	newText := make([]byte, 0, len(r.Text)+len(s))
	newText = append(newText, r.Text[:end]...)
	newText = append(newText, s...)
	newText = append(newText, r.Text[end:]...)
	r.Text = newText
	r.Cells[col].TextSize += uint16(len(s))
}

// stripTrailingEmptyCells removes trailing empty cells down to at least
// one, unless Overflow is set (in which case the row's width is
// meaningful). This bounds scroll-back memory by real content rather than
// window width at capture time (spec.md §4.6).
func (r *Row) stripTrailingEmptyCells() {
	if r.Overflow {
		return
	}
	last := len(r.Cells) - 1
	for last > 0 && r.Cells[last].IsEmpty() {
		last--
	}
	if last+1 < len(r.Cells) {
		r.Cells = r.Cells[:last+1]
	}
}

// cellCount reports the number of cells charged against a row group's
// cells_per_group budget (spec.md §4.6).
func (r *Row) cellCount() int {
	return len(r.Cells)
}
