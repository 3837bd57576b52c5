package terminal

// cellsPerGroup bounds a single row group's total cell count (spec.md
// §4.6: "each ≤ cells_per_group cells (≈ 32 k)").
const cellsPerGroup = 32 * 1024

// RowGroup is the owner of a contiguous run of rows and the id maps their
// cells reference (spec.md §3/§4.5).
type RowGroup struct {
	Rows          []Row
	GraphicsIDs   *IdMap[Rendition]
	HyperlinkIDs  *IdMap[Hyperlink]
	MultiCellIDs  *IdMap[MultiCellInfo]

	// Exhaustions counts every Allocate call against this group's id maps
	// that returned ok=false (spec.md §4.5: "returns None when full"),
	// i.e. a cell silently fell back to id 0 instead of getting its own
	// rendition/hyperlink/multi-cell entry.
	Exhaustions int
}

// NewRowGroup creates an empty row group.
func NewRowGroup() *RowGroup {
	return &RowGroup{
		GraphicsIDs:  NewIdMap[Rendition](),
		HyperlinkIDs: NewIdMap[Hyperlink](),
		MultiCellIDs: NewIdMap[MultiCellInfo](),
	}
}

// lookupRendition resolves id 0 to the well-known DefaultRendition
// singleton without consulting the map, per spec.md §3.
func lookupRendition(m *IdMap[Rendition], id uint16) Rendition {
	if id == 0 {
		return DefaultRendition
	}
	if v, ok := m.Lookup(id); ok {
		return v
	}
	return DefaultRendition
}

// lookupMultiCell resolves ids 0 and 1 to the implicit Narrow/Wide
// singletons without consulting the map, per spec.md §3.
func lookupMultiCell(m *IdMap[MultiCellInfo], id uint16) MultiCellInfo {
	switch id {
	case 0:
		return NarrowCell
	case 1:
		return WideCell
	}
	if v, ok := m.Lookup(id); ok {
		return v
	}
	return NarrowCell
}

// lookupHyperlink resolves id 0 to "no hyperlink".
func lookupHyperlink(m *IdMap[Hyperlink], id uint16) (Hyperlink, bool) {
	if id == 0 {
		return Hyperlink{}, false
	}
	return m.Lookup(id)
}

// cellCount sums the cell count of every row, the unit charged against
// cellsPerGroup and the scroll-back's max_cells.
func (g *RowGroup) cellCount() int {
	n := 0
	for i := range g.Rows {
		n += g.Rows[i].cellCount()
	}
	return n
}

// appendRow adds row to the tail of the group.
func (g *RowGroup) appendRow(row Row) {
	g.Rows = append(g.Rows, row)
}

// popFrontRow removes and returns the row at the head of the group.
func (g *RowGroup) popFrontRow() (Row, bool) {
	if len(g.Rows) == 0 {
		return Row{}, false
	}
	row := g.Rows[0]
	g.Rows = g.Rows[1:]
	return row, true
}

// multiCellLeftBoundary walks left from col to the start of the
// multi-cell span col belongs to (or returns col itself if it isn't part
// of one), used so truncation never splits a multi-cell (spec.md §4.6).
func multiCellLeftBoundary(row *Row, col int) int {
	for col > 0 && !row.Cells[col].LeftBoundary && row.Cells[col].MultiCellID != 0 {
		col--
	}
	return col
}

// truncateRow shrinks row to at most desiredCols columns, retreating to a
// multi-cell's left boundary rather than splitting it, then truncates the
// backing text buffer to match the new cell's TextSize sum (spec.md
// §4.6 transfer_from).
func truncateRow(row *Row, desiredCols int) {
	if desiredCols >= len(row.Cells) {
		return
	}
	cut := desiredCols
	if cut < len(row.Cells) && row.Cells[cut].MultiCellID != 0 && !row.Cells[cut].LeftBoundary {
		cut = multiCellLeftBoundary(row, cut)
	}
	off := row.cellTextOffset(cut)
	if off > len(row.Text) {
		off = len(row.Text)
	}
	row.Cells = row.Cells[:cut]
	row.Text = row.Text[:off]
}

// padRow grows row to desiredCols with empty cells.
func padRow(row *Row, desiredCols int) {
	for len(row.Cells) < desiredCols {
		row.Cells = append(row.Cells, Cell{})
	}
}

// resolveIdsAgainst re-resolves every cell in row from the source id maps
// into freshly allocated (or reused) ids in the destination maps, per
// spec.md §4.6's "maybe_allocate_*_id". Source ids are dropped from src
// once the row no longer needs them there.
func resolveIdsAgainst(row *Row, src, dst *RowGroup) {
	for i := range row.Cells {
		c := &row.Cells[i]
		if c.GraphicsID != 0 {
			v := lookupRendition(src.GraphicsIDs, c.GraphicsID)
			src.GraphicsIDs.DropID(c.GraphicsID)
			id, ok := dst.GraphicsIDs.Allocate(v)
			if !ok {
				id = 0
				dst.Exhaustions++
			}
			c.GraphicsID = id
		}
		if c.HyperlinkID != 0 {
			if v, ok := lookupHyperlink(src.HyperlinkIDs, c.HyperlinkID); ok {
				src.HyperlinkIDs.DropID(c.HyperlinkID)
				id, ok2 := dst.HyperlinkIDs.Allocate(v)
				if !ok2 {
					id = 0
					dst.Exhaustions++
				}
				c.HyperlinkID = id
			} else {
				c.HyperlinkID = 0
			}
		}
		if c.MultiCellID > 1 {
			v := lookupMultiCell(src.MultiCellIDs, c.MultiCellID)
			src.MultiCellIDs.DropID(c.MultiCellID)
			id, ok := dst.MultiCellIDs.Allocate(v)
			if !ok {
				id = 0
				dst.Exhaustions++
			}
			c.MultiCellID = id
		}
	}
}

// transferFrom moves count rows [fromIndex, fromIndex+count) out of src
// into g, re-resolving every cell's ids against g's id maps and, if
// desiredCols is non-negative, truncating or padding each moved row to
// that width (spec.md §4.6). Rows are removed from src as they are
// appended to g (the text is moved, not copied).
func (g *RowGroup) transferFrom(src *RowGroup, fromIndex, count, desiredCols int) {
	if fromIndex < 0 || fromIndex > len(src.Rows) {
		return
	}
	end := fromIndex + count
	if end > len(src.Rows) {
		end = len(src.Rows)
	}
	moved := make([]Row, end-fromIndex)
	copy(moved, src.Rows[fromIndex:end])
	src.Rows = append(src.Rows[:fromIndex], src.Rows[end:]...)
	for i := range moved {
		resolveIdsAgainst(&moved[i], src, g)
		if desiredCols >= 0 {
			if len(moved[i].Cells) > desiredCols {
				truncateRow(&moved[i], desiredCols)
			} else if len(moved[i].Cells) < desiredCols {
				padRow(&moved[i], desiredCols)
			}
		}
		g.appendRow(moved[i])
	}
}
