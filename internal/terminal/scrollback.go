package terminal

// maxGroupsPerScrollback is the scroll-back cap expressed in row groups:
// max_cells = cells_per_group × 100 (spec.md §4.6).
const maxGroupsPerScrollback = 100

// Scrollback is a chain of row groups holding rows that have scrolled off
// the top of the screen. absoluteRowStart is the absolute row number of
// the oldest row currently retained; it advances whenever a whole group
// is discarded (spec.md §3 Row group / §4.6).
type Scrollback struct {
	groups           []*RowGroup
	absoluteRowStart int
}

// NewScrollback creates an empty scroll-back chain.
func NewScrollback() *Scrollback {
	return &Scrollback{groups: []*RowGroup{NewRowGroup()}}
}

// maxCells is the global cap: cells_per_group × 100.
func (s *Scrollback) maxCells() int {
	return cellsPerGroup * maxGroupsPerScrollback
}

func (s *Scrollback) totalCells() int {
	n := 0
	for _, g := range s.groups {
		n += g.cellCount()
	}
	return n
}

// Len reports the number of rows retained in scroll-back.
func (s *Scrollback) Len() int {
	n := 0
	for _, g := range s.groups {
		n += len(g.Rows)
	}
	return n
}

// AppendRow adds row to the tail of scroll-back, allocating a new chunk
// when the current tail chunk would exceed cells_per_group, then enforces
// the global cell cap by discarding whole groups from the head (spec.md
// §4.6: "Scroll-back adds whole rows by filling the last chunk until it
// exceeds cells_per_group, then allocating a new chunk").
func (s *Scrollback) AppendRow(row Row) {
	tail := s.groups[len(s.groups)-1]
	if tail.cellCount()+row.cellCount() > cellsPerGroup && len(tail.Rows) > 0 {
		tail = NewRowGroup()
		s.groups = append(s.groups, tail)
	}
	tail.appendRow(row)
	s.enforceCap()
}

// enforceCap discards the oldest row-group whole whenever total retained
// cells exceed maxCells, advancing absoluteRowStart by the discarded
// group's row count (spec.md §4.6).
func (s *Scrollback) enforceCap() {
	for s.totalCells() > s.maxCells() && len(s.groups) > 1 {
		oldest := s.groups[0]
		s.absoluteRowStart += len(oldest.Rows)
		s.groups = s.groups[1:]
	}
}

// TakeRows removes up to count rows from the tail of scroll-back into
// dest starting at dest row destIndex, re-resolving ids and applying
// desiredCols, used when resizing up reveals scroll-back (spec.md §4.6
// take_rows). It returns the number of rows actually moved.
func (s *Scrollback) TakeRows(dest *RowGroup, desiredCols, destIndex, count int) int {
	moved := 0
	for moved < count && len(s.groups) > 0 {
		tail := s.groups[len(s.groups)-1]
		if len(tail.Rows) == 0 {
			if len(s.groups) == 1 {
				break
			}
			s.groups = s.groups[:len(s.groups)-1]
			continue
		}
		take := count - moved
		if take > len(tail.Rows) {
			take = len(tail.Rows)
		}
		from := len(tail.Rows) - take
		row := tail.Rows[len(tail.Rows)-1]
		tail.Rows = tail.Rows[:len(tail.Rows)-1]
		resolveIdsAgainst(&row, tail, dest)
		if desiredCols >= 0 {
			if len(row.Cells) > desiredCols {
				truncateRow(&row, desiredCols)
			} else if len(row.Cells) < desiredCols {
				padRow(&row, desiredCols)
			}
		}
		insertAt := destIndex
		if insertAt < 0 {
			insertAt = 0
		}
		if insertAt > len(dest.Rows) {
			insertAt = len(dest.Rows)
		}
		dest.Rows = append(dest.Rows, Row{})
		copy(dest.Rows[insertAt+1:], dest.Rows[insertAt:])
		dest.Rows[insertAt] = row
		moved++
		_ = from
	}
	return moved
}

// RowAt returns the row at absolute row number abs, if still retained.
func (s *Scrollback) RowAt(abs int) (Row, bool) {
	if abs < s.absoluteRowStart {
		return Row{}, false
	}
	rel := abs - s.absoluteRowStart
	for _, g := range s.groups {
		if rel < len(g.Rows) {
			return g.Rows[rel], true
		}
		rel -= len(g.Rows)
	}
	return Row{}, false
}

// AbsoluteRowStart is the absolute row number of the oldest retained row.
func (s *Scrollback) AbsoluteRowStart() int {
	return s.absoluteRowStart
}

// Exhaustions sums id-map exhaustions across every retained row group.
func (s *Scrollback) Exhaustions() int {
	n := 0
	for _, g := range s.groups {
		n += g.Exhaustions
	}
	return n
}
