package terminal

import "fmt"

// dispatchCSI implements the canonical operation table of spec.md §4.8,
// keyed by intermediate prefix and terminator.
func (t *Terminal) dispatchCSI(ev ParserEvent) {
	switch ev.Intermediate {
	case "":
		t.dispatchCSIPlain(ev)
	case "?":
		if ev.Terminator == 'u' {
			t.dispatchKittyKeyFlags(ev)
		} else {
			t.dispatchCSIPrivate(ev)
		}
	case "?$":
		t.dispatchDECRQM(ev)
	case ">":
		if ev.Terminator == 'u' {
			t.dispatchKittyKeyFlags(ev)
		} else {
			t.dispatchDA2(ev)
		}
	case "=":
		t.dispatchDA3OrKitty(ev)
	case "<":
		t.dispatchKittyKeyFlags(ev)
	case " ":
		t.dispatchDECSCUSR(ev)
	}
}

func p1(params ParamList, i int, def uint32) int { return int(params.Get(i, def)) }

func (t *Terminal) dispatchCSIPlain(ev ParserEvent) {
	s := t.Active()
	params := ev.Params
	switch ev.Terminator {
	case '@':
		s.InsertBlankCells(p1(params, 0, 1))
	case 'A':
		s.SetCursor(s.Cursor.Row-p1(params, 0, 1), s.Cursor.Col)
	case 'B':
		s.SetCursor(s.Cursor.Row+p1(params, 0, 1), s.Cursor.Col)
	case 'C':
		s.SetCursorCol(s.Cursor.Col + p1(params, 0, 1))
	case 'D':
		s.SetCursorCol(s.Cursor.Col - p1(params, 0, 1))
	case 'G':
		s.SetCursorCol(p1(params, 0, 1) - 1)
	case 'H', 'f':
		row := clampParam(p1(params, 0, 1))
		col := clampParam(p1(params, 1, 1))
		s.SetCursor(row-1, col-1)
	case 'J':
		s.EraseDisplay(p1(params, 0, 0))
	case 'K':
		s.EraseLine(p1(params, 0, 0))
	case 'L':
		s.InsertBlankLines(p1(params, 0, 1))
	case 'M':
		s.DeleteLines(p1(params, 0, 1))
	case 'P':
		s.DeleteCells(p1(params, 0, 1))
	case 'S':
		for k := 0; k < p1(params, 0, 1); k++ {
			s.ScrollDown()
		}
	case 'T':
		s.ScrollUpRegion(p1(params, 0, 1))
	case 'X':
		s.EraseCells(p1(params, 0, 1))
	case 'b':
		n := p1(params, 0, 1)
		if t.lastPrintable != 0 {
			for k := 0; k < n; k++ {
				s.PutCodePoint([]rune{t.lastPrintable})
			}
		}
	case 'c':
		t.reply("\x1b[?62;1;6c")
	case 'd':
		s.SetCursor(clampParam(p1(params, 0, 1))-1, s.Cursor.Col)
	case 'g':
		t.dispatchTBC(p1(params, 0, 0))
	case 'm':
		t.setCurrentRendition(s.rendition().UpdateWithCSIParams(params))
	case 'n':
		t.dispatchDSR(p1(params, 0, 0))
	case 'r':
		top := p1(params, 0, 1)
		bottom := p1(params, 1, s.Height)
		if top < 1 {
			top = 1
		}
		if bottom > s.Height {
			bottom = s.Height
		}
		if top < bottom {
			s.ScrollRegion = ScrollRegion{Start: top - 1, EndExclusive: bottom}
		}
		s.SetCursor(s.minRow(), 0)
	case 's':
		t.scosc()
	case 'u':
		t.scorc()
	}
}

func clampParam(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// rendition returns the Rendition the cursor would next paint with
// (spec.md §4.4 is delegated to via CSI m; the Terminal tracks the
// "current" rendition on the active Screen for SGR to mutate).
func (s *Screen) rendition() Rendition {
	return lookupRendition(s.Active.GraphicsIDs, s.CurrentGraphicsID)
}

// setCurrentRendition allocates (or reuses) an id for r in the active
// screen's graphics IdMap and makes it the cursor's current rendition.
func (t *Terminal) setCurrentRendition(r Rendition) {
	s := t.Active()
	if s.CurrentGraphicsID != 0 {
		s.Active.GraphicsIDs.DropID(s.CurrentGraphicsID)
	}
	if r == DefaultRendition {
		s.CurrentGraphicsID = 0
		return
	}
	id, ok := s.Active.GraphicsIDs.Allocate(r)
	if !ok {
		id = 0 // id-map exhaustion: spec.md §5 edge case 6
		s.Active.Exhaustions++
	}
	s.CurrentGraphicsID = id
}

func (t *Terminal) dispatchTBC(mode int) {
	s := t.Active()
	switch mode {
	case 0:
		delete(t.tabStops, s.Cursor.Col)
	case 3:
		t.tabStops = map[int]bool{}
	}
}

func (t *Terminal) dispatchDSR(kind int) {
	s := t.Active()
	switch kind {
	case 5:
		t.reply("\x1b[0n")
	case 6:
		t.reply(fmt.Sprintf("\x1b[%d;%dR", s.Cursor.Row+1, s.Cursor.Col+1))
	}
}

func (t *Terminal) scosc() {
	s := t.Active()
	s.SavedCursor = s.Cursor
}

func (t *Terminal) scorc() {
	s := t.Active()
	s.Cursor = s.SavedCursor
	s.recomputeTextOffset()
}

// reply appends bytes to the outgoing queue destined for the
// pseudo-terminal (spec.md §6: "Writes to the subordinate tty are... the
// replies to DA1/DA2/DA3, DSR, DECRQM, DECRQSS, XTGETTCAP, Kitty `?u`").
func (t *Terminal) reply(s string) {
	t.Outgoing = append(t.Outgoing, s...)
}
