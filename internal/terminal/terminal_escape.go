package terminal

// dispatchEscape handles the non-CSI escape sequences of spec.md §4.8:
// 7/8 (DECSC/DECRC), D/E/H/M (IND/NEL/HTS/RI), #8 (DECALN).
func (t *Terminal) dispatchEscape(ev ParserEvent) {
	s := t.Active()
	switch {
	case ev.Intermediate == "" && ev.Terminator == '7':
		t.saveCursor()
	case ev.Intermediate == "" && ev.Terminator == '8':
		t.restoreCursor()
	case ev.Intermediate == "" && ev.Terminator == 'D': // IND
		s.advanceRowWithScroll()
	case ev.Intermediate == "" && ev.Terminator == 'E': // NEL
		s.advanceRowWithScroll()
		s.SetCursorCol(0)
	case ev.Intermediate == "" && ev.Terminator == 'H': // HTS
		t.tabStops[s.Cursor.Col] = true
	case ev.Intermediate == "" && ev.Terminator == 'M': // RI
		if s.Cursor.Row <= s.ScrollRegion.Start {
			s.ScrollUpRegion(1)
		} else {
			s.SetCursor(s.Cursor.Row-1, s.Cursor.Col)
		}
	case ev.Intermediate == "#" && ev.Terminator == '8': // DECALN
		t.decAlignScreenFill(s)
	}
}

// decAlignScreenFill fills the whole screen with 'E', per DECALN
// (spec.md §4.8).
func (t *Terminal) decAlignScreenFill(s *Screen) {
	for r := 0; r < s.Height; r++ {
		s.SetCursor(r, 0)
		for c := 0; c < s.Width; c++ {
			s.PutCodePoint([]rune{'E'})
		}
	}
	s.SetCursor(0, 0)
}

// saveCursor implements DECSC: the active screen's CursorState is saved
// on that screen, so DECSC/DECRC act per screen across the
// alternate-screen swap. Only the CursorState fields are saved; the
// current SGR rendition and origin mode are not.
func (t *Terminal) saveCursor() {
	s := t.Active()
	s.SavedCursor = s.Cursor
}

// restoreCursor implements DECRC.
func (t *Terminal) restoreCursor() {
	s := t.Active()
	s.Cursor = s.SavedCursor
	s.recomputeTextOffset()
}
