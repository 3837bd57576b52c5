package terminal

import "testing"

func TestSetCursorClampsToScreen(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetCursor(100, 100)
	if s.Cursor.Row != 4 || s.Cursor.Col != 9 {
		t.Fatalf("cursor = %+v, want clamped to (4,9)", s.Cursor)
	}
	s.SetCursor(-5, -5)
	if s.Cursor.Row != 0 || s.Cursor.Col != 0 {
		t.Fatalf("cursor = %+v, want clamped to (0,0)", s.Cursor)
	}
}

func TestOriginModeClampsToScrollRegion(t *testing.T) {
	s := NewScreen(10, 10)
	s.ScrollRegion = ScrollRegion{Start: 2, EndExclusive: 6}
	s.OriginMode = true
	s.SetCursor(0, 0)
	if s.Cursor.Row != 2 {
		t.Fatalf("row = %d, want clamped to region start 2", s.Cursor.Row)
	}
	s.SetCursor(20, 0)
	if s.Cursor.Row != 5 {
		t.Fatalf("row = %d, want clamped to region end-1 (5)", s.Cursor.Row)
	}
}

func TestResizeGrowRevealsScrollback(t *testing.T) {
	s := NewScreen(5, 2)
	for i := 0; i < 5; i++ {
		for _, r := range "abcde" {
			s.PutCodePoint([]rune{r})
		}
		s.advanceRowWithScroll()
		s.SetCursorCol(0)
	}
	beforeScrollbackLen := s.Scrollback.Len()
	if beforeScrollbackLen == 0 {
		t.Fatalf("expected some rows to have scrolled into scroll-back")
	}
	s.Resize(5, 4)
	if s.Height != 4 {
		t.Fatalf("height = %d", s.Height)
	}
	if len(s.Active.Rows) != 4 {
		t.Fatalf("active rows = %d, want 4", len(s.Active.Rows))
	}
}

func TestResizeShrinkClampsCursor(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetCursor(9, 9)
	s.Resize(5, 3)
	if s.Cursor.Row != 2 || s.Cursor.Col != 4 {
		t.Fatalf("cursor = %+v, want clamped to (2,4)", s.Cursor)
	}
	if s.Width != 5 || s.Height != 3 {
		t.Fatalf("dims = %dx%d", s.Width, s.Height)
	}
}

func TestSelectedTextStripsTrailingBlanksAndJoinsRows(t *testing.T) {
	s := NewScreen(10, 3)
	for _, r := range "hi" {
		s.PutCodePoint([]rune{r})
	}
	s.SetCursor(1, 0)
	for _, r := range "bye" {
		s.PutCodePoint([]rune{r})
	}
	s.Selection = Selection{
		Active: true,
		Start:  SelectionPoint{Row: 0, Col: 0, AbsoluteRow: 0},
		End:    SelectionPoint{Row: 1, Col: 2, AbsoluteRow: 1},
	}
	got := s.SelectedText()
	if got != "hi\nbye" {
		t.Fatalf("selected text = %q", got)
	}
}

func TestSelectedTextAcrossOverflowRowHasNoNewline(t *testing.T) {
	s := NewScreen(3, 2)
	for _, r := range "abcdef" {
		s.PutCodePoint([]rune{r})
	}
	s.Selection = Selection{
		Active: true,
		Start:  SelectionPoint{Row: 0, Col: 0, AbsoluteRow: 0},
		End:    SelectionPoint{Row: 1, Col: 2, AbsoluteRow: 1},
	}
	got := s.SelectedText()
	if got != "abcdef" {
		t.Fatalf("selected text = %q, want no newline across overflow row", got)
	}
}

func TestInSelectionLexicographicCompare(t *testing.T) {
	s := NewScreen(10, 5)
	s.Selection = Selection{
		Active: true,
		Start:  SelectionPoint{Row: 1, Col: 2, AbsoluteRow: 1},
		End:    SelectionPoint{Row: 1, Col: 5, AbsoluteRow: 1},
	}
	if !s.InSelection(SelectionPoint{Row: 1, Col: 3, AbsoluteRow: 1}) {
		t.Fatalf("expected (1,3) to be in selection")
	}
	if s.InSelection(SelectionPoint{Row: 1, Col: 6, AbsoluteRow: 1}) {
		t.Fatalf("expected (1,6) to be outside selection")
	}
}

func TestEraseDisplayMode2ClearsWholeScreen(t *testing.T) {
	s := NewScreen(5, 2)
	for _, r := range "hello" {
		s.PutCodePoint([]rune{r})
	}
	s.EraseDisplay(2)
	if got := s.PlainTextRow(0); got != "" {
		t.Fatalf("row0 = %q, want blank after ED 2", got)
	}
}

func TestInsertAndDeleteCells(t *testing.T) {
	s := NewScreen(5, 1)
	for _, r := range "abcde" {
		s.PutCodePoint([]rune{r})
	}
	s.SetCursor(0, 1)
	s.InsertBlankCells(2)
	if got := s.PlainTextRow(0); got != "a  bc" {
		t.Fatalf("after ICH row0 = %q", got)
	}
	s.DeleteCells(2)
	if got := s.PlainTextRow(0); got != "abc" {
		t.Fatalf("after DCH row0 = %q", got)
	}
}
