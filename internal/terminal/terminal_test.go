package terminal

import (
	"strings"
	"testing"
)

func feedTerm(term *Terminal, s string) {
	term.Write([]byte(s))
}

// Scenario 1 (spec.md §8): width 5, height 2, write "HELLOWORLD".
func TestScenario1BasicWrap(t *testing.T) {
	term := NewTerminal(5, 2)
	feedTerm(term, "HELLOWORLD")
	s := term.Active()
	if got := s.PlainTextRow(0); got != "HELLO" {
		t.Fatalf("row0 = %q", got)
	}
	if !s.Active.Rows[0].Overflow {
		t.Fatalf("expected row0 overflow=true")
	}
	if got := s.PlainTextRow(1); got != "WORLD" {
		t.Fatalf("row1 = %q", got)
	}
	if s.Cursor.Row != 1 || s.Cursor.Col != 4 || !s.Cursor.OverflowPending {
		t.Fatalf("cursor = %+v", s.Cursor)
	}
}

// Scenario 2 (spec.md §8): SGR round-trip through CSI m then DECRQSS $q m.
func TestScenario2SGRRoundTripViaDECRQSS(t *testing.T) {
	term := NewTerminal(10, 5)
	feedTerm(term, "\x1b[1;3;38:2::10:20:30;48:5:9;58:2::4:5:6m")
	term.Outgoing = nil
	feedTerm(term, "\x1bP$qm\x1b\\")
	reply := string(term.Outgoing)
	if !strings.HasPrefix(reply, "\x1bP1$r") || !strings.HasSuffix(reply, "m\x1b\\") {
		t.Fatalf("reply = %q", reply)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(reply, "\x1bP1$r"), "m\x1b\\")
	got := DefaultRendition.UpdateWithCSIParams(newParamList([]byte(inner)))
	want := Rendition{
		Weight:         WeightBold,
		Italic:         true,
		Foreground:     Color{Kind: ColorRGB, R: 10, G: 20, B: 30},
		Background:     Color{Kind: ColorPalette, Palette: 9},
		UnderlineColor: Color{Kind: ColorRGB, R: 4, G: 5, B: 6},
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v (reply %q)", got, want, reply)
	}
}

// Scenario 3 (spec.md §8): 5x5 screen, CSI 2;4r, CUP 2;1, "A\nB\nC\nD\n".
// The region [1,4) holds only 3 rows; starting at its top row, 4
// newline-separated lines necessarily scroll it twice (once after "C" is
// written at the bottom row, once after "D" is), so "A" and "B" are both
// evicted by the time the sequence finishes. Rows 0 and 4 sit outside the
// region and are never touched; the region's bottom row ends up blank
// and the cursor lands at its start (3,0), matching spec.md's two
// unambiguous assertions.
func TestScenario3ScrollRegion(t *testing.T) {
	term := NewTerminal(5, 5)
	feedTerm(term, "\x1b[2;4r")
	feedTerm(term, "\x1b[2;1H")
	feedTerm(term, "A\nB\nC\nD\n")
	s := term.Active()
	if got := s.PlainTextRow(0); got != "" {
		t.Fatalf("row0 = %q, want untouched/blank", got)
	}
	if got := s.PlainTextRow(4); got != "" {
		t.Fatalf("row4 = %q, want untouched/blank", got)
	}
	if got := s.PlainTextRow(1); got != "C" {
		t.Fatalf("row1 = %q, want C", got)
	}
	if got := s.PlainTextRow(2); got != "D" {
		t.Fatalf("row2 = %q, want D", got)
	}
	if got := s.PlainTextRow(3); got != "" {
		t.Fatalf("row3 = %q, want blank", got)
	}
	if s.Cursor.Row != 3 || s.Cursor.Col != 0 {
		t.Fatalf("cursor = %+v, want (3,0)", s.Cursor)
	}
}

// Scenario 4 (spec.md §8): alternate screen round trip.
func TestScenario4AlternateScreen(t *testing.T) {
	term := NewTerminal(10, 5)
	feedTerm(term, "X")
	feedTerm(term, "\x1b[?1049h")
	feedTerm(term, "Y")
	feedTerm(term, "\x1b[?1049l")
	s := term.Active()
	if got := s.PlainTextRow(0); !strings.HasPrefix(got, "X") {
		t.Fatalf("row0 = %q, want to start with X", got)
	}
	if s.Cursor.Row != 0 || s.Cursor.Col != 1 {
		t.Fatalf("cursor = %+v, want (0,1)", s.Cursor)
	}
	if term.usingAlt {
		t.Fatalf("expected to be back on primary screen")
	}
}

func TestCSICursorMotion(t *testing.T) {
	term := NewTerminal(10, 10)
	feedTerm(term, "\x1b[5;5H")
	s := term.Active()
	if s.Cursor.Row != 4 || s.Cursor.Col != 4 {
		t.Fatalf("cursor = %+v", s.Cursor)
	}
	feedTerm(term, "\x1b[2A")
	if s.Cursor.Row != 2 {
		t.Fatalf("row after CUU = %d", s.Cursor.Row)
	}
}

func TestDSRCursorPositionReport(t *testing.T) {
	term := NewTerminal(10, 10)
	feedTerm(term, "\x1b[3;4H")
	term.Outgoing = nil
	feedTerm(term, "\x1b[6n")
	if got := string(term.Outgoing); got != "\x1b[3;4R" {
		t.Fatalf("reply = %q", got)
	}
}

func TestDECRQMRecognizedMode(t *testing.T) {
	term := NewTerminal(10, 10)
	feedTerm(term, "\x1b[?7h")
	term.Outgoing = nil
	feedTerm(term, "\x1b[?7$p")
	if got := string(term.Outgoing); got != "\x1b[?7;1$y" {
		t.Fatalf("reply = %q", got)
	}
}

func TestKittyKeyFlagsPushQueryPop(t *testing.T) {
	term := NewTerminal(10, 10)
	feedTerm(term, "\x1b[>5u")
	term.Outgoing = nil
	feedTerm(term, "\x1b[?u")
	if got := string(term.Outgoing); got != "\x1b[?5u" {
		t.Fatalf("reply = %q", got)
	}
	feedTerm(term, "\x1b[<1u")
	term.Outgoing = nil
	feedTerm(term, "\x1b[?u")
	if got := string(term.Outgoing); got != "\x1b[?0u" {
		t.Fatalf("reply after pop = %q", got)
	}
}

func TestOSCHyperlink(t *testing.T) {
	term := NewTerminal(10, 10)
	feedTerm(term, "\x1b]8;;http://example.com\x1b\\")
	feedTerm(term, "hi")
	feedTerm(term, "\x1b]8;;\x1b\\")
	s := term.Active()
	link, ok := lookupHyperlink(s.Active.HyperlinkIDs, s.Active.Rows[0].Cells[0].HyperlinkID)
	if !ok || link.URI != "http://example.com" {
		t.Fatalf("link = %+v, %v", link, ok)
	}
}

func TestOSCTitle(t *testing.T) {
	term := NewTerminal(10, 10)
	feedTerm(term, "\x1b]0;my title\x07")
	if term.Title != "my title" {
		t.Fatalf("title = %q", term.Title)
	}
}

func TestREP(t *testing.T) {
	term := NewTerminal(10, 10)
	feedTerm(term, "A\x1b[3b")
	if got := term.Active().PlainTextRow(0); got != "AAAA" {
		t.Fatalf("row0 = %q", got)
	}
}
