package render

import (
	"strings"
	"testing"

	"github.com/patrick-goecommerce/ttx/internal/terminal"
)

func TestFinishEmitsSynchronizedOutputWrapper(t *testing.T) {
	r := NewRenderer()
	r.Start(10, 2)
	r.PutCell(0, 0, "H", terminal.DefaultRendition, "", false, Rect{Width: 10, Height: 2})
	out := string(r.Finish(Cursor{Row: 0, Col: 1}))
	if !strings.HasPrefix(out, "\x1b[?2026h") {
		t.Fatalf("frame = %q, want synchronized-output prefix", out)
	}
	if !strings.HasSuffix(out, "\x1b[?2026l") {
		t.Fatalf("frame = %q, want synchronized-output suffix", out)
	}
	if !strings.Contains(out, "H") {
		t.Fatalf("frame = %q, want H cell drawn", out)
	}
}

func TestFinishSkipsUnchangedCellsOnSecondFrame(t *testing.T) {
	r := NewRenderer()
	r.Start(5, 1)
	bound := Rect{Width: 5, Height: 1}
	r.PutCell(0, 0, "A", terminal.DefaultRendition, "", false, bound)
	r.Finish(Cursor{})

	r.Start(5, 1)
	r.PutCell(0, 0, "A", terminal.DefaultRendition, "", false, bound)
	out := string(r.Finish(Cursor{}))
	// No CUP-to-(1,1)+"A" draw should appear since the cell is unchanged;
	// only the trailing cursor-position write remains.
	if strings.Count(out, "A") != 0 {
		t.Fatalf("expected no redundant draw of unchanged cell, got %q", out)
	}
}

func TestSetupCleanupAreMirrorSequences(t *testing.T) {
	f := DefaultSetupFeatures()
	setup := string(Setup(f))
	cleanup := string(Cleanup(f))
	if !strings.HasPrefix(setup, "\x1b[?1049h") {
		t.Fatalf("setup = %q", setup)
	}
	if !strings.HasSuffix(cleanup, "\x1b[?1049l") {
		t.Fatalf("cleanup = %q", cleanup)
	}
	if !strings.Contains(cleanup, "\x1b[<u") {
		t.Fatalf("cleanup missing kitty pop-all: %q", cleanup)
	}
}

func TestDrawScreenOnlyCopiesDirtyCells(t *testing.T) {
	s := terminal.NewScreen(5, 1)
	s.PutCodePoint([]rune{'h'})
	r := NewRenderer()
	r.Start(5, 1)
	bound := Rect{Width: 5, Height: 1}
	r.DrawScreen(s, bound)
	out := string(r.Finish(Cursor{}))
	if !strings.Contains(out, "h") {
		t.Fatalf("frame = %q, want h drawn", out)
	}
}
