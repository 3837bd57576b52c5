package workspace

import (
	"testing"

	"github.com/patrick-goecommerce/ttx/internal/layout"
)

// Scenario 8 (spec.md §8): 2x2 grid of panes, active = top-left.
// navigate(Left) -> top-right (wrap). navigate(Down) -> bottom-left.
func TestScenario8NavigationWrap(t *testing.T) {
	tab := NewTab("t", "")
	if err := tab.AddPane("TL", "", layout.DirNone); err != nil {
		t.Fatal(err)
	}
	if err := tab.AddPane("TR", "TL", layout.DirHorizontal); err != nil {
		t.Fatal(err)
	}
	if err := tab.AddPane("BL", "TL", layout.DirVertical); err != nil {
		t.Fatal(err)
	}
	if err := tab.AddPane("BR", "TR", layout.DirVertical); err != nil {
		t.Fatal(err)
	}

	area := layout.Rect{Row: 0, Col: 0, Width: 20, Height: 20}
	rects := tab.Layout(area)
	if len(rects) != 4 {
		t.Fatalf("expected 4 panes in a 2x2 grid, got %d: %+v", len(rects), rects)
	}

	tab.SetActive("TL")

	got := tab.Navigate(area, NavLeft)
	if got != "TR" {
		t.Fatalf("navigate(Left) from TL = %q, want TR (wrap)", got)
	}

	tab.SetActive("TL")
	got = tab.Navigate(area, NavDown)
	if got != "BL" {
		t.Fatalf("navigate(Down) from TL = %q, want BL", got)
	}
}

func TestRecencyFallbackOnRemove(t *testing.T) {
	tab := NewTab("t", "")
	tab.AddPane("A", "", layout.DirNone)
	tab.AddPane("B", "A", layout.DirHorizontal)
	tab.SetActive("B")
	tab.SetActive("A")

	next := tab.RemovePane("A")
	if next != "B" {
		t.Fatalf("next active = %q, want B", next)
	}
}

func TestLayoutStatePruneCascades(t *testing.T) {
	ls := NewLayoutState()
	s := NewSession("s")
	tab := NewTab("t", "")
	tab.AddPane("A", "", layout.DirNone)
	s.AddTab(tab)
	ls.AddSession(s)

	tab.RemovePane("A")
	ls.Prune()

	if !ls.IsEmpty() {
		t.Fatalf("expected state to prune down to empty, got %d sessions", len(ls.Sessions))
	}
}

func TestPopupSizeSpecResolve(t *testing.T) {
	rel := SizeSpec{Relative: true, Fraction: MaxLayoutPrecision / 2}
	if got := rel.Resolve(100); got != 50 {
		t.Fatalf("relative resolve = %d, want 50", got)
	}
	abs := SizeSpec{Absolute: 1000}
	if got := abs.Resolve(100); got != 100 {
		t.Fatalf("absolute resolve clamp = %d, want 100", got)
	}
}
