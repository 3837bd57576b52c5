package layout

import "testing"

// Scenario 7 (spec.md §8): split None adds P1 full screen; split
// Vertical ref=P1 adds P2 below; split Horizontal ref=P1 adds P3 to the
// right of P1; remove P1. Expected: a single Vertical group [P3, P2].
func TestScenario7SplitAndRemove(t *testing.T) {
	root := NewLayoutGroup()

	if _, err := root.Split("P1", "", DirNone); err != nil {
		t.Fatalf("split P1: %v", err)
	}
	if _, err := root.Split("P2", "P1", DirVertical); err != nil {
		t.Fatalf("split P2: %v", err)
	}
	if _, err := root.Split("P3", "P1", DirHorizontal); err != nil {
		t.Fatalf("split P3: %v", err)
	}

	if !RemovePane(root, "P1") {
		t.Fatalf("expected P1 to be found and removed")
	}

	if root.Direction != DirVertical {
		t.Fatalf("root direction = %v, want Vertical", root.Direction)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.Children))
	}
	if root.Children[0].Node.PaneID != "P3" || root.Children[1].Node.PaneID != "P2" {
		t.Fatalf("root = [%s, %s], want [P3, P2]", root.Children[0].Node.PaneID, root.Children[1].Node.PaneID)
	}
}

func TestLayoutPartitionEvenSplit(t *testing.T) {
	root := NewLayoutGroup()
	root.Split("P1", "", DirNone)
	root.Split("P2", "P1", DirHorizontal)
	root.Split("P3", "P1", DirHorizontal)

	rects := Layout(root, Rect{Row: 0, Col: 0, Width: 31, Height: 10})
	if len(rects) != 3 {
		t.Fatalf("rects = %d, want 3", len(rects))
	}
	total := 0
	for _, pr := range rects {
		total += pr.Rect.Width
		if pr.Rect.Height != 10 {
			t.Fatalf("height = %d, want 10", pr.Rect.Height)
		}
	}
	if total+2 != 31 { // 2 border cells reserved between 3 columns
		t.Fatalf("total width + borders = %d, want 31", total+2)
	}
}

func TestHitTest(t *testing.T) {
	root := NewLayoutGroup()
	root.Split("P1", "", DirNone)
	root.Split("P2", "P1", DirHorizontal)

	area := Rect{Row: 0, Col: 0, Width: 10, Height: 5}
	left := HitTest(root, area, 2, 0)
	right := HitTest(root, area, 2, 9)
	if left != "P1" || right != "P2" {
		t.Fatalf("hit test left=%q right=%q", left, right)
	}
}

func TestResizeRedistributesWeight(t *testing.T) {
	root := NewLayoutGroup()
	root.Split("P1", "", DirNone)
	root.Split("P2", "P1", DirHorizontal)

	area := Rect{Row: 0, Col: 0, Width: 20, Height: 5}
	if !Resize(root, area, "P1", DirHorizontal, 5) {
		t.Fatalf("expected resize to redistribute")
	}
	if root.Children[0].Weight <= root.Children[1].Weight {
		t.Fatalf("expected P1's weight to grow relative to P2: %+v", root.Children)
	}
}

func TestRemovePaneNotFound(t *testing.T) {
	root := NewLayoutGroup()
	root.Split("P1", "", DirNone)
	if RemovePane(root, "missing") {
		t.Fatalf("expected RemovePane to report not-found")
	}
}
