package ui

import (
	"strings"
	"testing"
)

func TestRenderFooter_ShowsBranchAndMode(t *testing.T) {
	d := FooterData{
		Branch:   "main",
		Mode:     "Shell",
		TabCount: 2,
		TabIdx:   0,
		PaneIdx:  1,
	}
	out := RenderFooter(d, 100)

	if !strings.Contains(out, "main") {
		t.Error("footer should include the branch name")
	}
	if !strings.Contains(out, "Shell") {
		t.Error("footer should include the mode")
	}
	if !strings.Contains(out, "Tab 1/2") {
		t.Error("footer should include tab position")
	}
	if !strings.Contains(out, "Pane 2") {
		t.Error("footer should include 1-indexed pane position")
	}
}

func TestRenderFooter_OmitsEmptyBranch(t *testing.T) {
	d := FooterData{TabCount: 1, TabIdx: 0}
	out := RenderFooter(d, 80)
	if strings.Contains(out, "branch:") {
		t.Error("footer should not render a branch section when Branch is empty")
	}
}

func TestRenderFooter_ShowsZoomIndicator(t *testing.T) {
	d := FooterData{TabCount: 1, TabIdx: 0, Zoomed: true}
	out := RenderFooter(d, 80)
	if !strings.Contains(out, "ZOOM") {
		t.Error("footer should indicate zoomed state")
	}
}
