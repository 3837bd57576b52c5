// Package workspace implements the Tab/Session/LayoutState composition
// layer (spec.md §4.12, C12): recency-ordered pane focus, full-screen
// toggling, one popup per tab, and directional navigation across the
// split tree built by internal/layout. It is adapted from the teacher's
// internal/app/tabs.go (which held an equivalent but flat, grid-only
// tabState), generalized onto the real split tree.
package workspace

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/patrick-goecommerce/ttx/internal/layout"
)

// Alignment is a popup's anchor within its tab (spec.md §4.12).
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
	AlignTop
	AlignBottom
)

// SizeSpec is a popup dimension, either a fraction of max precision or an
// absolute cell count (spec.md §4.12).
type SizeSpec struct {
	Relative bool
	Fraction int // numerator out of MaxLayoutPrecision, when Relative
	Absolute int // cells, when !Relative
}

// MaxLayoutPrecision is the denominator SizeSpec.Fraction is taken over.
const MaxLayoutPrecision = 10000

// Resolve returns the concrete cell count for a SizeSpec given the
// available extent along its axis.
func (s SizeSpec) Resolve(extent int) int {
	if s.Relative {
		return extent * s.Fraction / MaxLayoutPrecision
	}
	if s.Absolute > extent {
		return extent
	}
	return s.Absolute
}

// Popup is a tab's at-most-one overlay pane (spec.md §4.12).
type Popup struct {
	PaneID     string
	HAlign     Alignment
	VAlign     Alignment
	WidthSpec  SizeSpec
	HeightSpec SizeSpec
}

// Tab owns one layout tree, its pane recency ring, and an optional
// full-screen override or popup.
type Tab struct {
	ID         string
	Name       string
	Dir        string
	Root       *layout.LayoutGroup
	recency    []string // front = most recently active
	FullScreen string   // non-empty = pane id shown full-screen
	Popup      *Popup
}

// NewTab returns an empty tab ready for its first split.
func NewTab(name, dir string) *Tab {
	return &Tab{ID: uuid.NewString(), Name: name, Dir: dir, Root: layout.NewLayoutGroup()}
}

// AddPane splits the tab's tree at referencePaneID (spec.md §4.11) and
// makes the new pane the most recently active.
func (t *Tab) AddPane(paneID, referencePaneID string, dir layout.Direction) error {
	if _, err := t.Root.Split(paneID, referencePaneID, dir); err != nil {
		return fmt.Errorf("workspace: add pane: %w", err)
	}
	t.SetActive(paneID)
	return nil
}

// RemovePane deletes a pane from the tree and recency ring (spec.md
// §4.12: "On pane removal the next recency entry wins; fall back to any
// pane"). It reports the new active pane id, or "" if the tab is now
// empty.
func (t *Tab) RemovePane(paneID string) string {
	layout.RemovePane(t.Root, paneID)
	layout.CollapseSingleSubgroupRoot(t.Root)
	for i, id := range t.recency {
		if id == paneID {
			t.recency = append(t.recency[:i], t.recency[i+1:]...)
			break
		}
	}
	if t.FullScreen == paneID {
		t.FullScreen = ""
	}
	if t.Popup != nil && t.Popup.PaneID == paneID {
		t.Popup = nil
	}
	if len(t.recency) > 0 {
		return t.recency[0]
	}
	for _, pr := range layout.Layout(t.Root, layout.Rect{}) {
		return pr.PaneID
	}
	return ""
}

// SetActive moves paneID to the front of the recency ring, bounded by
// the total number of panes currently in the tab (spec.md §4.12).
func (t *Tab) SetActive(paneID string) {
	for i, id := range t.recency {
		if id == paneID {
			t.recency = append(t.recency[:i], t.recency[i+1:]...)
			break
		}
	}
	t.recency = append([]string{paneID}, t.recency...)
}

// Active returns the most recently active pane id, or "" if the tab
// holds no panes.
func (t *Tab) Active() string {
	if len(t.recency) == 0 {
		return ""
	}
	return t.recency[0]
}

// PaneIDs returns every pane id currently in the tab's tree.
func (t *Tab) PaneIDs() []string {
	var ids []string
	for _, pr := range layout.Layout(t.Root, layout.Rect{Width: 1 << 20, Height: 1 << 20}) {
		ids = append(ids, pr.PaneID)
	}
	return ids
}

// Layout returns the tab's visible pane rectangles within area: the
// full-screen pane alone if one is set, otherwise the split tree's
// partition (spec.md §4.12: "other panes are not resized until
// full-screen is cleared").
func (t *Tab) Layout(area layout.Rect) []layout.PaneRect {
	if t.FullScreen != "" {
		return []layout.PaneRect{{PaneID: t.FullScreen, Rect: area}}
	}
	return layout.Layout(t.Root, area)
}

// Direction is an alias so callers of workspace.Navigate don't need to
// import internal/layout directly for the four-way enum.
type Direction int

const (
	NavLeft Direction = iota
	NavRight
	NavUp
	NavDown
)

// Navigate hit-tests a line one cell past the active pane's border in
// the requested direction, wrapping to the opposite screen edge at a
// boundary, and returns the most-recently-active candidate pane (spec.md
// §4.12: "produces intuitive motion across non-aligned splits").
func (t *Tab) Navigate(area layout.Rect, dir Direction) string {
	active := t.Active()
	if active == "" {
		return ""
	}
	rects := t.Layout(area)
	var cur layout.Rect
	found := false
	for _, pr := range rects {
		if pr.PaneID == active {
			cur = pr.Rect
			found = true
			break
		}
	}
	if !found {
		return active
	}

	var candidates []string
	switch dir {
	case NavLeft:
		col := cur.Col - 1
		if col < area.Col {
			col = area.Col + area.Width
		}
		candidates = layout.HitTestVerticalLine(t.Root, area, col, cur.Row, cur.Row+cur.Height-1)
	case NavRight:
		col := cur.Col + cur.Width + 1
		if col > area.Col+area.Width {
			col = area.Col
		}
		candidates = layout.HitTestVerticalLine(t.Root, area, col, cur.Row, cur.Row+cur.Height-1)
	case NavUp:
		row := cur.Row - 1
		if row < area.Row {
			row = area.Row + area.Height
		}
		candidates = layout.HitTestHorizontalLine(t.Root, area, row, cur.Col, cur.Col+cur.Width-1)
	case NavDown:
		row := cur.Row + cur.Height + 1
		if row > area.Row+area.Height {
			row = area.Row
		}
		candidates = layout.HitTestHorizontalLine(t.Root, area, row, cur.Col, cur.Col+cur.Width-1)
	}

	return t.mostRecent(candidates, active)
}

// mostRecent returns the candidate that appears earliest in the recency
// ring, excluding the active pane itself; falls back to the active pane
// if no other candidate exists.
func (t *Tab) mostRecent(candidates []string, active string) string {
	best := ""
	bestRank := len(t.recency) + 1
	for _, c := range candidates {
		if c == active {
			continue
		}
		rank := len(t.recency)
		for i, id := range t.recency {
			if id == c {
				rank = i
				break
			}
		}
		if rank < bestRank {
			bestRank = rank
			best = c
		}
	}
	if best == "" {
		return active
	}
	return best
}
