package app

import (
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/patrick-goecommerce/ttx/internal/terminal"
	"github.com/patrick-goecommerce/ttx/internal/ui"
)

// ---------------------------------------------------------------------------
// Layout & resize
// ---------------------------------------------------------------------------

// resizeAllPanes recalculates dimensions for all panes in the active tab.
func (m *Model) resizeAllPanes() {
	tab := m.activeTab()
	if tab == nil {
		return
	}

	contentH := m.height - 2 // tab bar + footer
	contentW := m.width
	if m.sidebar.Visible {
		contentW -= m.sidebar.Width
	}
	if contentW < 10 {
		contentW = 10
	}
	if contentH < 3 {
		contentH = 3
	}

	// Zoom mode: give the focused pane the full content area
	if m.zoomed && tab.FocusIdx >= 0 && tab.FocusIdx < len(tab.Panes) {
		p := tab.Panes[tab.FocusIdx]
		innerW := contentW - 2
		innerH := contentH - 3
		if innerW < 1 {
			innerW = 1
		}
		if innerH < 1 {
			innerH = 1
		}
		if p.Session != nil {
			p.Session.Resize(innerW, innerH)
		}
		return
	}

	rects := ui.ComputeGrid(len(tab.Panes), contentW, contentH)
	for i, p := range tab.Panes {
		if i >= len(rects) {
			break
		}
		r := rects[i]
		// Inner size = rect minus border (2 cols, 2 rows) minus title (1 row)
		innerW := r.Width - 2
		innerH := r.Height - 3
		if innerW < 1 {
			innerW = 1
		}
		if innerH < 1 {
			innerH = 1
		}
		if p.Session != nil {
			p.Session.Resize(innerW, innerH)
		}
	}
}

// ---------------------------------------------------------------------------
// Git helpers
// ---------------------------------------------------------------------------

// refreshGitBranch updates the Branch field of the focused pane.
func (m *Model) refreshGitBranch() {
	tab := m.activeTab()
	if tab == nil || len(tab.Panes) == 0 {
		return
	}
	idx := tab.FocusIdx
	if idx < 0 || idx >= len(tab.Panes) {
		return
	}

	dir := tab.Tab.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}

	branch := gitBranch(dir)
	tab.Panes[idx].Branch = branch
}

// gitBranch returns the current git branch name for the given directory.
func gitBranch(dir string) string {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--abbrev-ref", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// checkSessionOutput is a no-op placeholder. In a more advanced version,
// this would read from session output channels. The tick-based re-render
// handles display updates.
func (m *Model) checkSessionOutput() {}

// ---------------------------------------------------------------------------
// Pane activity
// ---------------------------------------------------------------------------

// scanPaneActivity checks every pane's inferred activity state and flashes
// its border when the foreground process just finished or needs input
// (terminal.DetectActivity, spec.md §4.10's activity classifier).
func (m *Model) scanPaneActivity() {
	for ti := range m.tabs {
		for pi := range m.tabs[ti].Panes {
			p := &m.tabs[ti].Panes[pi]
			if p.Session == nil {
				continue
			}

			state := p.Session.DetectActivity()
			switch state {
			case terminal.ActivityDone:
				if time.Now().After(p.FlashUntil) {
					p.FlashUntil = time.Now().Add(3 * time.Second)
					p.FlashColor = ui.ColorSuccess
					p.Session.ResetActivity()
				}
			case terminal.ActivityNeedsInput:
				if time.Now().After(p.FlashUntil) {
					p.FlashUntil = time.Now().Add(5 * time.Second)
					p.FlashColor = ui.ColorWarning
					p.Session.ResetActivity()
				}
			}
		}
	}
}

// currentDir returns the working directory of the active tab.
func (m *Model) currentDir() string {
	tab := m.activeTab()
	if tab != nil && tab.Tab.Dir != "" {
		return tab.Tab.Dir
	}
	dir, _ := os.Getwd()
	return dir
}

// ---------------------------------------------------------------------------
// Footer
// ---------------------------------------------------------------------------

// footerData assembles the data needed to render the footer.
func (m *Model) footerData() ui.FooterData {
	d := ui.FooterData{
		TabCount:  len(m.tabs),
		TabIdx:    m.tabIdx,
		ThemeName: ui.ActiveTheme.Name,
		Zoomed:    m.zoomed,
	}

	tab := m.activeTab()
	if tab == nil {
		return d
	}

	d.PaneIdx = tab.FocusIdx
	if tab.FocusIdx >= 0 && tab.FocusIdx < len(tab.Panes) {
		p := tab.Panes[tab.FocusIdx]
		d.Branch = p.Branch
		d.PaneName = p.Name
		switch p.Mode {
		case ui.PaneModeCommand:
			d.Mode = p.Command
		default:
			d.Mode = "Shell"
		}
	}

	return d
}
