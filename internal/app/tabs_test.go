package app

import (
	"testing"

	"github.com/patrick-goecommerce/ttx/internal/config"
	"github.com/patrick-goecommerce/ttx/internal/ui"
)

func TestPaneName(t *testing.T) {
	if got := paneName(ui.PaneModeShell, "", 3); got != "Shell #3" {
		t.Errorf("paneName(shell) = %q, want 'Shell #3'", got)
	}
	if got := paneName(ui.PaneModeCommand, "htop", 1); got != "htop #1" {
		t.Errorf("paneName(command) = %q, want 'htop #1'", got)
	}
	if got := paneName(ui.PaneModeCommand, "", 2); got != "Shell #2" {
		t.Errorf("paneName(command, no argv) = %q, want fallback to Shell #2", got)
	}
}

func TestAbs(t *testing.T) {
	if abs(-5) != 5 {
		t.Error("abs(-5) should be 5")
	}
	if abs(5) != 5 {
		t.Error("abs(5) should be 5")
	}
	if abs(0) != 0 {
		t.Error("abs(0) should be 0")
	}
}

func TestAddTab_GeneratesDefaultName(t *testing.T) {
	m := Model{}
	m.addTab("", "/tmp")

	if len(m.tabs) != 1 {
		t.Fatalf("len(tabs) = %d, want 1", len(m.tabs))
	}
	if m.tabs[0].Tab.Name != "Tab 1" {
		t.Errorf("Tab.Name = %q, want 'Tab 1'", m.tabs[0].Tab.Name)
	}
	if m.tabIdx != 0 {
		t.Errorf("tabIdx = %d, want 0", m.tabIdx)
	}
}

func TestActiveTab_OutOfRangeReturnsNil(t *testing.T) {
	m := Model{tabIdx: -1}
	if m.activeTab() != nil {
		t.Error("activeTab() with tabIdx -1 should return nil")
	}
}

func TestCyclePaneFocus_WrapsAround(t *testing.T) {
	m := Model{}
	m.addTab("t", "/tmp")
	tab := m.activeTab()
	tab.Panes = []ui.PaneInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	tab.FocusIdx = 0

	m.cyclePaneFocus()
	if tab.FocusIdx != 1 {
		t.Errorf("FocusIdx = %d, want 1", tab.FocusIdx)
	}

	m.cyclePaneFocus()
	m.cyclePaneFocus()
	if tab.FocusIdx != 0 {
		t.Errorf("FocusIdx = %d, want wrapped to 0", tab.FocusIdx)
	}
}

func TestCloseCurrentTab_NeverClosesLastTab(t *testing.T) {
	m := Model{}
	m.addTab("only", "/tmp")
	m.closeCurrentTab()

	if len(m.tabs) != 1 {
		t.Errorf("len(tabs) = %d, want 1 (last tab must not close)", len(m.tabs))
	}
}

func TestLaunchPane_RespectsMaxPanesPerTab(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxPanesPerTab = 1
	m := Model{cfg: cfg, width: 80, height: 24}
	m.addTab("t", "/tmp")

	m.launchPane(ui.LaunchChoice{Type: ui.LaunchSplitRight})
	tab := m.activeTab()
	if len(tab.Panes) != 1 {
		t.Fatalf("len(Panes) = %d after first launch, want 1", len(tab.Panes))
	}
	t.Cleanup(func() { m.closeAllSessions() })

	m.launchPane(ui.LaunchChoice{Type: ui.LaunchSplitRight})
	if len(tab.Panes) != 1 {
		t.Errorf("launchPane exceeded MaxPanesPerTab: len(Panes) = %d, want 1", len(tab.Panes))
	}
}
