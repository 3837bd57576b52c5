// Package app contains the main Bubbletea model that orchestrates
// every component of the ttx TUI chrome (tabs, panes, sidebar, dialog)
// on top of the internal/terminal and internal/render core.
package app

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/patrick-goecommerce/ttx/internal/config"
	"github.com/patrick-goecommerce/ttx/internal/ui"
)

// ---------------------------------------------------------------------------
// Bubbletea messages
// ---------------------------------------------------------------------------

// termOutputMsg is sent when a terminal session produces new output.
type termOutputMsg struct {
	sessionID int
}

// termExitMsg is sent when a terminal session's process exits.
type termExitMsg struct {
	sessionID int
}

// tickMsg fires periodically to refresh git branch info and detect output.
type tickMsg time.Time

// ---------------------------------------------------------------------------
// Per-tab state
// ---------------------------------------------------------------------------

// tabState holds all panes belonging to one tab.
type tabState struct {
	Tab        ui.Tab
	Panes      []ui.PaneInfo
	FocusIdx   int
	NextPaneID int // monotonically increasing pane ID counter
}

// ---------------------------------------------------------------------------
// Model – the top-level Bubbletea model
// ---------------------------------------------------------------------------

// Model is the root application model.
type Model struct {
	cfg    config.Config
	tabs   []tabState
	tabIdx int // active tab

	width  int
	height int

	dialog  ui.Dialog
	sidebar ui.Sidebar

	showHelp      bool
	quitting      bool
	lastCtrlC     time.Time // for double-Ctrl+C quit
	nextSessionID int

	// zoomed: when true, the focused pane fills the whole content area
	// instead of sharing it with the rest of the grid. Toggled with Ctrl+Z.
	zoomed bool

	// passthrough: when true, all key events go to the focused terminal
	// instead of being handled by the app. Toggle with Ctrl+G (escape hatch).
	passthrough bool

	// sidebarFocused: when true, arrow keys and Enter navigate the sidebar
	// instead of panes. Toggled with Ctrl+F.
	sidebarFocused bool
}

// New creates the initial Model, restoring a saved session if one exists.
func New(cfg config.Config) Model {
	dir := cfg.DefaultDir
	if dir == "" {
		dir, _ = os.Getwd()
	}

	m := Model{
		cfg:     cfg,
		dialog:  ui.NewDialog(cfg),
		sidebar: ui.NewSidebar(dir, cfg.SidebarWidth),
		tabIdx:  -1,
	}

	if !m.restoreSession(dir) {
		m.addTab("Workspace", dir)
	}

	return m
}

// Init is the Bubbletea initialiser. We start a periodic tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd())
}

// tickCmd returns a command that fires a tickMsg every 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update processes incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeAllPanes()
		return m, nil

	case tickMsg:
		// Refresh git branch for the focused pane
		m.refreshGitBranch()
		// Check for new output from all sessions
		m.checkSessionOutput()
		// Flash panes that just finished or need input
		m.scanPaneActivity()
		return m, tickCmd()

	case termOutputMsg:
		// Handled by tick now; kept for future direct signalling
		return m, nil

	case termExitMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// Future: mouse support for clicking on tabs/panes
		return m, nil
	}

	return m, nil
}
