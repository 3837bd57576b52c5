package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/patrick-goecommerce/ttx/internal/config"
)

// LaunchChoice describes what the user selected in the new-pane dialog.
type LaunchChoice struct {
	Type LaunchType
	Argv []string // explicit command, nil for the default shell
}

// LaunchType enumerates how the new pane should be placed.
type LaunchType int

const (
	LaunchSplitRight LaunchType = iota // split the focused pane, new pane to the right
	LaunchSplitDown                    // split the focused pane, new pane below
	LaunchNewTab                       // open the pane in a brand new tab
	LaunchCancel                       // user cancelled
)

// DialogState describes the current step in the new-pane dialog flow.
type DialogState int

const (
	DialogStepPlacement DialogState = iota // choose split-right / split-down / new tab
)

// Dialog is the modal dialog that appears when creating a new pane.
type Dialog struct {
	Visible bool
	Step    DialogState
	Options []string
	Cursor  int
	Config  config.Config
	Choice  LaunchChoice
}

// NewDialog creates a dialog pre-populated with config.
func NewDialog(cfg config.Config) Dialog {
	return Dialog{
		Config: cfg,
		Step:   DialogStepPlacement,
		Options: []string{
			"Split right",
			"Split down",
			"New tab",
		},
	}
}

// Open makes the dialog visible and resets state.
func (d *Dialog) Open() {
	d.Visible = true
	d.Step = DialogStepPlacement
	d.Cursor = 0
	d.Options = []string{
		"Split right",
		"Split down",
		"New tab",
	}
	d.Choice = LaunchChoice{}
}

// Close hides the dialog.
func (d *Dialog) Close() {
	d.Visible = false
}

// MoveUp moves the cursor up in the current option list.
func (d *Dialog) MoveUp() {
	if d.Cursor > 0 {
		d.Cursor--
	}
}

// MoveDown moves the cursor down in the current option list.
func (d *Dialog) MoveDown() {
	if d.Cursor < len(d.Options)-1 {
		d.Cursor++
	}
}

// Select confirms the current cursor choice.
// Returns true when the dialog flow is complete (Choice is populated).
func (d *Dialog) Select() bool {
	switch d.Cursor {
	case 0:
		d.Choice = LaunchChoice{Type: LaunchSplitRight}
	case 1:
		d.Choice = LaunchChoice{Type: LaunchSplitDown}
	case 2:
		d.Choice = LaunchChoice{Type: LaunchNewTab}
	}
	d.Close()
	return true
}

// Render draws the dialog box.
func (d *Dialog) Render(screenW, screenH int) string {
	if !d.Visible {
		return ""
	}

	var b strings.Builder

	b.WriteString(DialogTitle.Render("New Pane"))
	b.WriteByte('\n')
	b.WriteString(DialogHint.Render("Where should it go?"))
	b.WriteByte('\n')
	b.WriteByte('\n')

	for i, opt := range d.Options {
		prefix := "  "
		style := DialogOption
		if i == d.Cursor {
			prefix = "▸ "
			style = DialogOptionSelected
		}
		b.WriteString(style.Render(prefix + opt))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(DialogHint.Render("↑/↓: navigate  Enter: select  Esc: cancel"))

	box := DialogOverlay.Render(b.String())

	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}
