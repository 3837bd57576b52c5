package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/patrick-goecommerce/ttx/internal/terminal"
)

// PaneMode describes what kind of process a pane is running.
type PaneMode int

const (
	PaneModeShell   PaneMode = iota // default shell
	PaneModeCommand                 // explicit argv given at launch time
)

// PaneInfo holds the display metadata for a single terminal pane.
type PaneInfo struct {
	Session *terminal.Pane
	Name    string   // user-assigned name
	Mode    PaneMode // what was launched
	Command string   // argv[0] label for PaneModeCommand (empty for shell)
	Branch  string   // git branch (updated periodically)
	Focused bool

	// Flash effect: the pane border flashes briefly on a bell (BEL) so an
	// unfocused pane that just rang the bell is easy to spot.
	FlashUntil time.Time      // border flashes until this time
	FlashColor lipgloss.Color // color to flash
}

// RenderPane draws a single terminal pane with its border, title bar and
// terminal content, sized to fit the given Rect.
func RenderPane(p PaneInfo, rect Rect) string {
	if rect.Width < 4 || rect.Height < 3 {
		return ""
	}

	// Choose border style based on focus and flash state
	border := PaneBorderUnfocused
	if p.Focused {
		border = PaneBorderFocused
	}
	// Flash effect overrides border color
	if time.Now().Before(p.FlashUntil) {
		border = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.FlashColor)
	}

	// Build title line: name + mode indicator + status dot
	title := buildPaneTitle(p)

	// Inner dimensions (border takes 2 cols and 2 rows)
	innerW := rect.Width - 2
	innerH := rect.Height - 3 // -2 border, -1 title

	if innerW < 1 || innerH < 1 {
		return border.Width(rect.Width).Height(rect.Height).Render("")
	}

	// Render terminal content from the screen buffer
	content := renderScreenContent(p.Session, innerW, innerH)

	// Compose: title on top, content below
	titleLine := lipgloss.NewStyle().
		Width(innerW).
		MaxWidth(innerW).
		Render(title)

	body := titleLine + "\n" + content

	return border.
		Width(rect.Width).
		Height(rect.Height).
		Render(body)
}

// buildPaneTitle creates the title string shown at the top of a pane.
func buildPaneTitle(p PaneInfo) string {
	// Status indicator
	var statusDot string
	if p.Session != nil && p.Session.IsRunning() {
		statusDot = PaneStatusRunning.Render("●")
	} else {
		statusDot = PaneStatusExited.Render("●")
	}

	var modeLabel string
	switch p.Mode {
	case PaneModeCommand:
		modeLabel = " [" + p.Command + "]"
	default:
		modeLabel = " [Shell]"
	}

	name := p.Name
	if name == "" && p.Session != nil {
		name = fmt.Sprintf("Pane %s", p.Session.ID)
	}

	return statusDot + " " + PaneTitleStyle.Render(name+modeLabel)
}

// renderScreenContent extracts the visible portion of the terminal's active
// screen buffer (primary or alternate, per internal/terminal.Terminal.Active)
// and returns it as a plain string, constrained to w×h.
func renderScreenContent(sess *terminal.Pane, w, h int) string {
	blank := strings.Repeat("\n", h-1)
	if sess == nil || sess.Terminal == nil {
		return blank
	}

	sess.Terminal.Lock()
	defer sess.Terminal.Unlock()

	screen := sess.Terminal.Active()
	if screen == nil {
		return blank
	}

	rows := screen.Height
	cols := screen.Width

	startRow := 0
	if rows > h {
		startRow = rows - h
	}
	endRow := startRow + h
	if endRow > rows {
		endRow = rows
	}

	endCol := cols
	if endCol > w {
		endCol = w
	}

	var b strings.Builder
	for row := startRow; row < endRow; row++ {
		if row > startRow {
			b.WriteByte('\n')
		}
		for col := 0; col < endCol; col++ {
			text := screen.CellText(row, col)
			if text == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(text)
		}
	}

	return b.String()
}
