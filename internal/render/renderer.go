// Package render implements the double-buffered compositor of spec.md
// §4.14 (C14): desired vs. current screen diffing, synchronized-output
// wrapping, and the terminal setup/cleanup feature-flag sequences of
// spec.md §6. It is grounded on the teacher's bubbletea-driven render
// loop (internal/app/view.go composes lipgloss strings every tick); this
// package instead produces the literal escape-sequence bytes spec.md's
// host-tty wire format calls for, since C14 diffs cells directly rather
// than letting a terminal-rendering library re-draw the whole frame.
package render

import (
	"fmt"
	"strings"

	"github.com/patrick-goecommerce/ttx/internal/terminal"
)

// cellState is one desired or current grid position.
type cellState struct {
	text       string
	rendition  terminal.Rendition
	hyperlink  string
	hasLink    bool
	set        bool
}

// Cursor describes where the frame should leave the hardware cursor.
type Cursor struct {
	Row, Col int
	Hidden   bool
	Shape    terminal.CursorShape
}

// Renderer owns the double-buffered desired/current screen and renders
// frames as literal escape-sequence bytes (spec.md §4.14).
type Renderer struct {
	width, height int
	desired       []cellState
	current       []cellState
	sizeChanged   bool
}

// NewRenderer returns a Renderer with no buffer yet; call Start to size it.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Start marks size_changed and resets the desired-screen buffer to the
// new dimensions (spec.md §4.14).
func (r *Renderer) Start(width, height int) {
	if width != r.width || height != r.height {
		r.sizeChanged = true
		r.width, r.height = width, height
		r.current = make([]cellState, width*height)
	}
	r.desired = make([]cellState, width*height)
}

func (r *Renderer) index(row, col int) int { return row*r.width + col }

// PutText writes a run of cells starting at (row, col) within the bound
// rectangle {rowOffset, colOffset, width, height} a compositor assigns
// this pane (spec.md §4.14 put_text). Cells beyond the rectangle or the
// buffer are silently dropped.
func (r *Renderer) PutText(row, col int, text []rune, rendition terminal.Rendition, hyperlink string, hasLink bool, bound Rect) {
	for i, ch := range text {
		r.PutCell(row, col+i, string(ch), rendition, hyperlink, hasLink, bound)
	}
}

// Rect bounds a pane's drawable rectangle within the overall frame.
type Rect struct {
	RowOffset, ColOffset int
	Width, Height        int
}

func (b Rect) contains(row, col int) bool {
	return row >= b.RowOffset && row < b.RowOffset+b.Height &&
		col >= b.ColOffset && col < b.ColOffset+b.Width
}

// PutCell writes a single cell into the desired buffer (spec.md §4.14
// put_cell).
func (r *Renderer) PutCell(row, col int, text string, rendition terminal.Rendition, hyperlink string, hasLink bool, bound Rect) {
	if !bound.contains(row, col) || row < 0 || row >= r.height || col < 0 || col >= r.width {
		return
	}
	r.desired[r.index(row, col)] = cellState{text: text, rendition: rendition, hyperlink: hyperlink, hasLink: hasLink, set: true}
}

// ClearRow blanks every cell of row within bound (spec.md §4.14 clear_row).
func (r *Renderer) ClearRow(row int, bound Rect) {
	for col := bound.ColOffset; col < bound.ColOffset+bound.Width; col++ {
		r.PutCell(row, col, " ", terminal.DefaultRendition, "", false, bound)
	}
}

// DrawScreen copies every dirty cell of s into the desired buffer at the
// rectangle bound assigns it, clearing the screen's dirty bits as it
// goes (spec.md §4.10 draw(): "walks visible rows under the mutex and
// issues put_cell calls for any cell whose dirty bit is set").
func (r *Renderer) DrawScreen(s *terminal.Screen, bound Rect) {
	for row := 0; row < s.Height && row < bound.Height; row++ {
		for col := 0; col < s.Width && col < bound.Width; col++ {
			if !s.CellDirty(row, col) {
				continue
			}
			text := s.CellText(row, col)
			if text == "" {
				text = " "
			}
			rendition := s.CellRendition(row, col)
			link, hasLink := s.CellHyperlink(row, col)
			uri := ""
			if hasLink {
				uri = link.URI
			}
			r.PutCell(bound.RowOffset+row, bound.ColOffset+col, text, rendition, uri, hasLink, bound)
		}
	}
}

// Finish diffs desired vs. current row-by-row and returns the bytes to
// write to the host tty: CUP to the first changed cell of each dirty
// run, SGR/hyperlink only on change, the run's text, then the cursor
// move/style at the end (spec.md §4.14 finish()). The whole frame is
// wrapped in DECSET/DECRST 2026 so the host terminal presents it
// atomically.
func (r *Renderer) Finish(cursor Cursor) []byte {
	var b strings.Builder
	b.WriteString("\x1b[?2026h")

	lastRendition := terminal.DefaultRendition
	lastHyperlink := ""
	havePos := false
	lastRow, lastCol := -1, -1

	for row := 0; row < r.height; row++ {
		col := 0
		for col < r.width {
			idx := r.index(row, col)
			if r.desired[idx] == r.current[idx] {
				col++
				continue
			}
			// start of a dirty run: emit CUP once, then stream cells until
			// one matches current again.
			if !havePos || lastRow != row || lastCol != col {
				fmt.Fprintf(&b, "\x1b[%d;%dH", row+1, col+1)
			}
			for col < r.width {
				idx = r.index(row, col)
				if r.desired[idx] == r.current[idx] {
					break
				}
				cs := r.desired[idx]
				if cs.rendition != lastRendition {
					b.WriteString("\x1b[" + cs.rendition.AsCSIParams() + "m")
					lastRendition = cs.rendition
				}
				if cs.hasLink != (lastHyperlink != "") || (cs.hasLink && cs.hyperlink != lastHyperlink) {
					if cs.hasLink {
						b.WriteString("\x1b]8;;" + cs.hyperlink + "\x1b\\")
						lastHyperlink = cs.hyperlink
					} else {
						b.WriteString("\x1b]8;;\x1b\\")
						lastHyperlink = ""
					}
				}
				if cs.text == "" {
					b.WriteByte(' ')
				} else {
					b.WriteString(cs.text)
				}
				r.current[idx] = cs
				col++
			}
			havePos = true
			lastRow, lastCol = row, col
		}
	}

	fmt.Fprintf(&b, "\x1b[%d;%dH", cursor.Row+1, cursor.Col+1)
	if cursor.Hidden {
		b.WriteString("\x1b[?25l")
	} else {
		b.WriteString("\x1b[?25h")
		fmt.Fprintf(&b, "\x1b[%d q", cursor.Shape)
	}

	b.WriteString("\x1b[?2026l")
	r.sizeChanged = false
	return []byte(b.String())
}

// SetupFeatures selects which one-time mode sequences Setup/Cleanup emit
// (spec.md §4.14: "setup(features) emits the one-time mode set").
type SetupFeatures struct {
	AltScreen      bool
	DisableAutowrap bool
	KittyKeyFlags  bool
	MouseSGR       bool
	MouseAnyEvent  bool
	FocusEvents    bool
	BracketedPaste bool
}

// DefaultSetupFeatures enables every feature spec.md §6 lists for
// startup.
func DefaultSetupFeatures() SetupFeatures {
	return SetupFeatures{
		AltScreen:       true,
		DisableAutowrap: true,
		KittyKeyFlags:   true,
		MouseSGR:        true,
		MouseAnyEvent:   true,
		FocusEvents:     true,
		BracketedPaste:  true,
	}
}

// Setup returns the one-time mode-set sequence, in the order spec.md §6
// mandates: `?1049h`, `?7l`, `>31u`, `?1003h`, `?1006h`, `?1004h`, `?2004h`.
func Setup(f SetupFeatures) []byte {
	var b strings.Builder
	if f.AltScreen {
		b.WriteString("\x1b[?1049h")
	}
	if f.DisableAutowrap {
		b.WriteString("\x1b[?7l")
	}
	if f.KittyKeyFlags {
		b.WriteString("\x1b[>31u")
	}
	if f.MouseAnyEvent {
		b.WriteString("\x1b[?1003h")
	}
	if f.MouseSGR {
		b.WriteString("\x1b[?1006h")
	}
	if f.FocusEvents {
		b.WriteString("\x1b[?1004h")
	}
	if f.BracketedPaste {
		b.WriteString("\x1b[?2004h")
	}
	return []byte(b.String())
}

// Cleanup reverses Setup's sequence in reverse order plus the
// key-reporting-flags pop-all (spec.md §6).
func Cleanup(f SetupFeatures) []byte {
	var b strings.Builder
	if f.BracketedPaste {
		b.WriteString("\x1b[?2004l")
	}
	if f.FocusEvents {
		b.WriteString("\x1b[?1004l")
	}
	if f.MouseSGR {
		b.WriteString("\x1b[?1006l")
	}
	if f.MouseAnyEvent {
		b.WriteString("\x1b[?1003l")
	}
	if f.KittyKeyFlags {
		b.WriteString("\x1b[<u")
	}
	if f.DisableAutowrap {
		b.WriteString("\x1b[?7h")
	}
	if f.AltScreen {
		b.WriteString("\x1b[?1049l")
	}
	return []byte(b.String())
}
