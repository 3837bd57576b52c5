package terminal

import (
	"regexp"
	"strings"
	"time"
)

// ActivityState describes what a pane's foreground process is currently
// doing, inferred from recent output and screen content. This is a
// convenience classifier layered on top of the core emulator, not part
// of spec.md's VT semantics: it looks for shell-prompt patterns and
// common confirmation prompts so any interactive program's pane can be
// flashed when it finishes or needs input, without scraping any one
// program's specific output format.
type ActivityState int

const (
	ActivityIdle       ActivityState = iota // no recent output
	ActivityActive                          // currently producing output
	ActivityDone                            // just finished (prompt returned)
	ActivityNeedsInput                      // waiting for user confirmation
)

// idleThreshold is how long output must have stopped before the pane's
// screen content is reclassified.
const idleThreshold = 1500 * time.Millisecond

// DetectActivity checks the pane's screen content for prompt/input
// patterns and updates p.Activity. Call this periodically (e.g. from a
// render tick).
func (p *Pane) DetectActivity() ActivityState {
	p.mu.Lock()
	lastOutput := p.LastOutputAt
	current := p.Activity
	p.mu.Unlock()

	if lastOutput.IsZero() {
		return current
	}
	if time.Since(lastOutput) < idleThreshold {
		return current
	}

	newState := p.classifyScreenState()
	p.mu.Lock()
	p.Activity = newState
	p.mu.Unlock()
	return newState
}

// classifyScreenState examines the last rows of the active screen to
// determine whether the foreground process is done or waiting for input.
func (p *Pane) classifyScreenState() ActivityState {
	s := p.Terminal.Active()
	rows := s.Height
	scanFrom := rows - 15
	if scanFrom < 0 {
		scanFrom = 0
	}
	for r := rows - 1; r >= scanFrom; r-- {
		line := s.PlainTextRow(r)
		if line == "" {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if needsInputPattern.MatchString(trimmed) {
			return ActivityNeedsInput
		}
		if promptPattern.MatchString(trimmed) {
			return ActivityDone
		}
	}
	return ActivityIdle
}

var (
	// Needs user input: permission prompts, Y/n confirmations, etc.
	needsInputPattern = regexp.MustCompile(`(?i)` +
		`\[Y/n\]|\[y/N\]|\(y/n\)|` +
		`(?:proceed|continue|confirm|approve|allow)\s*\?|` +
		`permission|Do you want to|Would you like to|` +
		`Press Enter to|waiting for|Waiting for`)

	// Prompt returned: the foreground process has handed the terminal
	// back. Matches common shell prompt characters and Windows cmd.exe's
	// "C:\path>" form.
	promptPattern = regexp.MustCompile(
		`[❯›»]\s*$|` +
			`[>$%#]\s*$|` +
			`^[A-Za-z]:\\[^>]*>\s*$`)
)
