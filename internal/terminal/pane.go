// Package terminal provides the VT/ANSI escape-sequence parser, the
// terminal screen emulator it drives, and the pseudo-terminal-backed Pane
// that ties a child process to a Terminal.
//
// Pane is cross-platform: it uses github.com/aymanbagabas/go-pty, which
// wraps Unix PTYs and Windows ConPTY behind a single interface, so the
// same binary works on Linux, macOS, and Windows.
package terminal

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	gopty "github.com/aymanbagabas/go-pty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patrick-goecommerce/ttx/internal/events"
)

// PaneStatus mirrors a pane's process lifecycle.
type PaneStatus int

const (
	PaneRunning PaneStatus = iota
	PaneExited
	PaneError
)

// Pane wraps a pseudo-terminal-backed child process and the Terminal it
// drives (spec.md §4.10 C10). create() opens a pseudo-terminal
// controller, fork-execs the command with the subordinate tty as
// stdin/stdout/stderr, and starts a reader goroutine (read(pty) -> C1 ->
// C2 -> C8, emitting did_update on non-empty batches) and a waiter
// goroutine (blocks on process exit, emits did_exit).
type Pane struct {
	mu sync.Mutex

	ID       string
	Terminal *Terminal
	Status   PaneStatus
	Title    string

	pty gopty.Pty
	cmd *gopty.Cmd

	done chan struct{}

	// UpdateCh receives a signal each time new data is written to the
	// Terminal. The render loop selects on this to know when to repaint.
	UpdateCh chan struct{}

	ExitCh chan struct{}

	ExitCode int

	LastOutputAt time.Time
	Activity     ActivityState

	// log is bound with pane_id at creation and, once the owning tab/
	// session is known, session_id too (see BindSession). readLoop uses
	// it to surface the health counters Terminal.Stats tracks.
	log zerolog.Logger

	lastMalformed    int
	lastIDExhaustion int
}

// NewPane creates a Pane with the given screen dimensions but does not
// start any process yet. Call Start to spawn the child.
func NewPane(id string, width, height int) *Pane {
	return &Pane{
		ID:       id,
		Terminal: NewTerminal(width, height),
		Status:   PaneRunning,
		UpdateCh: make(chan struct{}, 1),
		ExitCh:   make(chan struct{}),
		done:     make(chan struct{}),
		log:      log.With().Str("pane_id", id).Logger(),
	}
}

// BindSession rebinds the pane's logger with a session_id field, once the
// tab/session that owns this pane is known.
func (p *Pane) BindSession(sessionID string) {
	p.log = p.log.With().Str("session_id", sessionID).Logger()
}

// Start launches the given command inside a new PTY. argv is the
// command + arguments; dir is the working directory; env holds
// additional environment variables appended to the current process's.
func (p *Pane) Start(argv []string, dir string, env []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(argv) == 0 {
		argv = defaultShell()
	}

	fullEnv := append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
	)
	fullEnv = append(fullEnv, env...)

	width, height := p.Terminal.Active().Width, p.Terminal.Active().Height

	pt, err := gopty.New()
	if err != nil {
		p.Status = PaneError
		p.log.Error().Err(err).Msg("failed to open pseudo-terminal")
		return err
	}
	if err := pt.Resize(width, height); err != nil {
		pt.Close()
		p.Status = PaneError
		p.log.Error().Err(err).Msg("failed to size pseudo-terminal")
		return err
	}

	cmd := pt.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = fullEnv

	if err := cmd.Start(); err != nil {
		pt.Close()
		p.Status = PaneError
		p.log.Error().Err(err).Str("argv", strings.Join(argv, " ")).Msg("failed to spawn pane process")
		return err
	}

	p.pty = pt
	p.cmd = cmd
	p.log.Info().Str("argv", strings.Join(argv, " ")).Str("dir", dir).Msg("pane started")

	go p.readLoop()
	go p.waitLoop()

	return nil
}

// readLoop loops read(pty) -> C1/C2 -> C8, under the Terminal's own
// mutex (acquired inside Terminal.Write), emitting a non-blocking signal
// on UpdateCh for each non-empty batch (spec.md §4.10).
func (p *Pane) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := p.pty.Read(buf)
		if n > 0 {
			p.Terminal.Write(buf[:n])
			p.flushOutgoing()
			p.logHealthCounters()

			p.mu.Lock()
			if p.Terminal.Title != "" {
				p.Title = p.Terminal.Title
			}
			p.LastOutputAt = time.Now()
			p.Activity = ActivityActive
			p.mu.Unlock()

			select {
			case p.UpdateCh <- struct{}{}:
			default:
			}
		}
		if err != nil {
			break
		}
	}
}

// logHealthCounters Warn-logs whenever the terminal's malformed-sequence
// or id-map-exhaustion counters have advanced since the last check.
func (p *Pane) logHealthCounters() {
	malformed, exhaustions := p.Terminal.Stats()
	if malformed != p.lastMalformed {
		p.log.Warn().Int("count", malformed).Msg("malformed escape sequences discarded")
		p.lastMalformed = malformed
	}
	if exhaustions != p.lastIDExhaustion {
		p.log.Warn().Int("count", exhaustions).Msg("id map exhausted, cell fell back to default id")
		p.lastIDExhaustion = exhaustions
	}
}

// flushOutgoing writes any bytes the last dispatch queued for the
// pseudo-terminal (DA/DSR/DECRQM/DECRQSS/XTGETTCAP/Kitty `?u` replies).
func (p *Pane) flushOutgoing() {
	p.Terminal.Lock()
	out := p.Terminal.Outgoing
	p.Terminal.Outgoing = nil
	p.Terminal.Unlock()
	if len(out) > 0 && p.pty != nil {
		p.pty.Write(out)
	}
}

// waitLoop blocks on process exit, sets done, and closes ExitCh
// (spec.md §4.10 "waiter").
func (p *Pane) waitLoop() {
	err := p.cmd.Wait()
	p.mu.Lock()
	if err != nil {
		if p.cmd.ProcessState != nil {
			p.ExitCode = p.cmd.ProcessState.ExitCode()
		} else {
			p.ExitCode = 1
		}
	}
	p.Status = PaneExited
	p.mu.Unlock()
	p.log.Info().Int("exit_code", p.ExitCode).Msg("pane exited")
	close(p.done)
	close(p.ExitCh)
}

// Write sends raw bytes to the pty (keyboard input already encoded by
// C9, or a direct write for tests).
func (p *Pane) Write(b []byte) (int, error) {
	p.mu.Lock()
	pt := p.pty
	p.mu.Unlock()
	if pt == nil {
		return 0, io.ErrClosedPipe
	}
	return pt.Write(b)
}

// Resize updates the Terminal and tty window size; on shrink the cursor
// is clamped by Screen.Resize (spec.md §4.10).
func (p *Pane) Resize(width, height int) {
	p.Terminal.Lock()
	clamped := p.Terminal.Active().Resize(width, height)
	p.Terminal.Unlock()
	if clamped {
		p.log.Warn().Int("width", width).Int("height", height).Msg("cursor clamped by resize")
	}

	p.mu.Lock()
	pt := p.pty
	p.mu.Unlock()
	if pt != nil {
		_ = pt.Resize(width, height)
	}
}

// Close kills the child process (no SIGHUP is sent first), closes the
// pty, and waits until the waiter goroutine has seen the exit. The reader
// goroutine is not waited for.
func (p *Pane) Close() {
	p.mu.Lock()
	cmd := p.cmd
	pt := p.pty
	p.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if pt != nil {
		pt.Close()
	}
	<-p.done
}

// Done returns a channel closed when the child process exits.
func (p *Pane) Done() <-chan struct{} {
	return p.done
}

// IsRunning reports whether the child process is still alive.
func (p *Pane) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Status == PaneRunning
}

// ResetActivity sets the activity state back to Idle.
func (p *Pane) ResetActivity() {
	p.mu.Lock()
	p.Activity = ActivityIdle
	p.mu.Unlock()
}

// Event encodes a key, mouse, focus, or paste event per the pane's
// terminal's current modes (spec.md §4.10) and writes the result to the
// pty. A wheel event with no mouse protocol active, arriving while the
// pane is on its alternate screen with AlternateScroll mode set, is
// synthesized as an arrow-key press instead (spec.md §4.9).
func (p *Pane) Event(ev any) {
	p.Terminal.Lock()
	modes := p.Terminal.Modes()
	disambiguate, reportEventTypes, reportAlternateKeys, reportAllKeys, reportText := p.Terminal.KittyKeyFlags()
	usingAlt := p.Terminal.usingAlt
	p.Terminal.Unlock()

	flags := events.KittyFlags{
		Disambiguate:               disambiguate,
		ReportEventTypes:           reportEventTypes,
		ReportAlternateKeys:        reportAlternateKeys,
		ReportAllKeysAsEscapeCodes: reportAllKeys,
		ReportAssociatedText:       reportText,
	}

	switch e := ev.(type) {
	case events.KeyEvent:
		p.Write(events.EncodeKey(e, flags, modes.CursorKeysApp))
	case events.MouseEvent:
		proto, enc := translateMouseModes(modes)
		if proto == events.MouseProtocolNone && usingAlt && modes.AlternateScroll &&
			(e.Button == events.ButtonWheelUp || e.Button == events.ButtonWheelDown) {
			p.Write(wheelAsArrow(e.Button, modes.CursorKeysApp))
			return
		}
		p.Write(events.EncodeMouse(e, proto, enc))
	case events.FocusEvent:
		p.Write(events.EncodeFocus(bool(e), modes.FocusEvents))
	case events.PasteText:
		p.Write(events.EncodePaste(string(e), modes.BracketedPaste))
	}
}

// wheelAsArrow synthesizes the arrow-key bytes a wheel event becomes
// when no mouse protocol is active but AlternateScroll mode asks for it
// (spec.md §4.9).
func wheelAsArrow(b events.MouseButton, cursorKeysApp bool) []byte {
	name := events.KeyDown
	if b == events.ButtonWheelUp {
		name = events.KeyUp
	}
	return events.EncodeKey(events.KeyEvent{Name: name}, events.KittyFlags{}, cursorKeysApp)
}

// translateMouseModes maps the Terminal's internal mouse mode bits to
// the events package's plain protocol/encoding enums.
func translateMouseModes(m Modes) (events.MouseProtocol, events.MouseEncoding) {
	var proto events.MouseProtocol
	switch m.MouseProtocol {
	case MouseProtocolX10:
		proto = events.MouseProtocolX10
	case MouseProtocolVT200:
		proto = events.MouseProtocolVT200
	case MouseProtocolBtnEvent:
		proto = events.MouseProtocolBtnEvent
	case MouseProtocolAnyEvent:
		proto = events.MouseProtocolAnyEvent
	default:
		proto = events.MouseProtocolNone
	}
	var enc events.MouseEncoding
	switch m.MouseEncoding {
	case MouseEncodingUTF8:
		enc = events.MouseEncodingUTF8
	case MouseEncodingSGR:
		enc = events.MouseEncodingSGR
	case MouseEncodingURXVT:
		enc = events.MouseEncodingURXVT
	case MouseEncodingSGRPixels:
		enc = events.MouseEncodingSGRPixels
	default:
		enc = events.MouseEncodingX10
	}
	return proto, enc
}

// EnableKittyKeyboard sends the Kitty keyboard protocol enable sequence
// (CSI > 1 u) to the pty, so applications inside it know modified keys
// will be reported as distinct CSI u escape sequences.
func (p *Pane) EnableKittyKeyboard() {
	p.Write([]byte("\x1b[>1u"))
}

// DisableKittyKeyboard pops the Kitty keyboard protocol flags (CSI < 1 u).
func (p *Pane) DisableKittyKeyboard() {
	p.Write([]byte("\x1b[<1u"))
}

// defaultShell returns the default shell command for the current OS.
func defaultShell() []string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return []string{comspec}
		}
		return []string{"cmd.exe"}
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return []string{shell}
	}
	return []string{"/bin/bash"}
}
