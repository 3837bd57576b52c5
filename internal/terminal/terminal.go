package terminal

import "sync"

// MouseProtocol selects which subset of mouse events are reported
// (spec.md §6 DEC private mode table: 9/1000/1002/1003).
type MouseProtocol int

const (
	MouseProtocolNone MouseProtocol = iota
	MouseProtocolX10                // press-only, buttons 0..2
	MouseProtocolVT200              // press + release
	MouseProtocolBtnEvent           // + motion while a button is held
	MouseProtocolAnyEvent           // + motion unconditionally
)

// MouseEncoding selects the wire encoding for mouse reports (spec.md §6:
// 1005/1006/1015/1016).
type MouseEncoding int

const (
	MouseEncodingX10 MouseEncoding = iota
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
	MouseEncodingSGRPixels
)

// Modes is the full set of DEC private mode bits plus the handful of
// ANSI (non-DEC) modes the terminal tracks, per spec.md §6's mode table.
type Modes struct {
	CursorKeysApp    bool // mode 1
	Allow80132       bool // mode 40 (DEC 40): guards mode 3
	Col132           bool // mode 3: true => 132 columns
	ReverseVideo     bool // mode 5
	OriginMode       bool // mode 6
	AutoWrap         bool // mode 7
	CursorVisible    bool // mode 25
	MouseProtocol    MouseProtocol
	MouseEncoding    MouseEncoding
	FocusEvents      bool // mode 1004
	AlternateScroll  bool // mode 1007
	BracketedPaste   bool // mode 2004
	SynchronizedOut  bool // mode 2026 ("disable_drawing")
	InBandSizeReport bool // mode 2048
}

// defaultModes mirrors a freshly-reset terminal: cursor visible, auto-wrap
// on, everything else off.
func defaultModes() Modes {
	return Modes{AutoWrap: true, CursorVisible: true}
}

// keyFlags is one entry of the Kitty keyboard protocol flags stack
// (spec.md §4.8 "Key reporting flags stack").
type keyFlags struct {
	Disambiguate               bool
	ReportEventTypes           bool
	ReportAlternateKeys        bool
	ReportAllKeysAsEscapeCodes bool
	ReportAssociatedText       bool
}

// maxKeyFlagsStack bounds the Kitty keyboard flags stack; the oldest
// entry is dropped once the stack would exceed it (spec.md §4.8).
const maxKeyFlagsStack = 100

// Terminal implements the full VT500-family dispatch surface on top of a
// Screen: primary/alternate screen buffers, mode bits, tab stops, and the
// key-reporting-flags stack (spec.md §4.8). It owns the mutex protecting
// every Screen/Terminal field a Pane's reader and renderer contend on
// (spec.md §9: "C7/C8 — per-pane mutex guarding the active Screen").
type Terminal struct {
	mu sync.Mutex

	primary     *Screen
	alternate   *Screen
	usingAlt    bool
	savedAltCur CursorState

	modes Modes

	tabStops map[int]bool

	keyFlagsStack []keyFlags

	parser *Parser

	// Title is the window/tab title set by OSC 0/2.
	Title string

	// Commands tracks OSC 133 semantic-prompt markers A/B/C/D.
	Commands []PromptMark

	// Outgoing is appended to whenever a dispatch wants to write bytes
	// back to the pseudo-terminal (replies to DA/DSR/DECRQM/DECRQSS/
	// XTGETTCAP/Kitty `?u`). OSC 52 requests go to PendingClipboard instead.
	Outgoing []byte

	cursorStyleFromHost bool

	// lastPrintable is the most recent EventPrintable code point, used by
	// REP (CSI b) to repeat it (spec.md §4.8).
	lastPrintable rune

	// PendingClipboard accumulates OSC 52 requests for the Pane's host to
	// act on; the core cannot touch a real clipboard itself.
	PendingClipboard []ClipboardWrite
}

// PromptMark records one OSC 133 semantic-prompt marker.
type PromptMark struct {
	Kind byte // 'A','B','C','D'
	Row  int
}

// NewTerminal creates a Terminal with a width×height primary screen.
func NewTerminal(width, height int) *Terminal {
	t := &Terminal{
		primary:  NewScreen(width, height),
		modes:    defaultModes(),
		tabStops: defaultTabStops(width),
		parser:   NewParser(ModeApplication),
	}
	return t
}

func defaultTabStops(width int) map[int]bool {
	stops := make(map[int]bool)
	for c := 8; c < width; c += 8 {
		stops[c] = true
	}
	return stops
}

// Modes returns a copy of the terminal's current DEC private mode bits,
// for a Pane to consult when it encodes a key/mouse/focus/paste event
// (spec.md §4.10: "encodes per C9 using the terminal's current modes").
// Callers must hold the Terminal lock, or accept a racy read for modes
// another goroutine may be updating concurrently.
func (t *Terminal) Modes() Modes {
	return t.modes
}

// KittyKeyFlags returns the top of the Kitty keyboard protocol flags
// stack as the plain struct events.KittyFlags mirrors field-for-field.
func (t *Terminal) KittyKeyFlags() (disambiguate, reportEventTypes, reportAlternateKeys, reportAllKeysAsEscapeCodes, reportAssociatedText bool) {
	f := t.currentKeyFlags()
	return f.Disambiguate, f.ReportEventTypes, f.ReportAlternateKeys, f.ReportAllKeysAsEscapeCodes, f.ReportAssociatedText
}

// Active returns the currently-displayed screen (primary or alternate).
func (t *Terminal) Active() *Screen {
	if t.usingAlt {
		return t.alternate
	}
	return t.primary
}

// Lock/Unlock expose the terminal's mutex to callers (Pane's reader and
// the renderer) that need to hold it across a batch of operations.
func (t *Terminal) Lock()   { t.mu.Lock() }
func (t *Terminal) Unlock() { t.mu.Unlock() }

// Stats reports the running health counters a Pane polls to decide
// whether to emit a Warn-level log line: malformed sequences dropped by
// the parser, and cells that fell back to id 0 because their screen's
// id map was full (spec.md §4.5/§4.2 edge cases).
func (t *Terminal) Stats() (malformed, idExhaustions int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.parser.MalformedCount(), t.Active().IDExhaustions()
}

// Write feeds raw child-process bytes through the codepoint decoder and
// the application-mode parser, dispatching each resulting event. This is
// the C1 -> C2(application) -> C8 leg of the data flow in spec.md §3.4.
func (t *Terminal) Write(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	runes := DecodeAll(data)
	var events []ParserEvent
	for _, r := range runes {
		events = t.parser.FeedCodePoint(r, events)
	}
	for _, ev := range events {
		t.dispatch(ev)
	}
}

func (t *Terminal) dispatch(ev ParserEvent) {
	switch ev.Kind {
	case EventPrintable:
		t.lastPrintable = ev.CodePoint
		t.Active().PutCodePoint([]rune{ev.CodePoint})
	case EventControl:
		t.dispatchControl(byte(ev.CodePoint))
	case EventEscape:
		t.dispatchEscape(ev)
	case EventCSI:
		t.dispatchCSI(ev)
	case EventDCS:
		t.dispatchDCS(ev)
	case EventOSC:
		t.dispatchOSC(ev)
	case EventAPC:
		// APC payloads (e.g. some Kitty graphics escapes) are accepted
		// and ignored; no handler is specified by spec.md §4.8.
	}
}

// dispatchControl handles the C0 control codes relevant outside of any
// escape sequence: BS, HT, LF/VT/FF, CR. Others are accepted and ignored
// (spec.md §7 error kind 3).
func (t *Terminal) dispatchControl(b byte) {
	s := t.Active()
	switch b {
	case '\b':
		s.SetCursorCol(s.Cursor.Col - 1)
	case '\t':
		s.SetCursorCol(t.nextTabStop(s.Cursor.Col))
	case '\n', '\v', '\f':
		s.advanceRowWithScroll()
		s.SetCursorCol(0)
	case '\r':
		s.SetCursorCol(0)
	case 0x07: // BEL: no visible effect in the core; front-end may flash.
	}
}

func (t *Terminal) nextTabStop(col int) int {
	s := t.Active()
	for c := col + 1; c < s.Width; c++ {
		if t.tabStops[c] {
			return c
		}
	}
	return s.Width - 1
}
