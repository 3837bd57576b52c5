package terminal

// ParserMode selects between the two grammars spec.md §4.2 describes:
// Application (child-output) parsing has no SS3 state; Input (host-tty)
// parsing adds it so ESC O <final> decodes as an SS3-encoded key.
type ParserMode int

const (
	ModeApplication ParserMode = iota
	ModeInput
)

type parserState int

const (
	stGround parserState = iota
	stEscape
	stEscapeIntermediate
	stCsiEntry
	stCsiParam
	stCsiIntermediate
	stCsiIgnore
	stDcsEntry
	stDcsParam
	stDcsIntermediate
	stDcsPassthrough
	stDcsIgnore
	stOscString
	stSosPmApcString
	stSs3
)

// Parser is the VT500-family DEC-ANSI escape-sequence state machine
// (spec.md §4.2). It consumes Unicode code points (typically the output
// of a CodepointDecoder) and produces ParserEvent values.
type Parser struct {
	mode  ParserMode
	state parserState

	intermediate []byte
	paramBytes   []byte
	data         []byte // DCS passthrough / OSC / APC payload
	dcsFinal     rune   // the byte that entered DCS passthrough, e.g. 'q' in "$q"

	pendingStringClose bool
	closingState       parserState

	// malformedCount tallies sequences dropped by entering one of the
	// *Ignore states or by falling off the grammar in the middle of an
	// escape/CSI introducer (spec.md §7 error kind 3: "malformed sequences
	// are discarded wholesale"), for a caller to log as a health signal.
	malformedCount int
}

// MalformedCount reports how many escape/CSI/DCS sequences this parser has
// discarded as malformed since it was created.
func (p *Parser) MalformedCount() int {
	return p.malformedCount
}

// NewParser creates a Parser in the given mode.
func NewParser(mode ParserMode) *Parser {
	return &Parser{mode: mode}
}

func isPrintable(cp rune) bool {
	return (cp >= 0x20 && cp < 0x7F) || cp >= 0xA0
}

func isExecutable(cp rune) bool {
	return (cp <= 0x17) || cp == 0x19 || (cp >= 0x1C && cp <= 0x1F)
}

func isParamByte(b byte) bool {
	return (b >= 0x30 && b <= 0x39) || b == 0x3B || b == 0x3A
}

func isIntermediateByte(b byte) bool {
	return b >= 0x20 && b <= 0x2F
}

// isMarkerByte matches the CSI private-marker bytes ('<','=','>','?',
// 0x3C-0x3F). ECMA-48 groups these with the parameter bytes, but the
// terminal dispatch tables of spec.md §4.8 key off them the same way they
// key off true intermediate bytes (e.g. "?" for DEC private mode sets,
// "?$" for DECRQM), so they are collected into the same intermediate
// buffer here.
func isMarkerByte(b byte) bool {
	return b >= 0x3C && b <= 0x3F
}

func isCsiTerminator(b byte) bool {
	return b >= 0x40 && b <= 0x7E
}

// Feed consumes one code point and appends any produced events to out,
// returning the extended slice.
func (p *Parser) Feed(cp rune, out []ParserEvent) []ParserEvent {
	// Universal transitions, honored from any state.
	if cp == 0x18 || cp == 0x1A {
		out = append(out, ParserEvent{Kind: EventControl, CodePoint: cp, WasInEscape: p.state != stGround})
		p.reset(stGround)
		return out
	}
	if cp == 0x1B {
		switch p.state {
		case stOscString, stDcsPassthrough, stSosPmApcString:
			// These string states may only be aborted by the universal
			// execute transitions above; a bare ESC here is the first
			// half of a candidate String Terminator (ESC \), handled by
			// FeedCodePoint rather than this lower-level method.
		default:
			p.reset(stEscape)
			return out
		}
	}

	switch p.state {
	case stGround:
		out = p.feedGround(cp, out)
	case stEscape:
		out = p.feedEscape(cp, out)
	case stEscapeIntermediate:
		out = p.feedEscapeIntermediate(cp, out)
	case stCsiEntry, stCsiParam, stCsiIntermediate, stCsiIgnore:
		out = p.feedCsi(cp, out)
	case stDcsEntry, stDcsParam, stDcsIntermediate:
		out = p.feedDcsHead(cp, out)
	case stDcsPassthrough:
		out = p.feedDcsPassthrough(cp, out)
	case stDcsIgnore:
		if cp == 0x9C {
			p.reset(stGround)
		}
	case stOscString:
		out = p.feedOsc(cp, out)
	case stSosPmApcString:
		out = p.feedApc(cp, out)
	case stSs3:
		out = append(out, ParserEvent{Kind: EventSS3, CodePoint: cp})
		p.reset(stGround)
	}
	return out
}

func (p *Parser) reset(to parserState) {
	p.state = to
	p.intermediate = p.intermediate[:0]
	p.paramBytes = p.paramBytes[:0]
	p.data = p.data[:0]
	p.dcsFinal = 0
}

func (p *Parser) feedGround(cp rune, out []ParserEvent) []ParserEvent {
	if isExecutable(cp) {
		return append(out, ParserEvent{Kind: EventControl, CodePoint: cp})
	}
	if isPrintable(cp) {
		return append(out, ParserEvent{Kind: EventPrintable, CodePoint: cp})
	}
	return out
}

func (p *Parser) feedEscape(cp rune, out []ParserEvent) []ParserEvent {
	if isExecutable(cp) {
		return append(out, ParserEvent{Kind: EventControl, CodePoint: cp, WasInEscape: true})
	}
	switch {
	case cp == '[':
		p.reset(stCsiEntry)
	case cp == ']':
		p.reset(stOscString)
	case cp == 'P':
		p.reset(stDcsEntry)
	case cp == 'X' || cp == '^' || cp == '_':
		p.reset(stSosPmApcString)
	case cp == 'O' && p.mode == ModeInput:
		p.reset(stSs3)
	case isIntermediateByte(byte(cp)) && cp < 0x80:
		p.intermediate = append(p.intermediate, byte(cp))
		p.state = stEscapeIntermediate
	case cp >= 0x30 && cp < 0x7F:
		out = append(out, ParserEvent{Kind: EventEscape, Intermediate: string(p.intermediate), Terminator: cp})
		p.reset(stGround)
	default:
		p.malformedCount++
		p.reset(stGround)
	}
	return out
}

func (p *Parser) feedEscapeIntermediate(cp rune, out []ParserEvent) []ParserEvent {
	if isExecutable(cp) {
		return append(out, ParserEvent{Kind: EventControl, CodePoint: cp, WasInEscape: true})
	}
	switch {
	case isIntermediateByte(byte(cp)) && cp < 0x80:
		p.intermediate = append(p.intermediate, byte(cp))
	case cp >= 0x30 && cp < 0x7F:
		out = append(out, ParserEvent{Kind: EventEscape, Intermediate: string(p.intermediate), Terminator: cp})
		p.reset(stGround)
	default:
		p.malformedCount++
		p.reset(stGround)
	}
	return out
}

func (p *Parser) feedCsi(cp rune, out []ParserEvent) []ParserEvent {
	if isExecutable(cp) {
		return append(out, ParserEvent{Kind: EventControl, CodePoint: cp, WasInEscape: true})
	}
	b := byte(cp)
	if cp >= 0x80 {
		p.enterCsiIgnore()
		return out
	}
	switch {
	case isMarkerByte(b):
		if p.state != stCsiEntry {
			p.enterCsiIgnore()
			return out
		}
		p.intermediate = append(p.intermediate, b)
		p.state = stCsiParam
	case isParamByte(b):
		if p.state == stCsiIntermediate {
			p.enterCsiIgnore()
			return out
		}
		p.paramBytes = append(p.paramBytes, b)
		p.state = stCsiParam
	case isIntermediateByte(b):
		p.intermediate = append(p.intermediate, b)
		p.state = stCsiIntermediate
	case isCsiTerminator(b):
		if p.state != stCsiIgnore {
			out = append(out, ParserEvent{
				Kind:         EventCSI,
				Intermediate: string(p.intermediate),
				Params:       newParamList(p.paramBytes),
				Terminator:   cp,
			})
		}
		p.reset(stGround)
	default:
		p.enterCsiIgnore()
	}
	return out
}

// enterCsiIgnore transitions into stCsiIgnore, counting the sequence as
// malformed exactly once per entry rather than once per subsequently
// ignored byte.
func (p *Parser) enterCsiIgnore() {
	if p.state != stCsiIgnore {
		p.malformedCount++
	}
	p.state = stCsiIgnore
}

func (p *Parser) feedDcsHead(cp rune, out []ParserEvent) []ParserEvent {
	if isExecutable(cp) {
		return out // ignored per DEC-ANSI table inside DCS head states
	}
	b := byte(cp)
	if cp >= 0x80 {
		p.enterDcsIgnore()
		return out
	}
	switch {
	case isParamByte(b):
		if p.state == stDcsIntermediate {
			p.enterDcsIgnore()
			return out
		}
		p.paramBytes = append(p.paramBytes, b)
		p.state = stDcsParam
	case isIntermediateByte(b):
		p.intermediate = append(p.intermediate, b)
		p.state = stDcsIntermediate
	case isCsiTerminator(b):
		p.dcsFinal = cp
		p.state = stDcsPassthrough
	default:
		p.enterDcsIgnore()
	}
	return out
}

// enterDcsIgnore transitions into stDcsIgnore, counting the sequence as
// malformed exactly once per entry.
func (p *Parser) enterDcsIgnore() {
	if p.state != stDcsIgnore {
		p.malformedCount++
	}
	p.state = stDcsIgnore
}

func (p *Parser) feedDcsPassthrough(cp rune, out []ParserEvent) []ParserEvent {
	if cp == 0x1B {
		// Possible ST (ESC \); handled by the caller re-feeding ESC, which
		// the universal transition already routed to stEscape. We must
		// finalize here before that happened, so this branch is reached
		// only when the caller feeds ESC \ as two code points through the
		// normal universal-transition path; finalize on the following
		// Escape '\' dispatch instead. Nothing to do here.
		return out
	}
	if cp == 0x9C { // 8-bit ST
		out = append(out, ParserEvent{Kind: EventDCS, Intermediate: string(p.intermediate), Terminator: p.dcsFinal, Params: newParamList(p.paramBytes), Data: string(p.data)})
		p.reset(stGround)
		return out
	}
	p.data = append(p.data, []byte(string(cp))...)
	return out
}

func (p *Parser) feedOsc(cp rune, out []ParserEvent) []ParserEvent {
	if cp == 0x07 { // BEL terminates OSC (xterm convention)
		out = append(out, ParserEvent{Kind: EventOSC, OSCData: string(p.data), OSCTerminator: "BEL"})
		p.reset(stGround)
		return out
	}
	if cp == 0x9C { // 8-bit ST
		out = append(out, ParserEvent{Kind: EventOSC, OSCData: string(p.data), OSCTerminator: "ST"})
		p.reset(stGround)
		return out
	}
	p.data = append(p.data, []byte(string(cp))...)
	return out
}

func (p *Parser) feedApc(cp rune, out []ParserEvent) []ParserEvent {
	if cp == 0x9C {
		out = append(out, ParserEvent{Kind: EventAPC, APCData: string(p.data)})
		p.reset(stGround)
		return out
	}
	p.data = append(p.data, []byte(string(cp))...)
	return out
}

// stringStateBeforeEscape reports whether the parser is in one of the
// string states (DCS passthrough, OSC, SOS/PM/APC), where an ESC may be
// the first half of the 7-bit ST spelling, ESC '\'. The universal ESC
// transition in Feed would abort the string, so FeedCodePoint checks this
// before applying it, letting ESC \ act as a two-character terminator.
func (p *Parser) stringStateBeforeEscape() (parserState, bool) {
	switch p.state {
	case stDcsPassthrough, stOscString, stSosPmApcString:
		return p.state, true
	}
	return 0, false
}

// FeedCodePoint is the mode-aware entry point used by Terminal and Pane.
// It special-cases the 7-bit String Terminator (ESC \) so that OSC, DCS
// and SOS/PM/APC strings terminate correctly instead of aborting into
// stEscape, which is what the naive universal ESC transition would do.
func (p *Parser) FeedCodePoint(cp rune, out []ParserEvent) []ParserEvent {
	if cp == 0x1B {
		if st, in := p.stringStateBeforeEscape(); in {
			p.pendingStringClose = true
			p.closingState = st
			p.state = stEscape
			return out
		}
	}
	if p.pendingStringClose {
		p.pendingStringClose = false
		if cp == '\\' {
			return p.finalizeString(p.closingState, out)
		}
		// Not a valid ST; treat the pending ESC as a real escape and
		// reprocess this code point from stEscape, which p.state is
		// already set to.
		return p.Feed(cp, out)
	}
	return p.Feed(cp, out)
}

func (p *Parser) finalizeString(st parserState, out []ParserEvent) []ParserEvent {
	switch st {
	case stDcsPassthrough:
		out = append(out, ParserEvent{Kind: EventDCS, Intermediate: string(p.intermediate), Terminator: p.dcsFinal, Params: newParamList(p.paramBytes), Data: string(p.data)})
	case stOscString:
		out = append(out, ParserEvent{Kind: EventOSC, OSCData: string(p.data), OSCTerminator: "ST"})
	case stSosPmApcString:
		out = append(out, ParserEvent{Kind: EventAPC, APCData: string(p.data)})
	}
	p.reset(stGround)
	return out
}
