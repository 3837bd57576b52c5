package terminal

// dispatchCSIPrivate implements DECSET (`h`) / DECRST (`l`) against the DEC
// private mode table of spec.md §6.
func (t *Terminal) dispatchCSIPrivate(ev ParserEvent) {
	set := ev.Terminator == 'h'
	if ev.Terminator != 'h' && ev.Terminator != 'l' {
		return
	}
	for i := 0; i < ev.Params.Len(); i++ {
		t.setMode(int(ev.Params.Get(i, 0)), set)
	}
}

func (t *Terminal) setMode(mode int, set bool) {
	m := &t.modes
	switch mode {
	case 1:
		m.CursorKeysApp = set
	case 3:
		if m.Allow80132 {
			m.Col132 = set
			width := 80
			if set {
				width = 132
			}
			t.Active().Resize(width, t.Active().Height)
			t.Active().Scrollback = NewScrollback()
			t.Active().ScrollRegion = ScrollRegion{Start: 0, EndExclusive: t.Active().Height}
		}
	case 5:
		m.ReverseVideo = set
	case 6:
		m.OriginMode = set
		t.Active().OriginMode = set
		t.Active().SetCursor(t.Active().minRow(), 0)
	case 7:
		m.AutoWrap = set
		t.Active().AutoWrap = set
	case 9:
		if set {
			m.MouseProtocol = MouseProtocolX10
			m.MouseEncoding = MouseEncodingX10
		} else {
			m.MouseProtocol = MouseProtocolNone
		}
	case 25:
		m.CursorVisible = set
		t.Active().Cursor.Hidden = !set
	case 40:
		m.Allow80132 = set
	case 1000:
		if set {
			m.MouseProtocol = MouseProtocolVT200
		} else {
			m.MouseProtocol = MouseProtocolNone
		}
	case 1002:
		if set {
			m.MouseProtocol = MouseProtocolBtnEvent
		} else {
			m.MouseProtocol = MouseProtocolNone
		}
	case 1003:
		if set {
			m.MouseProtocol = MouseProtocolAnyEvent
		} else {
			m.MouseProtocol = MouseProtocolNone
		}
	case 1004:
		m.FocusEvents = set
	case 1005:
		if set {
			m.MouseEncoding = MouseEncodingUTF8
		} else {
			m.MouseEncoding = MouseEncodingX10
		}
	case 1006:
		if set {
			m.MouseEncoding = MouseEncodingSGR
		} else {
			m.MouseEncoding = MouseEncodingX10
		}
	case 1007:
		m.AlternateScroll = set
	case 1015:
		if set {
			m.MouseEncoding = MouseEncodingURXVT
		} else {
			m.MouseEncoding = MouseEncodingX10
		}
	case 1016:
		if set {
			m.MouseEncoding = MouseEncodingSGRPixels
		} else {
			m.MouseEncoding = MouseEncodingX10
		}
	case 1047:
		t.setAltScreen(set, false)
	case 1048:
		if set {
			t.saveCursor()
		} else {
			t.restoreCursor()
		}
	case 1049:
		t.setAltScreen(set, true)
	case 2004:
		m.BracketedPaste = set
	case 2026:
		m.SynchronizedOut = set
	case 2027:
		// Always reported as AlwaysSet; spec.md §6 — no state to flip.
	case 2048:
		m.InBandSizeReport = set
	}
}

// setAltScreen implements DECSET 1047/1049 (spec.md §4.8 "Alternate
// screen"). withCursor additionally saves/restores the cursor, matching
// mode 1049's combined semantics.
func (t *Terminal) setAltScreen(enter, withCursor bool) {
	if enter == t.usingAlt {
		return
	}
	if enter {
		if withCursor {
			t.saveCursor()
		}
		t.alternate = NewScreen(t.primary.Width, t.primary.Height)
		t.alternate.ScrollbackEnabled = false
		t.usingAlt = true
	} else {
		t.alternate = nil
		t.usingAlt = false
		if withCursor {
			t.restoreCursor()
		}
	}
}

// dispatchDECRQM replies to a DECRQM mode query (spec.md §4.8 `?$ p`).
func (t *Terminal) dispatchDECRQM(ev ParserEvent) {
	mode := int(ev.Params.Get(0, 0))
	state := t.modeQueryState(mode)
	t.reply("\x1b[?" + itoa(mode) + ";" + itoa(state) + "$y")
}

// modeQueryState reports DECRQM's 5-value state: 0 not recognized,
// 1 set, 2 reset, 3 permanently set, 4 permanently reset.
func (t *Terminal) modeQueryState(mode int) int {
	if mode == 2027 {
		return 3 // AlwaysSet (spec.md §6)
	}
	if mode == 2031 {
		return 0 // Unimplemented, reply Unknown (spec.md §6)
	}
	m := t.modes
	switch mode {
	case 1:
		return boolState(m.CursorKeysApp)
	case 3:
		return boolState(m.Col132)
	case 5:
		return boolState(m.ReverseVideo)
	case 6:
		return boolState(m.OriginMode)
	case 7:
		return boolState(m.AutoWrap)
	case 25:
		return boolState(m.CursorVisible)
	case 40:
		return boolState(m.Allow80132)
	case 9:
		return boolState(m.MouseProtocol == MouseProtocolX10)
	case 1000:
		return boolState(m.MouseProtocol == MouseProtocolVT200)
	case 1002:
		return boolState(m.MouseProtocol == MouseProtocolBtnEvent)
	case 1003:
		return boolState(m.MouseProtocol == MouseProtocolAnyEvent)
	case 1004:
		return boolState(m.FocusEvents)
	case 1005:
		return boolState(m.MouseEncoding == MouseEncodingUTF8)
	case 1006:
		return boolState(m.MouseEncoding == MouseEncodingSGR)
	case 1007:
		return boolState(m.AlternateScroll)
	case 1015:
		return boolState(m.MouseEncoding == MouseEncodingURXVT)
	case 1016:
		return boolState(m.MouseEncoding == MouseEncodingSGRPixels)
	case 1049:
		return boolState(t.usingAlt)
	case 2004:
		return boolState(m.BracketedPaste)
	case 2026:
		return boolState(m.SynchronizedOut)
	case 2048:
		return boolState(m.InBandSizeReport)
	}
	return 0
}

func boolState(b bool) int {
	if b {
		return 1
	}
	return 2
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// dispatchDA2 replies to DA2 (spec.md §4.8 `>c`).
func (t *Terminal) dispatchDA2(ev ParserEvent) {
	if ev.Terminator == 'c' {
		t.reply("\x1b[>010;0c")
	}
}

// dispatchDA3OrKitty handles the `=` intermediate: DA3 (`c`) and, per the
// Kitty keyboard protocol, query/set forms that some clients send with
// `=`.
func (t *Terminal) dispatchDA3OrKitty(ev ParserEvent) {
	switch ev.Terminator {
	case 'c':
		t.reply("\x1bP!|00000000\x1b\\")
	case 'u':
		t.dispatchKittyKeyFlags(ev)
	}
}

// dispatchKittyKeyFlags implements the Kitty keyboard protocol's
// push/pop/set/query forms (spec.md §4.8 "Key reporting flags stack"):
// `>flags u` pushes a new entry, `<Pn u` pops Pn entries (default 1),
// `=flags;mode u` sets the current top entry, `?u` replies the current
// flags.
func (t *Terminal) dispatchKittyKeyFlags(ev ParserEvent) {
	switch ev.Intermediate {
	case ">":
		flags := decodeKeyFlags(ev.Params.Get(0, 0))
		t.keyFlagsStack = append(t.keyFlagsStack, flags)
		if len(t.keyFlagsStack) > maxKeyFlagsStack {
			t.keyFlagsStack = t.keyFlagsStack[1:]
		}
	case "<":
		n := int(ev.Params.Get(0, 1))
		for k := 0; k < n && len(t.keyFlagsStack) > 0; k++ {
			t.keyFlagsStack = t.keyFlagsStack[:len(t.keyFlagsStack)-1]
		}
	case "=":
		flags := decodeKeyFlags(ev.Params.Get(0, 0))
		if len(t.keyFlagsStack) == 0 {
			t.keyFlagsStack = append(t.keyFlagsStack, flags)
		} else {
			t.keyFlagsStack[len(t.keyFlagsStack)-1] = flags
		}
	case "?":
		t.reply("\x1b[?" + itoa(int(encodeKeyFlags(t.currentKeyFlags()))) + "u")
	}
}

func (t *Terminal) currentKeyFlags() keyFlags {
	if len(t.keyFlagsStack) == 0 {
		return keyFlags{}
	}
	return t.keyFlagsStack[len(t.keyFlagsStack)-1]
}

func decodeKeyFlags(bits uint32) keyFlags {
	return keyFlags{
		Disambiguate:               bits&1 != 0,
		ReportEventTypes:           bits&2 != 0,
		ReportAlternateKeys:        bits&4 != 0,
		ReportAllKeysAsEscapeCodes: bits&8 != 0,
		ReportAssociatedText:       bits&16 != 0,
	}
}

func encodeKeyFlags(f keyFlags) uint32 {
	var bits uint32
	if f.Disambiguate {
		bits |= 1
	}
	if f.ReportEventTypes {
		bits |= 2
	}
	if f.ReportAlternateKeys {
		bits |= 4
	}
	if f.ReportAllKeysAsEscapeCodes {
		bits |= 8
	}
	if f.ReportAssociatedText {
		bits |= 16
	}
	return bits
}

// dispatchDECSCUSR sets the cursor style 1..6 (spec.md §4.8 ` q`).
func (t *Terminal) dispatchDECSCUSR(ev ParserEvent) {
	if ev.Terminator != 'q' {
		return
	}
	style := CursorShape(ev.Params.Get(0, 1))
	if style < CursorBlockBlink || style > CursorBar {
		style = CursorBlockBlink
	}
	t.Active().Cursor.Shape = style
	t.cursorStyleFromHost = true
}
