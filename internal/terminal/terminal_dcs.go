package terminal

import "encoding/hex"

// dispatchDCS implements the two DCS sequences of spec.md §4.8: `$q`
// (DECRQSS) and `+q` (XTGETTCAP).
func (t *Terminal) dispatchDCS(ev ParserEvent) {
	switch {
	case ev.Intermediate == "$" && ev.Terminator == 'q':
		t.dispatchDECRQSS(ev.Data)
	case ev.Intermediate == "+" && ev.Terminator == 'q':
		t.dispatchXTGETTCAP(ev.Data)
	}
}

// dispatchDECRQSS replies with the current value of the queried setting,
// wrapped as `\033P1$r<Pt>\033\\`, or `\033P0$r\033\\` for anything not
// recognized (spec.md §4.8).
func (t *Terminal) dispatchDECRQSS(query string) {
	s := t.Active()
	switch query {
	case "m":
		t.reply("\x1bP1$r" + s.rendition().AsCSIParams() + "m\x1b\\")
	case "r":
		reply := "\x1bP1$r" + itoa(s.ScrollRegion.Start+1) + ";" + itoa(s.ScrollRegion.EndExclusive) + "r\x1b\\"
		t.reply(reply)
	default:
		t.reply("\x1bP0$r\x1b\\")
	}
}

// dispatchXTGETTCAP replies a TerminfoString for each hex-encoded
// capability name in query (semicolon-separated). Terminfo database
// emission is an explicit non-goal of the core (spec.md §1), so every
// capability is reported unrecognized rather than backed by a real
// terminfo database.
func (t *Terminal) dispatchXTGETTCAP(query string) {
	start := 0
	for i := 0; i <= len(query); i++ {
		if i == len(query) || query[i] == ';' {
			if i > start {
				t.replyTerminfoCap(query[start:i])
			}
			start = i + 1
		}
	}
}

func (t *Terminal) replyTerminfoCap(hexName string) {
	if _, err := hex.DecodeString(hexName); err != nil {
		t.reply("\x1bP0+r\x1b\\")
		return
	}
	t.reply("\x1bP0+r" + hexName + "\x1b\\")
}
