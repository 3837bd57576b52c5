// Package events implements the bidirectional serializers of spec.md
// §4.9 (C9): key, mouse, focus and paste events, plus the device/status/
// mode/OSC/terminfo report codecs that mirror C8's parsers. It has no
// dependency on internal/terminal — a Pane translates the terminal's
// current mode bits into this package's plain parameter types before
// calling Encode*, keeping the wire-format logic testable in isolation
// (grounded on the teacher's internal/app/keybytes.go, which does the
// same translation job for its one legacy-only encoding table).
package events

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyType distinguishes press/repeat/release, per the Kitty keyboard
// protocol's event-type sub-parameter.
type KeyType int

const (
	KeyPress KeyType = iota
	KeyRepeat
	KeyRelease
)

// Modifiers is the OR-ed bitmask spec.md §4.9 defines: "1 +
// bitmask(Shift=1, Alt=2, Control=4, Super=8, Hyper=16, Meta=32)".
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModControl
	ModSuper
	ModHyper
	ModMeta
)

// encoded returns the CSI-wire-format modifier value (1 + bitmask); it
// is 1 when no modifier is held.
func (m Modifiers) encoded() int { return 1 + int(m) }

// KeyName identifies keys that aren't a plain printable code point:
// arrows, editing keys, and the first few function keys. Anything else
// is carried purely via CodePoint.
type KeyName int

const (
	KeyNone KeyName = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
)

// KeyEvent is a single keyboard event (spec.md §4.9). CodePoint is the
// base/unshifted identity of the key (e.g. 'a' for the "A" key whether
// or not Shift is held); Text is the actual effective text it produced
// ("A" when Shift is held). ShiftedCodePoint/BaseLayoutCodePoint are only
// meaningful when ReportAlternateKeys asks for them.
type KeyEvent struct {
	Type                KeyType
	Name                KeyName
	CodePoint           rune
	ShiftedCodePoint     rune
	BaseLayoutCodePoint  rune
	Text                string
	Mods                Modifiers
}

// KittyFlags mirrors the Kitty keyboard protocol's five progressive-
// enhancement flags (spec.md §4.8/§4.9). The zero value selects legacy
// encoding.
type KittyFlags struct {
	Disambiguate               bool
	ReportEventTypes           bool
	ReportAlternateKeys        bool
	ReportAllKeysAsEscapeCodes bool
	ReportAssociatedText       bool
}

func (f KittyFlags) any() bool {
	return f.Disambiguate || f.ReportEventTypes || f.ReportAlternateKeys ||
		f.ReportAllKeysAsEscapeCodes || f.ReportAssociatedText
}

// EncodeKey renders a KeyEvent to the bytes written to the pseudo-
// terminal, per spec.md §4.9: legacy table when flags is the zero value,
// otherwise the Kitty `CSI Ps ; Mods : Type ; Text <term>` form.
// cursorKeysApp selects SS3 vs CSI for the arrow/Home/End legacy forms
// (DECCKM, spec.md §6 mode 1).
func EncodeKey(ev KeyEvent, flags KittyFlags, cursorKeysApp bool) []byte {
	if !flags.any() {
		return encodeLegacyKey(ev, cursorKeysApp)
	}
	if ev.Type == KeyRelease && !flags.ReportEventTypes {
		// Release events require ReportEventTypes (spec.md §4.9); without
		// it, nothing is emitted for a release.
		return nil
	}
	return encodeKittyKey(ev, flags)
}

func encodeLegacyKey(ev KeyEvent, cursorKeysApp bool) []byte {
	if ev.Type == KeyRelease {
		return nil
	}
	var body []byte
	switch ev.Name {
	case KeyEnter:
		body = []byte{'\r'}
	case KeyTab:
		body = []byte{'\t'}
	case KeyBackspace:
		body = []byte{0x7f}
	case KeyEscape:
		body = []byte{0x1b}
	case KeySpace:
		body = []byte{' '}
	case KeyUp:
		body = arrowBytes('A', cursorKeysApp)
	case KeyDown:
		body = arrowBytes('B', cursorKeysApp)
	case KeyRight:
		body = arrowBytes('C', cursorKeysApp)
	case KeyLeft:
		body = arrowBytes('D', cursorKeysApp)
	case KeyHome:
		body = arrowBytes('H', cursorKeysApp)
	case KeyEnd:
		body = arrowBytes('F', cursorKeysApp)
	case KeyDelete:
		body = []byte("\x1b[3~")
	case KeyInsert:
		body = []byte("\x1b[2~")
	case KeyPageUp:
		body = []byte("\x1b[5~")
	case KeyPageDown:
		body = []byte("\x1b[6~")
	case KeyF1:
		body = []byte("\x1bOP")
	case KeyF2:
		body = []byte("\x1bOQ")
	case KeyF3:
		body = []byte("\x1bOR")
	case KeyF4:
		body = []byte("\x1bOS")
	default:
		if ev.Mods&ModControl != 0 && ev.CodePoint >= 'a' && ev.CodePoint <= 'z' {
			body = []byte{byte(ev.CodePoint - 'a' + 1)}
		} else if ev.Mods&ModControl != 0 && ev.CodePoint >= 'A' && ev.CodePoint <= 'Z' {
			body = []byte{byte(ev.CodePoint - 'A' + 1)}
		} else if ev.Text != "" {
			body = []byte(ev.Text)
		} else if ev.CodePoint != 0 {
			body = []byte(string(ev.CodePoint))
		}
	}
	if len(body) == 0 {
		return nil
	}
	if ev.Mods&ModAlt != 0 {
		return append([]byte{0x1b}, body...)
	}
	return body
}

func arrowBytes(term byte, app bool) []byte {
	if app {
		return []byte{0x1b, 'O', term}
	}
	return []byte{0x1b, '[', term}
}

// kittyTerm and kittyPs give the terminator/first-parameter pair for
// named keys under the Kitty encoding, per spec.md §4.9's fixed mapping
// table (term ∈ {A,B,C,D,E,F,H,P,Q,S,~,u}). F3 deliberately uses the
// code-point form (`u`) rather than legacy `R`: an `R`-terminated CSI
// reply is indistinguishable from a DECXCPR cursor-position report.
func kittyTerm(name KeyName) (term byte, ps int, ok bool) {
	switch name {
	case KeyUp:
		return 'A', 1, true
	case KeyDown:
		return 'B', 1, true
	case KeyRight:
		return 'C', 1, true
	case KeyLeft:
		return 'D', 1, true
	case KeyHome:
		return 'H', 1, true
	case KeyEnd:
		return 'F', 1, true
	case KeyInsert:
		return '~', 2, true
	case KeyDelete:
		return '~', 3, true
	case KeyPageUp:
		return '~', 5, true
	case KeyPageDown:
		return '~', 6, true
	case KeyF1:
		return 'P', 1, true
	case KeyF2:
		return 'Q', 1, true
	case KeyF4:
		return 'S', 1, true
	}
	return 0, 0, false
}

// namedCodePoint gives the Kitty-protocol code point for named keys that
// use the `u` terminator (F3 being one, to dodge the `R` ambiguity above).
func namedCodePoint(name KeyName) (rune, bool) {
	switch name {
	case KeyEnter:
		return 13, true
	case KeyTab:
		return 9, true
	case KeyBackspace:
		return 127, true
	case KeyEscape:
		return 27, true
	case KeySpace:
		return 32, true
	case KeyF3:
		return 57346, true
	}
	return 0, false
}

func encodeKittyKey(ev KeyEvent, flags KittyFlags) []byte {
	term := byte('u')
	ps := int(ev.CodePoint)
	if cp, ok := namedCodePoint(ev.Name); ok {
		ps = int(cp)
	} else if t, p, ok := kittyTerm(ev.Name); ok {
		term, ps = t, p
	}

	var b strings.Builder
	b.WriteString("\x1b[")
	b.WriteString(strconv.Itoa(ps))
	if flags.ReportAlternateKeys && (ev.ShiftedCodePoint != 0 || ev.BaseLayoutCodePoint != 0) {
		if ev.ShiftedCodePoint != 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(int(ev.ShiftedCodePoint)))
		}
		if ev.BaseLayoutCodePoint != 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(int(ev.BaseLayoutCodePoint)))
		}
	}

	needsModsField := ev.Mods != 0 || flags.ReportEventTypes
	if needsModsField {
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(ev.Mods.encoded()))
		if flags.ReportEventTypes {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(int(ev.Type) + 1))
		}
	}

	if flags.ReportAssociatedText && ev.Text != "" {
		b.WriteByte(';')
		for i, r := range ev.Text {
			if i > 0 {
				b.WriteByte(':')
			}
			b.WriteString(strconv.Itoa(int(r)))
		}
	}

	b.WriteByte(term)
	return []byte(b.String())
}

// DecodeKey is the inverse of EncodeKey's Kitty form: CSI or SS3 with a
// known terminator scans the respective table (spec.md §4.9). term is
// the final byte and params the CSI parameter string (empty for SS3);
// associated text, if present, is read from the third parameter.
// intermediate is accepted but not consulted.
func DecodeKey(term byte, params string, intermediate string) (KeyEvent, bool) {
	fields := strings.Split(params, ";")
	ps := fieldInt(fields, 0, 1)

	var ev KeyEvent
	ev.Type = KeyPress
	ev.Mods = 0

	switch term {
	case 'A':
		ev.Name = KeyUp
	case 'B':
		ev.Name = KeyDown
	case 'C':
		ev.Name = KeyRight
	case 'D':
		ev.Name = KeyLeft
	case 'H':
		ev.Name = KeyHome
	case 'F':
		ev.Name = KeyEnd
	case 'P':
		ev.Name = KeyF1
	case 'Q':
		ev.Name = KeyF2
	case 'S':
		ev.Name = KeyF4
	case '~':
		switch ps {
		case 2:
			ev.Name = KeyInsert
		case 3:
			ev.Name = KeyDelete
		case 5:
			ev.Name = KeyPageUp
		case 6:
			ev.Name = KeyPageDown
		default:
			return KeyEvent{}, false
		}
	case 'u':
		switch ps {
		case 13:
			ev.Name = KeyEnter
		case 9:
			ev.Name = KeyTab
		case 127:
			ev.Name = KeyBackspace
		case 27:
			ev.Name = KeyEscape
		case 32:
			ev.Name = KeySpace
		case 57346:
			ev.Name = KeyF3
		default:
			ev.CodePoint = rune(ps)
		}
	default:
		return KeyEvent{}, false
	}

	if len(fields) > 1 {
		modField := strings.SplitN(fields[1], ":", 2)
		if v, err := strconv.Atoi(modField[0]); err == nil && v > 0 {
			ev.Mods = Modifiers(v - 1)
		}
		if len(modField) > 1 {
			if v, err := strconv.Atoi(modField[1]); err == nil && v >= 1 {
				ev.Type = KeyType(v - 1)
			}
		}
	}
	if len(fields) > 2 {
		var text strings.Builder
		for _, part := range strings.Split(fields[2], ":") {
			if v, err := strconv.Atoi(part); err == nil {
				text.WriteRune(rune(v))
			}
		}
		ev.Text = text.String()
	}
	return ev, true
}

func fieldInt(fields []string, i, def int) int {
	if i >= len(fields) || fields[i] == "" {
		return def
	}
	first := strings.SplitN(fields[i], ":", 2)[0]
	v, err := strconv.Atoi(first)
	if err != nil {
		return def
	}
	return v
}

// DebugString renders a KeyEvent for logging (zerolog-friendly, matching
// the teacher's structured-logging convention).
func (ev KeyEvent) DebugString() string {
	return fmt.Sprintf("KeyEvent{name=%d cp=%d text=%q mods=%d type=%d}",
		ev.Name, ev.CodePoint, ev.Text, ev.Mods, ev.Type)
}
