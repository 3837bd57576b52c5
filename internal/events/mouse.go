package events

import (
	"fmt"
	"strconv"
	"strings"
)

// MouseProtocol and MouseEncoding mirror internal/terminal's mode types
// (spec.md §6 DEC private modes 9/1000/1002/1003 and 1005/1006/1015/1016).
// Duplicated here rather than imported so this package stays free of any
// dependency on internal/terminal; a Pane copies the two enums across
// when it calls Encode/DecodeMouse.
type MouseProtocol int

const (
	MouseProtocolNone MouseProtocol = iota
	MouseProtocolX10
	MouseProtocolVT200
	MouseProtocolBtnEvent
	MouseProtocolAnyEvent
)

type MouseEncoding int

const (
	MouseEncodingX10 MouseEncoding = iota
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
	MouseEncodingSGRPixels
)

// MouseButton identifies which button a press/release event concerns.
// Motion-only events (no button held) use ButtonNone.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

// MouseEvent is one mouse report (spec.md §4.9). Motion is true for
// drag/hover reports; Release is true for a button-up report (SGR uses
// the 'm' terminator for these instead of 'M').
type MouseEvent struct {
	Button  MouseButton
	Motion  bool
	Release bool
	Row     int // 0-based
	Col     int // 0-based
	Mods    Modifiers
}

// shouldEmit applies the protocol's filter (spec.md §4.9): X10 reports
// presses only (not releases, not motion); VT200 adds releases; BtnEvent
// adds motion while a button is held; AnyEvent reports all motion too.
func shouldEmit(proto MouseProtocol, ev MouseEvent) bool {
	switch proto {
	case MouseProtocolNone:
		return false
	case MouseProtocolX10:
		return !ev.Motion && !ev.Release
	case MouseProtocolVT200:
		return !ev.Motion
	case MouseProtocolBtnEvent:
		return !ev.Motion || ev.Button != ButtonNone
	case MouseProtocolAnyEvent:
		return true
	}
	return false
}

// buttonCode computes the base button portion of the encoded byte/param,
// before modifier and motion bits are OR-ed in (spec.md §4.9).
func buttonCode(ev MouseEvent) int {
	switch ev.Button {
	case ButtonLeft:
		return 0
	case ButtonMiddle:
		return 1
	case ButtonRight:
		return 2
	case ButtonWheelUp:
		return 64
	case ButtonWheelDown:
		return 65
	default:
		return 3 // "no button" motion report, per xterm convention
	}
}

func modifierBits(m Modifiers) int {
	bits := 0
	if m&ModShift != 0 {
		bits |= 4
	}
	if m&ModAlt != 0 {
		bits |= 8
	}
	if m&ModControl != 0 {
		bits |= 16
	}
	return bits
}

// EncodeMouse renders a MouseEvent per the active protocol/encoding, or
// nil if the protocol filters the event out.
func EncodeMouse(ev MouseEvent, proto MouseProtocol, enc MouseEncoding) []byte {
	if !shouldEmit(proto, ev) {
		return nil
	}
	code := buttonCode(ev) | modifierBits(ev.Mods)
	if ev.Motion {
		code |= 32
	}

	switch enc {
	case MouseEncodingSGR, MouseEncodingSGRPixels:
		term := byte('M')
		if ev.Release {
			term = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code, ev.Col+1, ev.Row+1, term))
	case MouseEncodingURXVT:
		if ev.Release {
			code = 3
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", code+32, ev.Col+1, ev.Row+1))
	case MouseEncodingUTF8:
		if ev.Release {
			code = 3
		}
		if ev.Col+1+32 > 0x10FFFF || ev.Row+1+32 > 0x10FFFF {
			return nil
		}
		var b strings.Builder
		b.WriteString("\x1b[M")
		b.WriteRune(rune(32 + code))
		b.WriteRune(rune(ev.Col + 1 + 32))
		b.WriteRune(rune(ev.Row + 1 + 32))
		return []byte(b.String())
	default: // X10: single-byte coordinates; out-of-range events are dropped
		// rather than clamped, since a clamped coordinate would silently
		// misreport a different cell.
		if ev.Release {
			code = 3
		}
		if ev.Col+1+32 > 255 || ev.Row+1+32 > 255 {
			return nil
		}
		return []byte{0x1b, '[', 'M', byte(32 + code), byte(ev.Col + 1 + 32), byte(ev.Row + 1 + 32)}
	}
}

// DecodeMouseSGR parses the body of an SGR mouse report (`CSI < Cb ; Cx ;
// Cy M|m`), i.e. everything between "<" and the terminator. term is 'M'
// for press/motion, 'm' for release.
func DecodeMouseSGR(body string, term byte) (MouseEvent, bool) {
	fields := strings.Split(body, ";")
	if len(fields) != 3 {
		return MouseEvent{}, false
	}
	cb, err1 := strconv.Atoi(fields[0])
	cx, err2 := strconv.Atoi(fields[1])
	cy, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return MouseEvent{}, false
	}
	ev := MouseEvent{
		Col:     cx - 1,
		Row:     cy - 1,
		Release: term == 'm',
		Motion:  cb&32 != 0,
	}
	if ev.Mods = 0; cb&4 != 0 {
		ev.Mods |= ModShift
	}
	if cb&8 != 0 {
		ev.Mods |= ModAlt
	}
	if cb&16 != 0 {
		ev.Mods |= ModControl
	}
	switch cb & 0xC3 {
	case 0:
		ev.Button = ButtonLeft
	case 1:
		ev.Button = ButtonMiddle
	case 2:
		ev.Button = ButtonRight
	case 3:
		ev.Button = ButtonNone
	case 64:
		ev.Button = ButtonWheelUp
	case 65:
		ev.Button = ButtonWheelDown
	}
	return ev, true
}
