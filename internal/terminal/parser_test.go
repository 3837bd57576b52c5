package terminal

import "testing"

func feedString(p *Parser, s string) []ParserEvent {
	var out []ParserEvent
	for _, cp := range s {
		out = p.FeedCodePoint(cp, out)
	}
	return out
}

func TestParserPrintable(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "AB")
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Kind != EventPrintable || events[0].CodePoint != 'A' {
		t.Fatalf("event0 = %+v", events[0])
	}
}

func TestParserCSIBasic(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b[1;2H")
	if len(events) != 1 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	e := events[0]
	if e.Kind != EventCSI || e.Terminator != 'H' {
		t.Fatalf("event = %+v", e)
	}
	if v := e.Params.Get(0, 0); v != 1 {
		t.Fatalf("param0 = %d", v)
	}
	if v := e.Params.Get(1, 0); v != 2 {
		t.Fatalf("param1 = %d", v)
	}
}

func TestParserCSIPrivateMode(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b[?1049h")
	if len(events) != 1 || events[0].Kind != EventCSI {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Intermediate != "?" {
		t.Fatalf("intermediate = %q", events[0].Intermediate)
	}
	if events[0].Terminator != 'h' {
		t.Fatalf("terminator = %q", events[0].Terminator)
	}
}

func TestParserSGRExtended(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b[38:2::10:20:30m")
	if len(events) != 1 {
		t.Fatalf("events = %+v", events)
	}
	e := events[0]
	if e.Params.GetSub(0, 3, 0) != 10 || e.Params.GetSub(0, 4, 0) != 20 || e.Params.GetSub(0, 5, 0) != 30 {
		t.Fatalf("rgb subparams wrong: %+v", e.Params)
	}
}

func TestParserControlInterruptsCSI(t *testing.T) {
	p := NewParser(ModeApplication)
	// CAN (0x18) aborts a CSI sequence mid-flight.
	var out []ParserEvent
	out = p.FeedCodePoint('\x1b', out)
	out = p.FeedCodePoint('[', out)
	out = p.FeedCodePoint('1', out)
	out = p.FeedCodePoint(0x18, out)
	if len(out) != 1 || out[0].Kind != EventControl {
		t.Fatalf("out = %+v", out)
	}
	// Parser should be back in ground afterwards.
	out2 := feedString(p, "x")
	if len(out2) != 1 || out2[0].Kind != EventPrintable {
		t.Fatalf("out2 = %+v", out2)
	}
}

func TestParserOSCBEL(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b]0;my title\x07")
	if len(events) != 1 || events[0].Kind != EventOSC {
		t.Fatalf("events = %+v", events)
	}
	if events[0].OSCData != "0;my title" {
		t.Fatalf("data = %q", events[0].OSCData)
	}
}

func TestParserOSCST(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1b]8;;http://example.com\x1b\\")
	if len(events) != 1 || events[0].Kind != EventOSC {
		t.Fatalf("events = %+v", events)
	}
	if events[0].OSCData != "8;;http://example.com" {
		t.Fatalf("data = %q", events[0].OSCData)
	}
}

func TestParserDCSPassthrough(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1bP1$r1 q\x1b\\")
	if len(events) != 1 || events[0].Kind != EventDCS {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Data != "1 q" {
		t.Fatalf("data = %q", events[0].Data)
	}
	if events[0].Intermediate != "$" {
		t.Fatalf("intermediate = %q", events[0].Intermediate)
	}
	if events[0].Terminator != 'r' {
		t.Fatalf("terminator = %q", events[0].Terminator)
	}
}

func TestParserSS3InputMode(t *testing.T) {
	p := NewParser(ModeInput)
	events := feedString(p, "\x1bOA")
	if len(events) != 1 || events[0].Kind != EventSS3 || events[0].CodePoint != 'A' {
		t.Fatalf("events = %+v", events)
	}
}

func TestParserSS3NotInApplicationMode(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1bOA")
	// In application mode, ESC O is an ordinary escape dispatch (not SS3),
	// followed by a printable 'A'.
	if len(events) != 2 || events[0].Kind != EventEscape || events[0].Terminator != 'O' ||
		events[1].Kind != EventPrintable || events[1].CodePoint != 'A' {
		t.Fatalf("events = %+v", events)
	}
}

func TestParserEscapeIND(t *testing.T) {
	p := NewParser(ModeApplication)
	events := feedString(p, "\x1bD")
	if len(events) != 1 || events[0].Kind != EventEscape || events[0].Terminator != 'D' {
		t.Fatalf("events = %+v", events)
	}
}
