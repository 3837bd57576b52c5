package events

import "testing"

// Scenario 6 (spec.md §8): KeyEvent{press,'a','A',Shift} with flags
// {Disambiguate|ReportAllKeysAsEscapeCodes|ReportAssociatedText} encodes
// to "\x1b[97;2;65u".
func TestScenario6KittyKeyEncode(t *testing.T) {
	ev := KeyEvent{
		Type:      KeyPress,
		CodePoint: 'a',
		Text:      "A",
		Mods:      ModShift,
	}
	flags := KittyFlags{
		Disambiguate:               true,
		ReportAllKeysAsEscapeCodes: true,
		ReportAssociatedText:       true,
	}
	got := string(EncodeKey(ev, flags, false))
	want := "\x1b[97;2;65u"
	if got != want {
		t.Fatalf("encode = %q, want %q", got, want)
	}
}

func TestLegacyKeyEncodeArrowsAndCtrl(t *testing.T) {
	if got := string(EncodeKey(KeyEvent{Name: KeyUp}, KittyFlags{}, false)); got != "\x1b[A" {
		t.Fatalf("up = %q", got)
	}
	if got := string(EncodeKey(KeyEvent{Name: KeyUp}, KittyFlags{}, true)); got != "\x1bOA" {
		t.Fatalf("app up = %q", got)
	}
	got := string(EncodeKey(KeyEvent{CodePoint: 'c', Mods: ModControl}, KittyFlags{}, false))
	if got != "\x03" {
		t.Fatalf("ctrl-c = %q", got)
	}
}

func TestLegacyAltPrefixesEscape(t *testing.T) {
	got := string(EncodeKey(KeyEvent{CodePoint: 'x', Text: "x", Mods: ModAlt}, KittyFlags{}, false))
	if got != "\x1bx" {
		t.Fatalf("alt-x = %q", got)
	}
}

func TestKittyReleaseRequiresReportEventTypes(t *testing.T) {
	ev := KeyEvent{Type: KeyRelease, CodePoint: 'a', Text: "a"}
	flags := KittyFlags{Disambiguate: true}
	if got := EncodeKey(ev, flags, false); got != nil {
		t.Fatalf("expected nil release without ReportEventTypes, got %q", got)
	}
	flags.ReportEventTypes = true
	got := string(EncodeKey(ev, flags, false))
	want := "\x1b[97;1:3u"
	if got != want {
		t.Fatalf("release = %q, want %q", got, want)
	}
}

func TestDecodeKeyArrow(t *testing.T) {
	ev, ok := DecodeKey('A', "", "")
	if !ok || ev.Name != KeyUp {
		t.Fatalf("decode arrow = %+v, %v", ev, ok)
	}
}

func TestDecodeKeyWithMods(t *testing.T) {
	ev, ok := DecodeKey('u', "97;2", "")
	if !ok || ev.CodePoint != 'a' || ev.Mods != ModShift {
		t.Fatalf("decode = %+v, %v", ev, ok)
	}
}

// Scenario 5 (spec.md §8): SGR mouse decode.
func TestDecodeMouseSGR(t *testing.T) {
	ev, ok := DecodeMouseSGR("0;10;20", 'M')
	if !ok {
		t.Fatalf("decode failed")
	}
	if ev.Button != ButtonLeft || ev.Col != 9 || ev.Row != 19 || ev.Release {
		t.Fatalf("ev = %+v", ev)
	}
	ev2, ok := DecodeMouseSGR("0;10;20", 'm')
	if !ok || !ev2.Release {
		t.Fatalf("release ev = %+v, %v", ev2, ok)
	}
}

func TestEncodeMouseSGR(t *testing.T) {
	ev := MouseEvent{Button: ButtonLeft, Row: 19, Col: 9}
	got := string(EncodeMouse(ev, MouseProtocolVT200, MouseEncodingSGR))
	want := "\x1b[<0;10;20M"
	if got != want {
		t.Fatalf("encode = %q, want %q", got, want)
	}
	ev.Release = true
	got = string(EncodeMouse(ev, MouseProtocolVT200, MouseEncodingSGR))
	want = "\x1b[<0;10;20m"
	if got != want {
		t.Fatalf("release encode = %q, want %q", got, want)
	}
}

func TestMouseProtocolX10FiltersMotionAndRelease(t *testing.T) {
	ev := MouseEvent{Button: ButtonLeft, Motion: true}
	if got := EncodeMouse(ev, MouseProtocolX10, MouseEncodingSGR); got != nil {
		t.Fatalf("expected X10 to drop motion, got %q", got)
	}
	ev2 := MouseEvent{Button: ButtonLeft, Release: true}
	if got := EncodeMouse(ev2, MouseProtocolX10, MouseEncodingSGR); got != nil {
		t.Fatalf("expected X10 to drop release, got %q", got)
	}
}

func TestFocusEncodeOnlyWhenModeEnabled(t *testing.T) {
	if got := EncodeFocus(true, false); got != nil {
		t.Fatalf("expected nil when focus mode off, got %q", got)
	}
	if got := string(EncodeFocus(true, true)); got != "\x1b[I" {
		t.Fatalf("focus in = %q", got)
	}
	if got := string(EncodeFocus(false, true)); got != "\x1b[O" {
		t.Fatalf("focus out = %q", got)
	}
}

func TestPasteBracketing(t *testing.T) {
	if got := string(EncodePaste("hi", false)); got != "hi" {
		t.Fatalf("raw paste = %q", got)
	}
	got := string(EncodePaste("hi", true))
	want := "\x1b[200~hi\x1b[201~"
	if got != want {
		t.Fatalf("bracketed paste = %q, want %q", got, want)
	}
}
