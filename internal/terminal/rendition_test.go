package terminal

import "testing"

func parseSGR(s string) Rendition {
	return DefaultRendition.UpdateWithCSIParams(newParamList([]byte(s)))
}

func TestSGRReset(t *testing.T) {
	r := parseSGR("1;3;4")
	r = r.UpdateWithCSIParams(newParamList([]byte("0")))
	if r != DefaultRendition {
		t.Fatalf("expected reset, got %+v", r)
	}
}

func TestSGRBoldItalicUnderline(t *testing.T) {
	r := parseSGR("1;3;4")
	if r.Weight != WeightBold || !r.Italic || r.Underline != UnderlineSingle {
		t.Fatalf("got %+v", r)
	}
}

func TestSGRScenario2(t *testing.T) {
	// spec.md §8 scenario 2: bold, italic, rgb fg, palette bg, rgb underline.
	r := parseSGR("1;3;38:2::10:20:30;48:5:9;58:2::4:5:6")
	if r.Weight != WeightBold || !r.Italic {
		t.Fatalf("weight/italic wrong: %+v", r)
	}
	if r.Foreground != (Color{Kind: ColorRGB, R: 10, G: 20, B: 30}) {
		t.Fatalf("fg wrong: %+v", r.Foreground)
	}
	if r.Background != (Color{Kind: ColorPalette, Palette: 9}) {
		t.Fatalf("bg wrong: %+v", r.Background)
	}
	if r.UnderlineColor != (Color{Kind: ColorRGB, R: 4, G: 5, B: 6}) {
		t.Fatalf("underline color wrong: %+v", r.UnderlineColor)
	}
}

func TestSGRLegacyExtendedColor(t *testing.T) {
	r := parseSGR("38;2;10;20;30;48;5;9")
	if r.Foreground != (Color{Kind: ColorRGB, R: 10, G: 20, B: 30}) {
		t.Fatalf("fg wrong: %+v", r.Foreground)
	}
	if r.Background != (Color{Kind: ColorPalette, Palette: 9}) {
		t.Fatalf("bg wrong: %+v", r.Background)
	}
}

func TestSGRRoundTrip(t *testing.T) {
	cases := []Rendition{
		DefaultRendition,
		{Weight: WeightBold},
		{Italic: true, Underline: UnderlineCurly},
		{Foreground: Color{Kind: ColorRGB, R: 10, G: 20, B: 30}},
		{Foreground: Color{Kind: ColorPalette, Palette: 3}},
		{Foreground: Color{Kind: ColorPalette, Palette: 12}},
		{Background: Color{Kind: ColorPalette, Palette: 200}},
		{Foreground: Color{Kind: ColorDefault}, Background: Color{Kind: ColorDefault}},
		{UnderlineColor: Color{Kind: ColorRGB, R: 4, G: 5, B: 6}, Underline: UnderlineDotted},
		{Inverted: true, Invisible: true, StrikeThrough: true, Overline: true, Blink: BlinkRapid},
	}
	for _, want := range cases {
		csi := want.AsCSIParams()
		got := parseSGR(csi)
		if got != want {
			t.Fatalf("round trip failed: want %+v, csi=%q, got %+v", want, csi, got)
		}
	}
}
