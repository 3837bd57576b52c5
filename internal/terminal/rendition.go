package terminal

// ColorKind discriminates how a foreground/background/underline color is
// specified.
type ColorKind int

const (
	ColorNone ColorKind = iota // not set (inherits nothing, paints nothing)
	ColorDefault               // explicit "reset to default" (SGR 39/49/59)
	ColorPalette               // indexed 0-255
	ColorRGB                   // truecolor
)

// Color is a tagged union over the four ways SGR can specify a color.
type Color struct {
	Kind    ColorKind
	Palette uint8
	R, G, B uint8
}

// FontWeight mirrors SGR 1 (bold) / 2 (dim), which are mutually exclusive.
type FontWeight int

const (
	WeightNone FontWeight = iota
	WeightBold
	WeightDim
)

// Blink mirrors SGR 5 (slow) / 6 (rapid).
type Blink int

const (
	BlinkNone Blink = iota
	BlinkNormal
	BlinkRapid
)

// UnderlineStyle mirrors SGR 4 and its colon sub-parameter extension
// (Single/Double/Curly/Dotted/Dashed), per the kitty/iterm underline
// extension most terminals now implement.
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Rendition is the full SGR attribute set (spec.md §3). Equality is
// structural: two Renditions are identical iff every field matches, which
// is what the id-map deduplication in C5 depends on.
type Rendition struct {
	Foreground      Color
	Background      Color
	UnderlineColor  Color
	Weight          FontWeight
	Blink           Blink
	Underline       UnderlineStyle
	Italic          bool
	Overline        bool
	Inverted        bool
	Invisible       bool
	StrikeThrough   bool
}

// DefaultRendition is the all-zero rendition; it is the well-known
// singleton bound to id 0 in every IdMap[Rendition] (spec.md §3: "two
// well-known singletons have fixed ids 0... and never collide with
// allocated ids").
var DefaultRendition = Rendition{}

// UpdateWithCSIParams applies an SGR parameter list to r, returning the
// updated Rendition. It implements the dispatch table of spec.md §4.4.
func (r Rendition) UpdateWithCSIParams(params ParamList) Rendition {
	if params.Len() == 0 {
		return DefaultRendition
	}
	i := 0
	for i < params.Len() {
		p := params.Get(i, 0)
		switch {
		case p == 0:
			r = DefaultRendition
		case p == 1:
			r.Weight = WeightBold
		case p == 2:
			r.Weight = WeightDim
		case p == 22:
			r.Weight = WeightNone
		case p == 3:
			r.Italic = true
		case p == 23:
			r.Italic = false
		case p == 4:
			r.Underline = r.underlineFromParam(params, i)
		case p == 21:
			r.Underline = UnderlineDouble
		case p == 24:
			r.Underline = UnderlineNone
		case p == 5:
			r.Blink = BlinkNormal
		case p == 6:
			r.Blink = BlinkRapid
		case p == 25:
			r.Blink = BlinkNone
		case p == 7:
			r.Inverted = true
		case p == 27:
			r.Inverted = false
		case p == 8:
			r.Invisible = true
		case p == 28:
			r.Invisible = false
		case p == 9:
			r.StrikeThrough = true
		case p == 29:
			r.StrikeThrough = false
		case p >= 30 && p <= 37:
			r.Foreground = Color{Kind: ColorPalette, Palette: uint8(p - 30)}
		case p == 38:
			c, consumed := parseExtendedColor(params, i)
			r.Foreground = c
			i += consumed
		case p == 39:
			r.Foreground = Color{Kind: ColorDefault}
		case p >= 40 && p <= 47:
			r.Background = Color{Kind: ColorPalette, Palette: uint8(p - 40)}
		case p == 48:
			c, consumed := parseExtendedColor(params, i)
			r.Background = c
			i += consumed
		case p == 49:
			r.Background = Color{Kind: ColorDefault}
		case p == 53:
			r.Overline = true
		case p == 55:
			r.Overline = false
		case p == 58:
			c, consumed := parseExtendedColor(params, i)
			r.UnderlineColor = c
			i += consumed
		case p == 59:
			r.UnderlineColor = Color{Kind: ColorDefault}
		case p >= 90 && p <= 97:
			r.Foreground = Color{Kind: ColorPalette, Palette: uint8(p - 90 + 8)}
		case p >= 100 && p <= 107:
			r.Background = Color{Kind: ColorPalette, Palette: uint8(p - 100 + 8)}
		}
		i++
	}
	return r
}

// underlineFromParam distinguishes bare "4" (single underline) from the
// modern colon sub-parameter form "4:3" (curly), etc. Legacy terminals
// only ever send "4" with no sub-parameter.
func (r Rendition) underlineFromParam(params ParamList, i int) UnderlineStyle {
	if params.SubLen(i) < 2 {
		return UnderlineSingle
	}
	switch params.GetSub(i, 1, 1) {
	case 0:
		return UnderlineNone
	case 2:
		return UnderlineDouble
	case 3:
		return UnderlineCurly
	case 4:
		return UnderlineDotted
	case 5:
		return UnderlineDashed
	default:
		return UnderlineSingle
	}
}

// parseExtendedColor handles the "38/48/58" family in both legacy
// (semicolon) and modern (colon) sub-parameter forms:
//
//	38;5;N            legacy palette
//	38;2;R;G;B        legacy RGB
//	38:5:N            modern palette
//	38:2[:colorspace]:R:G:B  modern RGB, with an optional colorspace slot
//
// It returns the parsed Color and the number of *additional* top-level
// parameters consumed in the legacy form (0 in the modern colon form,
// since everything lives in one parameter's sub-parameters).
func parseExtendedColor(params ParamList, i int) (Color, int) {
	if params.SubLen(i) > 1 {
		// Modern colon form: everything is packed into sub-parameters of
		// parameter i.
		mode := params.GetSub(i, 1, 0)
		switch mode {
		case 5:
			return Color{Kind: ColorPalette, Palette: uint8(params.GetSub(i, 2, 0))}, 0
		case 2:
			// sub 2 is an optional colorspace id; R,G,B follow it. If
			// sub-len is 5 there is no colorspace slot (3 remaining
			// subs); if 6, sub 2 is the colorspace and R,G,B are 3,4,5.
			if params.SubLen(i) >= 6 {
				return Color{
					Kind: ColorRGB,
					R:    uint8(params.GetSub(i, 3, 0)),
					G:    uint8(params.GetSub(i, 4, 0)),
					B:    uint8(params.GetSub(i, 5, 0)),
				}, 0
			}
			return Color{
				Kind: ColorRGB,
				R:    uint8(params.GetSub(i, 2, 0)),
				G:    uint8(params.GetSub(i, 3, 0)),
				B:    uint8(params.GetSub(i, 4, 0)),
			}, 0
		}
		return Color{}, 0
	}
	// Legacy semicolon form: mode and components are separate parameters.
	mode := params.Get(i+1, 0)
	switch mode {
	case 5:
		return Color{Kind: ColorPalette, Palette: uint8(params.Get(i+2, 0))}, 2
	case 2:
		return Color{
			Kind: ColorRGB,
			R:    uint8(params.Get(i+2, 0)),
			G:    uint8(params.Get(i+3, 0)),
			B:    uint8(params.Get(i+4, 0)),
		}, 4
	}
	return Color{}, 1
}
