package terminal

import "strconv"

// AsCSIParams emits a minimal ';'-joined SGR parameter string (without the
// leading CSI or trailing 'm') that reproduces r when parsed back through
// UpdateWithCSIParams. It prefers the modern colon sub-parameter form for
// RGB and underline colors, matching spec.md §4.4.
func (r Rendition) AsCSIParams() string {
	if r == DefaultRendition {
		return "0"
	}
	var parts []string
	switch r.Weight {
	case WeightBold:
		parts = append(parts, "1")
	case WeightDim:
		parts = append(parts, "2")
	}
	if r.Italic {
		parts = append(parts, "3")
	}
	parts = append(parts, underlineCSIPart(r.Underline)...)
	switch r.Blink {
	case BlinkNormal:
		parts = append(parts, "5")
	case BlinkRapid:
		parts = append(parts, "6")
	}
	if r.Inverted {
		parts = append(parts, "7")
	}
	if r.Invisible {
		parts = append(parts, "8")
	}
	if r.StrikeThrough {
		parts = append(parts, "9")
	}
	parts = append(parts, colorCSIParts(r.Foreground, 38, 39)...)
	parts = append(parts, colorCSIParts(r.Background, 48, 49)...)
	if r.Overline {
		parts = append(parts, "53")
	}
	parts = append(parts, underlineColorCSIParts(r.UnderlineColor)...)
	if len(parts) == 0 {
		return "0"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ";" + p
	}
	return out
}

func underlineCSIPart(u UnderlineStyle) []string {
	switch u {
	case UnderlineSingle:
		return []string{"4"}
	case UnderlineDouble:
		return []string{"4:2"}
	case UnderlineCurly:
		return []string{"4:3"}
	case UnderlineDotted:
		return []string{"4:4"}
	case UnderlineDashed:
		return []string{"4:5"}
	default:
		return nil
	}
}

func colorCSIParts(c Color, extCode, defCode int) []string {
	switch c.Kind {
	case ColorPalette:
		if c.Palette < 8 {
			return []string{strconv.Itoa(baseForExt(extCode) + int(c.Palette))}
		}
		if c.Palette < 16 {
			return []string{strconv.Itoa(brightBaseForExt(extCode) + int(c.Palette) - 8)}
		}
		return []string{strconv.Itoa(extCode) + ":5:" + strconv.Itoa(int(c.Palette))}
	case ColorRGB:
		return []string{strconv.Itoa(extCode) + ":2::" + strconv.Itoa(int(c.R)) + ":" + strconv.Itoa(int(c.G)) + ":" + strconv.Itoa(int(c.B))}
	case ColorDefault:
		return []string{strconv.Itoa(defCode)}
	default:
		return nil
	}
}

func underlineColorCSIParts(c Color) []string {
	switch c.Kind {
	case ColorPalette:
		return []string{"58:5:" + strconv.Itoa(int(c.Palette))}
	case ColorRGB:
		return []string{"58:2::" + strconv.Itoa(int(c.R)) + ":" + strconv.Itoa(int(c.G)) + ":" + strconv.Itoa(int(c.B))}
	case ColorDefault:
		return []string{"59"}
	default:
		return nil
	}
}

func baseForExt(extCode int) int {
	if extCode == 38 {
		return 30
	}
	return 40
}

func brightBaseForExt(extCode int) int {
	if extCode == 38 {
		return 90
	}
	return 100
}
