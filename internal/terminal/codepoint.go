package terminal

// CodepointDecoder converts a byte stream into a lazy sequence of Unicode
// scalar values, replacing invalid sub-sequences per the Unicode "maximal
// subpart" substitution rule (Unicode core spec, chapter 3, table 3-7). It
// is safe to feed bytes one at a time across arbitrary call boundaries:
// splitting a valid UTF-8 byte string at any point and decoding each half
// in turn yields the same code points as decoding the whole string at
// once.
type CodepointDecoder struct {
	want       int  // continuation bytes still needed
	cp         rune // code point accumulated so far
	lowerBound byte
	upperBound byte
}

const replacementChar rune = 0xFFFD

// classifyLead starts a new sequence from a leading byte. It appends
// directly to out: either the byte's own code point (ASCII, or an
// immediately-invalid lead replaced by U+FFFD) or nothing, if the lead
// begins a pending multi-byte sequence.
func (d *CodepointDecoder) classifyLead(b byte, out []rune) []rune {
	switch {
	case b < 0x80:
		return append(out, rune(b))
	case b < 0xC2:
		// bare continuation byte, or overlong 2-byte lead (C0/C1): invalid
		return append(out, replacementChar)
	case b < 0xE0:
		d.want, d.cp = 1, rune(b&0x1F)
		d.lowerBound, d.upperBound = 0x80, 0xBF
	case b == 0xE0:
		d.want, d.cp = 2, rune(b&0x0F)
		d.lowerBound, d.upperBound = 0xA0, 0xBF
	case b == 0xED:
		d.want, d.cp = 2, rune(b&0x0F)
		d.lowerBound, d.upperBound = 0x80, 0x9F
	case b < 0xF0:
		d.want, d.cp = 2, rune(b&0x0F)
		d.lowerBound, d.upperBound = 0x80, 0xBF
	case b == 0xF0:
		d.want, d.cp = 3, rune(b&0x07)
		d.lowerBound, d.upperBound = 0x90, 0xBF
	case b == 0xF4:
		d.want, d.cp = 3, rune(b&0x07)
		d.lowerBound, d.upperBound = 0x80, 0x8F
	case b < 0xF5:
		d.want, d.cp = 3, rune(b&0x07)
		d.lowerBound, d.upperBound = 0x80, 0xBF
	default:
		return append(out, replacementChar)
	}
	return out
}

// Push feeds one byte and appends zero, one, or (on a malformed boundary
// followed immediately by a fresh lead) two code points to out, returning
// the extended slice. Callers typically pass a reused zero-length slice.
func (d *CodepointDecoder) Push(b byte, out []rune) []rune {
	if d.want == 0 {
		return d.classifyLead(b, out)
	}
	if b < d.lowerBound || b > d.upperBound {
		// Malformed continuation: the pending sequence's maximal valid
		// subpart becomes one U+FFFD, then b is reclassified as if it
		// were the first byte of a brand new sequence.
		d.want = 0
		out = append(out, replacementChar)
		return d.classifyLead(b, out)
	}
	d.cp = d.cp<<6 | rune(b&0x3F)
	d.want--
	d.lowerBound, d.upperBound = 0x80, 0xBF
	if d.want == 0 {
		cp := d.cp
		d.cp = 0
		return append(out, cp)
	}
	return out
}

// Flush reports a trailing U+FFFD if a partial sequence was pending at
// end of input.
func (d *CodepointDecoder) Flush(out []rune) []rune {
	if d.want != 0 {
		d.want = 0
		d.cp = 0
		return append(out, replacementChar)
	}
	return out
}

// DecodeAll decodes a complete byte string into code points in one shot.
// Used by tests and call sites that already hold a whole buffer.
func DecodeAll(b []byte) []rune {
	var d CodepointDecoder
	out := make([]rune, 0, len(b))
	for _, c := range b {
		out = d.Push(c, out)
	}
	out = d.Flush(out)
	return out
}
