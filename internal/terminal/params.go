package terminal

// subParam is one colon-separated component of a CSI/DCS parameter. It is
// either empty (the "default" bit) or holds an unsigned value.
type subParam struct {
	empty bool
	value uint32
}

// ParamList is a semicolon-separated list of parameters, each of which is
// itself a colon-separated list of sub-parameters. An empty ParamList
// (e.g. bare "CSI m") is distinguishable from a ParamList whose sole
// parameter has a single empty sub-parameter (e.g. "CSI ; m" has two empty
// parameters); both are represented explicitly rather than collapsed.
type ParamList struct {
	params [][]subParam
}

// newParamList parses the parameter bytes of a CSI/DCS sequence: ASCII
// digits, ';' (parameter separator) and ':' (sub-parameter separator).
// Consecutive separators insert empty slots, matching vt100.net's
// dec_ansi_parser semantics for the "param" character class.
func newParamList(raw []byte) ParamList {
	if len(raw) == 0 {
		return ParamList{}
	}
	var pl ParamList
	cur := []subParam{{empty: true}}
	flush := func() {
		pl.params = append(pl.params, cur)
		cur = []subParam{{empty: true}}
	}
	for _, b := range raw {
		switch {
		case b == ';':
			flush()
		case b == ':':
			cur = append(cur, subParam{empty: true})
		case b >= '0' && b <= '9':
			last := &cur[len(cur)-1]
			if last.empty {
				last.empty = false
				last.value = 0
			}
			last.value = last.value*10 + uint32(b-'0')
		}
	}
	flush()
	return pl
}

// Len reports the number of top-level parameters.
func (p ParamList) Len() int { return len(p.params) }

// SubLen reports the number of sub-parameters at the given top-level index.
func (p ParamList) SubLen(i int) int {
	if i < 0 || i >= len(p.params) {
		return 0
	}
	return len(p.params[i])
}

// Get returns the value of the first sub-parameter at index i, or def if
// the index is out of range or the slot is empty.
func (p ParamList) Get(i int, def uint32) uint32 {
	return p.GetSub(i, 0, def)
}

// GetSub returns the value of sub-parameter j within parameter i, or def
// if either index is out of range or the slot is empty.
func (p ParamList) GetSub(i, j int, def uint32) uint32 {
	if i < 0 || i >= len(p.params) {
		return def
	}
	sub := p.params[i]
	if j < 0 || j >= len(sub) {
		return def
	}
	if sub[j].empty {
		return def
	}
	return sub[j].value
}

// IsEmpty reports whether parameter i's first sub-parameter is the
// empty/default slot (as opposed to an explicit 0).
func (p ParamList) IsEmpty(i int) bool {
	if i < 0 || i >= len(p.params) {
		return true
	}
	return p.params[i][0].empty
}

// Print is the inverse of newParamList: it reproduces the canonical
// semicolon/colon-separated textual form. Used by DECRQSS/DECRQM style
// reports that echo parameters back.
func (p ParamList) Print() string {
	var out []byte
	for i, param := range p.params {
		if i > 0 {
			out = append(out, ';')
		}
		for j, sub := range param {
			if j > 0 {
				out = append(out, ':')
			}
			if !sub.empty {
				out = appendUint(out, sub.value)
			}
		}
	}
	return string(out)
}

func appendUint(out []byte, v uint32) []byte {
	if v == 0 {
		return append(out, '0')
	}
	var buf [10]byte
	n := len(buf)
	for v > 0 {
		n--
		buf[n] = byte('0' + v%10)
		v /= 10
	}
	return append(out, buf[n:]...)
}
