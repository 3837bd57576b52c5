package terminal

import (
	"encoding/base64"
	"strings"
)

// dispatchOSC implements the OSC handlers of spec.md §4.8: window title
// (0/2, carried over from the ambient xterm behavior), 52 (clipboard),
// 8 (hyperlink), 66 (text-sizing), and 133 (semantic prompt markers).
func (t *Terminal) dispatchOSC(ev ParserEvent) {
	code, rest := splitOSC(ev.OSCData)
	switch code {
	case "0", "2":
		t.Title = rest
	case "52":
		t.dispatchOSC52(rest)
	case "8":
		t.dispatchOSC8(rest)
	case "66":
		t.dispatchOSC66(rest)
	case "133":
		t.dispatchOSC133(rest)
	}
}

// splitOSC splits an OSC payload on its first ';', per spec.md §4.8.
func splitOSC(payload string) (code, rest string) {
	i := strings.IndexByte(payload, ';')
	if i < 0 {
		return payload, ""
	}
	return payload[:i], payload[i+1:]
}

// ClipboardWrite is one OSC 52 request. It is collected in
// Terminal.PendingClipboard, not Outgoing, for the Pane's host to act on,
// since the core cannot set a clipboard itself.
type ClipboardWrite struct {
	Selection string // "c" (clipboard), "p" (primary), etc.
	Data      []byte // decoded payload; nil if the request was a query
}

// dispatchOSC52 decodes `Pc;Pd` and appends a ClipboardWrite to
// PendingClipboard for the Pane to act on (spec.md §4.8).
func (t *Terminal) dispatchOSC52(rest string) {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		return
	}
	selection, b64 := rest[:i], rest[i+1:]
	if b64 == "?" {
		t.PendingClipboard = append(t.PendingClipboard, ClipboardWrite{Selection: selection})
		return
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return
	}
	t.PendingClipboard = append(t.PendingClipboard, ClipboardWrite{Selection: selection, Data: data})
}

// dispatchOSC8 parses `params;URI` and sets or clears the current
// hyperlink id (spec.md §4.8). An empty URI clears the current
// hyperlink.
func (t *Terminal) dispatchOSC8(rest string) {
	i := strings.IndexByte(rest, ';')
	params, uri := "", rest
	if i >= 0 {
		params, uri = rest[:i], rest[i+1:]
	}
	s := t.Active()
	if s.CurrentHyperlinkID != 0 {
		s.Active.HyperlinkIDs.DropID(s.CurrentHyperlinkID)
		s.CurrentHyperlinkID = 0
	}
	if uri == "" {
		return
	}
	id := hyperlinkIDParam(params)
	link := Hyperlink{URI: uri, ID: id}
	allocated, ok := s.Active.HyperlinkIDs.Allocate(link)
	if ok {
		s.CurrentHyperlinkID = allocated
	} else {
		s.Active.Exhaustions++
	}
}

// hyperlinkIDParam extracts the `id=...` key from OSC 8's params field.
func hyperlinkIDParam(params string) string {
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			return kv[len("id="):]
		}
	}
	return ""
}

// dispatchOSC66 parses Kitty text-sizing's `key=value:...;text` form into
// a MultiCellInfo and writes text at the cursor with it (spec.md §4.8).
// Unrecognized keys are ignored rather than erroring, matching the
// parser's general silently-ignore-malformed-input stance (spec.md §7).
func (t *Terminal) dispatchOSC66(rest string) {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		return
	}
	params, text := rest[:i], rest[i+1:]
	info := MultiCellInfo{Width: 1}
	for _, kv := range strings.Split(params, ":") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		v := parseUintSafe(parts[1])
		switch parts[0] {
		case "s":
			info.Scale = uint8(v)
		case "w":
			info.Width = uint8(v)
		case "n":
			info.FractionalNumerator = uint8(v)
		case "d":
			info.FractionalDenominator = uint8(v)
		case "v":
			info.VerticalAlign = uint8(v)
		case "h":
			info.HorizontalAlign = uint8(v)
		}
	}
	s := t.Active()
	id, ok := s.Active.MultiCellIDs.Allocate(info)
	if !ok {
		id = 0
		s.Active.Exhaustions++
	}
	for _, r := range text {
		col := s.Cursor.Col
		s.PutCodePoint([]rune{r})
		if row := s.row(s.Cursor.Row); row != nil && col < len(row.Cells) {
			row.Cells[col].MultiCellID = id
		}
	}
}

func parseUintSafe(s string) uint64 {
	var v uint64
	for _, c := range s {
		if c < '0' || c > '9' {
			return v
		}
		v = v*10 + uint64(c-'0')
	}
	return v
}

// dispatchOSC133 tracks semantic prompt markers A/B/C/D (spec.md §4.8).
func (t *Terminal) dispatchOSC133(rest string) {
	if rest == "" {
		return
	}
	switch rest[0] {
	case 'A', 'B', 'C', 'D':
		t.Commands = append(t.Commands, PromptMark{Kind: rest[0], Row: t.Active().Cursor.Row})
	}
}
