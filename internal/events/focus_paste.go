package events

// FocusEvent is true for focus-gained, false for focus-lost. It is a
// named bool so a Pane's event dispatch can switch on type alongside
// KeyEvent/MouseEvent/PasteText.
type FocusEvent bool

// PasteText carries a bracketed- or raw-paste payload.
type PasteText string

// EncodeFocus renders a focus-in/out report, or nil when focus mode is
// off (spec.md §4.9: "`\033[I` / `\033[O` only when focus mode is
// enabled").
func EncodeFocus(gained bool, focusMode bool) []byte {
	if !focusMode {
		return nil
	}
	if gained {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}

// EncodePaste wraps text in bracketed-paste markers when the mode is
// enabled, otherwise passes it through raw (spec.md §4.9).
func EncodePaste(text string, bracketed bool) []byte {
	if !bracketed {
		return []byte(text)
	}
	out := make([]byte, 0, len(text)+16)
	out = append(out, "\x1b[200~"...)
	out = append(out, text...)
	out = append(out, "\x1b[201~"...)
	return out
}
