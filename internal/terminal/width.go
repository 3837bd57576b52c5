package terminal

import "github.com/mattn/go-runewidth"

// WidthFunc computes the display width, in cells, of a grapheme cluster
// given as its leading rune plus any combining runes that follow it.
// spec.md §9 calls character width "a pluggable interface... the width
// function is a collaborator" — the core assumes Unicode grapheme
// clusters for cursor advance but never measures real glyph metrics.
type WidthFunc func(cluster []rune) int

// DefaultWidthFunc is grounded on the teacher's use of go-runewidth for
// East-Asian-wide/ambiguous rune handling. It returns 0 for clusters whose
// lead rune is a combining mark (spec.md §4.6: "0 for combining marks,
// which attach to the previous cell"), 2 for wide/emoji-presentation, and
// 1 otherwise.
func DefaultWidthFunc(cluster []rune) int {
	if len(cluster) == 0 {
		return 0
	}
	lead := cluster[0]
	if runewidth.RuneWidth(lead) == 0 && lead != 0 {
		return 0
	}
	return runewidth.RuneWidth(lead)
}
