package terminal

import (
	"testing"
)

func TestDecodeAllASCII(t *testing.T) {
	got := DecodeAll([]byte("hello"))
	want := []rune("hello")
	if string(got) != string(want) {
		t.Fatalf("got %q want %q", string(got), string(want))
	}
}

func TestDecodeAllMultibyte(t *testing.T) {
	s := "héllo wörld 日本語 🎉"
	got := DecodeAll([]byte(s))
	if string(got) != s {
		t.Fatalf("got %q want %q", string(got), s)
	}
}

func TestDecodeAllInvalidContinuation(t *testing.T) {
	// 0xC2 0x20: a two-byte lead followed by a byte outside the
	// continuation range. Expect one U+FFFD for the lead, then the space.
	got := DecodeAll([]byte{0xC2, 0x20})
	want := []rune{replacementChar, ' '}
	if string(got) != string(want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeAllTruncatedAtEOF(t *testing.T) {
	got := DecodeAll([]byte{0xE2, 0x82}) // incomplete €
	want := []rune{replacementChar}
	if string(got) != string(want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeAllLoneContinuation(t *testing.T) {
	got := DecodeAll([]byte{0x80})
	if len(got) != 1 || got[0] != replacementChar {
		t.Fatalf("got %v", got)
	}
}

func TestDecodeAllOverlong(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of NUL: invalid.
	got := DecodeAll([]byte{0xC0, 0x80})
	// 0xC0 itself is an immediately-invalid lead (< 0xC2); 0x80 is a lone
	// continuation byte, also invalid on its own.
	want := []rune{replacementChar, replacementChar}
	if string(got) != string(want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

// TestSplitInvariant checks the round-trip property from spec.md §8: for
// every valid UTF-8 input and every split point, decoding the two halves
// separately and concatenating equals decoding the whole.
func TestSplitInvariant(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"hello, world",
		"héllo wörld",
		"日本語のテスト",
		"🎉🎊🥳",
		"mixed a日b🎉c",
	}
	for _, s := range inputs {
		b := []byte(s)
		for split := 0; split <= len(b); split++ {
			// One decoder, state carried across the split: the contract
			// only promises the property when Flush is called once, at
			// the true end of the stream, not between arbitrary chunks.
			var d CodepointDecoder
			var out []rune
			for _, c := range b[:split] {
				out = d.Push(c, out)
			}
			for _, c := range b[split:] {
				out = d.Push(c, out)
			}
			out = d.Flush(out)

			whole := DecodeAll(b)
			if string(out) != string(whole) {
				t.Fatalf("split invariant failed for %q at %d: got %q want %q", s, split, out, whole)
			}
		}
	}
}
