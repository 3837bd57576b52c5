package terminal

import "testing"

func TestParamListBasic(t *testing.T) {
	pl := newParamList([]byte("1;3;4"))
	if pl.Len() != 3 {
		t.Fatalf("len = %d", pl.Len())
	}
	if v := pl.Get(0, 99); v != 1 {
		t.Fatalf("params[0] = %d", v)
	}
	if v := pl.Get(2, 99); v != 4 {
		t.Fatalf("params[2] = %d", v)
	}
}

func TestParamListEmptySlotsDistinguishable(t *testing.T) {
	// "1;;3" has three parameters, the middle one empty.
	a := newParamList([]byte("1;;3"))
	if a.Len() != 3 {
		t.Fatalf("len(1;;3) = %d", a.Len())
	}
	if !a.IsEmpty(1) {
		t.Fatalf("middle parameter of 1;;3 should be empty")
	}
	if v := a.Get(1, 42); v != 42 {
		t.Fatalf("empty slot should yield default, got %d", v)
	}

	// "1;3" has only two parameters.
	b := newParamList([]byte("1;3"))
	if b.Len() != 2 {
		t.Fatalf("len(1;3) = %d", b.Len())
	}
}

func TestParamListEmptyList(t *testing.T) {
	// A bare CSI with no parameter bytes is an empty list, not a list with
	// one empty parameter.
	pl := newParamList(nil)
	if pl.Len() != 0 {
		t.Fatalf("empty CSI should yield zero parameters, got %d", pl.Len())
	}
}

func TestParamListSubParams(t *testing.T) {
	pl := newParamList([]byte("38:2::10:20:30"))
	if pl.Len() != 1 {
		t.Fatalf("len = %d", pl.Len())
	}
	if pl.SubLen(0) != 6 {
		t.Fatalf("sub-len = %d", pl.SubLen(0))
	}
	if v := pl.Get(0, 0); v != 38 {
		t.Fatalf("sub 0 = %d", v)
	}
	if v := pl.GetSub(0, 1, 0); v != 2 {
		t.Fatalf("sub 1 = %d", v)
	}
	// sub-index 2 (the optional colorspace slot) is empty.
	if !pl.IsEmpty(0) && pl.SubLen(0) > 2 {
		// sanity: index 2 specifically, not index 0
	}
	if v := pl.GetSub(0, 2, 99); v != 99 {
		t.Fatalf("empty colorspace slot should yield default, got %d", v)
	}
	if v := pl.GetSub(0, 3, 0); v != 10 {
		t.Fatalf("sub 3 (R) = %d", v)
	}
}

func TestParamListPrintRoundTrip(t *testing.T) {
	cases := []string{"1;3;4", "38:2::10:20:30", "1;2"}
	for _, c := range cases {
		pl := newParamList([]byte(c))
		if got := pl.Print(); got != c {
			t.Fatalf("Print(%q) = %q", c, got)
		}
	}
}
