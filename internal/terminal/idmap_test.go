package terminal

import "testing"

func TestIdMapAllocateDedup(t *testing.T) {
	m := NewIdMap[Rendition]()
	a, ok := m.Allocate(Rendition{Weight: WeightBold})
	if !ok || a == 0 {
		t.Fatalf("allocate failed: %d %v", a, ok)
	}
	b, ok := m.Allocate(Rendition{Weight: WeightBold})
	if !ok || b != a {
		t.Fatalf("expected dedup to reuse id, got %d vs %d", b, a)
	}
	if got := m.RefCount(a); got != 2 {
		t.Fatalf("refcount = %d, want 2", got)
	}
}

func TestIdMapLookup(t *testing.T) {
	m := NewIdMap[Rendition]()
	want := Rendition{Italic: true}
	id, _ := m.Allocate(want)
	got, ok := m.Lookup(id)
	if !ok || got != want {
		t.Fatalf("lookup = %+v, %v", got, ok)
	}
	if _, ok := m.Lookup(id + 1); ok {
		t.Fatalf("expected miss on unallocated id")
	}
}

func TestIdMapDropFreesSlot(t *testing.T) {
	m := NewIdMap[Rendition]()
	id, _ := m.Allocate(Rendition{Weight: WeightBold})
	m.DropID(id)
	if _, ok := m.Lookup(id); ok {
		t.Fatalf("expected id to be freed after drop")
	}
	if m.Len() != 0 {
		t.Fatalf("len = %d, want 0", m.Len())
	}
	// Same value allocated again should be able to reuse an id (not
	// necessarily the same one, but allocation must succeed).
	id2, ok := m.Allocate(Rendition{Weight: WeightBold})
	if !ok || id2 == 0 {
		t.Fatalf("reallocate failed: %d %v", id2, ok)
	}
}

func TestIdMapRefcountBalance(t *testing.T) {
	m := NewIdMap[Rendition]()
	id, _ := m.Allocate(Rendition{Italic: true})
	m.UseID(id)
	m.UseID(id)
	if got := m.RefCount(id); got != 3 {
		t.Fatalf("refcount = %d, want 3", got)
	}
	m.DropID(id)
	m.DropID(id)
	if _, ok := m.Lookup(id); !ok {
		t.Fatalf("id dropped too early")
	}
	m.DropID(id)
	if _, ok := m.Lookup(id); ok {
		t.Fatalf("id should be freed once refcount reaches 0")
	}
}

func TestIdMapDistinctValuesGetDistinctIds(t *testing.T) {
	m := NewIdMap[Rendition]()
	a, _ := m.Allocate(Rendition{Weight: WeightBold})
	b, _ := m.Allocate(Rendition{Weight: WeightDim})
	if a == b {
		t.Fatalf("distinct values collided on id %d", a)
	}
}

func TestIdMapReservedZero(t *testing.T) {
	m := NewIdMap[Rendition]()
	if _, ok := m.Lookup(0); ok {
		t.Fatalf("id 0 must start unallocated so callers can bind it to a well-known singleton")
	}
	id, _ := m.Allocate(Rendition{Weight: WeightBold})
	if id == 0 {
		t.Fatalf("Allocate must never hand out reserved id 0")
	}
}
