package kamilo

import "testing"

type fakeResource struct {
	closed *bool
}

func (f *fakeResource) Close() { *f.closed = true }

func TestHandleClosesOnLastDrop(t *testing.T) {
	closed := false
	h := NewHandle[*fakeResource](&fakeResource{closed: &closed}, "test")
	h2 := h.Grab()

	if h.StrongCount() != 2 {
		t.Fatalf("StrongCount() = %d, want 2", h.StrongCount())
	}
	h.Drop()
	if closed {
		t.Fatal("payload closed before last strong reference dropped")
	}
	h2.Drop()
	if !closed {
		t.Fatal("payload not closed after last strong reference dropped")
	}
	if h.Valid() {
		t.Fatal("handle must be invalid after closing")
	}
}

func TestHandleRedundantDropIsNoOp(t *testing.T) {
	n := 0
	h := NewHandle[*fakeResource](&fakeResource{closed: new(bool)}, "")
	// Override Close behavior via a counting wrapper is awkward with the
	// generic Disposer; instead verify idempotence by dropping twice.
	h.Drop()
	h.Drop() // second Drop on an already-zero handle must be a no-op
	_ = n
	if h.StrongCount() < 0 {
		t.Fatal("StrongCount went negative after redundant Drop")
	}
}

func TestWeakHandleResolvesUntilLastDrop(t *testing.T) {
	closed := false
	h := NewHandle[*fakeResource](&fakeResource{closed: &closed}, "")
	weak := h.Weak()

	if _, ok := weak.Resolve(); !ok {
		t.Fatal("weak handle should resolve while strong reference lives")
	}
	h.Drop()
	if _, ok := weak.Resolve(); ok {
		t.Fatal("weak handle must fail to resolve after strong count reaches zero")
	}
}

func TestHandleLabel(t *testing.T) {
	h := NewHandle[*fakeResource](&fakeResource{closed: new(bool)}, "debug-label")
	if h.Label() != "debug-label" {
		t.Fatalf("Label() = %q, want %q", h.Label(), "debug-label")
	}
	var zero Handle[*fakeResource]
	if zero.Label() != "" {
		t.Fatal("zero-value Handle must report empty label")
	}
	if zero.Valid() {
		t.Fatal("zero-value Handle must not be valid")
	}
}
