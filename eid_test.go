package kamilo

import "testing"

func TestEIDNeverIssuesZero(t *testing.T) {
	var a eidAllocator
	for i := 0; i < 10; i++ {
		id := a.create()
		if !id.Valid() {
			t.Fatalf("create() #%d returned the invalid zero EID", i)
		}
	}
}

func TestEIDNotReusedAfterDispose(t *testing.T) {
	var a eidAllocator
	first := a.create()
	if !a.valid(first) {
		t.Fatal("freshly created EID must be valid")
	}
	a.dispose(first)
	if a.valid(first) {
		t.Fatal("disposed EID must become invalid")
	}
	second := a.create()
	if second == first {
		t.Fatal("disposed EID slot issued the identical EID value")
	}
}

func TestEIDStaleReferenceInvalidAfterRecycle(t *testing.T) {
	var a eidAllocator
	ids := make([]EID, 0, recycleThreshold+5)
	for i := 0; i < recycleThreshold+5; i++ {
		ids = append(ids, a.create())
	}
	stale := ids[0]
	for _, id := range ids {
		a.dispose(id)
	}
	// Enough dispose/create cycles to push the freed slot back into use.
	for i := 0; i < recycleThreshold+5; i++ {
		a.create()
	}
	if a.valid(stale) {
		t.Fatal("stale EID from a recycled slot must read as invalid")
	}
}
