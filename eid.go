package kamilo

// eid.go implements entity identity: a packed (index, edition) value that is
// never reused while its edition is still valid. Index bits are used as an
// array index into the engine's live-node table; edition bits detect stale
// references to a slot that has since been recycled.

// EID is an opaque per-node identity, unique within a process run until its
// slot is recycled (at which point the edition half changes, so old EID
// values compare unequal to the new occupant).
type EID uint32

const (
	eidIndexBits = 20
	eidEditionBits = 12
	maxEIDIndex    = (1 << eidIndexBits) - 1
	maxEIDEdition  = (1 << eidEditionBits) - 1
)

// index returns the array-index portion of e.
func (e EID) index() uint32 { return uint32(e) & maxEIDIndex }

// edition returns the edition portion of e.
func (e EID) edition() uint32 { return (uint32(e) >> eidIndexBits) & maxEIDEdition }

// Valid reports whether e is anything other than the reserved zero value.
// It does not by itself prove the entity is still live; use
// [Engine.IsLive] for that.
func (e EID) Valid() bool { return e != 0 }

// eidAllocator issues EID values with a free-list so that disposed slots are
// recycled only after their edition counter has advanced, guaranteeing a
// disposed EID is never observably equal to a freshly allocated one until
// the edition counter wraps (practically never, at 4096 generations/slot).
type eidAllocator struct {
	editions []uint16
	free     []uint32
}

// recycleThreshold defers reuse of freed slots until this many are pending,
// giving stale EIDs a wider window before their slot is handed out again.
const recycleThreshold = 1 << (eidEditionBits - 1)

// create allocates a fresh EID. Returns 0 (invalid) if the id space is
// exhausted, which is a design error to be caught during development.
//
// Index 0 is never handed out: edition 0 at index 0 would pack to the
// all-zero EID, indistinguishable from the invalid sentinel. The
// allocator reserves slot 0 up front so every issued EID is nonzero.
func (a *eidAllocator) create() EID {
	if len(a.editions) == 0 {
		a.editions = append(a.editions, 0) // reserve index 0, never issued
	}
	var idx uint32
	if len(a.free) > recycleThreshold {
		idx = a.free[0]
		a.free = append(a.free[:0], a.free[1:]...)
	} else {
		a.editions = append(a.editions, 0)
		idx = uint32(len(a.editions) - 1)
		if idx > maxEIDIndex {
			if len(a.free) == 0 {
				return 0
			}
			idx = a.free[0]
			a.free = append(a.free[:0], a.free[1:]...)
		}
	}
	return EID(idx | uint32(a.editions[idx])<<eidIndexBits)
}

// valid reports whether e refers to a slot that has not since been disposed.
func (a *eidAllocator) valid(e EID) bool {
	idx := e.index()
	if idx >= uint32(len(a.editions)) {
		return false
	}
	return uint32(a.editions[idx]) == e.edition()
}

// dispose invalidates e's slot and queues it for eventual reuse.
func (a *eidAllocator) dispose(e EID) {
	idx := e.index()
	if idx >= uint32(len(a.editions)) {
		return
	}
	a.editions[idx]++
	a.free = append(a.free, idx)
}
