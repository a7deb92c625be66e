package kamilo

import "sync/atomic"

// handle.go implements the reference-counted shared-ownership primitive
// (spec 4.B) for any payload implementing Disposer. No engine object
// (texture, shader, mesh, scene, audio buffer or tag index entry) is
// wrapped in a Handle by this module; only callers create Handles.

// Disposer is implemented by the payload a Handle owns. Close is called
// exactly once, when the strong count reaches zero.
type Disposer interface {
	Close()
}

// Handle is a thread-safe shared-ownership wrapper around a value of type
// T. Grab increments the strong count; Drop decrements it and runs the
// payload's Close exactly once when it reaches zero. Weak references
// (obtained via Weak) observe invalidation after that point without
// themselves keeping the payload alive.
type Handle[T Disposer] struct {
	box *handleBox[T]
}

type handleBox[T Disposer] struct {
	strong int32
	weak   int32
	value  T
	label  string
	closed int32
}

// NewHandle wraps value in a Handle with one strong reference already held.
// label is an optional debug string surfaced by [Handle.String].
func NewHandle[T Disposer](value T, label string) Handle[T] {
	return Handle[T]{box: &handleBox[T]{strong: 1, value: value, label: label}}
}

// Valid reports whether h refers to a live (not yet fully dropped) payload.
func (h Handle[T]) Valid() bool {
	return h.box != nil && atomic.LoadInt32(&h.box.closed) == 0
}

// Value returns the underlying payload. Callers must check Valid first;
// the zero value of T is returned when h is invalid.
func (h Handle[T]) Value() T {
	if !h.Valid() {
		var zero T
		return zero
	}
	return h.box.value
}

// Grab increments the strong count and returns h unchanged, mirroring the
// engine's grab/drop pairing convention.
func (h Handle[T]) Grab() Handle[T] {
	if h.box != nil {
		atomic.AddInt32(&h.box.strong, 1)
	}
	return h
}

// Drop decrements the strong count. When it reaches zero the payload's
// Close method runs exactly once. Safe to call multiple times; subsequent
// calls on an already-zero handle are no-ops.
func (h Handle[T]) Drop() {
	if h.box == nil {
		return
	}
	for {
		cur := atomic.LoadInt32(&h.box.strong)
		if cur <= 0 {
			return
		}
		if atomic.CompareAndSwapInt32(&h.box.strong, cur, cur-1) {
			if cur == 1 && atomic.CompareAndSwapInt32(&h.box.closed, 0, 1) {
				h.box.value.Close()
			}
			return
		}
	}
}

// StrongCount returns the current strong reference count.
func (h Handle[T]) StrongCount() int32 {
	if h.box == nil {
		return 0
	}
	return atomic.LoadInt32(&h.box.strong)
}

// Weak returns a weak reference to h's payload. A weak reference never
// blocks the payload's destruction and can always be queried for validity.
func (h Handle[T]) Weak() WeakHandle[T] {
	if h.box != nil {
		atomic.AddInt32(&h.box.weak, 1)
	}
	return WeakHandle[T]{box: h.box}
}

// Label returns the handle's debug label, or "" if none was given.
func (h Handle[T]) Label() string {
	if h.box == nil {
		return ""
	}
	return h.box.label
}

// WeakHandle observes a Handle's payload without contributing to its strong
// count. Resolve fails once the strong count has reached zero.
type WeakHandle[T Disposer] struct {
	box *handleBox[T]
}

// Resolve returns the payload and true if still live, or the zero value and
// false if the owning Handle has already dropped to zero strong references.
func (w WeakHandle[T]) Resolve() (T, bool) {
	if w.box == nil || atomic.LoadInt32(&w.box.closed) != 0 {
		var zero T
		return zero, false
	}
	return w.box.value, true
}
