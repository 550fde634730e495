// Released under an MIT license. See LICENSE.

package token

// Arena owns every compile-time token vector created during a
// compilation: macro expansions, gensym'd symbol tokens, and any other
// token sequence synthesized rather than read from a file. Per-file
// vectors are owned by the module loader instead, the only other
// owner of token storage; Arena never touches those.
type Arena struct {
	owned []*Vec
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc returns a new mutable Vec whose lifetime the Arena controls. The
// caller fills it (e.g. a macro's expansion), then calls Freeze on it
// once other components may observe it.
func (a *Arena) Alloc(capacityHint int) *Vec {
	v := NewVec(capacityHint)
	a.owned = append(a.owned, v)

	return v
}

// Count returns the number of vectors the arena owns. Useful for tests
// asserting that macro expansion actually allocated.
func (a *Arena) Count() int {
	return len(a.owned)
}

// Destroy releases every vector the arena owns. It must run only after
// the caller has established that no outstanding pointer into any owned
// vector is still needed — typically, only at Environment teardown.
func (a *Arena) Destroy() {
	a.owned = nil
}
