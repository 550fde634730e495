// Released under an MIT license. See LICENSE.

package token

// Vec is an append-only sequence of tokens. A Vec has two lifecycles:
//
//   - a per-file vector, built by a module loader one token at a time
//     and then Sealed, after which it is immutable forever;
//   - a compile-time vector, owned by an Arena, written once by a macro
//     expansion or synthesis step and then Frozen before any other
//     component is allowed to read it.
//
// In both cases the same invariant holds: once any other component has
// observed a Vec, its backing array is never reallocated. Vec enforces
// this by refusing to grow once sealed/frozen, and by pre-growing
// generously before publication.
type Vec struct {
	toks   []T
	frozen bool
}

// NewVec creates a Vec with capacity reserved up front so early appends
// don't reallocate while a producer is still the only owner.
func NewVec(capacity int) *Vec {
	return &Vec{toks: make([]T, 0, capacity)}
}

// Push appends a token. Panics if the Vec is frozen — a frozen Vec may
// have outstanding pointers into it (via Expression or *T) and growing
// its backing array would invalidate them.
func (v *Vec) Push(t T) int {
	if v.frozen {
		panic("token.Vec: Push on a frozen vector")
	}

	v.toks = append(v.toks, t)

	return len(v.toks) - 1
}

// Freeze makes the Vec immutable. Sealing a per-file vector and
// freezing a compile-time vector are the same operation.
func (v *Vec) Freeze() {
	v.frozen = true
}

// Frozen reports whether the vector can still be appended to.
func (v *Vec) Frozen() bool {
	return v.frozen
}

// Len returns the number of tokens.
func (v *Vec) Len() int {
	return len(v.toks)
}

// At returns a pointer to the token at i. The pointer is stable for the
// lifetime of the Vec (see the type doc comment).
func (v *Vec) At(i int) *T {
	return &v.toks[i]
}

// Slice returns the token values in [start, end). The returned slice
// aliases the Vec's backing array; callers must not retain it past a
// point where the Vec could be destroyed.
func (v *Vec) Slice(start, end int) []T {
	return v.toks[start:end]
}
