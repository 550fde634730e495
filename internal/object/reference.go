// Released under an MIT license. See LICENSE.

package object

import "github.com/symc-lang/symc/internal/token"

// Reference is a pending use of a symbol not yet bound to a
// definition. It carries everything the resolver needs to re-enter
// evaluation at the use site once the referent appears.
type Reference struct {
	// Referrer is the definition that made this reference, used both
	// to propagate Required and to blame a stalled build on a specific
	// definition.
	Referrer *Definition

	// Tok is the token that named the referent.
	Tok *token.T

	// Required mirrors Referrer.Required at the time the reference was
	// recorded; the resolver ORs this into the referent's Required flag
	// once resolved.
	Required bool

	// Resume stands in for the (context, expression) pair needed to
	// re-evaluate the referent's use site. It is opaque to this
	// package — evalctx.Context is the concrete context type, but
	// importing it here would create an import cycle, so callers stash
	// whatever they need in this callback.
	Resume func()
}

// Name returns the referenced symbol's text.
func (r *Reference) Name() string {
	if r.Tok == nil {
		return ""
	}

	return r.Tok.Text
}
