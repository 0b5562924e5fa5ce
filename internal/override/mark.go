package override

import "github.com/ariel-frischer/overcheck/internal/class"

// Mark wraps fn in a method that claims to override a same-named member of
// an ancestor. fn is stored as given; only the wrapper carries the mark, and
// nothing is validated until VerifyClass runs.
func Mark(fn any) *class.Method {
	return &class.Method{Fn: fn, Overrides: true}
}

// IsMarked reports whether m is a method marked as an override.
func IsMarked(m class.Member) bool {
	method, ok := m.(*class.Method)
	return ok && method != nil && method.Overrides
}
