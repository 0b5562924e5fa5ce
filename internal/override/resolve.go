package override

import (
	"github.com/ariel-frischer/overcheck/internal/class"
)

const (
	reasonNilClass   = "nil class cannot be verified"
	reasonNoAncestor = "class declares no meaningful ancestor; override verification requires inheritance"
	reasonLinearize  = "ancestry cannot be linearized"
	reasonMultiple   = "multiple inheritance has no single authoritative ancestor; enable multiple inheritance to use the C3 order"
)

// ResolveAuthority returns the authoritative ancestor of c under mode.
// Only single-chain ancestries are accepted; see Verifier for opting into
// multiple inheritance.
func ResolveAuthority(c *class.Class, mode Mode) (*class.Class, error) {
	return resolveAuthority(c, mode, false)
}

func resolveAuthority(c *class.Class, mode Mode, allowMultiple bool) (*class.Class, error) {
	if c == nil {
		return nil, &ClassHierarchyError{Class: "<nil>", Reason: reasonNilClass}
	}

	parsed, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}

	chain, err := class.Ancestry(c)
	if err != nil {
		return nil, &ClassHierarchyError{Class: c.Name(), Reason: reasonLinearize, Err: err}
	}
	if len(chain) == 0 {
		return nil, &ClassHierarchyError{Class: c.Name(), Reason: reasonNoAncestor}
	}
	if !allowMultiple && !class.IsLinear(c) {
		return nil, &ClassHierarchyError{Class: c.Name(), Reason: reasonMultiple}
	}

	if parsed == ModeTopmost {
		return chain[len(chain)-1], nil
	}
	return chain[0], nil
}
