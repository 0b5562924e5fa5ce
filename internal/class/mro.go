package class

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInconsistentHierarchy is returned when no linearization preserves both
// the local precedence order of bases and the order of every base's own
// linearization.
var ErrInconsistentHierarchy = errors.New("cannot create a consistent linearization")

// Linearize returns the C3 linearization of c: c itself first, then its
// ancestors, ending with Object. Ties are broken by the declaration order of
// bases, so the result is deterministic.
func Linearize(c *Class) ([]*Class, error) {
	if c == nil {
		return nil, errors.New("linearize: nil class")
	}
	if len(c.bases) == 0 {
		return []*Class{c}, nil
	}

	seqs := make([][]*Class, 0, len(c.bases)+1)
	for _, b := range c.bases {
		l, err := Linearize(b)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, l)
	}
	seqs = append(seqs, append([]*Class(nil), c.bases...))

	merged, err := merge(seqs)
	if err != nil {
		return nil, fmt.Errorf("%w for class %s: %v", ErrInconsistentHierarchy, c.name, err)
	}
	return append([]*Class{c}, merged...), nil
}

// merge performs the C3 merge step over the given sequences.
func merge(seqs [][]*Class) ([]*Class, error) {
	var out []*Class
	for {
		seqs = dropEmpty(seqs)
		if len(seqs) == 0 {
			return out, nil
		}

		var head *Class
		for _, s := range seqs {
			if !inAnyTail(s[0], seqs) {
				head = s[0]
				break
			}
		}
		if head == nil {
			return nil, fmt.Errorf("conflicting bases %s", describeHeads(seqs))
		}

		out = append(out, head)
		for i, s := range seqs {
			if s[0] == head {
				seqs[i] = s[1:]
			}
		}
	}
}

func dropEmpty(seqs [][]*Class) [][]*Class {
	kept := seqs[:0]
	for _, s := range seqs {
		if len(s) > 0 {
			kept = append(kept, s)
		}
	}
	return kept
}

func inAnyTail(c *Class, seqs [][]*Class) bool {
	for _, s := range seqs {
		for _, k := range s[1:] {
			if k == c {
				return true
			}
		}
	}
	return false
}

func describeHeads(seqs [][]*Class) string {
	seen := make(map[*Class]bool)
	var names []string
	for _, s := range seqs {
		if !seen[s[0]] {
			seen[s[0]] = true
			names = append(names, s[0].name)
		}
	}
	return strings.Join(names, ", ")
}

// Ancestry returns the ancestors of c nearest-first, excluding c itself and
// the universal root.
func Ancestry(c *Class) ([]*Class, error) {
	order, err := Linearize(c)
	if err != nil {
		return nil, err
	}
	chain := make([]*Class, 0, len(order))
	for _, k := range order[1:] {
		if !k.IsRoot() {
			chain = append(chain, k)
		}
	}
	return chain, nil
}

// IsLinear reports whether c and every ancestor declare at most one base
// other than the universal root, i.e. the ancestry is a single chain.
func IsLinear(c *Class) bool {
	seen := make(map[*Class]bool)
	var walk func(k *Class) bool
	walk = func(k *Class) bool {
		if seen[k] {
			return true
		}
		seen[k] = true
		n := 0
		for _, b := range k.bases {
			if !b.IsRoot() {
				n++
			}
		}
		if n > 1 {
			return false
		}
		for _, b := range k.bases {
			if !walk(b) {
				return false
			}
		}
		return true
	}
	return walk(c)
}

// resolutionOrder is the lookup order for c. Inconsistent hierarchies fall
// back to a depth-first, left-to-right walk without duplicates.
func resolutionOrder(c *Class) []*Class {
	if order, err := Linearize(c); err == nil {
		return order
	}
	seen := make(map[*Class]bool)
	var order []*Class
	var walk func(k *Class)
	walk = func(k *Class) {
		if seen[k] {
			return
		}
		seen[k] = true
		order = append(order, k)
		for _, b := range k.bases {
			walk(b)
		}
	}
	walk(c)
	return order
}
