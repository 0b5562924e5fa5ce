package override

import "github.com/ariel-frischer/overcheck/internal/class"

// VerifyMembers checks every marked method declared directly on c against
// authority. A counterpart of any kind found on authority or its ancestors
// satisfies the mark; signatures are not compared. All violations are
// returned, in declaration order.
func VerifyMembers(c, authority *class.Class) []Violation {
	var violations []Violation
	for _, e := range c.Members() {
		if !IsMarked(e.Member) {
			continue
		}
		if authority.Has(e.Name) {
			continue
		}
		violations = append(violations, &MethodOverrideError{
			Class:     c.Name(),
			Member:    e.Name,
			Authority: authority.Name(),
		})
	}
	return violations
}
