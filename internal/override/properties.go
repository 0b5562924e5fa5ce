package override

import "github.com/ariel-frischer/overcheck/internal/class"

// Reconciliation is a merged property ready to replace a subclass's own.
type Reconciliation struct {
	// Name is the property name.
	Name string
	// Property is the merged accessor triple.
	Property *class.Property
	// From is the ancestor that supplied the missing accessors.
	From *class.Class
	// Inherited lists the accessors taken from the ancestor.
	Inherited []string
}

// PlanReconciliation computes merged properties for c without installing
// them. Properties whose counterpart on authority is missing or not a
// property are left out, as are properties that would not change.
func PlanReconciliation(c, authority *class.Class) []Reconciliation {
	var plan []Reconciliation
	for _, own := range c.Properties() {
		m, owner, ok := authority.Lookup(own.Name)
		if !ok {
			continue
		}
		parent, ok := m.(*class.Property)
		if !ok {
			continue
		}
		merged, inherited := merge(own.Property, parent)
		if len(inherited) == 0 {
			continue
		}
		plan = append(plan, Reconciliation{
			Name:      own.Name,
			Property:  merged,
			From:      owner,
			Inherited: inherited,
		})
	}
	return plan
}

// ReconcileProperties installs the merged properties computed by
// PlanReconciliation on c. It never reports violations; the return value
// exists so it composes with VerifyMembers.
func ReconcileProperties(c, authority *class.Class) []Violation {
	apply(c, PlanReconciliation(c, authority))
	return nil
}

func apply(c *class.Class, plan []Reconciliation) {
	for _, r := range plan {
		c.Define(r.Name, r.Property)
	}
}

// merge keeps the subclass getter unconditionally and fills the setter,
// deleter and doc from parent where own lacks them.
func merge(own, parent *class.Property) (*class.Property, []string) {
	merged := &class.Property{
		Get: own.Get,
		Set: own.Set,
		Del: own.Del,
		Doc: own.Doc,
	}

	var inherited []string
	if merged.Set == nil && parent.Set != nil {
		merged.Set = parent.Set
		inherited = append(inherited, "setter")
	}
	if merged.Del == nil && parent.Del != nil {
		merged.Del = parent.Del
		inherited = append(inherited, "deleter")
	}
	if merged.Doc == "" && parent.Doc != "" {
		merged.Doc = parent.Doc
		inherited = append(inherited, "doc")
	}
	return merged, inherited
}
