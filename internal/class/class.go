package class

// Object is the universal root. Classes created without bases derive from it,
// and it is excluded from every ancestry chain.
var Object = &Class{name: "object", members: make(map[string]Member)}

// Class is a named type with ordered bases and a member table.
// Bases are fixed at construction so a hierarchy can never contain a cycle.
type Class struct {
	name    string
	bases   []*Class
	members map[string]Member
	order   []string
}

// Entry pairs a member with the name it is installed under.
type Entry struct {
	Name   string
	Member Member
}

// PropertyEntry pairs a property with the name it is installed under.
type PropertyEntry struct {
	Name     string
	Property *Property
}

// New creates a class deriving from bases in the given order.
// With no bases (or only nil bases) the class derives from Object.
func New(name string, bases ...*Class) *Class {
	c := &Class{
		name:    name,
		members: make(map[string]Member),
	}
	for _, b := range bases {
		if b != nil {
			c.bases = append(c.bases, b)
		}
	}
	if len(c.bases) == 0 {
		c.bases = []*Class{Object}
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// Bases returns a copy of the direct bases in declaration order.
func (c *Class) Bases() []*Class {
	return append([]*Class(nil), c.bases...)
}

// IsRoot reports whether c is the universal root.
func (c *Class) IsRoot() bool {
	return c == Object
}

// Define installs m directly on c under name and returns c for chaining.
// Redefining a name keeps its original declaration position. A nil member
// is ignored, including a typed nil pointer.
func (c *Class) Define(name string, m Member) *Class {
	if isNil(m) {
		return c
	}
	if _, exists := c.members[name]; !exists {
		c.order = append(c.order, name)
	}
	c.members[name] = m
	return c
}

func isNil(m Member) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *Method:
		return v == nil
	case *Property:
		return v == nil
	case *Field:
		return v == nil
	}
	return false
}

// Own returns the member declared directly on c, ignoring ancestors.
func (c *Class) Own(name string) (Member, bool) {
	m, ok := c.members[name]
	return m, ok
}

// Members returns the members declared directly on c in declaration order.
func (c *Class) Members() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, name := range c.order {
		entries = append(entries, Entry{Name: name, Member: c.members[name]})
	}
	return entries
}

// Properties returns the accessor triples declared directly on c.
func (c *Class) Properties() []PropertyEntry {
	var props []PropertyEntry
	for _, name := range c.order {
		if p, ok := c.members[name].(*Property); ok {
			props = append(props, PropertyEntry{Name: name, Property: p})
		}
	}
	return props
}

// Lookup finds name on c or any ancestor, following the linearization,
// and returns the member together with the class that declares it.
func (c *Class) Lookup(name string) (Member, *Class, bool) {
	for _, k := range resolutionOrder(c) {
		if m, ok := k.members[name]; ok {
			return m, k, true
		}
	}
	return nil, nil, false
}

// Has reports whether name resolves on c or any ancestor.
func (c *Class) Has(name string) bool {
	_, _, ok := c.Lookup(name)
	return ok
}

// IsSubclassOf reports whether other appears in c's linearization.
// Every class is a subclass of itself and of Object.
func (c *Class) IsSubclassOf(other *Class) bool {
	for _, k := range resolutionOrder(c) {
		if k == other {
			return true
		}
	}
	return false
}
