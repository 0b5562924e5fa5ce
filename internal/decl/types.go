package decl

// File is the root of a declaration document.
type File struct {
	// Classes in declaration order.
	Classes []ClassDecl `yaml:"classes"`
}

// ClassDecl declares one class.
type ClassDecl struct {
	// Name is the unique class name.
	Name string `yaml:"name"`
	// Bases lists base class names in precedence order. Empty means the
	// class derives from the universal root.
	Bases []string `yaml:"bases,omitempty"`
	// Verify forces verification on or off. When nil, classes with bases
	// are verified and root-derived classes are not.
	Verify *bool `yaml:"verify,omitempty"`
	// Methods declared directly on the class.
	Methods []MethodDecl `yaml:"methods,omitempty"`
	// Properties declared directly on the class.
	Properties []PropertyDecl `yaml:"properties,omitempty"`
	// Fields are class-level values in declaration order. The document
	// writes them as a name-to-value mapping, which the parser flattens.
	Fields []FieldDecl `yaml:"-"`
}

// ShouldVerify reports whether the class is a verification target.
func (c ClassDecl) ShouldVerify() bool {
	if c.Verify != nil {
		return *c.Verify
	}
	return len(c.Bases) > 0
}

// MethodDecl declares a method.
type MethodDecl struct {
	Name string `yaml:"name"`
	// Override marks the method as overriding an ancestor member.
	Override bool `yaml:"override,omitempty"`
}

// PropertyDecl declares a property either backed by an attribute (Attr) or
// by per-instance storage with the listed accessors.
type PropertyDecl struct {
	Name string `yaml:"name"`
	// Attr backs the property with an instance attribute.
	Attr string `yaml:"attr,omitempty"`
	// Get, Set and Del select which accessors exist for storage-backed
	// properties.
	Get bool `yaml:"get,omitempty"`
	Set bool `yaml:"set,omitempty"`
	Del bool `yaml:"del,omitempty"`
	// Settable and Deletable block operations when explicitly false.
	Settable  *bool `yaml:"settable,omitempty"`
	Deletable *bool `yaml:"deletable,omitempty"`
	// Error is the message for blocked operations.
	Error string `yaml:"error,omitempty"`
	Doc   string `yaml:"doc,omitempty"`
}

// StorageSlot is the instance slot used by storage-backed properties.
func (p PropertyDecl) StorageSlot() string {
	return "_" + p.Name
}

// FieldDecl is one entry of a class's fields mapping.
type FieldDecl struct {
	Name  string
	Value any
}
