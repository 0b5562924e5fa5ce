package decl

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/overcheck/internal/accessor"
	"github.com/ariel-frischer/overcheck/internal/class"
	"github.com/ariel-frischer/overcheck/internal/override"
)

// Hierarchy is the set of classes built from one declaration.
type Hierarchy struct {
	// Classes in build order: every base precedes its subclasses.
	Classes []*class.Class

	byName map[string]*class.Class
	decls  map[string]ClassDecl
}

// Class returns the built class with the given name.
func (h *Hierarchy) Class(name string) (*class.Class, bool) {
	c, ok := h.byName[name]
	return c, ok
}

// Decl returns the declaration a class was built from.
func (h *Hierarchy) Decl(name string) (ClassDecl, bool) {
	d, ok := h.decls[name]
	return d, ok
}

// Targets returns the classes that should be verified, in build order.
func (h *Hierarchy) Targets() []*class.Class {
	var out []*class.Class
	for _, c := range h.Classes {
		if h.decls[c.Name()].ShouldVerify() {
			out = append(out, c)
		}
	}
	return out
}

// Build validates the declaration and creates its classes. Bases are built
// before subclasses regardless of declaration order.
func Build(result *ParseResult) (*Hierarchy, error) {
	if errs := Validate(result); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	h := &Hierarchy{
		byName: make(map[string]*class.Class),
		decls:  make(map[string]ClassDecl),
	}
	for _, d := range result.File.Classes {
		h.decls[d.Name] = d
	}

	for _, d := range result.File.Classes {
		h.build(d.Name)
	}
	return h, nil
}

// build creates name after its bases. Validation has already ruled out
// unknown bases and cycles.
func (h *Hierarchy) build(name string) *class.Class {
	if c, ok := h.byName[name]; ok {
		return c
	}
	d := h.decls[name]

	bases := make([]*class.Class, 0, len(d.Bases))
	for _, b := range d.Bases {
		bases = append(bases, h.build(b))
	}

	c := class.New(d.Name, bases...)
	for _, f := range d.Fields {
		c.Define(f.Name, &class.Field{Value: f.Value})
	}
	for _, m := range d.Methods {
		c.Define(m.Name, buildMethod(d.Name, m))
	}
	for _, p := range d.Properties {
		c.Define(p.Name, buildProperty(p))
	}

	h.byName[name] = c
	h.Classes = append(h.Classes, c)
	return c
}

// buildMethod returns a method that reports its qualified name when called.
func buildMethod(className string, m MethodDecl) *class.Method {
	qualified := fmt.Sprintf("%s.%s", className, m.Name)
	fn := class.MethodFunc(func(*class.Instance, ...any) (any, error) {
		return qualified, nil
	})
	if m.Override {
		return override.Mark(fn)
	}
	return class.Func(fn)
}

// buildProperty creates an attribute-backed or storage-backed property.
func buildProperty(p PropertyDecl) *class.Property {
	opts := []accessor.Option{accessor.WithDoc(p.Doc), accessor.WithName(p.Name)}
	if p.Settable != nil {
		opts = append(opts, accessor.AllowSet(*p.Settable))
	}
	if p.Deletable != nil {
		opts = append(opts, accessor.AllowDelete(*p.Deletable))
	}
	if p.Error != "" {
		opts = append(opts, accessor.WithErrorMessage(p.Error))
	}

	if p.Attr != "" {
		return accessor.FromAttribute(p.Attr, opts...)
	}

	slot := p.StorageSlot()
	var (
		get class.Getter
		set class.Setter
		del class.Deleter
	)
	if p.Get {
		get = func(self *class.Instance) (any, error) {
			v, ok := self.Slot(slot)
			if !ok {
				return nil, &class.AttributeError{Class: self.Class().Name(), Name: slot}
			}
			return v, nil
		}
	}
	if p.Set {
		set = func(self *class.Instance, value any) error {
			self.SetSlot(slot, value)
			return nil
		}
	}
	if p.Del {
		del = func(self *class.Instance) error {
			if !self.DeleteSlot(slot) {
				return &class.AttributeError{Class: self.Class().Name(), Name: slot}
			}
			return nil
		}
	}
	return accessor.FromFuncs(get, set, del, opts...)
}
