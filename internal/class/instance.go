package class

import (
	"errors"
	"fmt"
)

var (
	// ErrAccessorUnavailable is returned when a property is used through an
	// accessor it does not define.
	ErrAccessorUnavailable = errors.New("accessor not available")
	// ErrNoAttribute is returned when a name resolves neither on the instance
	// nor on its class.
	ErrNoAttribute = errors.New("no such attribute")
	// ErrNotCallable is returned by Call when the member is not a MethodFunc.
	ErrNotCallable = errors.New("member is not callable")
)

// AccessorError reports use of an absent property accessor.
type AccessorError struct {
	// Class is the name of the instance's class.
	Class string
	// Property is the property name.
	Property string
	// Accessor is one of "getter", "setter", "deleter".
	Accessor string
}

// Error implements the error interface.
func (e *AccessorError) Error() string {
	return fmt.Sprintf("property %q of %s has no %s", e.Property, e.Class, e.Accessor)
}

// Unwrap returns ErrAccessorUnavailable.
func (e *AccessorError) Unwrap() error {
	return ErrAccessorUnavailable
}

// AttributeError reports a name that does not resolve.
type AttributeError struct {
	Class string
	Name  string
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s has no attribute %q", e.Class, e.Name)
}

// Unwrap returns ErrNoAttribute.
func (e *AttributeError) Unwrap() error {
	return ErrNoAttribute
}

// Instance is a value of a class. Property access dispatches to the accessor
// triple found on the class; everything else is stored per instance.
type Instance struct {
	class  *Class
	fields map[string]any
}

// NewInstance creates an empty instance of c.
func NewInstance(c *Class) *Instance {
	return &Instance{class: c, fields: make(map[string]any)}
}

// Class returns the instance's class.
func (o *Instance) Class() *Class {
	return o.class
}

// Get reads name. Properties take precedence over instance storage.
func (o *Instance) Get(name string) (any, error) {
	m, _, found := o.class.Lookup(name)
	if p, ok := m.(*Property); ok {
		if p.Get == nil {
			return nil, &AccessorError{Class: o.class.name, Property: name, Accessor: "getter"}
		}
		return p.Get(o)
	}

	if v, ok := o.fields[name]; ok {
		return v, nil
	}

	if found {
		switch v := m.(type) {
		case *Field:
			return v.Value, nil
		case *Method:
			return v.Fn, nil
		}
	}
	return nil, &AttributeError{Class: o.class.name, Name: name}
}

// Set writes name through the property setter, or into instance storage
// when name is not a property.
func (o *Instance) Set(name string, value any) error {
	if m, _, _ := o.class.Lookup(name); m != nil {
		if p, ok := m.(*Property); ok {
			if p.Set == nil {
				return &AccessorError{Class: o.class.name, Property: name, Accessor: "setter"}
			}
			return p.Set(o, value)
		}
	}
	o.fields[name] = value
	return nil
}

// Delete removes name through the property deleter, or from instance
// storage when name is not a property.
func (o *Instance) Delete(name string) error {
	if m, _, _ := o.class.Lookup(name); m != nil {
		if p, ok := m.(*Property); ok {
			if p.Del == nil {
				return &AccessorError{Class: o.class.name, Property: name, Accessor: "deleter"}
			}
			return p.Del(o)
		}
	}
	if _, ok := o.fields[name]; !ok {
		return &AttributeError{Class: o.class.name, Name: name}
	}
	delete(o.fields, name)
	return nil
}

// Call invokes the method resolved for name with args.
func (o *Instance) Call(name string, args ...any) (any, error) {
	m, _, found := o.class.Lookup(name)
	if !found {
		return nil, &AttributeError{Class: o.class.name, Name: name}
	}
	method, ok := m.(*Method)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", o.class.name, name, ErrNotCallable)
	}
	switch fn := method.Fn.(type) {
	case MethodFunc:
		return fn(o, args...)
	case func(*Instance, ...any) (any, error):
		return fn(o, args...)
	default:
		return nil, fmt.Errorf("%s.%s: %w", o.class.name, name, ErrNotCallable)
	}
}

// Slot reads raw instance storage, bypassing properties.
func (o *Instance) Slot(name string) (any, bool) {
	v, ok := o.fields[name]
	return v, ok
}

// SetSlot writes raw instance storage, bypassing properties.
func (o *Instance) SetSlot(name string, value any) {
	o.fields[name] = value
}

// DeleteSlot removes raw instance storage and reports whether it existed.
func (o *Instance) DeleteSlot(name string) bool {
	if _, ok := o.fields[name]; !ok {
		return false
	}
	delete(o.fields, name)
	return true
}
