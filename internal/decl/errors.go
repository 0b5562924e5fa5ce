package decl

import (
	"fmt"
	"strings"
)

// ParseError represents an error during YAML parsing with location information.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// MissingFieldError represents a required field that is missing.
type MissingFieldError struct {
	// Field is the name of the missing field.
	Field string
	// Context describes where the field is expected.
	Context string
	Line    int
	Column  int
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: missing required field %q in %s", e.Line, e.Field, e.Context)
	}
	return fmt.Sprintf("missing required field %q in %s", e.Field, e.Context)
}

// DuplicateClassError represents two classes with the same name.
type DuplicateClassError struct {
	Name      string
	FirstLine int
	Line      int
	Column    int
}

// Error implements the error interface.
func (e *DuplicateClassError) Error() string {
	return fmt.Sprintf("line %d: duplicate class %q (first declared on line %d)", e.Line, e.Name, e.FirstLine)
}

// DuplicateMemberError represents two members with the same name on one class.
type DuplicateMemberError struct {
	Class  string
	Member string
	Line   int
	Column int
}

// Error implements the error interface.
func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("line %d: class %q declares member %q more than once", e.Line, e.Class, e.Member)
}

// UnknownBaseError represents a reference to an undeclared base class.
type UnknownBaseError struct {
	Class  string
	Base   string
	Line   int
	Column int
}

// Error implements the error interface.
func (e *UnknownBaseError) Error() string {
	return fmt.Sprintf("line %d: class %q derives from undeclared class %q", e.Line, e.Class, e.Base)
}

// CycleError represents a cycle in base class references.
type CycleError struct {
	// Path is the list of class names forming the cycle.
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "cycle detected in class bases"
	}
	return fmt.Sprintf("cycle detected in class bases: %s", strings.Join(e.Path, " -> "))
}

// ConflictingPropertyError represents a property that mixes attribute
// backing with explicit accessors.
type ConflictingPropertyError struct {
	Class    string
	Property string
	Line     int
	Column   int
}

// Error implements the error interface.
func (e *ConflictingPropertyError) Error() string {
	return fmt.Sprintf("line %d: property %q of class %q sets attr together with get/set/del",
		e.Line, e.Property, e.Class)
}

// SelfReferentialPropertyError represents a property whose attr names the
// property itself.
type SelfReferentialPropertyError struct {
	Class    string
	Property string
	Line     int
	Column   int
}

// Error implements the error interface.
func (e *SelfReferentialPropertyError) Error() string {
	return fmt.Sprintf("line %d: property %q of class %q is backed by itself (attr %q); use a different attribute name such as %q",
		e.Line, e.Property, e.Class, e.Property, "_"+e.Property)
}
