package override

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/overcheck/internal/class"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrConfiguration        = errors.New("invalid override configuration")
	ErrClassHierarchy       = errors.New("invalid class hierarchy")
	ErrMethodOverride       = errors.New("marked method overrides nothing")
	ErrOverrideVerification = errors.New("override verification failed")
)

// ConfigurationError reports an invalid resolution mode.
type ConfigurationError struct {
	// Value is the rejected input.
	Value string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	valid := make([]string, 0, len(ValidModes))
	for _, m := range ValidModes {
		valid = append(valid, string(m))
	}
	return fmt.Sprintf("invalid resolution mode %q: valid options are %s", e.Value, strings.Join(valid, ", "))
}

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ClassHierarchyError reports a class that cannot be verified because of
// the shape of its ancestry. The class is left unaltered.
type ClassHierarchyError struct {
	// Class is the name of the class being verified.
	Class string
	// Reason describes what is wrong with the ancestry.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ClassHierarchyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("class %s: %s: %v", e.Class, e.Reason, e.Err)
	}
	return fmt.Sprintf("class %s: %s", e.Class, e.Reason)
}

// Is matches ErrClassHierarchy.
func (e *ClassHierarchyError) Is(target error) bool {
	return target == ErrClassHierarchy
}

// Unwrap returns the underlying cause.
func (e *ClassHierarchyError) Unwrap() error {
	return e.Err
}

// Violation is a single problem found while verifying a class.
type Violation interface {
	error
	// MemberName is the name of the offending member.
	MemberName() string
}

// MethodOverrideError reports a marked method with no counterpart on the
// authoritative ancestor.
type MethodOverrideError struct {
	Class     string
	Member    string
	Authority string
}

// Error implements the error interface.
func (e *MethodOverrideError) Error() string {
	return fmt.Sprintf("%s.%s is marked as an override but %s defines no member %q",
		e.Class, e.Member, e.Authority, e.Member)
}

// MemberName implements Violation.
func (e *MethodOverrideError) MemberName() string {
	return e.Member
}

// Is matches ErrMethodOverride.
func (e *MethodOverrideError) Is(target error) bool {
	return target == ErrMethodOverride
}

// OverrideVerificationError aggregates every violation found in one class.
type OverrideVerificationError struct {
	// Class is the verified class.
	Class *class.Class
	// Authority is the ancestor the class was checked against.
	Authority *class.Class
	// Mode is the resolution mode that selected Authority.
	Mode Mode
	// Violations lists the problems in declaration order.
	Violations []Violation
}

// Error implements the error interface.
func (e *OverrideVerificationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return fmt.Sprintf("override verification failed for %s against %s (mode %s): %d violation(s): %s",
		e.Class, e.Authority, e.Mode, len(e.Violations), strings.Join(msgs, "; "))
}

// Members returns the names of the offending members.
func (e *OverrideVerificationError) Members() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.MemberName())
	}
	return out
}

// Is matches ErrOverrideVerification.
func (e *OverrideVerificationError) Is(target error) bool {
	return target == ErrOverrideVerification
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *OverrideVerificationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		errs = append(errs, v)
	}
	return errs
}
