// Package accessor builds class.Property values declaratively, either backed
// by an instance attribute or from explicit accessor functions, with options
// to block setting and deletion.
package accessor

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/overcheck/internal/class"
)

// ErrBlocked is wrapped by the default error returned for blocked access.
var ErrBlocked = errors.New("access blocked")

// Op names a property operation.
type Op string

const (
	OpSet    Op = "set"
	OpDelete Op = "delete"
)

// BlockedError is the default error for a blocked set or delete.
type BlockedError struct {
	Property string
	Op       Op
	Message  string
}

// Error implements the error interface.
func (e *BlockedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("cannot %s property %q", e.Op, e.Property)
}

// Unwrap returns ErrBlocked.
func (e *BlockedError) Unwrap() error {
	return ErrBlocked
}

// ErrorFunc builds the error returned for a blocked operation.
type ErrorFunc func(property string, op Op) error

type options struct {
	name        string
	allowSet    bool
	allowDelete bool
	errFn       ErrorFunc
	doc         string
}

// Option configures a built property.
type Option func(*options)

// AllowSet controls whether setting is permitted. Blocked setting installs
// a setter that always fails, so the property never inherits one.
func AllowSet(allow bool) Option {
	return func(o *options) {
		o.allowSet = allow
	}
}

// AllowDelete controls whether deletion is permitted.
func AllowDelete(allow bool) Option {
	return func(o *options) {
		o.allowDelete = allow
	}
}

// WithError sets the error factory used for blocked operations.
func WithError(fn ErrorFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.errFn = fn
		}
	}
}

// WithErrorMessage makes blocked operations fail with a BlockedError
// carrying msg.
func WithErrorMessage(msg string) Option {
	return WithError(func(property string, op Op) error {
		return &BlockedError{Property: property, Op: op, Message: msg}
	})
}

// WithDoc sets the property documentation.
func WithDoc(doc string) Option {
	return func(o *options) {
		o.doc = doc
	}
}

// WithName sets the name reported in errors for function-backed properties.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func newOptions(name string, opts []Option) *options {
	o := &options{
		name:        name,
		allowSet:    true,
		allowDelete: true,
		errFn: func(property string, op Op) error {
			return &BlockedError{Property: property, Op: op}
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FromAttribute returns a property that forwards to the instance attribute
// attr using normal attribute access.
func FromAttribute(attr string, opts ...Option) *class.Property {
	o := newOptions(attr, opts)
	p := &class.Property{
		Get: func(self *class.Instance) (any, error) {
			return self.Get(attr)
		},
		Set: func(self *class.Instance, value any) error {
			return self.Set(attr, value)
		},
		Del: func(self *class.Instance) error {
			return self.Delete(attr)
		},
		Doc: o.doc,
	}
	block(p, o)
	return p
}

// FromFuncs returns a property from explicit accessors. A nil setter or
// deleter stays absent unless the operation is blocked.
func FromFuncs(get class.Getter, set class.Setter, del class.Deleter, opts ...Option) *class.Property {
	o := newOptions("", opts)
	p := &class.Property{Get: get, Set: set, Del: del, Doc: o.doc}
	block(p, o)
	return p
}

func block(p *class.Property, o *options) {
	if !o.allowSet {
		p.Set = func(*class.Instance, any) error {
			return o.errFn(o.name, OpSet)
		}
	}
	if !o.allowDelete {
		p.Del = func(*class.Instance) error {
			return o.errFn(o.name, OpDelete)
		}
	}
}
