package override

import (
	"errors"

	"github.com/ariel-frischer/overcheck/internal/class"
	"go.uber.org/zap"
)

// Outcome describes a successful verification.
type Outcome struct {
	Class      *class.Class
	Authority  *class.Class
	Mode       Mode
	Reconciled []Reconciliation
}

// Verifier runs override verification with a fixed set of options.
type Verifier struct {
	registry      *Registry
	mode          Mode
	logger        *zap.Logger
	allowMultiple bool
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithMode pins the resolution mode, ignoring any registry.
func WithMode(mode Mode) Option {
	return func(v *Verifier) {
		v.mode = mode
	}
}

// WithRegistry reads the resolution mode from r at each verification.
func WithRegistry(r *Registry) Option {
	return func(v *Verifier) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithMultipleInheritance accepts classes with several bases, using the C3
// linearization to pick the authoritative ancestor.
func WithMultipleInheritance(allow bool) Option {
	return func(v *Verifier) {
		v.allowMultiple = allow
	}
}

// NewVerifier creates a Verifier. Without WithMode or WithRegistry the
// default registry supplies the mode.
func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{
		registry: defaultRegistry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mode returns the mode the next verification will use.
func (v *Verifier) Mode() Mode {
	if v.mode != "" {
		return v.mode
	}
	return v.registry.GetMode()
}

// Resolve returns the authoritative ancestor of c.
func (v *Verifier) Resolve(c *class.Class) (*class.Class, error) {
	authority, err := resolveAuthority(c, v.Mode(), v.allowMultiple)
	if err != nil {
		return nil, err
	}
	if v.allowMultiple && !class.IsLinear(c) {
		v.logger.Warn("verifying class with multiple inheritance",
			zap.String("class", c.Name()),
			zap.String("authority", authority.Name()),
			zap.String("mode", v.Mode().String()))
	}
	return authority, nil
}

// Verify checks c and reconciles its properties. On any violation it
// returns an *OverrideVerificationError and c is left unaltered.
func (v *Verifier) Verify(c *class.Class) (*Outcome, error) {
	mode, err := ParseMode(string(v.Mode()))
	if err != nil {
		return nil, err
	}
	authority, err := v.Resolve(c)
	if err != nil {
		return nil, err
	}
	v.logger.Debug("resolved authority",
		zap.String("class", c.Name()),
		zap.String("authority", authority.Name()),
		zap.String("mode", mode.String()))

	violations := VerifyMembers(c, authority)
	plan := PlanReconciliation(c, authority)

	if len(violations) > 0 {
		v.logger.Debug("override verification failed",
			zap.String("class", c.Name()),
			zap.Int("violations", len(violations)))
		return nil, &OverrideVerificationError{
			Class:      c,
			Authority:  authority,
			Mode:       mode,
			Violations: violations,
		}
	}

	apply(c, plan)
	for _, r := range plan {
		v.logger.Debug("reconciled property",
			zap.String("class", c.Name()),
			zap.String("property", r.Name),
			zap.String("from", r.From.Name()),
			zap.Strings("inherited", r.Inherited))
	}

	return &Outcome{Class: c, Authority: authority, Mode: mode, Reconciled: plan}, nil
}

// VerifyClass verifies c and returns it with its properties reconciled.
func (v *Verifier) VerifyClass(c *class.Class) (*class.Class, error) {
	if _, err := v.Verify(c); err != nil {
		return nil, err
	}
	return c, nil
}

// VerifyAll verifies each class in order, continuing past failures, and
// returns the joined errors.
func (v *Verifier) VerifyAll(classes ...*class.Class) error {
	var errs []error
	for _, c := range classes {
		if _, err := v.Verify(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// VerifyClass verifies c using the default registry's mode.
func VerifyClass(c *class.Class) (*class.Class, error) {
	return NewVerifier().VerifyClass(c)
}
