package class

// Kind discriminates member descriptors stored on a class.
type Kind int

const (
	// KindMethod is a callable member.
	KindMethod Kind = iota
	// KindProperty is an accessor triple.
	KindProperty
	// KindField is a plain class-level value.
	KindField
)

// String returns a human-readable name for the member kind.
func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindProperty:
		return "property"
	case KindField:
		return "field"
	default:
		return "member"
	}
}

// Member is a descriptor installed on a class under a name.
type Member interface {
	Kind() Kind
}

// MethodFunc is the calling convention Instance.Call understands.
type MethodFunc func(self *Instance, args ...any) (any, error)

// Method wraps a callable. Overrides records that the callable claims to
// override a same-named member of an ancestor; the flag carries no behavior.
type Method struct {
	// Fn is the callable exactly as supplied.
	Fn any
	// Overrides is true when the method was marked as an override.
	Overrides bool
}

// Func wraps fn in an unmarked method.
func Func(fn any) *Method {
	return &Method{Fn: fn}
}

// Kind implements Member.
func (m *Method) Kind() Kind { return KindMethod }

// Getter reads a property value from an instance.
type Getter func(self *Instance) (any, error)

// Setter stores a property value on an instance.
type Setter func(self *Instance, value any) error

// Deleter removes a property value from an instance.
type Deleter func(self *Instance) error

// Property is an accessor triple. A nil accessor is absent.
type Property struct {
	Get Getter
	Set Setter
	Del Deleter
	Doc string
}

// Kind implements Member.
func (p *Property) Kind() Kind { return KindProperty }

// HasGetter reports whether the getter is present.
func (p *Property) HasGetter() bool { return p.Get != nil }

// HasSetter reports whether the setter is present.
func (p *Property) HasSetter() bool { return p.Set != nil }

// HasDeleter reports whether the deleter is present.
func (p *Property) HasDeleter() bool { return p.Del != nil }

// Field is a plain class-level value, used as the default for instances.
type Field struct {
	Value any
}

// Kind implements Member.
func (f *Field) Kind() Kind { return KindField }
