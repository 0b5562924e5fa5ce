// Package class models classes as explicit values rather than relying on a
// host language's runtime introspection.
//
// A Class has a name, an ordered list of bases, and a table of tagged member
// descriptors. Each member is one of:
//   - *Method: a callable, optionally marked as overriding an ancestor member
//   - *Property: an accessor triple (getter, setter, deleter)
//   - *Field: a plain class-level value
//
// Every class without explicit bases derives from the universal root Object.
// Ancestry is computed with C3 linearization so that lookups are
// deterministic even when a class has several bases.
//
// # Usage
//
//	base := class.New("Base")
//	base.Define("save", class.Func(saveFn))
//	base.Define("size", &class.Property{Get: getSize, Set: setSize})
//
//	child := class.New("Child", base)
//	chain, err := class.Ancestry(child) // [Base]
package class
