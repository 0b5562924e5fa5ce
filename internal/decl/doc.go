// Package decl parses class hierarchy declarations from YAML and builds
// class.Class values from them.
//
// The package supports:
//   - Parsing declaration files with source location tracking
//   - Validating structure: required names, duplicates, unknown bases, cycles
//   - Building classes in dependency order, bases before subclasses
//
// A declaration file lists classes with their bases, methods (optionally
// marked as overrides), properties, and class-level fields.
package decl
