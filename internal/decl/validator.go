package decl

import "fmt"

// Validate checks a parsed declaration for structural correctness.
// Returns a slice of errors, empty if valid.
func Validate(result *ParseResult) []error {
	var errs []error

	errs = append(errs, validateRequiredFields(result)...)
	errs = append(errs, validateClassUniqueness(result)...)
	errs = append(errs, validateMembers(result)...)
	errs = append(errs, validateBases(result)...)
	errs = append(errs, detectBaseCycles(result.File)...)

	return errs
}

// validateRequiredFields checks class, method, and property names.
func validateRequiredFields(result *ParseResult) []error {
	var errs []error

	if len(result.File.Classes) == 0 {
		info := result.NodeInfos["classes"]
		errs = append(errs, &MissingFieldError{
			Field: "classes", Context: "root (at least one class required)", Line: info.Line, Column: info.Column,
		})
	}

	for i, c := range result.File.Classes {
		prefix := fmt.Sprintf("classes[%d]", i)

		if c.Name == "" {
			info := result.NodeInfos[prefix]
			errs = append(errs, &MissingFieldError{
				Field: "name", Context: fmt.Sprintf("class at index %d", i), Line: info.Line, Column: info.Column,
			})
		}

		for j, m := range c.Methods {
			if m.Name == "" {
				info := result.NodeInfos[fmt.Sprintf("%s.methods[%d]", prefix, j)]
				errs = append(errs, &MissingFieldError{
					Field: "name", Context: fmt.Sprintf("method at class %q index %d", c.Name, j),
					Line: info.Line, Column: info.Column,
				})
			}
		}

		for j, p := range c.Properties {
			if p.Name == "" {
				info := result.NodeInfos[fmt.Sprintf("%s.properties[%d]", prefix, j)]
				errs = append(errs, &MissingFieldError{
					Field: "name", Context: fmt.Sprintf("property at class %q index %d", c.Name, j),
					Line: info.Line, Column: info.Column,
				})
			}
		}
	}

	return errs
}

// validateClassUniqueness checks that class names are unique.
func validateClassUniqueness(result *ParseResult) []error {
	var errs []error
	seen := make(map[string]int) // name -> line

	for i, c := range result.File.Classes {
		if c.Name == "" {
			continue
		}
		info := result.NodeInfos[fmt.Sprintf("classes[%d]", i)]
		if first, exists := seen[c.Name]; exists {
			errs = append(errs, &DuplicateClassError{
				Name: c.Name, FirstLine: first, Line: info.Line, Column: info.Column,
			})
			continue
		}
		seen[c.Name] = info.Line
	}

	return errs
}

// validateMembers checks member name uniqueness within each class and
// property backing consistency.
func validateMembers(result *ParseResult) []error {
	var errs []error

	for i, c := range result.File.Classes {
		prefix := fmt.Sprintf("classes[%d]", i)
		seen := make(map[string]bool)

		check := func(name, path string) {
			if name == "" {
				return
			}
			if seen[name] {
				info := result.NodeInfos[path]
				errs = append(errs, &DuplicateMemberError{
					Class: c.Name, Member: name, Line: info.Line, Column: info.Column,
				})
			}
			seen[name] = true
		}

		for j, m := range c.Methods {
			check(m.Name, fmt.Sprintf("%s.methods[%d]", prefix, j))
		}
		for j, p := range c.Properties {
			path := fmt.Sprintf("%s.properties[%d]", prefix, j)
			check(p.Name, path)
			if p.Attr != "" && (p.Get || p.Set || p.Del) {
				info := result.NodeInfos[path]
				errs = append(errs, &ConflictingPropertyError{
					Class: c.Name, Property: p.Name, Line: info.Line, Column: info.Column,
				})
			}
			if p.Name != "" && p.Attr == p.Name {
				info := result.NodeInfos[path]
				errs = append(errs, &SelfReferentialPropertyError{
					Class: c.Name, Property: p.Name, Line: info.Line, Column: info.Column,
				})
			}
		}
		for _, f := range c.Fields {
			check(f.Name, prefix+".fields."+f.Name)
		}
	}

	return errs
}

// validateBases checks that every base refers to a declared class.
func validateBases(result *ParseResult) []error {
	var errs []error

	names := collectClassNames(result.File)

	for i, c := range result.File.Classes {
		for _, base := range c.Bases {
			if !names[base] {
				info := result.NodeInfos[fmt.Sprintf("classes[%d].bases", i)]
				errs = append(errs, &UnknownBaseError{
					Class: c.Name, Base: base, Line: info.Line, Column: info.Column,
				})
			}
		}
	}

	return errs
}

// collectClassNames returns a set of all declared class names.
func collectClassNames(f *File) map[string]bool {
	names := make(map[string]bool)
	for _, c := range f.Classes {
		names[c.Name] = true
	}
	return names
}

// detectBaseCycles detects cycles in base references using DFS.
func detectBaseCycles(f *File) []error {
	var errs []error

	bases := make(map[string][]string)
	for _, c := range f.Classes {
		bases[c.Name] = c.Bases
	}
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, c := range f.Classes {
		if !visited[c.Name] {
			if cycle := detectCycleDFS(c.Name, bases, visited, recStack, nil); cycle != nil {
				errs = append(errs, &CycleError{Path: cycle})
			}
		}
	}

	return errs
}

// detectCycleDFS performs depth-first search for cycle detection.
func detectCycleDFS(name string, bases map[string][]string, visited, recStack map[string]bool, path []string) []string {
	visited[name] = true
	recStack[name] = true
	path = append(path, name)

	for _, base := range bases[name] {
		if !visited[base] {
			if cycle := detectCycleDFS(base, bases, visited, recStack, path); cycle != nil {
				return cycle
			}
		} else if recStack[base] {
			return buildCyclePath(path, base)
		}
	}

	recStack[name] = false
	return nil
}

// buildCyclePath constructs the cycle path from the DFS path.
func buildCyclePath(path []string, cycleStart string) []string {
	for i, name := range path {
		if name == cycleStart {
			return append(append([]string(nil), path[i:]...), cycleStart)
		}
	}
	return append(path, cycleStart)
}
