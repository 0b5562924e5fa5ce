package decl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseResult contains the parsed declaration and source location information.
type ParseResult struct {
	File      *File
	NodeInfos map[string]NodeInfo // Maps path (e.g., "classes[0].methods[1]") to location
}

// NodeInfo stores source location information for a YAML node.
type NodeInfo struct {
	Line   int
	Column int
}

// ParseFile parses a declaration file from disk.
func ParseFile(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading declaration file: %w", err)
	}

	return ParseBytes(data)
}

// ParseBytes parses a declaration from YAML bytes.
func ParseBytes(data []byte) (*ParseResult, error) {
	var rootNode yaml.Node
	if err := yaml.Unmarshal(data, &rootNode); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if rootNode.Kind != yaml.DocumentNode || len(rootNode.Content) == 0 {
		return nil, fmt.Errorf("parsing YAML: empty document")
	}

	result := &ParseResult{
		File:      &File{},
		NodeInfos: make(map[string]NodeInfo),
	}

	if err := parseRootNode(rootNode.Content[0], result); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ParseResult) record(path string, node *yaml.Node) {
	r.NodeInfos[path] = NodeInfo{Line: node.Line, Column: node.Column}
}

// parseRootNode parses the root mapping node into a File.
func parseRootNode(node *yaml.Node, result *ParseResult) error {
	if node.Kind != yaml.MappingNode {
		return &ParseError{Line: node.Line, Column: node.Column, Message: "expected mapping node at root"}
	}

	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Value == "classes" {
			if err := parseClasses(valueNode, result); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseClasses extracts the classes list.
func parseClasses(node *yaml.Node, result *ParseResult) error {
	result.record("classes", node)

	if node.Kind != yaml.SequenceNode {
		return &ParseError{Line: node.Line, Column: node.Column, Message: "expected sequence for 'classes' field"}
	}

	for i, classNode := range node.Content {
		c, err := parseClass(classNode, fmt.Sprintf("classes[%d]", i), result)
		if err != nil {
			return err
		}
		result.File.Classes = append(result.File.Classes, c)
	}

	return nil
}

// parseClass extracts a single class declaration.
func parseClass(node *yaml.Node, prefix string, result *ParseResult) (ClassDecl, error) {
	result.record(prefix, node)

	if node.Kind != yaml.MappingNode {
		return ClassDecl{}, &ParseError{Line: node.Line, Column: node.Column, Message: "expected mapping for class"}
	}

	var c ClassDecl
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		var err error
		switch keyNode.Value {
		case "name":
			result.record(prefix+".name", valueNode)
			c.Name = valueNode.Value
		case "bases":
			result.record(prefix+".bases", valueNode)
			c.Bases, err = parseStringList(valueNode, "bases")
		case "verify":
			var v bool
			v, err = parseBool(valueNode, "verify")
			c.Verify = &v
		case "methods":
			c.Methods, err = parseMethods(valueNode, prefix, result)
		case "properties":
			c.Properties, err = parseProperties(valueNode, prefix, result)
		case "fields":
			c.Fields, err = parseFields(valueNode, prefix, result)
		}
		if err != nil {
			return ClassDecl{}, err
		}
	}

	return c, nil
}

// parseMethods extracts the methods list.
func parseMethods(node *yaml.Node, prefix string, result *ParseResult) ([]MethodDecl, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: node.Line, Column: node.Column, Message: "expected sequence for 'methods' field"}
	}

	var methods []MethodDecl
	for i, methodNode := range node.Content {
		path := fmt.Sprintf("%s.methods[%d]", prefix, i)
		result.record(path, methodNode)

		// Shorthand: a bare scalar is an unmarked method name.
		if methodNode.Kind == yaml.ScalarNode {
			methods = append(methods, MethodDecl{Name: methodNode.Value})
			continue
		}
		if methodNode.Kind != yaml.MappingNode {
			return nil, &ParseError{Line: methodNode.Line, Column: methodNode.Column, Message: "expected mapping or name for method"}
		}

		var m MethodDecl
		for j := 0; j < len(methodNode.Content); j += 2 {
			keyNode := methodNode.Content[j]
			valueNode := methodNode.Content[j+1]

			switch keyNode.Value {
			case "name":
				m.Name = valueNode.Value
			case "override":
				v, err := parseBool(valueNode, "override")
				if err != nil {
					return nil, err
				}
				m.Override = v
			}
		}
		methods = append(methods, m)
	}

	return methods, nil
}

// parseProperties extracts the properties list.
func parseProperties(node *yaml.Node, prefix string, result *ParseResult) ([]PropertyDecl, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: node.Line, Column: node.Column, Message: "expected sequence for 'properties' field"}
	}

	var props []PropertyDecl
	for i, propNode := range node.Content {
		path := fmt.Sprintf("%s.properties[%d]", prefix, i)
		result.record(path, propNode)

		if propNode.Kind != yaml.MappingNode {
			return nil, &ParseError{Line: propNode.Line, Column: propNode.Column, Message: "expected mapping for property"}
		}

		p, err := parseProperty(propNode)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}

	return props, nil
}

// parseProperty extracts a single property declaration.
func parseProperty(node *yaml.Node) (PropertyDecl, error) {
	var p PropertyDecl
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		var err error
		switch keyNode.Value {
		case "name":
			p.Name = valueNode.Value
		case "attr":
			p.Attr = valueNode.Value
		case "get":
			p.Get, err = parseBool(valueNode, "get")
		case "set":
			p.Set, err = parseBool(valueNode, "set")
		case "del":
			p.Del, err = parseBool(valueNode, "del")
		case "settable":
			var v bool
			v, err = parseBool(valueNode, "settable")
			p.Settable = &v
		case "deletable":
			var v bool
			v, err = parseBool(valueNode, "deletable")
			p.Deletable = &v
		case "error":
			p.Error = valueNode.Value
		case "doc":
			p.Doc = valueNode.Value
		}
		if err != nil {
			return PropertyDecl{}, err
		}
	}
	return p, nil
}

// parseFields extracts class-level fields from a mapping, keeping order.
func parseFields(node *yaml.Node, prefix string, result *ParseResult) ([]FieldDecl, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &ParseError{Line: node.Line, Column: node.Column, Message: "expected mapping for 'fields' field"}
	}

	var fields []FieldDecl
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]
		result.record(prefix+".fields."+keyNode.Value, keyNode)

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, &ParseError{Line: valueNode.Line, Column: valueNode.Column,
				Message: fmt.Sprintf("invalid value for field %q: %v", keyNode.Value, err)}
		}
		fields = append(fields, FieldDecl{Name: keyNode.Value, Value: value})
	}

	return fields, nil
}

// parseStringList extracts a list of strings from a sequence node. A single
// scalar is accepted as a one-element list.
func parseStringList(node *yaml.Node, field string) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return nil, nil
		}
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			items = append(items, item.Value)
		}
		return items, nil
	default:
		return nil, &ParseError{Line: node.Line, Column: node.Column,
			Message: fmt.Sprintf("expected sequence for '%s' field", field)}
	}
}

// parseBool decodes a boolean scalar.
func parseBool(node *yaml.Node, field string) (bool, error) {
	var v bool
	if err := node.Decode(&v); err != nil {
		return false, &ParseError{Line: node.Line, Column: node.Column,
			Message: fmt.Sprintf("expected boolean for '%s' field", field)}
	}
	return v, nil
}
