package config

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError locates a problem in a config file, either by position
// (syntax) or by key (values).
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// yamlErrPosition matches the "yaml: line N:" prefix yaml.v3 puts on
// syntax errors, with an optional column.
var yamlErrPosition = regexp.MustCompile(`^yaml: line (\d+):(?: column (\d+):)? ?`)

// ValidateYAMLSyntax reports syntax errors in the config file at path. A
// missing or blank file is valid; the top level must be a mapping.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		msg := err.Error()
		if os.IsPermission(err) {
			msg = "permission denied"
		}
		return &ValidationError{FilePath: path, Message: msg}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return syntaxError(path, err)
	}
	if len(doc.Content) == 1 && doc.Content[0].Kind != yaml.MappingNode {
		root := doc.Content[0]
		return &ValidationError{
			FilePath: path,
			Line:     root.Line,
			Column:   root.Column,
			Message:  "expected a mapping of configuration keys",
		}
	}
	return nil
}

func syntaxError(path string, err error) *ValidationError {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: path, Message: strings.Join(typeErr.Errors, "; ")}
	}

	msg := err.Error()
	m := yamlErrPosition.FindStringSubmatch(msg)
	if m == nil {
		return &ValidationError{FilePath: path, Message: strings.TrimPrefix(msg, "yaml: ")}
	}
	line, _ := strconv.Atoi(m[1])
	col := 1
	if m[2] != "" {
		col, _ = strconv.Atoi(m[2])
	}
	return &ValidationError{
		FilePath: path,
		Line:     line,
		Column:   col,
		Message:  msg[len(m[0]):],
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// configValidator reports fields by their koanf key.
func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateConfigValues checks cfg against its validate tags and returns the
// first failing key.
func ValidateConfigValues(cfg *Configuration, path string) error {
	err := configValidator().Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &ValidationError{
		FilePath: path,
		Field:    fe.Field(),
		Message:  describeConstraint(fe),
	}
}

func describeConstraint(fe validator.FieldError) string {
	got := fmt.Sprint(fe.Value())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of %s, got %q", strings.Join(strings.Fields(fe.Param()), ", "), got)
	case "min":
		return fmt.Sprintf("must be at least %s, got %s", fe.Param(), got)
	case "max":
		return fmt.Sprintf("must be at most %s, got %s", fe.Param(), got)
	case "required":
		return "is required"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
