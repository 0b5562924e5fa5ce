// Package report renders verification results for terminals and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format selects the rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ValidFormats lists all output formats.
var ValidFormats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	for _, valid := range ValidFormats {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q: valid options are text, json, yaml", s)
}

// Status is the outcome for one class.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusInvalid Status = "invalid"
)

// ClassResult is the outcome of verifying one class.
type ClassResult struct {
	Class      string   `json:"class" yaml:"class"`
	Authority  string   `json:"authority,omitempty" yaml:"authority,omitempty"`
	Mode       string   `json:"mode" yaml:"mode"`
	Status     Status   `json:"status" yaml:"status"`
	Violations []string `json:"violations,omitempty" yaml:"violations,omitempty"`
	Reconciled []string `json:"reconciled,omitempty" yaml:"reconciled,omitempty"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// FileResult is the outcome of verifying one declaration file.
type FileResult struct {
	File    string        `json:"file" yaml:"file"`
	Classes []ClassResult `json:"classes,omitempty" yaml:"classes,omitempty"`
	// Errors are parse or validation errors that prevented verification.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// OK reports whether the file loaded and every class verified.
func (f FileResult) OK() bool {
	if len(f.Errors) > 0 {
		return false
	}
	for _, c := range f.Classes {
		if c.Status != StatusOK {
			return false
		}
	}
	return true
}

// Summary counts results across files.
type Summary struct {
	Files   int `json:"files" yaml:"files"`
	Classes int `json:"classes" yaml:"classes"`
	Failed  int `json:"failed" yaml:"failed"`
}

// Summarize counts classes and failures. A file that failed to load counts
// as one failure.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, f := range results {
		if len(f.Errors) > 0 {
			s.Failed++
		}
		for _, c := range f.Classes {
			s.Classes++
			if c.Status != StatusOK {
				s.Failed++
			}
		}
	}
	return s
}

type document struct {
	Results []FileResult `json:"results" yaml:"results"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

// Render writes results to w in the given format.
func Render(w io.Writer, format Format, results []FileResult) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document{Results: results, Summary: Summarize(results)})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Results: results, Summary: Summarize(results)}); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		renderText(w, results)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

var (
	okLabel     = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	fileLabel   = color.New(color.FgCyan, color.Bold).SprintFunc()
	dim         = color.New(color.Faint).SprintFunc()
	accentLabel = color.New(color.FgYellow).SprintFunc()
)

func renderText(w io.Writer, results []FileResult) {
	for _, f := range results {
		fmt.Fprintf(w, "%s\n", fileLabel(f.File))
		for _, e := range f.Errors {
			fmt.Fprintf(w, "  %s %s\n", failLabel("✗"), e)
		}
		for _, c := range f.Classes {
			renderClass(w, c)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, dim(strings.Repeat("─", ruleWidth(w))))
	s := Summarize(results)
	if s.Failed == 0 {
		fmt.Fprintf(w, "%s - %d class(es) in %d file(s) verified\n", okLabel("Valid"), s.Classes, s.Files)
		return
	}
	fmt.Fprintf(w, "%s - %d problem(s) across %d file(s)\n", failLabel("Invalid"), s.Failed, s.Files)
}

// ruleWidth is the width of the terminal behind w capped at 60, or 40 when
// w is not a terminal.
func ruleWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 40
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return min(width, 60)
	}
	return 40
}

func renderClass(w io.Writer, c ClassResult) {
	switch c.Status {
	case StatusOK:
		fmt.Fprintf(w, "  %s %s %s\n", okLabel("✓"), c.Class, dim(fmt.Sprintf("(authority %s, mode %s)", c.Authority, c.Mode)))
		for _, r := range c.Reconciled {
			fmt.Fprintf(w, "      %s %s\n", accentLabel("reconciled"), r)
		}
	default:
		fmt.Fprintf(w, "  %s %s", failLabel("✗"), c.Class)
		if c.Authority != "" {
			fmt.Fprintf(w, " %s", dim(fmt.Sprintf("(authority %s, mode %s)", c.Authority, c.Mode)))
		}
		fmt.Fprintln(w)
		if c.Error != "" {
			fmt.Fprintf(w, "      %s\n", c.Error)
		}
		for i, v := range c.Violations {
			fmt.Fprintf(w, "      %d. %s\n", i+1, v)
		}
	}
}
