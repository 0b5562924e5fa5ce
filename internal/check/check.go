// Package check loads declaration files and verifies their classes.
package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/ariel-frischer/overcheck/internal/class"
	"github.com/ariel-frischer/overcheck/internal/decl"
	"github.com/ariel-frischer/overcheck/internal/override"
	"github.com/ariel-frischer/overcheck/internal/report"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultParallel is the number of files verified concurrently when no
// limit is given.
const DefaultParallel = 4

// Options control how declarations are verified.
type Options struct {
	Mode                     override.Mode
	AllowMultipleInheritance bool
	// Parallel limits concurrent files. Values below 1 use DefaultParallel.
	Parallel int
	Logger   *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Validate rejects options that cannot be used for verification.
func (o Options) Validate() error {
	if _, err := override.ParseMode(string(o.Mode)); err != nil {
		return errors.WithHint(err, "use one of: recent, topmost")
	}
	return nil
}

// Paths verifies every file concurrently. Results keep the order of paths.
// The returned error is non-nil only for invalid options or a cancelled
// context; per-file problems are recorded in the results.
func Paths(ctx context.Context, paths []string, opts Options) ([]report.FileResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limit := opts.Parallel
	if limit < 1 {
		limit = DefaultParallel
	}

	results := make([]report.FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Path(path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "verifying declaration files")
	}
	return results, nil
}

// Path loads and verifies one declaration file.
func Path(path string, opts Options) report.FileResult {
	parsed, err := decl.ParseFile(path)
	if err != nil {
		return report.FileResult{File: path, Errors: []string{err.Error()}}
	}
	return verifyParsed(path, parsed, opts)
}

// Bytes verifies a declaration held in memory. name labels the result.
func Bytes(name string, data []byte, opts Options) report.FileResult {
	parsed, err := decl.ParseBytes(data)
	if err != nil {
		return report.FileResult{File: name, Errors: []string{err.Error()}}
	}
	return verifyParsed(name, parsed, opts)
}

func verifyParsed(name string, parsed *decl.ParseResult, opts Options) report.FileResult {
	result := report.FileResult{File: name}

	h, err := decl.Build(parsed)
	if err != nil {
		result.Errors = splitJoined(err)
		return result
	}

	log := opts.logger().With(zap.String("file", name))
	v := override.NewVerifier(
		override.WithMode(opts.Mode),
		override.WithMultipleInheritance(opts.AllowMultipleInheritance),
		override.WithLogger(log),
	)

	for _, c := range h.Targets() {
		result.Classes = append(result.Classes, verifyClass(v, c))
	}
	log.Debug("verified declaration file",
		zap.Int("classes", len(result.Classes)),
		zap.Bool("ok", result.OK()))
	return result
}

func verifyClass(v *override.Verifier, c *class.Class) report.ClassResult {
	res := report.ClassResult{Class: c.Name(), Mode: v.Mode().String()}

	outcome, err := v.Verify(c)
	if err == nil {
		res.Status = report.StatusOK
		res.Authority = outcome.Authority.Name()
		res.Mode = outcome.Mode.String()
		for _, r := range outcome.Reconciled {
			res.Reconciled = append(res.Reconciled, describeReconciliation(r))
		}
		return res
	}

	var failed *override.OverrideVerificationError
	if errors.As(err, &failed) {
		res.Status = report.StatusFailed
		res.Authority = failed.Authority.Name()
		for _, violation := range failed.Violations {
			res.Violations = append(res.Violations, violation.Error())
		}
		return res
	}

	res.Status = report.StatusInvalid
	res.Error = err.Error()
	return res
}

func describeReconciliation(r override.Reconciliation) string {
	return fmt.Sprintf("%s (%s from %s)", r.Name, strings.Join(r.Inherited, ", "), r.From.Name())
}

// splitJoined flattens an errors.Join result into its messages.
func splitJoined(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
