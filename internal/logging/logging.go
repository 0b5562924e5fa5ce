// Package logging builds the zap logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describe the logger to build.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// JSON selects structured JSON output instead of the console encoder.
	JSON bool
	// Output defaults to stderr so reports on stdout stay clean.
	Output io.Writer
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zapcore.WarnLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: valid options are debug, info, warn, error", s)
	}
}

// VerbosityToLevel maps repeated -v flags onto a level. Zero keeps base.
//
//	1 (-v)  -> info
//	2+ (-vv) -> debug
func VerbosityToLevel(verbosity int, base zapcore.Level) zapcore.Level {
	switch {
	case verbosity <= 0:
		return base
	case verbosity == 1:
		return min(base, zapcore.InfoLevel)
	default:
		return zapcore.DebugLevel
	}
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	return NewAtLevel(level, opts.JSON, opts.Output), nil
}

// NewAtLevel builds a logger at a fixed level.
func NewAtLevel(level zapcore.Level, jsonOutput bool, out io.Writer) *zap.Logger {
	if out == nil {
		out = os.Stderr
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), level))
}
