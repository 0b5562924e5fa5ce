package errors

import (
	"fmt"
	"testing"

	"github.com/ariel-frischer/overcheck/internal/override"
	crdb "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	t.Parallel()

	cliErr := NewArgumentError("bad flag")

	tests := map[string]struct {
		err          error
		wantCategory ErrorCategory
		wantStep     string
	}{
		"existing CLI error": {
			err:          fmt.Errorf("context: %w", cliErr),
			wantCategory: Argument,
		},
		"configuration error": {
			err:          &override.ConfigurationError{Value: "sideways"},
			wantCategory: Configuration,
			wantStep:     "Valid resolution modes: recent, topmost",
		},
		"hinted configuration error": {
			err:          crdb.WithHint(&override.ConfigurationError{Value: "x"}, "use one of: recent, topmost"),
			wantCategory: Configuration,
			wantStep:     "use one of: recent, topmost",
		},
		"hierarchy error": {
			err:          &override.ClassHierarchyError{Class: "Lonely", Reason: "no ancestor"},
			wantCategory: Verification,
		},
		"unknown error": {
			err:          crdb.New("boom"),
			wantCategory: Runtime,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := FromError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			if tt.wantStep != "" {
				assert.Contains(t, got.Remediation, tt.wantStep)
			}
		})
	}

	assert.Nil(t, FromError(nil))
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	base := DeclarationNotFound("x.yaml")
	wrapped := crdb.Wrap(base, "loading")

	assert.True(t, IsCLIError(wrapped))
	assert.Same(t, base, AsCLIError(wrapped))
	assert.Nil(t, AsCLIError(crdb.New("plain")))
}

func TestWrap_KeepsCause(t *testing.T) {
	t.Parallel()

	cause := &override.ConfigurationError{Value: "x"}
	got := WrapWithMessage(cause, Configuration, "loading config")
	assert.Equal(t, "loading config: "+cause.Error(), got.Error())
	assert.ErrorIs(t, got, override.ErrConfiguration)
	assert.Nil(t, Wrap(nil, Runtime))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	out := FormatErrorPlain(InvalidMode("sideways"))
	assert.Contains(t, out, `Error [Argument Error]: invalid resolution mode: "sideways"`)
	assert.Contains(t, out, "Usage: overcheck verify --mode recent|topmost <file>...")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "  • recent: check overrides against the nearest ancestor")

	assert.Empty(t, FormatErrorPlain(nil))
	assert.Equal(t, "Error [Verification Failed]: 2 problem(s) found\n", FormatErrorPlain(&CLIError{Category: Verification, Message: "2 problem(s) found"}))
}

func TestDeclarationInvalid(t *testing.T) {
	t.Parallel()

	err := DeclarationInvalid("classes.yaml", []string{"line 3: unknown base", "line 9: duplicate class"})
	assert.Equal(t, Declaration, err.Category)
	assert.Contains(t, err.Message, "  line 3: unknown base\n  line 9: duplicate class")
}
