package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/overcheck/internal/override"
	"github.com/ariel-frischer/overcheck/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const validYAML = `
classes:
  - name: Base
    methods: [save]
    properties:
      - name: size
        get: true
        set: true
        del: true
  - name: Child
    bases: [Base]
    methods:
      - name: save
        override: true
    properties:
      - name: size
        get: true
`

const brokenYAML = `
classes:
  - name: Base
    methods: [save]
  - name: Broken
    bases: [Base]
    methods:
      - name: ghost
        override: true
      - name: phantom
        override: true
  - name: Lonely
    verify: true
    methods:
      - name: save
        override: true
`

const chainYAML = `
classes:
  - name: A
  - name: B
    bases: [A]
    methods: [extra]
  - name: C
    bases: [B]
    methods:
      - name: extra
        override: true
`

const diamondYAML = `
classes:
  - name: A
    methods: [ping]
  - name: B
    bases: [A]
  - name: C
    bases: [A]
  - name: D
    bases: [B, C]
    methods:
      - name: ping
        override: true
`

func TestBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml       string
		opts       Options
		want       []report.ClassResult
		wantErrors bool
	}{
		"valid with reconciliation": {
			yaml: validYAML,
			opts: Options{Mode: override.ModeRecent},
			want: []report.ClassResult{{
				Class:      "Child",
				Authority:  "Base",
				Mode:       "recent",
				Status:     report.StatusOK,
				Reconciled: []string{"size (setter, deleter from Base)"},
			}},
		},
		"violations and missing ancestor": {
			yaml: brokenYAML,
			opts: Options{Mode: override.ModeRecent},
			want: []report.ClassResult{
				{
					Class:     "Broken",
					Authority: "Base",
					Mode:      "recent",
					Status:    report.StatusFailed,
					Violations: []string{
						`Broken.ghost is marked as an override but Base defines no member "ghost"`,
						`Broken.phantom is marked as an override but Base defines no member "phantom"`,
					},
				},
				{
					Class:  "Lonely",
					Mode:   "recent",
					Status: report.StatusInvalid,
				},
			},
		},
		"recent mode finds nearest ancestor": {
			yaml: chainYAML,
			opts: Options{Mode: override.ModeRecent},
			want: []report.ClassResult{
				{Class: "B", Authority: "A", Mode: "recent", Status: report.StatusOK},
				{Class: "C", Authority: "B", Mode: "recent", Status: report.StatusOK},
			},
		},
		"topmost mode misses intermediate member": {
			yaml: chainYAML,
			opts: Options{Mode: override.ModeTopmost},
			want: []report.ClassResult{
				{Class: "B", Authority: "A", Mode: "topmost", Status: report.StatusOK},
				{
					Class:      "C",
					Authority:  "A",
					Mode:       "topmost",
					Status:     report.StatusFailed,
					Violations: []string{`C.extra is marked as an override but A defines no member "extra"`},
				},
			},
		},
		"multiple inheritance allowed": {
			yaml: diamondYAML,
			opts: Options{Mode: override.ModeTopmost, AllowMultipleInheritance: true},
			want: []report.ClassResult{
				{Class: "B", Authority: "A", Mode: "topmost", Status: report.StatusOK},
				{Class: "C", Authority: "A", Mode: "topmost", Status: report.StatusOK},
				{Class: "D", Authority: "A", Mode: "topmost", Status: report.StatusOK},
			},
		},
		"unknown base": {
			yaml:       "classes:\n  - name: Child\n    bases: [Missing]\n",
			opts:       Options{Mode: override.ModeRecent},
			wantErrors: true,
		},
		"not yaml": {
			yaml:       "classes: [unclosed",
			opts:       Options{Mode: override.ModeRecent},
			wantErrors: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := Bytes("decl.yaml", []byte(tt.yaml), tt.opts)
			assert.Equal(t, "decl.yaml", got.File)
			if tt.wantErrors {
				assert.NotEmpty(t, got.Errors)
				assert.Empty(t, got.Classes)
				assert.False(t, got.OK())
				return
			}
			require.Empty(t, got.Errors)
			require.Len(t, got.Classes, len(tt.want))
			for i, want := range tt.want {
				have := got.Classes[i]
				assert.Equal(t, want.Class, have.Class)
				assert.Equal(t, want.Authority, have.Authority)
				assert.Equal(t, want.Mode, have.Mode)
				assert.Equal(t, want.Status, have.Status)
				assert.Equal(t, want.Violations, have.Violations)
				assert.Equal(t, want.Reconciled, have.Reconciled)
				if want.Status == report.StatusInvalid {
					assert.NotEmpty(t, have.Error)
				}
			}
		})
	}
}

func TestBytes_MultipleInheritanceRejectedByDefault(t *testing.T) {
	t.Parallel()

	got := Bytes("diamond.yaml", []byte(diamondYAML), Options{Mode: override.ModeRecent})
	require.Len(t, got.Classes, 3)
	d := got.Classes[2]
	assert.Equal(t, "D", d.Class)
	assert.Equal(t, report.StatusInvalid, d.Status)
	assert.Contains(t, d.Error, "multiple inheritance")
}

func TestBytes_LogsWithFileField(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	Bytes("diamond.yaml", []byte(diamondYAML), Options{
		Mode:                     override.ModeRecent,
		AllowMultipleInheritance: true,
		Logger:                   zap.New(core),
	})

	warnings := logs.FilterMessage("verifying class with multiple inheritance").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "diamond.yaml", warnings[0].ContextMap()["file"])
	assert.Equal(t, "D", warnings[0].ContextMap()["class"])
	assert.Equal(t, 1, logs.FilterMessage("verified declaration file").Len())
}

func TestPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	broken := filepath.Join(dir, "broken.yaml")
	missing := filepath.Join(dir, "missing.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(validYAML), 0o644))
	require.NoError(t, os.WriteFile(broken, []byte(brokenYAML), 0o644))

	results, err := Paths(context.Background(), []string{valid, broken, missing}, Options{Mode: override.ModeRecent, Parallel: 2})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, valid, results[0].File)
	assert.True(t, results[0].OK())
	assert.Equal(t, broken, results[1].File)
	assert.False(t, results[1].OK())
	assert.Equal(t, missing, results[2].File)
	require.Len(t, results[2].Errors, 1)
	assert.Contains(t, results[2].Errors[0], "reading declaration file")
}

func TestPaths_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := Paths(context.Background(), []string{"x.yaml"}, Options{Mode: "sideways"})
	require.Error(t, err)
	assert.ErrorIs(t, err, override.ErrConfiguration)
}

func TestPaths_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Paths(ctx, []string{"a.yaml", "b.yaml"}, Options{Mode: override.ModeRecent})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
