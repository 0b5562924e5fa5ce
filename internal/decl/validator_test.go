package decl

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml         string
		wantErrs     int
		wantContains []string
	}{
		"valid": {
			yaml:     sampleYAML,
			wantErrs: 0,
		},
		"no classes": {
			yaml:         "classes: []\n",
			wantErrs:     1,
			wantContains: []string{"classes", "at least one"},
		},
		"missing class name": {
			yaml:         "classes:\n  - bases: []\n",
			wantErrs:     1,
			wantContains: []string{"name", "index 0"},
		},
		"missing method name": {
			yaml:         "classes:\n  - name: A\n    methods:\n      - override: true\n",
			wantErrs:     1,
			wantContains: []string{"method", `"A"`},
		},
		"missing property name": {
			yaml:         "classes:\n  - name: A\n    properties:\n      - get: true\n",
			wantErrs:     1,
			wantContains: []string{"property", `"A"`},
		},
		"duplicate class": {
			yaml:         "classes:\n  - name: A\n  - name: A\n",
			wantErrs:     1,
			wantContains: []string{"duplicate class", "line 2"},
		},
		"duplicate member across kinds": {
			yaml:         "classes:\n  - name: A\n    methods: [size]\n    properties:\n      - name: size\n        get: true\n",
			wantErrs:     1,
			wantContains: []string{"member", "size"},
		},
		"attr with accessors": {
			yaml:         "classes:\n  - name: A\n    properties:\n      - name: p\n        attr: _p\n        get: true\n",
			wantErrs:     1,
			wantContains: []string{"attr", "get/set/del"},
		},
		"attr backed by itself": {
			yaml:         "classes:\n  - name: A\n    properties:\n      - name: label\n        attr: label\n",
			wantErrs:     1,
			wantContains: []string{"line 4", "label", "backed by itself"},
		},
		"unknown base": {
			yaml:         "classes:\n  - name: A\n    bases: [Ghost]\n",
			wantErrs:     1,
			wantContains: []string{"undeclared", "Ghost"},
		},
		"self cycle": {
			yaml:         "classes:\n  - name: A\n    bases: [A]\n",
			wantErrs:     1,
			wantContains: []string{"cycle", "A -> A"},
		},
		"two class cycle": {
			yaml:         "classes:\n  - name: A\n    bases: [B]\n  - name: B\n    bases: [A]\n",
			wantErrs:     1,
			wantContains: []string{"cycle", "A -> B -> A"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result, err := ParseBytes([]byte(tt.yaml))
			require.NoError(t, err)

			errs := Validate(result)
			require.Len(t, errs, tt.wantErrs, "errors: %v", errs)

			if len(tt.wantContains) > 0 {
				msg := strings.ToLower(errs[0].Error())
				for _, want := range tt.wantContains {
					assert.Contains(t, msg, strings.ToLower(want))
				}
			}
		})
	}
}

func TestValidate_ErrorTypes(t *testing.T) {
	t.Parallel()

	result, err := ParseBytes([]byte("classes:\n  - name: A\n    bases: [Ghost]\n  - name: A\n"))
	require.NoError(t, err)

	errs := Validate(result)
	require.Len(t, errs, 2)

	var dup *DuplicateClassError
	require.True(t, errors.As(errs[0], &dup))
	assert.Equal(t, "A", dup.Name)
	assert.Equal(t, 2, dup.FirstLine)
	assert.Equal(t, 4, dup.Line)

	var unknown *UnknownBaseError
	require.True(t, errors.As(errs[1], &unknown))
	assert.Equal(t, "Ghost", unknown.Base)
	assert.Equal(t, 3, unknown.Line)
}
