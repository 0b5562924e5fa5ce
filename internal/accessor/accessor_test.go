package accessor

import (
	"errors"
	"testing"

	"github.com/ariel-frischer/overcheck/internal/class"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAttribute(t *testing.T) {
	t.Parallel()

	c := class.New("User").Define("name", FromAttribute("_name", WithDoc("display name")))
	obj := class.NewInstance(c)

	require.NoError(t, obj.Set("name", "ada"))
	v, err := obj.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "ada", v)

	raw, ok := obj.Slot("_name")
	require.True(t, ok)
	assert.Equal(t, "ada", raw)

	require.NoError(t, obj.Delete("name"))
	_, err = obj.Get("name")
	assert.ErrorIs(t, err, class.ErrNoAttribute)

	m, _ := c.Own("name")
	assert.Equal(t, "display name", m.(*class.Property).Doc)
}

func TestFromAttribute_Blocked(t *testing.T) {
	t.Parallel()

	custom := errors.New("immutable")

	tests := map[string]struct {
		opts      []Option
		op        func(*class.Instance) error
		wantIs    error
		wantInMsg string
	}{
		"blocked set default error": {
			opts:      []Option{AllowSet(false)},
			op:        func(o *class.Instance) error { return o.Set("id", 2) },
			wantIs:    ErrBlocked,
			wantInMsg: `cannot set property "_id"`,
		},
		"blocked delete default error": {
			opts:      []Option{AllowDelete(false)},
			op:        func(o *class.Instance) error { return o.Delete("id") },
			wantIs:    ErrBlocked,
			wantInMsg: `cannot delete property "_id"`,
		},
		"custom message": {
			opts:      []Option{AllowSet(false), WithErrorMessage("id is read-only")},
			op:        func(o *class.Instance) error { return o.Set("id", 2) },
			wantIs:    ErrBlocked,
			wantInMsg: "id is read-only",
		},
		"custom error factory": {
			opts:   []Option{AllowDelete(false), WithError(func(string, Op) error { return custom })},
			op:     func(o *class.Instance) error { return o.Delete("id") },
			wantIs: custom,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := class.New("Record").Define("id", FromAttribute("_id", tt.opts...))
			obj := class.NewInstance(c)
			obj.SetSlot("_id", 1)

			err := tt.op(obj)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
			if tt.wantInMsg != "" {
				assert.Contains(t, err.Error(), tt.wantInMsg)
			}

			v, err := obj.Get("id")
			require.NoError(t, err)
			assert.Equal(t, 1, v, "value unchanged")
		})
	}
}

func TestFromFuncs(t *testing.T) {
	t.Parallel()

	get := func(*class.Instance) (any, error) { return "v", nil }
	set := func(*class.Instance, any) error { return nil }

	p := FromFuncs(get, nil, nil)
	assert.True(t, p.HasGetter())
	assert.False(t, p.HasSetter(), "nil setter stays absent")
	assert.False(t, p.HasDeleter())

	p = FromFuncs(get, set, nil, AllowDelete(false), WithName("token"))
	assert.True(t, p.HasDeleter(), "blocking installs a failing deleter")
	err := p.Del(nil)
	var blocked *BlockedError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, "token", blocked.Property)
	assert.Equal(t, OpDelete, blocked.Op)
}
