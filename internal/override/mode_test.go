package override

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Mode
		wantErr bool
	}{
		"recent":              {input: "recent", want: ModeRecent},
		"topmost":             {input: "topmost", want: ModeTopmost},
		"case insensitive":    {input: "TopMost", want: ModeTopmost},
		"surrounding space":   {input: "  recent\n", want: ModeRecent},
		"empty is invalid":    {input: "", wantErr: true},
		"unknown is invalid":  {input: "nearest", wantErr: true},
		"numeric is invalid":  {input: "1", wantErr: true},
		"partial is invalid":  {input: "top", wantErr: true},
		"separator not valid": {input: "top-most", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfiguration))
				var cfgErr *ConfigurationError
				require.True(t, errors.As(err, &cfgErr))
				assert.Equal(t, tt.input, cfgErr.Value)
				assert.Contains(t, err.Error(), "recent, topmost")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, mode := range ValidModes {
		r := NewRegistry()
		require.NoError(t, r.SetMode(mode))
		assert.Equal(t, mode, r.GetMode())
	}

	r := NewRegistry()
	require.NoError(t, r.SetMode("TOPMOST"))
	assert.Equal(t, ModeTopmost, r.GetMode(), "string tokens are normalized")
}

func TestRegistry_InvalidLeavesPriorMode(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.SetMode(ModeTopmost))

	for _, bad := range []Mode{"", "newest", "Recent!"} {
		err := r.SetMode(bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
		assert.Equal(t, ModeTopmost, r.GetMode())
	}
}

func TestRegistry_ZeroValue(t *testing.T) {
	t.Parallel()

	var r Registry
	assert.Equal(t, DefaultMode, r.GetMode())
	assert.Equal(t, ModeRecent, NewRegistry().GetMode())
}

// Mutates the package-level registry, so it must not run in parallel.
func TestDefaultRegistry_SetGet(t *testing.T) {
	prev := GetMode()
	t.Cleanup(func() { _ = SetMode(prev) })

	require.NoError(t, SetMode(ModeTopmost))
	assert.Equal(t, ModeTopmost, GetMode())
	assert.Equal(t, ModeTopmost, DefaultRegistry().GetMode())
	assert.Equal(t, ModeTopmost, NewVerifier().Mode())

	require.Error(t, SetMode("bogus"))
	assert.Equal(t, ModeTopmost, GetMode())

	require.NoError(t, SetMode(ModeRecent))
	assert.Equal(t, ModeRecent, GetMode())
}

// Mutates the package-level registry, so it must not run in parallel.
func TestVerifyClass_UsesDefaultRegistryMode(t *testing.T) {
	prev := GetMode()
	t.Cleanup(func() { _ = SetMode(prev) })

	require.NoError(t, SetMode(ModeTopmost))
	_, _, bottom := threeLevel()
	got, err := VerifyClass(bottom)
	require.Error(t, err)
	assert.Nil(t, got)

	var verr *OverrideVerificationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, ModeTopmost, verr.Mode)
	assert.Equal(t, "Top", verr.Authority.Name())
	assert.Equal(t, []string{"midOnly"}, verr.Members())

	require.NoError(t, SetMode(ModeRecent))
	_, _, bottom = threeLevel()
	got, err = VerifyClass(bottom)
	require.NoError(t, err)
	assert.Equal(t, bottom, got)
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "recent", ModeRecent.String())
	assert.Equal(t, "topmost", ModeTopmost.String())
	assert.False(t, Mode("sideways").IsValid())
}
