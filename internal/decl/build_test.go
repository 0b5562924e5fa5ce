package decl

import (
	"testing"

	"github.com/ariel-frischer/overcheck/internal/accessor"
	"github.com/ariel-frischer/overcheck/internal/class"
	"github.com/ariel-frischer/overcheck/internal/override"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T, src string) *Hierarchy {
	t.Helper()
	result, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	h, err := Build(result)
	require.NoError(t, err)
	return h
}

func TestBuild_OrderAndTargets(t *testing.T) {
	t.Parallel()

	h := buildSample(t, `
classes:
  - name: Bottom
    bases: [Mid]
  - name: Mid
    bases: [Top]
  - name: Top
`)

	var order []string
	for _, c := range h.Classes {
		order = append(order, c.Name())
	}
	assert.Equal(t, []string{"Top", "Mid", "Bottom"}, order, "bases built first")

	var targets []string
	for _, c := range h.Targets() {
		targets = append(targets, c.Name())
	}
	assert.Equal(t, []string{"Mid", "Bottom"}, targets)

	bottom, ok := h.Class("Bottom")
	require.True(t, ok)
	mid, _ := h.Class("Mid")
	assert.Equal(t, []*class.Class{mid}, bottom.Bases())

	d, ok := h.Decl("Bottom")
	require.True(t, ok)
	assert.Equal(t, []string{"Mid"}, d.Bases)

	_, ok = h.Class("Nope")
	assert.False(t, ok)
}

func TestBuild_Members(t *testing.T) {
	t.Parallel()

	h := buildSample(t, sampleYAML)
	child, ok := h.Class("Child")
	require.True(t, ok)

	save, ok := child.Own("save")
	require.True(t, ok)
	assert.True(t, override.IsMarked(save))

	obj := class.NewInstance(child)
	got, err := obj.Call("save")
	require.NoError(t, err)
	assert.Equal(t, "Child.save", got)

	got, err = obj.Call("load")
	require.NoError(t, err)
	assert.Equal(t, "Base.load", got)

	label, err := obj.Get("label")
	require.NoError(t, err)
	assert.Equal(t, "hello", label, "attribute-backed property reads class field")

	err = obj.Set("label", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, accessor.ErrBlocked)
	assert.Equal(t, "read-only label", err.Error())

	retries, err := obj.Get("retries")
	require.NoError(t, err)
	assert.Equal(t, 3, retries)
}

func TestBuild_StorageBackedPropertyAfterVerification(t *testing.T) {
	t.Parallel()

	h := buildSample(t, sampleYAML)
	child, _ := h.Class("Child")

	obj := class.NewInstance(child)
	assert.ErrorIs(t, obj.Set("size", 1), class.ErrAccessorUnavailable, "getter-only before reconciliation")

	_, err := override.NewVerifier(override.WithMode(override.ModeRecent)).VerifyClass(child)
	require.NoError(t, err)

	require.NoError(t, obj.Set("size", 10))
	v, err := obj.Get("size")
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	require.NoError(t, obj.Delete("size"))
	_, err = obj.Get("size")
	assert.ErrorIs(t, err, class.ErrNoAttribute)
	assert.ErrorIs(t, obj.Delete("size"), class.ErrNoAttribute)

	m, _ := child.Own("size")
	assert.Equal(t, "size in bytes", m.(*class.Property).Doc)
}

func TestBuild_InvalidDeclaration(t *testing.T) {
	t.Parallel()

	result, err := ParseBytes([]byte("classes:\n  - name: A\n    bases: [Ghost]\n"))
	require.NoError(t, err)

	_, err = Build(result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestBuild_RejectsSelfBackedProperty(t *testing.T) {
	t.Parallel()

	result, err := ParseBytes([]byte("classes:\n  - name: A\n    properties:\n      - name: label\n        attr: label\n"))
	require.NoError(t, err)

	h, err := Build(result)
	require.Error(t, err)
	assert.Nil(t, h)

	var selfErr *SelfReferentialPropertyError
	require.ErrorAs(t, err, &selfErr)
	assert.Equal(t, "A", selfErr.Class)
	assert.Equal(t, "label", selfErr.Property)
	assert.Equal(t, 4, selfErr.Line)
}
