package registry_test

import (
	"errors"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
	"github.com/soypat/sdfcat/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(v float32) sdfcat.Func {
	return func(ms3.Vec, sdfcat.Context) float32 { return v }
}

func TestRegistryOrderAndResolve(t *testing.T) {
	reg, err := registry.New(
		registry.Entry{Name: "Zeta", Func: constant(1), Lipschitz: 1},
		registry.Entry{Name: "Alpha", Func: constant(2), Lipschitz: 1},
		registry.Entry{Name: "Mid", Func: constant(3), Lipschitz: 1.5},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, reg.Names())
	assert.Equal(t, 3, reg.Len())

	for i, name := range reg.Names() {
		fn, err := reg.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, float32(i+1), fn(ms3.Vec{}, sdfcat.DefaultContext()))
	}
	e, ok := reg.Lookup("Mid")
	require.True(t, ok)
	assert.Equal(t, float32(1.5), e.Lipschitz)
	assert.True(t, reg.Has("Alpha"))
	assert.False(t, reg.Has("alpha"))
}

func TestRegistryNamesIsCopy(t *testing.T) {
	reg, err := registry.New(registry.Entry{Name: "A", Func: constant(0), Lipschitz: 1})
	require.NoError(t, err)
	names := reg.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"A"}, reg.Names())
	entries := reg.Entries()
	entries[0].Name = "mutated"
	assert.True(t, reg.Has("A"))
}

func TestRegistryUnknown(t *testing.T) {
	reg, err := registry.New(registry.Entry{Name: "Sphere", Func: constant(0), Lipschitz: 1})
	require.NoError(t, err)
	fn, err := reg.Resolve("DoesNotExist")
	assert.Nil(t, fn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrUnknownShape))
	var unk *registry.UnknownShapeError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "DoesNotExist", unk.Name)
	assert.Equal(t, "unknown shape name: DoesNotExist", err.Error())

	// The registry remains usable after a failed lookup.
	_, err = reg.Resolve("Sphere")
	assert.NoError(t, err)
}

func TestRegistryInvalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []registry.Entry
		want    error
	}{
		{
			name: "duplicate",
			entries: []registry.Entry{
				{Name: "A", Func: constant(0), Lipschitz: 1},
				{Name: "A", Func: constant(1), Lipschitz: 1},
			},
			want: registry.ErrDuplicateName,
		},
		{
			name:    "empty name",
			entries: []registry.Entry{{Func: constant(0), Lipschitz: 1}},
			want:    registry.ErrInvalidEntry,
		},
		{
			name:    "nil func",
			entries: []registry.Entry{{Name: "A", Lipschitz: 1}},
			want:    registry.ErrInvalidEntry,
		},
		{
			name:    "zero lipschitz",
			entries: []registry.Entry{{Name: "A", Func: constant(0)}},
			want:    registry.ErrInvalidEntry,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := registry.New(tt.entries...)
			assert.Nil(t, reg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegistryEmpty(t *testing.T) {
	reg, err := registry.New()
	require.NoError(t, err)
	assert.Empty(t, reg.Names())
	_, err = reg.Resolve("")
	assert.ErrorIs(t, err, registry.ErrUnknownShape)
}
