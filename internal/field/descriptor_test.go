package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapInstance is a minimal map-backed Instance for descriptor tests.
type mapInstance struct {
	known  map[string]bool
	values map[string]any
}

func newMapInstance(names ...string) *mapInstance {
	inst := &mapInstance{known: make(map[string]bool), values: make(map[string]any)}
	for _, name := range names {
		inst.known[name] = true
	}
	return inst
}

func (m *mapInstance) HasField(name string) bool { return m.known[name] }

func (m *mapInstance) FieldValue(name string) (any, bool) {
	v := m.values[name]
	return v, v != nil
}

func (m *mapInstance) StoreFieldValue(name string, value any) { m.values[name] = value }

func TestDependenciesSatisfied(t *testing.T) {
	desc := New(0, "body", WithDependencies("header", "size"))

	inst := newMapInstance("header", "size", "body")
	assert.False(t, desc.DependenciesSatisfied(inst))

	inst.StoreFieldValue("header", "h")
	assert.False(t, desc.DependenciesSatisfied(inst))

	inst.StoreFieldValue("size", 10)
	assert.True(t, desc.DependenciesSatisfied(inst))
}

func TestDependenciesSatisfiedSkipsOwnName(t *testing.T) {
	desc := New(0, "body", WithDependencies("body", "header"))
	inst := newMapInstance("header", "body")
	inst.StoreFieldValue("header", "h")

	// "body" in its own dependency list never blocks resolution.
	assert.True(t, desc.DependenciesSatisfied(inst))
}

func TestDescriptorGet(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		desc := New(0, "missing")
		_, err := desc.Get(newMapInstance("other"))
		var unknownErr *UnknownFieldError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "missing", unknownErr.Field)
	})

	t.Run("unmet dependencies", func(t *testing.T) {
		desc := New(0, "body", WithDependencies("header"))
		_, err := desc.Get(newMapInstance("body", "header"))
		var unmetErr *UnmetDependencyError
		require.ErrorAs(t, err, &unmetErr)
		assert.Equal(t, "body", unmetErr.Field)
	})

	t.Run("unresolved slot reads as nil, not as an error", func(t *testing.T) {
		desc := New(0, "header")
		value, err := desc.Get(newMapInstance("header"))
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("resolved value", func(t *testing.T) {
		desc := New(0, "header")
		inst := newMapInstance("header")
		inst.StoreFieldValue("header", "decoded")
		value, err := desc.Get(inst)
		require.NoError(t, err)
		assert.Equal(t, "decoded", value)
	})
}

func TestDescriptorSet(t *testing.T) {
	t.Run("overwrites unconditionally", func(t *testing.T) {
		desc := New(0, "header")
		inst := newMapInstance("header")
		require.NoError(t, desc.Set(inst, "first"))
		require.NoError(t, desc.Set(inst, "second"))
		v, _ := inst.FieldValue("header")
		assert.Equal(t, "second", v)
	})

	t.Run("read-only rejects the write and keeps prior state", func(t *testing.T) {
		desc := New(0, "locked", ReadOnly())
		inst := newMapInstance("locked")
		inst.StoreFieldValue("locked", "seeded")

		err := desc.Set(inst, "replacement")
		var roErr *ReadOnlyError
		require.ErrorAs(t, err, &roErr)
		assert.Equal(t, "locked", roErr.Field)

		v, _ := inst.FieldValue("locked")
		assert.Equal(t, "seeded", v)
	})
}

func TestDescriptorClone(t *testing.T) {
	desc := New(7, "body", WithDependencies("header"), ReadOnly())
	clone := desc.Clone(2)

	assert.Equal(t, 2, clone.Index)
	assert.Equal(t, "body", clone.Name)
	assert.True(t, clone.ReadOnly)

	// The dependency slice is copied, not aliased.
	clone.Dependencies[0] = "mutated"
	assert.Equal(t, []string{"header"}, desc.Dependencies)
}
