package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	newTemplate := func() Template {
		return NewPromptTemplate("Hello {name}", []string{"name"})
	}

	t.Run("register and get", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register("greeting", newTemplate()))

		template, err := reg.Get("greeting")
		require.NoError(t, err)

		result, err := template.Format(map[string]any{"name": "Ada"})
		require.NoError(t, err)
		assert.Equal(t, "Hello Ada", result)
	})

	t.Run("duplicate registration errors", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register("greeting", newTemplate()))

		err := reg.Register("greeting", newTemplate())
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("get unknown template errors", func(t *testing.T) {
		reg := NewRegistry()
		_, err := reg.Get("ghost")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("list is sorted", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register("zeta", newTemplate()))
		require.NoError(t, reg.Register("alpha", newTemplate()))
		require.NoError(t, reg.Register("mid", newTemplate()))

		assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.List())
	})

	t.Run("unregister", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register("greeting", newTemplate()))

		reg.Unregister("greeting")
		_, err := reg.Get("greeting")
		assert.Error(t, err)

		// Unregistering a missing name is a no-op
		reg.Unregister("greeting")
	})

	t.Run("clear", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register("a", newTemplate()))
		require.NoError(t, reg.Register("b", newTemplate()))

		reg.Clear()
		assert.Empty(t, reg.List())
	})

	t.Run("must get panics on unknown name", func(t *testing.T) {
		assert.Panics(t, func() { MustGet("definitely-not-registered") })
	})
}
