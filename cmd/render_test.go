package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVars(t *testing.T) {
	t.Run("parses key=value pairs", func(t *testing.T) {
		values, err := parseVars([]string{"name=Ada", "place=London"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Ada", "place": "London"}, values)
	})

	t.Run("value may contain equals signs", func(t *testing.T) {
		values, err := parseVars([]string{"query=a=b=c"})
		require.NoError(t, err)
		assert.Equal(t, "a=b=c", values["query"])
	})

	t.Run("empty value is allowed", func(t *testing.T) {
		values, err := parseVars([]string{"context="})
		require.NoError(t, err)
		assert.Equal(t, "", values["context"])
	})

	t.Run("missing separator errors", func(t *testing.T) {
		_, err := parseVars([]string{"just-a-key"})
		assert.ErrorContains(t, err, "expected key=value")
	})

	t.Run("empty key errors", func(t *testing.T) {
		_, err := parseVars([]string{"=value"})
		assert.Error(t, err)
	})
}

func TestResolveTemplateRegistry(t *testing.T) {
	template, err := resolveTemplate("simple_qa")
	require.NoError(t, err)

	result, err := template.Format(map[string]any{"question": "why?"})
	require.NoError(t, err)
	assert.Equal(t, "Answer the following question: why?", result)
}
