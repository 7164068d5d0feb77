package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/promptkit/pkg/render"
)

// stubSelector returns a fixed example set regardless of input.
type stubSelector struct {
	examples []map[string]string
}

func (s *stubSelector) AddExample(_ context.Context, example map[string]string) error {
	s.examples = append(s.examples, example)
	return nil
}

func (s *stubSelector) SelectExamples(_ context.Context, _ map[string]string) ([]map[string]string, error) {
	return s.examples, nil
}

func TestFewShotPromptTemplate(t *testing.T) {
	examplePrompt := NewPromptTemplate(
		"Input: {word}\nOutput: {antonym}",
		[]string{"word", "antonym"},
	)

	examples := []map[string]string{
		{"word": "happy", "antonym": "sad"},
		{"word": "tall", "antonym": "short"},
	}

	t.Run("static examples", func(t *testing.T) {
		template, err := NewFewShotTemplate(
			examplePrompt,
			examples,
			"Give the antonym of every input.",
			"Input: {input}\nOutput:",
			[]string{"input"},
		)
		require.NoError(t, err)

		result, err := template.Format(map[string]any{"input": "big"})
		require.NoError(t, err)

		expected := `Give the antonym of every input.

Input: happy
Output: sad

Input: tall
Output: short

Input: big
Output:`
		assert.Equal(t, expected, result)
	})

	t.Run("selector-backed examples", func(t *testing.T) {
		sel := &stubSelector{examples: examples[:1]}

		template, err := NewFewShotTemplateWithSelector(
			examplePrompt,
			sel,
			"",
			"Input: {input}\nOutput:",
			[]string{"input"},
		)
		require.NoError(t, err)

		result, err := template.FormatContext(context.Background(), map[string]any{"input": "wet"})
		require.NoError(t, err)
		assert.Equal(t, "Input: happy\nOutput: sad\n\nInput: wet\nOutput:", result)
	})

	t.Run("custom separator", func(t *testing.T) {
		template, err := NewFewShotTemplate(
			examplePrompt,
			examples[:1],
			"",
			"Input: {input}\nOutput:",
			[]string{"input"},
		)
		require.NoError(t, err)
		template.ExampleSeparator = "\n---\n"

		result, err := template.Format(map[string]any{"input": "old"})
		require.NoError(t, err)
		assert.Equal(t, "Input: happy\nOutput: sad\n---\nInput: old\nOutput:", result)
	})

	t.Run("gotemplate prefix and suffix", func(t *testing.T) {
		goExample, err := NewPromptTemplateWithOptions(
			"{{.word}} -> {{.antonym}}",
			[]string{"word", "antonym"},
			WithTemplateFormat(render.FormatGoTemplate),
		)
		require.NoError(t, err)

		template, err := NewFewShotTemplate(
			goExample,
			examples[:1],
			"Antonyms:",
			"{{.input}} ->",
			[]string{"input"},
		)
		require.NoError(t, err)
		template.TemplateFormat = render.FormatGoTemplate

		result, err := template.Format(map[string]any{"input": "down"})
		require.NoError(t, err)
		assert.Equal(t, "Antonyms:\n\nhappy -> sad\n\ndown ->", result)
	})

	t.Run("partial variables", func(t *testing.T) {
		template, err := NewFewShotTemplate(
			examplePrompt,
			examples[:1],
			"{heading}",
			"Input: {input}\nOutput:",
			[]string{"heading", "input"},
		)
		require.NoError(t, err)

		partial := template.WithPartialVariables(map[string]any{"heading": "Antonyms"})
		result, err := partial.Format(map[string]any{"input": "up"})
		require.NoError(t, err)
		assert.Equal(t, "Antonyms\n\nInput: happy\nOutput: sad\n\nInput: up\nOutput:", result)
	})

	t.Run("requires examples or selector", func(t *testing.T) {
		_, err := NewFewShotTemplate(examplePrompt, nil, "", "suffix", nil)
		assert.Error(t, err)
	})

	t.Run("rejects both examples and selector", func(t *testing.T) {
		template := &FewShotPromptTemplate{
			ExamplePrompt: examplePrompt,
			Examples:      examples,
			Selector:      &stubSelector{},
		}
		assert.Error(t, template.check())
	})

	t.Run("format prompt", func(t *testing.T) {
		template, err := NewFewShotTemplate(
			examplePrompt,
			examples[:1],
			"",
			"Input: {input}\nOutput:",
			[]string{"input"},
		)
		require.NoError(t, err)

		value, err := template.FormatPrompt(map[string]any{"input": "cold"})
		require.NoError(t, err)
		assert.Contains(t, value.String(), "Input: cold")
	})
}
