package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/promptkit/pkg/render"
)

func TestPromptTemplate(t *testing.T) {
	t.Run("basic template formatting", func(t *testing.T) {
		template := NewPromptTemplate(
			"Hello {name}, welcome to {place}!",
			[]string{"name", "place"},
		)

		result, err := template.Format(map[string]any{
			"name":  "Alice",
			"place": "Wonderland",
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello Alice, welcome to Wonderland!", result)
	})

	t.Run("template with partial variables", func(t *testing.T) {
		template := NewPromptTemplate(
			"{greeting} {name}!",
			[]string{"greeting", "name"},
		)

		// Create a new template with partial variables
		partial := template.WithPartialVariables(map[string]any{
			"greeting": "Hello",
		})

		result, err := partial.Format(map[string]any{
			"name": "Bob",
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello Bob!", result)
	})

	t.Run("partials do not leak into the source template", func(t *testing.T) {
		template := NewPromptTemplate("{a}", []string{"a"})
		_ = template.WithPartialVariables(map[string]any{"a": "partial"})

		result, err := template.Format(map[string]any{"a": "direct"})
		require.NoError(t, err)
		assert.Equal(t, "direct", result)
	})

	t.Run("template with variable metadata", func(t *testing.T) {
		template, err := NewPromptTemplateWithOptions(
			"Age: {age}, Score: {score}",
			[]string{"age", "score"},
			WithVariableMetadata(
				&Variable{
					Name:     "age",
					Required: true,
					Validator: func(v any) error {
						age, ok := v.(int)
						if !ok || age < 0 {
							return assert.AnError
						}
						return nil
					},
				},
				&Variable{
					Name:    "score",
					Default: 0,
				},
			),
		)

		require.NoError(t, err)

		// Test with valid values
		result, err := template.Format(map[string]any{
			"age": 25,
		})
		require.NoError(t, err)
		assert.Equal(t, "Age: 25, Score: 0", result)

		// Test with invalid age
		_, err = template.Format(map[string]any{
			"age": -5,
		})
		assert.Error(t, err)

		// Missing required variable
		_, err = template.Format(map[string]any{"score": 1})
		assert.ErrorContains(t, err, "missing required variables: age")
	})

	t.Run("get input variables", func(t *testing.T) {
		template := NewPromptTemplate(
			"{var1} and {var2} and {var3}",
			[]string{"var1", "var2", "var3"},
		)

		vars := template.GetInputVariables()
		assert.ElementsMatch(t, []string{"var1", "var2", "var3"}, vars)
	})

	t.Run("gotemplate format", func(t *testing.T) {
		template, err := NewPromptTemplateWithOptions(
			"Tell me a {{.adjective}} joke about {{.content}}.",
			[]string{"adjective", "content"},
			WithTemplateFormat(render.FormatGoTemplate),
		)
		require.NoError(t, err)

		result, err := template.Format(map[string]any{
			"adjective": "funny",
			"content":   "chickens",
		})
		require.NoError(t, err)
		assert.Equal(t, "Tell me a funny joke about chickens.", result)
	})

	t.Run("jinja2 format", func(t *testing.T) {
		template, err := NewPromptTemplateWithOptions(
			"Tell me a {{ adjective }} joke about {{ content }}.",
			[]string{"adjective", "content"},
			WithTemplateFormat(render.FormatJinja2),
		)
		require.NoError(t, err)

		result, err := template.Format(map[string]any{
			"adjective": "dry",
			"content":   "compilers",
		})
		require.NoError(t, err)
		assert.Equal(t, "Tell me a dry joke about compilers.", result)
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		_, err := NewPromptTemplateWithOptions("x", nil, WithTemplateFormat("mustache"))
		assert.ErrorIs(t, err, render.ErrInvalidTemplateFormat)
	})

	t.Run("format prompt returns string value", func(t *testing.T) {
		template := NewPromptTemplate("Hi {name}", []string{"name"})

		value, err := template.FormatPrompt(map[string]any{"name": "Eve"})
		require.NoError(t, err)
		assert.Equal(t, "Hi Eve", value.String())

		messages := value.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, "Hi Eve", messages[0].GetContent())
	})
}

func TestFromTemplate(t *testing.T) {
	t.Run("default syntax is fstring", func(t *testing.T) {
		template, err := FromTemplate("Tell me a {adjective} joke about {content}.")
		require.NoError(t, err)
		assert.Equal(t, []string{"adjective", "content"}, template.GetInputVariables())
		assert.Equal(t, render.FormatFString, template.GetFormat())

		result, err := template.Format(map[string]any{
			"adjective": "funny",
			"content":   "chickens",
		})
		require.NoError(t, err)
		assert.Equal(t, "Tell me a funny joke about chickens.", result)
	})

	t.Run("infers gotemplate variables", func(t *testing.T) {
		template, err := FromTemplate(
			"Hello {{.name}} from {{.place}}",
			WithTemplateFormat(render.FormatGoTemplate),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "place"}, template.GetInputVariables())
	})

	t.Run("malformed fstring errors", func(t *testing.T) {
		_, err := FromTemplate("broken {oops")
		assert.Error(t, err)
	})
}

func TestPromptTemplateValidate(t *testing.T) {
	t.Run("complete variables pass", func(t *testing.T) {
		template := NewPromptTemplate("{a} {b}", []string{"a", "b"})
		assert.NoError(t, template.Validate())
	})

	t.Run("undeclared variable fails", func(t *testing.T) {
		template := NewPromptTemplate("{a} {b}", []string{"a"})
		assert.Error(t, template.Validate())
	})

	t.Run("partials count as declared", func(t *testing.T) {
		template := NewPromptTemplate("{a} {b}", []string{"a"}).
			WithPartialVariables(map[string]any{"b": "x"}).(*PromptTemplate)
		assert.NoError(t, template.Validate())
	})
}
