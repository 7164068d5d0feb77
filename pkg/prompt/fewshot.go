package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/killallgit/promptkit/pkg/render"
	"github.com/killallgit/promptkit/pkg/selector"
)

// FewShotPromptTemplate assembles a prompt from a prefix, a run of
// formatted examples and a suffix, joined by ExampleSeparator. Examples
// come from a static slice or from an ExampleSelector, never both.
type FewShotPromptTemplate struct {
	// ExamplePrompt formats a single example.
	ExamplePrompt *PromptTemplate

	// Examples is the static example set. Mutually exclusive with Selector.
	Examples []map[string]string

	// Selector picks examples per input. Mutually exclusive with Examples.
	Selector selector.ExampleSelector

	// Prefix is rendered before the examples, Suffix after. Both are
	// templates in Format syntax and see the caller's values.
	Prefix string
	Suffix string

	// ExampleSeparator joins the pieces. Defaults to a blank line.
	ExampleSeparator string

	// InputVariables are the variables the prefix and suffix expect.
	InputVariables []string

	// PartialVariables are pre-bound values.
	PartialVariables map[string]any

	// TemplateFormat is the template syntax of Prefix and Suffix.
	TemplateFormat render.TemplateFormat
}

// NewFewShotTemplate creates a few-shot template with a static example set.
func NewFewShotTemplate(examplePrompt *PromptTemplate, examples []map[string]string, prefix, suffix string, inputVars []string) (*FewShotPromptTemplate, error) {
	t := &FewShotPromptTemplate{
		ExamplePrompt:  examplePrompt,
		Examples:       examples,
		Prefix:         prefix,
		Suffix:         suffix,
		InputVariables: inputVars,
	}
	if err := t.check(); err != nil {
		return nil, err
	}
	return t, nil
}

// NewFewShotTemplateWithSelector creates a few-shot template whose examples
// are chosen per input by the given selector.
func NewFewShotTemplateWithSelector(examplePrompt *PromptTemplate, sel selector.ExampleSelector, prefix, suffix string, inputVars []string) (*FewShotPromptTemplate, error) {
	t := &FewShotPromptTemplate{
		ExamplePrompt:  examplePrompt,
		Selector:       sel,
		Prefix:         prefix,
		Suffix:         suffix,
		InputVariables: inputVars,
	}
	if err := t.check(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *FewShotPromptTemplate) check() error {
	if t.ExamplePrompt == nil {
		return fmt.Errorf("few-shot template requires an example prompt")
	}
	if t.Examples != nil && t.Selector != nil {
		return fmt.Errorf("few-shot template cannot have both examples and a selector")
	}
	if t.Examples == nil && t.Selector == nil {
		return fmt.Errorf("few-shot template requires examples or a selector")
	}
	return nil
}

// Format formats the template with the given values
func (t *FewShotPromptTemplate) Format(values map[string]any) (string, error) {
	return t.FormatContext(context.Background(), values)
}

// FormatContext is Format with a context for selector-backed templates.
func (t *FewShotPromptTemplate) FormatContext(ctx context.Context, values map[string]any) (string, error) {
	merged := t.mergeValues(values)

	examples, err := t.resolveExamples(ctx, merged)
	if err != nil {
		return "", err
	}

	formatted := make([]string, 0, len(examples))
	for _, example := range examples {
		exampleValues := make(map[string]any, len(example))
		for k, v := range example {
			exampleValues[k] = v
		}

		s, err := t.ExamplePrompt.Format(exampleValues)
		if err != nil {
			return "", fmt.Errorf("failed to format example: %w", err)
		}
		formatted = append(formatted, s)
	}

	separator := t.ExampleSeparator
	if separator == "" {
		separator = "\n\n"
	}

	pieces := make([]string, 0, len(formatted)+2)
	if t.Prefix != "" {
		pieces = append(pieces, t.Prefix)
	}
	pieces = append(pieces, formatted...)
	if t.Suffix != "" {
		pieces = append(pieces, t.Suffix)
	}

	format := t.TemplateFormat
	if format == "" {
		format = render.FormatFString
	}

	return render.RenderTemplate(strings.Join(pieces, separator), format, merged)
}

// FormatPrompt formats the template as a prompt value
func (t *FewShotPromptTemplate) FormatPrompt(values map[string]any) (PromptValue, error) {
	formatted, err := t.Format(values)
	if err != nil {
		return nil, err
	}
	return StringPromptValue(formatted), nil
}

// GetInputVariables returns the list of input variable names
func (t *FewShotPromptTemplate) GetInputVariables() []string {
	return t.InputVariables
}

// WithPartialVariables creates a new template with partial variables set
func (t *FewShotPromptTemplate) WithPartialVariables(partials map[string]any) Template {
	newTemplate := *t
	newTemplate.PartialVariables = make(map[string]any, len(t.PartialVariables)+len(partials))

	for k, v := range t.PartialVariables {
		newTemplate.PartialVariables[k] = v
	}
	for k, v := range partials {
		newTemplate.PartialVariables[k] = v
	}

	return &newTemplate
}

func (t *FewShotPromptTemplate) resolveExamples(ctx context.Context, values map[string]any) ([]map[string]string, error) {
	if t.Selector == nil {
		return t.Examples, nil
	}

	input := make(map[string]string, len(values))
	for k, v := range values {
		if s, ok := v.(string); ok {
			input[k] = s
		}
	}

	return t.Selector.SelectExamples(ctx, input)
}

func (t *FewShotPromptTemplate) mergeValues(values map[string]any) map[string]any {
	merged := make(map[string]any, len(t.PartialVariables)+len(values))
	for k, v := range t.PartialVariables {
		merged[k] = v
	}
	for k, v := range values {
		merged[k] = v
	}
	return merged
}
