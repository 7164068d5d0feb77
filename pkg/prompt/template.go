package prompt

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/killallgit/promptkit/pkg/render"
)

// PromptTemplate is a reusable text pattern with named placeholders,
// filled at runtime to produce a model input string.
type PromptTemplate struct {
	template         string
	inputVariables   []string
	format           render.TemplateFormat
	partialVariables map[string]any
	metadata         map[string]*Variable

	// id keys the compiled-template cache for go templates
	id string
}

// NewPromptTemplate creates a new prompt template using the default
// f-string syntax ({variable} placeholders).
func NewPromptTemplate(template string, inputVars []string) *PromptTemplate {
	return &PromptTemplate{
		template:         template,
		inputVariables:   inputVars,
		format:           render.FormatFString,
		partialVariables: make(map[string]any),
		metadata:         make(map[string]*Variable),
		id:               uuid.NewString(),
	}
}

// NewPromptTemplateWithOptions creates a new prompt template with options
func NewPromptTemplateWithOptions(template string, inputVars []string, options ...PromptOption) (*PromptTemplate, error) {
	pt := NewPromptTemplate(template, inputVars)

	for _, opt := range options {
		if err := opt(pt); err != nil {
			return nil, err
		}
	}

	return pt, nil
}

// FromTemplate creates a prompt template and infers its input variables
// from the placeholder names in the template string.
func FromTemplate(template string, options ...PromptOption) (*PromptTemplate, error) {
	pt, err := NewPromptTemplateWithOptions(template, nil, options...)
	if err != nil {
		return nil, err
	}

	vars, err := render.InferVariables(template, pt.format)
	if err != nil {
		return nil, fmt.Errorf("failed to infer input variables: %w", err)
	}
	pt.inputVariables = vars

	return pt, nil
}

// Validate checks that the template parses and can be rendered with its
// declared input variables.
func (p *PromptTemplate) Validate() error {
	vars := make([]string, 0, len(p.inputVariables)+len(p.partialVariables))
	vars = append(vars, p.inputVariables...)
	for k := range p.partialVariables {
		vars = append(vars, k)
	}
	return render.CheckValidTemplate(p.template, p.format, vars)
}

// Format formats the template with the given values
func (p *PromptTemplate) Format(values map[string]any) (string, error) {
	// Merge partial variables with provided values
	merged := p.mergeValues(values)

	// Validate required variables
	if err := p.validateVariables(merged); err != nil {
		return "", err
	}

	if p.format == render.FormatGoTemplate {
		return render.RenderGoTemplateCached(p.id, p.template, merged)
	}
	return render.RenderTemplate(p.template, p.format, merged)
}

// FormatPrompt formats the template as a prompt value
func (p *PromptTemplate) FormatPrompt(values map[string]any) (PromptValue, error) {
	formatted, err := p.Format(values)
	if err != nil {
		return nil, err
	}
	return StringPromptValue(formatted), nil
}

// GetInputVariables returns the list of input variable names
func (p *PromptTemplate) GetInputVariables() []string {
	return p.inputVariables
}

// GetTemplate returns the raw template string.
func (p *PromptTemplate) GetTemplate() string {
	return p.template
}

// GetFormat returns the template syntax in use.
func (p *PromptTemplate) GetFormat() render.TemplateFormat {
	return p.format
}

// WithPartialVariables creates a new template with partial variables set
func (p *PromptTemplate) WithPartialVariables(partials map[string]any) Template {
	newTemplate := &PromptTemplate{
		template:         p.template,
		inputVariables:   p.inputVariables,
		format:           p.format,
		partialVariables: make(map[string]any),
		metadata:         p.metadata,
		id:               p.id,
	}

	// Copy existing partials
	for k, v := range p.partialVariables {
		newTemplate.partialVariables[k] = v
	}

	// Add new partials
	for k, v := range partials {
		newTemplate.partialVariables[k] = v
	}

	return newTemplate
}

// SetVariableMetadata sets metadata for a variable
func (p *PromptTemplate) SetVariableMetadata(variable *Variable) {
	p.metadata[variable.Name] = variable
}

// mergeValues merges partial variables with provided values
func (p *PromptTemplate) mergeValues(values map[string]any) map[string]any {
	merged := make(map[string]any)

	// Start with partial variables
	for k, v := range p.partialVariables {
		merged[k] = v
	}

	// Override with provided values
	for k, v := range values {
		merged[k] = v
	}

	// Apply defaults for missing variables
	for _, varName := range p.inputVariables {
		if _, exists := merged[varName]; !exists {
			if meta, ok := p.metadata[varName]; ok && meta.Default != nil {
				merged[varName] = meta.Default
			}
		}
	}

	return merged
}

// validateVariables validates that all required variables are present
func (p *PromptTemplate) validateVariables(values map[string]any) error {
	var missing []string

	for _, varName := range p.inputVariables {
		meta, hasMeta := p.metadata[varName]
		value, exists := values[varName]

		// Check if required variable is missing
		if !exists && hasMeta && meta.Required {
			missing = append(missing, varName)
			continue
		}

		// Run validator if present
		if exists && hasMeta && meta.Validator != nil {
			if err := meta.Validator(value); err != nil {
				return fmt.Errorf("validation failed for variable %s: %w", varName, err)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// PromptOption is a functional option for configuring a PromptTemplate
type PromptOption func(*PromptTemplate) error

// WithPartials sets partial variables
func WithPartials(partials map[string]any) PromptOption {
	return func(pt *PromptTemplate) error {
		pt.partialVariables = partials
		return nil
	}
}

// WithVariableMetadata sets metadata for variables
func WithVariableMetadata(variables ...*Variable) PromptOption {
	return func(pt *PromptTemplate) error {
		for _, v := range variables {
			pt.metadata[v.Name] = v
		}
		return nil
	}
}

// WithTemplateFormat selects the template syntax (gotemplate, fstring, jinja2)
func WithTemplateFormat(format render.TemplateFormat) PromptOption {
	return func(pt *PromptTemplate) error {
		switch format {
		case render.FormatGoTemplate, render.FormatFString, render.FormatJinja2:
			pt.format = format
			return nil
		default:
			return fmt.Errorf("%w: %s", render.ErrInvalidTemplateFormat, format)
		}
	}
}
