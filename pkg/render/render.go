// Package render implements the template engine behind prompt templates.
// Three interchangeable syntaxes are supported: the default f-string style
// ({variable}), Go text/template with the sprig function map, and jinja2.
package render

import (
	"errors"
	"fmt"
)

// TemplateFormat selects the template syntax used by a template string.
type TemplateFormat string

const (
	// FormatFString uses {variable} placeholders with {{ and }} escapes.
	FormatFString TemplateFormat = "fstring"

	// FormatGoTemplate uses Go text/template syntax with sprig functions.
	FormatGoTemplate TemplateFormat = "gotemplate"

	// FormatJinja2 uses jinja2 syntax rendered through gonja.
	FormatJinja2 TemplateFormat = "jinja2"
)

// ErrInvalidTemplateFormat is returned for formats this engine does not know.
var ErrInvalidTemplateFormat = errors.New("invalid template format")

type renderFunc func(tmpl string, values map[string]any) (string, error)

var formatRenderers = map[TemplateFormat]renderFunc{
	FormatFString:    renderFString,
	FormatGoTemplate: renderGoTemplate,
	FormatJinja2:     renderJinja2,
}

// RenderTemplate renders a template string in the given format against the
// provided values.
func RenderTemplate(tmpl string, format TemplateFormat, values map[string]any) (string, error) {
	fn, ok := formatRenderers[format]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidTemplateFormat, format)
	}
	return fn(tmpl, values)
}

// CheckValidTemplate verifies that a template parses and that the declared
// input variables are sufficient to render it. It performs a dry run with
// placeholder values.
func CheckValidTemplate(tmpl string, format TemplateFormat, inputVariables []string) error {
	values := make(map[string]any, len(inputVariables))
	for _, v := range inputVariables {
		values[v] = "foo"
	}

	if _, err := RenderTemplate(tmpl, format, values); err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}
	return nil
}

// InferVariables extracts the placeholder names referenced by a template
// string. Names are returned in order of first appearance, deduplicated.
func InferVariables(tmpl string, format TemplateFormat) ([]string, error) {
	switch format {
	case FormatFString:
		return parseFStringVariables(tmpl)
	case FormatGoTemplate:
		return extractDottedVariables(tmpl), nil
	case FormatJinja2:
		return extractJinjaVariables(tmpl), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplateFormat, format)
	}
}
