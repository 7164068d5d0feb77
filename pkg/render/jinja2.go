package render

import (
	"regexp"

	"github.com/nikolalohinski/gonja"
)

// renderJinja2 renders a jinja2 template through gonja. Unlike the other
// formats, missing variables render as empty strings; that is jinja2's
// documented behavior and callers relying on strict checking should declare
// input variables and validate before rendering.
func renderJinja2(tmpl string, values map[string]any) (string, error) {
	parsed, err := gonja.FromString(tmpl)
	if err != nil {
		return "", err
	}
	return parsed.Execute(values)
}

var jinjaVariableRe = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// extractJinjaVariables reports simple {{ name }} references. Expressions,
// filters and control blocks are not inspected.
func extractJinjaVariables(tmpl string) []string {
	seen := make(map[string]bool)
	var vars []string

	for _, match := range jinjaVariableRe.FindAllStringSubmatch(tmpl, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			vars = append(vars, name)
		}
	}

	return vars
}
