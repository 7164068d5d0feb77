package render

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// goTemplateCache caches compiled templates by caller-supplied key so that
// repeatedly formatted templates are parsed once.
type goTemplateCache struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

var defaultGoTemplateCache = &goTemplateCache{
	templates: make(map[string]*template.Template),
}

func (c *goTemplateCache) get(key, tmpl string) (*template.Template, error) {
	c.mu.RLock()
	parsed, ok := c.templates[key]
	c.mu.RUnlock()
	if ok {
		return parsed, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if parsed, ok := c.templates[key]; ok {
		return parsed, nil
	}

	parsed, err := parseGoTemplate(tmpl)
	if err != nil {
		return nil, err
	}

	c.templates[key] = parsed
	return parsed, nil
}

func parseGoTemplate(tmpl string) (*template.Template, error) {
	return template.New("template").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(tmpl)
}

// renderGoTemplate renders a Go text/template with the sprig function map.
// Missing variables referenced by the template are an error.
func renderGoTemplate(tmpl string, values map[string]any) (string, error) {
	parsed, err := parseGoTemplate(tmpl)
	if err != nil {
		return "", err
	}
	return executeGoTemplate(parsed, values)
}

// RenderGoTemplateCached is renderGoTemplate with a compile cache. The key
// must uniquely identify the template text (template identity, not content).
func RenderGoTemplateCached(key, tmpl string, values map[string]any) (string, error) {
	parsed, err := defaultGoTemplateCache.get(key, tmpl)
	if err != nil {
		return "", err
	}
	return executeGoTemplate(parsed, values)
}

func executeGoTemplate(parsed *template.Template, values map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// extractDottedVariables scans for {{.name}} references. Conditionals and
// pipelines are ignored; only direct field references are reported.
func extractDottedVariables(tmpl string) []string {
	seen := make(map[string]bool)
	var vars []string

	start := 0
	for {
		idx := strings.Index(tmpl[start:], "{{.")
		if idx == -1 {
			break
		}
		start += idx + 3

		end := strings.Index(tmpl[start:], "}}")
		if end == -1 {
			break
		}

		name := strings.TrimSpace(tmpl[start : start+end])
		if name != "" && !strings.ContainsAny(name, " .|(") && !seen[name] {
			seen[name] = true
			vars = append(vars, name)
		}
		start += end + 2
	}

	return vars
}
