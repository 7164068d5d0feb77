package prompt

import (
	"github.com/killallgit/promptkit/pkg/message"
	"github.com/killallgit/promptkit/pkg/render"
)

// Template represents a generic prompt template interface
type Template interface {
	// Format formats the template with the given variables
	Format(values map[string]any) (string, error)

	// FormatPrompt formats the template as a prompt value
	FormatPrompt(values map[string]any) (PromptValue, error)

	// GetInputVariables returns the list of input variable names
	GetInputVariables() []string

	// WithPartialVariables creates a new template with partial variables set
	WithPartialVariables(partials map[string]any) Template
}

// ChatTemplate represents a chat-based prompt template
type ChatTemplate interface {
	Template

	// FormatMessages formats the template as chat messages
	FormatMessages(values map[string]any) ([]message.ChatMessage, error)
}

// Loader loads templates from various sources
type Loader interface {
	// Load loads a template by name/path
	Load(name string) (Template, error)

	// LoadChat loads a chat template by name/path
	LoadChat(name string) (ChatTemplate, error)
}

// Registry manages prompt templates
type Registry interface {
	// Register registers a template with a name
	Register(name string, template Template) error

	// Get retrieves a template by name
	Get(name string) (Template, error)

	// List returns all registered template names
	List() []string

	// Unregister removes a template by name
	Unregister(name string)

	// Clear removes all registered templates
	Clear()
}

// Config configures template loaders.
type Config struct {
	// DefaultVariables are applied to every loaded template as partial
	// variables. Spec-level partials override them.
	DefaultVariables map[string]any

	// StrictMode validates templates at load time: loading fails if the
	// template cannot be rendered from its declared variables.
	StrictMode bool

	// Format is the template syntax assumed for raw template content
	// (fstring, gotemplate, jinja2). Defaults to fstring.
	Format render.TemplateFormat
}

// Variable represents a template variable with metadata
type Variable struct {
	Name        string
	Type        string // string, int, float, bool, any
	Required    bool
	Default     any
	Description string
	Validator   func(value any) error
}
