package prompt

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/killallgit/promptkit/pkg/render"
)

// FileLoader loads templates from files
type FileLoader struct {
	baseDir string
	config  *Config
}

// NewFileLoader creates a new file-based template loader
func NewFileLoader(baseDir string) *FileLoader {
	return &FileLoader{
		baseDir: baseDir,
		config:  &Config{},
	}
}

// NewFileLoaderWithConfig creates a new file loader with configuration
func NewFileLoaderWithConfig(baseDir string, config *Config) *FileLoader {
	return &FileLoader{
		baseDir: baseDir,
		config:  config,
	}
}

// Load loads a template by name/path
func (f *FileLoader) Load(name string) (Template, error) {
	path := f.resolvePath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	// Check if it's a structured template file (JSON/YAML)
	if isStructuredPath(path) {
		return loadStructuredTemplate(data, path, f.config)
	}

	// Otherwise treat as raw template string
	return loadRawTemplate(string(data), f.config)
}

// LoadChat loads a chat template by name/path
func (f *FileLoader) LoadChat(name string) (ChatTemplate, error) {
	path := f.resolvePath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	// Chat templates must be structured (JSON/YAML)
	if !isStructuredPath(path) {
		return nil, fmt.Errorf("chat templates must be in JSON or YAML format")
	}

	return loadStructuredChatTemplate(data, path)
}

// resolvePath resolves the template path
func (f *FileLoader) resolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.baseDir, name)
}

// loaderFormat resolves the template syntax a loader should assume for raw
// template content.
func loaderFormat(config *Config) render.TemplateFormat {
	if config.Format != "" {
		return config.Format
	}
	return render.FormatFString
}

// loadRawTemplate loads a raw text template, inferring its variables
func loadRawTemplate(content string, config *Config) (Template, error) {
	format := loaderFormat(config)

	vars, err := render.InferVariables(content, format)
	if err != nil {
		return nil, fmt.Errorf("failed to infer template variables: %w", err)
	}

	template, err := NewPromptTemplateWithOptions(content, vars, WithTemplateFormat(format))
	if err != nil {
		return nil, err
	}

	return finishTemplate(template, nil, config)
}

func isStructuredPath(path string) bool {
	return strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func unmarshalSpec(data []byte, path string, spec any) error {
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, spec); err != nil {
			return fmt.Errorf("failed to parse JSON template: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("failed to parse YAML template: %w", err)
	}
	return nil
}

// loadStructuredTemplate loads a structured template from JSON/YAML
func loadStructuredTemplate(data []byte, path string, config *Config) (Template, error) {
	var spec TemplateSpec
	if err := unmarshalSpec(data, path, &spec); err != nil {
		return nil, err
	}

	// Spec format wins over the loader's configured format
	format := loaderFormat(config)
	if spec.Format != "" {
		format = render.TemplateFormat(spec.Format)
	}

	variables := spec.Variables
	template, err := NewPromptTemplateWithOptions(spec.Template, variables, WithTemplateFormat(format))
	if err != nil {
		return nil, err
	}

	// Infer variables when the spec doesn't declare them
	if variables == nil {
		inferred, err := render.InferVariables(spec.Template, template.GetFormat())
		if err != nil {
			return nil, fmt.Errorf("failed to infer template variables: %w", err)
		}
		template.inputVariables = inferred
	}

	// Set variable metadata
	for _, v := range spec.Metadata {
		template.SetVariableMetadata(v)
	}

	return finishTemplate(template, spec.Partials, config)
}

// finishTemplate applies loader defaults and spec partials to a loaded
// template, then validates it when the loader is strict. Spec partials win
// over the loader's default variables.
func finishTemplate(template *PromptTemplate, specPartials map[string]any, config *Config) (Template, error) {
	partials := make(map[string]any, len(config.DefaultVariables)+len(specPartials))
	for k, v := range config.DefaultVariables {
		partials[k] = v
	}
	for k, v := range specPartials {
		partials[k] = v
	}

	if len(partials) > 0 {
		template = template.WithPartialVariables(partials).(*PromptTemplate)
	}

	if config.StrictMode {
		if err := template.Validate(); err != nil {
			return nil, fmt.Errorf("template failed validation: %w", err)
		}
	}

	return template, nil
}

// loadStructuredChatTemplate loads a structured chat template
func loadStructuredChatTemplate(data []byte, path string) (ChatTemplate, error) {
	var spec ChatTemplateSpec
	if err := unmarshalSpec(data, path, &spec); err != nil {
		return nil, err
	}

	return NewChatTemplateFromMessages(spec.Messages)
}

// EmbedLoader loads templates from embedded files
type EmbedLoader struct {
	fs     embed.FS
	prefix string
	config *Config
}

// NewEmbedLoader creates a new embedded template loader
func NewEmbedLoader(fs embed.FS, prefix string) *EmbedLoader {
	return NewEmbedLoaderWithConfig(fs, prefix, &Config{})
}

// NewEmbedLoaderWithConfig creates an embedded template loader with configuration
func NewEmbedLoaderWithConfig(fs embed.FS, prefix string, config *Config) *EmbedLoader {
	return &EmbedLoader{
		fs:     fs,
		prefix: prefix,
		config: config,
	}
}

// Load loads a template from embedded files
func (e *EmbedLoader) Load(name string) (Template, error) {
	path := filepath.Join(e.prefix, name)

	file, err := e.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded template: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded template: %w", err)
	}

	if isStructuredPath(path) {
		return loadStructuredTemplate(data, path, e.config)
	}

	return loadRawTemplate(string(data), e.config)
}

// LoadChat loads a chat template from embedded files
func (e *EmbedLoader) LoadChat(name string) (ChatTemplate, error) {
	path := filepath.Join(e.prefix, name)

	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded chat template: %w", err)
	}

	return loadStructuredChatTemplate(data, path)
}

// StringLoader loads templates from strings
type StringLoader struct {
	config    *Config
	templates map[string]string
	chats     map[string][]MessageDefinition
}

// NewStringLoader creates a new string-based template loader
func NewStringLoader() *StringLoader {
	return NewStringLoaderWithConfig(&Config{})
}

// NewStringLoaderWithConfig creates a string-based template loader with configuration
func NewStringLoaderWithConfig(config *Config) *StringLoader {
	return &StringLoader{
		config:    config,
		templates: make(map[string]string),
		chats:     make(map[string][]MessageDefinition),
	}
}

// AddTemplate adds a string template
func (s *StringLoader) AddTemplate(name string, template string) {
	s.templates[name] = template
}

// AddChatTemplate adds a chat template
func (s *StringLoader) AddChatTemplate(name string, messages []MessageDefinition) {
	s.chats[name] = messages
}

// Load loads a template by name
func (s *StringLoader) Load(name string) (Template, error) {
	template, exists := s.templates[name]
	if !exists {
		return nil, fmt.Errorf("template %s not found", name)
	}

	return loadRawTemplate(template, s.config)
}

// LoadChat loads a chat template by name
func (s *StringLoader) LoadChat(name string) (ChatTemplate, error) {
	messages, exists := s.chats[name]
	if !exists {
		return nil, fmt.Errorf("chat template %s not found", name)
	}

	return NewChatTemplateFromMessages(messages)
}

// TemplateSpec defines the structure of a template file
type TemplateSpec struct {
	Name      string         `json:"name" yaml:"name"`
	Template  string         `json:"template" yaml:"template"`
	Format    string         `json:"format,omitempty" yaml:"format,omitempty"`
	Variables []string       `json:"variables" yaml:"variables"`
	Metadata  []*Variable    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Partials  map[string]any `json:"partials,omitempty" yaml:"partials,omitempty"`
}

// ChatTemplateSpec defines the structure of a chat template file
type ChatTemplateSpec struct {
	Name     string              `json:"name" yaml:"name"`
	Messages []MessageDefinition `json:"messages" yaml:"messages"`
}

// QuickTemplate creates a simple f-string template, inferring its variables.
// Malformed templates panic; use FromTemplate to handle errors.
func QuickTemplate(template string) Template {
	vars, err := render.InferVariables(template, render.FormatFString)
	if err != nil {
		panic(fmt.Sprintf("invalid template: %v", err))
	}
	return NewPromptTemplate(template, vars)
}

// QuickChatTemplate creates a simple chat template from a system and a
// human f-string template.
func QuickChatTemplate(systemPrompt, humanPrompt string) ChatTemplate {
	systemVars, _ := render.InferVariables(systemPrompt, render.FormatFString)
	humanVars, _ := render.InferVariables(humanPrompt, render.FormatFString)

	return NewChatTemplate([]MessageFormatter{
		NewSystemMessagePromptTemplate(systemPrompt, systemVars),
		NewHumanMessagePromptTemplate(humanPrompt, humanVars),
	})
}
