package prompt

import (
	"fmt"

	"github.com/killallgit/promptkit/pkg/message"
	"github.com/killallgit/promptkit/pkg/render"
)

// ChatPromptTemplate is a concrete implementation of ChatTemplate. It
// formats a sequence of role-tagged message templates against a set of
// named values, producing the message list handed to a chat model.
type ChatPromptTemplate struct {
	messages         []MessageFormatter
	partialVariables map[string]any
	metadata         map[string]*Variable
}

// NewChatTemplate creates a new chat prompt template
func NewChatTemplate(messages []MessageFormatter) *ChatPromptTemplate {
	return &ChatPromptTemplate{
		messages:         messages,
		partialVariables: make(map[string]any),
		metadata:         make(map[string]*Variable),
	}
}

// NewChatTemplateFromMessages creates a chat template from message definitions
func NewChatTemplateFromMessages(messages []MessageDefinition) (*ChatPromptTemplate, error) {
	formatters := make([]MessageFormatter, 0, len(messages))

	for _, msg := range messages {
		formatter, err := createMessageFormatter(msg)
		if err != nil {
			return nil, fmt.Errorf("failed to create message formatter: %w", err)
		}
		formatters = append(formatters, formatter)
	}

	return NewChatTemplate(formatters), nil
}

// Format formats the template with the given values as a transcript string
func (c *ChatPromptTemplate) Format(values map[string]any) (string, error) {
	messages, err := c.FormatMessages(values)
	if err != nil {
		return "", err
	}
	return message.GetBufferString(messages, "Human", "AI")
}

// FormatPrompt formats the template as a prompt value
func (c *ChatPromptTemplate) FormatPrompt(values map[string]any) (PromptValue, error) {
	messages, err := c.FormatMessages(values)
	if err != nil {
		return nil, err
	}
	return ChatPromptValue(messages), nil
}

// FormatMessages formats the template as chat messages
func (c *ChatPromptTemplate) FormatMessages(values map[string]any) ([]message.ChatMessage, error) {
	merged := c.mergeValues(values)

	if err := c.validateVariables(merged); err != nil {
		return nil, err
	}

	var formatted []message.ChatMessage
	for _, formatter := range c.messages {
		msgs, err := formatter.FormatMessages(merged)
		if err != nil {
			return nil, err
		}
		formatted = append(formatted, msgs...)
	}

	return formatted, nil
}

// GetInputVariables returns the list of input variable names
func (c *ChatPromptTemplate) GetInputVariables() []string {
	varMap := make(map[string]bool)

	for _, msg := range c.messages {
		for _, v := range msg.GetInputVariables() {
			varMap[v] = true
		}
	}

	// Remove partial variables from the list
	for k := range c.partialVariables {
		delete(varMap, k)
	}

	vars := make([]string, 0, len(varMap))
	for v := range varMap {
		vars = append(vars, v)
	}

	return vars
}

// WithPartialVariables creates a new template with partial variables set
func (c *ChatPromptTemplate) WithPartialVariables(partials map[string]any) Template {
	newTemplate := &ChatPromptTemplate{
		messages:         c.messages,
		partialVariables: make(map[string]any),
		metadata:         c.metadata,
	}

	// Copy existing partials
	for k, v := range c.partialVariables {
		newTemplate.partialVariables[k] = v
	}

	// Add new partials
	for k, v := range partials {
		newTemplate.partialVariables[k] = v
	}

	return newTemplate
}

// SetVariableMetadata sets metadata for a variable
func (c *ChatPromptTemplate) SetVariableMetadata(variable *Variable) {
	c.metadata[variable.Name] = variable
}

// mergeValues merges partial variables with provided values
func (c *ChatPromptTemplate) mergeValues(values map[string]any) map[string]any {
	merged := make(map[string]any)

	// Start with partial variables
	for k, v := range c.partialVariables {
		merged[k] = v
	}

	// Override with provided values
	for k, v := range values {
		merged[k] = v
	}

	// Apply defaults for missing variables
	for _, varName := range c.GetInputVariables() {
		if _, exists := merged[varName]; !exists {
			if meta, ok := c.metadata[varName]; ok && meta.Default != nil {
				merged[varName] = meta.Default
			}
		}
	}

	return merged
}

// validateVariables validates that all required variables are present
func (c *ChatPromptTemplate) validateVariables(values map[string]any) error {
	for _, varName := range c.GetInputVariables() {
		meta, hasMeta := c.metadata[varName]
		value, exists := values[varName]

		// Check if required variable is missing
		if !exists && hasMeta && meta.Required {
			return fmt.Errorf("missing required variable: %s", varName)
		}

		// Run validator if present
		if exists && hasMeta && meta.Validator != nil {
			if err := meta.Validator(value); err != nil {
				return fmt.Errorf("validation failed for variable %s: %w", varName, err)
			}
		}
	}

	return nil
}

// MessageDefinition defines a message in a chat template. Role is one of
// system, human, ai, placeholder, or any other label, which becomes a
// generic message with that role.
type MessageDefinition struct {
	Role      string   `json:"role" yaml:"role"`
	Template  string   `json:"template" yaml:"template"`
	Variables []string `json:"variables,omitempty" yaml:"variables,omitempty"`
	Format    string   `json:"format,omitempty" yaml:"format,omitempty"`
}

// createMessageFormatter creates a message formatter from a definition
func createMessageFormatter(def MessageDefinition) (MessageFormatter, error) {
	if def.Role == "" {
		return nil, fmt.Errorf("message definition missing role")
	}

	// A placeholder's template field names the variable to splice in.
	if def.Role == "placeholder" {
		return NewMessagesPlaceholder(def.Template), nil
	}

	var options []PromptOption
	if def.Format != "" {
		options = append(options, WithTemplateFormat(render.TemplateFormat(def.Format)))
	}

	pt, err := NewPromptTemplateWithOptions(def.Template, def.Variables, options...)
	if err != nil {
		return nil, err
	}

	switch def.Role {
	case "system":
		return NewMessagePromptTemplate(message.ChatMessageTypeSystem, pt), nil
	case "human", "user":
		return NewMessagePromptTemplate(message.ChatMessageTypeHuman, pt), nil
	case "ai", "assistant":
		return NewMessagePromptTemplate(message.ChatMessageTypeAI, pt), nil
	default:
		return &messageTemplate{role: message.ChatMessageTypeGeneric, name: def.Role, prompt: pt}, nil
	}
}
