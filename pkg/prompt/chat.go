package prompt

import (
	"fmt"

	"github.com/killallgit/promptkit/pkg/message"
	"github.com/killallgit/promptkit/pkg/render"
)

// MessageFormatter formats one or more chat messages from template values.
type MessageFormatter interface {
	FormatMessages(values map[string]any) ([]message.ChatMessage, error)
	GetInputVariables() []string
}

// messageTemplate is a single role-tagged message whose content is a template.
type messageTemplate struct {
	role   message.ChatMessageType
	name   string // role label for generic messages
	prompt *PromptTemplate
}

// NewSystemMessagePromptTemplate creates a system message template.
func NewSystemMessagePromptTemplate(template string, inputVars []string) MessageFormatter {
	return &messageTemplate{role: message.ChatMessageTypeSystem, prompt: NewPromptTemplate(template, inputVars)}
}

// NewHumanMessagePromptTemplate creates a human message template.
func NewHumanMessagePromptTemplate(template string, inputVars []string) MessageFormatter {
	return &messageTemplate{role: message.ChatMessageTypeHuman, prompt: NewPromptTemplate(template, inputVars)}
}

// NewAIMessagePromptTemplate creates an AI message template.
func NewAIMessagePromptTemplate(template string, inputVars []string) MessageFormatter {
	return &messageTemplate{role: message.ChatMessageTypeAI, prompt: NewPromptTemplate(template, inputVars)}
}

// NewGenericMessagePromptTemplate creates a message template with an
// arbitrary role label.
func NewGenericMessagePromptTemplate(role, template string, inputVars []string) MessageFormatter {
	return &messageTemplate{role: message.ChatMessageTypeGeneric, name: role, prompt: NewPromptTemplate(template, inputVars)}
}

// NewMessagePromptTemplate wraps an existing PromptTemplate with a role,
// preserving its format, partials and metadata.
func NewMessagePromptTemplate(role message.ChatMessageType, prompt *PromptTemplate) MessageFormatter {
	return &messageTemplate{role: role, prompt: prompt}
}

func (m *messageTemplate) FormatMessages(values map[string]any) ([]message.ChatMessage, error) {
	content, err := m.prompt.Format(values)
	if err != nil {
		return nil, err
	}

	var msg message.ChatMessage
	switch m.role {
	case message.ChatMessageTypeSystem:
		msg = message.SystemChatMessage{Content: content}
	case message.ChatMessageTypeHuman:
		msg = message.HumanChatMessage{Content: content}
	case message.ChatMessageTypeAI:
		msg = message.AIChatMessage{Content: content}
	case message.ChatMessageTypeGeneric:
		msg = message.GenericChatMessage{Content: content, Role: m.name}
	default:
		return nil, fmt.Errorf("cannot format message with role %q", m.role)
	}

	return []message.ChatMessage{msg}, nil
}

func (m *messageTemplate) GetInputVariables() []string {
	return m.prompt.GetInputVariables()
}

// MessagesPlaceholder splices a []message.ChatMessage value into the
// formatted sequence verbatim, typically for conversation history.
type MessagesPlaceholder struct {
	VariableName string
}

// NewMessagesPlaceholder creates a placeholder bound to a variable name.
func NewMessagesPlaceholder(variableName string) MessagesPlaceholder {
	return MessagesPlaceholder{VariableName: variableName}
}

func (p MessagesPlaceholder) FormatMessages(values map[string]any) ([]message.ChatMessage, error) {
	value, exists := values[p.VariableName]
	if !exists {
		return nil, fmt.Errorf("missing value for messages placeholder %q", p.VariableName)
	}

	messages, ok := value.([]message.ChatMessage)
	if !ok {
		return nil, fmt.Errorf("placeholder %q expects []message.ChatMessage, got %T", p.VariableName, value)
	}

	return messages, nil
}

func (p MessagesPlaceholder) GetInputVariables() []string {
	return []string{p.VariableName}
}

// MultiModalMessagePromptTemplate is a message template whose content is a
// sequence of parts. Text parts and image URLs are themselves templates and
// are rendered against the values; binary parts pass through unchanged.
type MultiModalMessagePromptTemplate struct {
	role   message.ChatMessageType
	parts  []message.ContentPart
	format render.TemplateFormat
	vars   []string
}

// NewMultiModalMessagePromptTemplate builds a multi-modal message template
// and infers its input variables from the templated parts.
func NewMultiModalMessagePromptTemplate(role message.ChatMessageType, parts []message.ContentPart, format render.TemplateFormat) (*MultiModalMessagePromptTemplate, error) {
	seen := make(map[string]bool)
	var vars []string

	collect := func(tmpl string) error {
		names, err := render.InferVariables(tmpl, format)
		if err != nil {
			return err
		}
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				vars = append(vars, name)
			}
		}
		return nil
	}

	for _, part := range parts {
		switch p := part.(type) {
		case message.TextContent:
			if err := collect(p.Text); err != nil {
				return nil, err
			}
		case message.ImageURLContent:
			if err := collect(p.URL); err != nil {
				return nil, err
			}
		case message.BinaryContent:
			// nothing templated
		default:
			return nil, fmt.Errorf("unsupported content part type %T", part)
		}
	}

	return &MultiModalMessagePromptTemplate{
		role:   role,
		parts:  parts,
		format: format,
		vars:   vars,
	}, nil
}

func (m *MultiModalMessagePromptTemplate) FormatMessages(values map[string]any) ([]message.ChatMessage, error) {
	formatted := make([]message.ContentPart, 0, len(m.parts))

	for _, part := range m.parts {
		switch p := part.(type) {
		case message.TextContent:
			text, err := render.RenderTemplate(p.Text, m.format, values)
			if err != nil {
				return nil, err
			}
			formatted = append(formatted, message.TextContent{Text: text})
		case message.ImageURLContent:
			url, err := render.RenderTemplate(p.URL, m.format, values)
			if err != nil {
				return nil, err
			}
			formatted = append(formatted, message.ImageURLContent{URL: url, Detail: p.Detail})
		case message.BinaryContent:
			formatted = append(formatted, p)
		}
	}

	return []message.ChatMessage{
		message.MultiModalChatMessage{Role: m.role, Parts: formatted},
	}, nil
}

func (m *MultiModalMessagePromptTemplate) GetInputVariables() []string {
	return m.vars
}
