package message

import (
	"errors"
	"fmt"
	"strings"
)

// ChatMessageType identifies the speaker of a chat message.
type ChatMessageType string

const (
	ChatMessageTypeAI      ChatMessageType = "ai"
	ChatMessageTypeHuman   ChatMessageType = "human"
	ChatMessageTypeSystem  ChatMessageType = "system"
	ChatMessageTypeGeneric ChatMessageType = "generic"
	ChatMessageTypeTool    ChatMessageType = "tool"
)

// ErrUnexpectedChatMessageType is returned when a message sequence contains
// a type that cannot be rendered to a transcript.
var ErrUnexpectedChatMessageType = errors.New("unexpected chat message type")

// ChatMessage is a single role-tagged message in a conversation.
type ChatMessage interface {
	// GetType returns the role of the message.
	GetType() ChatMessageType

	// GetContent returns the text content of the message.
	GetContent() string
}

// Named is implemented by messages that carry a speaker name in
// addition to their role.
type Named interface {
	GetName() string
}

// AIChatMessage is a message produced by the model.
type AIChatMessage struct {
	Content string
}

func (m AIChatMessage) GetType() ChatMessageType { return ChatMessageTypeAI }
func (m AIChatMessage) GetContent() string       { return m.Content }

// HumanChatMessage is a message produced by the user.
type HumanChatMessage struct {
	Content string
}

func (m HumanChatMessage) GetType() ChatMessageType { return ChatMessageTypeHuman }
func (m HumanChatMessage) GetContent() string       { return m.Content }

// SystemChatMessage is an instruction message that primes the model.
type SystemChatMessage struct {
	Content string
}

func (m SystemChatMessage) GetType() ChatMessageType { return ChatMessageTypeSystem }
func (m SystemChatMessage) GetContent() string       { return m.Content }

// ToolChatMessage carries the result of a tool invocation back to the model.
type ToolChatMessage struct {
	ID      string
	Content string
}

func (m ToolChatMessage) GetType() ChatMessageType { return ChatMessageTypeTool }
func (m ToolChatMessage) GetContent() string       { return m.Content }
func (m ToolChatMessage) GetID() string            { return m.ID }

// GenericChatMessage is a message with an arbitrary role. Roles that have
// no dedicated message type round-trip through this one.
type GenericChatMessage struct {
	Content string
	Role    string
	Name    string
}

func (m GenericChatMessage) GetType() ChatMessageType { return ChatMessageTypeGeneric }
func (m GenericChatMessage) GetContent() string       { return m.Content }
func (m GenericChatMessage) GetName() string          { return m.Name }

// MultiModalChatMessage is a role-tagged message whose content is a
// sequence of parts (text, image references, raw binary attachments).
type MultiModalChatMessage struct {
	Role  ChatMessageType
	Parts []ContentPart
}

func (m MultiModalChatMessage) GetType() ChatMessageType { return m.Role }

// GetContent returns the concatenated text parts of the message.
// Non-text parts are skipped.
func (m MultiModalChatMessage) GetContent() string {
	var sb strings.Builder
	for _, part := range m.Parts {
		if text, ok := part.(TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

// GetBufferString renders a message sequence to a single transcript string,
// prefixing each line with the speaker. humanPrefix and aiPrefix override the
// labels used for human and AI messages.
func GetBufferString(messages []ChatMessage, humanPrefix, aiPrefix string) (string, error) {
	lines := make([]string, 0, len(messages))

	for _, m := range messages {
		role, err := rolePrefix(m, humanPrefix, aiPrefix)
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, m.GetContent()))
	}

	return strings.Join(lines, "\n"), nil
}

func rolePrefix(m ChatMessage, humanPrefix, aiPrefix string) (string, error) {
	switch m.GetType() {
	case ChatMessageTypeHuman:
		return humanPrefix, nil
	case ChatMessageTypeAI:
		return aiPrefix, nil
	case ChatMessageTypeSystem:
		return "System", nil
	case ChatMessageTypeTool:
		return "Tool", nil
	case ChatMessageTypeGeneric:
		if named, ok := m.(Named); ok && named.GetName() != "" {
			return named.GetName(), nil
		}
		if generic, ok := m.(GenericChatMessage); ok && generic.Role != "" {
			return generic.Role, nil
		}
		return "", fmt.Errorf("%w: generic message without role", ErrUnexpectedChatMessageType)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnexpectedChatMessageType, m.GetType())
	}
}
