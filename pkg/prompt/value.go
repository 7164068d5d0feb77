package prompt

import (
	"fmt"
	"strings"

	"github.com/killallgit/promptkit/pkg/message"
)

// PromptValue is the formatted output of a template. It can be consumed
// either as a single string or as a sequence of chat messages, whichever
// the downstream model expects.
type PromptValue interface {
	String() string
	Messages() []message.ChatMessage
}

// StringPromptValue is a plain-text prompt value.
type StringPromptValue string

func (v StringPromptValue) String() string { return string(v) }

// Messages wraps the string in a single human message.
func (v StringPromptValue) Messages() []message.ChatMessage {
	return []message.ChatMessage{
		message.HumanChatMessage{Content: string(v)},
	}
}

// ChatPromptValue is a prompt value backed by a message sequence.
type ChatPromptValue []message.ChatMessage

// String renders the messages as a transcript with Human/AI prefixes.
// Messages whose role cannot be resolved are labeled with their raw type
// instead of failing the whole transcript.
func (v ChatPromptValue) String() string {
	s, err := message.GetBufferString(v, "Human", "AI")
	if err == nil {
		return s
	}

	lines := make([]string, 0, len(v))
	for _, m := range v {
		lines = append(lines, fmt.Sprintf("%s: %s", m.GetType(), m.GetContent()))
	}
	return strings.Join(lines, "\n")
}

func (v ChatPromptValue) Messages() []message.ChatMessage { return v }
