package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/killallgit/promptkit/pkg/message"
)

// Counter counts the tokens a rendered prompt will consume.
type Counter struct {
	mu      sync.RWMutex
	encoder *tiktoken.Tiktoken
}

// NewCounter creates a counter for the given model name. Unknown models
// fall back to the cl100k_base encoding.
func NewCounter(modelName string) (*Counter, error) {
	encoder, err := tiktoken.GetEncoding(encodingForModel(modelName))
	if err != nil {
		encoder, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	return &Counter{encoder: encoder}, nil
}

// NewCounterWithEncoding creates a counter for a specific tiktoken encoding.
func NewCounterWithEncoding(encoding string) (*Counter, error) {
	encoder, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	return &Counter{encoder: encoder}, nil
}

// Count returns the number of tokens in the text.
func (c *Counter) Count(text string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.encoder == nil {
		return Estimate(text)
	}

	return len(c.encoder.Encode(text, nil, nil))
}

// CountMessages counts tokens across a chat prompt, including the
// per-message boundary overhead most chat models add.
func (c *Counter) CountMessages(messages []message.ChatMessage) int {
	total := 0
	for _, msg := range messages {
		total += c.Count(string(msg.GetType()))
		total += c.Count(msg.GetContent())
		total += 4 // message boundary markers
	}

	// Every reply is primed with an assistant turn
	total += 3

	return total
}

// encodingForModel maps a model name to its tiktoken encoding.
func encodingForModel(modelName string) string {
	name := strings.ToLower(modelName)

	switch {
	case strings.Contains(name, "gpt-4") || strings.Contains(name, "gpt-3.5"):
		return "cl100k_base"
	case strings.Contains(name, "davinci") || strings.Contains(name, "curie"):
		return "p50k_base"
	case strings.Contains(name, "code"):
		return "p50k_base"
	default:
		return "cl100k_base"
	}
}

// Estimate roughly approximates a token count without an encoder: one
// token per word or per four characters, whichever is larger.
func Estimate(text string) int {
	wordEstimate := len(strings.Fields(text))
	charEstimate := len(text) / 4

	if wordEstimate > charEstimate {
		return wordEstimate
	}
	return charEstimate
}
