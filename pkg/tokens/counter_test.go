package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/promptkit/pkg/message"
)

func TestNewCounter(t *testing.T) {
	tests := []struct {
		name      string
		modelName string
	}{
		{name: "GPT-4 model", modelName: "gpt-4"},
		{name: "GPT-3.5 model", modelName: "gpt-3.5-turbo"},
		{name: "legacy completion model", modelName: "text-davinci-003"},
		{name: "unknown model falls back", modelName: "qwen3:latest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter, err := NewCounter(tt.modelName)
			require.NoError(t, err)
			require.NotNil(t, counter)
		})
	}
}

func TestCount(t *testing.T) {
	counter, err := NewCounter("gpt-4")
	require.NoError(t, err)

	assert.Equal(t, 0, counter.Count(""))
	assert.Greater(t, counter.Count("Hello, world!"), 0)

	short := counter.Count("hi")
	long := counter.Count("a considerably longer piece of text with many more words in it")
	assert.Greater(t, long, short)
}

func TestCountMessages(t *testing.T) {
	counter, err := NewCounter("gpt-4")
	require.NoError(t, err)

	msgs := []message.ChatMessage{
		message.SystemChatMessage{Content: "You are a helpful assistant."},
		message.HumanChatMessage{Content: "What is the capital of France?"},
	}

	total := counter.CountMessages(msgs)
	contentOnly := counter.Count(msgs[0].GetContent()) + counter.Count(msgs[1].GetContent())

	// Boundary and role overhead must be accounted for
	assert.Greater(t, total, contentOnly)
}

func TestNewCounterWithEncoding(t *testing.T) {
	_, err := NewCounterWithEncoding("cl100k_base")
	require.NoError(t, err)

	_, err = NewCounterWithEncoding("no_such_encoding")
	assert.Error(t, err)
}

func TestEstimate(t *testing.T) {
	assert.Equal(t, 0, Estimate(""))

	// Word-dominated text: one token per word
	assert.Equal(t, 3, Estimate("a b c"))

	// Character-dominated text: one token per four characters
	assert.Equal(t, 5, Estimate("abcdefghijklmnopqrst"))
}
