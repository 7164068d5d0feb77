package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/promptkit/pkg/message"
)

func TestBuiltInTemplates(t *testing.T) {
	t.Run("generic with all sections", func(t *testing.T) {
		template := GetGenericTemplate()

		result, err := template.Format(map[string]any{
			"context":      "a code review",
			"instructions": "be blunt",
			"task":         "review this function",
		})
		require.NoError(t, err)
		assert.Contains(t, result, "Context: a code review")
		assert.Contains(t, result, "Instructions: be blunt")
		assert.Contains(t, result, "Task: review this function")
		assert.Contains(t, result, "Expected Format: Provide a clear, concise response")
	})

	t.Run("generic omits empty sections", func(t *testing.T) {
		template := GetGenericTemplate()

		result, err := template.Format(map[string]any{"task": "say hi"})
		require.NoError(t, err)
		assert.NotContains(t, result, "Context:")
		assert.NotContains(t, result, "Instructions:")
		assert.Contains(t, result, "Task: say hi")
	})

	t.Run("simple_qa", func(t *testing.T) {
		result, err := GetSimpleQATemplate().Format(map[string]any{
			"question": "why is the sky blue?",
		})
		require.NoError(t, err)
		assert.Equal(t, "Answer the following question: why is the sky blue?", result)
	})

	t.Run("summarize", func(t *testing.T) {
		result, err := GetSummarizationTemplate().Format(map[string]any{
			"style": "bullet-point",
			"text":  "a long article",
		})
		require.NoError(t, err)
		assert.Contains(t, result, "Summarize the following text in bullet-point style:")
		assert.Contains(t, result, "a long article")
	})

	t.Run("chain_of_thought", func(t *testing.T) {
		result, err := GetChainOfThoughtTemplate().Format(map[string]any{
			"problem": "2x + 3 = 7",
		})
		require.NoError(t, err)
		assert.Contains(t, result, "Problem: 2x + 3 = 7")
		assert.Contains(t, result, "step-by-step")
	})

	t.Run("simple_assistant", func(t *testing.T) {
		msgs, err := GetSimpleAssistantTemplate().FormatMessages(map[string]any{
			"instructions": "Answer in French.",
			"query":        "What time is it?",
		})
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, message.ChatMessageTypeSystem, msgs[0].GetType())
		assert.Contains(t, msgs[0].GetContent(), "Answer in French.")
		assert.Equal(t, "What time is it?", msgs[1].GetContent())
	})

	t.Run("simple_rag", func(t *testing.T) {
		msgs, err := GetSimpleRAGTemplate().FormatMessages(map[string]any{
			"context":  "The meeting is on Tuesday.",
			"question": "When is the meeting?",
		})
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Contains(t, msgs[1].GetContent(), "Context:\nThe meeting is on Tuesday.")
		assert.Contains(t, msgs[1].GetContent(), "Question: When is the meeting?")
	})

	t.Run("vision_describe", func(t *testing.T) {
		msgs, err := GetVisionDescribeTemplate().FormatMessages(map[string]any{
			"question":  "What animal is this?",
			"image_url": "https://example.com/cat.jpg",
		})
		require.NoError(t, err)
		require.Len(t, msgs, 2)

		mm, ok := msgs[1].(message.MultiModalChatMessage)
		require.True(t, ok)
		require.Len(t, mm.Parts, 2)
		assert.Equal(t, message.TextContent{Text: "What animal is this?"}, mm.Parts[0])
		assert.Equal(t, message.ImageURLContent{URL: "https://example.com/cat.jpg"}, mm.Parts[1])
	})

	t.Run("all built-ins registered", func(t *testing.T) {
		names := DefaultRegistry.List()
		for _, want := range []string{
			"generic", "simple_qa", "summarize", "chain_of_thought",
			"simple_assistant", "simple_rag", "vision_describe",
		} {
			assert.Contains(t, names, want)
		}
	})
}
