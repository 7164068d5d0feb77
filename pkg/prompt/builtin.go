package prompt

import (
	"github.com/killallgit/promptkit/pkg/message"
	"github.com/killallgit/promptkit/pkg/render"
)

// Common prompt templates that can be registered and reused.
// These serve as both practical tools and self-documenting examples
// of the template system.

func init() {
	registerBuiltInTemplates()
}

func registerBuiltInTemplates() {
	// Generic template uses go-template syntax for its conditional sections
	generic, err := NewPromptTemplateWithOptions(
		`{{if .context}}Context: {{.context}}

{{end}}{{if .instructions}}Instructions: {{.instructions}}

{{end}}Task: {{.task}}{{if .format}}

Expected Format: {{.format}}{{end}}

Response:`,
		[]string{"task"},
		WithTemplateFormat(render.FormatGoTemplate),
	)
	if err != nil {
		panic(err)
	}
	MustRegister("generic", generic.WithPartialVariables(map[string]any{
		"format":       "Provide a clear, concise response",
		"context":      "",
		"instructions": "",
	}))

	// Simple Q&A template
	MustRegister("simple_qa", NewPromptTemplate(
		"Answer the following question: {question}",
		[]string{"question"},
	))

	// Summarization template with style control
	MustRegister("summarize", NewPromptTemplate(
		`Summarize the following text in {style} style:

{text}

Summary:`,
		[]string{"text", "style"},
	))

	// Chain-of-thought reasoning template
	MustRegister("chain_of_thought", NewPromptTemplate(
		`Problem: {problem}

Let's approach this step-by-step:
1. First, identify what we know
2. Then, determine what we need to find
3. Next, work through the solution
4. Finally, verify our answer

Solution:`,
		[]string{"problem"},
	))

	// Simple chat template for an assistant
	MustRegister("simple_assistant", NewChatTemplate([]MessageFormatter{
		NewSystemMessagePromptTemplate(
			"You are a helpful assistant. {instructions}",
			[]string{"instructions"},
		),
		NewHumanMessagePromptTemplate(
			"{query}",
			[]string{"query"},
		),
	}))

	// Simple RAG (Retrieval-Augmented Generation) template
	MustRegister("simple_rag", NewChatTemplate([]MessageFormatter{
		NewSystemMessagePromptTemplate(
			`You are a knowledgeable assistant. Use the provided context to answer questions accurately.
If the context doesn't contain relevant information, say so.`,
			[]string{},
		),
		NewHumanMessagePromptTemplate(
			`Context:
{context}

Question: {question}`,
			[]string{"context", "question"},
		),
	}))

	// Multi-modal template: describe an image referenced by URL
	visionMessage, err := NewMultiModalMessagePromptTemplate(
		message.ChatMessageTypeHuman,
		[]message.ContentPart{
			message.TextContent{Text: "{question}"},
			message.ImageURLContent{URL: "{image_url}"},
		},
		render.FormatFString,
	)
	if err != nil {
		panic(err)
	}

	MustRegister("vision_describe", NewChatTemplate([]MessageFormatter{
		NewSystemMessagePromptTemplate(
			"You describe images precisely and concisely.",
			[]string{},
		),
		visionMessage,
	}))
}

// GetGenericTemplate returns a flexible, general-purpose template
func GetGenericTemplate() Template {
	return MustGet("generic")
}

// GetSimpleQATemplate returns a simple Q&A prompt template
func GetSimpleQATemplate() Template {
	return MustGet("simple_qa")
}

// GetSummarizationTemplate returns a summarization template
func GetSummarizationTemplate() Template {
	return MustGet("summarize")
}

// GetChainOfThoughtTemplate returns a template for step-by-step reasoning
func GetChainOfThoughtTemplate() Template {
	return MustGet("chain_of_thought")
}

// GetSimpleAssistantTemplate returns a simple chat assistant template
func GetSimpleAssistantTemplate() ChatTemplate {
	return MustGet("simple_assistant").(ChatTemplate)
}

// GetSimpleRAGTemplate returns a simple RAG chat template
func GetSimpleRAGTemplate() ChatTemplate {
	return MustGet("simple_rag").(ChatTemplate)
}

// GetVisionDescribeTemplate returns a multi-modal image description template
func GetVisionDescribeTemplate() ChatTemplate {
	return MustGet("vision_describe").(ChatTemplate)
}
