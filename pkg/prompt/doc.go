// Package prompt provides prompt templates for language model applications.
//
// This package offers:
//   - Template creation, variable substitution and validation
//   - Chat-based prompt templates built from role/template pairs
//   - Multi-modal prompt messages (text plus image content)
//   - Few-shot templates with static or selected examples
//   - Multiple template loaders (file, string, embedded)
//   - A global registry for template reuse
//
// Basic Usage:
//
//	// Create a simple template
//	template := prompt.NewPromptTemplate(
//	    "Hello {name}, welcome to {place}!",
//	    []string{"name", "place"},
//	)
//
//	// Format the template
//	result, err := template.Format(map[string]any{
//	    "name":  "Alice",
//	    "place": "Wonderland",
//	})
//
// Or infer the input variables from the template string:
//
//	template, err := prompt.FromTemplate("Tell me a {adjective} joke about {content}.")
//
// Chat Templates:
//
//	messages := []prompt.MessageDefinition{
//	    {Role: "system", Template: "You are a {role}", Variables: []string{"role"}},
//	    {Role: "human", Template: "{query}", Variables: []string{"query"}},
//	}
//	chatTemplate, _ := prompt.NewChatTemplateFromMessages(messages)
//	msgs, _ := chatTemplate.FormatMessages(map[string]any{
//	    "role":  "helpful assistant",
//	    "query": "What is the capital of France?",
//	})
//
// Registry Usage:
//
//	prompt.MustRegister("my-template", template)
//	template = prompt.MustGet("my-template")
//
// Template syntax defaults to f-string ({variable} placeholders, with {{ and
// }} escaping literal braces); Go text/template and jinja2 syntaxes are
// selected per template through render.TemplateFormat.
package prompt
