// Package selector chooses which few-shot examples to include in a prompt.
package selector

import "context"

// ExampleSelector picks the examples to format into a few-shot prompt.
// Implementations decide by length budget, semantic similarity, or any
// other policy.
type ExampleSelector interface {
	// AddExample makes an example available for selection.
	AddExample(ctx context.Context, example map[string]string) error

	// SelectExamples returns the examples to use for the given input values.
	SelectExamples(ctx context.Context, input map[string]string) ([]map[string]string, error)
}
