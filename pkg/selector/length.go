package selector

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// FormatExampleFunc renders an example to the text that would appear in
// the prompt, so its length can be measured.
type FormatExampleFunc func(example map[string]string) (string, error)

// LengthFunc measures the length of a formatted example.
type LengthFunc func(text string) int

// LengthBasedExampleSelector includes examples in insertion order while the
// accumulated length stays within MaxLength. Length is measured in words by
// default, or in model tokens when an encoding is configured.
type LengthBasedExampleSelector struct {
	mu            sync.Mutex
	examples      []map[string]string
	lengths       []int
	formatExample FormatExampleFunc
	maxLength     int
	getLength     LengthFunc
}

// LengthOption configures a LengthBasedExampleSelector.
type LengthOption func(*LengthBasedExampleSelector) error

// WithLengthFunc overrides the length measure.
func WithLengthFunc(fn LengthFunc) LengthOption {
	return func(s *LengthBasedExampleSelector) error {
		s.getLength = fn
		return nil
	}
}

// WithEncoding measures length in tokens using the named tiktoken encoding,
// e.g. "cl100k_base".
func WithEncoding(encoding string) LengthOption {
	return func(s *LengthBasedExampleSelector) error {
		enc, err := tiktoken.GetEncoding(encoding)
		if err != nil {
			return fmt.Errorf("failed to load encoding %s: %w", encoding, err)
		}
		s.getLength = func(text string) int {
			return len(enc.Encode(text, nil, nil))
		}
		return nil
	}
}

// NewLengthBased creates a length-based selector with the given formatting
// function and length budget.
func NewLengthBased(formatExample FormatExampleFunc, maxLength int, options ...LengthOption) (*LengthBasedExampleSelector, error) {
	if formatExample == nil {
		return nil, fmt.Errorf("formatExample function is required")
	}
	if maxLength <= 0 {
		return nil, fmt.Errorf("maxLength must be positive, got %d", maxLength)
	}

	s := &LengthBasedExampleSelector{
		formatExample: formatExample,
		maxLength:     maxLength,
		getLength: func(text string) int {
			return len(strings.Fields(text))
		},
	}

	for _, opt := range options {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// AddExample measures and stores an example.
func (s *LengthBasedExampleSelector) AddExample(_ context.Context, example map[string]string) error {
	formatted, err := s.formatExample(example)
	if err != nil {
		return fmt.Errorf("failed to format example: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.examples = append(s.examples, example)
	s.lengths = append(s.lengths, s.getLength(formatted))
	return nil
}

// SelectExamples returns examples in insertion order until the remaining
// budget, after accounting for the input itself, is exhausted.
func (s *LengthBasedExampleSelector) SelectExamples(_ context.Context, input map[string]string) ([]map[string]string, error) {
	inputs := make([]string, 0, len(input))
	for _, v := range input {
		inputs = append(inputs, v)
	}
	remaining := s.maxLength - s.getLength(strings.Join(inputs, " "))

	s.mu.Lock()
	defer s.mu.Unlock()

	var selected []map[string]string
	for i, example := range s.examples {
		remaining -= s.lengths[i]
		if remaining < 0 {
			break
		}
		selected = append(selected, example)
	}

	return selected, nil
}
