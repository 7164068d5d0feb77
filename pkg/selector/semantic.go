package selector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
)

// SemanticSimilarityExampleSelector picks the K examples most similar to
// the input, using an embedded chromem-go collection. The embedding
// function is caller-supplied, so no provider is baked in.
type SemanticSimilarityExampleSelector struct {
	mu         sync.Mutex
	collection *chromem.Collection
	k          int
}

// NewSemanticSimilarity creates a semantic selector backed by a fresh
// chromem-go collection. Initial examples may be nil.
func NewSemanticSimilarity(ctx context.Context, db *chromem.DB, collectionName string, embed chromem.EmbeddingFunc, k int, examples []map[string]string) (*SemanticSimilarityExampleSelector, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	collection, err := db.CreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create example collection: %w", err)
	}

	s := &SemanticSimilarityExampleSelector{
		collection: collection,
		k:          k,
	}

	for _, example := range examples {
		if err := s.AddExample(ctx, example); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// AddExample embeds and stores an example. The example map itself is kept
// as document metadata so selection can return it unchanged.
func (s *SemanticSimilarityExampleSelector) AddExample(ctx context.Context, example map[string]string) error {
	doc := chromem.Document{
		ID:       uuid.NewString(),
		Content:  exampleText(example),
		Metadata: example,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.collection.AddDocuments(ctx, []chromem.Document{doc}, 1); err != nil {
		return fmt.Errorf("failed to add example: %w", err)
	}
	return nil
}

// SelectExamples returns up to K stored examples nearest to the input.
func (s *SemanticSimilarityExampleSelector) SelectExamples(ctx context.Context, input map[string]string) ([]map[string]string, error) {
	s.mu.Lock()
	count := s.collection.Count()
	s.mu.Unlock()

	if count == 0 {
		return nil, nil
	}

	n := s.k
	if n > count {
		n = count
	}

	results, err := s.collection.Query(ctx, exampleText(input), n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query examples: %w", err)
	}

	selected := make([]map[string]string, 0, len(results))
	for _, result := range results {
		selected = append(selected, result.Metadata)
	}

	return selected, nil
}

// exampleText flattens an example map into a deterministic string for
// embedding: values joined in key order.
func exampleText(example map[string]string) string {
	keys := make([]string, 0, len(example))
	for k := range example {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, example[k])
	}

	return strings.Join(values, " ")
}
