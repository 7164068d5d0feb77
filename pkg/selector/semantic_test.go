package selector_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/promptkit/pkg/selector"
)

// fakeEmbedding maps text to a unit vector over three keyword axes, so
// similarity is deterministic without a real embedding provider.
func fakeEmbedding(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	axes := []string{"weather", "sport", "food"}

	vec := make([]float32, len(axes)+1)
	vec[len(axes)] = 0.1 // keeps texts with no keyword from embedding as zero
	for i, axis := range axes {
		vec[i] = float32(strings.Count(lower, axis))
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}

	return vec, nil
}

func TestSemanticSimilarityExampleSelector(t *testing.T) {
	ctx := context.Background()

	examples := []map[string]string{
		{"input": "sunny weather ahead", "output": "bring sunglasses"},
		{"input": "the sport match result", "output": "they won"},
		{"input": "great food recipe", "output": "needs garlic"},
	}

	t.Run("selects the nearest example", func(t *testing.T) {
		sel, err := selector.NewSemanticSimilarity(ctx, chromem.NewDB(), "nearest", fakeEmbedding, 1, examples)
		require.NoError(t, err)

		selected, err := sel.SelectExamples(ctx, map[string]string{"input": "weather forecast"})
		require.NoError(t, err)
		require.Len(t, selected, 1)
		assert.Equal(t, "bring sunglasses", selected[0]["output"])

		selected, err = sel.SelectExamples(ctx, map[string]string{"input": "what sport is on"})
		require.NoError(t, err)
		require.Len(t, selected, 1)
		assert.Equal(t, "they won", selected[0]["output"])
	})

	t.Run("clamps k to the stored count", func(t *testing.T) {
		sel, err := selector.NewSemanticSimilarity(ctx, chromem.NewDB(), "clamped", fakeEmbedding, 10, examples[:2])
		require.NoError(t, err)

		selected, err := sel.SelectExamples(ctx, map[string]string{"input": "food"})
		require.NoError(t, err)
		assert.Len(t, selected, 2)
	})

	t.Run("empty collection selects nothing", func(t *testing.T) {
		sel, err := selector.NewSemanticSimilarity(ctx, chromem.NewDB(), "empty", fakeEmbedding, 3, nil)
		require.NoError(t, err)

		selected, err := sel.SelectExamples(ctx, map[string]string{"input": "anything"})
		require.NoError(t, err)
		assert.Empty(t, selected)
	})

	t.Run("examples added later are selectable", func(t *testing.T) {
		sel, err := selector.NewSemanticSimilarity(ctx, chromem.NewDB(), "growing", fakeEmbedding, 1, nil)
		require.NoError(t, err)

		require.NoError(t, sel.AddExample(ctx, map[string]string{"input": "food market", "output": "fresh"}))

		selected, err := sel.SelectExamples(ctx, map[string]string{"input": "food"})
		require.NoError(t, err)
		require.Len(t, selected, 1)
		assert.Equal(t, "fresh", selected[0]["output"])
	})

	t.Run("rejects non-positive k", func(t *testing.T) {
		_, err := selector.NewSemanticSimilarity(ctx, chromem.NewDB(), "bad", fakeEmbedding, 0, nil)
		assert.Error(t, err)
	})
}
