package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordClassifier_ScoresMatchingFamily(t *testing.T) {
	c := NewKeywordClassifier()

	scores, err := c.Classify(context.Background(), "I want a refund for my order", IntentLabels)
	require.NoError(t, err)
	require.Len(t, scores, len(IntentLabels))

	byLabel := map[string]float64{}
	for _, s := range scores {
		byLabel[s.Label] = s.Score
	}

	assert.Equal(t, 0.8, byLabel["refund_request"])
	assert.Equal(t, 0.2, byLabel["product_inquiry"])
	assert.Equal(t, 0.2, byLabel["technical_issue"])
	assert.Equal(t, 0.2, byLabel["general_question"])
}

func TestKeywordClassifier_Deterministic(t *testing.T) {
	c := NewKeywordClassifier()
	ctx := context.Background()

	first, err := c.Classify(ctx, "help, the app shows an error", IntentLabels)
	require.NoError(t, err)
	second, err := c.Classify(ctx, "help, the app shows an error", IntentLabels)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestKeywordClassifier_PreservesLabelOrder(t *testing.T) {
	c := NewKeywordClassifier()

	scores, err := c.Classify(context.Background(), "hello there", IntentLabels)
	require.NoError(t, err)
	require.Len(t, scores, len(IntentLabels))
	for i, s := range scores {
		assert.Equal(t, IntentLabels[i], s.Label)
	}
}
