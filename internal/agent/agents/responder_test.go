package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-support-core/server/internal/agent/model"
)

// stubRetriever returns canned documents or a fixed error.
type stubRetriever struct {
	docs []model.Document
	err  error
}

func (s *stubRetriever) Search(_ context.Context, _ string, limit int) ([]model.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > 0 && limit < len(s.docs) {
		return s.docs[:limit], nil
	}
	return s.docs, nil
}

// stubGenerator echoes a fixed completion or a fixed error.
type stubGenerator struct {
	content string
	err     error
}

func (s *stubGenerator) Generate(_ context.Context, _ string, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func TestRegistry_Lookup(t *testing.T) {
	product := NewProductResponder(&stubRetriever{}, &stubGenerator{content: "ok"}, 3)
	registry := NewRegistry(product)

	got, ok := registry.Lookup(AgentProduct)
	require.True(t, ok)
	assert.Equal(t, AgentProduct, got.Name())

	_, ok = registry.Lookup("UnknownAgent")
	assert.False(t, ok)
}

func TestProductResponder_Process(t *testing.T) {
	retriever := &stubRetriever{docs: []model.Document{
		{Content: "Premium plan costs $29.99/month", Source: "pricing"},
	}}
	p := NewProductResponder(retriever, &stubGenerator{content: "The premium plan is $29.99 per month."}, 3)

	resp, err := p.Process(context.Background(), "What is the price of the premium plan?")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, AgentProduct, resp.AgentName)
	assert.Equal(t, "The premium plan is $29.99 per month.", resp.Content)
	assert.Equal(t, []string{"pricing"}, resp.Sources)
	assert.GreaterOrEqual(t, resp.Confidence, 0.0)
	assert.LessOrEqual(t, resp.Confidence, 1.0)
}

func TestProductResponder_FallbackOnRetrievalError(t *testing.T) {
	p := NewProductResponder(&stubRetriever{err: errors.New("index down")}, &stubGenerator{content: "ok"}, 3)

	resp, err := p.Process(context.Background(), "tell me about the plans")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, productFallbackContent, resp.Content)
	assert.Equal(t, 0.3, resp.Confidence)
}

func TestProductResponder_FallbackOnGenerationError(t *testing.T) {
	p := NewProductResponder(&stubRetriever{}, &stubGenerator{err: errors.New("model unavailable")}, 3)

	resp, err := p.Process(context.Background(), "what products do you sell")
	require.NoError(t, err)
	assert.Equal(t, productFallbackContent, resp.Content)
	assert.Equal(t, 0.3, resp.Confidence)
}

func TestTechnicalResponder_FallbackConfidence(t *testing.T) {
	tr := NewTechnicalResponder(&stubRetriever{err: errors.New("index down")}, &stubGenerator{content: "ok"}, 3)

	resp, err := tr.Process(context.Background(), "my app crashes on start")
	require.NoError(t, err)
	assert.Equal(t, technicalFallbackContent, resp.Content)
	assert.Equal(t, 0.2, resp.Confidence)
}

func TestResponder_ConfidenceAlwaysInRange(t *testing.T) {
	responders := []Responder{
		NewProductResponder(&stubRetriever{}, &stubGenerator{content: "ok"}, 3),
		NewRefundResponder(&stubRetriever{}, &stubGenerator{content: "ok"}, 3),
		NewTechnicalResponder(&stubRetriever{}, &stubGenerator{content: "ok"}, 3),
	}
	messages := []string{
		"",
		"hello",
		"refund return money back billing payment dispute charge back reimburse policy cancel order",
		"error bug crash login technical support help issue problem not working freeze stuck slow api code system server connection timeout",
	}

	for _, r := range responders {
		for _, msg := range messages {
			score := r.Confidence(msg)
			assert.GreaterOrEqual(t, score, 0.0, "%s on %q", r.Name(), msg)
			assert.LessOrEqual(t, score, 1.0, "%s on %q", r.Name(), msg)
		}
	}
}
