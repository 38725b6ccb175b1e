package agents

import (
	"context"
	"strings"
	"time"

	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/prompts"
	logx "github.com/smart-support-core/server/pkg/logger"
)

var productKeywords = []string{"price", "features", "product", "buy", "purchase", "plan"}

const productFallbackContent = "I apologize, but I'm having trouble accessing product information right now."

// ProductResponder answers product and pricing questions with a
// retrieve → augment → generate pipeline over the product collection.
type ProductResponder struct {
	retriever model.Retriever
	generator model.Generator
	topK      int
}

func NewProductResponder(retriever model.Retriever, generator model.Generator, topK int) *ProductResponder {
	return &ProductResponder{retriever: retriever, generator: generator, topK: topK}
}

func (p *ProductResponder) Name() string {
	return AgentProduct
}

func (p *ProductResponder) Process(ctx context.Context, message string) (*Response, error) {
	start := time.Now()

	docs, err := p.retriever.Search(ctx, message, p.topK)
	if err != nil {
		logx.Error().Err(err).Str("agent", p.Name()).Msg("product retrieval failed")
		return fallback(p.Name(), productFallbackContent, 0.3, start), nil
	}

	contents := make([]string, 0, len(docs))
	sources := make([]string, 0, len(docs))
	for _, doc := range docs {
		contents = append(contents, doc.Content)
		sources = append(sources, doc.Source)
	}

	systemPrompt, err := prompts.RenderProductSystem(ctx, strings.Join(contents, "\n"))
	if err != nil {
		logx.Error().Err(err).Str("agent", p.Name()).Msg("product prompt rendering failed")
		return fallback(p.Name(), productFallbackContent, 0.3, start), nil
	}

	content, err := p.generator.Generate(ctx, systemPrompt, message)
	if err != nil {
		logx.Error().Err(err).Str("agent", p.Name()).Msg("product generation failed")
		return fallback(p.Name(), productFallbackContent, 0.3, start), nil
	}

	return &Response{
		AgentName:      p.Name(),
		Content:        content,
		Confidence:     p.Confidence(message),
		Sources:        sources,
		ProcessingTime: time.Since(start),
	}, nil
}

// Confidence scores the keyword overlap with the product domain. No bonus
// phrases for this domain.
func (p *ProductResponder) Confidence(message string) float64 {
	return keywordScore(message, productKeywords, nil, 0)
}

var _ Responder = (*ProductResponder)(nil)
