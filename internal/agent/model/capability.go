package model

import "context"

// IntentScore is one label with its classifier-assigned score. Scores are
// returned as an ordered list so arg-max tie-breaks stay reproducible: on
// equal scores the first-encountered label wins.
type IntentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// IntentClassifier scores a text against a fixed candidate label vocabulary.
// A successful call returns at least one entry; an empty result is a fault.
type IntentClassifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]IntentScore, error)
}

// Generator produces text from a system prompt (carrying retrieved context)
// and the user query.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, query string) (string, error)
}

// Document is one retrieved knowledge-base entry.
type Document struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

// Retriever returns the top-K documents for a query, best match first.
// An empty list is a valid result, not a fault.
type Retriever interface {
	Search(ctx context.Context, query string, limit int) ([]Document, error)
}
