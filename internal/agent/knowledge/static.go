package knowledge

import (
	"context"

	"github.com/smart-support-core/server/internal/agent/model"
)

// StaticIndex serves retrieval from an in-memory document slice. Used for
// tests and redis-less demo runs; the documents are never mutated after
// construction, so concurrent searches need no locking.
type StaticIndex struct {
	docs []model.Document
}

func NewStaticIndex(docs []model.Document) *StaticIndex {
	copied := make([]model.Document, len(docs))
	copy(copied, docs)
	return &StaticIndex{docs: copied}
}

func (s *StaticIndex) Search(_ context.Context, query string, limit int) ([]model.Document, error) {
	return rank(s.docs, query, limit), nil
}

var _ model.Retriever = (*StaticIndex)(nil)
