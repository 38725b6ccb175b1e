// Package knowledge provides the document-retrieval capability consumed by
// the responders: a deterministic term-overlap index over a product/FAQ
// corpus, backed either by process memory or by Redis.
package knowledge

import (
	"sort"
	"strings"
	"unicode"

	"github.com/smart-support-core/server/internal/agent/model"
)

// Collection names mirror the knowledge-base layout.
const (
	CollectionProducts = "products"
	CollectionFAQs     = "faqs"
)

// tokenize lowercases and splits on any non-letter/non-digit rune.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// scoreDocument returns the fraction of query terms present in the content,
// matched as case-insensitive substrings. Zero means no overlap.
func scoreDocument(queryTerms []string, content string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	hits := 0
	for _, term := range queryTerms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTerms))
}

// rank scores docs against the query and returns the top limit matches, best
// first. Ties keep corpus order so results stay stable across calls.
func rank(docs []model.Document, query string, limit int) []model.Document {
	terms := tokenize(query)

	matched := make([]model.Document, 0, len(docs))
	for _, doc := range docs {
		score := scoreDocument(terms, doc.Content)
		if score <= 0 {
			continue
		}
		doc.Score = score
		matched = append(matched, doc)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
