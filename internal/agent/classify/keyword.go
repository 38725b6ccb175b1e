package classify

import (
	"context"
	"strings"

	"github.com/smart-support-core/server/internal/agent/model"
)

// keyword cues per label family for the offline classifier
var keywordCues = map[string][]string{
	"product":   {"price", "buy", "product", "features"},
	"refund":    {"refund", "return", "money"},
	"technical": {"error", "bug", "help", "issue"},
}

// KeywordClassifier is a deterministic classifier for demo runs and tests:
// a label whose keyword family matches the text scores 0.8, everything else
// 0.2. No external dependency, cannot time out.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(_ context.Context, text string, labels []string) ([]model.IntentScore, error) {
	lower := strings.ToLower(text)

	scores := make([]model.IntentScore, 0, len(labels))
	for _, label := range labels {
		score := 0.2
		for family, cues := range keywordCues {
			if !strings.Contains(label, family) {
				continue
			}
			for _, cue := range cues {
				if strings.Contains(lower, cue) {
					score = 0.8
					break
				}
			}
		}
		scores = append(scores, model.IntentScore{Label: label, Score: score})
	}
	return scores, nil
}

var _ model.IntentClassifier = (*KeywordClassifier)(nil)
