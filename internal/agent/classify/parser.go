package classify

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/prompts"
	logx "github.com/smart-support-core/server/pkg/logger"
)

// basic safety limits to avoid pathological model output
const (
	maxContentLen = 16 * 1024
	maxRecords    = 50
	maxRecordLen  = 256
)

// ParseIntentScores parses `label<||>score##` records from model output.
// Model ordering is preserved so downstream arg-max tie-breaks stay
// reproducible. Records with unknown labels or out-of-range scores are
// skipped; at least one valid record is required.
func ParseIntentScores(content string, allowedLabels []string) ([]model.IntentScore, error) {
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "intent_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
	}
	// honor completion delimiter if present
	if idx := strings.Index(content, prompts.CompleteDelim); idx >= 0 {
		content = content[:idx]
	}

	allowed := make(map[string]bool, len(allowedLabels))
	for _, l := range allowedLabels {
		allowed[l] = true
	}

	scores := make([]model.IntentScore, 0, len(allowedLabels))
	seen := make(map[string]bool, len(allowedLabels))

	records := strings.Split(content, prompts.RecordDelim)
	for _, rec := range records {
		if len(scores) >= maxRecords {
			break
		}
		rec = strings.TrimSpace(rec)
		if rec == "" || len(rec) > maxRecordLen {
			continue
		}

		parts := strings.SplitN(rec, prompts.TupleDelim, 2)
		if len(parts) != 2 {
			continue
		}
		label := strings.TrimSpace(parts[0])
		if label == "" || !utf8.ValidString(label) || !allowed[label] || seen[label] {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 1 {
			continue
		}

		seen[label] = true
		scores = append(scores, model.IntentScore{Label: label, Score: score})
	}

	if len(scores) == 0 {
		return nil, fmt.Errorf("no valid intent records in model output")
	}
	return scores, nil
}
