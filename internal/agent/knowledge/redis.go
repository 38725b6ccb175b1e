package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smart-support-core/server/internal/agent/model"
	errx "github.com/smart-support-core/server/internal/core/error"
	logx "github.com/smart-support-core/server/pkg/logger"
)

// RedisIndex serves retrieval from documents held in a Redis hash, one field
// per document source. Scoring happens client-side with the same ranking as
// StaticIndex, so both backends are interchangeable in tests.
type RedisIndex struct {
	rdb        redis.Cmdable
	collection string
	timeout    time.Duration
}

func NewRedisIndex(rdb redis.Cmdable, collection string, timeout time.Duration) *RedisIndex {
	return &RedisIndex{rdb: rdb, collection: collection, timeout: timeout}
}

func collectionKey(collection string) string {
	return fmt.Sprintf("knowledge:%s", collection)
}

func (r *RedisIndex) Search(ctx context.Context, query string, limit int) ([]model.Document, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	key := collectionKey(r.collection)
	rows, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to load knowledge collection from redis")
		return nil, errx.WrapRedis(err)
	}

	docs := make([]model.Document, 0, len(rows))
	for field, raw := range rows {
		var doc model.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			logx.Warn().Err(err).Str("key", key).Str("field", field).Msg("skipping malformed knowledge document")
			continue
		}
		docs = append(docs, doc)
	}

	return rank(docs, query, limit), nil
}

// Seed loads documents into the collection hash, overwriting existing fields
// with the same source. Used at startup and by the knowledge loader.
func Seed(ctx context.Context, rdb redis.Cmdable, collection string, docs []model.Document) error {
	key := collectionKey(collection)
	for _, doc := range docs {
		b, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document %q: %w", doc.Source, err)
		}
		if err := rdb.HSet(ctx, key, doc.Source, b).Err(); err != nil {
			logx.Error().Err(err).Str("key", key).Str("source", doc.Source).Msg("failed to seed knowledge document")
			return errx.WrapRedis(err)
		}
	}
	logx.Info().Str("collection", collection).Int("documents", len(docs)).Msg("knowledge collection seeded")
	return nil
}

var _ model.Retriever = (*RedisIndex)(nil)
