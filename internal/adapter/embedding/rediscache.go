package embedding

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/observability"
)

// redisCacheClient caches embedding vectors in Redis so replicas share one
// cache. Cache errors degrade to a provider call and are logged, never
// returned: the cache is an optimization, not a dependency.
type redisCacheClient struct {
	base  domain.EmbeddingClient
	rdb   *redis.Client
	model string
	ttl   time.Duration
}

// NewRedisCache wraps base with a Redis-backed embedding cache. Keys are
// namespaced by model so a model change never serves stale vectors.
func NewRedisCache(base domain.EmbeddingClient, rdb *redis.Client, model string, ttl time.Duration) domain.EmbeddingClient {
	if base == nil || rdb == nil {
		return base
	}
	return &redisCacheClient{base: base, rdb: rdb, model: model, ttl: ttl}
}

func (c *redisCacheClient) Embed(ctx domain.Context, texts []string) ([][]float32, error) {
	res := make([][]float32, len(texts))
	missIdx := make([]int, 0)
	missTexts := make([]string, 0)
	for i, t := range texts {
		vec, ok := c.lookup(ctx, t)
		if ok {
			observability.EmbedCacheHit()
			res[i] = vec
			continue
		}
		observability.EmbedCacheMiss()
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}
	if len(missIdx) > 0 {
		vecs, err := c.base.Embed(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		for j, idx := range missIdx {
			res[idx] = vecs[j]
			c.store(ctx, missTexts[j], vecs[j])
		}
	}
	return res, nil
}

func (c *redisCacheClient) key(text string) string {
	return "embed:" + c.model + ":" + keyFor(text)
}

func (c *redisCacheClient) lookup(ctx domain.Context, text string) ([]float32, bool) {
	raw, err := c.rdb.Get(ctx, c.key(text)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("embed cache read failed", slog.Any("error", err))
		}
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		slog.Warn("embed cache entry corrupt, ignoring", slog.Any("error", err))
		return nil, false
	}
	return vec, true
}

func (c *redisCacheClient) store(ctx domain.Context, text string, vec []float32) {
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(text), raw, c.ttl).Err(); err != nil {
		slog.Warn("embed cache write failed", slog.Any("error", err))
	}
}
