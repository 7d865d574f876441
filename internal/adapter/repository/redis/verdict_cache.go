package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/entity"
	"github.com/vijayakumarsahana16-san/phishproof/internal/domain/repository"
)

const keyPrefix = "phishproof:verdict:"

type verdictCache struct {
	client *redis.Client
	ttl    time.Duration
	model  string
}

// NewVerdictCache creates a verdict cache backed by Redis. Keys are scoped
// to the model fingerprint so verdicts of a previously fitted model are
// never returned. Entries expire after ttl; a zero ttl keeps them until
// evicted.
func NewVerdictCache(client *redis.Client, ttl time.Duration, model string) repository.VerdictCache {
	return &verdictCache{client: client, ttl: ttl, model: model}
}

func (c *verdictCache) Get(ctx context.Context, text string) (*entity.Verdict, error) {
	data, err := c.client.Get(ctx, cacheKey(c.model, text)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get verdict: %w", err)
	}

	var verdict entity.Verdict
	if err := json.Unmarshal(data, &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode verdict: %w", err)
	}
	return &verdict, nil
}

func (c *verdictCache) Set(ctx context.Context, text string, verdict *entity.Verdict) error {
	data, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to encode verdict: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(c.model, text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set verdict: %w", err)
	}
	return nil
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + model + ":" + hex.EncodeToString(sum[:])
}
