package alertledger

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

const (
	sentKeyPrefix = "vault:alert:sent:"

	defaultTTL = 72 * time.Hour
)

type redisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) domain.AlertLedger {
	return &redisLedger{
		client: client,
	}
}

func (l *redisLedger) MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return l.client.SetNX(ctx, sentKeyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (l *redisLedger) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, sentKeyPrefix+key).Err()
}
