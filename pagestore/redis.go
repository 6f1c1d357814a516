package pagestore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisGenerationTTL = 48 * time.Hour

// RedisBackend stores a generation as one redis hash keyed
// page_cache:YYYY-MM-DD.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects to the redis instance at url.
func NewRedisBackend(url string, day time.Time) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisBackend{
		client: redis.NewClient(opts),
		key:    GenerationKey(day),
	}, nil
}

// GenerationKey is the hash key holding the pages of day.
func GenerationKey(day time.Time) string {
	return "page_cache:" + day.Format("2006-01-02")
}

func (b *RedisBackend) Load() (map[string]string, error) {
	pages, err := b.client.HGetAll(context.Background(), b.key).Result()
	if err == redis.Nil {
		return map[string]string{}, nil
	}
	return pages, err
}

func (b *RedisBackend) Save(pages map[string]string) error {
	if len(pages) == 0 {
		return nil
	}
	ctx := context.Background()
	values := make([]any, 0, len(pages)*2)
	for url, page := range pages {
		values = append(values, url, page)
	}
	pipe := b.client.TxPipeline()
	pipe.HSet(ctx, b.key, values...)
	pipe.Expire(ctx, b.key, redisGenerationTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

// Ping checks that the server is reachable.
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
