// Package cachesvc implements the query-cache invalidation contract. The app
// never reads through this layer; it only deletes keys after mutations so
// stale reads cannot outlive a write.
package cachesvc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

type RedisInvalidator struct {
	client *redis.Client
	logger core.Logger
	prefix string
}

var _ core.Invalidator = (*RedisInvalidator)(nil)

func NewRedisInvalidator(conf *core.Config, logger core.Logger) *RedisInvalidator {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	return &RedisInvalidator{client: client, logger: logger, prefix: conf.AppName + ":cache:"}
}

// Invalidate deletes the given cache keys. Failures are logged and swallowed;
// a missed invalidation only means a slightly longer-lived cache entry.
func (inv *RedisInvalidator) Invalidate(keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, inv.prefix+key)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := inv.client.Del(ctx, full...).Err(); err != nil {
		inv.logger.Warn("invalidating cache keys", err)
	}
}

func (inv *RedisInvalidator) Close() error {
	return inv.client.Close()
}
