package cache

import (
	"context"
	"time"

	"FormUp/storage/redis"
)

const lockPrefix = "lock"

// TryLock takes a SETNX lock. Returns false when another holder has it.
func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullKey := redis.Key(lockPrefix, key)

	return redis.Client().SetNX(ctx, fullKey, 1, ttl).Result()
}

func Unlock(ctx context.Context, key string) error {
	fullKey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullKey).Err()
}
