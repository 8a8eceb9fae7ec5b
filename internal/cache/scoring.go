package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"FormUp/internal/model/dto"
	"FormUp/storage/redis"
)

const (
	scoringPrefix = "scoring"
	scoringTTL    = 12 * time.Hour
)

// GetScoreTable returns the cached table for an age group, nil on miss.
func GetScoreTable(ctx context.Context, ageGroup string) (*dto.ScoreTableResponse, error) {
	key := redis.Key(scoringPrefix, ageGroup)

	raw, err := redis.Client().Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var table dto.ScoreTableResponse
	if err := json.Unmarshal(raw, &table); err != nil {
		// Stale or corrupt entry; treat as a miss.
		_ = redis.Client().Del(ctx, key).Err()
		return nil, nil
	}

	return &table, nil
}

func SetScoreTable(ctx context.Context, table *dto.ScoreTableResponse) error {
	key := redis.Key(scoringPrefix, table.AgeGroup)

	raw, err := json.Marshal(table)
	if err != nil {
		return err
	}

	return redis.Client().Set(ctx, key, raw, scoringTTL).Err()
}
