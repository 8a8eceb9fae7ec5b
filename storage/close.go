package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"FormUp/pkg/logger"
	"FormUp/storage/database"
	"FormUp/storage/mq"
	"FormUp/storage/redis"
)

// Close shuts storage down in dependency order: MQ first so no new work
// arrives, then Redis, then the database.
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Logger.Info("Closing storage connections...")

	if err := mq.Close(); err != nil {
		logger.Logger.Error("Failed to close message queue", zap.Error(err))
	}

	if err := redis.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
	}

	if err := database.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	logger.Logger.Info("All storage connections closed")
}
