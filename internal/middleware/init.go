package middleware

import (
	"go.uber.org/zap"

	"FormUp/pkg/logger"
)

// Init wires the middlewares that need runtime state.
func Init() error {
	if err := initAuthMiddleware(); err != nil {
		logger.Logger.Error("Failed to initialize auth middleware", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
