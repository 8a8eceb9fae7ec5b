package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	otelapi "go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"FormUp/config"
	"FormUp/internal/queue"
	"FormUp/pkg/logger"
	"FormUp/pkg/metrics"
	pkgmq "FormUp/pkg/mq"
	"FormUp/pkg/otel"
	pkgredis "FormUp/pkg/redis"
	"FormUp/pkg/sms"
	"FormUp/pkg/snowflake"
	"FormUp/storage"
)

const serviceVersion = "1.0.0"

func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Worker received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()

		// Consumers unblock when the MQ connection closes.
		storage.Close()
	}()

	otelShutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
		ServiceName:    config.Cfg.ServiceName + "-worker",
		ServiceVersion: serviceVersion,
		Environment:    config.Cfg.Environment,
		OTLPEndpoint:   config.Cfg.OTLPEndpoint,
	})
	if err != nil {
		logger.Logger.Warn("Failed to initialize OpenTelemetry, telemetry disabled", zap.Error(err))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
			}
		}()
	}

	meter := otelapi.Meter(config.Cfg.ServiceName)
	for name, init := range map[string]func() error{
		"redis":  func() error { return pkgredis.InitRedisMetrics(meter) },
		"mq":     func() error { return pkgmq.InitMQMetrics(meter) },
		"domain": metrics.InitMetrics,
	} {
		if err := init(); err != nil {
			logger.Logger.Warn("Failed to initialize metrics",
				zap.String("scope", name),
				zap.Error(err),
			)
		}
	}

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := sms.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize SMS client", zap.Error(err))
		logger.Logger.Info("SMS reminders will be disabled")
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	queue.StartAllConsumers(ctx)

	logger.Logger.Info("Worker service shutting down gracefully")
}
