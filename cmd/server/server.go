package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	otelapi "go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"FormUp/config"
	"FormUp/internal/middleware"
	"FormUp/internal/router"
	pkgdatabase "FormUp/pkg/database"
	"FormUp/pkg/logger"
	"FormUp/pkg/metrics"
	pkgmq "FormUp/pkg/mq"
	"FormUp/pkg/ocr"
	"FormUp/pkg/otel"
	pkgredis "FormUp/pkg/redis"
	"FormUp/pkg/sms"
	"FormUp/pkg/snowflake"
	"FormUp/pkg/token"
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
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	otelShutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
		ServiceName:    config.Cfg.ServiceName,
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
	initMetrics()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := sms.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize SMS client", zap.Error(err))
		logger.Logger.Info("SMS reminders will be disabled")
	}

	if err := ocr.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize OCR client", zap.Error(err))
		logger.Logger.Info("Scoresheet scanning will be disabled")
	}

	// token before middleware: the auth middleware wraps the shared generator.
	if err := token.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize token package", zap.Error(err))
	}

	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)
	tracer, tracingMiddleware := middleware.NewServerTracerConfig()
	h := server.Default(server.WithHostPorts(addr), tracer)
	h.Use(tracingMiddleware)

	router.Register(h)

	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}

func initMetrics() {
	meter := otelapi.Meter(config.Cfg.ServiceName)
	for name, init := range map[string]func() error{
		"http":     func() error { return middleware.InitMetrics(meter) },
		"database": func() error { return pkgdatabase.InitDatabaseMetrics(meter) },
		"redis":    func() error { return pkgredis.InitRedisMetrics(meter) },
		"mq":       func() error { return pkgmq.InitMQMetrics(meter) },
		"domain":   metrics.InitMetrics,
	} {
		if err := init(); err != nil {
			logger.Logger.Warn("Failed to initialize metrics",
				zap.String("scope", name),
				zap.Error(err),
			)
		}
	}
}
