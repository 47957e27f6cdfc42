package app

import (
	"context"
	"os/signal"
	"syscall"

	"go-hris-leave/internal/config"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/messaging/kafka/producer"
	"go-hris-leave/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes pending outbox events to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres(), cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
		cfg.OutboxBatchSize,
	)

	logger.Info("worker shutting down")
	return nil
}
