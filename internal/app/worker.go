package app

import (
	"context"

	"salary-system/internal/messaging/kafka"
	"salary-system/internal/messaging/kafka/producer"
	"salary-system/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker drives the outbox relay: it polls outbox_events and
// publishes pending rows to kafka until the context is cancelled.
func RunWorker(ctx context.Context, cfg Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, 5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	repo := kafka.NewOutboxRepository(sqlDB)
	producer.ProcessOutboxEvents(ctx, repo, writer, zap.L(), cfg.OutboxPollInterval)
	return nil
}
