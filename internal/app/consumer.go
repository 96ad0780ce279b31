package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-agency/internal/bootstrap"
	"go-agency/internal/config"
	"go-agency/internal/directory"
	"go-agency/internal/events"
	"go-agency/internal/messaging/kafka/consumer"
	"go-agency/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer follows the leave status topic, keeping the availability cache
// fresh and writing an audit trail of every transition.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.App.ConnectRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.App.ConnectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	directoryService := directory.NewServiceWithCache(directory.NewRepository(gormDB), rdb, cfg.App.AvailabilityTTL, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.LeaveStatusChangedTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeLeaveStatusChanged(ctx, reader, directoryService, bootstrap.NewStdoutAuditLogger(logger), logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
