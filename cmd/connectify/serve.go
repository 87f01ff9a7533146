package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/connectify/internal/addressbook/auth"
	"github.com/gartstein/connectify/internal/addressbook/config"
	"github.com/gartstein/connectify/internal/addressbook/controller"
	"github.com/gartstein/connectify/internal/addressbook/db"
	"github.com/gartstein/connectify/internal/addressbook/events"
	"github.com/gartstein/connectify/internal/addressbook/handlers"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const connectTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC and HTTP servers",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// eventSink is a producer that must be closed on shutdown.
type eventSink interface {
	controller.EventProducer
	Close()
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := initLogger()
	defer syncLogger(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repo.Close()

	producer, err := openProducer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize Kafka producer: %w", err)
	}
	defer producer.Close()

	svc := controller.NewCommandService(controller.NewModel(nil), repo, producer, logger)
	defer svc.Close()
	if err := svc.Load(ctx); err != nil {
		return err
	}

	handler := handlers.NewAddressBookHandler(svc, logger)
	authInterceptor := auth.NewAuthInterceptor(cfg.JWTSecret, handlers.MutatingMethods())
	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger, grpc.UnaryInterceptor(authInterceptor.Unary()))
	server.RegisterGRPCHandler(handler)
	if err := server.RegisterHTTPGateway(handler, cfg.JWTSecret); err != nil {
		return fmt.Errorf("failed to register HTTP gateway: %w", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case <-svc.Done():
		logger.Info("Exit command received")
	}

	server.Stop()
	logger.Info("Servers stopped properly")
	return nil
}

// retry runs op with exponential backoff until it succeeds, ctx ends or
// connectTimeout elapses.
func retry(ctx context.Context, logger *zap.Logger, what string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = connectTimeout
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		logger.Warn("Connection attempt failed",
			zap.String("target", what),
			zap.Error(err),
			zap.Duration("retry_in", next),
		)
	})
}

func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.Repository, error) {
	var repo *db.Repository
	err := retry(ctx, logger, "database", func() error {
		var err error
		repo, err = db.NewRepository(cfg.Database(), logger)
		return err
	})
	return repo, err
}

// openProducer connects to Kafka, or logs events when no brokers are configured.
func openProducer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (eventSink, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("No Kafka brokers configured, logging events instead")
		return events.NewLogProducer(logger), nil
	}
	var producer *events.Producer
	err := retry(ctx, logger, "kafka", func() error {
		var err error
		producer, err = events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
		return err
	})
	if err != nil {
		return nil, err
	}
	return producer, nil
}
