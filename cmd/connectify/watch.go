package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/connectify/internal/addressbook/config"
	"github.com/gartstein/connectify/internal/addressbook/events"
	"github.com/spf13/cobra"
)

var watchGroup string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print address book change events from Kafka",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchGroup, "group", "connectify-watch", "Kafka consumer group")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	logger := initLogger()
	defer syncLogger(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(cfg.KafkaBrokers, watchGroup, cfg.Topic, logger)
	defer consumer.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	consumer.RegisterHandler(func(_ context.Context, event events.Event) error {
		return enc.Encode(event)
	})
	consumer.Start(ctx)

	<-ctx.Done()
	return nil
}
