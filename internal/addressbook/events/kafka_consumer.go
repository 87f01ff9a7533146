package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaReader is the part of kafka.Reader the consumer uses.
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// maxFetchInterval caps the wait between failed fetches.
const maxFetchInterval = 30 * time.Second

type Consumer struct {
	reader  KafkaReader
	logger  *zap.Logger
	handler func(context.Context, Event) error
	retry   backoff.BackOff
}

func newFetchBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxInterval = maxFetchInterval
	b.MaxElapsedTime = 0
	return b
}

// NewConsumer reads address book change events from topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			Dialer:  kafka.DefaultDialer,
		}),
		logger: logger.Named("kafka_consumer"),
		retry:  newFetchBackOff(),
	}
}

// Start consumes until ctx is cancelled. Messages are committed only after
// the handler succeeds.
func (c *Consumer) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Consumer) run(ctx context.Context) {
	if c.retry == nil {
		c.retry = newFetchBackOff()
	}
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			wait := c.retry.NextBackOff()
			c.logger.Error("Failed to fetch message", zap.Error(err), zap.Duration("retry_in", wait))
			if !sleep(ctx, wait) {
				return
			}
			continue
		}
		c.retry.Reset()

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("Failed to parse event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if c.handler != nil {
			if err := c.handler(ctx, event); err != nil {
				c.logger.Error("Failed to handle event",
					zap.Error(err),
					zap.String("event_type", string(event.Type)),
				)
				continue
			}
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("Failed to commit message",
				zap.Error(err),
				zap.String("event_type", string(event.Type)),
			)
		}
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d == backoff.Stop {
		<-ctx.Done()
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) RegisterHandler(fn func(context.Context, Event) error) {
	c.handler = fn
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
