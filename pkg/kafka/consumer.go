package kafka

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the subset of kafka-go's Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// HandlerFunc processes one message. A non-nil error means the message is
// handed to the handler again; return nil to skip a message for good.
type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

// Consumer reads a topic as part of a consumer group.
type Consumer struct {
	reader         Reader
	logger         *zap.Logger
	handlerTimeout time.Duration
	retryBackoff   time.Duration
}

// NewConsumer creates a group consumer for topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
	return NewConsumerWithReader(r, logger)
}

// NewConsumerWithReader creates a Consumer around an existing reader.
func NewConsumerWithReader(r Reader, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader:         r,
		logger:         logger,
		handlerTimeout: 10 * time.Second,
		retryBackoff:   time.Second,
	}
}

// Consume blocks, passing each message to handle, until ctx is cancelled.
func (c *Consumer) Consume(ctx context.Context, handle HandlerFunc) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.Canceled) {
				return err
			}
			c.logger.Warn("failed to fetch message", zap.Error(err))
			if !c.sleep(ctx) {
				return ctx.Err()
			}
			continue
		}

		// The reader does not redeliver uncommitted messages within a
		// session, so failures are retried here until they succeed.
		for attempt := 1; ; attempt++ {
			handleCtx, cancel := context.WithTimeout(ctx, c.handlerTimeout)
			err = handle(handleCtx, msg)
			cancel()
			if err == nil {
				break
			}
			c.logger.Error("message handling failed, retrying",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if !c.sleep(ctx) {
				return ctx.Err()
			}
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Error("failed to commit offset",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

func (c *Consumer) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.retryBackoff):
		return true
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
