package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/events"
	"github.com/Stashly-Luggage/service-storage/pkg/kafka"
	"github.com/Stashly-Luggage/service-storage/pkg/metrics"
)

// PaymentRecorder applies payment outcomes to orders.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, evt events.PaymentCapturedEvent) error
	RecordPaymentFailure(ctx context.Context, evt events.PaymentFailedEvent) error
}

// PaymentEventConsumer listens to payment events and updates order payment state.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	service  PaymentRecorder
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	service PaymentRecorder,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicPaymentEvents, logger)
	return NewPaymentEventConsumerWithConsumer(consumer, service, logger)
}

// NewPaymentEventConsumerWithConsumer creates a PaymentEventConsumer around an existing consumer.
func NewPaymentEventConsumerWithConsumer(consumer *kafka.Consumer, service PaymentRecorder, logger *zap.Logger) *PaymentEventConsumer {
	return &PaymentEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		metrics.PaymentEventsTotal.WithLabelValues("unknown", "malformed").Inc()
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.PaymentCaptured:
		var evt events.PaymentCapturedEvent
		if err := cloudEvent.ParseData(&evt); err != nil {
			return c.malformed(cloudEvent, err)
		}
		c.logger.Info("processing payment captured event",
			zap.String("order_id", evt.OrderID.String()),
			zap.String("transaction_id", evt.TransactionID),
		)
		return c.outcome(cloudEvent.Type, evt.OrderID.String(), c.service.RecordPayment(ctx, evt))

	case events.PaymentFailed:
		var evt events.PaymentFailedEvent
		if err := cloudEvent.ParseData(&evt); err != nil {
			return c.malformed(cloudEvent, err)
		}
		c.logger.Info("processing payment failed event",
			zap.String("order_id", evt.OrderID.String()),
			zap.String("reason", evt.Reason),
		)
		return c.outcome(cloudEvent.Type, evt.OrderID.String(), c.service.RecordPaymentFailure(ctx, evt))

	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) malformed(ce kafka.CloudEvent, err error) error {
	metrics.PaymentEventsTotal.WithLabelValues(ce.Type, "malformed").Inc()
	c.logger.Error("failed to parse payment event data",
		zap.String("event_id", ce.ID),
		zap.String("type", ce.Type),
		zap.Error(err),
	)
	return nil
}

// outcome decides whether a failed event is retried. Errors the order can
// never recover from (unknown order, rejected transition) are dropped.
func (c *PaymentEventConsumer) outcome(eventType, orderID string, err error) error {
	switch {
	case err == nil:
		metrics.PaymentEventsTotal.WithLabelValues(eventType, "applied").Inc()
		return nil
	case domain.IsCode(err, domain.ErrCodeNotFound),
		domain.IsCode(err, domain.ErrCodeInvalidState),
		domain.IsCode(err, domain.ErrCodeValidation):
		metrics.PaymentEventsTotal.WithLabelValues(eventType, "rejected").Inc()
		c.logger.Warn("payment event rejected",
			zap.String("order_id", orderID),
			zap.String("type", eventType),
			zap.Error(err),
		)
		return nil
	default:
		metrics.PaymentEventsTotal.WithLabelValues(eventType, "retry").Inc()
		c.logger.Error("failed to apply payment event",
			zap.String("order_id", orderID),
			zap.String("type", eventType),
			zap.Error(err),
		)
		return err
	}
}
