package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/events"
	"github.com/Stashly-Luggage/service-storage/pkg/kafka"
)

type fakeRecorder struct {
	captured []events.PaymentCapturedEvent
	failed   []events.PaymentFailedEvent
	err      error
}

func (r *fakeRecorder) RecordPayment(_ context.Context, evt events.PaymentCapturedEvent) error {
	r.captured = append(r.captured, evt)
	return r.err
}

func (r *fakeRecorder) RecordPaymentFailure(_ context.Context, evt events.PaymentFailedEvent) error {
	r.failed = append(r.failed, evt)
	return r.err
}

func message(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-payment", eventType, data)
	require.NoError(t, err)
	value, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Topic: events.TopicPaymentEvents, Value: value}
}

func newTestConsumer(recorder PaymentRecorder) *PaymentEventConsumer {
	return &PaymentEventConsumer{service: recorder, logger: zap.NewNop()}
}

func TestHandleMessage_Captured(t *testing.T) {
	recorder := &fakeRecorder{}
	c := newTestConsumer(recorder)
	orderID := uuid.New()

	err := c.handleMessage(context.Background(), message(t, events.PaymentCaptured, events.PaymentCapturedEvent{
		OrderID:       orderID,
		Method:        "upi",
		TransactionID: "tx-9",
		PaidAt:        time.Now().UTC(),
	}))
	require.NoError(t, err)
	require.Len(t, recorder.captured, 1)
	assert.Equal(t, orderID, recorder.captured[0].OrderID)
	assert.Equal(t, "tx-9", recorder.captured[0].TransactionID)
}

func TestHandleMessage_Failed(t *testing.T) {
	recorder := &fakeRecorder{}
	c := newTestConsumer(recorder)

	err := c.handleMessage(context.Background(), message(t, events.PaymentFailed, events.PaymentFailedEvent{OrderID: uuid.New(), Reason: "declined"}))
	require.NoError(t, err)
	assert.Len(t, recorder.failed, 1)
}

func TestHandleMessage_SkipsMalformedAndUnknown(t *testing.T) {
	recorder := &fakeRecorder{}
	c := newTestConsumer(recorder)
	ctx := context.Background()

	assert.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: []byte("{not json")}))
	assert.NoError(t, c.handleMessage(ctx, message(t, "payment.refunded", map[string]string{"orderId": uuid.NewString()})))
	assert.NoError(t, c.handleMessage(ctx, message(t, events.PaymentCaptured, "not an object")))
	assert.Empty(t, recorder.captured)
}

func TestHandleMessage_RetryableErrors(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("database unavailable")}
	c := newTestConsumer(recorder)

	err := c.handleMessage(context.Background(), message(t, events.PaymentCaptured, events.PaymentCapturedEvent{OrderID: uuid.New()}))
	assert.Error(t, err, "transient failures are retried")

	recorder.err = domain.NewNotFoundError("Order", "x")
	err = c.handleMessage(context.Background(), message(t, events.PaymentCaptured, events.PaymentCapturedEvent{OrderID: uuid.New()}))
	assert.NoError(t, err, "unknown orders are dropped")

	recorder.err = domain.NewInvalidStateError("cancelled", "paid")
	err = c.handleMessage(context.Background(), message(t, events.PaymentCaptured, events.PaymentCapturedEvent{OrderID: uuid.New()}))
	assert.NoError(t, err)
}
