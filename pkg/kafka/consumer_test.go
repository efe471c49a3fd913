package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafkago.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func TestConsumer_RetriesUntilHandled(t *testing.T) {
	reader := &fakeReader{msgs: []kafkago.Message{{Offset: 1}, {Offset: 2}}}
	c := NewConsumerWithReader(reader, zap.NewNop())
	c.retryBackoff = time.Millisecond

	var mu sync.Mutex
	calls := map[int64]int{}
	handle := func(_ context.Context, m kafkago.Message) error {
		mu.Lock()
		defer mu.Unlock()
		calls[m.Offset]++
		if m.Offset == 1 && calls[1] < 3 {
			return errors.New("transient")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Consume(ctx, handle) }()

	require.Eventually(t, func() bool { return len(reader.commits()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, []int64{1, 2}, reader.commits())
	mu.Lock()
	assert.Equal(t, 3, calls[1])
	assert.Equal(t, 1, calls[2])
	mu.Unlock()
}

type fakeWriter struct {
	msgs []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestProducer_PublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, zap.NewNop())

	ce, err := NewCloudEvent("test", "order.created", map[string]string{"orderId": "abc"})
	require.NoError(t, err)
	require.NoError(t, p.PublishEvent(context.Background(), "order.events", "abc", ce))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "order.events", w.msgs[0].Topic)
	assert.Equal(t, "abc", string(w.msgs[0].Key))

	parsed, err := ParseCloudEvent(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "order.created", parsed.Type)

	var data map[string]string
	require.NoError(t, parsed.ParseData(&data))
	assert.Equal(t, "abc", data["orderId"])
}

func TestParseCloudEvent_RejectsIncomplete(t *testing.T) {
	_, err := ParseCloudEvent([]byte(`{"specversion":"1.0"}`))
	assert.Error(t, err)
	_, err = ParseCloudEvent([]byte(`not json`))
	assert.Error(t, err)
}
