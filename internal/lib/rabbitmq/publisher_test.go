package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

func TestPublishMessage_MarshalError(t *testing.T) {
	badMsg := struct {
		Ch chan int `json:"ch"`
	}{Ch: make(chan int)}

	err := PublishMessage(nil, "", "q", badMsg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
}

func TestPublisherAndConsumer(t *testing.T) {
	amqpURI := amqpURIForTest(t)

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	pubCh, err := SetupChannel(conn, ExchangePayments, GetPaymentQueues())
	require.NoError(t, err)
	pub := NewPublisher(pubCh)
	defer func() { _ = pub.Close() }()

	subCh, err := SetupChannel(conn, ExchangePayments, GetPaymentQueues())
	require.NoError(t, err)
	defer func() { _ = subCh.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts atomic.Int32
	got := make(chan models.PaymentRecorded, 1)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	consumer, err := ConsumerMessage(ctx, log, subCh, QueuePaymentRecorded, func(body []byte) error {
		// Первая доставка падает, повторная должна прийти с флагом redelivered.
		if attempts.Add(1) == 1 {
			return errors.New("temporary failure")
		}
		var ev models.PaymentRecorded
		if err := json.Unmarshal(body, &ev); err != nil {
			return err
		}
		got <- ev
		return nil
	})
	require.NoError(t, err)

	event := models.PaymentRecorded{
		Email:         "user@example.com",
		Amount:        1500,
		Currency:      "bdt",
		TransactionID: "pi_123",
		RecordedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, pub.PublishPaymentRecorded(ctx, event))

	select {
	case ev := <-got:
		assert.Equal(t, event.TransactionID, ev.TransactionID)
		assert.Equal(t, event.Email, ev.Email)
		assert.True(t, event.RecordedAt.Equal(ev.RecordedAt))
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for payment event")
	}
	assert.Equal(t, int32(2), attempts.Load())

	cancel()
	consumer.Wait()
}

func TestPublisher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewPublisher(nil).PublishPaymentRecorded(ctx, models.PaymentRecorded{})
	require.ErrorIs(t, err, context.Canceled)
}
