package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitConfirm_SkipsLateConfirmOfEarlierPublish(t *testing.T) {
	confirms := make(chan amqp.Confirmation, 2)
	// Tag 1 timed out earlier; its ack arrives ahead of the nack for tag 2.
	confirms <- amqp.Confirmation{DeliveryTag: 1, Ack: true}
	confirms <- amqp.Confirmation{DeliveryTag: 2, Ack: false}

	confirm, err := awaitConfirm(context.Background(), confirms, 2, time.Second)
	require.Error(t, err)
	assert.Equal(t, uint64(2), confirm.DeliveryTag)
	assert.Empty(t, confirms)
}

func TestAwaitConfirm_Ack(t *testing.T) {
	confirms := make(chan amqp.Confirmation, 1)
	confirms <- amqp.Confirmation{DeliveryTag: 3, Ack: true}

	confirm, err := awaitConfirm(context.Background(), confirms, 3, time.Second)
	require.NoError(t, err)
	assert.True(t, confirm.Ack)
}

func TestAwaitConfirm_TimeoutLeavesNothingForTheNextPublish(t *testing.T) {
	confirms := make(chan amqp.Confirmation, 2)

	_, err := awaitConfirm(context.Background(), confirms, 1, 10*time.Millisecond)
	require.Error(t, err)

	// The late ack for tag 1 lands after the timeout, then tag 2 is nacked.
	confirms <- amqp.Confirmation{DeliveryTag: 1, Ack: true}
	confirms <- amqp.Confirmation{DeliveryTag: 2, Ack: false}

	_, err = awaitConfirm(context.Background(), confirms, 2, time.Second)
	assert.EqualError(t, err, "stock event nacked by broker")
}

func TestAwaitConfirm_ClosedChannelAndCancelledContext(t *testing.T) {
	closed := make(chan amqp.Confirmation)
	close(closed)
	_, err := awaitConfirm(context.Background(), closed, 1, time.Second)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = awaitConfirm(ctx, make(chan amqp.Confirmation), 1, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
