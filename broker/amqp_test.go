package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAcknowledger struct {
	acked  int
	nacked int
}

func (r *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	r.acked++
	return nil
}

func (r *recordingAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	r.nacked++
	return nil
}

func (r *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

func TestPumpStopsWhenDeliveryChannelCloses(t *testing.T) {
	ack := &recordingAcknowledger{}
	body, err := json.Marshal(&FulfillmentEvent{SessionID: "cs_test_123"})
	require.NoError(t, err)

	msgChan := make(chan amqp.Delivery, 2)
	msgChan <- amqp.Delivery{Acknowledger: ack, Body: body}
	msgChan <- amqp.Delivery{Acknowledger: ack, Body: []byte("not json")}
	close(msgChan)

	rChan := make(chan *FulfillmentEvent, 1)
	done := make(chan struct{})
	go func() {
		pumpFulfillmentEvents(context.Background(), msgChan, rChan)
		close(done)
	}()

	event := <-rChan
	assert.Equal(t, "cs_test_123", event.SessionID)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer kept running after the delivery channel closed")
	}

	assert.Equal(t, 1, ack.acked)
	assert.Equal(t, 1, ack.nacked)
}

func TestPumpStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		pumpBillingEvents(ctx, make(chan amqp.Delivery), make(chan *BillingEvent))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not observe context cancellation")
	}
}
