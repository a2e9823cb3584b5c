package broker

import (
	"context"
	"encoding/json"

	extErrors "github.com/pkg/errors"
	"github.com/streadway/amqp"
)

var _ Producer = &AMQPBroker{}
var _ Consumer = &AMQPBroker{}

const (
	fulfillmentExchange string = "order_fulfillment"
	billingExchange            = "subscription_billing"

	fulfillmentQueue string = "fulfillment_worker"
	billingQueue            = "billing_worker"
)

// AMQPBroker describes a message broker via RabbitMQ
type AMQPBroker struct {
	connection *amqp.Connection
	channel    *amqp.Channel
}

// NewAMQPBroker returns a Message Broker over RabbitMQ
func NewAMQPBroker(amqpURI string) (*AMQPBroker, error) {
	amqpConn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot connect to Message Broker")
	}
	amqpChan, err := amqpConn.Channel()
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot create broker channel")
	}
	broker := &AMQPBroker{
		connection: amqpConn,
		channel:    amqpChan,
	}
	if err := broker.setupExchange(fulfillmentExchange); err != nil {
		return nil, extErrors.Wrap(err, "Cannot declare exchange for fulfillment events")
	}
	if err := broker.setupExchange(billingExchange); err != nil {
		return nil, extErrors.Wrap(err, "Cannot declare exchange for billing events")
	}

	return broker, nil
}

func (a *AMQPBroker) setupExchange(name string) error {
	return a.channel.ExchangeDeclare(
		name,     // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
}

// Close will close the channel and connection to release resources
func (a *AMQPBroker) Close() {
	a.channel.Close()
	a.connection.Close()
}

func (a *AMQPBroker) publish(exchange string, body []byte) error {
	return a.channel.Publish(
		exchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// SendFulfillmentEvent will notify the worker that a checkout session was paid
func (a *AMQPBroker) SendFulfillmentEvent(e *FulfillmentEvent) error {
	jsonBytes, err := json.Marshal(e)
	if err != nil {
		return extErrors.Wrap(err, "Cannot encode event into bytes")
	}
	if err := a.publish(fulfillmentExchange, jsonBytes); err != nil {
		return extErrors.Wrap(err, "Cannot publish fulfillment event")
	}
	return nil
}

// SendBillingEvent will notify the worker of a subscription charge attempt
func (a *AMQPBroker) SendBillingEvent(e *BillingEvent) error {
	jsonBytes, err := json.Marshal(e)
	if err != nil {
		return extErrors.Wrap(err, "Cannot encode event into bytes")
	}
	if err := a.publish(billingExchange, jsonBytes); err != nil {
		return extErrors.Wrap(err, "Cannot publish billing event")
	}
	return nil
}

func (a *AMQPBroker) setupQueue(qName string) error {
	_, err := a.channel.QueueDeclare(
		qName,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

func (a *AMQPBroker) bindAndGetMsgChan(qName, exchange string) (<-chan amqp.Delivery, error) {
	if err := a.channel.QueueBind(
		qName,
		"",
		exchange,
		false,
		nil,
	); err != nil {
		return nil, err
	}
	msgChan, err := a.channel.Consume(
		qName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	return msgChan, err
}

// ReceiveFulfillmentEvent returns a channel of paid checkout sessions awaiting fulfillment
func (a *AMQPBroker) ReceiveFulfillmentEvent(ctx context.Context) (<-chan *FulfillmentEvent, error) {
	if err := a.setupQueue(fulfillmentQueue); err != nil {
		return nil, extErrors.Wrap(err, "Cannot setup queue")
	}
	msgChan, err := a.bindAndGetMsgChan(fulfillmentQueue, fulfillmentExchange)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot setup consumer")
	}
	rChan := make(chan *FulfillmentEvent)
	go pumpFulfillmentEvents(ctx, msgChan, rChan)
	return rChan, nil
}

// pumpFulfillmentEvents forwards deliveries until ctx is cancelled or the
// delivery channel closes (connection loss)
func pumpFulfillmentEvents(ctx context.Context, msgChan <-chan amqp.Delivery, rChan chan<- *FulfillmentEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgChan:
			if !ok {
				return
			}
			var event FulfillmentEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				d.Nack(false, false)
				continue
			}
			rChan <- &event
			d.Ack(false)
		}
	}
}

// ReceiveBillingEvent returns a channel of subscription charge attempt outcomes
func (a *AMQPBroker) ReceiveBillingEvent(ctx context.Context) (<-chan *BillingEvent, error) {
	if err := a.setupQueue(billingQueue); err != nil {
		return nil, extErrors.Wrap(err, "Cannot setup queue")
	}
	msgChan, err := a.bindAndGetMsgChan(billingQueue, billingExchange)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot setup consumer")
	}
	rChan := make(chan *BillingEvent)
	go pumpBillingEvents(ctx, msgChan, rChan)
	return rChan, nil
}

func pumpBillingEvents(ctx context.Context, msgChan <-chan amqp.Delivery, rChan chan<- *BillingEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgChan:
			if !ok {
				return
			}
			var event BillingEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				d.Nack(false, false)
				continue
			}
			rChan <- &event
			d.Ack(false)
		}
	}
}
