package broker

import "context"

// Producer defines a producer sending events via message broker
type Producer interface {
	Close()
	SendFulfillmentEvent(e *FulfillmentEvent) error
	SendBillingEvent(e *BillingEvent) error
}

// Consumer defines a consumer receiving events via message broker
type Consumer interface {
	Close()
	ReceiveFulfillmentEvent(ctx context.Context) (<-chan *FulfillmentEvent, error)
	ReceiveBillingEvent(ctx context.Context) (<-chan *BillingEvent, error)
}
