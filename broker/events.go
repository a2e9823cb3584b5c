package broker

import "time"

// BillingResult is the custom type describing the outcome of a charge attempt
type BillingResult string

// Defining the possible outcomes of a charge attempt
const (
	BillingSucceeded BillingResult = "Succeeded"
	BillingFailed    BillingResult = "Failed"
)

// FulfillmentEvent is published when a checkout session is paid,
// so the worker can grant content access and send the receipt email
type FulfillmentEvent struct {
	SessionID     string    `json:"sessionId"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	Quantity      int64     `json:"quantity"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CustomerEmail string    `json:"customerEmail"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// BillingEvent is published after each subscription charge attempt
type BillingEvent struct {
	SubscriptionID string        `json:"subscriptionId"`
	CustomerID     string        `json:"customerId"`
	Result         BillingResult `json:"result"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	OccurredAt     time.Time     `json:"occurredAt"`
}
