package payment

import "time"

// PaymentStatus is the custom type for the money side of a transaction
type PaymentStatus string

// Defining the payment statuses
const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid                  = "paid"
)

// TransactionStatus is the custom type for the fulfillment side of a transaction
type TransactionStatus string

// Defining the transaction statuses
const (
	TransactionInitiated TransactionStatus = "initiated"
	TransactionCompleted                   = "completed"
	TransactionExpired                     = "expired"
)

// Transaction records one checkout session from creation through fulfillment
type Transaction struct {
	SessionID        string            `json:"sessionId" gorm:"primaryKey"` // Corresponds to Stripe's Checkout Session ID
	ProductID        string            `json:"productId" gorm:"index"`
	ProductName      string            `json:"productName"`
	Quantity         int64             `json:"quantity"`
	Amount           float64           `json:"amount"`
	Currency         string            `json:"currency"`
	CouponCode       string            `json:"couponCode,omitempty"`
	DiscountPercent  int               `json:"discountPercent,omitempty"`
	CustomerEmail    string            `json:"customerEmail"`
	PaymentStatus    PaymentStatus     `json:"paymentStatus"`
	Status           TransactionStatus `json:"status"`
	WebhookProcessed bool              `json:"webhookProcessed"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}
