package subscription

import "time"

// Subscription describes a customer's monthly edition subscription.
// Rate is locked at signup time and is never re-derived from the live catalog:
// later catalog price changes only apply to new signups.
type Subscription struct {
	ID                        string     `json:"id" gorm:"primaryKey"`
	CustomerID                string     `json:"customerId" gorm:"index"` // Corresponds to Stripe's Customer ID
	ProductID                 string     `json:"productId"`               // Catalog product (subscription_adult/youth/instructor)
	Rate                      float64    `json:"rate"`                    // Locked monthly rate in dollars
	Currency                  string     `json:"currency"`
	StartDate                 time.Time  `json:"startDate"`       // Anchors the billing cycle day-of-month
	NextBillingDate           time.Time  `json:"nextBillingDate"` // Smallest scheduled charge date >= now while active
	CurrentPeriodEnd          time.Time  `json:"currentPeriodEnd"`
	MonthsElapsed             int        `json:"monthsElapsed"` // Completed billing cycles since StartDate
	Status                    Status     `json:"status"`
	CancellationRequestedDate *time.Time `json:"cancellationRequestedDate,omitempty"`
	FailedPaymentDate         *time.Time `json:"failedPaymentDate,omitempty"`
	CreatedAt                 time.Time  `json:"createdAt"`
	UpdatedAt                 time.Time  `json:"updatedAt"`
}
