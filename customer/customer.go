package customer

import "time"

// Customer describes a Soul Food member
type Customer struct {
	ID         string    `json:"id" gorm:"primaryKey"`     // Corresponds to Stripe's customer ID
	Email      string    `json:"email" gorm:"uniqueIndex"` // User's email address
	Edition    string    `json:"edition"`                  // adult/youth/instructor
	IsBetaUser bool      `json:"isBetaUser"`               // All users are beta users until official launch
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
