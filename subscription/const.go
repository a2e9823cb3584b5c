package subscription

// Status is the custom type to define the current state of a subscription
type Status string

// Lifecycle of a subscription:
// active -> cancelled_pending/cancelled (on cancellation request, depending on notice given)
// cancelled_pending -> cancelled (after the final charge)
// active -> grace_period (on a failed charge)
// grace_period -> active (successful retry) or expired (no retry within the grace window)
const (
	StatusActive           Status = "active"
	StatusCancelledPending        = "cancelled_pending"
	StatusCancelled               = "cancelled"
	StatusGracePeriod             = "grace_period"
	StatusExpired                 = "expired"
)

const (
	// CancellationNoticeDays is the minimum notice before the next billing date
	// for a cancellation to avoid one more charge
	CancellationNoticeDays = 5

	// GracePeriodDays is how long access is retained after a failed charge
	// before the subscription expires
	GracePeriodDays = 3
)
