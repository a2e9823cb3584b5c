package subscription

import (
	"fmt"
	"time"
)

// The billing and cancellation policy, as pure functions over explicit inputs.
// Callers (the API cancel route and the daily billing task) supply "now" so
// decisions are deterministic and testable.

// CancellationDecision is the outcome of a cancellation request. The caller is
// responsible for persisting the resulting status transition.
type CancellationDecision struct {
	CancellationDate    time.Time `json:"cancellationDate"`
	WillChargeNextMonth bool      `json:"willChargeNextMonth"`
	FinalChargeAmount   float64   `json:"finalChargeAmount"` // 0 if no further charge, else the locked rate
	AccessEndDate       time.Time `json:"accessEndDate"`
	Status              Status    `json:"status"` // cancelled_pending or cancelled
	Message             string    `json:"message"`
}

// NextBillingDate calculates a billing date monthsElapsed months after the
// subscription start date. Billing stays on the signup day-of-month; when the
// target month is shorter (e.g. Jan 31 -> Feb), it falls on the last day of
// that month. Hour and minute are preserved, seconds are dropped.
func NextBillingDate(start time.Time, monthsElapsed int) time.Time {
	month := int(start.Month()) + monthsElapsed
	year := start.Year()
	for month > 12 {
		month -= 12
		year++
	}

	day := start.Day()
	if last := lastDayOfMonth(year, time.Month(month), start.Location()); day > last {
		day = last
	}

	return time.Date(year, time.Month(month), day, start.Hour(), start.Minute(), 0, 0, start.Location())
}

// time.Date normalizes day 0 to the last day of the previous month
func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// CanCancelWithoutCharge reports whether a cancellation at "now" gives enough
// notice to skip the upcoming charge. The elapsed time until the billing date
// is truncated toward zero to whole 24-hour days: exactly 5 days of notice
// cancels free, 4 days 23:59 does not. Exact elapsed time is used rather than
// calendar-day difference, so the boundary is unaffected by DST when callers
// pass UTC.
func CanCancelWithoutCharge(nextBillingDate, now time.Time) bool {
	daysUntilBilling := int(nextBillingDate.Sub(now).Hours() / 24)
	return daysUntilBilling >= CancellationNoticeDays
}

// ProcessCancellation decides what a cancellation request at "now" means for
// the given subscription. No refunds are ever issued for the current paid
// period: a cancellation only stops future charges, and access is retained
// through the end of whatever period was paid for.
//
// The subscription must have NextBillingDate set; an unscheduled subscription
// has nothing to cancel against.
func ProcessCancellation(sub *Subscription, now time.Time) CancellationDecision {
	willCharge := !CanCancelWithoutCharge(sub.NextBillingDate, now)

	decision := CancellationDecision{
		CancellationDate:    now,
		WillChargeNextMonth: willCharge,
	}

	if willCharge {
		// One more charge at the next billing date, access until then
		decision.FinalChargeAmount = sub.Rate
		decision.AccessEndDate = sub.NextBillingDate
		decision.Status = StatusCancelledPending
	} else {
		// No further charges, access ends with the current paid period
		decision.FinalChargeAmount = 0
		decision.AccessEndDate = sub.CurrentPeriodEnd
		if decision.AccessEndDate.IsZero() {
			decision.AccessEndDate = sub.NextBillingDate
		}
		decision.Status = StatusCancelled
	}

	var chargeNote string
	if willCharge {
		chargeNote = "You will be charged one final time on " + sub.NextBillingDate.Format("January 02, 2006") + "."
	} else {
		chargeNote = "No additional charges will be made."
	}
	decision.Message = fmt.Sprintf(
		"Your subscription will be cancelled. %s You will have access until %s.",
		chargeNote,
		decision.AccessEndDate.Format("January 02, 2006"),
	)

	return decision
}

// ApplyChargeSuccess transitions sub after a successful charge and reports
// whether the subscription was in a chargeable state. An active (or recovering)
// subscription advances one billing cycle; a pending cancellation receives its
// single final charge and becomes cancelled, with no further scheduled charges.
func ApplyChargeSuccess(sub *Subscription) bool {
	switch sub.Status {
	case StatusActive, StatusGracePeriod:
		sub.MonthsElapsed++
		sub.NextBillingDate = NextBillingDate(sub.StartDate, sub.MonthsElapsed+1)
		sub.CurrentPeriodEnd = sub.NextBillingDate
		sub.Status = StatusActive
		sub.FailedPaymentDate = nil
	case StatusCancelledPending:
		// the final charge pays for access already promised; the access end
		// date reported by the cancellation decision stands
		sub.MonthsElapsed++
		sub.Status = StatusCancelled
	default:
		return false
	}
	return true
}

// ApplyChargeFailure moves sub into its grace period after a failed charge
func ApplyChargeFailure(sub *Subscription, now time.Time) bool {
	switch sub.Status {
	case StatusActive, StatusCancelledPending:
		sub.Status = StatusGracePeriod
		sub.FailedPaymentDate = &now
	case StatusGracePeriod:
		// still failing, the expiry clock keeps the original failure date
	default:
		return false
	}
	return true
}

// ApplyExpiry expires a grace-period subscription once the grace window has
// lapsed, and reports whether the transition happened
func ApplyExpiry(sub *Subscription, now time.Time) bool {
	if sub.Status != StatusGracePeriod || sub.FailedPaymentDate == nil {
		return false
	}
	if now.Sub(*sub.FailedPaymentDate) < GracePeriodDays*24*time.Hour {
		return false
	}
	sub.Status = StatusExpired
	return true
}
