package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestNextBillingDate(t *testing.T) {
	t.Run("KeepsSignupDayOfMonth", func(t *testing.T) {
		next := NextBillingDate(date(2026, time.January, 15, 9, 30), 1)
		assert.Equal(t, date(2026, time.February, 15, 9, 30), next)
	})

	t.Run("ClampsToLeapFebruary", func(t *testing.T) {
		next := NextBillingDate(date(2024, time.January, 31, 0, 0), 1)
		assert.Equal(t, date(2024, time.February, 29, 0, 0), next)
	})

	t.Run("ClampsToNonLeapFebruary", func(t *testing.T) {
		next := NextBillingDate(date(2025, time.January, 31, 0, 0), 1)
		assert.Equal(t, date(2025, time.February, 28, 0, 0), next)
	})

	t.Run("ClampsToThirtyDayMonth", func(t *testing.T) {
		next := NextBillingDate(date(2026, time.March, 31, 12, 0), 1)
		assert.Equal(t, date(2026, time.April, 30, 12, 0), next)
	})

	t.Run("RollsOverYear", func(t *testing.T) {
		next := NextBillingDate(date(2025, time.December, 15, 0, 0), 1)
		assert.Equal(t, date(2026, time.January, 15, 0, 0), next)
	})

	t.Run("SupportsManyElapsedMonths", func(t *testing.T) {
		next := NextBillingDate(date(2025, time.January, 31, 8, 45), 25)
		// 25 months after Jan 31 2025 lands on Feb 2027, a 28-day month
		assert.Equal(t, date(2027, time.February, 28, 8, 45), next)
	})

	t.Run("ZeroMonthsReturnsStart", func(t *testing.T) {
		start := date(2026, time.June, 10, 7, 15)
		assert.Equal(t, start, NextBillingDate(start, 0))
	})

	t.Run("DropsSeconds", func(t *testing.T) {
		start := time.Date(2026, time.May, 5, 10, 20, 59, 123, time.UTC)
		next := NextBillingDate(start, 1)
		assert.Equal(t, date(2026, time.June, 5, 10, 20), next)
	})

	t.Run("PureFunction", func(t *testing.T) {
		start := date(2024, time.January, 31, 3, 0)
		assert.Equal(t, NextBillingDate(start, 1), NextBillingDate(start, 1))
	})
}

func TestCanCancelWithoutCharge(t *testing.T) {
	now := date(2026, time.February, 10, 12, 0)

	t.Run("ExactlyFiveDaysIsFree", func(t *testing.T) {
		assert.True(t, CanCancelWithoutCharge(now.Add(5*24*time.Hour), now))
	})

	t.Run("JustUnderFiveDaysCharges", func(t *testing.T) {
		almostFive := now.Add(5*24*time.Hour - time.Minute)
		assert.False(t, CanCancelWithoutCharge(almostFive, now))
	})

	t.Run("SixDaysIsFree", func(t *testing.T) {
		assert.True(t, CanCancelWithoutCharge(now.Add(6*24*time.Hour), now))
	})

	t.Run("BillingDateInThePastCharges", func(t *testing.T) {
		assert.False(t, CanCancelWithoutCharge(now.Add(-24*time.Hour), now))
	})
}

func TestProcessCancellation(t *testing.T) {
	now := date(2026, time.March, 1, 10, 0)

	t.Run("EnoughNoticeCancelsWithoutCharge", func(t *testing.T) {
		sub := &Subscription{
			Rate:             9.99,
			NextBillingDate:  now.Add(6 * 24 * time.Hour),
			CurrentPeriodEnd: date(2026, time.March, 7, 10, 0),
			Status:           StatusActive,
		}
		decision := ProcessCancellation(sub, now)

		assert.False(t, decision.WillChargeNextMonth)
		assert.Equal(t, 0.0, decision.FinalChargeAmount)
		assert.Equal(t, sub.CurrentPeriodEnd, decision.AccessEndDate)
		assert.Equal(t, Status(StatusCancelled), decision.Status)
		assert.Equal(t, now, decision.CancellationDate)
	})

	t.Run("ShortNoticeIncursFinalCharge", func(t *testing.T) {
		sub := &Subscription{
			Rate:            14.99,
			NextBillingDate: now.Add(2 * 24 * time.Hour),
			Status:          StatusActive,
		}
		decision := ProcessCancellation(sub, now)

		assert.True(t, decision.WillChargeNextMonth)
		assert.Equal(t, 14.99, decision.FinalChargeAmount)
		assert.Equal(t, sub.NextBillingDate, decision.AccessEndDate)
		assert.Equal(t, Status(StatusCancelledPending), decision.Status)
	})

	t.Run("FallsBackToNextBillingDateWithoutPeriodEnd", func(t *testing.T) {
		sub := &Subscription{
			Rate:            9.99,
			NextBillingDate: now.Add(10 * 24 * time.Hour),
			Status:          StatusActive,
		}
		decision := ProcessCancellation(sub, now)

		assert.False(t, decision.WillChargeNextMonth)
		assert.Equal(t, sub.NextBillingDate, decision.AccessEndDate)
	})

	t.Run("MessageReflectsChargeBranch", func(t *testing.T) {
		sub := &Subscription{
			Rate:            9.99,
			NextBillingDate: date(2026, time.March, 3, 0, 0),
		}
		decision := ProcessCancellation(sub, now)

		require.True(t, decision.WillChargeNextMonth)
		assert.Contains(t, decision.Message, "charged one final time on March 03, 2026")
		assert.Contains(t, decision.Message, "access until March 03, 2026")
	})

	t.Run("MessageReflectsNoChargeBranch", func(t *testing.T) {
		sub := &Subscription{
			Rate:             9.99,
			NextBillingDate:  date(2026, time.March, 15, 0, 0),
			CurrentPeriodEnd: date(2026, time.March, 15, 0, 0),
		}
		decision := ProcessCancellation(sub, now)

		require.False(t, decision.WillChargeNextMonth)
		assert.Contains(t, decision.Message, "No additional charges will be made.")
		assert.Contains(t, decision.Message, "access until March 15, 2026")
	})
}

func TestApplyChargeSuccess(t *testing.T) {
	start := date(2026, time.January, 15, 9, 0)

	t.Run("ActiveAdvancesOneCycle", func(t *testing.T) {
		sub := &Subscription{
			StartDate:       start,
			NextBillingDate: NextBillingDate(start, 1),
			MonthsElapsed:   0,
			Status:          StatusActive,
		}
		require.True(t, ApplyChargeSuccess(sub))

		assert.Equal(t, 1, sub.MonthsElapsed)
		assert.Equal(t, NextBillingDate(start, 2), sub.NextBillingDate)
		assert.Equal(t, sub.NextBillingDate, sub.CurrentPeriodEnd)
		assert.Equal(t, Status(StatusActive), sub.Status)
	})

	t.Run("FinalChargeClosesOutCancellation", func(t *testing.T) {
		accessEnd := NextBillingDate(start, 3)
		sub := &Subscription{
			StartDate:        start,
			NextBillingDate:  accessEnd,
			CurrentPeriodEnd: accessEnd,
			MonthsElapsed:    2,
			Status:           StatusCancelledPending,
		}
		require.True(t, ApplyChargeSuccess(sub))

		assert.Equal(t, Status(StatusCancelled), sub.Status)
		// access ends on the date the cancellation decision promised,
		// not a month later
		assert.Equal(t, accessEnd, sub.CurrentPeriodEnd)

		// exactly one final charge: a cancelled subscription is not chargeable
		assert.False(t, ApplyChargeSuccess(sub))
	})

	t.Run("GraceRecoveryReactivates", func(t *testing.T) {
		failedAt := date(2026, time.February, 16, 0, 0)
		sub := &Subscription{
			StartDate:         start,
			NextBillingDate:   NextBillingDate(start, 1),
			MonthsElapsed:     0,
			Status:            StatusGracePeriod,
			FailedPaymentDate: &failedAt,
		}
		require.True(t, ApplyChargeSuccess(sub))

		assert.Equal(t, Status(StatusActive), sub.Status)
		assert.Nil(t, sub.FailedPaymentDate)
		assert.Equal(t, NextBillingDate(start, 2), sub.NextBillingDate)
	})

	t.Run("TerminalStatusesAreNotChargeable", func(t *testing.T) {
		for _, status := range []Status{StatusCancelled, StatusExpired} {
			sub := &Subscription{StartDate: start, Status: status}
			assert.False(t, ApplyChargeSuccess(sub), string(status))
		}
	})
}

func TestApplyChargeFailure(t *testing.T) {
	now := date(2026, time.April, 1, 6, 0)

	t.Run("ActiveEntersGracePeriod", func(t *testing.T) {
		sub := &Subscription{Status: StatusActive}
		require.True(t, ApplyChargeFailure(sub, now))

		assert.Equal(t, Status(StatusGracePeriod), sub.Status)
		require.NotNil(t, sub.FailedPaymentDate)
		assert.Equal(t, now, *sub.FailedPaymentDate)
	})

	t.Run("RepeatedFailureKeepsFirstFailureDate", func(t *testing.T) {
		first := date(2026, time.March, 30, 6, 0)
		sub := &Subscription{
			Status:            StatusGracePeriod,
			FailedPaymentDate: &first,
		}
		require.True(t, ApplyChargeFailure(sub, now))
		assert.Equal(t, first, *sub.FailedPaymentDate)
	})

	t.Run("TerminalStatusesDoNotEnterGrace", func(t *testing.T) {
		for _, status := range []Status{StatusCancelled, StatusExpired} {
			sub := &Subscription{Status: status}
			assert.False(t, ApplyChargeFailure(sub, now), string(status))
		}
	})
}

func TestApplyExpiry(t *testing.T) {
	failedAt := date(2026, time.May, 1, 12, 0)

	t.Run("WithinGraceWindowStaysPut", func(t *testing.T) {
		sub := &Subscription{Status: StatusGracePeriod, FailedPaymentDate: &failedAt}
		assert.False(t, ApplyExpiry(sub, failedAt.Add(2*24*time.Hour)))
		assert.Equal(t, Status(StatusGracePeriod), sub.Status)
	})

	t.Run("LapsedGraceWindowExpires", func(t *testing.T) {
		sub := &Subscription{Status: StatusGracePeriod, FailedPaymentDate: &failedAt}
		require.True(t, ApplyExpiry(sub, failedAt.Add(3*24*time.Hour)))
		assert.Equal(t, Status(StatusExpired), sub.Status)
	})

	t.Run("OnlyGracePeriodCanExpire", func(t *testing.T) {
		sub := &Subscription{Status: StatusActive, FailedPaymentDate: &failedAt}
		assert.False(t, ApplyExpiry(sub, failedAt.Add(10*24*time.Hour)))
	})
}
