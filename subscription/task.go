package subscription

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kingdomliving/soulfood/broker"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"go.uber.org/zap"
)

// BillingRunInterval is how often the scheduler looks for due subscriptions
// and lapsed grace periods
const BillingRunInterval = time.Hour * 24

// TaskOptions contains the configuration for the background billing Task
type TaskOptions struct {
	SubscriptionManager *Manager
	StripeClient        *client.API
	Producer            broker.Producer
	Logger              *zap.Logger
}

// Task runs the daily billing loops:
// 1. Charge subscriptions whose billing date has arrived (including final
//    charges of pending cancellations)
// 2. Expire subscriptions whose grace period lapsed without a successful retry
type Task struct {
	TaskOptions
}

// NewTask returns the background Task for the billing scheduler
func NewTask(option TaskOptions) (*Task, error) {
	if option.SubscriptionManager == nil {
		return nil, fmt.Errorf("nil SubscriptionManager is invalid")
	}
	if option.StripeClient == nil {
		return nil, fmt.Errorf("nil StripeClient is invalid")
	}
	if option.Producer == nil {
		return nil, fmt.Errorf("nil Producer is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Task{
		TaskOptions: option,
	}, nil
}

// HandleBillingRuns starts the billing loops until ctx is cancelled
func (t *Task) HandleBillingRuns(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(BillingRunInterval)
		defer ticker.Stop()
		for {
			now := time.Now().UTC()
			t.processDueSubscriptions(ctx, now)
			t.processGraceExpirations(ctx, now)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (t *Task) processDueSubscriptions(ctx context.Context, now time.Time) {
	due, err := t.SubscriptionManager.ListDue(ctx, now)
	if err != nil {
		t.Logger.Error("Cannot list due subscriptions",
			zap.Error(err),
		)
		return
	}
	for _, sub := range due {
		logger := t.Logger.With(
			zap.String("SubscriptionID", sub.ID),
			zap.String("CustomerID", sub.CustomerID),
		)
		chargeErr := t.charge(ctx, &sub)
		result := broker.BillingSucceeded
		if chargeErr != nil {
			logger.Error("Charge attempt failed",
				zap.Error(chargeErr),
			)
			result = broker.BillingFailed
			if _, err := t.SubscriptionManager.RecordChargeFailure(ctx, sub.ID, now); err != nil {
				logger.Error("Cannot record charge failure",
					zap.Error(err),
				)
				continue
			}
		} else {
			if _, err := t.SubscriptionManager.RecordChargeSuccess(ctx, sub.ID); err != nil {
				logger.Error("Cannot record charge success",
					zap.Error(err),
				)
				continue
			}
		}
		if err := t.Producer.SendBillingEvent(&broker.BillingEvent{
			SubscriptionID: sub.ID,
			CustomerID:     sub.CustomerID,
			Result:         result,
			Amount:         sub.Rate,
			Currency:       sub.Currency,
			OccurredAt:     now,
		}); err != nil {
			logger.Error("Cannot publish billing event",
				zap.Error(err),
			)
		}
	}
}

// charge collects the locked monthly rate off-session. The rate on the record
// is authoritative, never the live catalog price.
func (t *Task) charge(ctx context.Context, sub *Subscription) error {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"subscription_id": sub.ID,
				"product_id":      sub.ProductID,
			},
		},
		Amount:     stripe.Int64(int64(math.Round(sub.Rate * 100))),
		Currency:   stripe.String(sub.Currency),
		Customer:   stripe.String(sub.CustomerID),
		Confirm:    stripe.Bool(true),
		OffSession: stripe.Bool(true),
	}
	intent, err := t.StripeClient.PaymentIntents.New(params)
	if err != nil {
		return err
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("PaymentIntent did not succeed (status: %s)", intent.Status)
	}
	return nil
}

func (t *Task) processGraceExpirations(ctx context.Context, now time.Time) {
	inGrace, err := t.SubscriptionManager.ListInGrace(ctx)
	if err != nil {
		t.Logger.Error("Cannot list subscriptions in grace period",
			zap.Error(err),
		)
		return
	}
	for _, sub := range inGrace {
		expired, err := t.SubscriptionManager.Expire(ctx, sub.ID, now)
		if err != nil {
			t.Logger.Error("Cannot expire subscription",
				zap.String("SubscriptionID", sub.ID),
				zap.Error(err),
			)
			continue
		}
		if expired != nil {
			t.Logger.Info("Subscription expired after grace period",
				zap.String("SubscriptionID", sub.ID),
				zap.String("CustomerID", sub.CustomerID),
			)
		}
	}
}
